package execshell

import (
	"fmt"
	"strings"
)

const (
	commandFailedTemplateConstant              = "%s failed with exit code %d"
	commandFailedStandardErrorTemplateConstant = "%s failed with exit code %d: %s"
	commandLaunchFailedTemplateConstant        = "%s could not be started: %v"
)

// CommandFailedError reports a gated execution that did not exit with code zero.
// ExitCode is ExitCodeUnavailable and LaunchError is set when the process never started.
type CommandFailedError struct {
	Command       ShellCommand
	ExitCode      int
	StandardError string
	LaunchError   error
}

// NewCommandFailedError builds the structured failure for result.
func NewCommandFailedError(command ShellCommand, result ExecutionResult) CommandFailedError {
	return CommandFailedError{
		Command:       command,
		ExitCode:      result.ExitCode,
		StandardError: result.StandardError,
		LaunchError:   result.LaunchError,
	}
}

// Error describes the failure.
func (failure CommandFailedError) Error() string {
	commandLabel := CommandMessageFormatter{}.formatCommandLabel(failure.Command)
	if failure.LaunchError != nil {
		return fmt.Sprintf(commandLaunchFailedTemplateConstant, commandLabel, failure.LaunchError)
	}
	trimmedStandardError := strings.TrimSpace(failure.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedTemplateConstant, commandLabel, failure.ExitCode)
	}
	return fmt.Sprintf(commandFailedStandardErrorTemplateConstant, commandLabel, failure.ExitCode, trimmedStandardError)
}

// Unwrap exposes the launch error, if any.
func (failure CommandFailedError) Unwrap() error {
	return failure.LaunchError
}
