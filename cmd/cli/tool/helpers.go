package tool

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/clidriver/internal/execshell"
	"github.com/temirov/clidriver/internal/session"
)

const (
	sessionProviderMissingMessageConstant = "session provider not configured"
	exitCodeErrorTemplateConstant         = "%s exited with code %d"
	rawExitCodeTemplateConstant           = "exit code: %d\n"
	rawLaunchErrorTemplateConstant        = "launch error: %v\n"

	// GenericFailureExitCode is the CLI exit status for failures that carry no tool exit code.
	GenericFailureExitCode = 1
)

// ErrSessionProviderMissing indicates a command was built without a SessionProvider.
var ErrSessionProviderMissing = errors.New(sessionProviderMissingMessageConstant)

// LoggerProvider supplies the logger used by a command.
type LoggerProvider func() *zap.Logger

// SessionProvider opens a version-gated session for a command invocation.
type SessionProvider func(executionContext context.Context) (*session.Session, error)

// ExitCodeError reports a streamed command that exited unsuccessfully.
type ExitCodeError struct {
	Executable string
	ExitCode   int
}

// Error describes the exit status.
func (exitError ExitCodeError) Error() string {
	return fmt.Sprintf(exitCodeErrorTemplateConstant, exitError.Executable, exitError.ExitCode)
}

// ExitStatus maps a command error to the CLI process exit status. A positive tool exit code carried by
// ExitCodeError or execshell.CommandFailedError is mirrored in every execution mode; any other failure,
// including a tool that never launched, yields GenericFailureExitCode.
func ExitStatus(commandError error) int {
	if commandError == nil {
		return 0
	}

	var exitCodeError ExitCodeError
	if errors.As(commandError, &exitCodeError) && exitCodeError.ExitCode > 0 {
		return exitCodeError.ExitCode
	}
	var commandFailure execshell.CommandFailedError
	if errors.As(commandError, &commandFailure) && commandFailure.ExitCode > 0 {
		return commandFailure.ExitCode
	}
	return GenericFailureExitCode
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func openSession(provider SessionProvider, executionContext context.Context) (*session.Session, error) {
	if provider == nil {
		return nil, ErrSessionProviderMissing
	}
	return provider(executionContext)
}

// writeRawResult prints captured output followed by the exit code, without judging success.
func writeRawResult(standardOutput io.Writer, standardError io.Writer, result execshell.ExecutionResult) error {
	if _, writeError := io.WriteString(standardOutput, result.StandardOutput); writeError != nil {
		return writeError
	}
	if _, writeError := io.WriteString(standardError, result.StandardError); writeError != nil {
		return writeError
	}
	if result.LaunchError != nil {
		if _, writeError := fmt.Fprintf(standardError, rawLaunchErrorTemplateConstant, result.LaunchError); writeError != nil {
			return writeError
		}
	}
	_, writeError := fmt.Fprintf(standardOutput, rawExitCodeTemplateConstant, result.ExitCode)
	return writeError
}
