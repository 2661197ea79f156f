package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	environmentAssignmentSeparatorConstant  = "="
	environmentAssignmentTemplateConstant   = "%s%s%s"
	executableNotConfiguredMessageConstant  = "executable not configured"
	standardOutputPipeErrorTemplateConstant = "unable to attach standard output: %w"
	standardErrorPipeErrorTemplateConstant  = "unable to attach standard error: %w"
)

// ErrExecutableNotConfigured indicates a runner was requested without an executable.
var ErrExecutableNotConfigured = errors.New(executableNotConfiguredMessageConstant)

// RunnerOption customizes an OSCommandRunner.
type RunnerOption func(runner *OSCommandRunner)

// WithWorkingDirectory runs the child in workingDirectory instead of the host's current directory.
func WithWorkingDirectory(workingDirectory string) RunnerOption {
	return func(runner *OSCommandRunner) {
		runner.workingDirectory = strings.TrimSpace(workingDirectory)
	}
}

// WithEnvironment appends environmentVariables to the host environment.
func WithEnvironment(environmentVariables map[string]string) RunnerOption {
	return func(runner *OSCommandRunner) {
		runner.environmentVariables = make(map[string]string, len(environmentVariables))
		for environmentKey, environmentValue := range environmentVariables {
			runner.environmentVariables[environmentKey] = environmentValue
		}
	}
}

// WithStandardStreams replaces the streams inherited by streamed executions.
// Nil values keep the corresponding host stream.
func WithStandardStreams(standardInput io.Reader, standardOutput io.Writer, standardError io.Writer) RunnerOption {
	return func(runner *OSCommandRunner) {
		if standardInput != nil {
			runner.standardInput = standardInput
		}
		if standardOutput != nil {
			runner.standardOutput = standardOutput
		}
		if standardError != nil {
			runner.standardError = standardError
		}
	}
}

// OSCommandRunner executes a fixed executable using the operating system facilities.
type OSCommandRunner struct {
	executable           string
	workingDirectory     string
	environmentVariables map[string]string
	standardInput        io.Reader
	standardOutput       io.Writer
	standardError        io.Writer
}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner(executable string, options ...RunnerOption) (*OSCommandRunner, error) {
	trimmedExecutable := strings.TrimSpace(executable)
	if len(trimmedExecutable) == 0 {
		return nil, ErrExecutableNotConfigured
	}

	runner := &OSCommandRunner{
		executable:     trimmedExecutable,
		standardInput:  os.Stdin,
		standardOutput: os.Stdout,
		standardError:  os.Stderr,
	}
	for _, option := range options {
		if option != nil {
			option(runner)
		}
	}
	return runner, nil
}

// NewOSRunnerFactory returns a RunnerFactory producing OSCommandRunner instances.
func NewOSRunnerFactory(options ...RunnerOption) RunnerFactory {
	return func(executable string) (CommandRunner, error) {
		return NewOSCommandRunner(executable, options...)
	}
}

// Executable returns the executable the runner spawns.
func (runner *OSCommandRunner) Executable() string {
	return runner.executable
}

// Run executes the command and waits for it to exit.
func (runner *OSCommandRunner) Run(executionContext context.Context, arguments []string) ExecutionResult {
	argumentSnapshot := append([]string{}, arguments...)
	executable := runner.buildCommand(executionContext, argumentSnapshot)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	return buildExecutionResult(executable, argumentSnapshot, standardOutputBuffer.String(), standardErrorBuffer.String(), runError)
}

// Start launches the command and collects its output in the background.
// Each call owns its own output buffers.
func (runner *OSCommandRunner) Start(executionContext context.Context, arguments []string) *Pending[ExecutionResult] {
	argumentSnapshot := append([]string{}, arguments...)
	executable := runner.buildCommand(executionContext, argumentSnapshot)

	standardOutputPipe, standardOutputPipeError := executable.StdoutPipe()
	if standardOutputPipeError != nil {
		return Resolved(launchFailureResult(argumentSnapshot, fmt.Errorf(standardOutputPipeErrorTemplateConstant, standardOutputPipeError)))
	}
	standardErrorPipe, standardErrorPipeError := executable.StderrPipe()
	if standardErrorPipeError != nil {
		return Resolved(launchFailureResult(argumentSnapshot, fmt.Errorf(standardErrorPipeErrorTemplateConstant, standardErrorPipeError)))
	}

	if startError := executable.Start(); startError != nil {
		return Resolved(launchFailureResult(argumentSnapshot, startError))
	}

	pending := newPending[ExecutionResult]()
	go func() {
		var standardOutputBuffer bytes.Buffer
		var standardErrorBuffer bytes.Buffer

		var drainGroup errgroup.Group
		drainGroup.Go(func() error {
			_, copyError := io.Copy(&standardOutputBuffer, standardOutputPipe)
			return copyError
		})
		drainGroup.Go(func() error {
			_, copyError := io.Copy(&standardErrorBuffer, standardErrorPipe)
			return copyError
		})
		// Pipes must be drained before Wait closes them.
		drainError := drainGroup.Wait()

		waitError := executable.Wait()
		if waitError == nil && drainError != nil {
			waitError = drainError
		}
		pending.resolve(buildExecutionResult(executable, argumentSnapshot, standardOutputBuffer.String(), standardErrorBuffer.String(), waitError))
	}()

	return pending
}

// Stream launches the command attached to the host streams and resolves with its exit code.
func (runner *OSCommandRunner) Stream(executionContext context.Context, arguments []string) *Pending[int] {
	argumentSnapshot := append([]string{}, arguments...)
	executable := runner.buildCommand(executionContext, argumentSnapshot)
	executable.Stdin = runner.standardInput
	executable.Stdout = runner.standardOutput
	executable.Stderr = runner.standardError

	if startError := executable.Start(); startError != nil {
		return Resolved(ExitCodeUnavailable)
	}

	pending := newPending[int]()
	go func() {
		waitError := executable.Wait()
		pending.resolve(buildExecutionResult(executable, argumentSnapshot, "", "", waitError).ExitCode)
	}()
	return pending
}

func (runner *OSCommandRunner) buildCommand(executionContext context.Context, arguments []string) *exec.Cmd {
	if executionContext == nil {
		executionContext = context.Background()
	}
	executable := exec.CommandContext(executionContext, runner.executable, arguments...)

	if len(runner.workingDirectory) > 0 {
		executable.Dir = runner.workingDirectory
	}

	if len(runner.environmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range runner.environmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	return executable
}

func buildExecutionResult(executable *exec.Cmd, arguments []string, standardOutput string, standardError string, runError error) ExecutionResult {
	executionResult := ExecutionResult{
		ExitCode:       0,
		StandardOutput: standardOutput,
		StandardError:  standardError,
		Arguments:      arguments,
	}
	if runError == nil {
		return executionResult
	}

	exitError := &exec.ExitError{}
	if errors.As(runError, &exitError) {
		executionResult.ExitCode = exitError.ExitCode()
		return executionResult
	}

	executionResult.LaunchError = runError
	executionResult.ExitCode = ExitCodeUnavailable
	if executable.ProcessState != nil {
		executionResult.ExitCode = executable.ProcessState.ExitCode()
	}
	return executionResult
}

func launchFailureResult(arguments []string, launchError error) ExecutionResult {
	return ExecutionResult{
		ExitCode:    ExitCodeUnavailable,
		LaunchError: launchError,
		Arguments:   arguments,
	}
}
