package execshell

import "context"

const (
	executionModeBlockingLabelConstant     = "blocking"
	executionModeAsyncCollectLabelConstant = "async"
	executionModeStreamedLabelConstant     = "stream"
	unknownExecutionModeLabelConstant      = "unknown"
	// ExitCodeUnavailable is reported when the process never started.
	ExitCodeUnavailable = -1
)

// ExecutionMode selects how a runner spawns the child and which result fields it populates.
type ExecutionMode int

// Supported execution modes.
const (
	ModeBlocking ExecutionMode = iota
	ModeAsyncCollect
	ModeStreamed
)

// String returns the short label used in logs and flags.
func (mode ExecutionMode) String() string {
	switch mode {
	case ModeBlocking:
		return executionModeBlockingLabelConstant
	case ModeAsyncCollect:
		return executionModeAsyncCollectLabelConstant
	case ModeStreamed:
		return executionModeStreamedLabelConstant
	default:
		return unknownExecutionModeLabelConstant
	}
}

// ShellCommand describes a single invocation of the external tool.
type ShellCommand struct {
	Executable   string
	Arguments    []string
	Mode         ExecutionMode
	InvocationID string
}

// ExecutionResult captures the observable outcome of one invocation.
type ExecutionResult struct {
	// ExitCode is ExitCodeUnavailable when the process could not be launched.
	ExitCode       int
	StandardOutput string
	StandardError  string
	LaunchError    error
	// Arguments is the token snapshot sent to this invocation.
	Arguments    []string
	InvocationID string
}

// Launched reports whether the process started and ExitCode is meaningful.
func (result ExecutionResult) Launched() bool {
	return result.LaunchError == nil && result.ExitCode != ExitCodeUnavailable
}

// Succeeded reports whether the process started and exited with code zero.
func (result ExecutionResult) Succeeded() bool {
	return result.Launched() && result.ExitCode == 0
}

// CommandRunner spawns a fixed executable with the supplied arguments.
type CommandRunner interface {
	// Executable returns the already-resolved executable name or path.
	Executable() string
	// Run blocks until the child exits and returns its captured output.
	// A non-zero exit code is reported in the result, never as a failure.
	Run(executionContext context.Context, arguments []string) ExecutionResult
	// Start returns immediately; the handle resolves with captured output once the child exits.
	Start(executionContext context.Context, arguments []string) *Pending[ExecutionResult]
	// Stream wires the child to the host's standard streams and resolves with the exit code.
	Stream(executionContext context.Context, arguments []string) *Pending[int]
}

// RunnerFactory produces a CommandRunner bound to executable.
type RunnerFactory func(executable string) (CommandRunner, error)
