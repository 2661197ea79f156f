package mockexec

import (
	"context"
	"strings"
	"sync"

	"github.com/temirov/clidriver/internal/execshell"
)

// Runner implements execshell.CommandRunner by serving results from a ResponseQueue.
type Runner struct {
	executable string
	queue      *ResponseQueue

	mutex       sync.Mutex
	invocations [][]string
}

// NewRunner constructs a Runner bound to executable and queue.
func NewRunner(executable string, queue *ResponseQueue) (*Runner, error) {
	trimmedExecutable := strings.TrimSpace(executable)
	if len(trimmedExecutable) == 0 {
		return nil, execshell.ErrExecutableNotConfigured
	}
	if queue == nil {
		queue = NewResponseQueue()
	}
	return &Runner{executable: trimmedExecutable, queue: queue}, nil
}

// Factory returns an execshell.RunnerFactory whose runners share queue.
func Factory(queue *ResponseQueue) execshell.RunnerFactory {
	return func(executable string) (execshell.CommandRunner, error) {
		return NewRunner(executable, queue)
	}
}

// Executable returns the executable the runner pretends to spawn.
func (runner *Runner) Executable() string {
	return runner.executable
}

// Run serves the next queued result.
func (runner *Runner) Run(executionContext context.Context, arguments []string) execshell.ExecutionResult {
	return runner.serve(arguments)
}

// Start serves the next queued result through an already completed handle.
func (runner *Runner) Start(executionContext context.Context, arguments []string) *execshell.Pending[execshell.ExecutionResult] {
	return execshell.Resolved(runner.serve(arguments))
}

// Stream serves the exit code of the next queued result.
func (runner *Runner) Stream(executionContext context.Context, arguments []string) *execshell.Pending[int] {
	return execshell.Resolved(runner.serve(arguments).ExitCode)
}

// Invocations returns the argument snapshots served so far, oldest first.
func (runner *Runner) Invocations() [][]string {
	runner.mutex.Lock()
	defer runner.mutex.Unlock()
	invocations := make([][]string, len(runner.invocations))
	copy(invocations, runner.invocations)
	return invocations
}

func (runner *Runner) serve(arguments []string) execshell.ExecutionResult {
	argumentSnapshot := append([]string{}, arguments...)

	runner.mutex.Lock()
	runner.invocations = append(runner.invocations, argumentSnapshot)
	runner.mutex.Unlock()

	result := runner.queue.Next()
	result.Arguments = argumentSnapshot
	return result
}
