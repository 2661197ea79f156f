package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/clidriver/internal/execshell"
)

type countingObserver struct {
	started   int
	completed int
	failed    int
}

func (counter *countingObserver) CommandStarted(execshell.ShellCommand) {
	counter.started++
}

func (counter *countingObserver) CommandCompleted(execshell.ShellCommand, execshell.ExecutionResult) {
	counter.completed++
}

func (counter *countingObserver) CommandExecutionFailed(execshell.ShellCommand, error) {
	counter.failed++
}

func TestCommandEventObserversFanOut(testInstance *testing.T) {
	firstObserver := &countingObserver{}
	secondObserver := &countingObserver{}
	observers := execshell.CommandEventObservers{firstObserver, nil, execshell.NoopCommandEventObserver{}, secondObserver}
	command := execshell.ShellCommand{Executable: "az", Arguments: []string{"account", "show"}}

	observers.CommandStarted(command)
	observers.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1})
	observers.CommandExecutionFailed(command, errors.New("failed"))

	for _, observer := range []*countingObserver{firstObserver, secondObserver} {
		require.Equal(testInstance, countingObserver{started: 1, completed: 1, failed: 1}, *observer)
	}
}
