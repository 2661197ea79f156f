package tool_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/temirov/clidriver/cmd/cli/tool"
	"github.com/temirov/clidriver/internal/execshell"
	"github.com/temirov/clidriver/internal/mockexec"
	"github.com/temirov/clidriver/internal/session"
	"github.com/temirov/clidriver/internal/utils/flags"
)

type commandOutput struct {
	standardOutput string
	standardError  string
}

type mockToolFixture struct {
	queue    *mockexec.ResponseQueue
	runner   *mockexec.Runner
	provider tool.SessionProvider
}

func newMockToolFixture(responses ...execshell.ExecutionResult) *mockToolFixture {
	fixture := &mockToolFixture{queue: mockexec.NewResponseQueue().AddPreset(mockexec.PresetVersion).Add(responses...)}
	fixture.provider = func(executionContext context.Context) (*session.Session, error) {
		return session.New(executionContext, session.Options{
			RunnerFactory: func(executable string) (execshell.CommandRunner, error) {
				runner, creationError := mockexec.NewRunner(executable, fixture.queue)
				fixture.runner = runner
				return runner, creationError
			},
			EnvironmentLookup: func(string) (string, bool) { return "", false },
			OperatingSystem:   "linux",
		})
	}
	return fixture
}

func (fixture *mockToolFixture) lastInvocation() []string {
	invocations := fixture.runner.Invocations()
	return invocations[len(invocations)-1]
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments ...string) (commandOutput, error) {
	testInstance.Helper()
	return executeCommandWithContext(testInstance, context.Background(), command, arguments...)
}

func executeCommandWithContext(testInstance *testing.T, executionContext context.Context, command *cobra.Command, arguments ...string) (commandOutput, error) {
	testInstance.Helper()
	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	command.SilenceUsage = true
	command.SilenceErrors = true
	command.SetOut(&standardOutput)
	command.SetErr(&standardError)
	normalizedArguments := flags.NormalizeToggleArguments(command.Flags(), arguments)
	if normalizedArguments == nil {
		normalizedArguments = []string{}
	}
	command.SetArgs(normalizedArguments)
	executionError := command.ExecuteContext(executionContext)
	return commandOutput{standardOutput: standardOutput.String(), standardError: standardError.String()}, executionError
}
