package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/clidriver/internal/execshell"
)

func TestCommandMessageFormatter(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}
	blockingCommand := execshell.ShellCommand{Executable: "az", Arguments: []string{"account", "show"}}
	asyncCommand := execshell.ShellCommand{Executable: "az", Arguments: []string{"webapp", "list"}, Mode: execshell.ModeAsyncCollect}

	testCases := []struct {
		name            string
		build           func() string
		expectedMessage string
	}{
		{
			name:            "started",
			build:           func() string { return formatter.BuildStartedMessage(blockingCommand) },
			expectedMessage: "Running az account show",
		},
		{
			name:            "started_async",
			build:           func() string { return formatter.BuildStartedMessage(asyncCommand) },
			expectedMessage: "Running az webapp list [async]",
		},
		{
			name:            "success",
			build:           func() string { return formatter.BuildSuccessMessage(blockingCommand) },
			expectedMessage: "Completed az account show",
		},
		{
			name: "failure_with_standard_error",
			build: func() string {
				return formatter.BuildFailureMessage(blockingCommand, execshell.ExecutionResult{ExitCode: 1, StandardError: " not logged in \n"})
			},
			expectedMessage: "az account show failed with exit code 1: not logged in",
		},
		{
			name: "failure_without_standard_error",
			build: func() string {
				return formatter.BuildFailureMessage(blockingCommand, execshell.ExecutionResult{ExitCode: 2})
			},
			expectedMessage: "az account show failed with exit code 2",
		},
		{
			name: "execution_failure",
			build: func() string {
				return formatter.BuildExecutionFailureMessage(blockingCommand, errors.New("exec failed"))
			},
			expectedMessage: "az account show failed: exec failed",
		},
		{
			name:            "execution_failure_without_cause",
			build:           func() string { return formatter.BuildExecutionFailureMessage(blockingCommand, nil) },
			expectedMessage: "az account show failed: unknown error",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.build())
		})
	}
}

func TestCommandFailedError(testInstance *testing.T) {
	command := execshell.ShellCommand{Executable: "az", Arguments: []string{"account", "clear"}}

	exitFailure := execshell.NewCommandFailedError(command, execshell.ExecutionResult{ExitCode: 1, StandardError: "mock error response"})
	require.Equal(testInstance, "az account clear failed with exit code 1: mock error response", exitFailure.Error())
	require.NoError(testInstance, errors.Unwrap(exitFailure))

	launchCause := errors.New("executable file not found")
	launchFailure := execshell.NewCommandFailedError(command, execshell.ExecutionResult{ExitCode: execshell.ExitCodeUnavailable, LaunchError: launchCause})
	require.ErrorIs(testInstance, launchFailure, launchCause)
	require.Equal(testInstance, execshell.ExitCodeUnavailable, launchFailure.ExitCode)
	require.Contains(testInstance, launchFailure.Error(), "could not be started")
}

func TestExecutionModeString(testInstance *testing.T) {
	require.Equal(testInstance, "blocking", execshell.ModeBlocking.String())
	require.Equal(testInstance, "async", execshell.ModeAsyncCollect.String())
	require.Equal(testInstance, "stream", execshell.ModeStreamed.String())
	require.Equal(testInstance, "unknown", execshell.ExecutionMode(42).String())
}
