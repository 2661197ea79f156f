package tool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/clidriver/cmd/cli/tool"
	"github.com/temirov/clidriver/internal/execshell"
	"github.com/temirov/clidriver/internal/mockexec"
	"github.com/temirov/clidriver/internal/session"
	"github.com/temirov/clidriver/internal/utils"
)

func TestVersionCommandReportsSupportedVersion(testInstance *testing.T) {
	fixture := newMockToolFixture()
	command, buildError := (&tool.VersionCommandBuilder{SessionProvider: fixture.provider}).Build()
	require.NoError(testInstance, buildError)

	output, executionError := executeCommand(testInstance, command)
	require.NoError(testInstance, executionError)

	var report tool.VersionReport
	require.NoError(testInstance, yaml.Unmarshal([]byte(output.standardOutput), &report))
	require.Equal(testInstance, tool.VersionReport{Executable: "az", Version: "2.0.0", AcceptedRange: "[2.0.0, 2.1)", Supported: true}, report)
}

func TestVersionCommandReportsConfigurationFile(testInstance *testing.T) {
	fixture := newMockToolFixture()
	command, buildError := (&tool.VersionCommandBuilder{SessionProvider: fixture.provider}).Build()
	require.NoError(testInstance, buildError)
	executionContext := utils.NewCommandContextAccessor().WithConfigurationFilePath(context.Background(), "/etc/clidriver/config.yaml")

	output, executionError := executeCommandWithContext(testInstance, executionContext, command)
	require.NoError(testInstance, executionError)

	var report tool.VersionReport
	require.NoError(testInstance, yaml.Unmarshal([]byte(output.standardOutput), &report))
	require.Equal(testInstance, "/etc/clidriver/config.yaml", report.ConfigurationFile)
}

func TestVersionCommandReportsRejectedVersion(testInstance *testing.T) {
	fixture := newMockToolFixture()
	fixture.queue.Clear().Add(execshell.ExecutionResult{ExitCode: 0, StandardOutput: "azure-cli (2.1.0)\n"})
	command, buildError := (&tool.VersionCommandBuilder{SessionProvider: fixture.provider}).Build()
	require.NoError(testInstance, buildError)

	output, executionError := executeCommand(testInstance, command)
	require.ErrorIs(testInstance, executionError, session.ErrVersionRangeRejected)

	var report tool.VersionReport
	require.NoError(testInstance, yaml.Unmarshal([]byte(output.standardOutput), &report))
	require.Equal(testInstance, tool.VersionReport{Version: "2.1.0", AcceptedRange: "[2.0.0, 2.1)"}, report)
}

func TestVersionCommandPropagatesProbeFailure(testInstance *testing.T) {
	fixture := newMockToolFixture()
	fixture.queue.Clear().AddPreset(mockexec.PresetFailure)
	command, buildError := (&tool.VersionCommandBuilder{SessionProvider: fixture.provider}).Build()
	require.NoError(testInstance, buildError)

	output, executionError := executeCommand(testInstance, command)
	require.ErrorIs(testInstance, executionError, session.ErrVersionProbeFailed)
	require.Empty(testInstance, output.standardOutput)
}
