package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestAddToggleFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name               string
		arguments          []string
		expectedValue      bool
		expectedChanged    bool
		expectedPositional []string
	}{
		{name: "DefaultFalse", arguments: []string{}, expectedValue: false, expectedChanged: false},
		{name: "ImplicitTrue", arguments: []string{"--ignore-version"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitYes", arguments: []string{"--ignore-version", "yes"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitTrueUppercase", arguments: []string{"--ignore-version", "TRUE"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitNo", arguments: []string{"--ignore-version", "no"}, expectedValue: false, expectedChanged: true},
		{name: "AssignedValue", arguments: []string{"--ignore-version=off"}, expectedValue: false, expectedChanged: true},
		{name: "PositionalKept", arguments: []string{"--ignore-version", "group", "list"}, expectedValue: true, expectedChanged: true, expectedPositional: []string{"group", "list"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}

			var toggleValue bool
			AddToggleFlag(command.Flags(), &toggleValue, "ignore-version", "", false, "Skip the version gate")

			normalizedArguments := NormalizeToggleArguments(command.Flags(), testCase.arguments)
			require.NoError(t, command.ParseFlags(normalizedArguments))

			require.Equal(t, testCase.expectedValue, toggleValue)
			flag := command.Flags().Lookup("ignore-version")
			require.NotNil(t, flag)
			require.Equal(t, testCase.expectedChanged, flag.Changed)
			if testCase.expectedPositional != nil {
				require.Equal(t, testCase.expectedPositional, command.Flags().Args())
			}
		})
	}
}

func TestAddToggleFlagRejectsInvalidValues(t *testing.T) {
	command := &cobra.Command{}

	var toggleValue bool
	AddToggleFlag(command.Flags(), &toggleValue, "ignore-version", "", false, "Skip the version gate")

	parseError := command.ParseFlags([]string{"--ignore-version=maybe"})
	require.Error(t, parseError)
	require.False(t, toggleValue)
}

func TestNormalizeToggleArgumentsHandlesShorthand(t *testing.T) {
	command := &cobra.Command{}

	var toggleValue bool
	AddToggleFlag(command.Flags(), &toggleValue, "ignore-version", "i", true, "Skip the version gate")
	require.True(t, toggleValue)

	normalizedArguments := NormalizeToggleArguments(command.Flags(), []string{"-i", "no"})
	require.Equal(t, []string{"-i=no"}, normalizedArguments)
	require.NoError(t, command.ParseFlags(normalizedArguments))
	require.False(t, toggleValue)
}

func TestNormalizeToggleArgumentsIgnoresOtherFlags(t *testing.T) {
	command := &cobra.Command{}
	var toggleValue bool
	AddToggleFlag(command.Flags(), &toggleValue, "json", "", false, "")
	command.Flags().String("mode", "blocking", "")

	arguments := []string{"--mode", "yes", "--json", "--", "--json", "no"}
	require.Equal(t, arguments, NormalizeToggleArguments(command.Flags(), arguments))
}

func TestToggleUsageHighlightsDefault(t *testing.T) {
	command := &cobra.Command{}
	var enabled bool
	var disabled bool
	AddToggleFlag(command.Flags(), &enabled, "enabled", "", true, "Enabled by default")
	AddToggleFlag(command.Flags(), &disabled, "disabled", "", false, "")

	require.Equal(t, "`<YES|no>` Enabled by default", command.Flags().Lookup("enabled").Usage)
	require.Equal(t, "`<yes|NO>`", command.Flags().Lookup("disabled").Usage)
}
