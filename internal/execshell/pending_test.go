package execshell_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/clidriver/internal/execshell"
)

func TestResolvedPendingIsComplete(testInstance *testing.T) {
	pending := execshell.Resolved(7)

	select {
	case <-pending.Done():
	default:
		testInstance.Fatal("resolved handle must be complete")
	}
	require.Equal(testInstance, 7, pending.Wait())
	require.Equal(testInstance, 7, pending.Wait())
}

func TestThenTransformsOutcome(testInstance *testing.T) {
	source := execshell.Resolved(execshell.ExecutionResult{ExitCode: 2, StandardError: "boom"})
	derived := execshell.Then(source, func(result execshell.ExecutionResult) string {
		return result.StandardError
	})
	require.Equal(testInstance, "boom", derived.Wait())
}
