package versioning_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/clidriver/internal/versioning"
)

func TestRangeContainsIsHalfOpen(testInstance *testing.T) {
	versionRange := versioning.Range{Minimum: "2.0.0", Maximum: "2.1"}

	testCases := []struct {
		version  string
		expected bool
	}{
		{version: "2.0.0", expected: true},
		{version: "2.0", expected: true},
		{version: "2.0.5", expected: true},
		{version: "2.0.99", expected: true},
		{version: "2.1", expected: false},
		{version: "2.1.0", expected: false},
		{version: "2.1.5", expected: false},
		{version: "1.9.9", expected: false},
		{version: "0.0.0", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.version, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, versionRange.Contains(testCase.version))
		})
	}
}

func TestRangeString(testInstance *testing.T) {
	require.Equal(testInstance, "[2.0.0, 2.1)", versioning.Range{Minimum: "2.0.0", Maximum: "2.1"}.String())
}
