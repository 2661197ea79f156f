package session

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/clidriver/internal/execshell"
)

const (
	// DefaultMinimumVersion is the lowest accepted tool version.
	DefaultMinimumVersion = "2.0.0"
	// DefaultMaximumVersion is the first rejected tool version.
	DefaultMaximumVersion = "2.1"
	// DefaultExecutableName is the tool spawned when no executable is configured.
	DefaultExecutableName = "az"
	// DefaultToolName prefixes the first line of the version probe output.
	DefaultToolName = "azure-cli"
	// DefaultVersionFlag is passed to the tool to print its version.
	DefaultVersionFlag = "-v"
	// DefaultSkipVersionCheckVariable names the environment variable that bypasses the version gate.
	DefaultSkipVersionCheckVariable = "AZCLI_SKIPVERSIONCHECK"

	windowsOperatingSystemConstant = "windows"
	windowsCommandSuffixConstant   = ".cmd"
	outputFormatFlagConstant       = "-o"
	outputFormatJSONConstant       = "json"
)

// EnvironmentLookup resolves environment variables.
type EnvironmentLookup func(key string) (string, bool)

// Options configures New.
type Options struct {
	MinimumVersion string
	MaximumVersion string
	IgnoreVersion  bool
	// RunnerFactory builds the process runner; defaults to execshell.NewOSRunnerFactory().
	RunnerFactory execshell.RunnerFactory
	// ExecutableName is adjusted for the operating system before it reaches the runner.
	ExecutableName           string
	ToolName                 string
	VersionFlag              string
	SkipVersionCheckVariable string
	EnvironmentLookup        EnvironmentLookup
	// OperatingSystem overrides runtime.GOOS when resolving the executable name.
	OperatingSystem string
	// OutputFormatArguments are appended by ExecuteJSON.
	OutputFormatArguments []string
	Logger                *zap.Logger
	// Observer receives lifecycle events alongside the console logger over Logger.
	Observer execshell.CommandEventObserver
}

// DefaultOptions returns the options used for unset fields.
func DefaultOptions() Options {
	return Options{
		MinimumVersion:           DefaultMinimumVersion,
		MaximumVersion:           DefaultMaximumVersion,
		RunnerFactory:            execshell.NewOSRunnerFactory(),
		ExecutableName:           DefaultExecutableName,
		ToolName:                 DefaultToolName,
		VersionFlag:              DefaultVersionFlag,
		SkipVersionCheckVariable: DefaultSkipVersionCheckVariable,
		EnvironmentLookup:        os.LookupEnv,
		OperatingSystem:          runtime.GOOS,
		OutputFormatArguments:    []string{outputFormatFlagConstant, outputFormatJSONConstant},
		Logger:                   zap.NewNop(),
	}
}

func (options Options) withDefaults() Options {
	defaults := DefaultOptions()
	resolved := options
	if len(strings.TrimSpace(resolved.MinimumVersion)) == 0 {
		resolved.MinimumVersion = defaults.MinimumVersion
	}
	if len(strings.TrimSpace(resolved.MaximumVersion)) == 0 {
		resolved.MaximumVersion = defaults.MaximumVersion
	}
	if resolved.RunnerFactory == nil {
		resolved.RunnerFactory = defaults.RunnerFactory
	}
	if len(strings.TrimSpace(resolved.ExecutableName)) == 0 {
		resolved.ExecutableName = defaults.ExecutableName
	}
	if len(strings.TrimSpace(resolved.ToolName)) == 0 {
		resolved.ToolName = defaults.ToolName
	}
	if len(strings.TrimSpace(resolved.VersionFlag)) == 0 {
		resolved.VersionFlag = defaults.VersionFlag
	}
	if len(strings.TrimSpace(resolved.SkipVersionCheckVariable)) == 0 {
		resolved.SkipVersionCheckVariable = defaults.SkipVersionCheckVariable
	}
	if resolved.EnvironmentLookup == nil {
		resolved.EnvironmentLookup = defaults.EnvironmentLookup
	}
	if len(resolved.OperatingSystem) == 0 {
		resolved.OperatingSystem = defaults.OperatingSystem
	}
	if len(resolved.OutputFormatArguments) == 0 {
		resolved.OutputFormatArguments = defaults.OutputFormatArguments
	}
	if resolved.Logger == nil {
		resolved.Logger = defaults.Logger
	}
	return resolved
}

// ResolveExecutableName adjusts executableName for operatingSystem.
// Windows process spawning cannot resolve batch shims without their suffix, so
// a bare name gains ".cmd" there.
func ResolveExecutableName(executableName string, operatingSystem string) string {
	trimmedName := strings.TrimSpace(executableName)
	if operatingSystem != windowsOperatingSystemConstant {
		return trimmedName
	}
	if len(filepath.Ext(trimmedName)) > 0 {
		return trimmedName
	}
	return trimmedName + windowsCommandSuffixConstant
}
