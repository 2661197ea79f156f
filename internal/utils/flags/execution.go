// Package flags provides helpers for binding standardized flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	// ExecutableFlagName overrides the executable driven by the session.
	ExecutableFlagName = "executable"
	// ExecutableFlagUsage describes the executable flag.
	ExecutableFlagUsage = "Executable to drive"
	// MinimumVersionFlagName overrides the lowest accepted tool version.
	MinimumVersionFlagName = "min-version"
	// MinimumVersionFlagUsage describes the minimum version flag.
	MinimumVersionFlagUsage = "Lowest accepted tool version (inclusive)"
	// MaximumVersionFlagName overrides the first rejected tool version.
	MaximumVersionFlagName = "max-version"
	// MaximumVersionFlagUsage describes the maximum version flag.
	MaximumVersionFlagUsage = "First rejected tool version (exclusive)"
	// IgnoreVersionFlagName bypasses the version gate.
	IgnoreVersionFlagName = "ignore-version"
	// IgnoreVersionFlagUsage describes the ignore-version flag.
	IgnoreVersionFlagUsage = "Skip the tool version check"
)

// SessionFlagValues stores session flag values.
type SessionFlagValues struct {
	Executable     string
	MinimumVersion string
	MaximumVersion string
	IgnoreVersion  bool
}

// BindSessionFlags attaches the session flags to command using persistent scope.
func BindSessionFlags(command *cobra.Command, defaults SessionFlagValues) *SessionFlagValues {
	values := defaults
	if command == nil {
		return &values
	}

	persistentFlagSet := command.PersistentFlags()
	bindStringFlag(persistentFlagSet, &values.Executable, ExecutableFlagName, defaults.Executable, ExecutableFlagUsage)
	bindStringFlag(persistentFlagSet, &values.MinimumVersion, MinimumVersionFlagName, defaults.MinimumVersion, MinimumVersionFlagUsage)
	bindStringFlag(persistentFlagSet, &values.MaximumVersion, MaximumVersionFlagName, defaults.MaximumVersion, MaximumVersionFlagUsage)
	if persistentFlagSet.Lookup(IgnoreVersionFlagName) == nil {
		AddToggleFlag(persistentFlagSet, &values.IgnoreVersion, IgnoreVersionFlagName, "", defaults.IgnoreVersion, IgnoreVersionFlagUsage)
	}
	return &values
}

// Changed reports whether the named flag was set explicitly on command or its parents.
func Changed(command *cobra.Command, name string) bool {
	if command == nil {
		return false
	}
	flag := command.Flags().Lookup(name)
	if flag == nil {
		flag = command.InheritedFlags().Lookup(name)
	}
	return flag != nil && flag.Changed
}

func bindStringFlag(flagSet *pflag.FlagSet, target *string, name string, defaultValue string, usage string) {
	if flagSet.Lookup(name) != nil {
		return
	}
	flagSet.StringVar(target, name, defaultValue, usage)
}
