package tool

import (
	"strings"

	"github.com/temirov/clidriver/internal/session"
)

const (
	executableConfigurationKeyConstant          = "executable"
	nameConfigurationKeyConstant                = "name"
	versionFlagConfigurationKeyConstant         = "version_flag"
	minimumVersionConfigurationKeyConstant      = "minimum_version"
	maximumVersionConfigurationKeyConstant      = "maximum_version"
	ignoreVersionConfigurationKeyConstant       = "ignore_version"
	skipVersionVariableConfigurationKeyConstant = "skip_version_variable"
	outputFormatConfigurationKeyConstant        = "output_format"
	configurationKeySeparatorConstant           = "."
)

// Configuration captures the settings of the driven tool.
type Configuration struct {
	Executable          string   `mapstructure:"executable"`
	Name                string   `mapstructure:"name"`
	VersionFlag         string   `mapstructure:"version_flag"`
	MinimumVersion      string   `mapstructure:"minimum_version"`
	MaximumVersion      string   `mapstructure:"maximum_version"`
	IgnoreVersion       bool     `mapstructure:"ignore_version"`
	SkipVersionVariable string   `mapstructure:"skip_version_variable"`
	OutputFormat        []string `mapstructure:"output_format"`
}

// DefaultConfiguration mirrors session.DefaultOptions.
func DefaultConfiguration() Configuration {
	defaults := session.DefaultOptions()
	return Configuration{
		Executable:          defaults.ExecutableName,
		Name:                defaults.ToolName,
		VersionFlag:         defaults.VersionFlag,
		MinimumVersion:      defaults.MinimumVersion,
		MaximumVersion:      defaults.MaximumVersion,
		SkipVersionVariable: defaults.SkipVersionCheckVariable,
		OutputFormat:        defaults.OutputFormatArguments,
	}
}

// DefaultConfigurationValues returns the defaults keyed for a configuration loader under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	values := map[string]any{
		executableConfigurationKeyConstant:          defaults.Executable,
		nameConfigurationKeyConstant:                defaults.Name,
		versionFlagConfigurationKeyConstant:         defaults.VersionFlag,
		minimumVersionConfigurationKeyConstant:      defaults.MinimumVersion,
		maximumVersionConfigurationKeyConstant:      defaults.MaximumVersion,
		ignoreVersionConfigurationKeyConstant:       defaults.IgnoreVersion,
		skipVersionVariableConfigurationKeyConstant: defaults.SkipVersionVariable,
		outputFormatConfigurationKeyConstant:        defaults.OutputFormat,
	}

	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return values
	}
	prefixedValues := make(map[string]any, len(values))
	for key, value := range values {
		prefixedValues[trimmedPrefix+configurationKeySeparatorConstant+key] = value
	}
	return prefixedValues
}

// SessionOptions converts the configuration into session options. Blank settings fall back to session defaults.
func (configuration Configuration) SessionOptions() session.Options {
	return session.Options{
		MinimumVersion:           strings.TrimSpace(configuration.MinimumVersion),
		MaximumVersion:           strings.TrimSpace(configuration.MaximumVersion),
		IgnoreVersion:            configuration.IgnoreVersion,
		ExecutableName:           strings.TrimSpace(configuration.Executable),
		ToolName:                 strings.TrimSpace(configuration.Name),
		VersionFlag:              strings.TrimSpace(configuration.VersionFlag),
		SkipVersionCheckVariable: strings.TrimSpace(configuration.SkipVersionVariable),
		OutputFormatArguments:    append([]string{}, configuration.OutputFormat...),
	}
}
