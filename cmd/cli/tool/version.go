package tool

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/clidriver/internal/session"
	"github.com/temirov/clidriver/internal/utils"
)

const (
	versionCommandUseConstant              = "version"
	versionCommandShortDescriptionConstant = "Report the detected tool version"
	versionCommandLongDescriptionConstant  = "version probes the configured executable, prints the detected version and whether it falls inside the accepted range."
	versionReportIndentConstant            = 2
	versionRejectedMessageConstant         = "Tool version rejected"
	detectedVersionLogFieldConstant        = "detected_version"
)

// VersionReport is the YAML document printed by the version command.
type VersionReport struct {
	Executable           string `yaml:"executable,omitempty"`
	Version              string `yaml:"version"`
	AcceptedRange        string `yaml:"accepted_range"`
	Supported            bool   `yaml:"supported"`
	VersionCheckBypassed bool   `yaml:"version_check_bypassed"`
	ConfigurationFile    string `yaml:"configuration_file,omitempty"`
}

// VersionCommandBuilder assembles the version command.
type VersionCommandBuilder struct {
	LoggerProvider  LoggerProvider
	SessionProvider SessionProvider
}

// Build constructs the version command.
func (builder *VersionCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   versionCommandUseConstant,
		Short: versionCommandShortDescriptionConstant,
		Long:  versionCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}, nil
}

func (builder *VersionCommandBuilder) run(command *cobra.Command, arguments []string) error {
	commandSession, sessionError := openSession(builder.SessionProvider, command.Context())

	var report VersionReport
	var rangeError session.VersionRangeError
	switch {
	case sessionError == nil:
		report = VersionReport{
			Executable:           commandSession.Executable(),
			Version:              commandSession.Version(),
			AcceptedRange:        commandSession.VersionRange().String(),
			Supported:            commandSession.VersionRange().Contains(commandSession.Version()),
			VersionCheckBypassed: commandSession.VersionCheckBypassed(),
		}
	case errors.As(sessionError, &rangeError):
		resolveLogger(builder.LoggerProvider).Warn(versionRejectedMessageConstant, zap.String(detectedVersionLogFieldConstant, rangeError.Detected))
		report = VersionReport{
			Version:       rangeError.Detected,
			AcceptedRange: rangeError.AcceptedRange(),
		}
	default:
		return sessionError
	}

	if configurationFilePath, available := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context()); available {
		report.ConfigurationFile = configurationFilePath
	}

	encoder := yaml.NewEncoder(command.OutOrStdout())
	encoder.SetIndent(versionReportIndentConstant)
	if encodeError := encoder.Encode(report); encodeError != nil {
		return encodeError
	}
	if closeError := encoder.Close(); closeError != nil {
		return closeError
	}
	return sessionError
}
