package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/clidriver/cmd/cli/tool"
	"github.com/temirov/clidriver/internal/execshell"
	"github.com/temirov/clidriver/internal/session"
	"github.com/temirov/clidriver/internal/utils"
	"github.com/temirov/clidriver/internal/utils/flags"
	pathutils "github.com/temirov/clidriver/internal/utils/path"
)

const (
	applicationNameConstant                 = "clidriver"
	applicationShortDescriptionConstant     = "Drive an external command-line tool behind a version gate"
	applicationLongDescriptionConstant      = "clidriver builds argument lists without a shell, checks the tool's version once per invocation and runs it in blocking, async or streamed mode."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	toolConfigurationKeyConstant            = "tool"
	environmentPrefixConstant               = "CLIDRIVER"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationExecutableFieldConstant    = "executable"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	sessionOptionsMissingMessageConstant    = "session options not initialized"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryNameConstant  = "clidriver"
	versionCommandNameConstant              = "version"
	execCommandNameConstant                 = "exec"
	batchCommandNameConstant                = "batch"
)

// ErrSessionOptionsMissing indicates a session was requested before configuration was initialized.
var ErrSessionOptionsMissing = errors.New(sessionOptionsMissingMessageConstant)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tool   tool.Configuration             `mapstructure:"tool"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	homeExpander           *pathutils.HomeExpander
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	sessionFlagValues      *flags.SessionFlagValues
	runnerFactory          execshell.RunnerFactory
	environmentLookup      session.EnvironmentLookup
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	homeExpander := pathutils.NewHomeExpander()
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, userConfigurationDirectory+string(os.PathSeparator)+userConfigurationDirectoryNameConstant)
	}

	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		searchPaths,
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		homeExpander:           homeExpander,
		logger:                 zap.NewNop(),
		runnerFactory:          execshell.NewOSRunnerFactory(),
		environmentLookup:      os.LookupEnv,
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlagSet := cobraCommand.PersistentFlags()
	persistentFlagSet.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	flags.AddChoiceFlag(persistentFlagSet, &application.logLevelFlagValue, logLevelFlagNameConstant, string(utils.LogLevelInfo), utils.LogLevelChoices(), logLevelFlagUsageConstant)
	flags.AddChoiceFlag(persistentFlagSet, &application.logFormatFlagValue, logFormatFlagNameConstant, string(utils.LogFormatStructured), utils.LogFormatChoices(), logFormatFlagUsageConstant)

	defaultToolConfiguration := tool.DefaultConfiguration()
	application.sessionFlagValues = flags.BindSessionFlags(cobraCommand, flags.SessionFlagValues{
		Executable:     defaultToolConfiguration.Executable,
		MinimumVersion: defaultToolConfiguration.MinimumVersion,
		MaximumVersion: defaultToolConfiguration.MaximumVersion,
	})

	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	versionBuilder := tool.VersionCommandBuilder{LoggerProvider: loggerProvider, SessionProvider: application.openSession}
	execBuilder := tool.ExecCommandBuilder{LoggerProvider: loggerProvider, SessionProvider: application.openSession}
	batchBuilder := tool.BatchCommandBuilder{LoggerProvider: loggerProvider, SessionProvider: application.openSession}

	for _, commandFactory := range []struct {
		name  string
		build func() (*cobra.Command, error)
	}{
		{name: versionCommandNameConstant, build: versionBuilder.Build},
		{name: execCommandNameConstant, build: execBuilder.Build},
		{name: batchCommandNameConstant, build: batchBuilder.Build},
	} {
		subcommand, buildError := commandFactory.build()
		if buildError != nil {
			application.logger.Error(fmt.Errorf(commandBuildErrorTemplateConstant, commandFactory.name, buildError).Error())
			continue
		}
		cobraCommand.AddCommand(subcommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy with os.Args and ensures logger flushing.
func (application *Application) Execute() error {
	return application.ExecuteArguments(os.Args[1:])
}

// ExecuteArguments runs the command hierarchy against arguments.
func (application *Application) ExecuteArguments(arguments []string) error {
	normalizedArguments := flags.NormalizeToggleArguments(application.toggleFlagSet(), arguments)
	if normalizedArguments == nil {
		normalizedArguments = []string{}
	}
	application.rootCommand.SetArgs(normalizedArguments)

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range tool.DefaultConfigurationValues(toolConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	configurationFilePath := application.homeExpander.Expand(application.configurationFilePath)
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if flags.Changed(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if flags.Changed(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	sessionOptions := application.sessionOptions(command)
	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationExecutableFieldConstant, sessionOptions.ExecutableName),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(command.Context(), application.configurationMetadata.ConfigFileUsed)
		updatedContext = application.commandContextAccessor.WithSessionOptions(updatedContext, sessionOptions)
		command.SetContext(updatedContext)
	}

	return nil
}

// sessionOptions merges configuration with explicitly set session flags.
func (application *Application) sessionOptions(command *cobra.Command) session.Options {
	toolConfiguration := application.configuration.Tool
	if flags.Changed(command, flags.ExecutableFlagName) {
		toolConfiguration.Executable = application.sessionFlagValues.Executable
	}
	if flags.Changed(command, flags.MinimumVersionFlagName) {
		toolConfiguration.MinimumVersion = application.sessionFlagValues.MinimumVersion
	}
	if flags.Changed(command, flags.MaximumVersionFlagName) {
		toolConfiguration.MaximumVersion = application.sessionFlagValues.MaximumVersion
	}
	if flags.Changed(command, flags.IgnoreVersionFlagName) {
		toolConfiguration.IgnoreVersion = application.sessionFlagValues.IgnoreVersion
	}
	toolConfiguration.Executable = application.homeExpander.ExpandExecutable(toolConfiguration.Executable)

	options := toolConfiguration.SessionOptions()
	options.RunnerFactory = application.runnerFactory
	options.EnvironmentLookup = application.environmentLookup
	options.Logger = application.logger
	return options
}

func (application *Application) openSession(executionContext context.Context) (*session.Session, error) {
	options, available := application.commandContextAccessor.SessionOptions(executionContext)
	if !available {
		return nil, ErrSessionOptionsMissing
	}
	return session.New(executionContext, options)
}

// toggleFlagSet gathers the toggle-capable flags of every command so that "--flag value" can be normalized
// before Cobra resolves the subcommand.
func (application *Application) toggleFlagSet() *pflag.FlagSet {
	combinedFlagSet := pflag.NewFlagSet(applicationNameConstant, pflag.ContinueOnError)
	combinedFlagSet.AddFlagSet(application.rootCommand.PersistentFlags())
	for _, subcommand := range application.rootCommand.Commands() {
		combinedFlagSet.AddFlagSet(subcommand.Flags())
	}
	return combinedFlagSet
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}
