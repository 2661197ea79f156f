package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/temirov/clidriver/internal/execshell"
	"github.com/temirov/clidriver/internal/session"
	"github.com/temirov/clidriver/internal/utils/flags"
)

const (
	execCommandUseConstant              = "exec [flags] [-- tokens...]"
	execCommandShortDescriptionConstant = "Run the tool with the given arguments"
	execCommandLongDescriptionConstant  = "exec tokenizes each --line with shell-style quoting, appends positional tokens verbatim, then runs the tool in blocking, async or stream mode. Separate tool flags from exec flags with --."
	lineFlagNameConstant                = "line"
	lineFlagUsageConstant               = "Argument line tokenized with shell-style quoting (repeatable)"
	modeFlagNameConstant                = "mode"
	modeFlagUsageConstant               = "Execution mode"
	jsonFlagNameConstant                = "json"
	jsonFlagUsageConstant               = "Request JSON output and pretty-print the decoded document"
	yamlFlagNameConstant                = "yaml"
	yamlFlagUsageConstant               = "Request JSON output and re-encode the decoded document as YAML"
	rawFlagNameConstant                 = "raw"
	rawFlagUsageConstant                = "Print the exit code instead of failing on a non-zero exit"
	jsonIndentConstant                  = "  "
	yamlIndentConstant                  = 2
	noArgumentsMessageConstant          = "no arguments supplied; pass tokens after -- or use --line"
	decodingRequiresBlockingTemplate    = "--%s and --%s require --%s=%s"
	rawWithDecodingTemplate             = "--%s cannot be combined with --%s or --%s"
	execDispatchMessageConstant         = "Dispatching tool command"
	modeLogFieldConstant                = "mode"
	argumentCountLogFieldConstant       = "argument_count"
)

// Execution mode flag values.
const (
	ModeBlockingChoice = "blocking"
	ModeAsyncChoice    = "async"
	ModeStreamChoice   = "stream"
)

var (
	// ErrNoArguments indicates exec was invoked without tokens or lines.
	ErrNoArguments = errors.New(noArgumentsMessageConstant)
	// ErrDecodingRequiresBlocking indicates --json or --yaml was combined with a non-blocking mode.
	ErrDecodingRequiresBlocking = fmt.Errorf(decodingRequiresBlockingTemplate, jsonFlagNameConstant, yamlFlagNameConstant, modeFlagNameConstant, ModeBlockingChoice)
	// ErrRawWithDecoding indicates --raw was combined with --json or --yaml.
	ErrRawWithDecoding = fmt.Errorf(rawWithDecodingTemplate, rawFlagNameConstant, jsonFlagNameConstant, yamlFlagNameConstant)
)

type execFlagValues struct {
	mode       string
	decodeJSON bool
	renderYAML bool
	raw        bool
}

// ExecCommandBuilder assembles the exec command.
type ExecCommandBuilder struct {
	LoggerProvider  LoggerProvider
	SessionProvider SessionProvider
}

// Build constructs the exec command.
func (builder *ExecCommandBuilder) Build() (*cobra.Command, error) {
	values := &execFlagValues{}
	command := &cobra.Command{
		Use:   execCommandUseConstant,
		Short: execCommandShortDescriptionConstant,
		Long:  execCommandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, *values)
		},
	}

	command.Flags().StringArray(lineFlagNameConstant, nil, lineFlagUsageConstant)
	flags.AddChoiceFlag(command.Flags(), &values.mode, modeFlagNameConstant, ModeBlockingChoice, []string{ModeBlockingChoice, ModeAsyncChoice, ModeStreamChoice}, modeFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &values.decodeJSON, jsonFlagNameConstant, "", false, jsonFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &values.renderYAML, yamlFlagNameConstant, "", false, yamlFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &values.raw, rawFlagNameConstant, "", false, rawFlagUsageConstant)

	return command, nil
}

func (builder *ExecCommandBuilder) run(command *cobra.Command, arguments []string, values execFlagValues) error {
	lines, _ := command.Flags().GetStringArray(lineFlagNameConstant)
	if len(arguments) == 0 && len(lines) == 0 {
		return ErrNoArguments
	}

	decoding := values.decodeJSON || values.renderYAML
	if decoding && values.mode != ModeBlockingChoice {
		return ErrDecodingRequiresBlocking
	}
	if decoding && values.raw {
		return ErrRawWithDecoding
	}

	commandSession, sessionError := openSession(builder.SessionProvider, command.Context())
	if sessionError != nil {
		return sessionError
	}

	for _, line := range lines {
		commandSession.Line(line)
	}
	commandSession.Args(arguments...)

	resolveLogger(builder.LoggerProvider).Debug(
		execDispatchMessageConstant,
		zap.String(modeLogFieldConstant, values.mode),
		zap.Int(argumentCountLogFieldConstant, len(commandSession.Arguments())),
	)

	executionContext := command.Context()
	switch values.mode {
	case ModeAsyncChoice:
		return runAsync(executionContext, command, commandSession, values)
	case ModeStreamChoice:
		return runStream(executionContext, command, commandSession, values)
	default:
		return runBlocking(executionContext, command, commandSession, values)
	}
}

func runBlocking(executionContext context.Context, command *cobra.Command, commandSession *session.Session, values execFlagValues) error {
	if values.raw {
		return writeRawResult(command.OutOrStdout(), command.ErrOrStderr(), commandSession.ExecuteRaw(executionContext))
	}

	if values.decodeJSON || values.renderYAML {
		var decoded any
		if executionError := commandSession.ExecuteJSON(executionContext, &decoded); executionError != nil {
			return executionError
		}
		return writeDecoded(command.OutOrStdout(), decoded, values.renderYAML)
	}

	standardOutput, executionError := commandSession.ExecuteString(executionContext)
	if executionError != nil {
		return executionError
	}
	_, writeError := io.WriteString(command.OutOrStdout(), standardOutput)
	return writeError
}

func runAsync(executionContext context.Context, command *cobra.Command, commandSession *session.Session, values execFlagValues) error {
	if values.raw {
		return writeRawResult(command.OutOrStdout(), command.ErrOrStderr(), commandSession.StartRaw(executionContext).Wait())
	}

	outcome := commandSession.Start(executionContext).Wait()
	if outcome.Err != nil {
		return outcome.Err
	}
	_, writeError := io.WriteString(command.OutOrStdout(), outcome.Result.StandardOutput)
	return writeError
}

func runStream(executionContext context.Context, command *cobra.Command, commandSession *session.Session, values execFlagValues) error {
	exitCode := commandSession.Stream(executionContext).Wait()
	if values.raw {
		return writeRawResult(command.OutOrStdout(), command.ErrOrStderr(), execshell.ExecutionResult{ExitCode: exitCode})
	}
	if exitCode != 0 {
		return ExitCodeError{Executable: commandSession.Executable(), ExitCode: exitCode}
	}
	return nil
}

func writeDecoded(output io.Writer, decoded any, renderYAML bool) error {
	if renderYAML {
		encoder := yaml.NewEncoder(output)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(decoded); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", jsonIndentConstant)
	return encoder.Encode(decoded)
}
