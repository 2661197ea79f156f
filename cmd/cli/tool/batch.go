package tool

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/clidriver/internal/session"
	"github.com/temirov/clidriver/internal/utils/flags"
)

const (
	batchCommandUseConstant              = "batch --line <arguments> [--line <arguments>...]"
	batchCommandShortDescriptionConstant = "Run several argument lines concurrently"
	batchCommandLongDescriptionConstant  = "batch starts every --line in its own forked session, waits for all of them and prints each result in input order."
	batchLineFlagUsageConstant           = "Argument line to run (repeatable)"
	concurrencyFlagNameConstant          = "concurrency"
	concurrencyFlagUsageConstant         = "Maximum number of commands running at once (0 runs all at once)"
	batchRawFlagUsageConstant            = "Report failed commands without failing the batch"
	batchResultHeaderTemplateConstant    = "[%d] %s (exit code %d)\n"
	batchCompletedMessageConstant        = "Batch finished"
	commandCountLogFieldConstant         = "commands"
	failureCountLogFieldConstant         = "failures"
	noBatchLinesMessageConstant          = "batch requires at least one --line"
)

// ErrNoBatchLines indicates batch was invoked without --line values.
var ErrNoBatchLines = errors.New(noBatchLinesMessageConstant)

// BatchCommandBuilder assembles the batch command.
type BatchCommandBuilder struct {
	LoggerProvider  LoggerProvider
	SessionProvider SessionProvider
}

// Build constructs the batch command.
func (builder *BatchCommandBuilder) Build() (*cobra.Command, error) {
	var raw bool
	command := &cobra.Command{
		Use:   batchCommandUseConstant,
		Short: batchCommandShortDescriptionConstant,
		Long:  batchCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, raw)
		},
	}

	command.Flags().StringArray(lineFlagNameConstant, nil, batchLineFlagUsageConstant)
	command.Flags().Int(concurrencyFlagNameConstant, 0, concurrencyFlagUsageConstant)
	flags.AddToggleFlag(command.Flags(), &raw, rawFlagNameConstant, "", false, batchRawFlagUsageConstant)

	return command, nil
}

func (builder *BatchCommandBuilder) run(command *cobra.Command, raw bool) error {
	lines, _ := command.Flags().GetStringArray(lineFlagNameConstant)
	if len(lines) == 0 {
		return ErrNoBatchLines
	}
	concurrency, _ := command.Flags().GetInt(concurrencyFlagNameConstant)

	parentSession, sessionError := openSession(builder.SessionProvider, command.Context())
	if sessionError != nil {
		return sessionError
	}

	executionContext := command.Context()
	outcomes := make([]session.Outcome, len(lines))
	var workerGroup errgroup.Group
	if concurrency > 0 {
		workerGroup.SetLimit(concurrency)
	}
	for lineIndex, line := range lines {
		lineIndex := lineIndex
		forkedSession := parentSession.Fork().Line(line)
		workerGroup.Go(func() error {
			outcomes[lineIndex] = forkedSession.Start(executionContext).Wait()
			return outcomes[lineIndex].Err
		})
	}
	firstFailure := workerGroup.Wait()

	var failures []error
	output := command.OutOrStdout()
	for lineIndex, outcome := range outcomes {
		if _, writeError := fmt.Fprintf(output, batchResultHeaderTemplateConstant, lineIndex+1, lines[lineIndex], outcome.Result.ExitCode); writeError != nil {
			return writeError
		}
		if _, writeError := fmt.Fprint(output, outcome.Result.StandardOutput); writeError != nil {
			return writeError
		}
		if outcome.Err != nil {
			failures = append(failures, outcome.Err)
		}
	}

	resolveLogger(builder.LoggerProvider).Info(
		batchCompletedMessageConstant,
		zap.Int(commandCountLogFieldConstant, len(lines)),
		zap.Int(failureCountLogFieldConstant, len(failures)),
	)

	if raw || firstFailure == nil {
		return nil
	}
	return errors.Join(failures...)
}
