package session

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/temirov/clidriver/internal/arguments"
	"github.com/temirov/clidriver/internal/execshell"
	"github.com/temirov/clidriver/internal/ui"
	"github.com/temirov/clidriver/internal/versioning"
)

const (
	// UndetectedVersion is reported when the probe output carries no recognizable version.
	UndetectedVersion = "0.0.0"

	versionPatternTemplateConstant          = `^%s \(?(.*)\)`
	skipVersionCheckPatternConstant         = `(?i)^(true|1)$`
	lineSeparatorConstant                   = "\n"
	carriageReturnConstant                  = "\r"
	versionDetectedMessageConstant          = "Detected tool version"
	versionCheckBypassedMessageConstant     = "Tool version check bypassed"
	executableFieldNameConstant             = "executable"
	detectedVersionFieldNameConstant        = "version"
	acceptedRangeFieldNameConstant          = "accepted_range"
	bypassReasonFieldNameConstant           = "reason"
	bypassReasonOptionConstant              = "ignore_version option"
	bypassReasonEnvironmentTemplateConstant = "%s environment variable"
)

var (
	skipVersionCheckPattern = regexp.MustCompile(skipVersionCheckPatternConstant)
	versionPatterns         sync.Map
)

// Outcome pairs an asynchronous result with its gated conversion.
type Outcome struct {
	Result execshell.ExecutionResult
	Err    error
}

type sharedState struct {
	runner                execshell.CommandRunner
	observer              execshell.CommandEventObserver
	logger                *zap.Logger
	versionRange          versioning.Range
	detectedVersion       string
	versionCheckBypassed  bool
	outputFormatArguments []string
}

// Session accumulates arguments for one external tool and executes them.
type Session struct {
	shared *sharedState
	buffer *arguments.Buffer
}

// New resolves the executable, probes its version and applies the version gate.
// It returns either a usable Session or an error, never both.
func New(executionContext context.Context, options Options) (*Session, error) {
	resolvedOptions := options.withDefaults()
	executableName := ResolveExecutableName(resolvedOptions.ExecutableName, resolvedOptions.OperatingSystem)

	runner, runnerError := resolvedOptions.RunnerFactory(executableName)
	if runnerError != nil {
		return nil, fmt.Errorf(runnerCreationErrorTemplateConstant, executableName, runnerError)
	}

	observer := buildObserver(options)

	session := &Session{
		shared: &sharedState{
			runner:   runner,
			observer: observer,
			logger:   resolvedOptions.Logger,
			versionRange: versioning.Range{
				Minimum: resolvedOptions.MinimumVersion,
				Maximum: resolvedOptions.MaximumVersion,
			},
			outputFormatArguments: append([]string{}, resolvedOptions.OutputFormatArguments...),
		},
		buffer: arguments.NewBuffer(),
	}

	probeOutput, probeError := session.Arg(resolvedOptions.VersionFlag).ExecuteString(executionContext)
	if probeError != nil {
		return nil, VersionProbeError{Executable: runner.Executable(), Cause: probeError}
	}
	session.shared.detectedVersion = ParseVersion(probeOutput, resolvedOptions.ToolName)

	bypassReason := ""
	if resolvedOptions.IgnoreVersion {
		bypassReason = bypassReasonOptionConstant
	} else if skipVersionCheckRequested(resolvedOptions.EnvironmentLookup, resolvedOptions.SkipVersionCheckVariable) {
		bypassReason = fmt.Sprintf(bypassReasonEnvironmentTemplateConstant, resolvedOptions.SkipVersionCheckVariable)
	}
	session.shared.versionCheckBypassed = len(bypassReason) > 0

	session.shared.logger.Debug(
		versionDetectedMessageConstant,
		zap.String(executableFieldNameConstant, runner.Executable()),
		zap.String(detectedVersionFieldNameConstant, session.shared.detectedVersion),
		zap.String(acceptedRangeFieldNameConstant, session.shared.versionRange.String()),
	)

	if session.shared.versionCheckBypassed {
		session.shared.logger.Warn(
			versionCheckBypassedMessageConstant,
			zap.String(detectedVersionFieldNameConstant, session.shared.detectedVersion),
			zap.String(bypassReasonFieldNameConstant, bypassReason),
		)
		return session, nil
	}

	if !session.shared.versionRange.Contains(session.shared.detectedVersion) {
		return nil, VersionRangeError{
			Minimum:  session.shared.versionRange.Minimum,
			Maximum:  session.shared.versionRange.Maximum,
			Detected: session.shared.detectedVersion,
		}
	}
	return session, nil
}

// buildObserver fans events out to the console logger over options.Logger and to options.Observer.
// Without a Logger the console side is a no-op.
func buildObserver(options Options) execshell.CommandEventObserver {
	var loggingObserver execshell.CommandEventObserver = execshell.NoopCommandEventObserver{}
	if options.Logger != nil {
		loggingObserver = ui.NewConsoleCommandEventLogger(options.Logger)
	}
	if options.Observer == nil {
		return loggingObserver
	}
	return execshell.CommandEventObservers{loggingObserver, options.Observer}
}

// ParseVersion extracts the version from the first line of probe output.
// Output not starting with "<toolName> (" yields UndetectedVersion.
func ParseVersion(probeOutput string, toolName string) string {
	firstLine := strings.SplitN(probeOutput, lineSeparatorConstant, 2)[0]
	firstLine = strings.TrimSuffix(firstLine, carriageReturnConstant)
	matches := versionPatternFor(toolName).FindStringSubmatch(firstLine)
	if len(matches) < 2 {
		return UndetectedVersion
	}
	return matches[1]
}

// versionPatternFor returns the compiled probe pattern for toolName, compiling it once per name.
func versionPatternFor(toolName string) *regexp.Regexp {
	if cachedPattern, found := versionPatterns.Load(toolName); found {
		return cachedPattern.(*regexp.Regexp)
	}
	compiledPattern := regexp.MustCompile(fmt.Sprintf(versionPatternTemplateConstant, regexp.QuoteMeta(toolName)))
	storedPattern, _ := versionPatterns.LoadOrStore(toolName, compiledPattern)
	return storedPattern.(*regexp.Regexp)
}

func skipVersionCheckRequested(lookup EnvironmentLookup, variableName string) bool {
	value, found := lookup(variableName)
	if !found {
		return false
	}
	return skipVersionCheckPattern.MatchString(value)
}

// Version returns the version detected at construction.
func (session *Session) Version() string {
	return session.shared.detectedVersion
}

// VersionRange returns the accepted version interval.
func (session *Session) VersionRange() versioning.Range {
	return session.shared.versionRange
}

// VersionCheckBypassed reports whether the range check was skipped at construction.
func (session *Session) VersionCheckBypassed() bool {
	return session.shared.versionCheckBypassed
}

// Executable returns the resolved executable name.
func (session *Session) Executable() string {
	return session.shared.runner.Executable()
}

// Fork returns a session sharing this session's runner and version with an empty buffer.
func (session *Session) Fork() *Session {
	return &Session{shared: session.shared, buffer: arguments.NewBuffer()}
}

// Arg appends a single token after trimming it; empty tokens are skipped.
func (session *Session) Arg(token string) *Session {
	session.buffer.Append(token)
	return session
}

// Args appends tokens verbatim.
func (session *Session) Args(tokens ...string) *Session {
	session.buffer.AppendAll(tokens...)
	return session
}

// Line tokenizes rawLine and appends the resulting tokens.
func (session *Session) Line(rawLine string) *Session {
	session.buffer.AppendLine(rawLine)
	return session
}

// ArgIf appends tokens only when predicate returns true.
func (session *Session) ArgIf(predicate func() bool, tokens ...string) *Session {
	session.buffer.AppendIf(predicate, tokens...)
	return session
}

// Clear empties the argument buffer.
func (session *Session) Clear() *Session {
	session.buffer.Clear()
	return session
}

// Arguments returns a copy of the pending tokens.
func (session *Session) Arguments() []string {
	return session.buffer.Snapshot()
}

// ExecuteRaw runs the pending arguments to completion and returns the unconverted result.
func (session *Session) ExecuteRaw(executionContext context.Context) execshell.ExecutionResult {
	_, result := session.executeBlocking(executionContext)
	return result
}

// Execute runs the pending arguments and reports a failed exit as an error.
func (session *Session) Execute(executionContext context.Context) error {
	_, executionError := session.ExecuteString(executionContext)
	return executionError
}

// ExecuteString runs the pending arguments and returns standard output.
func (session *Session) ExecuteString(executionContext context.Context) (string, error) {
	command, result := session.executeBlocking(executionContext)
	if gateError := session.gate(command, result); gateError != nil {
		return "", gateError
	}
	return result.StandardOutput, nil
}

// ExecuteJSON appends the JSON output-format arguments, runs the command and decodes standard output into target.
func (session *Session) ExecuteJSON(executionContext context.Context, target any) error {
	session.buffer.AppendAll(session.shared.outputFormatArguments...)
	standardOutput, executionError := session.ExecuteString(executionContext)
	if executionError != nil {
		return executionError
	}
	if decodingError := json.Unmarshal([]byte(standardOutput), target); decodingError != nil {
		return ResponseDecodingError{Executable: session.Executable(), Cause: decodingError}
	}
	return nil
}

// StartRaw launches the pending arguments in the background and returns the unconverted result handle.
func (session *Session) StartRaw(executionContext context.Context) *execshell.Pending[execshell.ExecutionResult] {
	_, pending := session.startAsync(executionContext)
	return pending
}

// Start launches the pending arguments in the background; the outcome carries the gated conversion.
func (session *Session) Start(executionContext context.Context) *execshell.Pending[Outcome] {
	command, pending := session.startAsync(executionContext)
	return execshell.Then(pending, func(result execshell.ExecutionResult) Outcome {
		return Outcome{Result: result, Err: session.gate(command, result)}
	})
}

// Stream runs the pending arguments attached to the host's standard streams and resolves with the exit code.
func (session *Session) Stream(executionContext context.Context) *execshell.Pending[int] {
	command := session.takeCommand(execshell.ModeStreamed)
	session.shared.observer.CommandStarted(command)
	pending := session.shared.runner.Stream(executionContext, command.Arguments)
	return execshell.Then(pending, func(exitCode int) int {
		session.shared.observer.CommandCompleted(command, execshell.ExecutionResult{
			ExitCode:     exitCode,
			Arguments:    command.Arguments,
			InvocationID: command.InvocationID,
		})
		return exitCode
	})
}

func (session *Session) executeBlocking(executionContext context.Context) (execshell.ShellCommand, execshell.ExecutionResult) {
	command := session.takeCommand(execshell.ModeBlocking)
	session.shared.observer.CommandStarted(command)
	result := session.shared.runner.Run(executionContext, command.Arguments)
	result.InvocationID = command.InvocationID
	session.shared.observer.CommandCompleted(command, result)
	return command, result
}

func (session *Session) startAsync(executionContext context.Context) (execshell.ShellCommand, *execshell.Pending[execshell.ExecutionResult]) {
	command := session.takeCommand(execshell.ModeAsyncCollect)
	session.shared.observer.CommandStarted(command)
	pending := session.shared.runner.Start(executionContext, command.Arguments)
	return command, execshell.Then(pending, func(result execshell.ExecutionResult) execshell.ExecutionResult {
		result.InvocationID = command.InvocationID
		session.shared.observer.CommandCompleted(command, result)
		return result
	})
}

// takeCommand snapshots the buffer into a command and clears it.
func (session *Session) takeCommand(mode execshell.ExecutionMode) execshell.ShellCommand {
	command := execshell.ShellCommand{
		Executable:   session.shared.runner.Executable(),
		Arguments:    session.buffer.Snapshot(),
		Mode:         mode,
		InvocationID: ulid.Make().String(),
	}
	session.buffer.Clear()
	return command
}

func (session *Session) gate(command execshell.ShellCommand, result execshell.ExecutionResult) error {
	if result.Succeeded() {
		return nil
	}
	failure := execshell.NewCommandFailedError(command, result)
	session.shared.observer.CommandExecutionFailed(command, failure)
	return failure
}
