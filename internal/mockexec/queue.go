package mockexec

import (
	"sync"

	"github.com/temirov/clidriver/internal/execshell"
)

const (
	// DefaultFailureExitCode is the exit code served when no response was queued.
	DefaultFailureExitCode = 100
	// DefaultFailureStandardError is the diagnostic served when no response was queued.
	DefaultFailureStandardError = "Mock ExecResults not set"

	versionPresetStandardOutputConstant = "azure-cli (2.0.0)\r\n\r\n"
	failurePresetStandardErrorConstant  = "mock error response"
)

// Preset identifies a canned response.
type Preset int

// Canned responses.
const (
	// PresetVersion answers a version probe with azure-cli (2.0.0).
	PresetVersion Preset = iota
	// PresetSuccess exits with code zero and no output.
	PresetSuccess
	// PresetFailure exits with code one and a diagnostic on standard error.
	PresetFailure
)

// DefaultFailureResult returns the result served by an exhausted queue.
func DefaultFailureResult() execshell.ExecutionResult {
	return execshell.ExecutionResult{
		ExitCode:      DefaultFailureExitCode,
		StandardError: DefaultFailureStandardError,
	}
}

// PresetResult returns the execution result associated with preset.
func PresetResult(preset Preset) execshell.ExecutionResult {
	switch preset {
	case PresetVersion:
		return execshell.ExecutionResult{ExitCode: 0, StandardOutput: versionPresetStandardOutputConstant}
	case PresetFailure:
		return execshell.ExecutionResult{ExitCode: 1, StandardError: failurePresetStandardErrorConstant}
	default:
		return execshell.ExecutionResult{ExitCode: 0}
	}
}

// ResponseQueue holds pending results in FIFO order. It is safe for concurrent use.
type ResponseQueue struct {
	mutex     sync.Mutex
	responses []execshell.ExecutionResult
}

// NewResponseQueue constructs a queue preloaded with responses.
func NewResponseQueue(responses ...execshell.ExecutionResult) *ResponseQueue {
	queue := &ResponseQueue{}
	return queue.Add(responses...)
}

// Add enqueues responses and returns the queue for chaining.
func (queue *ResponseQueue) Add(responses ...execshell.ExecutionResult) *ResponseQueue {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	queue.responses = append(queue.responses, responses...)
	return queue
}

// AddPreset enqueues the canned response for preset.
func (queue *ResponseQueue) AddPreset(preset Preset) *ResponseQueue {
	return queue.Add(PresetResult(preset))
}

// Next dequeues the oldest response, or DefaultFailureResult when the queue is empty.
func (queue *ResponseQueue) Next() execshell.ExecutionResult {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	if len(queue.responses) == 0 {
		return DefaultFailureResult()
	}
	nextResponse := queue.responses[0]
	queue.responses = queue.responses[1:]
	return nextResponse
}

// Clear drops every pending response.
func (queue *ResponseQueue) Clear() *ResponseQueue {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	queue.responses = nil
	return queue
}

// Len reports how many responses remain.
func (queue *ResponseQueue) Len() int {
	queue.mutex.Lock()
	defer queue.mutex.Unlock()
	return len(queue.responses)
}
