package mockexec

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/temirov/clidriver/internal/execshell"
)

const (
	fixtureReadErrorTemplateConstant  = "unable to read response fixture %s: %w"
	fixtureParseErrorTemplateConstant = "unable to parse response fixture %s: %w"
)

// ResponseFixture is the YAML representation of a queued result.
type ResponseFixture struct {
	ExitCode       int    `yaml:"exit_code"`
	StandardOutput string `yaml:"stdout"`
	StandardError  string `yaml:"stderr"`
	LaunchError    string `yaml:"launch_error,omitempty"`
}

type responseFixtureDocument struct {
	Responses []ResponseFixture `yaml:"responses"`
}

// Result converts the fixture into an execution result.
func (fixture ResponseFixture) Result() execshell.ExecutionResult {
	result := execshell.ExecutionResult{
		ExitCode:       fixture.ExitCode,
		StandardOutput: fixture.StandardOutput,
		StandardError:  fixture.StandardError,
	}
	if len(fixture.LaunchError) > 0 {
		result.LaunchError = errors.New(fixture.LaunchError)
		result.ExitCode = execshell.ExitCodeUnavailable
	}
	return result
}

// ParseResponses decodes a YAML document with a top-level responses list.
func ParseResponses(fixtureData []byte) ([]execshell.ExecutionResult, error) {
	var document responseFixtureDocument
	if decodeError := yaml.Unmarshal(fixtureData, &document); decodeError != nil {
		return nil, decodeError
	}

	results := make([]execshell.ExecutionResult, 0, len(document.Responses))
	for _, fixture := range document.Responses {
		results = append(results, fixture.Result())
	}
	return results, nil
}

// LoadResponses reads a YAML fixture file and enqueues its responses onto queue.
func LoadResponses(fixturePath string, queue *ResponseQueue) error {
	fixtureData, readError := os.ReadFile(fixturePath)
	if readError != nil {
		return fmt.Errorf(fixtureReadErrorTemplateConstant, fixturePath, readError)
	}

	results, parseError := ParseResponses(fixtureData)
	if parseError != nil {
		return fmt.Errorf(fixtureParseErrorTemplateConstant, fixturePath, parseError)
	}

	queue.Add(results...)
	return nil
}
