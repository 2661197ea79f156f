package utils

import (
	"context"

	"github.com/temirov/clidriver/internal/session"
)

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	sessionOptionsContextKeyConstant        = commandContextKey("sessionOptions")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to parentContext.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return context.WithValue(nonNilContext(parentContext), configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from executionContext.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, available := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	return configurationFilePath, available
}

// WithSessionOptions attaches resolved session options to parentContext.
func (accessor CommandContextAccessor) WithSessionOptions(parentContext context.Context, options session.Options) context.Context {
	return context.WithValue(nonNilContext(parentContext), sessionOptionsContextKeyConstant, options)
}

// SessionOptions extracts session options from executionContext.
func (accessor CommandContextAccessor) SessionOptions(executionContext context.Context) (session.Options, bool) {
	if executionContext == nil {
		return session.Options{}, false
	}
	options, available := executionContext.Value(sessionOptionsContextKeyConstant).(session.Options)
	return options, available
}

func nonNilContext(candidate context.Context) context.Context {
	if candidate == nil {
		return context.Background()
	}
	return candidate
}
