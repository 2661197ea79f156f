// Package utils exposes ambient helpers shared by the clidriver commands.
//
// ConfigurationLoader layers embedded defaults, an optional YAML file and
// CLIDRIVER_* environment variables through Viper. LoggerFactory builds the zap
// logger that carries diagnostics to standard error, leaving standard output to
// the driven tool.
package utils
