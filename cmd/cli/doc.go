// Package cli constructs the clidriver command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// around version-gated sessions of the driven tool.
package cli
