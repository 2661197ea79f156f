// Package arguments builds argument vectors for external tools.
//
// Tokenize splits a shell-style argument line into discrete tokens without
// invoking a shell, and Buffer accumulates tokens for a single logical command.
// Tokens are handed to the process spawner as-is, so no shell ever re-parses them.
package arguments
