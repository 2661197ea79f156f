// Package session drives an external tool through a version-gated, fluent API.
//
// New probes the tool's version once and refuses to return a Session when the
// detected version falls outside the configured half-open range, unless the
// check is bypassed explicitly or through the skip environment variable.
//
// A Session owns one argument buffer. Argument methods mutate that buffer in
// place and return the same *Session, so chained calls and stored references
// observe the same state. Each execution snapshots and then clears the buffer.
// A Session must not be mutated from several goroutines; call Fork to obtain an
// independent session per concurrent command.
//
// Execution methods come in two tiers. Raw methods (ExecuteRaw, StartRaw,
// Stream) return results untouched. Gated methods (Execute, ExecuteString,
// ExecuteJSON, Start) convert a non-zero exit code or launch failure into an
// execshell.CommandFailedError, notifying the configured observer first.
package session
