// Package execshell provides structured helpers for invoking an external tool.
//
// OSCommandRunner spawns a fixed executable through os/exec in one of three
// modes: blocking with captured output, asynchronous with captured output, and
// streamed with the host's terminal streams. Every mode reports through the same
// ExecutionResult shape, and CommandEventObserver receives lifecycle
// notifications so callers can log executions without coupling to a logger.
package execshell
