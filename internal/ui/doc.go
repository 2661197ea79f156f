// Package ui renders tool execution events for humans.
//
// ConsoleCommandEventLogger translates execshell lifecycle notifications into
// concise zap log entries so failures are recorded even when callers handle
// the returned error themselves.
package ui
