// Package versioning compares dotted version strings and evaluates half-open
// version ranges used to gate access to external tools.
package versioning
