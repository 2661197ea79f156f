// Package tool builds the commands that drive the external tool through a session:
// version reports the detected version, exec runs one argument list in a chosen
// execution mode, and batch runs several argument lines concurrently in forked sessions.
package tool
