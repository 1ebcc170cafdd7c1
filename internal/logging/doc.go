// Package logging assembles structured slog loggers and formatting helpers used
// across hzcli.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so a command invocation can tag
// every log line with one correlation id. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// Log output goes to a file under the data directory (and optionally stderr);
// stdout belongs to command output.
package logging
