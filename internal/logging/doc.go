// Package logging assembles structured slog loggers and formatting helpers used
// across clipscout.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so acquisition and lifecycle code
// tag log lines with candidate IDs, stages, and request correlation IDs. A
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
