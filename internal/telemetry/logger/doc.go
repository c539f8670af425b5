// Package logger provides structured logging for Hoard.
//
// It wraps log/slog:
//
//   - logger.go: handler construction, dynamic level, package-level helpers
//   - context.go: context propagation of the logger, request and connection IDs
//   - summarize.go: payload attributes are reduced to their size
//
// Stored values never reach the log verbatim. Attributes named value, payload,
// request or response are rewritten to a byte count by the handler.
package logger
