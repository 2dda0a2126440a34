// Package logger provides structured logging for the application.
//
// It configures log/slog with a JSON or text handler and threads
// request-scoped loggers through context.Context.
package logger
