package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
)

// TraceIDLength is the number of random bytes in a trace ID.
const TraceIDLength = 16

// TraceIDHeader carries the trace ID on every response.
const TraceIDHeader = "X-Trace-Id"

// SetTraceID stores a fresh trace ID in ctx and tags the context logger with it.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithRequestID(ctx, generateTraceID())
}

// GetTraceID returns the trace ID stored in ctx, or "" if there is none.
func GetTraceID(ctx context.Context) string {
	return logger.RequestIDFromContext(ctx)
}

// generateTraceID returns 32 hex characters. If crypto/rand fails it falls
// back to a time-derived ID rather than a static value.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			slog.Any("error", err),
			slog.Int("bytes_read", n))

		now := time.Now()
		binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
		binary.BigEndian.PutUint64(b[8:], uint64(now.Unix())^uint64(now.Nanosecond()))
	}
	return hex.EncodeToString(b)
}
