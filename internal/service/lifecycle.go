package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
)

// StatusMapper turns caller-supplied status strings into task statuses.
//
// By default an unrecognized string becomes CANCELED and a warning is
// logged. In strict mode it is rejected with domain.ErrInvalidStatus.
type StatusMapper struct {
	Strict bool
}

// Map converts raw to a TaskStatus.
func (m StatusMapper) Map(ctx context.Context, raw string) (domain.TaskStatus, error) {
	status, ok := domain.ParseTaskStatus(raw)
	if ok {
		return status, nil
	}

	if m.Strict {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, raw)
	}

	logger.FromContext(ctx).Warn("unrecognized task status mapped to CANCELED",
		slog.String("requested_status", raw),
		slog.String("mapped_status", string(status)))
	return status, nil
}
