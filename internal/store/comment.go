package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// CommentStore persists comments. Comments are never updated.
type CommentStore interface {
	// Create saves a new comment.
	// Returns ErrInvalidEntity if the task or author does not exist.
	Create(ctx context.Context, comment *domain.Comment) error

	// ListByTask returns the comments on a task, oldest first.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error)

	// WithTx returns a CommentStore bound to the given transaction.
	WithTx(tx DBTX) CommentStore
}
