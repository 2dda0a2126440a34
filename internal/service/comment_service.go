package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// CommentService provides comment operations for both roles.
type CommentService interface {
	// CreateComment attaches a comment by the principal to an existing task.
	// Employees may only comment on their own tasks.
	CreateComment(ctx context.Context, principal *domain.User, taskID uuid.UUID, content string) (*domain.Comment, error)

	// ListComments returns a task's comments, oldest first. Employees may
	// only list comments on their own tasks.
	ListComments(ctx context.Context, principal *domain.User, taskID uuid.UUID) ([]*domain.Comment, error)
}

type commentServiceImpl struct {
	tx     store.TxManager
	logger *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(tx store.TxManager, logger *slog.Logger) (CommentService, error) {
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &commentServiceImpl{
		tx:     tx,
		logger: logger.With(slog.String("component", "comment_service")),
	}, nil
}

// CreateComment implements CommentService.
func (s *commentServiceImpl) CreateComment(
	ctx context.Context,
	principal *domain.User,
	taskID uuid.UUID,
	content string,
) (*domain.Comment, error) {
	if err := auth.Require(principal, auth.CapCreateComment); err != nil {
		return nil, err
	}

	comment, err := domain.NewComment(taskID, principal.ID, content)
	if err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st store.Stores) error {
		if _, err := visibleTask(ctx, st.Tasks, principal, taskID, auth.CapViewAnyTask); err != nil {
			return err
		}
		if err := st.Comments.Create(ctx, comment); err != nil {
			// The task was deleted after the lookup.
			if errors.Is(err, store.ErrInvalidEntity) {
				return fmt.Errorf("%w: %v", store.ErrTaskNotFound, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.AuthorName = principal.Name

	logger.FromContextOrDefault(ctx, s.logger).Info("comment created",
		slog.String("comment_id", comment.ID.String()),
		slog.String("task_id", taskID.String()),
		slog.String("author_id", principal.ID.String()))
	return comment, nil
}

// ListComments implements CommentService.
func (s *commentServiceImpl) ListComments(
	ctx context.Context,
	principal *domain.User,
	taskID uuid.UUID,
) ([]*domain.Comment, error) {
	if !auth.Authorize(principal, auth.CapViewAnyComments) {
		if err := auth.Require(principal, auth.CapViewOwnComments); err != nil {
			return nil, err
		}
	}

	var comments []*domain.Comment
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st store.Stores) error {
		if _, err := visibleTask(ctx, st.Tasks, principal, taskID, auth.CapViewAnyComments); err != nil {
			return err
		}
		var err error
		comments, err = st.Comments.ListByTask(ctx, taskID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
