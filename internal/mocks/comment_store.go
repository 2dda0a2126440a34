package mocks

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MockCommentStore implements store.CommentStore for testing
type MockCommentStore struct {
	db   *MemoryDB
	undo *journal

	// CreateFn overrides the in-memory behavior when set
	CreateFn func(ctx context.Context, comment *domain.Comment) error
}

// Ensure MockCommentStore implements store.CommentStore interface
var _ store.CommentStore = (*MockCommentStore)(nil)

// Create implements the CommentStore interface
func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}
	if err := comment.Validate(); err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.tasks[comment.TaskID]; !ok {
		return fmt.Errorf("%w: task %s not found", store.ErrInvalidEntity, comment.TaskID)
	}
	if _, ok := m.db.users[comment.AuthorID]; !ok {
		return fmt.Errorf("%w: author %s not found", store.ErrInvalidEntity, comment.AuthorID)
	}
	stored := *comment
	stored.AuthorName = ""
	m.undo.recordComment(m.db, comment.ID)
	m.db.comments[comment.ID] = stored
	return nil
}

// ListByTask implements the CommentStore interface
func (m *MockCommentStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.Comment, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	comments := make([]*domain.Comment, 0)
	for _, c := range m.db.comments {
		if c.TaskID == taskID {
			c.AuthorName = m.db.users[c.AuthorID].Name
			comments = append(comments, &c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

// WithTx implements the CommentStore interface
func (m *MockCommentStore) WithTx(tx store.DBTX) store.CommentStore {
	return m
}
