package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// TaskStore persists tasks. Every list is ordered by due date, latest first.
//
// Methods taking an assigneeID scope the query to rows assigned to that user;
// a task assigned to someone else is reported as ErrTaskNotFound.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrInvalidEntity if the assignee does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves any task. Returns ErrTaskNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByIDForAssignee retrieves a task only if it is assigned to assigneeID.
	GetByIDForAssignee(ctx context.Context, id, assigneeID uuid.UUID) (*domain.Task, error)

	// Update overwrites every mutable field of an existing task.
	// Returns ErrTaskNotFound if absent, ErrInvalidEntity if the assignee does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateStatusForAssignee changes the status of a task assigned to assigneeID.
	// Returns ErrTaskNotFound if no such task is assigned to assigneeID.
	UpdateStatusForAssignee(ctx context.Context, id, assigneeID uuid.UUID, status domain.TaskStatus) error

	// Delete removes a task and its comments. Returns ErrTaskNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns every task.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByAssignee returns the tasks assigned to assigneeID.
	ListByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]*domain.Task, error)

	// SearchByTitle returns tasks whose title contains fragment (case-sensitive).
	SearchByTitle(ctx context.Context, fragment string) ([]*domain.Task, error)

	// WithTx returns a TaskStore bound to the given transaction.
	WithTx(tx DBTX) TaskStore
}
