package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// TaskInput carries the admin-editable fields of a task.
type TaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    string
	AssigneeID  uuid.UUID

	// Status is only read by UpdateTask. It goes through the status mapping
	// like any other string, so an empty value falls back to CANCELED.
	Status string
}

// TaskService provides task operations for both roles.
type TaskService interface {
	// CreateTask creates a task in the default status. Admin only.
	CreateTask(ctx context.Context, principal *domain.User, in TaskInput) (*domain.Task, error)

	// UpdateTask replaces every admin-editable field of a task. Admin only.
	UpdateTask(ctx context.Context, principal *domain.User, id uuid.UUID, in TaskInput) (*domain.Task, error)

	// DeleteTask removes a task and its comments. Admin only.
	DeleteTask(ctx context.Context, principal *domain.User, id uuid.UUID) error

	// GetTask returns one task. Admins see any task, employees only their own.
	GetTask(ctx context.Context, principal *domain.User, id uuid.UUID) (*domain.Task, error)

	// ListTasks returns every task, latest due date first. Admin only.
	ListTasks(ctx context.Context, principal *domain.User) ([]*domain.Task, error)

	// SearchTasks returns tasks whose title contains fragment. Admin only.
	SearchTasks(ctx context.Context, principal *domain.User, fragment string) ([]*domain.Task, error)

	// ListOwnTasks returns the principal's assigned tasks. Employee only.
	ListOwnTasks(ctx context.Context, principal *domain.User) ([]*domain.Task, error)

	// UpdateOwnTaskStatus changes the status of a task assigned to the
	// principal. Employee only.
	UpdateOwnTaskStatus(ctx context.Context, principal *domain.User, id uuid.UUID, status string) (*domain.Task, error)
}

type taskServiceImpl struct {
	tx       store.TxManager
	tasks    store.TaskStore
	statuses StatusMapper
	logger   *slog.Logger
}

// NewTaskService creates a TaskService. tasks serves reads outside a transaction.
func NewTaskService(
	tx store.TxManager,
	tasks store.TaskStore,
	statuses StatusMapper,
	logger *slog.Logger,
) (TaskService, error) {
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tx:       tx,
		tasks:    tasks,
		statuses: statuses,
		logger:   logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	principal *domain.User,
	in TaskInput,
) (*domain.Task, error) {
	if err := auth.Require(principal, auth.CapCreateTask); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(in.Title, in.Description, in.DueDate, in.Priority, in.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("invalid task: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, st store.Stores) error {
		assignee, err := lookupAssignee(ctx, st.Users, in.AssigneeID)
		if err != nil {
			return err
		}
		if err := st.Tasks.Create(ctx, task); err != nil {
			return mapAssigneeError(err)
		}
		task.AssigneeName = assignee.Name
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("assignee_id", task.AssigneeID.String()),
		slog.String("created_by", principal.ID.String()))
	return task, nil
}

// UpdateTask implements TaskService.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	principal *domain.User,
	id uuid.UUID,
	in TaskInput,
) (*domain.Task, error) {
	if err := auth.Require(principal, auth.CapUpdateTask); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st store.Stores) error {
		task, err := st.Tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		status, err := s.statuses.Map(ctx, in.Status)
		if err != nil {
			return err
		}
		if err := task.SetStatus(status); err != nil {
			return err
		}

		assignee, err := lookupAssignee(ctx, st.Users, in.AssigneeID)
		if err != nil {
			return err
		}

		task.Title = strings.TrimSpace(in.Title)
		task.Description = in.Description
		task.DueDate = in.DueDate.UTC()
		task.Priority = in.Priority
		task.AssigneeID = assignee.ID
		if err := task.Validate(); err != nil {
			return fmt.Errorf("invalid task: %w", err)
		}

		if err := st.Tasks.Update(ctx, task); err != nil {
			return mapAssigneeError(err)
		}
		task.AssigneeName = assignee.Name
		updated = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, principal *domain.User, id uuid.UUID) error {
	if err := auth.Require(principal, auth.CapDeleteTask); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("deleted_by", principal.ID.String()))
	return nil
}

// GetTask implements TaskService.
func (s *taskServiceImpl) GetTask(ctx context.Context, principal *domain.User, id uuid.UUID) (*domain.Task, error) {
	if err := auth.Require(principal, auth.CapViewTask); err != nil {
		return nil, err
	}

	task, err := visibleTask(ctx, s.tasks, principal, id, auth.CapViewAnyTask)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context, principal *domain.User) ([]*domain.Task, error) {
	if err := auth.Require(principal, auth.CapListAllTasks); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// SearchTasks implements TaskService.
func (s *taskServiceImpl) SearchTasks(
	ctx context.Context,
	principal *domain.User,
	fragment string,
) ([]*domain.Task, error) {
	if err := auth.Require(principal, auth.CapSearchTasks); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.SearchByTitle(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// ListOwnTasks implements TaskService.
func (s *taskServiceImpl) ListOwnTasks(ctx context.Context, principal *domain.User) ([]*domain.Task, error) {
	if err := auth.Require(principal, auth.CapListOwnTasks); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByAssignee(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own tasks: %w", err)
	}
	return tasks, nil
}

// UpdateOwnTaskStatus implements TaskService.
func (s *taskServiceImpl) UpdateOwnTaskStatus(
	ctx context.Context,
	principal *domain.User,
	id uuid.UUID,
	raw string,
) (*domain.Task, error) {
	if err := auth.Require(principal, auth.CapUpdateOwnTaskStatus); err != nil {
		return nil, err
	}

	var updated *domain.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context, st store.Stores) error {
		// Ownership is settled before the status string is looked at, so a
		// foreign task is NotFound whatever status was asked for.
		task, err := st.Tasks.GetByIDForAssignee(ctx, id, principal.ID)
		if err != nil {
			return err
		}
		status, err := s.statuses.Map(ctx, raw)
		if err != nil {
			return err
		}
		if err := task.SetStatus(status); err != nil {
			return err
		}
		if err := st.Tasks.UpdateStatusForAssignee(ctx, id, principal.ID, task.Status); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task status updated by assignee",
		slog.String("task_id", id.String()),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

// visibleTask loads a task the principal may see: any task for holders of
// anyCapability, otherwise only tasks assigned to the principal.
func visibleTask(
	ctx context.Context,
	tasks store.TaskStore,
	principal *domain.User,
	id uuid.UUID,
	anyCapability auth.Capability,
) (*domain.Task, error) {
	if auth.Authorize(principal, anyCapability) {
		return tasks.GetByID(ctx, id)
	}
	return tasks.GetByIDForAssignee(ctx, id, principal.ID)
}

func lookupAssignee(ctx context.Context, users store.UserStore, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid task: %w", domain.ErrEmptyTaskAssignee)
	}
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, err
	}
	return user, nil
}

// mapAssigneeError reports a foreign-key failure on the assignee as a
// missing assignee; the row can vanish between lookup and write.
func mapAssigneeError(err error) error {
	if errors.Is(err, store.ErrInvalidEntity) {
		return fmt.Errorf("%w: %v", ErrAssigneeNotFound, err)
	}
	return err
}
