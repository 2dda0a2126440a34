package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task statuses. Any status may follow any other.
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "INPROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusDeferred   TaskStatus = "DEFERRED"
	TaskStatusCanceled   TaskStatus = "CANCELED"
)

// DefaultTaskStatus is assigned to every newly created task.
const DefaultTaskStatus = TaskStatusInProgress

// Task validation errors
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrEmptyTaskAssignee = errors.New("task assignee cannot be empty")
	ErrEmptyTaskDueDate  = errors.New("task due date cannot be empty")
)

// ParseTaskStatus maps a caller-supplied status name to a TaskStatus.
// Matching is exact and case-sensitive. Every unrecognized input maps to
// TaskStatusCanceled with ok == false, so callers can tell a real CANCELED
// apart from the fallback.
func ParseTaskStatus(s string) (status TaskStatus, ok bool) {
	switch TaskStatus(s) {
	case TaskStatusPending:
		return TaskStatusPending, true
	case TaskStatusInProgress:
		return TaskStatusInProgress, true
	case TaskStatusCompleted:
		return TaskStatusCompleted, true
	case TaskStatusDeferred:
		return TaskStatusDeferred, true
	case TaskStatusCanceled:
		return TaskStatusCanceled, true
	default:
		return TaskStatusCanceled, false
	}
}

// Valid reports whether s is one of the five task statuses.
func (s TaskStatus) Valid() bool {
	_, ok := ParseTaskStatus(string(s))
	return ok
}

// Task is a unit of work an admin delegates to exactly one employee.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Priority    string     `json:"priority"`
	Status      TaskStatus `json:"status"`
	AssigneeID  uuid.UUID  `json:"assignee_id"`

	// AssigneeName is filled in by reads; it is never written.
	AssigneeName string    `json:"assignee_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewTask creates a task in the default INPROGRESS state.
func NewTask(
	title, description string,
	dueDate time.Time,
	priority string,
	assigneeID uuid.UUID,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		DueDate:     dueDate.UTC(),
		Priority:    priority,
		Status:      DefaultTaskStatus,
		AssigneeID:  assigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if t.DueDate.IsZero() {
		return ErrEmptyTaskDueDate
	}
	if t.AssigneeID == uuid.Nil {
		return ErrEmptyTaskAssignee
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// SetStatus moves the task to status.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}
