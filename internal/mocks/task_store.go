package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	db   *MemoryDB
	undo *journal

	// Function fields override the in-memory behavior when set
	CreateFn func(ctx context.Context, task *domain.Task) error
	UpdateFn func(ctx context.Context, task *domain.Task) error
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.users[task.AssigneeID]; !ok {
		return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.AssigneeID)
	}
	if _, ok := m.db.tasks[task.ID]; ok {
		return store.ErrDuplicate
	}
	stored := *task
	stored.AssigneeName = ""
	m.undo.recordTask(m.db, task.ID)
	m.db.tasks[task.ID] = stored
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	t, ok := m.db.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return m.db.readTaskLocked(t), nil
}

// GetByIDForAssignee implements the TaskStore interface
func (m *MockTaskStore) GetByIDForAssignee(ctx context.Context, id, assigneeID uuid.UUID) (*domain.Task, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	t, ok := m.db.tasks[id]
	if !ok || t.AssigneeID != assigneeID {
		return nil, store.ErrTaskNotFound
	}
	return m.db.readTaskLocked(t), nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	if _, ok := m.db.users[task.AssigneeID]; !ok {
		return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.AssigneeID)
	}
	task.UpdatedAt = time.Now().UTC()
	stored := *task
	stored.AssigneeName = ""
	m.undo.recordTask(m.db, task.ID)
	m.db.tasks[task.ID] = stored
	return nil
}

// UpdateStatusForAssignee implements the TaskStore interface
func (m *MockTaskStore) UpdateStatusForAssignee(
	ctx context.Context,
	id, assigneeID uuid.UUID,
	status domain.TaskStatus,
) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	t, ok := m.db.tasks[id]
	if !ok || t.AssigneeID != assigneeID {
		return store.ErrTaskNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	m.undo.recordTask(m.db, id)
	m.db.tasks[id] = t
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	m.db.deleteTaskLocked(m.undo, id)
	return nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return m.filter(func(domain.Task) bool { return true }), nil
}

// ListByAssignee implements the TaskStore interface
func (m *MockTaskStore) ListByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]*domain.Task, error) {
	return m.filter(func(t domain.Task) bool { return t.AssigneeID == assigneeID }), nil
}

// SearchByTitle implements the TaskStore interface
func (m *MockTaskStore) SearchByTitle(ctx context.Context, fragment string) ([]*domain.Task, error) {
	return m.filter(func(t domain.Task) bool { return strings.Contains(t.Title, fragment) }), nil
}

// WithTx implements the TaskStore interface
func (m *MockTaskStore) WithTx(tx store.DBTX) store.TaskStore {
	return m
}

func (m *MockTaskStore) filter(keep func(domain.Task) bool) []*domain.Task {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	tasks := make([]*domain.Task, 0)
	for _, t := range m.db.tasks {
		if keep(t) {
			tasks = append(tasks, m.db.readTaskLocked(t))
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].DueDate.Equal(tasks[j].DueDate) {
			return tasks[i].DueDate.After(tasks[j].DueDate)
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks
}

func (db *MemoryDB) readTaskLocked(t domain.Task) *domain.Task {
	t.AssigneeName = db.users[t.AssigneeID].Name
	return &t
}

func (db *MemoryDB) deleteTaskLocked(undo *journal, id uuid.UUID) {
	undo.recordTask(db, id)
	delete(db.tasks, id)
	for cid, c := range db.comments {
		if c.TaskID == id {
			undo.recordComment(db, cid)
			delete(db.comments, cid)
		}
	}
}
