package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	db   *MemoryDB
	undo *journal

	// Function fields override the in-memory behavior when set
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmailCalls counts GetByEmail invocations
	GetByEmailCalls int
}

// Ensure MockUserStore implements store.UserStore interface
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a user store backed by a fresh MemoryDB.
func NewMockUserStore() *MockUserStore {
	return NewMemoryDB().Users
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, u := range m.db.users {
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	user.Password = ""
	m.undo.recordUser(m.db, user.ID)
	m.db.users[user.ID] = *user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	u, ok := m.db.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.db.mu.Lock()
	m.GetByEmailCalls++
	m.db.mu.Unlock()

	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.db.mu.RLock()
	defer m.db.mu.RUnlock()
	for _, u := range m.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// ListByRole implements the UserStore interface
func (m *MockUserStore) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	m.db.mu.RLock()
	defer m.db.mu.RUnlock()

	users := make([]*domain.User, 0)
	for _, u := range m.db.users {
		if u.Role == role {
			users = append(users, &u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

// Delete implements the UserStore interface. Tasks assigned to the user and
// comments they wrote are removed with them.
func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()

	if _, ok := m.db.users[id]; !ok {
		return store.ErrUserNotFound
	}
	m.undo.recordUser(m.db, id)
	delete(m.db.users, id)
	for tid, t := range m.db.tasks {
		if t.AssigneeID == id {
			m.db.deleteTaskLocked(m.undo, tid)
		}
	}
	for cid, c := range m.db.comments {
		if c.AuthorID == id {
			m.undo.recordComment(m.db, cid)
			delete(m.db.comments, cid)
		}
	}
	return nil
}

// WithTx implements the UserStore interface
func (m *MockUserStore) WithTx(tx store.DBTX) store.UserStore {
	return m
}
