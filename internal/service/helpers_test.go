package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/mocks"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

type fixture struct {
	db       *mocks.MemoryDB
	tasks    service.TaskService
	comments service.CommentService
	admin    *domain.User
	alice    *domain.User
	bob      *domain.User
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()

	db := mocks.NewMemoryDB()
	tasks, err := service.NewTaskService(db, db.Tasks, service.StatusMapper{Strict: strict}, nil)
	require.NoError(t, err)
	comments, err := service.NewCommentService(db, nil)
	require.NoError(t, err)

	return &fixture{
		db:       db,
		tasks:    tasks,
		comments: comments,
		admin:    seedUser(t, db, "Ada Admin", "ada@example.com", domain.RoleAdmin),
		alice:    seedUser(t, db, "Alice", "alice@example.com", domain.RoleEmployee),
		bob:      seedUser(t, db, "Bob", "bob@example.com", domain.RoleEmployee),
	}
}

func seedUser(t *testing.T, db *mocks.MemoryDB, name, email string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser(name, email, "correct-horse", role)
	require.NoError(t, err)
	user.HashedPassword = "hashed:correct-horse"
	require.NoError(t, db.Users.Create(context.Background(), user))
	return user
}

func (f *fixture) createTask(t *testing.T, title string, assignee *domain.User, due time.Time) *domain.Task {
	t.Helper()
	task, err := f.tasks.CreateTask(context.Background(), f.admin, service.TaskInput{
		Title:      title,
		DueDate:    due,
		Priority:   "HIGH",
		AssigneeID: assignee.ID,
	})
	require.NoError(t, err)
	return task
}

// spyTaskStore records every call. Calling a method without a matching
// expectation fails the test.
type spyTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*spyTaskStore)(nil)

func (s *spyTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return s.Called(ctx, task).Error(0)
}

func (s *spyTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := s.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (s *spyTaskStore) GetByIDForAssignee(ctx context.Context, id, assigneeID uuid.UUID) (*domain.Task, error) {
	args := s.Called(ctx, id, assigneeID)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (s *spyTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return s.Called(ctx, task).Error(0)
}

func (s *spyTaskStore) UpdateStatusForAssignee(
	ctx context.Context,
	id, assigneeID uuid.UUID,
	status domain.TaskStatus,
) error {
	return s.Called(ctx, id, assigneeID, status).Error(0)
}

func (s *spyTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Called(ctx, id).Error(0)
}

func (s *spyTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	args := s.Called(ctx)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (s *spyTaskStore) ListByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]*domain.Task, error) {
	args := s.Called(ctx, assigneeID)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (s *spyTaskStore) SearchByTitle(ctx context.Context, fragment string) ([]*domain.Task, error) {
	args := s.Called(ctx, fragment)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (s *spyTaskStore) WithTx(tx store.DBTX) store.TaskStore {
	return s
}

// spyTxManager fails the test if a transaction is ever opened.
type spyTxManager struct {
	mock.Mock
}

func (s *spyTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, st store.Stores) error) error {
	return s.Called(ctx).Error(0)
}
