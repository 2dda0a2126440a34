package postgres_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/postgres"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

func TestPostgresTaskStore_Create(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask("Write report", "Q3", time.Now().Add(48*time.Hour), "high", uuid.New())
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, nil)

		mock.ExpectExec("INSERT INTO tasks").
			WithArgs(task.ID.String(), "Write report", "Q3", sqlmock.AnyArg(), "high", "INPROGRESS",
				task.AssigneeID.String(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Create(ctx, task))
	})

	t.Run("unknown assignee", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, nil)

		mock.ExpectExec("INSERT INTO tasks").WillReturnError(newPgError("23503"))

		assert.ErrorIs(t, s.Create(ctx, task), store.ErrInvalidEntity)
	})
}

func TestPostgresTaskStore_GetByIDForAssignee(t *testing.T) {
	t.Parallel()

	id, owner := uuid.New(), uuid.New()

	t.Run("owned", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, nil)

		mock.ExpectQuery("WHERE t.id = \\$1 AND t.assignee_id = \\$2").
			WithArgs(id.String(), owner.String()).
			WillReturnRows(taskRow(sqlmock.NewRows(taskCols), id, owner, "Mine", "PENDING", time.Now()))

		task, err := s.GetByIDForAssignee(ctx, id, owner)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, "Eve", task.AssigneeName)
	})

	t.Run("someone else's task is not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		s := postgres.NewPostgresTaskStore(db, nil)

		mock.ExpectQuery("AND t.assignee_id").WillReturnRows(sqlmock.NewRows(taskCols))

		_, err := s.GetByIDForAssignee(ctx, id, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_UpdateStatusForAssignee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  domain.TaskStatus
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:   "owned task",
			status: domain.TaskStatusCompleted,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE tasks SET status").
					WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "COMPLETED", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "not owned",
			status: domain.TaskStatusCompleted,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE tasks SET status").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: store.ErrTaskNotFound,
		},
		{
			name:    "invalid status never reaches the database",
			status:  domain.TaskStatus("done"),
			setup:   func(sqlmock.Sqlmock) {},
			wantErr: domain.ErrInvalidStatus,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			db, mock := newMockDB(t)
			s := postgres.NewPostgresTaskStore(db, nil)
			tc.setup(mock)

			err := s.UpdateStatusForAssignee(ctx, uuid.New(), uuid.New(), tc.status)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestPostgresTaskStore_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask("Plan", "", time.Now(), "", uuid.New())
	require.NoError(t, err)

	db, mock := newMockDB(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	mock.ExpectExec("UPDATE tasks").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Update(ctx, task), store.ErrTaskNotFound)
	assert.NoError(t, s.Delete(ctx, task.ID))
	assert.ErrorIs(t, s.Delete(ctx, task.ID), store.ErrTaskNotFound)
}

func TestPostgresTaskStore_Lists(t *testing.T) {
	t.Parallel()

	assignee := uuid.New()
	later, sooner := time.Now().Add(72*time.Hour), time.Now().Add(24*time.Hour)

	db, mock := newMockDB(t)
	s := postgres.NewPostgresTaskStore(db, nil)

	rows := func() *sqlmock.Rows {
		r := sqlmock.NewRows(taskCols)
		taskRow(r, uuid.New(), assignee, "Later report", "PENDING", later)
		return taskRow(r, uuid.New(), assignee, "Sooner report", "DEFERRED", sooner)
	}

	mock.ExpectQuery("ORDER BY t.due_date DESC").WillReturnRows(rows())
	mock.ExpectQuery("WHERE t.assignee_id = \\$1 ORDER BY t.due_date DESC").
		WithArgs(assignee.String()).
		WillReturnRows(rows())
	mock.ExpectQuery("strpos\\(t.title, \\$1\\) > 0").
		WithArgs("report").
		WillReturnRows(rows())

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Later report", all[0].Title)

	own, err := s.ListByAssignee(ctx, assignee)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	found, err := s.SearchByTitle(ctx, "report")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
