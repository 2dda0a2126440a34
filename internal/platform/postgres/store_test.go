package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var (
	userCols    = []string{"id", "name", "email", "hashed_password", "role", "created_at", "updated_at"}
	taskCols    = []string{"id", "title", "description", "due_date", "priority", "status", "assignee_id", "name", "created_at", "updated_at"}
	commentCols = []string{"id", "task_id", "author_id", "name", "content", "created_at"}
)

func taskRow(rows *sqlmock.Rows, id, assignee uuid.UUID, title, status string, due time.Time) *sqlmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(id.String(), title, "", due, "high", status, assignee.String(), "Eve", now, now)
}

var ctx = context.Background()
