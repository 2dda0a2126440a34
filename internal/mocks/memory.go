package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MemoryDB is an in-memory database shared by the mock stores.
type MemoryDB struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	users    map[uuid.UUID]domain.User
	tasks    map[uuid.UUID]domain.Task
	comments map[uuid.UUID]domain.Comment

	Users    *MockUserStore
	Tasks    *MockTaskStore
	Comments *MockCommentStore
}

// Ensure MemoryDB implements store.TxManager interface
var _ store.TxManager = (*MemoryDB)(nil)

// NewMemoryDB creates an empty MemoryDB with its stores attached.
func NewMemoryDB() *MemoryDB {
	db := &MemoryDB{
		users:    make(map[uuid.UUID]domain.User),
		tasks:    make(map[uuid.UUID]domain.Task),
		comments: make(map[uuid.UUID]domain.Comment),
	}
	db.Users = &MockUserStore{db: db}
	db.Tasks = &MockTaskStore{db: db}
	db.Comments = &MockCommentStore{db: db}
	return db
}

// Stores returns the mock stores as a store.Stores.
func (db *MemoryDB) Stores() store.Stores {
	return store.Stores{Users: db.Users, Tasks: db.Tasks, Comments: db.Comments}
}

// WithinTx runs fn against stores bound to a fresh undo journal. If fn fails,
// only the rows those stores wrote are restored; writes made meanwhile
// through the pool stores survive. Transactions are serialized.
func (db *MemoryDB) WithinTx(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	undo := newJournal()
	users, tasks, comments := *db.Users, *db.Tasks, *db.Comments
	users.undo, tasks.undo, comments.undo = undo, undo, undo

	if err := fn(ctx, store.Stores{Users: &users, Tasks: &tasks, Comments: &comments}); err != nil {
		db.mu.Lock()
		undo.restore(db)
		db.mu.Unlock()
		return err
	}
	return nil
}

// journal holds the pre-transaction value of every row a transaction wrote.
// A nil entry means the row did not exist.
type journal struct {
	users    map[uuid.UUID]*domain.User
	tasks    map[uuid.UUID]*domain.Task
	comments map[uuid.UUID]*domain.Comment
}

func newJournal() *journal {
	return &journal{
		users:    make(map[uuid.UUID]*domain.User),
		tasks:    make(map[uuid.UUID]*domain.Task),
		comments: make(map[uuid.UUID]*domain.Comment),
	}
}

// The record methods are nil-safe so pool stores can call them unconditionally.
// Callers hold db.mu.

func (j *journal) recordUser(db *MemoryDB, id uuid.UUID) {
	if j != nil {
		remember(j.users, db.users, id)
	}
}

func (j *journal) recordTask(db *MemoryDB, id uuid.UUID) {
	if j != nil {
		remember(j.tasks, db.tasks, id)
	}
}

func (j *journal) recordComment(db *MemoryDB, id uuid.UUID) {
	if j != nil {
		remember(j.comments, db.comments, id)
	}
}

func (j *journal) restore(db *MemoryDB) {
	revert(db.users, j.users)
	revert(db.tasks, j.tasks)
	revert(db.comments, j.comments)
}

// remember keeps the first value seen for id.
func remember[T any](seen map[uuid.UUID]*T, rows map[uuid.UUID]T, id uuid.UUID) {
	if _, ok := seen[id]; ok {
		return
	}
	if row, ok := rows[id]; ok {
		seen[id] = &row
		return
	}
	seen[id] = nil
}

func revert[T any](rows map[uuid.UUID]T, seen map[uuid.UUID]*T) {
	for id, row := range seen {
		if row == nil {
			delete(rows, id)
			continue
		}
		rows[id] = *row
	}
}

// TaskCount returns the number of stored tasks.
func (db *MemoryDB) TaskCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.tasks)
}

// CommentCount returns the number of stored comments.
func (db *MemoryDB) CommentCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.comments)
}
