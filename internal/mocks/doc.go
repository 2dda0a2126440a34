// Package mocks provides in-memory and function-field implementations of the
// store and auth interfaces for tests.
//
// MemoryDB backs MockUserStore, MockTaskStore and MockCommentStore with
// shared maps that enforce the same references and cascades as the
// PostgreSQL schema, and implements store.TxManager with rollback on error.
//
//	db := mocks.NewMemoryDB()
//	stores := db.Stores()
//	stores.Users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
//	    return nil, errors.New("boom")
//	}
package mocks
