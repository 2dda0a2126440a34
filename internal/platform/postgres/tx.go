package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/tasktrack/tasktrack-api/internal/store"
)

// TxManager implements store.TxManager on a PostgreSQL connection pool.
type TxManager struct {
	db     *sql.DB
	stores store.Stores
}

// Ensure TxManager implements store.TxManager interface
var _ store.TxManager = (*TxManager)(nil)

// NewTxManager returns a TxManager whose transactions bind the PostgreSQL stores.
func NewTxManager(db *sql.DB, logger *slog.Logger) *TxManager {
	return &TxManager{
		db:     db,
		stores: NewStores(db, logger),
	}
}

// NewStores returns the PostgreSQL stores bound to db.
func NewStores(db store.DBTX, logger *slog.Logger) store.Stores {
	return store.Stores{
		Users:    NewPostgresUserStore(db, logger),
		Tasks:    NewPostgresTaskStore(db, logger),
		Comments: NewPostgresCommentStore(db, logger),
	}
}

// Stores returns the pool-bound stores, for work that needs no transaction.
func (m *TxManager) Stores() store.Stores {
	return m.stores
}

// WithinTx implements store.TxManager.WithinTx
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error {
	return store.RunInTransaction(ctx, m.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Stores{
			Users:    m.stores.Users.WithTx(tx),
			Tasks:    m.stores.Tasks.WithTx(tx),
			Comments: m.stores.Comments.WithTx(tx),
		})
	})
}
