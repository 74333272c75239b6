package postgres

import (
	"context"

	"github.com/engagehq/engage-api/internal/types"
	"github.com/jmoiron/sqlx"
)

// TxFromContext returns the transaction stored in the context, if any
func TxFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(types.CtxDBTransaction).(*sqlx.Tx)
	return tx, ok
}

// WithTx wraps the given function in a transaction. If the context already
// carries a transaction it is reused and left for the outer scope to commit.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if v := recover(); v != nil {
			db.logger.Errorw("rolling back transaction due to panic", "panic", v)
			_ = tx.Rollback()
			panic(v)
		}
	}()

	txCtx := context.WithValue(ctx, types.CtxDBTransaction, tx)

	if err := fn(txCtx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			db.logger.Errorw("failed to rollback transaction", "error", rerr)
		}
		return err
	}

	return tx.Commit()
}
