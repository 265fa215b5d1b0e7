package duckdb

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTransaction carries an open transaction so multiple store calls can
// share it; stores fall back to their own transaction when none is set.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
