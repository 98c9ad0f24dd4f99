package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is implemented by both *DB and *Tx, so a repository can run the
// same statements inside or outside a transaction
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecReturningID(ctx context.Context, query string, args ...any) (int64, error)
	SQLDialect() Dialect
}

var (
	_ Querier = (*DB)(nil)
	_ Querier = (*Tx)(nil)
)

// Tx is a transaction that binds placeholders for its dialect
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// BeginTx starts a transaction bound to ctx
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, db.classify(err)
	}
	return &Tx{Tx: tx, dialect: db.Dialect}, nil
}

// WithTx runs fn in a transaction, committing when it returns nil.
// Lock waits and deadlocks come back wrapped in ErrContention.
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return db.classify(err)
	}
	if err := tx.Commit(); err != nil {
		return db.classify(fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (db *DB) classify(err error) error {
	if db.Dialect.IsContention(err) {
		return fmt.Errorf("%w: %w", ErrContention, err)
	}
	return err
}

func (tx *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return tx.Tx.QueryContext(ctx, tx.dialect.Bind(query), args...)
}

func (tx *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return tx.Tx.QueryRowContext(ctx, tx.dialect.Bind(query), args...)
}

func (tx *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return tx.Tx.ExecContext(ctx, tx.dialect.Bind(query), args...)
}

func (tx *Tx) ExecReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	return insertReturningID(ctx, tx.Tx, tx.dialect, query, args...)
}

// SQLDialect returns the transaction's dialect
func (tx *Tx) SQLDialect() Dialect {
	return tx.dialect
}
