package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"wordle/internal/config"
)

// ErrContention wraps lock waits and deadlocks reported by the backend
var ErrContention = errors.New("database contention")

// DB is a connection pool paired with the dialect it speaks
type DB struct {
	*sql.DB
	Dialect Dialect
}

// OpenSQLite opens a SQLite file with default pool settings
func OpenSQLite(path string) (*DB, error) {
	return Open(context.Background(), NewSQLiteDialect(), Options{Path: path})
}

// OpenFromConfig opens the backend named by DB_TYPE
func OpenFromConfig(ctx context.Context, cfg *config.Config) (*DB, error) {
	dialect, err := DialectFor(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}
	return Open(ctx, dialect, Options{
		Path:            cfg.DatabasePath,
		URL:             cfg.DatabaseURL,
		BusyTimeout:     cfg.LockTimeout,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
}

// DialectFor maps a configured backend name to its dialect
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3", "":
		return NewSQLiteDialect(), nil
	case "postgres", "postgresql":
		return NewPostgresDialect(), nil
	case "mysql", "mariadb":
		return NewMySQLDialect(), nil
	}
	return nil, fmt.Errorf("unsupported database type: %s", name)
}

// Open connects, pings within ten seconds and tunes the pool
func Open(ctx context.Context, dialect Dialect, opts Options) (*DB, error) {
	opts = opts.withDefaults()
	if dialect.Name() != "sqlite" && opts.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for %s", dialect.Name())
	}

	pool, err := sql.Open(dialect.DriverName(), dialect.DSN(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect.Name(), err)
	}

	if err := dialect.Prepare(pool, opts); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to configure %s: %w", dialect.Name(), err)
	}

	return &DB{DB: pool, Dialect: dialect}, nil
}

// QueryContext runs a query written with ? placeholders
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Dialect.Bind(query), args...)
}

// QueryRowContext runs a single-row query written with ? placeholders
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Dialect.Bind(query), args...)
}

// ExecContext runs a statement written with ? placeholders
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Dialect.Bind(query), args...)
}

// ExecReturningID runs an INSERT and returns the generated id
func (db *DB) ExecReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	return insertReturningID(ctx, db.DB, db.Dialect, query, args...)
}

// SQLDialect returns the pool's dialect
func (db *DB) SQLDialect() Dialect {
	return db.Dialect
}

// rawQuerier is the unbound statement surface of *sql.DB and *sql.Tx
type rawQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertReturningID(ctx context.Context, q rawQuerier, dialect Dialect, query string, args ...any) (int64, error) {
	query = dialect.Bind(query)

	if dialect.HasLastInsertID() {
		result, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	}

	query = strings.TrimSuffix(strings.TrimSpace(query), ";") + " RETURNING id"
	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
