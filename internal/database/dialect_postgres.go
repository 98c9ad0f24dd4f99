package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgreSQL error codes the game reacts to
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// PostgresDialect targets PostgreSQL through lib/pq
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) Name() string       { return "postgres" }
func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) DSN(opts Options) string { return opts.URL }

func (d *PostgresDialect) Bind(query string) string { return bindNumbered(query) }

func (d *PostgresDialect) HasLastInsertID() bool { return false }

// Prepare only sizes the pool; foreign keys are always enforced
func (d *PostgresDialect) Prepare(db *sql.DB, opts Options) error {
	applyPool(db, opts)
	return nil
}

func (d *PostgresDialect) Contains(haystack, needle string) string {
	return fmt.Sprintf("strpos(%s, %s) > 0", haystack, needle)
}

func (d *PostgresDialect) SchemaTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS ` + schemaTable + ` (
		id BIGSERIAL PRIMARY KEY,
		filename TEXT UNIQUE NOT NULL,
		applied_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
	)`
}

func (d *PostgresDialect) IsUniqueViolation(err error) bool {
	return pqCode(err) == pgUniqueViolation
}

func (d *PostgresDialect) IsContention(err error) bool {
	switch pqCode(err) {
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return true
	}
	return false
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}
