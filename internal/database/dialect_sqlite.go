package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDialect is the default single-file backend
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) Name() string       { return "sqlite" }
func (d *SQLiteDialect) DriverName() string { return "sqlite3" }

// DSN leaves paths that already carry parameters alone. Otherwise writers
// wait out BusyTimeout, and transactions take the write lock on BEGIN so two
// guesses never interleave between read and write.
func (d *SQLiteDialect) DSN(opts Options) string {
	if strings.Contains(opts.Path, "?") {
		return opts.Path
	}
	opts = opts.withDefaults()
	return fmt.Sprintf("%s?_busy_timeout=%d&_txlock=immediate&_foreign_keys=on",
		opts.Path, opts.BusyTimeout.Milliseconds())
}

func (d *SQLiteDialect) Bind(query string) string { return query }

func (d *SQLiteDialect) HasLastInsertID() bool { return true }

func (d *SQLiteDialect) Prepare(db *sql.DB, opts Options) error {
	applyPool(db, opts)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}
	return nil
}

func (d *SQLiteDialect) Contains(haystack, needle string) string {
	return fmt.Sprintf("instr(%s, %s) > 0", haystack, needle)
}

func (d *SQLiteDialect) SchemaTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS ` + schemaTable + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT UNIQUE NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
}

func (d *SQLiteDialect) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return true
	}
	return false
}

func (d *SQLiteDialect) IsContention(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}
