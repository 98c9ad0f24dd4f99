package database

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Dialect captures what differs between the SQL backends the game runs on.
// Repositories write portable SQL with ? placeholders and ask the dialect for
// the rest.
type Dialect interface {
	// Name identifies the backend in backups and picks the migrations directory
	Name() string
	DriverName() string
	DSN(opts Options) string

	// Bind rewrites ? placeholders into the backend's bind syntax
	Bind(query string) string

	// HasLastInsertID is false when inserts must use RETURNING id instead
	HasLastInsertID() bool

	// Prepare tunes a freshly opened pool
	Prepare(db *sql.DB, opts Options) error

	// Contains renders a predicate true when needle occurs inside haystack.
	// Both arguments are SQL expressions.
	Contains(haystack, needle string) string

	// SchemaTableDDL creates the table recording applied migrations
	SchemaTableDDL() string

	IsUniqueViolation(err error) bool

	// IsContention reports lock waits, deadlocks and serialization failures
	IsContention(err error) bool
}

// Options control how a database is opened
type Options struct {
	Path string // SQLite file
	URL  string // PostgreSQL or MySQL DSN

	BusyTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (o Options) withDefaults() Options {
	if o.BusyTimeout <= 0 {
		o.BusyTimeout = 5 * time.Second
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 25
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 5
	}
	if o.MaxIdleConns > o.MaxOpenConns {
		o.MaxIdleConns = o.MaxOpenConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = 5 * time.Minute
	}
	return o
}

func applyPool(db *sql.DB, o Options) {
	db.SetMaxOpenConns(o.MaxOpenConns)
	db.SetMaxIdleConns(o.MaxIdleConns)
	db.SetConnMaxLifetime(o.ConnMaxLifetime)
	db.SetConnMaxIdleTime(time.Minute)
}

// schemaTable records which migration files have been applied
const schemaTable = "schema_migrations"

// bindNumbered turns ? into $1, $2, ... outside quoted literals
func bindNumbered(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
