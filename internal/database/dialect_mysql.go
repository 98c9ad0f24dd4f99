package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the game reacts to
const (
	mysqlDuplicateEntry  = 1062
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// MySQLDialect targets MySQL and MariaDB
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) Name() string       { return "mysql" }
func (d *MySQLDialect) DriverName() string { return "mysql" }

// DSN forces DATETIME columns to scan into UTC time.Time values, which the
// calendar-day bookkeeping relies on
func (d *MySQLDialect) DSN(opts Options) string {
	cfg, err := mysql.ParseDSN(opts.URL)
	if err != nil {
		return opts.URL
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

func (d *MySQLDialect) Bind(query string) string { return query }

func (d *MySQLDialect) HasLastInsertID() bool { return true }

func (d *MySQLDialect) Prepare(db *sql.DB, opts Options) error {
	applyPool(db, opts)
	if _, err := db.Exec("SET FOREIGN_KEY_CHECKS = 1"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	return nil
}

func (d *MySQLDialect) Contains(haystack, needle string) string {
	return fmt.Sprintf("LOCATE(%s, %s) > 0", needle, haystack)
}

func (d *MySQLDialect) SchemaTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS ` + schemaTable + ` (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		filename VARCHAR(255) UNIQUE NOT NULL,
		applied_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
	)`
}

func (d *MySQLDialect) IsUniqueViolation(err error) bool {
	return mysqlNumber(err) == mysqlDuplicateEntry
}

func (d *MySQLDialect) IsContention(err error) bool {
	switch mysqlNumber(err) {
	case mysqlLockWaitTimeout, mysqlDeadlock:
		return true
	}
	return false
}

func mysqlNumber(err error) uint16 {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}
