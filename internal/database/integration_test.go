package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "wordle.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(context.Background()); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func insertTestUser(t *testing.T, db *DB, username string) int64 {
	t.Helper()
	id, err := db.ExecReturningID(context.Background(),
		"INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)", username, "hashedpass", "player")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	tables := []string{"users", "game_sessions", "guesses", "hints", "bad_words", "schema_migrations"}
	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRowContext(ctx, query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	// Running again must be a no-op
	if err := db.RunMigrations(context.Background()); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
	var applied int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("Failed to count migrations: %v", err)
	}
	if applied != 1 {
		t.Errorf("Expected 1 applied migration, got %d", applied)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecReturningID(ctx, "INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)",
			"testuser", "hashedpass", "player")
		return err
	})
	if err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", "testuser").Scan(&count); err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)",
		"testuser2", "hashedpass", "player"); err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE username = ?", "testuser2").Scan(&count); err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 users after rollback, got %d", count)
	}

	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	err = db.WithTx(ctx, func(tx *Tx) error { return busy })
	if !errors.Is(err, ErrContention) {
		t.Errorf("WithTx() busy error = %v, want ErrContention", err)
	}
}

// TestSessionConstraints checks the keys that guard the daily quota and guess ordering
func TestSessionConstraints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()
	userID := insertTestUser(t, db, "player1")
	now := time.Now().UTC()

	insertSession := func(id, status string, seq int) error {
		_, err := db.ExecContext(ctx, `INSERT INTO game_sessions
			(id, user_id, target_word, max_attempts, status, calendar_day, day_seq, started_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, id, userID, "CRANE", 6, status, "2024-03-01", seq, now)
		return err
	}

	if err := insertSession("s1", "active", 1); err != nil {
		t.Fatalf("Failed to insert session: %v", err)
	}

	err := insertSession("s2", "won", 1)
	if err == nil || !db.Dialect.IsUniqueViolation(err) {
		t.Errorf("Expected unique violation on duplicate day_seq, got %v", err)
	}

	err = insertSession("s3", "active", 2)
	if err == nil || !db.Dialect.IsUniqueViolation(err) {
		t.Errorf("Expected unique violation on second active session, got %v", err)
	}

	insertGuess := func(attempt int) error {
		_, err := db.ExecContext(ctx, `INSERT INTO guesses (session_id, attempt, word, colors, submitted_at)
			VALUES (?, ?, ?, ?, ?)`, "s1", attempt, "SLATE", "gray,gray,gray,gray,green", now)
		return err
	}
	if err := insertGuess(1); err != nil {
		t.Fatalf("Failed to insert guess: %v", err)
	}
	if err := insertGuess(1); err == nil || !db.Dialect.IsUniqueViolation(err) {
		t.Errorf("Expected unique violation on duplicate attempt, got %v", err)
	}
}

// TestConcurrentAccess tests concurrent database access
func TestConcurrentAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()
	insertTestUser(t, db, "concurrentuser")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var role string
			err := db.QueryRowContext(ctx, "SELECT role FROM users WHERE username = ?", "concurrentuser").Scan(&role)
			if err != nil {
				t.Errorf("Concurrent read failed: %v", err)
			}
			if role != "player" {
				t.Errorf("Expected role 'player', got '%s'", role)
			}
		}()
	}
	wg.Wait()
}

func TestBadWords(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	added, err := db.InsertBadWords(ctx, []string{"Badword", "badword", " ", "nasty", "ha_ha"})
	if err != nil {
		t.Fatalf("InsertBadWords() error: %v", err)
	}
	if added != 3 {
		t.Errorf("InsertBadWords() added %d, want 3", added)
	}

	tests := []struct {
		text string
		want bool
	}{
		{"badword", true},
		{"xxNastyxx", true},
		{"friendly", false},
		{"haxha", false},
		{"ha_ha", true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := db.ContainsBadWord(ctx, tt.text)
			if err != nil {
				t.Fatalf("ContainsBadWord() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ContainsBadWord(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
