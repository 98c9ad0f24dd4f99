package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"wordle/internal/database"
	"wordle/internal/models"
	"wordle/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string          `json:"version"`
	ExportedAt   time.Time       `json:"exported_at"`
	DatabaseType string          `json:"database_type"`
	Users        []UserBackup    `json:"users"`
	Sessions     []SessionBackup `json:"sessions"`
	Guesses      []GuessBackup   `json:"guesses"`
	Hints        []HintBackup    `json:"hints"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionBackup represents a game session record for backup
type SessionBackup struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"user_id"`
	TargetWord  string     `json:"target_word"`
	MaxAttempts int        `json:"max_attempts"`
	Status      string     `json:"status"`
	CalendarDay string     `json:"calendar_day"`
	DaySeq      int        `json:"day_seq"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// GuessBackup represents a guess record for backup
type GuessBackup struct {
	SessionID   string    `json:"session_id"`
	Attempt     int       `json:"attempt"`
	Word        string    `json:"word"`
	Colors      []string  `json:"colors"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// HintBackup represents a hint record for backup
type HintBackup struct {
	SessionID string    `json:"session_id"`
	Level     string    `json:"level"`
	Text      string    `json:"text"`
	IssuedAt  time.Time `json:"issued_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db    *database.DB
	users *repository.UserRepository
	games *repository.GameRepository
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, users *repository.UserRepository, games *repository.GameRepository) *BackupService {
	return &BackupService{db: db, users: users, games: games}
}

// Collect reads every user, session, guess and hint into a backup
func (s *BackupService) Collect(ctx context.Context) (*BackupData, error) {
	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.Name(),
		Users:        []UserBackup{},
		Sessions:     []SessionBackup{},
		Guesses:      []GuessBackup{},
		Hints:        []HintBackup{},
	}

	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			ID:           u.ID,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			CreatedAt:    u.CreatedAt,
			UpdatedAt:    u.UpdatedAt,
		})
	}

	sessions, err := s.games.ListAllSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export sessions: %w", err)
	}
	for _, sess := range sessions {
		backup.Sessions = append(backup.Sessions, SessionBackup{
			ID:          sess.ID,
			UserID:      sess.UserID,
			TargetWord:  sess.TargetWord,
			MaxAttempts: sess.MaxAttempts,
			Status:      string(sess.Status),
			CalendarDay: sess.CalendarDay,
			DaySeq:      sess.DaySeq,
			StartedAt:   sess.StartedAt,
			CompletedAt: sess.CompletedAt,
		})
	}

	guesses, err := s.games.ListAllGuesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export guesses: %w", err)
	}
	for _, g := range guesses {
		colors := make([]string, len(g.Colors))
		for i, c := range g.Colors {
			colors[i] = string(c)
		}
		backup.Guesses = append(backup.Guesses, GuessBackup{
			SessionID:   g.SessionID,
			Attempt:     g.Attempt,
			Word:        g.Word,
			Colors:      colors,
			SubmittedAt: g.SubmittedAt,
		})
	}

	hints, err := s.games.ListAllHints(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export hints: %w", err)
	}
	for _, h := range hints {
		backup.Hints = append(backup.Hints, HintBackup{
			SessionID: h.SessionID,
			Level:     string(h.Level),
			Text:      h.Text,
			IssuedAt:  h.IssuedAt,
		})
	}

	return backup, nil
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(ctx, file)
	if err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d sessions, %d guesses, %d hints",
		len(backup.Users), len(backup.Sessions), len(backup.Guesses), len(backup.Hints))
	return nil
}

// ExportToWriter writes the backup as indented JSON
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) (*BackupData, error) {
	backup, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return backup, nil
}

// Import restores a backup file into an empty database
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores a backup into an empty database in one transaction.
// User ids are reassigned; sessions keep their ids.
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		var existing int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&existing); err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("import requires an empty database, found %d users", existing)
		}

		userIDs := make(map[int64]int64, len(backup.Users))
		for _, u := range backup.Users {
			id, err := tx.ExecReturningID(ctx, `
				INSERT INTO users (username, password_hash, role, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?)`, u.Username, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to import user %s: %w", u.Username, err)
			}
			userIDs[u.ID] = id
		}

		for _, sess := range backup.Sessions {
			userID, ok := userIDs[sess.UserID]
			if !ok {
				return fmt.Errorf("session %s references unknown user %d", sess.ID, sess.UserID)
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO game_sessions (id, user_id, target_word, max_attempts, status, calendar_day, day_seq, started_at, completed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				sess.ID, userID, sess.TargetWord, sess.MaxAttempts, sess.Status,
				sess.CalendarDay, sess.DaySeq, sess.StartedAt, sess.CompletedAt)
			if err != nil {
				return fmt.Errorf("failed to import session %s: %w", sess.ID, err)
			}
		}

		for _, g := range backup.Guesses {
			colors := make([]models.Color, len(g.Colors))
			for i, c := range g.Colors {
				colors[i] = models.Color(c)
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO guesses (session_id, attempt, word, colors, submitted_at)
				VALUES (?, ?, ?, ?, ?)`, g.SessionID, g.Attempt, g.Word, models.EncodeColors(colors), g.SubmittedAt)
			if err != nil {
				return fmt.Errorf("failed to import guess %s/%d: %w", g.SessionID, g.Attempt, err)
			}
		}

		for _, h := range backup.Hints {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO hints (session_id, level, text, issued_at)
				VALUES (?, ?, ?, ?)`, h.SessionID, h.Level, h.Text, h.IssuedAt)
			if err != nil {
				return fmt.Errorf("failed to import hint for %s: %w", h.SessionID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Database import completed: %d users, %d sessions, %d guesses, %d hints",
		len(backup.Users), len(backup.Sessions), len(backup.Guesses), len(backup.Hints))
	return nil
}
