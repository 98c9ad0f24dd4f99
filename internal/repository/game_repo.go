package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wordle/internal/database"
	"wordle/internal/models"
)

var (
	// ErrSessionNotActive is returned when a finished session is asked to change
	ErrSessionNotActive = errors.New("session is not active")
	// ErrDuplicateSession is returned when a unique key on sessions or guesses rejects a write
	ErrDuplicateSession = errors.New("conflicting session write")
)

// GameRepository handles game sessions, guesses and hints
type GameRepository struct {
	db *database.DB
	q  database.Querier
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db, q: db}
}

// RunInTx calls fn with a repository bound to a single transaction
func (r *GameRepository) RunInTx(ctx context.Context, fn func(repo *GameRepository) error) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		return fn(&GameRepository{db: r.db, q: tx})
	})
}

const sessionColumns = `s.id, s.user_id, s.target_word, s.max_attempts, s.status,
	s.calendar_day, s.day_seq, s.started_at, s.completed_at`

// CreateSession inserts a new session
func (r *GameRepository) CreateSession(ctx context.Context, s *models.GameSession) error {
	query := `
		INSERT INTO game_sessions (id, user_id, target_word, max_attempts, status, calendar_day, day_seq, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.q.ExecContext(ctx, query, s.ID, s.UserID, s.TargetWord, s.MaxAttempts,
		string(s.Status), s.CalendarDay, s.DaySeq, s.StartedAt)
	if err != nil {
		if r.q.SQLDialect().IsUniqueViolation(err) {
			return ErrDuplicateSession
		}
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// CountSessionsForDay returns how many sessions a user has started on day
func (r *GameRepository) CountSessionsForDay(ctx context.Context, userID int64, day string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM game_sessions WHERE user_id = ? AND calendar_day = ?"
	if err := r.q.QueryRowContext(ctx, query, userID, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// ExpireStaleSessions marks a user's sessions left active on earlier days as lost
func (r *GameRepository) ExpireStaleSessions(ctx context.Context, userID int64, day string, at time.Time) (int64, error) {
	query := `
		UPDATE game_sessions
		SET status = ?, completed_at = ?
		WHERE user_id = ? AND status = ? AND calendar_day < ?
	`
	result, err := r.q.ExecContext(ctx, query, string(models.StatusLost), at, userID, string(models.StatusActive), day)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale sessions: %w", err)
	}
	return result.RowsAffected()
}

// GetActiveSession returns the user's active session for day with its guesses, or nil
func (r *GameRepository) GetActiveSession(ctx context.Context, userID int64, day string) (*models.GameSession, error) {
	query := "SELECT " + sessionColumns + `
		FROM game_sessions s
		WHERE s.user_id = ? AND s.calendar_day = ? AND s.status = ?
		ORDER BY s.day_seq DESC
		LIMIT 1
	`
	session, err := scanSession(r.q.QueryRowContext(ctx, query, userID, day, string(models.StatusActive)))
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	if session.Guesses, err = r.ListGuesses(ctx, session.ID); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession returns a session with its guesses, or nil
func (r *GameRepository) GetSession(ctx context.Context, id string) (*models.GameSession, error) {
	query := "SELECT " + sessionColumns + " FROM game_sessions s WHERE s.id = ?"
	session, err := scanSession(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	if session.Guesses, err = r.ListGuesses(ctx, session.ID); err != nil {
		return nil, err
	}
	return session, nil
}

// ListGuesses returns a session's guesses in attempt order
func (r *GameRepository) ListGuesses(ctx context.Context, sessionID string) ([]models.Guess, error) {
	query := `
		SELECT id, session_id, attempt, word, colors, submitted_at
		FROM guesses
		WHERE session_id = ?
		ORDER BY attempt
	`
	rows, err := r.q.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query guesses: %w", err)
	}
	defer rows.Close()
	return scanGuesses(rows)
}

// AppendGuess records a scored guess; the attempt number must be unused for the session
func (r *GameRepository) AppendGuess(ctx context.Context, g *models.Guess) error {
	query := `
		INSERT INTO guesses (session_id, attempt, word, colors, submitted_at)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.q.ExecReturningID(ctx, query, g.SessionID, g.Attempt, g.Word, models.EncodeColors(g.Colors), g.SubmittedAt)
	if err != nil {
		if r.q.SQLDialect().IsUniqueViolation(err) {
			return ErrDuplicateSession
		}
		return fmt.Errorf("failed to record guess: %w", err)
	}
	g.ID = id
	return nil
}

// CompleteSession moves an active session to a terminal status
func (r *GameRepository) CompleteSession(ctx context.Context, sessionID string, status models.Status, at time.Time) error {
	query := `
		UPDATE game_sessions
		SET status = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`
	result, err := r.q.ExecContext(ctx, query, string(status), at, sessionID, string(models.StatusActive))
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return ErrSessionNotActive
	}
	return nil
}

// AddHint records a hint issued for a session
func (r *GameRepository) AddHint(ctx context.Context, h *models.HintRecord) error {
	query := "INSERT INTO hints (session_id, level, text, issued_at) VALUES (?, ?, ?, ?)"
	id, err := r.q.ExecReturningID(ctx, query, h.SessionID, string(h.Level), h.Text, h.IssuedAt)
	if err != nil {
		return fmt.Errorf("failed to record hint: %w", err)
	}
	h.ID = id
	return nil
}

// ListHints returns the hints issued for a session, oldest first
func (r *GameRepository) ListHints(ctx context.Context, sessionID string) ([]models.HintRecord, error) {
	query := "SELECT id, session_id, level, text, issued_at FROM hints WHERE session_id = ? ORDER BY id"
	rows, err := r.q.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hints: %w", err)
	}
	defer rows.Close()
	return scanHints(rows)
}

// ListSessionsByDay returns every session played on day with owner and guess count
func (r *GameRepository) ListSessionsByDay(ctx context.Context, day string) ([]models.SessionSummary, error) {
	return r.listSummaries(ctx, "s.calendar_day = ?", day)
}

// ListSessionsByUser returns every session of a user with guess counts
func (r *GameRepository) ListSessionsByUser(ctx context.Context, userID int64) ([]models.SessionSummary, error) {
	return r.listSummaries(ctx, "s.user_id = ?", userID)
}

func (r *GameRepository) listSummaries(ctx context.Context, where string, arg interface{}) ([]models.SessionSummary, error) {
	query := "SELECT " + sessionColumns + `, u.username,
			(SELECT COUNT(*) FROM guesses g WHERE g.session_id = s.id) AS attempts
		FROM game_sessions s
		JOIN users u ON u.id = s.user_id
		WHERE ` + where + `
		ORDER BY s.calendar_day, s.started_at, s.day_seq`

	rows, err := r.q.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var summaries []models.SessionSummary
	for rows.Next() {
		var sum models.SessionSummary
		var status string
		var completedAt sql.NullTime
		s := &sum.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.TargetWord, &s.MaxAttempts, &status,
			&s.CalendarDay, &s.DaySeq, &s.StartedAt, &completedAt,
			&sum.Username, &sum.Attempts); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.Status = models.Status(status)
		if completedAt.Valid {
			s.CompletedAt = &completedAt.Time
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// ListAllSessions returns every session without guesses, for export
func (r *GameRepository) ListAllSessions(ctx context.Context) ([]models.GameSession, error) {
	query := "SELECT " + sessionColumns + " FROM game_sessions s ORDER BY s.started_at, s.id"
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.GameSession
	for rows.Next() {
		s, err := scanSessionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// ListAllGuesses returns every guess, for export
func (r *GameRepository) ListAllGuesses(ctx context.Context) ([]models.Guess, error) {
	query := "SELECT id, session_id, attempt, word, colors, submitted_at FROM guesses ORDER BY session_id, attempt"
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query guesses: %w", err)
	}
	defer rows.Close()
	return scanGuesses(rows)
}

// ListAllHints returns every hint, for export
func (r *GameRepository) ListAllHints(ctx context.Context) ([]models.HintRecord, error) {
	query := "SELECT id, session_id, level, text, issued_at FROM hints ORDER BY id"
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query hints: %w", err)
	}
	defer rows.Close()
	return scanHints(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSessionRow(row rowScanner) (*models.GameSession, error) {
	s := &models.GameSession{}
	var status string
	var completedAt sql.NullTime
	if err := row.Scan(&s.ID, &s.UserID, &s.TargetWord, &s.MaxAttempts, &status,
		&s.CalendarDay, &s.DaySeq, &s.StartedAt, &completedAt); err != nil {
		return nil, err
	}
	s.Status = models.Status(status)
	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}
	return s, nil
}

func scanSession(row *sql.Row) (*models.GameSession, error) {
	s, err := scanSessionRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func scanGuesses(rows *sql.Rows) ([]models.Guess, error) {
	var guesses []models.Guess
	for rows.Next() {
		var g models.Guess
		var colors string
		if err := rows.Scan(&g.ID, &g.SessionID, &g.Attempt, &g.Word, &colors, &g.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guess: %w", err)
		}
		decoded, err := models.DecodeColors(colors)
		if err != nil {
			return nil, fmt.Errorf("guess %d: %w", g.ID, err)
		}
		g.Colors = decoded
		guesses = append(guesses, g)
	}
	return guesses, rows.Err()
}

func scanHints(rows *sql.Rows) ([]models.HintRecord, error) {
	var hints []models.HintRecord
	for rows.Next() {
		var h models.HintRecord
		var level string
		if err := rows.Scan(&h.ID, &h.SessionID, &level, &h.Text, &h.IssuedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hint: %w", err)
		}
		h.Level = models.HintLevel(level)
		hints = append(hints, h)
	}
	return hints, rows.Err()
}
