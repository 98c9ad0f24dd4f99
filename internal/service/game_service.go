package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"wordle/internal/database"
	"wordle/internal/dictionary"
	"wordle/internal/game"
	"wordle/internal/metrics"
	"wordle/internal/models"
	"wordle/internal/repository"
	"wordle/internal/security"
)

// ReportInvalidator drops cached reports affected by a session change
type ReportInvalidator interface {
	InvalidateDay(day string)
	InvalidateUser(userID int64)
	Purge()
}

// GameConfig holds the game limits
type GameConfig struct {
	MaxAttempts    int
	SessionsPerDay int
	LockTimeout    time.Duration
}

// GameService handles the game session lifecycle
type GameService struct {
	repo    *repository.GameRepository
	dict    *dictionary.Provider
	reports ReportInvalidator
	cfg     GameConfig
	locks   *keyedLock
	now     func() time.Time
}

// NewGameService creates a new game service
func NewGameService(repo *repository.GameRepository, dict *dictionary.Provider, reports ReportInvalidator, cfg GameConfig) *GameService {
	return &GameService{
		repo:    repo,
		dict:    dict,
		reports: reports,
		cfg:     cfg,
		locks:   newKeyedLock(),
		now:     time.Now,
	}
}

// StartResult is returned when a new game begins
type StartResult struct {
	SessionID   string
	Message     string
	MaxAttempts int
	CalendarDay string
}

// GuessResult is the outcome of one scored guess
type GuessResult struct {
	Message           string
	Colors            []models.Color
	Win               bool
	RemainingAttempts int
	Status            models.Status
	Attempt           int
	// TargetWord is set only once the game is over
	TargetWord string
}

func (s *GameService) today() (time.Time, string) {
	now := s.now().UTC()
	return now, now.Format(time.DateOnly)
}

// Start begins a new game for the user on the current calendar day
func (s *GameService) Start(ctx context.Context, userID int64) (*StartResult, error) {
	release, err := s.locks.acquire(ctx, userID, s.cfg.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer release()

	now, day := s.today()
	var session *models.GameSession
	var expired int64

	err = s.repo.RunInTx(ctx, func(repo *repository.GameRepository) error {
		var err error
		if expired, err = repo.ExpireStaleSessions(ctx, userID, day, now); err != nil {
			return err
		}

		count, err := repo.CountSessionsForDay(ctx, userID, day)
		if err != nil {
			return err
		}
		if count >= s.cfg.SessionsPerDay {
			return ErrDailyLimitExceeded
		}

		active, err := repo.GetActiveSession(ctx, userID, day)
		if err != nil {
			return err
		}
		if active != nil {
			return ErrGameInProgress
		}

		target, err := s.dict.PickTarget(day, count+1)
		if err != nil {
			return fmt.Errorf("failed to pick target word: %w", err)
		}

		session = &models.GameSession{
			ID:          security.NewID(),
			UserID:      userID,
			TargetWord:  target,
			MaxAttempts: s.cfg.MaxAttempts,
			Status:      models.StatusActive,
			CalendarDay: day,
			DaySeq:      count + 1,
			StartedAt:   now,
		}
		if err := repo.CreateSession(ctx, session); err != nil {
			if errors.Is(err, repository.ErrDuplicateSession) {
				return ErrSessionBusy
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, busyOnContention(err)
	}

	if expired > 0 {
		log.Printf("Expired %d unfinished game(s) from earlier days for user %d", expired, userID)
		s.reports.Purge()
	}
	s.reports.InvalidateDay(day)
	s.reports.InvalidateUser(userID)
	metrics.GamesStarted.Inc()
	log.Printf("Game started: user=%d session=%s day=%s seq=%d", userID, session.ID, day, session.DaySeq)

	return &StartResult{
		SessionID:   session.ID,
		Message:     fmt.Sprintf("🎮 New game started! You have %d attempts to guess the 5-letter word.", session.MaxAttempts),
		MaxAttempts: session.MaxAttempts,
		CalendarDay: day,
	}, nil
}

// Guess scores word against the user's active game and records it
func (s *GameService) Guess(ctx context.Context, userID int64, word string) (*GuessResult, error) {
	word = strings.ToUpper(strings.TrimSpace(word))
	if utf8.RuneCountInString(word) != models.WordLength {
		metrics.GuessesRejected.WithLabelValues("length").Inc()
		return nil, ErrInvalidGuessLength
	}
	if !dictionary.IsWellFormed(word) || !s.dict.IsValidWord(word) {
		metrics.GuessesRejected.WithLabelValues("dictionary").Inc()
		return nil, ErrInvalidWord
	}

	release, err := s.locks.acquire(ctx, userID, s.cfg.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer release()

	now, day := s.today()
	var result *GuessResult
	var session *models.GameSession

	err = s.repo.RunInTx(ctx, func(repo *repository.GameRepository) error {
		var err error
		session, err = repo.GetActiveSession(ctx, userID, day)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrNoActiveSession
		}

		attempt := len(session.Guesses) + 1
		if attempt > session.MaxAttempts {
			return ErrNoActiveSession
		}

		colors, err := game.Evaluate(session.TargetWord, word)
		if err != nil {
			return err
		}

		guess := &models.Guess{
			SessionID:   session.ID,
			Attempt:     attempt,
			Word:        word,
			Colors:      colors,
			SubmittedAt: now,
		}
		if err := repo.AppendGuess(ctx, guess); err != nil {
			if errors.Is(err, repository.ErrDuplicateSession) {
				return ErrSessionBusy
			}
			return err
		}

		status := models.StatusActive
		switch {
		case game.IsWin(colors):
			status = models.StatusWon
		case attempt == session.MaxAttempts:
			status = models.StatusLost
		}
		if status.IsTerminal() {
			if err := repo.CompleteSession(ctx, session.ID, status, now); err != nil {
				return err
			}
		}

		result = &GuessResult{
			Colors:            colors,
			Win:               status == models.StatusWon,
			RemainingAttempts: session.MaxAttempts - attempt,
			Status:            status,
			Attempt:           attempt,
		}
		return nil
	})
	if err != nil {
		return nil, busyOnContention(err)
	}

	metrics.GuessesSubmitted.Inc()
	s.reports.InvalidateDay(day)
	s.reports.InvalidateUser(userID)

	switch result.Status {
	case models.StatusWon:
		result.Message = "🎉 Congratulations! You guessed the word!"
		result.TargetWord = session.TargetWord
	case models.StatusLost:
		result.Message = fmt.Sprintf("❌ Game over! The word was %s.", session.TargetWord)
		result.TargetWord = session.TargetWord
	default:
		result.Message = fmt.Sprintf("Keep going! %s left.", pluralize(result.RemainingAttempts, "attempt"))
	}
	if result.Status.IsTerminal() {
		metrics.GamesFinished.WithLabelValues(string(result.Status)).Inc()
		log.Printf("Game finished: user=%d session=%s status=%s attempts=%d", userID, session.ID, result.Status, result.Attempt)
	}

	return result, nil
}

// Current returns the user's active game for today, including its guesses
func (s *GameService) Current(ctx context.Context, userID int64) (*models.GameSession, error) {
	_, day := s.today()
	session, err := s.repo.GetActiveSession(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// busyOnContention reports backend lock contention as a busy session
func busyOnContention(err error) error {
	if errors.Is(err, database.ErrContention) {
		return ErrSessionBusy
	}
	return err
}
