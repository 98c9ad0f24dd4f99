package service

import (
	"context"
	"time"

	"wordle/internal/dictionary"
	"wordle/internal/game"
	"wordle/internal/metrics"
	"wordle/internal/models"
	"wordle/internal/repository"
)

// HintService issues hints for a user's active game.
// It reads without the per-user lock so a hint never delays a guess.
type HintService struct {
	repo *repository.GameRepository
	now  func() time.Time
}

// NewHintService creates a new hint service
func NewHintService(repo *repository.GameRepository) *HintService {
	return &HintService{repo: repo, now: time.Now}
}

func (s *HintService) activeSession(ctx context.Context, userID int64) (*models.GameSession, error) {
	day := s.now().UTC().Format(time.DateOnly)
	session, err := s.repo.GetActiveSession(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// Hint generates a hint of the given level and records it against the session
func (s *HintService) Hint(ctx context.Context, userID int64, level models.HintLevel) (*models.HintRecord, error) {
	level, ok := models.ParseHintLevel(string(level))
	if !ok {
		return nil, ErrInvalidHintLevel
	}

	session, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	text, err := game.GenerateHint(session.TargetWord, session.Guesses, level, dictionary.Category(session.TargetWord))
	if err != nil {
		return nil, err
	}

	record := &models.HintRecord{
		SessionID: session.ID,
		Level:     level,
		Text:      text,
		IssuedAt:  s.now().UTC(),
	}
	if err := s.repo.AddHint(ctx, record); err != nil {
		return nil, err
	}

	metrics.HintsIssued.WithLabelValues(string(level)).Inc()
	return record, nil
}

// History lists the hints already issued for the active session
func (s *HintService) History(ctx context.Context, userID int64) ([]models.HintRecord, error) {
	session, err := s.activeSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListHints(ctx, session.ID)
}
