package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordle/internal/database"
	"wordle/internal/models"
)

func setupDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(context.Background()))
	return db
}

func TestCreateUserFirstIsAdmin(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first, err := repo.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, first.Role)

	second, err := repo.CreateUser(ctx, "bob", "hash")
	require.NoError(t, err)
	assert.Equal(t, models.RolePlayer, second.Role)

	_, err = repo.CreateUser(ctx, "bob", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	found, err := repo.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, second.ID, found.ID)

	missing, err := repo.GetUserByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.SetRole(ctx, second.ID, models.RoleAdmin))
	promoted, err := repo.GetUserByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	users, err := repo.GetAllUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestGameRepositoryLifecycle(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	games := NewGameRepository(db)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	now := time.Now().UTC()
	session := &models.GameSession{
		ID:          "session-1",
		UserID:      user.ID,
		TargetWord:  "CRANE",
		MaxAttempts: 6,
		Status:      models.StatusActive,
		CalendarDay: "2024-03-01",
		DaySeq:      1,
		StartedAt:   now,
	}
	require.NoError(t, games.CreateSession(ctx, session))

	count, err := games.CountSessionsForDay(ctx, user.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	dup := *session
	dup.ID = "session-2"
	assert.ErrorIs(t, games.CreateSession(ctx, &dup), ErrDuplicateSession)

	guess := &models.Guess{
		SessionID:   session.ID,
		Attempt:     1,
		Word:        "SLATE",
		Colors:      []models.Color{models.ColorGray, models.ColorGray, models.ColorGreen, models.ColorGray, models.ColorGreen},
		SubmittedAt: now,
	}
	require.NoError(t, games.AppendGuess(ctx, guess))
	assert.NotZero(t, guess.ID)

	again := *guess
	assert.ErrorIs(t, games.AppendGuess(ctx, &again), ErrDuplicateSession)

	active, err := games.GetActiveSession(ctx, user.ID, "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Len(t, active.Guesses, 1)
	assert.Equal(t, guess.Colors, active.Guesses[0].Colors)

	hint := &models.HintRecord{SessionID: session.ID, Level: models.HintLevel1, Text: "Think about birds.", IssuedAt: now}
	require.NoError(t, games.AddHint(ctx, hint))
	hints, err := games.ListHints(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, hints, 1)
	assert.Equal(t, models.HintLevel1, hints[0].Level)

	require.NoError(t, games.CompleteSession(ctx, session.ID, models.StatusWon, now))
	assert.ErrorIs(t, games.CompleteSession(ctx, session.ID, models.StatusLost, now), ErrSessionNotActive)

	active, err = games.GetActiveSession(ctx, user.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, active)

	byDay, err := games.ListSessionsByDay(ctx, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, byDay, 1)
	assert.Equal(t, "alice", byDay[0].Username)
	assert.Equal(t, 1, byDay[0].Attempts)
	assert.Equal(t, models.StatusWon, byDay[0].Session.Status)
	assert.NotNil(t, byDay[0].Session.CompletedAt)
}

func TestExpireStaleSessions(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	games := NewGameRepository(db)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	now := time.Now().UTC()
	for i, day := range []string{"2024-02-28", "2024-03-01"} {
		require.NoError(t, games.CreateSession(ctx, &models.GameSession{
			ID: day, UserID: user.ID, TargetWord: "CRANE", MaxAttempts: 6,
			Status: models.StatusActive, CalendarDay: day, DaySeq: 1, StartedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	n, err := games.ExpireStaleSessions(ctx, user.ID, "2024-03-01", now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stale, err := games.GetSession(ctx, "2024-02-28")
	require.NoError(t, err)
	assert.Equal(t, models.StatusLost, stale.Status)

	current, err := games.GetSession(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, current.Status)
}

func TestRunInTxRollsBack(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	games := NewGameRepository(db)
	ctx := context.Background()

	user, err := users.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	err = games.RunInTx(ctx, func(repo *GameRepository) error {
		if err := repo.CreateSession(ctx, &models.GameSession{
			ID: "tx-session", UserID: user.ID, TargetWord: "CRANE", MaxAttempts: 6,
			Status: models.StatusActive, CalendarDay: "2024-03-01", DaySeq: 1, StartedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		return ErrSessionNotActive
	})
	assert.ErrorIs(t, err, ErrSessionNotActive)

	s, err := games.GetSession(ctx, "tx-session")
	require.NoError(t, err)
	assert.Nil(t, s)
}
