package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wordle/internal/database"
	"wordle/internal/dictionary"
	"wordle/internal/models"
	"wordle/internal/repository"
	"wordle/internal/security"
)

var testWords = []string{"CRANE", "SLATE", "ALLOY", "SPEED", "ERASE", "LOLLY", "PLANT", "GHOST"}

var testNow = time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

type testEnv struct {
	db      *database.DB
	users   *repository.UserRepository
	games   *repository.GameRepository
	dict    *dictionary.Provider
	reports *ReportService
	game    *GameService
	hints   *HintService
	auth    *AuthService
	clock   *time.Time
}

func newTestEnv(t *testing.T, cfg GameConfig) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(context.Background()))

	dict, err := dictionary.New(testWords, dictionary.ModeDaily)
	require.NoError(t, err)

	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 6
	}
	if cfg.SessionsPerDay == 0 {
		cfg.SessionsPerDay = 1
	}
	if cfg.LockTimeout == 0 {
		cfg.LockTimeout = 5 * time.Second
	}

	env := &testEnv{
		db:    db,
		users: repository.NewUserRepository(db),
		games: repository.NewGameRepository(db),
		dict:  dict,
	}
	clock := testNow
	env.clock = &clock
	now := func() time.Time { return *env.clock }

	env.reports, err = NewReportService(env.games, env.users, 16, cfg.MaxAttempts)
	require.NoError(t, err)
	env.reports.now = now

	env.game = NewGameService(env.games, dict, env.reports, cfg)
	env.game.now = now

	env.hints = NewHintService(env.games)
	env.hints.now = now

	tokens := security.NewTokenManager("test-secret-that-is-at-least-32-chars", "wordle-test", time.Hour)
	env.auth = NewAuthService(env.users, tokens, db)

	return env
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), username, "hash")
	require.NoError(t, err)
	return user
}

func (e *testEnv) target(t *testing.T, sessionID string) string {
	t.Helper()
	session, err := e.games.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, session)
	return session.TargetWord
}

// wrongWord returns a dictionary word that differs from target
func wrongWord(target string) string {
	for _, w := range testWords {
		if w != target {
			return w
		}
	}
	return ""
}
