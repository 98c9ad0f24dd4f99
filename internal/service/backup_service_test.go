package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordle/internal/models"
)

func TestBackupRoundTrip(t *testing.T) {
	src := newTestEnv(t, GameConfig{})
	ctx := context.Background()

	_, err := src.auth.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	bob, err := src.auth.Register(ctx, "bob", "secret2")
	require.NoError(t, err)

	res, err := src.game.Start(ctx, bob.ID)
	require.NoError(t, err)
	target := src.target(t, res.SessionID)
	_, err = src.hints.Hint(ctx, bob.ID, models.HintLevel1)
	require.NoError(t, err)
	_, err = src.game.Guess(ctx, bob.ID, wrongWord(target))
	require.NoError(t, err)
	_, err = src.game.Guess(ctx, bob.ID, target)
	require.NoError(t, err)

	backups := NewBackupService(src.db, src.users, src.games)
	var buf bytes.Buffer
	data, err := backups.ExportToWriter(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, backupVersion, data.Version)
	assert.Equal(t, "sqlite", data.DatabaseType)
	assert.Len(t, data.Users, 2)
	assert.Len(t, data.Sessions, 1)
	assert.Len(t, data.Guesses, 2)
	assert.Len(t, data.Hints, 1)

	dst := newTestEnv(t, GameConfig{})
	restore := NewBackupService(dst.db, dst.users, dst.games)
	require.NoError(t, restore.ImportFromReader(ctx, bytes.NewReader(buf.Bytes())))

	restoredBob, err := dst.users.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, restoredBob)
	assert.Equal(t, models.RolePlayer, restoredBob.Role)

	session, err := dst.games.GetSession(ctx, res.SessionID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, restoredBob.ID, session.UserID)
	assert.Equal(t, models.StatusWon, session.Status)
	require.Len(t, session.Guesses, 2)
	assert.Equal(t, target, session.Guesses[1].Word)

	login, err := dst.auth.Login(ctx, "bob", "secret2")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	err = restore.ImportFromReader(ctx, bytes.NewReader(buf.Bytes()))
	assert.ErrorContains(t, err, "empty database")
}

func TestBackupExportFile(t *testing.T) {
	env := newTestEnv(t, GameConfig{})
	ctx := context.Background()
	env.createUser(t, "alice")

	path := filepath.Join(t.TempDir(), "backup.json")
	backups := NewBackupService(env.db, env.users, env.games)
	require.NoError(t, backups.Export(ctx, path))

	dst := newTestEnv(t, GameConfig{})
	require.NoError(t, NewBackupService(dst.db, dst.users, dst.games).Import(ctx, path))

	users, err := dst.users.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestBackupRejectsUnknownVersion(t *testing.T) {
	env := newTestEnv(t, GameConfig{})
	backups := NewBackupService(env.db, env.users, env.games)

	err := backups.ImportFromReader(context.Background(), strings.NewReader(`{"version":"0.1"}`))
	assert.ErrorContains(t, err, "unsupported backup version")
}
