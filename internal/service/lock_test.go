package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordle/internal/database"
)

func TestKeyedLockTimeout(t *testing.T) {
	locks := newKeyedLock()
	ctx := context.Background()

	release, err := locks.acquire(ctx, 1, time.Second)
	require.NoError(t, err)

	_, err = locks.acquire(ctx, 1, 20*time.Millisecond)
	assert.ErrorIs(t, err, ErrSessionBusy)

	// other keys do not contend
	other, err := locks.acquire(ctx, 2, 20*time.Millisecond)
	require.NoError(t, err)
	other()

	release()
	release()
	assert.Equal(t, 0, locks.size())

	again, err := locks.acquire(ctx, 1, 20*time.Millisecond)
	require.NoError(t, err)
	again()
}

func TestKeyedLockContextCancel(t *testing.T) {
	locks := newKeyedLock()

	release, err := locks.acquire(context.Background(), 7, time.Second)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locks.acquire(ctx, 7, time.Minute)
	assert.ErrorIs(t, err, ErrSessionBusy)
	assert.Equal(t, 1, locks.size())
}

func TestKeyedLockHandoff(t *testing.T) {
	locks := newKeyedLock()
	ctx := context.Background()

	release, err := locks.acquire(ctx, 1, time.Second)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		r, err := locks.acquire(ctx, 1, time.Second)
		if err == nil {
			r()
		}
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	release()
	assert.NoError(t, <-done)
	assert.Equal(t, 0, locks.size())
}

func TestBusyOnContention(t *testing.T) {
	contended := fmt.Errorf("%w: database is locked", database.ErrContention)
	assert.ErrorIs(t, busyOnContention(contended), ErrSessionBusy)

	other := errors.New("disk full")
	assert.Equal(t, other, busyOnContention(other))
}
