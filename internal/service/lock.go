package service

import (
	"context"
	"sync"
	"time"

	"wordle/internal/metrics"
)

// keyedLock serializes work per user without making different users contend.
// Entries are removed once nobody holds or waits on them.
type keyedLock struct {
	mu      sync.Mutex
	entries map[int64]*lockEntry
}

type lockEntry struct {
	ch   chan struct{}
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{entries: make(map[int64]*lockEntry)}
}

// acquire waits until key is free, ctx is done or timeout elapses.
// The returned release func must be called exactly once on success.
func (k *keyedLock) acquire(ctx context.Context, key int64, timeout time.Duration) (func(), error) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{ch: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	start := time.Now()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case e.ch <- struct{}{}:
		metrics.LockWaitDuration.Observe(time.Since(start).Seconds())
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.ch
				k.unref(key, e)
			})
		}, nil
	case <-ctx.Done():
	case <-timer.C:
	}

	k.unref(key, e)
	metrics.LockTimeouts.Inc()
	return nil, ErrSessionBusy
}

func (k *keyedLock) unref(key int64, e *lockEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}

func (k *keyedLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
