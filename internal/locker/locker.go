package locker

import (
	"context"
	"errors"
	"sync"
)

// ErrNotAcquired is returned when the lock could not be taken before the
// caller's context expired. The admission path reports this as a retryable
// abort, never as a conflict.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes the check-and-insert region of slot and booking creation.
// Acquire blocks until the key is held or ctx is done; the returned release
// function must be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// MemoryLocker is a per-key in-process mutex. It is the Locker used in tests
// and in single-instance deployments; multi-instance deployments use
// RedisLocker.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]chan struct{})}
}

func (l *MemoryLocker) semaphore(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	sem, ok := l.locks[key]
	if !ok {
		sem = make(chan struct{}, 1)
		l.locks[key] = sem
	}
	return sem
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	sem := l.semaphore(key)
	select {
	case sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-sem })
		}, nil
	case <-ctx.Done():
		return nil, ErrNotAcquired
	}
}
