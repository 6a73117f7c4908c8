package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// MaxLoginAttempts is the number of login attempts tolerated per window.
	MaxLoginAttempts = 5
	// LoginWindow is the idle time after which the attempt count of an IP restarts.
	LoginWindow = 5 * time.Minute
)

// AttemptCounter counts login attempts per client.
type AttemptCounter interface {
	// Hit records an attempt for key and returns the count including it.
	Hit(ctx context.Context, key string) (int64, error)
}

type attempt struct {
	count int64
	last  time.Time
}

// AttemptTable is an in-process AttemptCounter.
type AttemptTable struct {
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	attempts map[string]*attempt
}

// NewAttemptTable creates a table whose counts restart after window of inactivity.
func NewAttemptTable(window time.Duration) *AttemptTable {
	if window <= 0 {
		window = LoginWindow
	}
	return &AttemptTable{
		window:   window,
		now:      time.Now,
		attempts: make(map[string]*attempt),
	}
}

// Hit implements AttemptCounter.
func (t *AttemptTable) Hit(_ context.Context, key string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	a, ok := t.attempts[key]
	if !ok {
		a = &attempt{}
		t.attempts[key] = a
	}
	if now.Sub(a.last) > t.window {
		a.count = 0
	}
	a.count++
	a.last = now
	return a.count, nil
}

// Prune drops clients idle for longer than the window.
func (t *AttemptTable) Prune() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for key, a := range t.attempts {
		if now.Sub(a.last) > t.window {
			delete(t.attempts, key)
		}
	}
}

// Len returns the number of tracked clients.
func (t *AttemptTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.attempts)
}
