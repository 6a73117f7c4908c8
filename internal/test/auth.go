package test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	pkgAuth "github.com/polkiloo/gobank/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return pkgAuth.ErrPasswordMismatch
	}
	return nil
}

// SequenceTokens hands out "token-1", "token-2", ... unless Tokens is set, in which
// case its entries are returned in order and the sequence continues afterwards.
type SequenceTokens struct {
	Tokens []string
	Err    error

	calls atomic.Int64
}

// NewToken implements auth.TokenGenerator.
func (g *SequenceTokens) NewToken() (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	n := g.calls.Add(1)
	if int(n) <= len(g.Tokens) {
		return g.Tokens[n-1], nil
	}
	return fmt.Sprintf("token-%d", n), nil
}

// Calls returns how many tokens were requested.
func (g *SequenceTokens) Calls() int {
	return int(g.calls.Load())
}

// AuditEvent is a security event captured by AuditRecorder.
type AuditEvent struct {
	Level string
	IP    string
	Msg   string
}

// AuditRecorder keeps security events in memory.
type AuditRecorder struct {
	mu     sync.Mutex
	events []AuditEvent
}

// Warn records a WARNING event.
func (r *AuditRecorder) Warn(_ context.Context, ip, msg string) {
	r.record("WARNING", ip, msg)
}

// Critical records a CRITICAL event.
func (r *AuditRecorder) Critical(_ context.Context, ip, msg string) {
	r.record("CRITICAL", ip, msg)
}

// Events returns a snapshot of recorded events.
func (r *AuditRecorder) Events() []AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]AuditEvent(nil), r.events...)
}

// Last returns the most recent event.
func (r *AuditRecorder) Last() (AuditEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return AuditEvent{}, false
	}
	return r.events[len(r.events)-1], true
}

func (r *AuditRecorder) record(level, ip, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, AuditEvent{Level: level, IP: ip, Msg: msg})
}

// CounterStub is an AttemptCounter returning preset counts.
type CounterStub struct {
	Count int64
	Err   error
	Keys  []string
}

// Hit records key and returns the configured count.
func (c *CounterStub) Hit(_ context.Context, key string) (int64, error) {
	c.Keys = append(c.Keys, key)
	return c.Count, c.Err
}

// ErrStub is a generic failure used to simulate infrastructure errors.
var ErrStub = errors.New("stub failure")

var (
	_ pkgAuth.PasswordHasher = HasherStub{}
	_ pkgAuth.TokenGenerator = (*SequenceTokens)(nil)
)
