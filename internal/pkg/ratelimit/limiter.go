package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Quota allows Limit events per Period.
type Quota struct {
	Limit  int
	Period time.Duration
}

// PerMinute returns a quota of n events per minute.
func PerMinute(n int) Quota { return Quota{Limit: n, Period: time.Minute} }

// PerHour returns a quota of n events per hour.
func PerHour(n int) Quota { return Quota{Limit: n, Period: time.Hour} }

// PerDay returns a quota of n events per day.
func PerDay(n int) Quota { return Quota{Limit: n, Period: 24 * time.Hour} }

// Limiter enforces a set of quotas independently for every key.
// A key passes only while all of its quotas have capacity.
type Limiter struct {
	quotas []Quota
	idle   time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiters []*rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a keyed limiter for the given quotas.
func NewLimiter(quotas ...Quota) *Limiter {
	var idle time.Duration
	for _, q := range quotas {
		if q.Period > idle {
			idle = q.Period
		}
	}
	return &Limiter{
		quotas:  quotas,
		idle:    idle,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow consumes one event for key and reports whether it fits every quota.
// A rejected event does not consume capacity.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b := l.bucketFor(key)
	b.lastSeen = now

	reserved := make([]*rate.Reservation, 0, len(b.limiters))
	for _, lim := range b.limiters {
		r := lim.ReserveN(now, 1)
		if !r.OK() || r.DelayFrom(now) > 0 {
			r.CancelAt(now)
			for _, prev := range reserved {
				prev.CancelAt(now)
			}
			return false
		}
		reserved = append(reserved, r)
	}
	return true
}

// Prune forgets keys idle for longer than the longest quota period. Their buckets
// would be full again, so dropping them does not change any decision.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idle {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) bucketFor(key string) *bucket {
	if b, ok := l.buckets[key]; ok {
		return b
	}
	b := &bucket{limiters: make([]*rate.Limiter, 0, len(l.quotas))}
	for _, q := range l.quotas {
		b.limiters = append(b.limiters, rate.NewLimiter(rate.Every(q.Period/time.Duration(q.Limit)), q.Limit))
	}
	l.buckets[key] = b
	return b
}
