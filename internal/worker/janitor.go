package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionPurger removes sessions whose lifetime has ended.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Pruner drops idle in-memory state such as rate limiter buckets.
type Pruner interface {
	Prune()
}

// Janitor periodically purges expired sessions and prunes in-memory limiters.
type Janitor struct {
	purger   SessionPurger
	pruners  []Pruner
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewJanitor constructs a janitor sweeping every interval.
func NewJanitor(purger SessionPurger, interval time.Duration, logger *slog.Logger, pruners ...Pruner) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{
		purger:   purger,
		pruners:  pruners,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the sweep loop. Calling Start on a running janitor is a no-op.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		return
	}

	// The loop must outlive the start hook context.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	j.cancel = cancel

	j.wg.Add(1)
	go j.run(runCtx)
}

// Stop cancels the loop and waits for the running sweep to finish.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.mu.Unlock()

	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep runs a single cleanup pass.
func (j *Janitor) Sweep(ctx context.Context) {
	removed, err := j.purger.PurgeExpiredSessions(ctx)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Error("purge expired sessions failed", slog.String("error", err.Error()))
		}
	} else if removed > 0 {
		j.logger.Info("expired sessions purged", slog.Int64("count", removed))
	}

	for _, p := range j.pruners {
		p.Prune()
	}
}
