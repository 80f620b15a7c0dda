package ratelimit

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrLimitExceeded is returned by Use once a provider's budget is spent.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Limiter caps calls per provider within a rolling window (one day by
// default). A limit of zero or less means unlimited.
type Limiter struct {
	mu        sync.Mutex
	limits    map[string]int
	used      map[string]int
	window    time.Duration
	resetTime time.Time
	now       func() time.Time
	log       *slog.Logger
}

func New(limits map[string]int, log *slog.Logger) *Limiter {
	if log == nil {
		log = slog.Default()
	}
	l := &Limiter{
		limits: make(map[string]int, len(limits)),
		used:   make(map[string]int),
		window: 24 * time.Hour,
		now:    time.Now,
		log:    log.With("component", "ratelimit"),
	}
	for k, v := range limits {
		l.limits[k] = v
	}
	l.resetTime = l.now().Add(l.window)
	return l
}

// Allow reports whether provider still has budget without consuming it.
func (l *Limiter) Allow(provider string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()
	limit := l.limits[provider]
	return limit <= 0 || l.used[provider] < limit
}

// Use consumes one call from provider's budget.
func (l *Limiter) Use(provider string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.checkReset()
	limit := l.limits[provider]
	if limit > 0 && l.used[provider] >= limit {
		return fmt.Errorf("%s: %w (%d/%d)", provider, ErrLimitExceeded, l.used[provider], limit)
	}
	l.used[provider]++
	l.log.Debug("provider call", "provider", provider, "used", l.used[provider], "limit", limit)
	return nil
}

// GetStats returns used and limit counts per provider.
func (l *Limiter) GetStats() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := map[string]interface{}{"reset_time": l.resetTime}
	for provider, limit := range l.limits {
		stats[provider+"_used"] = l.used[provider]
		stats[provider+"_limit"] = limit
	}
	return stats
}

func (l *Limiter) checkReset() {
	if l.now().After(l.resetTime) {
		l.log.Info("resetting provider counters", "used", l.used)
		l.used = make(map[string]int)
		l.resetTime = l.now().Add(l.window)
	}
}
