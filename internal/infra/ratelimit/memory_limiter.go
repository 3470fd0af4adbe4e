package ratelimit

import (
	"context"
	"sync"
	"time"

	"morgenstar/internal/domain/service"
)

const sweepInterval = 5 * time.Minute

type window struct {
	count   int
	resetAt time.Time
}

// memoryLimiter is a fixed window counter for single-instance deployments.
type memoryLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter creates an in-process limiter
func NewMemoryLimiter() service.RateLimiter {
	return &memoryLimiter{
		windows:   make(map[string]*window),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow counts one request for key.
func (l *memoryLimiter) Allow(_ context.Context, key string, limit int, windowSize time.Duration) (*service.RateLimitResult, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(windowSize)}
		l.windows[key] = w
	}

	if w.count >= limit {
		return &service.RateLimitResult{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: w.resetAt.Sub(now),
		}, nil
	}

	w.count++

	return &service.RateLimitResult{
		Allowed:   true,
		Remaining: limit - w.count,
	}, nil
}

// sweepLocked drops expired windows so the map does not grow without bound.
func (l *memoryLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}

	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}
