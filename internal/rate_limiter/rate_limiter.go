package rate_limiter

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether one more attempt under key fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimiter is a sliding-window limiter kept in process memory. It is used
// when Redis is not configured.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Close stops the cleanup goroutine.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			windowStart := rl.now().Add(-rl.window)
			for key := range rl.requests {
				if valid := rl.prune(key, windowStart); len(valid) == 0 {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// prune drops timestamps older than windowStart; callers hold mu.
func (rl *RateLimiter) prune(key string, windowStart time.Time) []time.Time {
	var valid []time.Time
	for _, t := range rl.requests[key] {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}
	rl.requests[key] = valid
	return valid
}

func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	return rl.IsAllowed(key), nil
}

func (rl *RateLimiter) IsAllowed(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if len(rl.prune(key, now.Add(-rl.window))) >= rl.limit {
		return false
	}

	rl.requests[key] = append(rl.requests[key], now)
	return true
}

func (rl *RateLimiter) GetRemainingRequests(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return rl.limit - len(rl.prune(key, rl.now().Add(-rl.window)))
}
