package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

// attemptLimiter counts PIN attempts per client inside a sliding window.
type attemptLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	limit    int
	window   time.Duration
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		failures: make(map[string][]time.Time),
		limit:    loginAttemptLimit,
		window:   loginAttemptWindow,
	}
}

// reserve counts an attempt before it is checked, so parallel requests cannot overrun the limit.
// A failed attempt keeps its slot; call clear on success or release when the check never ran.
func (limiter *attemptLimiter) reserve(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	recent := limiter.recentLocked(key, now)
	if len(recent) >= limiter.limit {
		return false
	}
	limiter.failures[key] = append(recent, now)
	return true
}

func (limiter *attemptLimiter) release(key string, at time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	attempts := limiter.failures[key]
	for index, attemptAt := range attempts {
		if attemptAt.Equal(at) {
			limiter.failures[key] = append(attempts[:index], attempts[index+1:]...)
			break
		}
	}
	if len(limiter.failures[key]) == 0 {
		delete(limiter.failures, key)
	}
}

func (limiter *attemptLimiter) clear(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.failures, key)
}

func (limiter *attemptLimiter) recentLocked(key string, now time.Time) []time.Time {
	threshold := now.Add(-limiter.window)
	recent := make([]time.Time, 0, len(limiter.failures[key]))
	for _, failedAt := range limiter.failures[key] {
		if failedAt.After(threshold) {
			recent = append(recent, failedAt)
		}
	}

	if len(recent) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = recent
	return recent
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
