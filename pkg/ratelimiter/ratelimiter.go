// Package ratelimiter hands out one token bucket per client key (usually the
// client IP).
package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type RateLimiter interface {
	Allow(key string) bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps a rate.Limiter per key and forgets keys idle for longer
// than the idle window.
type KeyedLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

// NewKeyed allows perSecond requests per key with the given burst.
func NewKeyed(perSecond float64, burst int) *KeyedLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &KeyedLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

func (kl *KeyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := kl.now()
	v, ok := kl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Sweep drops keys that have not been seen within the idle window.
func (kl *KeyedLimiter) Sweep() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	cutoff := kl.now().Add(-kl.idle)
	removed := 0
	for key, v := range kl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(kl.visitors, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.visitors)
}
