// Package ratelimit provides a small keyed token bucket. It guards the OTP
// resend and verify paths against brute forcing.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// Limiter hands out up to capacity tokens per key, refilling one token every
// refillEvery. Safe for concurrent use.
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	capacity    float64
	refillEvery time.Duration

	now func() time.Time
}

func New(capacity int, refillEvery time.Duration) *Limiter {
	if capacity < 1 {
		capacity = 1
	}
	if refillEvery <= 0 {
		refillEvery = time.Second
	}
	return &Limiter{
		buckets:     make(map[string]*bucket),
		capacity:    float64(capacity),
		refillEvery: refillEvery,
		now:         time.Now,
	}
}

// Allow consumes one token for key, reporting whether the caller may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, last: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.last)
	if elapsed > 0 {
		b.tokens += float64(elapsed) / float64(l.refillEvery)
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Reset clears the bucket for key, restoring full capacity on next use.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}
