package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for one identity
type bucket struct {
	tokens     float64
	capacity   float64
	rate       float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
	identity   string
	parent     *Limiter
}

// Limiter keeps one bucket per identity (member id, ip) and forgets buckets
// that were not touched for expiration.
type Limiter struct {
	buckets    map[string]*bucket
	mu         sync.RWMutex
	rate       float64
	capacity   float64
	expiration time.Duration
}

func New(rate float64, capacity float64, expiration time.Duration) *Limiter {
	return &Limiter{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
	}
}

func PerSecond(n float64) *Limiter {
	return New(n, n, time.Hour)
}

func (l *Limiter) forget(identity string) {
	l.mu.Lock()
	delete(l.buckets, identity)
	l.mu.Unlock()
}

func (b *bucket) touch() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.parent.expiration, func() {
		b.parent.forget(b.identity)
	})
}

func (l *Limiter) bucketFor(identity string) *bucket {
	l.mu.RLock()
	b, exists := l.buckets[identity]
	l.mu.RUnlock()
	if exists {
		b.touch()
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, exists = l.buckets[identity]; exists {
		b.touch()
		return b
	}

	b = &bucket{
		tokens:     l.capacity,
		capacity:   l.capacity,
		rate:       l.rate,
		lastRefill: time.Now(),
		identity:   identity,
		parent:     l,
	}
	l.buckets[identity] = b
	b.touch()
	return b
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Allow consumes one token of identity's bucket
func (l *Limiter) Allow(identity string) bool {
	return l.bucketFor(identity).allow()
}

// Stop cancels all expiration timers
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range l.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}
