// Package ratelimit provides a token-bucket rate limiter keyed by client.
// The generation endpoints each cost an upstream model call, so bursts
// from a single client are capped while /health stays unlimited.
package ratelimit

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds limiter tuning. Limit is requests per Window; Burst is the
// bucket capacity. Limit <= 0 disables limiting entirely.
type Config struct {
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig reads limiter settings from the environment, with defaults
// sized for the cost of one generation call per request.
func LoadConfig() Config {
	cfg := Config{
		Limit:  10,
		Window: time.Minute,
		Burst:  5,
	}
	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limit = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Burst = n
		}
	}
	return cfg
}

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// Limiter tracks one token bucket per client key.
type Limiter struct {
	mu      sync.Mutex
	cfg     Config
	buckets map[string]*bucket
	now     func() time.Time
}

// NewLimiter creates a limiter from cfg.
func NewLimiter(cfg Config) *Limiter {
	return &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow consumes one token for the client, reporting whether the request
// may proceed and how long to wait otherwise.
func (l *Limiter) Allow(clientID string) (bool, time.Duration) {
	if l.cfg.Limit <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{tokens: float64(l.cfg.Burst), lastRefill: now}
		l.buckets[clientID] = b
	}

	refillRate := float64(l.cfg.Limit) / l.cfg.Window.Seconds()
	b.tokens += now.Sub(b.lastRefill).Seconds() * refillRate
	if b.tokens > float64(l.cfg.Burst) {
		b.tokens = float64(l.cfg.Burst)
	}
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true, 0
	}

	wait := time.Duration((1.0 - b.tokens) / refillRate * float64(time.Second))
	return false, wait
}

// Prune drops buckets idle longer than maxIdle. Called opportunistically
// by the server rather than from a background goroutine.
func (l *Limiter) Prune(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxIdle)
	for key, b := range l.buckets {
		if b.lastRefill.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}
