// Package ratelimit implements a per-key token-bucket limiter, adapted
// from the teacher's per-token API rate limiter to key on arbitrary
// strings (user IDs, search categories) instead of API-token UUIDs.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerMinute and DefaultBurst are package defaults; no
	// caller uses them (the API server builds the web_search limiter with
	// its own values, and the agent loop is not rate limited).
	DefaultRequestsPerMinute = 30
	DefaultBurst             = 5
	cleanupInterval          = 5 * time.Minute
	entryTTL                 = 10 * time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages one token bucket per key.
type Limiter struct {
	mu          sync.Mutex
	entries     map[string]*entry
	perMinute   float64
	burst       int
	stopCh      chan struct{}
	stopOnce    sync.Once
}

// New builds a Limiter with the given requests-per-minute and burst size.
func New(requestsPerMinute, burst int) *Limiter {
	l := &Limiter{
		entries:   make(map[string]*entry),
		perMinute: float64(requestsPerMinute) / 60.0,
		burst:     burst,
		stopCh:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow reports whether a request for key is permitted right now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Limit(l.perMinute), l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for k, e := range l.entries {
				if now.Sub(e.lastSeen) > entryTTL {
					delete(l.entries, k)
				}
			}
			l.mu.Unlock()
		case <-l.stopCh:
			return
		}
	}
}

// Stop halts the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}
