// Package ratelimit provides a bounded, TTL-evicted request counter with
// an explicit lifecycle. It is owned and injected by the caller; there is
// no package-level state and no ambient timer. The sweep goroutine runs
// only between Start and Stop.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	count     int
	windowEnd time.Time
}

// Limiter allows at most limit hits per key per window. Entries are
// evicted by a periodic sweep and the map never grows past maxEntries;
// when full, requests for unseen keys are refused rather than evicting
// live buckets.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	limit      int
	window     time.Duration
	maxEntries int

	sweepEvery time.Duration
	stopCh     chan struct{}
	stopped    sync.Once
	nowFunc    func() time.Time
}

// New returns a stopped Limiter. Call Start to begin the sweep.
func New(limit int, window time.Duration, maxEntries int) *Limiter {
	return &Limiter{
		buckets:    map[string]*bucket{},
		limit:      limit,
		window:     window,
		maxEntries: maxEntries,
		sweepEvery: window,
		stopCh:     make(chan struct{}),
		nowFunc:    time.Now,
	}
}

// Allow records a hit for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) bool {
	now := l.nowFunc()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || !b.windowEnd.After(now) {
		if !ok && len(l.buckets) >= l.maxEntries {
			l.evictExpired(now)
			if len(l.buckets) >= l.maxEntries {
				return false
			}
		}
		l.buckets[key] = &bucket{count: 1, windowEnd: now.Add(l.window)}
		return l.limit >= 1
	}

	b.count++
	return b.count <= l.limit
}

// Start launches the periodic sweep. Tie this to application startup.
func (l *Limiter) Start() {
	go func() {
		ticker := time.NewTicker(l.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.mu.Lock()
				l.evictExpired(l.nowFunc())
				l.mu.Unlock()
			case <-l.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the sweep goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopped.Do(func() { close(l.stopCh) })
}

// Len reports the current number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) evictExpired(now time.Time) {
	for k, b := range l.buckets {
		if !b.windowEnd.After(now) {
			delete(l.buckets, k)
		}
	}
}
