// Package ratelimit provides the two admission gates the service needs:
// an inbound per-caller sliding window checked before any paid work, and an
// outbound per-domain token bucket for source-page fetches.
package ratelimit

import (
	"sync"
	"time"
)

// ErrTooManyRequests is the fixed rejection signal for rate-limited callers
type ErrTooManyRequests struct{}

func (ErrTooManyRequests) Error() string { return "too many requests" }

// Window is a per-caller sliding-window rate limiter. It keeps only the
// timestamps within the trailing window for each caller and admits a request
// when the count is below the maximum. Buckets are pruned lazily on each
// check; rejected requests do not mutate state.
type Window struct {
	max    int
	window time.Duration

	mu      sync.Mutex
	buckets map[string][]time.Time
	now     func() time.Time // injectable for tests
}

// NewWindow creates a sliding-window limiter admitting max requests per
// caller per window
func NewWindow(max int, window time.Duration) *Window {
	if max <= 0 {
		max = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Window{
		max:     max,
		window:  window,
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Admit records and admits the request when the caller is under the limit,
// or rejects it with ErrTooManyRequests leaving state untouched.
func (w *Window) Admit(callerID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	cutoff := now.Add(-w.window)

	bucket := w.buckets[callerID]
	kept := bucket[:0]
	for _, t := range bucket {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= w.max {
		w.buckets[callerID] = kept
		return ErrTooManyRequests{}
	}

	w.buckets[callerID] = append(kept, now)
	return nil
}

// Remaining returns how many requests the caller has left in the current window
func (w *Window) Remaining(callerID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-w.window)
	count := 0
	for _, t := range w.buckets[callerID] {
		if t.After(cutoff) {
			count++
		}
	}
	if count >= w.max {
		return 0
	}
	return w.max - count
}
