// Package ratelimit throttles authentication attempts per identity with
// an in-memory sliding window. State lives for the process lifetime only
// and resets on restart.
package ratelimit

import (
	"math"
	"time"
)

// Outcome reports a limiter decision. RetryAfter is only meaningful when
// Allowed is false; it is rounded up to whole seconds.
type Outcome struct {
	Allowed    bool
	RetryAfter time.Duration
}

type entry struct {
	count       int
	lastAttempt time.Time
}

// Limiter counts attempts per identity inside a sliding window. It is
// owned by the auth service and passed in explicitly; there is no
// package-level state. Not safe for concurrent use: callers invoke it
// from a single logical actor.
type Limiter struct {
	maxAttempts int
	window      time.Duration

	attempts map[string]entry
	now      func() time.Time
}

// New creates a Limiter allowing maxAttempts per identity within window.
func New(maxAttempts int, window time.Duration) *Limiter {
	return &Limiter{
		maxAttempts: maxAttempts,
		window:      window,
		attempts:    make(map[string]entry),
		now:         time.Now,
	}
}

// Allow records an attempt for identity and reports whether it may
// proceed. The call itself counts as an attempt whenever the window is
// open and the threshold has not been crossed.
func (l *Limiter) Allow(identity string) Outcome {
	now := l.now()

	e, seen := l.attempts[identity]
	if !seen || now.Sub(e.lastAttempt) > l.window {
		// Fresh identity or fully elapsed window.
		l.attempts[identity] = entry{count: 1, lastAttempt: now}
		return Outcome{Allowed: true}
	}

	if e.count >= l.maxAttempts {
		remaining := l.window - now.Sub(e.lastAttempt)
		secs := math.Ceil(remaining.Seconds())
		return Outcome{Allowed: false, RetryAfter: time.Duration(secs) * time.Second}
	}

	l.attempts[identity] = entry{count: e.count + 1, lastAttempt: now}
	return Outcome{Allowed: true}
}

// Reset clears the entire attempt table, not just one identity. Called
// on logout; a logout by any user unthrottles every user.
func (l *Limiter) Reset() {
	l.attempts = make(map[string]entry)
}
