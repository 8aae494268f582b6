package service

import (
	"context"
	"sync"
	"time"
)

// OTPRateLimiter limita la frecuencia de solicitudes de OTP por clave (el email normalizado).
type OTPRateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

const (
	otpRateWindow = 10 * time.Minute
	otpRateMax    = 5
)

type otpRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	now    func() time.Time
}

// NewOTPRateLimiter crea un rate limiter en memoria.
func NewOTPRateLimiter(window time.Duration, max int) OTPRateLimiter {
	return newOTPRateLimiter(window, max, func() time.Time { return time.Now().UTC() })
}

func newOTPRateLimiter(window time.Duration, max int, now func() time.Time) *otpRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &otpRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    now,
	}
}

func (l *otpRateLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	l.hits[key] = append(kept, now)
	return true
}
