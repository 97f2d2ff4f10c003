package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Strava enforces two request windows per application, reported back on
// every response in X-RateLimit-* headers. The limits below are the
// documented defaults; headers override them when they disagree.
const (
	shortWindow       = 15 * time.Minute
	shortRequestLimit = 100
	dailyRequestLimit = 1000

	// A full history sync is a burst of paginated calls; spacing them out
	// keeps the burst from eating the 15-minute window in seconds.
	minRequestInterval = 150 * time.Millisecond
)

// RateLimiter tracks both Strava request windows and paces outgoing calls.
type RateLimiter struct {
	mu sync.Mutex

	shortLimit    int
	shortUsage    int
	shortResetsAt time.Time

	dailyLimit    int
	dailyUsage    int
	dailyResetsAt time.Time

	lastRequest time.Time
}

// NewRateLimiter creates a rate limiter with Strava's default limits.
func NewRateLimiter() *RateLimiter {
	now := time.Now()
	return &RateLimiter{
		shortLimit:    shortRequestLimit,
		shortResetsAt: now.Add(shortWindow),
		dailyLimit:    dailyRequestLimit,
		dailyResetsAt: now.Truncate(24 * time.Hour).Add(24 * time.Hour),
	}
}

// Wait blocks until a request can be made without exceeding either window,
// then records the request. Returns early if the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()

		if now.After(r.shortResetsAt) {
			r.shortUsage = 0
			r.shortResetsAt = now.Add(shortWindow)
		}
		if now.After(r.dailyResetsAt) {
			r.dailyUsage = 0
			r.dailyResetsAt = now.Truncate(24 * time.Hour).Add(24 * time.Hour)
		}

		var wait time.Duration
		switch {
		case r.shortUsage >= r.shortLimit:
			wait = time.Until(r.shortResetsAt)
		case r.dailyUsage >= r.dailyLimit:
			wait = time.Until(r.dailyResetsAt)
		case now.Sub(r.lastRequest) < minRequestInterval:
			wait = minRequestInterval - now.Sub(r.lastRequest)
		}

		if wait <= 0 {
			r.shortUsage++
			r.dailyUsage++
			r.lastRequest = now
			r.mu.Unlock()
			return nil
		}

		r.mu.Unlock()
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// UpdateFromHeaders syncs usage and limits from a Strava response.
// Strava sends X-RateLimit-Limit: "100,1000" and X-RateLimit-Usage: "34,512",
// short window first.
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if short, daily, ok := parseRateHeader(h.Get("X-RateLimit-Usage")); ok {
		r.shortUsage = short
		r.dailyUsage = daily
	}
	if short, daily, ok := parseRateHeader(h.Get("X-RateLimit-Limit")); ok {
		r.shortLimit = short
		r.dailyLimit = daily
	}
}

func parseRateHeader(value string) (short, daily int, ok bool) {
	parts := strings.Split(value, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	short, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	daily, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return short, daily, true
}

// Status returns how many requests remain in each window.
func (r *RateLimiter) Status() (shortRemaining, dailyRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shortLimit - r.shortUsage, r.dailyLimit - r.dailyUsage
}
