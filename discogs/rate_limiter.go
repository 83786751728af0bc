package discogs

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	RateLimitWindow = 60 * time.Second
	AuthRequests    = 60
	AnonRequests    = 25
)

// RateLimiter tracks request counts against Discogs' per-minute windows.
// Authenticated callers get the larger window; the limiter also folds in the
// X-Discogs-Ratelimit response headers so a shared token used elsewhere still
// throttles us correctly.
type RateLimiter struct {
	sync.RWMutex
	windowStart time.Time
	authCount   int
	anonCount   int
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{windowStart: time.Now()}
}

// Wait blocks until a request slot is free in the current window or ctx is
// done, whichever comes first. The lock is never held across a sleep, so
// other callers keep making progress while one waits out the window.
func (rl *RateLimiter) Wait(ctx context.Context, isAuth bool) error {
	for {
		rl.Lock()
		now := time.Now()
		if now.Sub(rl.windowStart) >= RateLimitWindow {
			rl.windowStart = now
			rl.authCount = 0
			rl.anonCount = 0
		}

		maxCount := AuthRequests
		count := &rl.authCount
		if !isAuth {
			maxCount = AnonRequests
			count = &rl.anonCount
		}

		if *count < maxCount {
			*count++
			rl.Unlock()
			return nil
		}

		sleepTime := rl.windowStart.Add(RateLimitWindow).Sub(now)
		rl.Unlock()

		if sleepTime > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleepTime):
			}
		}
	}
}

// UpdateFromHeaders marks the window exhausted when Discogs reports zero
// remaining requests
func (rl *RateLimiter) UpdateFromHeaders(resp *http.Response) {
	rl.Lock()
	defer rl.Unlock()

	if rlAuth := resp.Header.Get("X-Discogs-Ratelimit-Auth"); rlAuth != "" {
		if limit, err := strconv.Atoi(rlAuth); err == nil {
			remaining := resp.Header.Get("X-Discogs-Ratelimit-Auth-Remaining")
			if rem, err := strconv.Atoi(remaining); err == nil && rem == 0 {
				rl.authCount = limit
			}
		}
	}

	if rlAnon := resp.Header.Get("X-Discogs-Ratelimit"); rlAnon != "" {
		if limit, err := strconv.Atoi(rlAnon); err == nil {
			remaining := resp.Header.Get("X-Discogs-Ratelimit-Remaining")
			if rem, err := strconv.Atoi(remaining); err == nil && rem == 0 {
				rl.anonCount = limit
			}
		}
	}
}
