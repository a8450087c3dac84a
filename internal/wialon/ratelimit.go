package wialon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned when the daily API call budget is spent.
var ErrDailyLimitReached = errors.New("wialon: daily API limit reached")

const quotaWindow = 24 * time.Hour

// RateLimiter paces outgoing Wialon calls with a token bucket and caps the
// number of calls in a rolling 24-hour window. The window starts with the
// first call after the previous window expired.
type RateLimiter struct {
	limiter  *rate.Limiter
	used     atomic.Int64
	maxDaily int64
	nowFunc  func() time.Time

	mu      sync.Mutex
	resetAt time.Time
}

// Quota is a point-in-time view of the limiter.
type Quota struct {
	DailyLimit int64
	DailyUsed  int64
	Remaining  int64
	ResetAt    time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a limiter allowing perSecond calls with the given
// burst, and at most maxDaily calls per window. A maxDaily of 0 disables
// the daily cap.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resetAt = r.nowFunc().Add(quotaWindow)
	return r
}

// Wait blocks until a call is allowed or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.rollWindow()

	if r.maxDaily > 0 {
		if used := r.used.Load(); used >= r.maxDaily {
			return fmt.Errorf("%w (%d/%d)", ErrDailyLimitReached, used, r.maxDaily)
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	r.used.Add(1)
	return nil
}

// DailyCount returns the number of calls made in the current window.
func (r *RateLimiter) DailyCount() int64 {
	return r.used.Load()
}

// Quota returns the current usage snapshot.
func (r *RateLimiter) Quota() Quota {
	r.rollWindow()

	r.mu.Lock()
	resetAt := r.resetAt
	r.mu.Unlock()

	used := r.used.Load()
	q := Quota{
		DailyLimit: r.maxDaily,
		DailyUsed:  used,
		ResetAt:    resetAt,
	}
	if r.maxDaily > 0 {
		q.Remaining = max(r.maxDaily-used, 0)
	}
	return q
}

func (r *RateLimiter) rollWindow() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	if now.After(r.resetAt) {
		r.used.Store(0)
		r.resetAt = now.Add(quotaWindow)
	}
}
