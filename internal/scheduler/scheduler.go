// Package scheduler keeps the shared Wialon session fresh on a cron
// schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/terminusgps/wialon-registration/internal/metrics"
	"github.com/terminusgps/wialon-registration/internal/notify"
	"github.com/terminusgps/wialon-registration/internal/wialon"
)

const (
	defaultRefreshTimeout = 30 * time.Second
	defaultAlertEvery     = 3
)

// Scheduler periodically refreshes a session.
type Scheduler struct {
	cron           *cron.Cron
	session        wialon.SessionController
	notifier       notify.Notifier
	log            *slog.Logger
	refreshEntryID cron.EntryID
	refreshTimeout time.Duration
	alertEvery     int
	nowFunc        func() time.Time

	mu       sync.Mutex
	failures int
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// WithNotifier sends a session alert after repeated refresh failures.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Scheduler) {
		s.notifier = n
	}
}

// WithAlertEvery sets how many consecutive failures trigger an alert.
func WithAlertEvery(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.alertEvery = n
		}
	}
}

// WithRefreshTimeout bounds each scheduled refresh.
func WithRefreshTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.refreshTimeout = d
		}
	}
}

// New creates a Scheduler that refreshes sess every interval.
func New(sess wialon.SessionController, interval time.Duration, opts ...Option) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", interval)
	}

	s := &Scheduler{
		cron:           cron.New(),
		session:        sess,
		log:            slog.Default(),
		refreshTimeout: defaultRefreshTimeout,
		alertEvery:     defaultAlertEvery,
		nowFunc:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	id, err := s.cron.AddFunc("@every "+interval.String(), s.runRefresh)
	if err != nil {
		return nil, err
	}
	s.refreshEntryID = id

	return s, nil
}

// Start begins running scheduled refreshes.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamp()
}

// Stop stops the scheduler. The returned context is done once a running
// refresh has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Failures returns the number of consecutive failed refreshes.
func (s *Scheduler) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// SyncNextRunTimestamp publishes the next refresh time as a gauge.
func (s *Scheduler) SyncNextRunTimestamp() {
	entry := s.cron.Entry(s.refreshEntryID)
	if entry.Next.IsZero() {
		return
	}
	metrics.SchedulerNextRefreshTimestamp.Set(float64(entry.Next.Unix()))
}

// RefreshNow runs one refresh immediately.
func (s *Scheduler) RefreshNow(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.refreshTimeout)
	defer cancel()

	err := s.session.Refresh(ctx)
	info := s.session.Info()
	if info.Ready {
		metrics.SessionReady.Set(1)
	} else {
		metrics.SessionReady.Set(0)
	}

	s.mu.Lock()
	if err == nil {
		s.failures = 0
		s.mu.Unlock()
		s.log.Info("session refreshed", "refreshes", info.Refreshes, "host", info.Host)
		return nil
	}
	s.failures++
	failures := s.failures
	s.mu.Unlock()

	s.log.Error("session refresh failed", "error", err, "consecutive_failures", failures)

	if s.notifier != nil && failures%s.alertEvery == 0 {
		alert := &notify.SessionAlertPayload{
			Host:     info.Host,
			Error:    err.Error(),
			Failures: failures,
			At:       s.nowFunc(),
		}
		if nerr := s.notifier.SendSessionAlert(context.WithoutCancel(ctx), alert); nerr != nil {
			s.log.Warn("session alert failed", "error", nerr)
		}
	}
	return err
}

func (s *Scheduler) runRefresh() {
	s.log.Info("scheduled session refresh starting")
	_ = s.RefreshNow(context.Background())
	s.SyncNextRunTimestamp()
}
