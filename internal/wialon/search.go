package wialon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/terminusgps/wialon-registration/internal/metrics"
)

const (
	itemsTypeUnit   = "avl_unit"
	propUniqueID    = "sys_unique_id"
	propName        = "sys_name"
	searchFlagsBase = 1
)

// Searcher looks up units in the remote item directory. By default every
// operation opens, uses, and drops its own session.
type Searcher struct {
	accessToken string
	sessionOpts []SessionOption
	shared      *Session
	cache       *AvailabilityCache
	log         *slog.Logger
}

// SearcherOption configures the Searcher.
type SearcherOption func(*Searcher)

// WithSharedSession makes the Searcher reuse s instead of opening a session
// per operation. Keeping s refreshed is the caller's job; a search rejected
// with an invalid-session error refreshes s once and is reissued.
func WithSharedSession(s *Session) SearcherOption {
	return func(sr *Searcher) {
		sr.shared = s
	}
}

// WithSessionOptions sets the options used for per-operation sessions.
func WithSessionOptions(opts ...SessionOption) SearcherOption {
	return func(sr *Searcher) {
		sr.sessionOpts = append(sr.sessionOpts, opts...)
	}
}

// WithAvailabilityCache memoizes availability results in c.
func WithAvailabilityCache(c *AvailabilityCache) SearcherOption {
	return func(sr *Searcher) {
		sr.cache = c
	}
}

// WithSearcherLogger sets the logger.
func WithSearcherLogger(l *slog.Logger) SearcherOption {
	return func(sr *Searcher) {
		sr.log = l
	}
}

// NewSearcher creates a Searcher that authenticates with accessToken.
func NewSearcher(accessToken string, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		accessToken: accessToken,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByIMEI returns the id of the first unit whose unique id matches imei.
// An empty imei, or an empty result set, is reported as not found without
// an error; an empty imei makes no request.
func (s *Searcher) FindByIMEI(ctx context.Context, imei string) (int64, bool, error) {
	if imei == "" {
		return 0, false, nil
	}

	units, err := s.search(ctx, propUniqueID, imei)
	if err != nil {
		return 0, false, err
	}
	if len(units) == 0 {
		s.log.Debug("no unit matches imei", "imei", imei)
		return 0, false, nil
	}

	return units[0].ID, true, nil
}

// UnitIsAvailable reports whether exactly one unit is named imei. Names
// are compared case-sensitively.
func (s *Searcher) UnitIsAvailable(ctx context.Context, imei string) (bool, error) {
	if imei == "" {
		return false, nil
	}

	cache := CacheFromContext(ctx)
	if cache == nil {
		cache = s.cache
	}

	if cache != nil {
		if available, ok := cache.Get(imei); ok {
			metrics.AvailabilityCacheHits.Inc()
			return available, nil
		}
		metrics.AvailabilityCacheMisses.Inc()
	}

	units, err := s.search(ctx, propName, imei)
	if err != nil {
		return false, err
	}

	available := len(units) == 1 && units[0].Name == imei

	if cache != nil {
		cache.Put(imei, available)
	}
	return available, nil
}

// InvalidateAvailability drops any memoized availability for imei from the
// Searcher's own cache.
func (s *Searcher) InvalidateAvailability(imei string) {
	if s.cache == nil {
		return
	}
	if s.cache.Invalidate(imei) {
		metrics.AvailabilityInvalidations.Inc()
	}
}

func (s *Searcher) search(ctx context.Context, prop, value string) ([]Unit, error) {
	sess, release, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	params := SearchParams{
		Spec: SearchSpec{
			ItemsType:     itemsTypeUnit,
			PropName:      prop,
			PropValueMask: value,
			SortType:      prop,
		},
		Force: 1,
		Flags: searchFlagsBase,
		From:  0,
		To:    0,
	}

	var resp searchResponse
	err = sess.Call(ctx, SvcSearchItems, params, &resp)
	if err != nil && s.shared != nil && IsInvalidSession(err) {
		// Wialon dropped the shared session before the scheduled refresh.
		s.log.Warn("shared session rejected, logging in again", "error", err)
		if rerr := s.shared.Refresh(ctx); rerr != nil {
			return nil, fmt.Errorf("searching units by %s: %w", prop, rerr)
		}
		err = sess.Call(ctx, SvcSearchItems, params, &resp)
	}
	if err != nil {
		return nil, fmt.Errorf("searching units by %s: %w", prop, err)
	}
	return resp.Items, nil
}

func (s *Searcher) session(ctx context.Context) (*Session, func(), error) {
	if s.shared != nil {
		return s.shared, func() {}, nil
	}

	opts := append([]SessionOption{WithSessionLogger(s.log)}, s.sessionOpts...)
	sess, err := Open(ctx, s.accessToken, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session: %w", err)
	}
	return sess, sess.Close, nil
}
