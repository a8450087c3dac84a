package wialon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/terminusgps/wialon-registration/internal/metrics"
)

// DefaultAppName is the application name attached to tokens created by
// CreateToken.
const DefaultAppName = "terminusgps"

// SessionInfo is a snapshot of a session's state.
type SessionInfo struct {
	Ready      bool
	User       string
	Host       string
	LoggedInAt time.Time
	Refreshes  int64
}

// Session holds one authenticated Wialon session id ("eid") obtained by
// exchanging an access token. The session id is written only by Login and
// Refresh; those calls are serialized and swap the id under a write lock,
// so concurrent readers always see either the old or the new id.
type Session struct {
	accessToken string
	client      *Client
	appName     string
	log         *slog.Logger
	nowFunc     func() time.Time

	// loginMu serializes token/login exchanges.
	loginMu sync.Mutex

	mu         sync.RWMutex
	sid        string
	user       string
	host       string
	loggedInAt time.Time
	refreshes  int64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClient sets the API client used by the session.
func WithClient(c *Client) SessionOption {
	return func(s *Session) {
		s.client = c
	}
}

// WithAppName overrides the application name used for created tokens.
func WithAppName(name string) SessionOption {
	return func(s *Session) {
		s.appName = name
	}
}

// WithSessionLogger sets the session logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

// WithSessionNowFunc overrides the time function for testing.
func WithSessionNowFunc(f func() time.Time) SessionOption {
	return func(s *Session) {
		s.nowFunc = f
	}
}

// NewSession creates an unauthenticated session for accessToken. It
// returns ErrMissingAccessToken when the token is empty.
func NewSession(accessToken string, opts ...SessionOption) (*Session, error) {
	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	s := &Session{
		accessToken: accessToken,
		appName:     DefaultAppName,
		log:         slog.Default(),
		nowFunc:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = NewClient(WithLogger(s.log))
	}
	return s, nil
}

// Open creates a session and logs it in.
func Open(ctx context.Context, accessToken string, opts ...SessionOption) (*Session, error) {
	s, err := NewSession(accessToken, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Login(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Login exchanges the access token for a session id. When the response
// carries no "eid" the failure is logged, the session stays not ready, and
// ErrNoSessionID is returned.
func (s *Session) Login(ctx context.Context) error {
	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	return s.login(ctx)
}

// Refresh re-runs the login exchange and replaces the session id in place.
// On failure the previous id, if any, is kept.
func (s *Session) Refresh(ctx context.Context) error {
	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	if err := s.login(ctx); err != nil {
		metrics.SessionRefreshesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("refreshing session: %w", err)
	}

	s.mu.Lock()
	s.refreshes++
	s.mu.Unlock()

	metrics.SessionRefreshesTotal.WithLabelValues("ok").Inc()
	return nil
}

func (s *Session) login(ctx context.Context) error {
	var resp loginResponse
	err := s.client.Call(ctx, SvcTokenLogin, loginParams{Token: s.accessToken, Flags: 1}, "", &resp)
	if err != nil {
		metrics.SessionLoginsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("logging in: %w", err)
	}

	if resp.EID == "" {
		metrics.SessionLoginsTotal.WithLabelValues("no_eid").Inc()
		s.log.Warn("token/login response has no session id", "host", resp.Host)
		return ErrNoSessionID
	}

	s.mu.Lock()
	s.sid = resp.EID
	s.host = resp.Host
	if resp.User != nil {
		s.user = resp.User.Name
	}
	s.loggedInAt = s.nowFunc()
	s.mu.Unlock()

	metrics.SessionLoginsTotal.WithLabelValues("ok").Inc()
	s.log.Debug("wialon session established", "user", s.user, "host", resp.Host)
	return nil
}

// SessionID returns the current session id, or ErrNotLoggedIn.
func (s *Session) SessionID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sid == "" {
		return "", ErrNotLoggedIn
	}
	return s.sid, nil
}

// Ready reports whether the session holds a usable session id.
func (s *Session) Ready() bool {
	_, err := s.SessionID()
	return err == nil
}

// Info returns a snapshot of the session state.
func (s *Session) Info() SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return SessionInfo{
		Ready:      s.sid != "",
		User:       s.user,
		Host:       s.host,
		LoggedInAt: s.loggedInAt,
		Refreshes:  s.refreshes,
	}
}

// Close drops the local session id. No remote call is made.
func (s *Session) Close() {
	s.mu.Lock()
	s.sid = ""
	s.mu.Unlock()
}

// Call issues svc with the current session id.
func (s *Session) Call(ctx context.Context, svc string, params, dst any) error {
	sid, err := s.SessionID()
	if err != nil {
		return err
	}
	return s.client.Call(ctx, svc, params, sid, dst)
}

// CreateToken asks the remote service to create a new unlimited token for
// the configured application and returns it. The session is unchanged.
func (s *Session) CreateToken(ctx context.Context) (*Token, error) {
	params := tokenUpdateParams{
		CallMode:   "create",
		App:        s.appName,
		Activation: 0,
		Duration:   0,
		Flags:      -1,
		Params:     "{}",
	}

	var tok Token
	if err := s.Call(ctx, SvcTokenUpdate, params, &tok); err != nil {
		return nil, fmt.Errorf("creating token: %w", err)
	}
	return &tok, nil
}

// ListTokens returns the tokens associated with the session's user.
func (s *Session) ListTokens(ctx context.Context) ([]Token, error) {
	var tokens []Token
	if err := s.Call(ctx, SvcTokenList, nil, &tokens); err != nil {
		return nil, fmt.Errorf("listing tokens: %w", err)
	}
	return tokens, nil
}

// LogValue redacts credentials when a session is logged.
func (s *Session) LogValue() slog.Value {
	info := s.Info()
	return slog.GroupValue(
		slog.Bool("ready", info.Ready),
		slog.String("user", info.User),
		slog.String("access_token", redact(s.accessToken)),
	)
}

func redact(v string) string {
	if len(v) <= 4 {
		return "****"
	}
	return v[:4] + "****"
}

// IsConfigError reports whether err means the session could not be built
// from its configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingAccessToken)
}
