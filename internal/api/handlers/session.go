package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

// Refresher refreshes the shared session, recording the outcome.
type Refresher interface {
	RefreshNow(ctx context.Context) error
}

// SessionHandler exposes the shared Wialon session and its tokens.
type SessionHandler struct {
	session   wialon.SessionController
	refresher Refresher
}

// NewSessionHandler creates a new SessionHandler. session is nil when every
// request opens its own session; the endpoints then answer 503. When
// refresher is nil, refreshes go straight to the session.
func NewSessionHandler(s wialon.SessionController, r Refresher) *SessionHandler {
	return &SessionHandler{session: s, refresher: r}
}

// --- Input/Output types ---

// SessionStatus describes the shared session.
type SessionStatus struct {
	Ready      bool      `json:"ready"                  doc:"A session id is held"`
	User       string    `json:"user,omitempty"         doc:"Account the session belongs to"`
	Host       string    `json:"host,omitempty"         doc:"Address Wialon saw the login from"`
	LoggedInAt time.Time `json:"logged_in_at,omitzero"  doc:"Time of the last successful login"`
	Refreshes  int64     `json:"refreshes"              doc:"Successful refreshes since start"`
}

// SessionOutput is the response for session status endpoints.
type SessionOutput struct {
	Body SessionStatus
}

// TokenView is an access token as shown by the API.
type TokenView struct {
	Value       string    `json:"token"                   doc:"Token value, redacted in listings"`
	App         string    `json:"app"                     doc:"Application name"`
	Duration    int64     `json:"duration_seconds"        doc:"Lifetime in seconds, 0 for unlimited"`
	Flags       int64     `json:"flags"                   doc:"Access flags"`
	CreatedAt   time.Time `json:"created_at,omitzero"     doc:"Creation time"`
	LastLoginAt time.Time `json:"last_login_at,omitzero"  doc:"Last login with this token"`
}

// ListTokensOutput is the response for listing tokens.
type ListTokensOutput struct {
	Body struct {
		Tokens []TokenView `json:"tokens"`
	}
}

// CreateTokenOutput is the response for creating a token.
type CreateTokenOutput struct {
	Body TokenView
}

// --- Handlers ---

// GetSession returns the shared session status.
func (h *SessionHandler) GetSession(_ context.Context, _ *struct{}) (*SessionOutput, error) {
	if h.session == nil {
		return nil, errNoSharedSession()
	}
	return &SessionOutput{Body: statusOf(h.session.Info())}, nil
}

// RefreshSession logs the shared session in again.
func (h *SessionHandler) RefreshSession(ctx context.Context, _ *struct{}) (*SessionOutput, error) {
	if h.session == nil {
		return nil, errNoSharedSession()
	}

	var err error
	if h.refresher != nil {
		err = h.refresher.RefreshNow(ctx)
	} else {
		err = h.session.Refresh(ctx)
	}
	if err != nil {
		return nil, wialonError("session refresh failed", err)
	}

	return &SessionOutput{Body: statusOf(h.session.Info())}, nil
}

// ListTokens returns the account's access tokens with their values redacted.
func (h *SessionHandler) ListTokens(ctx context.Context, _ *struct{}) (*ListTokensOutput, error) {
	if h.session == nil {
		return nil, errNoSharedSession()
	}

	tokens, err := h.session.ListTokens(ctx)
	if err != nil {
		return nil, wialonError("listing tokens failed", err)
	}

	resp := &ListTokensOutput{}
	resp.Body.Tokens = make([]TokenView, 0, len(tokens))
	for i := range tokens {
		v := tokenView(&tokens[i])
		v.Value = redactToken(v.Value)
		resp.Body.Tokens = append(resp.Body.Tokens, v)
	}
	return resp, nil
}

// CreateToken creates a new access token and returns its full value.
func (h *SessionHandler) CreateToken(ctx context.Context, _ *struct{}) (*CreateTokenOutput, error) {
	if h.session == nil {
		return nil, errNoSharedSession()
	}

	tok, err := h.session.CreateToken(ctx)
	if err != nil {
		return nil, wialonError("creating token failed", err)
	}
	return &CreateTokenOutput{Body: tokenView(tok)}, nil
}

func errNoSharedSession() error {
	return huma.Error503ServiceUnavailable("no shared session: session.mode is per_request")
}

func statusOf(info wialon.SessionInfo) SessionStatus {
	return SessionStatus{
		Ready:      info.Ready,
		User:       info.User,
		Host:       info.Host,
		LoggedInAt: info.LoggedInAt,
		Refreshes:  info.Refreshes,
	}
}

func tokenView(t *wialon.Token) TokenView {
	v := TokenView{
		Value:    t.Value,
		App:      t.App,
		Duration: t.Duration,
		Flags:    t.Flags,
	}
	if t.CreatedAt > 0 {
		v.CreatedAt = time.Unix(t.CreatedAt, 0).UTC()
	}
	if t.LastLoginAt > 0 {
		v.LastLoginAt = time.Unix(t.LastLoginAt, 0).UTC()
	}
	return v
}

func redactToken(v string) string {
	if len(v) <= 8 {
		return "********"
	}
	return v[:8] + "********"
}

// RegisterSessionRoutes registers session and token endpoints with the Huma API.
func RegisterSessionRoutes(api huma.API, h *SessionHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Get session status",
		Tags:        []string{"session"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.GetSession)

	huma.Register(api, huma.Operation{
		OperationID: "refresh-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/session/refresh",
		Summary:     "Refresh the session",
		Description: "Exchanges the access token for a new session id.",
		Tags:        []string{"session"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusTooManyRequests},
	}, h.RefreshSession)

	huma.Register(api, huma.Operation{
		OperationID: "list-tokens",
		Method:      http.MethodGet,
		Path:        "/api/v1/tokens",
		Summary:     "List access tokens",
		Tags:        []string{"session"},
		Errors:      []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.ListTokens)

	huma.Register(api, huma.Operation{
		OperationID:   "create-token",
		Method:        http.MethodPost,
		Path:          "/api/v1/tokens",
		Summary:       "Create an access token",
		Description:   "Creates a new unlimited access token for the configured application name.",
		Tags:          []string{"session"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadGateway, http.StatusServiceUnavailable},
	}, h.CreateToken)
}
