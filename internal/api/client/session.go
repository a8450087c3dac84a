package client

import (
	"context"
	"time"
)

// Session is the server's shared Wialon session status.
type Session struct {
	Ready      bool      `json:"ready"`
	User       string    `json:"user,omitempty"`
	Host       string    `json:"host,omitempty"`
	LoggedInAt time.Time `json:"logged_in_at,omitzero"`
	Refreshes  int64     `json:"refreshes"`
}

// Token is a Wialon access token. Listed tokens are redacted.
type Token struct {
	Value       string    `json:"token"`
	App         string    `json:"app"`
	Duration    int64     `json:"duration_seconds"`
	Flags       int64     `json:"flags"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	LastLoginAt time.Time `json:"last_login_at,omitzero"`
}

// Quota is the server's Wialon API call budget.
type Quota struct {
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// GetSession returns the shared session status.
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.get(ctx, "/api/v1/session", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RefreshSession asks the server to log its session in again.
func (c *Client) RefreshSession(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.post(ctx, "/api/v1/session/refresh", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListTokens returns the account's access tokens.
func (c *Client) ListTokens(ctx context.Context) ([]Token, error) {
	var resp struct {
		Tokens []Token `json:"tokens"`
	}
	if err := c.get(ctx, "/api/v1/tokens", &resp); err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

// CreateToken creates a new access token and returns its full value.
func (c *Client) CreateToken(ctx context.Context) (*Token, error) {
	var t Token
	if err := c.post(ctx, "/api/v1/tokens", nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetQuota returns the Wialon API quota status.
func (c *Client) GetQuota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.get(ctx, "/api/v1/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}
