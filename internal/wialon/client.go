// Package wialon provides a thin client for the Wialon hosting HTTP API:
// session login, token management, and unit search. Consumers depend on
// the small interfaces below so they can be mocked in tests.
package wialon

import (
	"context"
)

// DefaultBaseURL is the Wialon hosting AJAX endpoint.
const DefaultBaseURL = "https://hst-api.wialon.com/wialon/ajax.html"

// Service names consumed from the remote API.
const (
	SvcTokenLogin  = "token/login"
	SvcTokenUpdate = "token/update"
	SvcTokenList   = "token/list"
	SvcSearchItems = "core/search_items"
)

// UnitFinder resolves an IMEI to a remote unit id.
type UnitFinder interface {
	FindByIMEI(ctx context.Context, imei string) (int64, bool, error)
}

// UnitSearcher is the full unit lookup surface used by the API layer.
type UnitSearcher interface {
	UnitFinder
	UnitIsAvailable(ctx context.Context, imei string) (bool, error)
	InvalidateAvailability(imei string)
}

// TokenManager exposes session-scoped token operations.
type TokenManager interface {
	CreateToken(ctx context.Context) (*Token, error)
	ListTokens(ctx context.Context) ([]Token, error)
}

// SessionController exposes the lifecycle of a long-lived session.
type SessionController interface {
	TokenManager
	Refresh(ctx context.Context) error
	Info() SessionInfo
}
