package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

// wialonError maps a failure from the remote directory onto an HTTP error.
// Configuration and session problems are 503, an exhausted daily budget
// is 429, and anything the remote side rejected or failed to answer is 502.
func wialonError(op string, err error) error {
	msg := op + ": " + err.Error()

	switch {
	case wialon.IsConfigError(err),
		errors.Is(err, wialon.ErrNotLoggedIn),
		errors.Is(err, wialon.ErrNoSessionID):
		return huma.Error503ServiceUnavailable(msg)
	case errors.Is(err, wialon.ErrDailyLimitReached):
		return huma.Error429TooManyRequests(msg)
	case errors.Is(err, wialon.ErrRemoteUnavailable):
		return huma.Error502BadGateway(msg)
	}

	var apiErr *wialon.APIError
	if errors.As(err, &apiErr) {
		return huma.Error502BadGateway(msg)
	}
	return huma.Error500InternalServerError(msg)
}
