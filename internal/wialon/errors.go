package wialon

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAccessToken is returned when a session is constructed
	// without an access token.
	ErrMissingAccessToken = errors.New("wialon: access token is required")

	// ErrNoSessionID is returned when token/login succeeds at the transport
	// level but the response carries no "eid".
	ErrNoSessionID = errors.New("wialon: login response has no session id")

	// ErrNotLoggedIn is returned by operations that need a session id
	// before one has been obtained.
	ErrNotLoggedIn = errors.New("wialon: session is not logged in")

	// ErrRemoteUnavailable wraps connection failures, unexpected HTTP
	// statuses, and bodies that are not valid JSON.
	ErrRemoteUnavailable = errors.New("wialon: remote unavailable")
)

// Known Wialon error codes.
const (
	CodeInvalidSession  = 1
	CodeInvalidService  = 2
	CodeInvalidResult   = 3
	CodeInvalidInput    = 4
	CodeRequestFailed   = 5
	CodeUnknown         = 6
	CodeAccessDenied    = 7
	CodeInvalidLogin    = 8
	CodeAuthUnavailable = 9
	CodeNoMessages      = 1001
	CodeDuplicateItem   = 1002
	CodeConcurrentLimit = 1003
	CodeSessionExpired  = 1011
)

var codeText = map[int]string{
	CodeInvalidSession:  "invalid session",
	CodeInvalidService:  "invalid service name",
	CodeInvalidResult:   "invalid result",
	CodeInvalidInput:    "invalid input",
	CodeRequestFailed:   "error performing request",
	CodeUnknown:         "unknown error",
	CodeAccessDenied:    "access denied",
	CodeInvalidLogin:    "invalid user name or password",
	CodeAuthUnavailable: "authorization server is unavailable",
	CodeNoMessages:      "no messages for selected interval",
	CodeDuplicateItem:   "item with such unique property already exists",
	CodeConcurrentLimit: "only one request is allowed at the moment",
	CodeSessionExpired:  "ip changed or session expired",
}

// APIError is a structured {"error": N} response from the remote API.
type APIError struct {
	Service string
	Code    int
	Reason  string
}

func (e *APIError) Error() string {
	text, ok := codeText[e.Code]
	if !ok {
		text = "unrecognized error"
	}
	if e.Reason != "" {
		return fmt.Sprintf("wialon %s: error %d (%s): %s", e.Service, e.Code, text, e.Reason)
	}
	return fmt.Sprintf("wialon %s: error %d (%s)", e.Service, e.Code, text)
}

// IsInvalidSession reports whether err is a remote "invalid session" error.
func IsInvalidSession(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.Code == CodeInvalidSession || apiErr.Code == CodeSessionExpired)
}
