package wialon_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

func TestClient_Call(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		wantErrIs   error
		wantAPICode int
		wantErrText string
	}{
		{name: "ok", status: http.StatusOK, body: `{"eid":"x"}`},
		{name: "array body", status: http.StatusOK, body: `[]`},
		{
			name:      "server error",
			status:    http.StatusInternalServerError,
			body:      `{}`,
			wantErrIs: wialon.ErrRemoteUnavailable,
		},
		{
			name:      "malformed json",
			status:    http.StatusOK,
			body:      `{"eid":`,
			wantErrIs: wialon.ErrRemoteUnavailable,
		},
		{
			name:        "invalid session",
			status:      http.StatusOK,
			body:        `{"error":1}`,
			wantAPICode: wialon.CodeInvalidSession,
			wantErrText: "invalid session",
		},
		{
			name:        "unknown code",
			status:      http.StatusOK,
			body:        `{"error":9999}`,
			wantAPICode: 9999,
			wantErrText: "unrecognized error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := wialon.NewClient(wialon.WithBaseURL(srv.URL))

			var dst any
			err := c.Call(context.Background(), "core/search_items", nil, "sid", &dst)

			switch {
			case tt.wantErrIs != nil:
				require.ErrorIs(t, err, tt.wantErrIs)
			case tt.wantAPICode != 0:
				var apiErr *wialon.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantAPICode, apiErr.Code)
				assert.Equal(t, "core/search_items", apiErr.Service)
				assert.Contains(t, err.Error(), tt.wantErrText)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestClient_CallRateLimited(t *testing.T) {
	t.Parallel()

	srv := newFakeWialon(t, func(recordedCall) string { return `{}` })

	rl := wialon.NewRateLimiter(100, 10, 1)
	c := wialon.NewClient(wialon.WithBaseURL(srv.URL), wialon.WithRateLimiter(rl))
	assert.Same(t, rl, c.RateLimiter())

	require.NoError(t, c.Call(context.Background(), "token/list", nil, "sid", nil))

	err := c.Call(context.Background(), "token/list", nil, "sid", nil)
	require.ErrorIs(t, err, wialon.ErrDailyLimitReached)
	assert.Equal(t, 1, srv.total())
}

func TestClient_CallTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := wialon.NewClient(
		wialon.WithBaseURL(srv.URL),
		wialon.WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}),
	)

	err := c.Call(context.Background(), "token/list", nil, "", nil)
	require.ErrorIs(t, err, wialon.ErrRemoteUnavailable)
}

func TestIsInvalidSession(t *testing.T) {
	t.Parallel()

	assert.True(t, wialon.IsInvalidSession(&wialon.APIError{Code: wialon.CodeInvalidSession}))
	assert.True(t, wialon.IsInvalidSession(&wialon.APIError{Code: wialon.CodeSessionExpired}))
	assert.False(t, wialon.IsInvalidSession(&wialon.APIError{Code: wialon.CodeAccessDenied}))
	assert.False(t, wialon.IsInvalidSession(wialon.ErrRemoteUnavailable))
}
