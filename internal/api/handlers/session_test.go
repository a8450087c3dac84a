package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/terminusgps/wialon-registration/internal/api/handlers"
	"github.com/terminusgps/wialon-registration/internal/wialon"
	wialonMocks "github.com/terminusgps/wialon-registration/internal/wialon/mocks"
)

type refresherFunc func(ctx context.Context) error

func (f refresherFunc) RefreshNow(ctx context.Context) error { return f(ctx) }

var loggedIn = wialon.SessionInfo{
	Ready:      true,
	User:       "terminusgps",
	Host:       "10.0.0.1",
	LoggedInAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	Refreshes:  4,
}

func TestSessionHandler_GetSession(t *testing.T) {
	t.Parallel()

	sess := wialonMocks.NewMockSessionController(t)
	sess.EXPECT().Info().Return(loggedIn).Once()

	_, api := humatest.New(t)
	handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(sess, nil))

	resp := api.Get("/api/v1/session")
	require.Equal(t, http.StatusOK, resp.Code)

	var out handlers.SessionStatus
	decode(t, resp.Body.Bytes(), &out)
	assert.True(t, out.Ready)
	assert.Equal(t, "terminusgps", out.User)
	assert.Equal(t, int64(4), out.Refreshes)
	assert.True(t, loggedIn.LoggedInAt.Equal(out.LoggedInAt))
}

func TestSessionStatus_Schema(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(wialonMocks.NewMockSessionController(t), nil))

	schema := api.OpenAPI().Components.Schemas.Map()["SessionStatus"]
	require.NotNil(t, schema)
	require.Contains(t, schema.Properties, "refreshes")
	assert.Equal(t, "Successful refreshes since start", schema.Properties["refreshes"].Description)
}

func TestSessionHandler_NoSharedSession(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(nil, nil))

	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/v1/session").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Post("/api/v1/session/refresh").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/v1/tokens").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Post("/api/v1/tokens").Code)
}

func TestSessionHandler_Refresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		useRefresh bool
		refreshErr error
		wantStatus int
	}{
		{name: "direct refresh", wantStatus: http.StatusOK},
		{name: "through refresher", useRefresh: true, wantStatus: http.StatusOK},
		{
			name:       "rejected token",
			refreshErr: &wialon.APIError{Code: wialon.CodeInvalidLogin, Service: wialon.SvcTokenLogin},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "no session id",
			useRefresh: true,
			refreshErr: wialon.ErrNoSessionID,
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sess := wialonMocks.NewMockSessionController(t)
			if tt.refreshErr == nil {
				sess.EXPECT().Info().Return(loggedIn).Once()
			}

			var refresher handlers.Refresher
			calls := 0
			if tt.useRefresh {
				refresher = refresherFunc(func(context.Context) error {
					calls++
					return tt.refreshErr
				})
			} else {
				sess.EXPECT().Refresh(mock.Anything).Return(tt.refreshErr).Once()
			}

			_, api := humatest.New(t)
			handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(sess, refresher))

			resp := api.Post("/api/v1/session/refresh")
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.useRefresh {
				assert.Equal(t, 1, calls)
			}
		})
	}
}

func TestSessionHandler_ListTokens(t *testing.T) {
	t.Parallel()

	sess := wialonMocks.NewMockSessionController(t)
	sess.EXPECT().ListTokens(mock.Anything).Return([]wialon.Token{
		{Value: "a1b2c3d4e5f6a7b8c9d0", App: "terminusgps", CreatedAt: 1760000000},
		{Value: "short", App: "other", Duration: 3600},
	}, nil).Once()

	_, api := humatest.New(t)
	handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(sess, nil))

	resp := api.Get("/api/v1/tokens")
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Tokens []handlers.TokenView `json:"tokens"`
	}
	decode(t, resp.Body.Bytes(), &out)
	require.Len(t, out.Tokens, 2)
	assert.Equal(t, "a1b2c3d4********", out.Tokens[0].Value)
	assert.Equal(t, time.Unix(1760000000, 0).UTC(), out.Tokens[0].CreatedAt.UTC())
	assert.Equal(t, "********", out.Tokens[1].Value)
	assert.Equal(t, int64(3600), out.Tokens[1].Duration)
	assert.NotContains(t, resp.Body.String(), "a1b2c3d4e5f6")
}

func TestSessionHandler_CreateToken(t *testing.T) {
	t.Parallel()

	t.Run("returns full value", func(t *testing.T) {
		t.Parallel()

		sess := wialonMocks.NewMockSessionController(t)
		sess.EXPECT().CreateToken(mock.Anything).
			Return(&wialon.Token{Value: "a1b2c3d4e5f6a7b8c9d0", App: "terminusgps", Flags: -1}, nil).Once()

		_, api := humatest.New(t)
		handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(sess, nil))

		resp := api.Post("/api/v1/tokens")
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		var out handlers.TokenView
		decode(t, resp.Body.Bytes(), &out)
		assert.Equal(t, "a1b2c3d4e5f6a7b8c9d0", out.Value)
		assert.Equal(t, int64(-1), out.Flags)
	})

	t.Run("not logged in", func(t *testing.T) {
		t.Parallel()

		sess := wialonMocks.NewMockSessionController(t)
		sess.EXPECT().CreateToken(mock.Anything).Return(nil, wialon.ErrNotLoggedIn).Once()

		_, api := humatest.New(t)
		handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(sess, nil))

		resp := api.Post("/api/v1/tokens")
		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})

	t.Run("remote failure", func(t *testing.T) {
		t.Parallel()

		sess := wialonMocks.NewMockSessionController(t)
		sess.EXPECT().CreateToken(mock.Anything).Return(nil, errors.Join(wialon.ErrRemoteUnavailable, assert.AnError)).Once()

		_, api := humatest.New(t)
		handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(sess, nil))

		resp := api.Post("/api/v1/tokens")
		assert.Equal(t, http.StatusBadGateway, resp.Code)
	})
}
