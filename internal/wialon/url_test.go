package wialon_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		svc        string
		params     any
		sid        string
		wantParams string
		wantSID    string
		contains   []string
	}{
		{
			name:       "login without sid",
			svc:        "token/login",
			params:     map[string]any{"token": "abc", "fl": 1},
			wantParams: `{"fl":1,"token":"abc"}`,
			contains:   []string{"svc=token%2Flogin", "params=%7B"},
		},
		{
			name:     "no params and no sid",
			svc:      "token/list",
			contains: []string{"svc=token%2Flist"},
		},
		{
			name:       "params and sid",
			svc:        "core/search_items",
			params:     map[string]any{"force": 1},
			sid:        "eid-123",
			wantParams: `{"force":1}`,
			wantSID:    "eid-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := wialon.BuildURL(wialon.DefaultBaseURL, tt.svc, tt.params, tt.sid)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(got, wialon.DefaultBaseURL+"?"))

			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}

			u, err := url.Parse(got)
			require.NoError(t, err)
			q := u.Query()

			assert.Equal(t, tt.svc, q.Get("svc"))

			if tt.wantParams == "" {
				assert.False(t, q.Has("params"))
			} else {
				assert.JSONEq(t, tt.wantParams, q.Get("params"))
			}

			if tt.wantSID == "" {
				assert.False(t, q.Has("sid"))
			} else {
				assert.Equal(t, tt.wantSID, q.Get("sid"))
			}
		})
	}
}

func TestBuildURL_UnencodableParams(t *testing.T) {
	t.Parallel()

	_, err := wialon.BuildURL(wialon.DefaultBaseURL, "token/login", map[string]any{"bad": make(chan int)}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding params for token/login")
}
