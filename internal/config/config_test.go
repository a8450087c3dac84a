package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
wialon:
  access_token: abcd1234
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "abcd1234", cfg.Wialon.AccessToken)
				assert.False(t, cfg.Database.Enabled())
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
wialon:
  access_token: abcd1234
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, wialon.DefaultBaseURL, cfg.Wialon.BaseURL)
				assert.Equal(t, wialon.DefaultAppName, cfg.Wialon.AppName)
				assert.Equal(t, 30*time.Second, cfg.Wialon.Timeout)
				assert.InDelta(t, 10.0, cfg.Wialon.RateLimit.PerSecond, 0)
				assert.Equal(t, 20, cfg.Wialon.RateLimit.Burst)
				assert.Zero(t, cfg.Wialon.RateLimit.DailyLimit)
				assert.Equal(t, SessionModeShared, cfg.Session.Mode)
				assert.Equal(t, 4*time.Minute, cfg.Session.RefreshInterval)
				assert.Equal(t, 3, cfg.Session.AlertAfter)
				assert.True(t, cfg.Cache.Enabled)
				assert.Equal(t, 1024, cfg.Cache.Size)
				assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "wialon-registration", cfg.Telemetry.ServiceName)
				assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 0)
				assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
wialon:
  access_token: "${WIALON_HOSTING_API_TOKEN}"
database:
  host: localhost
  name: wreg
  user: wreg
  password: "${TEST_DB_PASSWORD}"
`,
			envVars: map[string]string{
				"WIALON_HOSTING_API_TOKEN": "tok-from-env",
				"TEST_DB_PASSWORD":         "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "tok-from-env", cfg.Wialon.AccessToken)
				assert.Equal(t, "secret123", cfg.Database.Password)
				assert.True(t, cfg.Database.Enabled())
			},
		},
		{
			name: "cache can be disabled",
			yaml: `
wialon:
  access_token: abcd1234
cache:
  enabled: false
  ttl: 1m
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.False(t, cfg.Cache.Enabled)
				assert.Equal(t, time.Minute, cfg.Cache.TTL)
			},
		},
		{
			name: "missing access token",
			yaml: `
wialon:
  app_name: terminusgps
`,
			envVars: map[string]string{"WIALON_HOSTING_API_TOKEN": ""},
			wantErr: "wialon.access_token is required",
		},
		{
			name: "unset env token is missing",
			yaml: `
wialon:
  access_token: "${WIALON_HOSTING_API_TOKEN}"
`,
			envVars: map[string]string{"WIALON_HOSTING_API_TOKEN": ""},
			wantErr: "wialon.access_token is required",
		},
		{
			name: "relative base url",
			yaml: `
wialon:
  access_token: abcd1234
  base_url: /wialon/ajax.html
`,
			wantErr: "wialon.base_url must be an absolute URL",
		},
		{
			name: "unknown session mode",
			yaml: `
wialon:
  access_token: abcd1234
session:
  mode: pooled
`,
			wantErr: `session.mode must be one of: shared, per_request (got "pooled")`,
		},
		{
			name: "database host without name and user",
			yaml: `
wialon:
  access_token: abcd1234
database:
  host: localhost
`,
			wantErr: "database.name is required when database.host is set",
		},
		{
			name: "discord enabled without webhook",
			yaml: `
wialon:
  access_token: abcd1234
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required",
		},
		{
			name: "bad log format",
			yaml: `
wialon:
  access_token: abcd1234
logging:
  format: xml
`,
			wantErr: "logging.format must be one of",
		},
		{
			name:    "invalid yaml",
			yaml:    "wialon: [",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_MissingTokenIsConfigError(t *testing.T) {
	_, err := Parse([]byte("wialon:\n  access_token: \"\"\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, wialon.ErrMissingAccessToken)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		Name:     "wreg",
		User:     "wreg",
		Password: "pw",
		SSLMode:  "require",
	}
	assert.Equal(t,
		"host=db.internal port=5432 dbname=wreg user=wreg password=pw sslmode=require",
		d.DSN(),
	)
}
