// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

// Session modes.
const (
	// SessionModeShared keeps one long-lived session refreshed on a schedule.
	SessionModeShared = "shared"
	// SessionModePerRequest opens a fresh session for every search.
	SessionModePerRequest = "per_request"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Wialon        WialonConfig        `yaml:"wialon"`
	Session       SessionConfig       `yaml:"session"`
	Cache         CacheConfig         `yaml:"cache"`
	Validation    ValidationConfig    `yaml:"validation"`
	Database      DatabaseConfig      `yaml:"database"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// WialonConfig defines the remote API settings.
type WialonConfig struct {
	BaseURL     string          `yaml:"base_url"`
	AccessToken string          `yaml:"access_token"`
	AppName     string          `yaml:"app_name"`
	Timeout     time.Duration   `yaml:"timeout"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines client-side pacing of Wialon calls.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"` // 0 disables the cap
}

// SessionConfig defines how sessions are held.
type SessionConfig struct {
	Mode            string        `yaml:"mode"` // shared, per_request
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	AlertAfter      int           `yaml:"alert_after"`
}

// CacheConfig defines the unit availability cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

// ValidationConfig toggles optional field checks.
type ValidationConfig struct {
	IMEIFormatCheck bool `yaml:"imei_format_check"`
}

// DatabaseConfig defines PostgreSQL connection settings. An empty Host
// selects the in-memory store.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// Enabled reports whether a database is configured.
func (d *DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// TelemetryConfig defines OTLP export settings. An empty OTLPEndpoint
// disables export.
type TelemetryConfig struct {
	OTLPEndpoint   string        `yaml:"otlp_endpoint"`
	ServiceName    string        `yaml:"service_name"`
	Insecure       bool          `yaml:"insecure"`
	SampleRatio    float64       `yaml:"sample_ratio"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data, performing environment variable
// substitution and validation.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{
		Cache: CacheConfig{Enabled: true},
	}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyWialonDefaults(&cfg.Wialon)
	applySessionDefaults(&cfg.Session)
	applyCacheDefaults(&cfg.Cache)
	applyDatabaseDefaults(&cfg.Database)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyWialonDefaults(w *WialonConfig) {
	if w.BaseURL == "" {
		w.BaseURL = wialon.DefaultBaseURL
	}
	if w.AppName == "" {
		w.AppName = wialon.DefaultAppName
	}
	if w.Timeout == 0 {
		w.Timeout = 30 * time.Second
	}
	if w.RateLimit.PerSecond == 0 {
		w.RateLimit.PerSecond = 10
	}
	if w.RateLimit.Burst == 0 {
		w.RateLimit.Burst = 20
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.Mode == "" {
		s.Mode = SessionModeShared
	}
	if s.RefreshInterval == 0 {
		s.RefreshInterval = 4 * time.Minute
	}
	if s.AlertAfter == 0 {
		s.AlertAfter = 3
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.Size == 0 {
		c.Size = 1024
	}
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "wialon-registration"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
	if t.MetricInterval == 0 {
		t.MetricInterval = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Wialon.AccessToken == "" {
		errs = append(errs, fmt.Errorf("wialon.access_token is required: %w", wialon.ErrMissingAccessToken))
	}
	if u, err := url.Parse(cfg.Wialon.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("wialon.base_url must be an absolute URL (got %q)", cfg.Wialon.BaseURL))
	}
	if cfg.Wialon.RateLimit.PerSecond < 0 || cfg.Wialon.RateLimit.Burst < 0 || cfg.Wialon.RateLimit.DailyLimit < 0 {
		errs = append(errs, errors.New("wialon.rate_limit values must not be negative"))
	}

	switch cfg.Session.Mode {
	case SessionModeShared, SessionModePerRequest:
	default:
		errs = append(errs, fmt.Errorf(
			"session.mode must be one of: %s, %s (got %q)",
			SessionModeShared, SessionModePerRequest, cfg.Session.Mode,
		))
	}
	if cfg.Session.RefreshInterval < time.Second {
		errs = append(errs, errors.New("session.refresh_interval must be at least 1s"))
	}

	if cfg.Cache.Size < 0 {
		errs = append(errs, errors.New("cache.size must not be negative"))
	}

	if cfg.Database.Enabled() {
		if cfg.Database.Name == "" {
			errs = append(errs, errors.New("database.name is required when database.host is set"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, errors.New("database.user is required when database.host is set"))
		}
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, errors.New("notifications.discord.webhook_url is required when discord is enabled"))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}
