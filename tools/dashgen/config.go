package main

import "errors"

// KnownMetrics is the set of metric names exported by wialon-registration
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"wreg_http_request_duration_seconds": true,
	"wreg_http_requests_total":           true,

	// Health metrics.
	"wreg_healthz_up": true,
	"wreg_readyz_up":  true,

	// Wialon API metrics.
	"wreg_wialon_requests_total":           true,
	"wreg_wialon_request_duration_seconds": true,
	"wreg_wialon_daily_usage":              true,
	"wreg_wialon_daily_limit_hits_total":   true,

	// Session metrics.
	"wreg_session_logins_total":                     true,
	"wreg_session_refreshes_total":                  true,
	"wreg_session_ready":                            true,
	"wreg_scheduler_next_session_refresh_timestamp": true,

	// Availability cache metrics.
	"wreg_availability_cache_hits_total":    true,
	"wreg_availability_cache_misses_total":  true,
	"wreg_availability_invalidations_total": true,

	// Registration metrics.
	"wreg_validations_total":               true,
	"wreg_validation_field_failures_total": true,
	"wreg_registrations_total":             true,
	"wreg_notification_failures_total":     true,

	// Recording rules.
	"wreg:http_requests:rate5m":                true,
	"wreg:http_errors:rate5m":                  true,
	"wreg:wialon_requests:rate5m":              true,
	"wreg:registrations:increase1h":            true,
	"wreg:availability_cache_hit_ratio:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
