// Package metrics defines Prometheus metrics for wialon-registration.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wreg"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Wialon API metrics.
var (
	WialonRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wialon_requests_total",
		Help:      "Total Wialon API requests by service and outcome.",
	}, []string{"svc", "outcome"})

	WialonRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "wialon_request_duration_seconds",
		Help:      "Duration of Wialon API round trips in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"svc"})

	WialonDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "wialon_daily_usage",
		Help:      "Wialon API calls made within the current rolling 24-hour window.",
	})

	WialonDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wialon_daily_limit_hits_total",
		Help:      "Total number of times the daily Wialon API limit was reached.",
	})
)

// Session metrics.
var (
	SessionLoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_logins_total",
		Help:      "Total token/login exchanges by result (ok, no_eid, error).",
	}, []string{"result"})

	SessionRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_refreshes_total",
		Help:      "Total session refresh attempts by result.",
	}, []string{"result"})

	SessionReady = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_ready",
		Help:      "1 if the shared Wialon session holds a usable session id.",
	})

	SchedulerNextRefreshTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_session_refresh_timestamp",
		Help:      "Unix timestamp of the next scheduled session refresh.",
	})
)

// Availability cache metrics.
var (
	AvailabilityCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_cache_hits_total",
		Help:      "Total availability lookups served from cache.",
	})

	AvailabilityCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_cache_misses_total",
		Help:      "Total availability lookups that queried Wialon.",
	})

	AvailabilityInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_invalidations_total",
		Help:      "Total explicit availability cache invalidations.",
	})
)

// Validation metrics.
var (
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validations_total",
		Help:      "Total registration validations by result (valid, invalid, error).",
	}, []string{"result"})

	ValidationFieldFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_field_failures_total",
		Help:      "Total per-field validation failures.",
	}, []string{"field"})

	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total registration submissions by result (accepted, rejected).",
	}, []string{"result"})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)
