package wialon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/terminusgps/wialon-registration/internal/metrics"
)

const instrumentationName = "github.com/terminusgps/wialon-registration/internal/wialon"

// Client performs request/response round trips against the Wialon AJAX
// endpoint. It is safe for concurrent use.
type Client struct {
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
	log         *slog.Logger

	tracer   trace.Tracer
	duration metric.Float64Histogram
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the default Wialon endpoint.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter. When set, every Call goes
// through Wait() first.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a new Wialon API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log:    slog.Default(),
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(c)
	}

	h, err := otel.Meter(instrumentationName).Float64Histogram(
		"wialon.client.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of Wialon API round trips."),
	)
	if err != nil {
		c.log.Warn("creating wialon duration instrument", "error", err)
		h = noop.Float64Histogram{}
	}
	c.duration = h

	return c
}

// RateLimiter returns the configured rate limiter, or nil.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// Call issues svc with params (JSON-encoded, omitted when nil) and sid
// (omitted when empty), and decodes the response body into dst.
//
// Transport failures, non-200 statuses, and malformed JSON are reported as
// ErrRemoteUnavailable. Remote {"error": N} bodies are reported as *APIError.
func (c *Client) Call(ctx context.Context, svc string, params any, sid string, dst any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.WialonDailyLimitHits.Inc()
			}
			metrics.WialonRequestsTotal.WithLabelValues(svc, "rate_limited").Inc()
			return fmt.Errorf("rate limit: %w", err)
		}
		metrics.WialonDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	ctx, span := c.tracer.Start(ctx, "wialon "+svc,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("wialon.svc", svc)),
	)
	defer span.End()

	start := time.Now()
	err := c.do(ctx, svc, params, sid, dst)
	elapsed := time.Since(start).Seconds()

	outcome := outcomeOf(err)
	metrics.WialonRequestDuration.WithLabelValues(svc).Observe(elapsed)
	metrics.WialonRequestsTotal.WithLabelValues(svc, outcome).Inc()
	c.duration.Record(ctx, elapsed, metric.WithAttributes(
		attribute.String("wialon.svc", svc),
		attribute.String("outcome", outcome),
	))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}

	return err
}

func (c *Client) do(ctx context.Context, svc string, params any, sid string, dst any) error {
	u, err := BuildURL(c.baseURL, svc, params, sid)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", svc, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.log.Debug("wialon request", "svc", svc, "has_sid", sid != "")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing %s request: %w: %w", svc, ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w: %w", svc, ErrRemoteUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(
			"%s returned status %d: %w",
			svc,
			resp.StatusCode,
			ErrRemoteUnavailable,
		)
	}

	if !json.Valid(body) {
		return fmt.Errorf("%s returned malformed JSON: %w", svc, ErrRemoteUnavailable)
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		var errResp errorResponse
		if err := json.Unmarshal(trimmed, &errResp); err == nil &&
			errResp.Error != nil && *errResp.Error != 0 {
			return &APIError{Service: svc, Code: *errResp.Error, Reason: errResp.Reason}
		}
	}

	if dst == nil {
		return nil
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding %s response: %w: %w", svc, ErrRemoteUnavailable, err)
	}

	return nil
}

func outcomeOf(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &apiErr):
		return "api_error"
	case errors.Is(err, ErrRemoteUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
