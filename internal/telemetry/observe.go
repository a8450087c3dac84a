package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"

	"github.com/terminusgps/wialon-registration/internal/wialon"
)

// ErrNilMeter is returned by ObserveWialon when no meter is given.
var ErrNilMeter = errors.New("nil meter")

// ObserveWialon registers observable gauges reporting the daily quota of
// limiter and the size of cache. Either source may be nil. The returned
// registration must be unregistered on shutdown.
func ObserveWialon(
	meter metric.Meter,
	limiter *wialon.RateLimiter,
	cache *wialon.AvailabilityCache,
) (metric.Registration, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	used, err := meter.Int64ObservableGauge("wialon.quota.used",
		metric.WithDescription("Wialon calls made in the current daily window."),
	)
	if err != nil {
		return nil, fmt.Errorf("create quota used gauge: %w", err)
	}
	remaining, err := meter.Int64ObservableGauge("wialon.quota.remaining",
		metric.WithDescription("Wialon calls left in the current daily window, 0 when unlimited."),
	)
	if err != nil {
		return nil, fmt.Errorf("create quota remaining gauge: %w", err)
	}
	entries, err := meter.Int64ObservableGauge("wialon.availability_cache.entries",
		metric.WithDescription("Live entries in the unit availability cache."),
	)
	if err != nil {
		return nil, fmt.Errorf("create cache entries gauge: %w", err)
	}

	reg, err := meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		if limiter != nil {
			q := limiter.Quota()
			o.ObserveInt64(used, q.DailyUsed)
			o.ObserveInt64(remaining, q.Remaining)
		}
		if cache != nil {
			o.ObserveInt64(entries, int64(cache.Len()))
		}
		return nil
	}, used, remaining, entries)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	return reg, nil
}
