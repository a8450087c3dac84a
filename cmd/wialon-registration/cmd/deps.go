package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/terminusgps/wialon-registration/internal/config"
	"github.com/terminusgps/wialon-registration/internal/wialon"
	"github.com/terminusgps/wialon-registration/pkg/logger"
)

// loadConfig reads the config file and builds the logger it describes. The
// logger becomes the slog default.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}

// wialonDeps holds the remote directory plumbing shared by the commands.
type wialonDeps struct {
	limiter  *wialon.RateLimiter
	client   *wialon.Client
	cache    *wialon.AvailabilityCache
	session  *wialon.Session // nil in per_request mode
	searcher *wialon.Searcher
}

// newWialon builds the rate-limited client, the availability cache, and a
// searcher. In shared mode it also builds the long-lived session, which the
// caller must log in.
func newWialon(cfg *config.Config, log *slog.Logger, shared bool) (*wialonDeps, error) {
	d := &wialonDeps{
		limiter: wialon.NewRateLimiter(
			cfg.Wialon.RateLimit.PerSecond,
			cfg.Wialon.RateLimit.Burst,
			cfg.Wialon.RateLimit.DailyLimit,
		),
	}

	d.client = wialon.NewClient(
		wialon.WithBaseURL(cfg.Wialon.BaseURL),
		wialon.WithHTTPClient(&http.Client{
			Timeout:   cfg.Wialon.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}),
		wialon.WithRateLimiter(d.limiter),
		wialon.WithLogger(log),
	)

	sessionOpts := []wialon.SessionOption{
		wialon.WithClient(d.client),
		wialon.WithAppName(cfg.Wialon.AppName),
		wialon.WithSessionLogger(log),
	}

	searcherOpts := []wialon.SearcherOption{
		wialon.WithSearcherLogger(log),
	}

	if cfg.Cache.Enabled {
		d.cache = wialon.NewAvailabilityCache(cfg.Cache.Size, cfg.Cache.TTL)
		searcherOpts = append(searcherOpts, wialon.WithAvailabilityCache(d.cache))
	}

	if shared {
		sess, err := wialon.NewSession(cfg.Wialon.AccessToken, sessionOpts...)
		if err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
		d.session = sess
		searcherOpts = append(searcherOpts, wialon.WithSharedSession(sess))
	} else {
		searcherOpts = append(searcherOpts, wialon.WithSessionOptions(sessionOpts...))
	}

	d.searcher = wialon.NewSearcher(cfg.Wialon.AccessToken, searcherOpts...)
	return d, nil
}

// openWialon builds the plumbing with a shared session and logs it in. It
// is used by one-shot commands.
func openWialon(ctx context.Context, cfg *config.Config, log *slog.Logger) (*wialonDeps, error) {
	d, err := newWialon(cfg, log, true)
	if err != nil {
		return nil, err
	}
	if err := d.session.Login(ctx); err != nil {
		return nil, fmt.Errorf("logging in to wialon: %w", err)
	}
	return d, nil
}

// close drops the local session id.
func (d *wialonDeps) close() {
	if d.session != nil {
		d.session.Close()
	}
}
