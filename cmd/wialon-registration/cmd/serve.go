package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/terminusgps/wialon-registration/internal/api/handlers"
	mw "github.com/terminusgps/wialon-registration/internal/api/middleware"
	"github.com/terminusgps/wialon-registration/internal/config"
	"github.com/terminusgps/wialon-registration/internal/metrics"
	"github.com/terminusgps/wialon-registration/internal/notify"
	"github.com/terminusgps/wialon-registration/internal/registrar"
	"github.com/terminusgps/wialon-registration/internal/scheduler"
	"github.com/terminusgps/wialon-registration/internal/store"
	"github.com/terminusgps/wialon-registration/internal/telemetry"
	"github.com/terminusgps/wialon-registration/internal/validate"
	"github.com/terminusgps/wialon-registration/internal/wialon"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and session scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: Version,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRatio:    cfg.Telemetry.SampleRatio,
		MetricInterval: cfg.Telemetry.MetricInterval,
	}, log)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	shared := cfg.Session.Mode == config.SessionModeShared
	deps, err := newWialon(cfg, log, shared)
	if err != nil {
		return err
	}
	defer deps.close()

	if shared {
		if err := deps.session.Login(ctx); err != nil {
			// Keep serving; readiness stays down until a refresh succeeds.
			log.Error("initial wialon login failed", "error", err)
			metrics.SessionReady.Set(0)
		} else {
			metrics.SessionReady.Set(1)
		}
	}

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier := newNotifier(cfg, log)

	var validatorOpts []validate.Option
	validatorOpts = append(validatorOpts, validate.WithLogger(log))
	if cfg.Validation.IMEIFormatCheck {
		validatorOpts = append(validatorOpts, validate.WithIMEIFormatCheck())
	}
	validator := validate.New(deps.searcher, validatorOpts...)

	reg := registrar.New(st, validator, deps.searcher, notifier, registrar.WithLogger(log))

	var sched *scheduler.Scheduler
	if shared {
		sched, err = scheduler.New(deps.session, cfg.Session.RefreshInterval,
			scheduler.WithLogger(log),
			scheduler.WithNotifier(notifier),
			scheduler.WithAlertEvery(cfg.Session.AlertAfter),
		)
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}
		sched.Start()
		sched.SyncNextRunTimestamp()
		defer func() { <-sched.Stop().Done() }()
	}

	observed, err := telemetry.ObserveWialon(otel.Meter("github.com/terminusgps/wialon-registration"), deps.limiter, deps.cache)
	if err != nil {
		return fmt.Errorf("registering wialon gauges: %w", err)
	}
	defer func() { _ = observed.Unregister() }()

	e := newServer(cfg, log)

	// Typed nils must not reach the handlers' interface checks.
	var (
		sessCtl   wialon.SessionController
		reporter  handlers.SessionReporter
		refresher handlers.Refresher
	)
	if shared {
		sessCtl = deps.session
		reporter = deps.session
		refresher = sched
	}

	health := handlers.NewHealthHandler(st, reporter)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Wialon Registration API", Version))
	handlers.RegisterValidateRoutes(api, handlers.NewValidateHandler(validator))
	handlers.RegisterRegistrationRoutes(api, handlers.NewRegistrationsHandler(reg))
	handlers.RegisterUnitRoutes(api, handlers.NewUnitsHandler(deps.searcher))
	handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(sessCtl, refresher))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(deps.limiter))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server",
		"addr", addr,
		"session_mode", cfg.Session.Mode,
		"database", cfg.Database.Enabled(),
		"cache", cfg.Cache.Enabled,
	)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func newServer(cfg *config.Config, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(mw.RequestLog(log))
	e.Use(mw.Recovery(log))
	e.Use(mw.Tracing())
	e.Use(mw.Metrics())
	return e
}

// openStore connects to PostgreSQL and applies migrations, or falls back to
// the in-memory store when no database is configured.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, func(), error) {
	if !cfg.Database.Enabled() {
		log.Warn("no database configured, submissions are kept in memory")
		return store.NewMemoryStore(), func() {}, nil
	}

	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}
	log.Info("database ready", "host", cfg.Database.Host, "name", cfg.Database.Name)
	return pg, pg.Close, nil
}

func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Notifications.Discord.Enabled {
		return notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
	}
	return notify.NewNoOpNotifier(log)
}
