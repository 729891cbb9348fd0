// Package main is the entry point for the service. It wires all dependencies
// using samber/do v2, starts the HTTP server and the background jobs, and
// handles graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todolists/internal/adapters/http"
	"github.com/jsamuelsen11/todolists/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todolists/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/todolists/internal/app"
	"github.com/jsamuelsen11/todolists/internal/platform/config"
	"github.com/jsamuelsen11/todolists/internal/platform/health"
	"github.com/jsamuelsen11/todolists/internal/platform/logging"
	"github.com/jsamuelsen11/todolists/internal/platform/scheduler"
	"github.com/jsamuelsen11/todolists/internal/platform/telemetry"
	"github.com/jsamuelsen11/todolists/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const otelShutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr, cfg.Session.CookieName)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	registerHealthCheckers(injector)

	jobs, err := do.Invoke[*scheduler.Scheduler](injector)
	if err != nil {
		return fmt.Errorf("resolving scheduler: %w", err)
	}
	jobs.Start()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCtx.Done():
		// A second signal during shutdown kills the process.
		stop()
		logger.Info("shutting down: signal received")
	case err := <-serverErr:
		stop()
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests, then stop jobs and views.
	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	if err := <-serverErr; err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
	}

	if err := jobs.Shutdown(); err != nil {
		logger.Error("scheduler shutdown error", slog.Any("error", err))
	}

	do.MustInvoke[*app.Views](injector).Close()

	if err := do.MustInvoke[*sessionBackend](injector).Close(); err != nil {
		logger.Error("session store shutdown error", slog.Any("error", err))
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*backend, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return newBackend(cfg, metrics, logger)
	})

	do.Provide(injector, func(_ do.Injector) (*sessionBackend, error) {
		return newSessionBackend(cfg, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.Views, error) {
		b := do.MustInvoke[*backend](i)
		s := do.MustInvoke[*sessionBackend](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		viewCfg := app.ViewConfig{
			RefreshPolicy:    app.RefreshPolicy(cfg.View.RefreshPolicy),
			FetchConcurrency: cfg.View.FetchConcurrency,
			CallbackTimeout:  cfg.View.CallbackTimeout,
			AtomicMove:       cfg.View.AtomicMove,
		}
		base := logging.WithLogger(context.Background(), logger)

		var recorder app.ViewRecorder
		if metrics != nil {
			recorder = metrics
		}
		views := app.NewViews(base, b.store, s.bus, viewCfg, recorder, logger)
		if metrics != nil {
			if err := metrics.ObserveActiveViews(views.Len); err != nil {
				return nil, err
			}
		}
		return views, nil
	})

	do.Provide(injector, func(i do.Injector) (ports.AccountService, error) {
		b := do.MustInvoke[*backend](i)
		s := do.MustInvoke[*sessionBackend](i)
		views := do.MustInvoke[*app.Views](i)
		return app.NewAccountService(b.auth, s.store, s.bus, views, cfg.Session.TTL, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.DefaultCheckTimeout), nil
	})

	do.Provide(injector, func(i do.Injector) (*scheduler.Scheduler, error) {
		views := do.MustInvoke[*app.Views](i)
		s := do.MustInvoke[*sessionBackend](i)

		jobs := []scheduler.Job{
			scheduler.SweepIdleViews(views, cfg.Session.IdleTimeout, cfg.Session.SweepInterval, logger),
		}
		if s.purger != nil {
			jobs = append(jobs, scheduler.PurgeSessions(s.purger, cfg.Session.SweepInterval, logger))
		}
		return scheduler.New(logger, jobs...)
	})

	do.Provide(injector, func(i do.Injector) (adapthttp.Handlers, error) {
		accounts := do.MustInvoke[ports.AccountService](i)
		views := do.MustInvoke[*app.Views](i)
		registry := do.MustInvoke[ports.HealthRegistry](i)

		cookie := handlers.SessionCookie{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		}
		return adapthttp.Handlers{
			Accounts: handlers.NewAccountHandler(accounts, cookie),
			Lists:    handlers.NewListHandler(views),
			Drag:     handlers.NewDragHandler(views),
			Health:   handlers.NewHealthHandler(registry, views.Len),
		}, nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		h := do.MustInvoke[adapthttp.Handlers](i)
		accounts := do.MustInvoke[ports.AccountService](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(h,
			middleware.Session(accounts, cfg.Session.CookieName),
			middleware.AppContext(),
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.RequestTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// registerHealthCheckers adds the backend and session store to the
// readiness registry once the graph is wired.
func registerHealthCheckers(injector do.Injector) {
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	for _, c := range do.MustInvoke[*backend](injector).checkers {
		registry.Register(c)
	}
	registry.Register(do.MustInvoke[*sessionBackend](injector).checker)
}
