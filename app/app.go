package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/Black-And-White-Club/padel-ladder/app/modules/ladder"
	"github.com/Black-And-White-Club/padel-ladder/config"
	"github.com/Black-And-White-Club/padel-ladder/pkg/eventbus"
	"github.com/Black-And-White-Club/padel-ladder/pkg/metrics/laddermetrics"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName     = "padel-ladder"
	shutdownTimeout = 15 * time.Second
)

// App holds the process-wide resources and the ladder module.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bun.DB
	EventBus eventbus.EventBus
	Router   *message.Router
	Registry *prometheus.Registry

	LadderModule *ladder.Module
}

// NewApp connects to Postgres and the broker and builds the ladder module.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := NewLogger(cfg, os.Stdout)
	logger.InfoContext(ctx, "Initializing application", "environment", cfg.Observability.Environment)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics, err := laddermetrics.NewPrometheus(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register ladder metrics: %w", err)
	}

	db := bun.NewDB(sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN))), pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	bus, err := newEventBus(ctx, cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: shutdownTimeout}, watermill.NewSlogLogger(logger))
	if err != nil {
		bus.Close()
		db.Close()
		return nil, fmt.Errorf("failed to create message router: %w", err)
	}

	module, err := ladder.NewLadderModule(ctx, cfg, ladder.Dependencies{
		Logger:   logger,
		Tracer:   otel.Tracer(serviceName),
		Metrics:  metrics,
		Registry: registry,
		DB:       db,
		EventBus: bus,
		Router:   router,
	})
	if err != nil {
		bus.Close()
		db.Close()
		return nil, fmt.Errorf("failed to initialize ladder module: %w", err)
	}

	return &App{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		EventBus:     bus,
		Router:       router,
		Registry:     registry,
		LadderModule: module,
	}, nil
}

// NewLogger builds the process logger: JSON in production, text elsewhere.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", serviceName)
}

func newEventBus(ctx context.Context, cfg *config.Config, logger *slog.Logger) (eventbus.EventBus, error) {
	if cfg.NATS.URL == "" {
		logger.WarnContext(ctx, "NATS_URL not set, using in-memory event bus")
		return eventbus.NewInMemoryEventBus(logger), nil
	}

	bus, err := eventbus.NewEventBus(ctx, eventbus.Config{
		URL:        cfg.NATS.URL,
		NKeySeed:   cfg.NATS.NKeySeed,
		QueueGroup: cfg.NATS.QueueGroup,
		AckWait:    cfg.NATS.AckWait,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	return bus, nil
}

// HTTPHandler mounts the ladder API next to the health check.
func (a *App) HTTPHandler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.PingContext(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := a.LadderModule.Queue.HealthCheck(ctx); err != nil {
			http.Error(w, "queue unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Mount("/api/ladder", a.LadderModule.HTTPHandler)
	return r
}

// Run serves HTTP, metrics, the message router and the ladder module until ctx
// is cancelled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	api := &http.Server{Addr: a.Config.HTTP.Addr, Handler: a.HTTPHandler(), ReadHeaderTimeout: 10 * time.Second}
	servers := []*http.Server{api}
	if addr := a.Config.Observability.MetricsAddress; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry}))
		servers = append(servers, &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second})
	}

	for _, srv := range servers {
		g.Go(func() error {
			a.Logger.InfoContext(ctx, "HTTP server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := a.Router.Run(ctx); err != nil {
			return fmt.Errorf("message router: %w", err)
		}
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	g.Go(func() error {
		if err := a.LadderModule.Run(ctx, &wg); err != nil {
			return fmt.Errorf("ladder module: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("Shutting down HTTP servers")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		wg.Wait()
		return errors.Join(errs...)
	})

	return g.Wait()
}

// Close releases every resource NewApp acquired.
func (a *App) Close() error {
	var errs []error
	if a.LadderModule != nil {
		errs = append(errs, a.LadderModule.Close())
	}
	if a.EventBus != nil {
		errs = append(errs, a.EventBus.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
