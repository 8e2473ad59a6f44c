package ladder

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	ladderservice "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/application"
	ladderhandlers "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/handlers"
	ladderhttp "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/http"
	ladderpublisher "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/publisher"
	ladderqueue "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/queue"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	ladderrouter "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/router"
	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/Black-And-White-Club/padel-ladder/config"
	"github.com/Black-And-White-Club/padel-ladder/pkg/eventbus"
	"github.com/Black-And-White-Club/padel-ladder/pkg/jwt"
	"github.com/Black-And-White-Club/padel-ladder/pkg/metrics/laddermetrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const queueStopTimeout = 30 * time.Second

// Dependencies are the shared resources the ladder module is built from.
type Dependencies struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  laddermetrics.LadderMetrics
	Registry *prometheus.Registry
	DB       *bun.DB
	EventBus eventbus.EventBus
	Router   *message.Router
	Clock    ladderutil.Clock
}

// SweepQueue runs the scheduled challenge expiry sweep.
type SweepQueue interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}

// Module represents the ladder module.
type Module struct {
	Service      ladderservice.Service
	LadderRouter *ladderrouter.LadderRouter
	Queue        SweepQueue
	HTTPHandler  http.Handler

	logger    *slog.Logger
	done      chan struct{}
	closeOnce sync.Once
}

// NewLadderModule wires the service to its repository, the event bus, the REST API
// and the River expiry sweep.
func NewLadderModule(ctx context.Context, cfg *config.Config, deps Dependencies) (*Module, error) {
	logger := deps.Logger
	clock := deps.Clock
	if clock == nil {
		clock = ladderutil.RealClock{}
	}

	logger.InfoContext(ctx, "ladder.NewLadderModule called")

	publisher := ladderpublisher.NewEventPublisher(deps.EventBus, logger)
	service := ladderservice.NewLadderService(
		ladderdb.NewRepository(),
		logger,
		deps.Metrics,
		deps.Tracer,
		deps.DB,
		publisher,
		publisher,
		clock,
		ladderservice.Options{
			ChallengeExpiry:     cfg.Ladder.ChallengeExpiry,
			ConflictRetries:     cfg.Ladder.ConflictRetries,
			NotificationTimeout: cfg.Ladder.NotificationTimeout,
		},
	)

	ladderRouter := ladderrouter.NewLadderRouter(logger, deps.Router, deps.EventBus, deps.EventBus, deps.Tracer, deps.Registry)
	if err := ladderRouter.Configure(ctx, ladderhandlers.NewLadderHandlers(service, logger, deps.Tracer)); err != nil {
		return nil, fmt.Errorf("failed to configure ladder router: %w", err)
	}

	queue, err := ladderqueue.NewService(ctx, ladderqueue.Config{
		DSN:        cfg.Postgres.DSN,
		SweepCron:  cfg.Ladder.ExpirySweepCron,
		RunOnStart: true,
	}, service, clock, logger, deps.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create ladder queue service: %w", err)
	}

	httpHandlers := ladderhttp.NewLadderHTTPHandlers(service, ladderutil.NewFreezeUntilParser(), clock, logger)
	api := ladderhttp.Routes(httpHandlers, jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer), ladderhttp.RouteConfig{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	})

	return &Module{
		Service:      service,
		LadderRouter: ladderRouter,
		Queue:        queue,
		HTTPHandler:  api,
		logger:       logger,
		done:         make(chan struct{}),
	}, nil
}

// Run starts the expiry sweep and blocks until ctx is cancelled or the module
// is closed. A sweep that cannot start is returned as an error.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) error {
	if wg != nil {
		defer wg.Done()
	}

	m.logger.InfoContext(ctx, "Starting ladder module")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := m.Queue.Start(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Ladder queue failed to start", "error", err)
		return fmt.Errorf("failed to start ladder queue: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-m.done:
	}

	stopCtx, stopCancel := context.WithTimeout(context.WithoutCancel(ctx), queueStopTimeout)
	defer stopCancel()
	if err := m.Queue.Stop(stopCtx); err != nil {
		m.logger.Error("Error stopping ladder queue", "error", err)
	}
	m.logger.Info("Ladder module goroutine stopped")
	return nil
}

// Close stops the ladder module and cleans up resources. It is safe to call
// while Run is blocked and more than once.
func (m *Module) Close() error {
	m.logger.Info("Stopping ladder module")

	m.closeOnce.Do(func() {
		if m.done != nil {
			close(m.done)
		}
	})

	if m.LadderRouter != nil {
		if err := m.LadderRouter.Close(); err != nil {
			m.logger.Error("Error closing LadderRouter from module", "error", err)
			return fmt.Errorf("error closing LadderRouter: %w", err)
		}
	}

	m.logger.Info("Ladder module stopped")
	return nil
}
