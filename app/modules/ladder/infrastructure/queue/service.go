package ladderqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/Black-And-White-Club/padel-ladder/pkg/metrics/laddermetrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

const queueServiceName = "river"

// Config selects the sweep cadence.
type Config struct {
	DSN        string
	SweepCron  string
	MaxWorkers int
	RunOnStart bool
}

// Service runs the ladder's River client and its periodic jobs.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics laddermetrics.LadderMetrics
}

// NewService creates the River client for ladder maintenance. River needs pgx, so it
// gets its own pool next to the bun connection.
func NewService(ctx context.Context, cfg Config, service Expirer, clock ladderutil.Clock, logger *slog.Logger, metrics laddermetrics.LadderMetrics) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_ladder_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", queueServiceName)

	schedule, err := ParseSchedule(cfg.SweepCron)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", queueServiceName)
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		ctxLogger.Error("Failed to parse DSN for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", queueServiceName)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		ctxLogger.Error("Failed to create pgx pool for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", queueServiceName)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", queueServiceName)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	client, err := newClient(pool, cfg, schedule, service, clock, ctxLogger)
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", queueServiceName)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", queueServiceName)
	metrics.RecordOperationDuration(ctx, "initialize_service", queueServiceName, time.Since(start))

	ctxLogger.Info("Ladder queue service initialized", attr.String("sweep_cron", cfg.SweepCron))
	return &Service{client: client, pool: pool, logger: ctxLogger, metrics: metrics}, nil
}

func newClient(pool *pgxpool.Pool, cfg Config, schedule river.PeriodicSchedule, service Expirer, clock ladderutil.Clock, logger *slog.Logger) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewExpireChallengesWorker(logger, service, clock))

	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 2
	}

	return river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 1},
			QueueLadder:        {MaxWorkers: maxWorkers},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				schedule,
				func() (river.JobArgs, *river.InsertOpts) {
					return ExpireChallengesJob{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: cfg.RunOnStart},
			),
		},
	})
}

func (s *Service) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", queueServiceName)

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", queueServiceName)
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", queueServiceName)
	s.metrics.RecordOperationDuration(ctx, "start_service", queueServiceName, time.Since(start))
	s.logger.Info("Ladder queue service started")
	return nil
}

// Stop waits for running jobs, then closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	defer s.pool.Close()

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", queueServiceName)
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", queueServiceName)
	s.logger.Info("Ladder queue service stopped")
	return nil
}

// TriggerSweep enqueues an immediate expiry sweep.
func (s *Service) TriggerSweep(ctx context.Context) error {
	if _, err := s.client.Insert(ctx, ExpireChallengesJob{}, nil); err != nil {
		return fmt.Errorf("failed to enqueue expiry sweep: %w", err)
	}
	return nil
}

// HealthCheck verifies the River pool can reach the database.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("river pool unhealthy: %w", err)
	}
	return nil
}
