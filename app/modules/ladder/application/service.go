package ladderservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/Black-And-White-Club/padel-ladder/pkg/metrics/laddermetrics"
	"github.com/Black-And-White-Club/padel-ladder/pkg/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "LadderService"

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks Notifier,RankingPublisher

// Notifier dispatches fire-and-forget notification requests.
type Notifier interface {
	Notify(ctx context.Context, payload ladderevents.NotificationRequestedPayloadV1) error
}

// RankingPublisher announces committed ranking changes.
type RankingPublisher interface {
	PublishRankingChanged(ctx context.Context, payload ladderevents.RankingChangedPayloadV1) error
}

// Options tunes the engine. Zero values fall back to the defaults.
type Options struct {
	ChallengeExpiry     time.Duration
	ConflictRetries     int
	NotificationTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.ChallengeExpiry <= 0 {
		o.ChallengeExpiry = ladderdomain.DefaultChallengeExpiry
	}
	if o.ConflictRetries < 0 {
		o.ConflictRetries = 0
	}
	if o.NotificationTimeout <= 0 {
		o.NotificationTimeout = 5 * time.Second
	}
	return o
}

// LadderService implements the Service interface.
type LadderService struct {
	repo      ladderdb.Repository
	rankings  *RankingStore
	audit     *AuditLogger
	logger    *slog.Logger
	metrics   laddermetrics.LadderMetrics
	tracer    trace.Tracer
	db        *bun.DB
	notifier  Notifier
	publisher RankingPublisher
	clock     ladderutil.Clock
	opts      Options
}

// NewLadderService creates a new LadderService.
func NewLadderService(
	repo ladderdb.Repository,
	logger *slog.Logger,
	metrics laddermetrics.LadderMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	notifier Notifier,
	publisher RankingPublisher,
	clock ladderutil.Clock,
	opts Options,
) *LadderService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = ladderutil.RealClock{}
	}
	return &LadderService{
		repo:      repo,
		rankings:  NewRankingStore(repo),
		audit:     NewAuditLogger(repo, clock),
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		notifier:  notifier,
		publisher: publisher,
		clock:     clock,
		opts:      opts.withDefaults(),
	}
}

var _ Service = (*LadderService)(nil)

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// txFunc is the transactional body of an operation. Side effects that must only
// happen after commit are queued on fx.
type txFunc[S any] func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[S, error], error)

// errRollback aborts the transaction when the body returns a domain failure.
var errRollback = errors.New("rollback: operation returned failure")

// execute runs fn in a transaction wrapped with telemetry, then dispatches the queued
// effects once the commit succeeded. Domain failures come back as the returned error.
func execute[S any](s *LadderService, ctx context.Context, operationName, identifier string, fn txFunc[S]) (S, error) {
	var fx *effects
	result, err := withTelemetry(s, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		res, committed, err := runInTx(s, ctx, operationName, fn)
		fx = committed
		return res, err
	})

	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if !result.IsSuccess() {
		return zero, fmt.Errorf("%s: operation returned no result", operationName)
	}

	s.dispatch(ctx, fx)
	return *result.Success, nil
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *LadderService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	// Start span
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx runs fn in a transaction and retries it with fresh state when Postgres
// reports a rank conflict. Once retries are exhausted the conflict becomes a
// ConstraintConflict failure.
func runInTx[S any](
	s *LadderService,
	ctx context.Context,
	operationName string,
	fn txFunc[S],
) (results.OperationResult[S, error], *effects, error) {
	for attempt := 0; ; attempt++ {
		fx := &effects{}
		result, err := runOnce(s, ctx, fn, fx)

		conflict := err != nil && ladderdb.IsRetryable(err)
		if !conflict && result.IsFailure() && errors.Is(*result.Failure, ladderdomain.ErrConstraintConflict) {
			conflict = true
			err = *result.Failure
		}
		if !conflict {
			return result, fx, err
		}

		if attempt >= s.opts.ConflictRetries {
			return results.FailureResult[S, error](ladderdomain.ConstraintConflict(err)), nil, nil
		}

		if s.metrics != nil {
			s.metrics.RecordConflictRetry(ctx, operationName)
		}
		s.logger.WarnContext(ctx, "Retrying after rank conflict",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Int("attempt", attempt+1),
			attr.Error(err),
		)
	}
}

func runOnce[S any](s *LadderService, ctx context.Context, fn txFunc[S], fx *effects) (results.OperationResult[S, error], error) {
	if s.db == nil {
		return fn(ctx, nil, fx)
	}

	var result results.OperationResult[S, error]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx, fx)
		if txErr != nil {
			return txErr
		}
		if result.IsFailure() {
			return errRollback
		}
		return nil
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}
	return result, err
}

// fail turns a domain error into a failure result and wraps anything else as an
// infrastructure error.
func fail[S any](err error, op string) (results.OperationResult[S, error], error) {
	var de *ladderdomain.Error
	if errors.As(err, &de) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, fmt.Errorf("%s: %w", op, err)
}

func ok[S any](s S) (results.OperationResult[S, error], error) {
	return results.SuccessResult[S, error](s), nil
}

func requireAdmin(actor ladderdomain.Actor, action string) error {
	if !actor.IsAdmin {
		return ladderdomain.Unauthorized("%s requires an admin", action)
	}
	return nil
}

// requireMember passes for admins and for players of any of teams.
func requireMember(actor ladderdomain.Actor, action string, teams ...ladderdomain.Team) error {
	if actor.IsAdmin {
		return nil
	}
	for _, t := range teams {
		if t.HasMember(actor.ID) {
			return nil
		}
	}
	return ladderdomain.Unauthorized("%s requires a member of the team", action)
}

// actingForOthers reports whether an admin acts on behalf of a team they do not play for.
func actingForOthers(actor ladderdomain.Actor, team ladderdomain.Team) bool {
	return actor.IsAdmin && !team.HasMember(actor.ID)
}
