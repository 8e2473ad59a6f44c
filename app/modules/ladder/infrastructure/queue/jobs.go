package ladderqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"
)

// QueueLadder is the dedicated River queue for ladder maintenance jobs.
const QueueLadder = "ladder"

// ExpireChallengesJob sweeps pending challenges whose expiry has passed.
type ExpireChallengesJob struct{}

// Kind returns the job type identifier for River
func (ExpireChallengesJob) Kind() string { return "ladder_expire_challenges" }

// InsertOpts keeps at most one sweep queued per period.
func (ExpireChallengesJob) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:      QueueLadder,
		UniqueOpts: river.UniqueOpts{ByPeriod: time.Minute},
	}
}

// Expirer is the slice of the ladder service the sweep needs.
type Expirer interface {
	ExpireOverdueChallenges(ctx context.Context, asOf time.Time) (int, error)
}

type ExpireChallengesWorker struct {
	river.WorkerDefaults[ExpireChallengesJob]
	service Expirer
	clock   ladderutil.Clock
	logger  *slog.Logger
}

func NewExpireChallengesWorker(logger *slog.Logger, service Expirer, clock ladderutil.Clock) *ExpireChallengesWorker {
	return &ExpireChallengesWorker{service: service, clock: clock, logger: logger}
}

func (w *ExpireChallengesWorker) Work(ctx context.Context, _ *river.Job[ExpireChallengesJob]) error {
	asOf := w.clock.Now()
	n, err := w.service.ExpireOverdueChallenges(ctx, asOf)
	if err != nil {
		w.logger.ErrorContext(ctx, "Challenge expiry sweep failed", attr.Time("as_of", asOf), attr.Error(err))
		return fmt.Errorf("expire overdue challenges: %w", err)
	}

	w.logger.DebugContext(ctx, "Challenge expiry sweep finished", attr.Time("as_of", asOf), attr.Int("expired", n))
	return nil
}

// Timeout bounds one sweep; a sweep that cannot finish in a minute is retried.
func (w *ExpireChallengesWorker) Timeout(*river.Job[ExpireChallengesJob]) time.Duration {
	return time.Minute
}

// ParseSchedule turns a five-field cron expression into a River schedule.
func ParseSchedule(expr string) (river.PeriodicSchedule, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return schedule, nil
}
