package ladderservice

import (
	"context"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
)

// effects collects what an operation announces once its transaction committed.
// A retried attempt starts from a fresh set, so nothing leaks from a rolled back try.
type effects struct {
	rankingChanges []ladderevents.RankingChangedPayloadV1
	notifications  []ladderevents.NotificationRequestedPayloadV1
}

func (fx *effects) rankingChanged(at time.Time, categoryID string, cause ladderevents.RankingChangeCause, rankings ...ladderdomain.Ranking) {
	teams := make([]ladderevents.TeamStandingV1, 0, len(rankings))
	for _, r := range rankings {
		teams = append(teams, ladderevents.TeamStandingV1{
			TeamID: r.TeamID.String(),
			Rank:   r.Rank,
			Points: r.Points,
			Wins:   r.Wins,
			Losses: r.Losses,
			Streak: r.Streak,
		})
	}
	fx.rankingChanges = append(fx.rankingChanges, ladderevents.RankingChangedPayloadV1{
		CategoryID: categoryID,
		Cause:      cause,
		Teams:      teams,
		OccurredAt: at.UTC(),
	})
}

func (fx *effects) notify(payload ladderevents.NotificationRequestedPayloadV1) {
	fx.notifications = append(fx.notifications, payload)
}

func notificationTeams(teams ...ladderdomain.Team) []ladderevents.NotificationTeamV1 {
	out := make([]ladderevents.NotificationTeamV1, 0, len(teams))
	for _, t := range teams {
		out = append(out, ladderevents.NotificationTeamV1{TeamID: t.ID.String(), Name: t.Name})
	}
	return out
}

// dispatch is best-effort: failures are logged and never reach the caller.
func (s *LadderService) dispatch(ctx context.Context, fx *effects) {
	if fx == nil {
		return
	}

	if s.publisher != nil {
		for _, change := range fx.rankingChanges {
			if err := s.publisher.PublishRankingChanged(ctx, change); err != nil {
				s.logger.WarnContext(ctx, "Failed to publish ranking change",
					attr.ExtractCorrelationID(ctx),
					attr.CategoryID(change.CategoryID),
					attr.String("cause", string(change.Cause)),
					attr.Error(err),
				)
			}
		}
	}

	if s.notifier != nil {
		for _, n := range fx.notifications {
			nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.NotificationTimeout)
			err := s.notifier.Notify(nctx, n)
			cancel()
			if err != nil {
				s.logger.WarnContext(ctx, "Failed to dispatch notification",
					attr.ExtractCorrelationID(ctx),
					attr.String("kind", string(n.Kind)),
					attr.Error(err),
				)
			}
		}
	}
}
