package ladderservice

import (
	"context"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	"github.com/Black-And-White-Club/padel-ladder/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FreezeTeam takes a team out of the challenge pool until the given instant.
// Re-freezing replaces the previous window.
func (s *LadderService) FreezeTeam(ctx context.Context, actor ladderdomain.Actor, teamID uuid.UUID, until time.Time, reason string) (ladderdomain.Team, error) {
	return execute(s, ctx, "FreezeTeam", teamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Team, error], error) {
		if err := requireAdmin(actor, "freezing a team"); err != nil {
			return fail[ladderdomain.Team](err, "")
		}
		team, err := s.lockTeam(ctx, db, teamID)
		if err != nil {
			return fail[ladderdomain.Team](err, "failed to lock team")
		}

		now := s.clock.Now()
		window, err := ladderdomain.NewFreezeWindow(until, reason, actor.ID, now)
		if err != nil {
			return fail[ladderdomain.Team](err, "")
		}
		if err := s.repo.UpdateTeamFreeze(ctx, db, teamID, window); err != nil {
			return fail[ladderdomain.Team](notFound(err, "team %s", teamID), "failed to freeze team")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:    ladderdomain.AuditTeamFrozen,
			TeamID:    ptr(teamID),
			OldValues: ladderdomain.FreezeSnapshot(team.Freeze),
			NewValues: ladderdomain.FreezeSnapshot(window),
			Notes:     reason,
		}); err != nil {
			return fail[ladderdomain.Team](err, "failed to audit freeze")
		}

		team.Freeze = window
		fx.notify(ladderevents.NotificationRequestedPayloadV1{
			Kind:       ladderevents.NotifyTeamFrozen,
			Teams:      notificationTeams(team),
			Reason:     reason,
			Until:      window.FrozenUntil,
			OccurredAt: now,
		})
		return ok(team)
	})
}

// UnfreezeTeam clears every freeze field.
func (s *LadderService) UnfreezeTeam(ctx context.Context, actor ladderdomain.Actor, teamID uuid.UUID) (ladderdomain.Team, error) {
	return execute(s, ctx, "UnfreezeTeam", teamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Team, error], error) {
		if err := requireAdmin(actor, "unfreezing a team"); err != nil {
			return fail[ladderdomain.Team](err, "")
		}
		team, err := s.lockTeam(ctx, db, teamID)
		if err != nil {
			return fail[ladderdomain.Team](err, "failed to lock team")
		}

		cleared := ladderdomain.FreezeWindow{}
		if err := s.repo.UpdateTeamFreeze(ctx, db, teamID, cleared); err != nil {
			return fail[ladderdomain.Team](notFound(err, "team %s", teamID), "failed to unfreeze team")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:    ladderdomain.AuditTeamUnfrozen,
			TeamID:    ptr(teamID),
			OldValues: ladderdomain.FreezeSnapshot(team.Freeze),
			NewValues: ladderdomain.FreezeSnapshot(cleared),
		}); err != nil {
			return fail[ladderdomain.Team](err, "failed to audit unfreeze")
		}

		team.Freeze = cleared
		fx.notify(ladderevents.NotificationRequestedPayloadV1{
			Kind:       ladderevents.NotifyTeamUnfrozen,
			Teams:      notificationTeams(team),
			OccurredAt: s.clock.Now(),
		})
		return ok(team)
	})
}
