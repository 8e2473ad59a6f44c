package ladderservice

import (
	"context"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	"github.com/Black-And-White-Club/padel-ladder/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (s *LadderService) SeedRanking(ctx context.Context, actor ladderdomain.Actor, categoryID, teamID uuid.UUID) (ladderdomain.Ranking, error) {
	return execute(s, ctx, "SeedRanking", categoryID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Ranking, error], error) {
		if err := requireAdmin(actor, "seeding a ranking"); err != nil {
			return fail[ladderdomain.Ranking](err, "")
		}
		if _, err := s.loadCategory(ctx, db, categoryID); err != nil {
			return fail[ladderdomain.Ranking](err, "failed to load category")
		}
		if _, err := s.loadTeam(ctx, db, teamID); err != nil {
			return fail[ladderdomain.Ranking](err, "failed to load team")
		}

		r, err := s.rankings.InsertAtNextRank(ctx, db, teamID, categoryID)
		if err != nil {
			return fail[ladderdomain.Ranking](err, "failed to insert ranking")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:     ladderdomain.AuditRankingSeeded,
			TeamID:     ptr(teamID),
			CategoryID: ptr(categoryID),
			NewValues:  ladderdomain.RankingSnapshot(r),
		}); err != nil {
			return fail[ladderdomain.Ranking](err, "failed to audit ranking seed")
		}

		fx.rankingChanged(s.clock.Now(), categoryID.String(), ladderevents.CauseRankingInserted, r)
		return ok(r)
	})
}

func (s *LadderService) SwapRanks(ctx context.Context, actor ladderdomain.Actor, categoryID, teamA, teamB uuid.UUID) error {
	_, err := execute(s, ctx, "SwapRanks", categoryID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[struct{}, error], error) {
		if err := requireAdmin(actor, "swapping ranks"); err != nil {
			return fail[struct{}](err, "")
		}

		before, after, err := s.rankings.SwapRanks(ctx, db, categoryID, teamA, teamB)
		if err != nil {
			return fail[struct{}](err, "failed to swap ranks")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:     ladderdomain.AuditRankingSwapped,
			CategoryID: ptr(categoryID),
			OldValues: map[string]any{
				teamA.String(): before[0].Rank,
				teamB.String(): before[1].Rank,
			},
			NewValues: map[string]any{
				teamA.String(): after[0].Rank,
				teamB.String(): after[1].Rank,
			},
		}); err != nil {
			return fail[struct{}](err, "failed to audit rank swap")
		}

		fx.rankingChanged(s.clock.Now(), categoryID.String(), ladderevents.CauseRanksSwapped, after[0], after[1])
		return ok(struct{}{})
	})
	return err
}

func (s *LadderService) RemoveFromCategory(ctx context.Context, actor ladderdomain.Actor, categoryID, teamID uuid.UUID) error {
	_, err := execute(s, ctx, "RemoveFromCategory", categoryID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[struct{}, error], error) {
		if err := requireAdmin(actor, "removing a team from a category"); err != nil {
			return fail[struct{}](err, "")
		}

		removed, err := s.rankings.RemoveFromCategory(ctx, db, categoryID, teamID)
		if err != nil {
			return fail[struct{}](err, "failed to remove ranking")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:     ladderdomain.AuditRankingRemoved,
			TeamID:     ptr(teamID),
			CategoryID: ptr(categoryID),
			OldValues:  ladderdomain.RankingSnapshot(removed),
		}); err != nil {
			return fail[struct{}](err, "failed to audit ranking removal")
		}

		fx.rankingChanged(s.clock.Now(), categoryID.String(), ladderevents.CauseRankingRemoved, removed)
		return ok(struct{}{})
	})
	return err
}

func (s *LadderService) AdjustStats(ctx context.Context, actor ladderdomain.Actor, categoryID, teamID uuid.UUID, patch ladderdomain.StatsPatch, notes string) (ladderdomain.Ranking, error) {
	return execute(s, ctx, "AdjustStats", teamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Ranking, error], error) {
		if err := requireAdmin(actor, "editing stats"); err != nil {
			return fail[ladderdomain.Ranking](err, "")
		}

		before, after, err := s.rankings.UpdateStats(ctx, db, categoryID, teamID, patch)
		if err != nil {
			return fail[ladderdomain.Ranking](err, "failed to update stats")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:     ladderdomain.AuditRankingStatsAdjusted,
			TeamID:     ptr(teamID),
			CategoryID: ptr(categoryID),
			OldValues:  ladderdomain.RankingSnapshot(before),
			NewValues:  ladderdomain.RankingSnapshot(after),
			Notes:      notes,
		}); err != nil {
			return fail[ladderdomain.Ranking](err, "failed to audit stats edit")
		}

		fx.rankingChanged(s.clock.Now(), categoryID.String(), ladderevents.CauseStatsAdjusted, after)
		return ok(after)
	})
}

// GetStandings returns the category ordered by rank with each team's effective freeze state.
func (s *LadderService) GetStandings(ctx context.Context, categoryID uuid.UUID) ([]ladderdomain.Standing, error) {
	return execute(s, ctx, "GetStandings", categoryID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[[]ladderdomain.Standing, error], error) {
		if _, err := s.loadCategory(ctx, db, categoryID); err != nil {
			return fail[[]ladderdomain.Standing](err, "failed to load category")
		}
		rows, err := s.repo.ListStandings(ctx, db, categoryID)
		if err != nil {
			return fail[[]ladderdomain.Standing](err, "failed to list standings")
		}

		now := s.clock.Now()
		out := make([]ladderdomain.Standing, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain(now))
		}
		return ok(out)
	})
}
