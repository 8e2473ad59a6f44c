package ladderservice

import (
	"context"
	"strings"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/padel-ladder/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CreateLadder creates a named competition instance.
func (s *LadderService) CreateLadder(ctx context.Context, actor ladderdomain.Actor, name string) (ladderdomain.Ladder, error) {
	return execute(s, ctx, "CreateLadder", name, func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Ladder, error], error) {
		if err := requireAdmin(actor, "creating a ladder"); err != nil {
			return fail[ladderdomain.Ladder](err, "")
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return fail[ladderdomain.Ladder](ladderdomain.Validation("ladder name is required"), "")
		}

		row := &ladderdb.Ladder{Name: name, CreatedAt: s.clock.Now()}
		if err := s.repo.InsertLadder(ctx, db, row); err != nil {
			return fail[ladderdomain.Ladder](err, "failed to create ladder")
		}
		return ok(row.ToDomain())
	})
}

// CreateCategory adds an independently ranked pool to a ladder.
func (s *LadderService) CreateCategory(ctx context.Context, actor ladderdomain.Actor, in CreateCategoryInput) (ladderdomain.Category, error) {
	return execute(s, ctx, "CreateCategory", in.LadderID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Category, error], error) {
		if err := requireAdmin(actor, "creating a category"); err != nil {
			return fail[ladderdomain.Category](err, "")
		}
		name := strings.TrimSpace(in.Name)
		switch {
		case name == "":
			return fail[ladderdomain.Category](ladderdomain.Validation("category name is required"), "")
		case in.ChallengeRange < 1:
			return fail[ladderdomain.Category](ladderdomain.Validation("challenge range must be at least 1"), "")
		case in.EntryFeeCents != nil && *in.EntryFeeCents < 0:
			return fail[ladderdomain.Category](ladderdomain.Validation("entry fee cannot be negative"), "")
		}

		if _, err := s.repo.GetLadder(ctx, db, in.LadderID); err != nil {
			return fail[ladderdomain.Category](notFound(err, "ladder %s", in.LadderID), "failed to load ladder")
		}

		row := &ladderdb.Category{
			LadderID:       in.LadderID,
			Name:           name,
			ChallengeRange: in.ChallengeRange,
			EntryFeeCents:  in.EntryFeeCents,
			CreatedAt:      s.clock.Now(),
		}
		if err := s.repo.InsertCategory(ctx, db, row); err != nil {
			return fail[ladderdomain.Category](err, "failed to create category")
		}

		category := row.ToDomain()
		newValues := map[string]any{
			"ladder_id":       category.LadderID.String(),
			"name":            category.Name,
			"challenge_range": category.ChallengeRange,
		}
		if category.EntryFeeCents != nil {
			newValues["entry_fee_cents"] = *category.EntryFeeCents
		}
		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:     ladderdomain.AuditCategoryCreated,
			CategoryID: ptr(category.ID),
			NewValues:  newValues,
		}); err != nil {
			return fail[ladderdomain.Category](err, "failed to audit category creation")
		}
		return ok(category)
	})
}

// RegisterTeam creates a team captained by the actor, or by anyone when an admin registers it.
func (s *LadderService) RegisterTeam(ctx context.Context, actor ladderdomain.Actor, in RegisterTeamInput) (ladderdomain.Team, error) {
	return execute(s, ctx, "RegisterTeam", in.Name, func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Team, error], error) {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return fail[ladderdomain.Team](ladderdomain.Validation("team name is required"), "")
		}
		captain := strings.TrimSpace(in.CaptainUserID)
		if captain == "" {
			captain = actor.ID
		}
		if captain == "" {
			return fail[ladderdomain.Team](ladderdomain.Validation("captain is required"), "")
		}
		if captain != actor.ID && !actor.IsAdmin {
			return fail[ladderdomain.Team](ladderdomain.Unauthorized("only an admin can register a team for another captain"), "")
		}
		if in.PartnerUserID != nil && *in.PartnerUserID == captain {
			return fail[ladderdomain.Team](ladderdomain.Validation("partner must differ from captain"), "")
		}

		now := s.clock.Now()
		row := &ladderdb.Team{
			Name:          name,
			CaptainUserID: captain,
			PartnerUserID: in.PartnerUserID,
			PartnerName:   in.PartnerName,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repo.InsertTeam(ctx, db, row); err != nil {
			return fail[ladderdomain.Team](err, "failed to register team")
		}
		return ok(row.ToDomain())
	})
}

func (s *LadderService) GetTeam(ctx context.Context, teamID uuid.UUID) (ladderdomain.Team, error) {
	return execute(s, ctx, "GetTeam", teamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Team, error], error) {
		team, err := s.loadTeam(ctx, db, teamID)
		if err != nil {
			return fail[ladderdomain.Team](err, "failed to load team")
		}
		return ok(team)
	})
}

// DeleteTeam removes the team from each category it is ranked in, closing every
// gap under that category's lock, and then deletes it. Challenges and join
// requests go with it. The team row stays locked from the listing to the
// delete, so no ranking for it can be inserted in between.
func (s *LadderService) DeleteTeam(ctx context.Context, actor ladderdomain.Actor, teamID uuid.UUID) error {
	_, err := execute(s, ctx, "DeleteTeam", teamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[struct{}, error], error) {
		if err := requireAdmin(actor, "deleting a team"); err != nil {
			return fail[struct{}](err, "")
		}
		team, err := s.lockTeam(ctx, db, teamID)
		if err != nil {
			return fail[struct{}](err, "failed to lock team")
		}

		rankings, err := s.repo.ListRankingsByTeam(ctx, db, teamID)
		if err != nil {
			return fail[struct{}](err, "failed to list team rankings")
		}

		removed := make([]any, 0, len(rankings))
		for _, r := range rankings {
			gone, err := s.rankings.RemoveFromCategory(ctx, db, r.CategoryID, teamID)
			if err != nil {
				return fail[struct{}](err, "failed to remove team from category")
			}
			removed = append(removed, ladderdomain.RankingSnapshot(gone))
			fx.rankingChanged(s.clock.Now(), gone.CategoryID.String(), ladderevents.CauseTeamDeleted, gone)
		}

		if err := s.repo.DeleteTeam(ctx, db, teamID); err != nil {
			return fail[struct{}](notFound(err, "team %s", teamID), "failed to delete team")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action: ladderdomain.AuditTeamDeleted,
			TeamID: ptr(teamID),
			OldValues: map[string]any{
				"name":            team.Name,
				"captain_user_id": team.CaptainUserID,
				"rankings":        removed,
			},
		}); err != nil {
			return fail[struct{}](err, "failed to audit team deletion")
		}
		return ok(struct{}{})
	})
	return err
}

// ListAuditEntries returns audit entries newest first.
func (s *LadderService) ListAuditEntries(ctx context.Context, actor ladderdomain.Actor, filter ladderdomain.AuditFilter) ([]ladderdomain.AuditEntry, error) {
	return execute(s, ctx, "ListAuditEntries", actor.ID, func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[[]ladderdomain.AuditEntry, error], error) {
		if err := requireAdmin(actor, "reading the audit log"); err != nil {
			return fail[[]ladderdomain.AuditEntry](err, "")
		}
		rows, err := s.repo.ListAuditEntries(ctx, db, filter)
		if err != nil {
			return fail[[]ladderdomain.AuditEntry](err, "failed to list audit entries")
		}
		out := make([]ladderdomain.AuditEntry, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
		return ok(out)
	})
}
