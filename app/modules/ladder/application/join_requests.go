package ladderservice

import (
	"context"
	"errors"
	"strings"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/padel-ladder/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (s *LadderService) CreateJoinRequest(ctx context.Context, actor ladderdomain.Actor, teamID, categoryID uuid.UUID, message string) (ladderdomain.JoinRequest, error) {
	return execute(s, ctx, "CreateJoinRequest", teamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.JoinRequest, error], error) {
		team, err := s.loadTeam(ctx, db, teamID)
		if err != nil {
			return fail[ladderdomain.JoinRequest](err, "failed to load team")
		}
		if err := requireMember(actor, "requesting to join a category", team); err != nil {
			return fail[ladderdomain.JoinRequest](err, "")
		}
		if _, err := s.loadCategory(ctx, db, categoryID); err != nil {
			return fail[ladderdomain.JoinRequest](err, "failed to load category")
		}

		_, err = s.repo.GetRanking(ctx, db, teamID, categoryID)
		switch {
		case err == nil:
			return fail[ladderdomain.JoinRequest](ladderdomain.AlreadyInCategory("%s is already ranked in this category", team.Name), "")
		case !errors.Is(err, ladderdb.ErrNotFound):
			return fail[ladderdomain.JoinRequest](err, "failed to check ranking")
		}

		row := &ladderdb.JoinRequest{
			TeamID:     teamID,
			CategoryID: categoryID,
			Status:     string(ladderdomain.JoinRequestPending),
			CreatedAt:  s.clock.Now(),
		}
		if m := strings.TrimSpace(message); m != "" {
			row.Message = &m
		}
		if err := s.repo.InsertJoinRequest(ctx, db, row); err != nil {
			if errors.Is(err, ladderdb.ErrDuplicatePending) {
				return fail[ladderdomain.JoinRequest](ladderdomain.DuplicatePending("%s already has a pending request for this category", team.Name), "")
			}
			return fail[ladderdomain.JoinRequest](err, "failed to create join request")
		}
		return ok(row.ToDomain())
	})
}

func (s *LadderService) lockJoinRequest(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.JoinRequest, error) {
	req, err := s.repo.GetJoinRequestForUpdate(ctx, db, id)
	if err != nil {
		return nil, notFound(err, "join request %s", id)
	}
	return req, nil
}

func (s *LadderService) resolveJoinRequest(ctx context.Context, db bun.IDB, actor ladderdomain.Actor, req *ladderdb.JoinRequest, to ladderdomain.JoinRequestStatus, notes string) error {
	now := s.clock.Now()
	req.Status = string(to)
	req.RespondedAt = &now
	req.RespondedBy = ptr(actor.ID)
	if notes != "" {
		req.AdminNotes = ptr(notes)
	}
	if err := s.repo.ResolveJoinRequest(ctx, db, req); err != nil {
		if errors.Is(err, ladderdb.ErrStaleState) {
			return ladderdomain.InvalidTransition("join request is no longer pending")
		}
		return err
	}
	return nil
}

// ApproveJoinRequest ranks the team at the bottom of the category. Of two concurrent
// approvals for the same team and category, the second fails with AlreadyInCategory.
func (s *LadderService) ApproveJoinRequest(ctx context.Context, actor ladderdomain.Actor, requestID uuid.UUID, notes string) (ladderdomain.Ranking, error) {
	return execute(s, ctx, "ApproveJoinRequest", requestID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Ranking, error], error) {
		if err := requireAdmin(actor, "approving a join request"); err != nil {
			return fail[ladderdomain.Ranking](err, "")
		}
		req, err := s.lockJoinRequest(ctx, db, requestID)
		if err != nil {
			return fail[ladderdomain.Ranking](err, "failed to load join request")
		}

		// InsertAtNextRank re-checks the ranking under the category lock, so a
		// request approved after its team got in through another one reports
		// AlreadyInCategory rather than a status error.
		ranking, err := s.rankings.InsertAtNextRank(ctx, db, req.TeamID, req.CategoryID)
		if err != nil {
			return fail[ladderdomain.Ranking](err, "failed to rank team")
		}
		if req.Status != string(ladderdomain.JoinRequestPending) {
			return fail[ladderdomain.Ranking](ladderdomain.InvalidTransition("join request is %s, not pending", req.Status), "")
		}

		notes = strings.TrimSpace(notes)
		if err := s.resolveJoinRequest(ctx, db, actor, req, ladderdomain.JoinRequestApproved, notes); err != nil {
			return fail[ladderdomain.Ranking](err, "failed to approve join request")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:     ladderdomain.AuditJoinRequestApproved,
			TeamID:     ptr(req.TeamID),
			CategoryID: ptr(req.CategoryID),
			OldValues:  map[string]any{"join_request_id": req.ID.String(), "status": string(ladderdomain.JoinRequestPending)},
			NewValues:  ladderdomain.RankingSnapshot(ranking),
			Notes:      notes,
		}); err != nil {
			return fail[ladderdomain.Ranking](err, "failed to audit approval")
		}

		fx.rankingChanged(s.clock.Now(), req.CategoryID.String(), ladderevents.CauseRankingInserted, ranking)
		return ok(ranking)
	})
}

func (s *LadderService) RejectJoinRequest(ctx context.Context, actor ladderdomain.Actor, requestID uuid.UUID, notes string) (ladderdomain.JoinRequest, error) {
	return execute(s, ctx, "RejectJoinRequest", requestID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.JoinRequest, error], error) {
		if err := requireAdmin(actor, "rejecting a join request"); err != nil {
			return fail[ladderdomain.JoinRequest](err, "")
		}
		req, err := s.lockJoinRequest(ctx, db, requestID)
		if err != nil {
			return fail[ladderdomain.JoinRequest](err, "failed to load join request")
		}
		if req.Status != string(ladderdomain.JoinRequestPending) {
			return fail[ladderdomain.JoinRequest](ladderdomain.InvalidTransition("join request is %s, not pending", req.Status), "")
		}

		notes = strings.TrimSpace(notes)
		if err := s.resolveJoinRequest(ctx, db, actor, req, ladderdomain.JoinRequestRejected, notes); err != nil {
			return fail[ladderdomain.JoinRequest](err, "failed to reject join request")
		}

		if err := s.audit.Record(ctx, db, actor, AuditRecord{
			Action:     ladderdomain.AuditJoinRequestRejected,
			TeamID:     ptr(req.TeamID),
			CategoryID: ptr(req.CategoryID),
			OldValues:  map[string]any{"join_request_id": req.ID.String(), "status": string(ladderdomain.JoinRequestPending)},
			NewValues:  map[string]any{"join_request_id": req.ID.String(), "status": req.Status},
			Notes:      notes,
		}); err != nil {
			return fail[ladderdomain.JoinRequest](err, "failed to audit rejection")
		}
		return ok(req.ToDomain())
	})
}

func (s *LadderService) ListJoinRequests(ctx context.Context, categoryID uuid.UUID, status *ladderdomain.JoinRequestStatus) ([]ladderdomain.JoinRequest, error) {
	return execute(s, ctx, "ListJoinRequests", categoryID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[[]ladderdomain.JoinRequest, error], error) {
		if status != nil && !status.Valid() {
			return fail[[]ladderdomain.JoinRequest](ladderdomain.Validation("unknown join request status %q", *status), "")
		}
		rows, err := s.repo.ListJoinRequests(ctx, db, categoryID, status)
		if err != nil {
			return fail[[]ladderdomain.JoinRequest](err, "failed to list join requests")
		}
		out := make([]ladderdomain.JoinRequest, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
		return ok(out)
	})
}
