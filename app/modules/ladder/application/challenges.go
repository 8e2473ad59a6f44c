package ladderservice

import (
	"context"
	"errors"
	"strings"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderevents "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/events"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/Black-And-White-Club/padel-ladder/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// challengeParties is what the eligibility rules were evaluated against.
type challengeParties struct {
	challenger ladderdomain.Team
	target     ladderdomain.Team
	category   ladderdomain.Category
	verdict    ladderdomain.Eligibility
}

func (s *LadderService) evaluateChallenge(ctx context.Context, db bun.IDB, challengerID, targetID, categoryID uuid.UUID, asOf time.Time) (challengeParties, error) {
	var p challengeParties
	var err error

	if p.category, err = s.loadCategory(ctx, db, categoryID); err != nil {
		return p, err
	}
	if p.challenger, err = s.loadTeam(ctx, db, challengerID); err != nil {
		return p, err
	}
	if p.target, err = s.loadTeam(ctx, db, targetID); err != nil {
		return p, err
	}

	in := ladderdomain.EligibilityInput{
		ChallengerTeamID:   challengerID.String(),
		TargetTeamID:       targetID.String(),
		ChallengeRange:     p.category.ChallengeRange,
		TargetFrozen:       ladderdomain.IsFrozen(p.target.Freeze, asOf),
		ChallengerComplete: ladderdomain.IsTeamComplete(p.challenger),
	}
	if challengerID != targetID {
		cr, err := s.repo.GetRanking(ctx, db, challengerID, categoryID)
		if err != nil {
			return p, notFound(err, "team %s has no ranking in category %s", challengerID, categoryID)
		}
		tr, err := s.repo.GetRanking(ctx, db, targetID, categoryID)
		if err != nil {
			return p, notFound(err, "team %s has no ranking in category %s", targetID, categoryID)
		}
		in.ChallengerRank, in.TargetRank = cr.Rank, tr.Rank

		if in.HasPendingToTarget, err = s.repo.HasPendingChallenge(ctx, db, challengerID, targetID); err != nil {
			return p, err
		}
	}

	p.verdict = ladderdomain.CheckEligibility(in)
	return p, nil
}

// CheckEligibility reports whether the challenger may challenge the target right now and,
// if not, the first rule that fails.
func (s *LadderService) CheckEligibility(ctx context.Context, challengerTeamID, targetTeamID, categoryID uuid.UUID, asOf time.Time) (ladderdomain.Eligibility, error) {
	return execute(s, ctx, "CheckEligibility", challengerTeamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Eligibility, error], error) {
		p, err := s.evaluateChallenge(ctx, db, challengerTeamID, targetTeamID, categoryID, asOf)
		if err != nil {
			return fail[ladderdomain.Eligibility](err, "failed to evaluate eligibility")
		}
		return ok(p.verdict)
	})
}

func (s *LadderService) CreateChallenge(ctx context.Context, actor ladderdomain.Actor, challengerTeamID, targetTeamID, categoryID uuid.UUID) (ladderdomain.Challenge, error) {
	return execute(s, ctx, "CreateChallenge", challengerTeamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Challenge, error], error) {
		// Ranks must not move between the eligibility check and the insert.
		if err := s.repo.AcquireCategoryLock(ctx, db, categoryID); err != nil {
			return fail[ladderdomain.Challenge](err, "failed to lock category")
		}

		now := s.clock.Now()
		p, err := s.evaluateChallenge(ctx, db, challengerTeamID, targetTeamID, categoryID, now)
		if err != nil {
			return fail[ladderdomain.Challenge](err, "failed to evaluate eligibility")
		}
		if err := requireMember(actor, "creating a challenge", p.challenger); err != nil {
			return fail[ladderdomain.Challenge](err, "")
		}
		if !p.verdict.Eligible {
			if p.verdict.Reason == ladderdomain.ReasonDuplicatePending {
				return fail[ladderdomain.Challenge](ladderdomain.DuplicatePending("a challenge to %s is already pending", p.target.Name), "")
			}
			return fail[ladderdomain.Challenge](ladderdomain.EligibilityDenied(p.verdict.Reason), "")
		}

		row := &ladderdb.Challenge{
			ChallengerTeamID: challengerTeamID,
			ChallengedTeamID: targetTeamID,
			CategoryID:       categoryID,
			Status:           string(ladderdomain.ChallengePending),
			CreatedAt:        now,
			ExpiresAt:        now.Add(s.opts.ChallengeExpiry),
		}
		if err := s.repo.InsertChallenge(ctx, db, row); err != nil {
			if errors.Is(err, ladderdb.ErrDuplicatePending) {
				return fail[ladderdomain.Challenge](ladderdomain.DuplicatePending("a challenge to %s is already pending", p.target.Name), "")
			}
			return fail[ladderdomain.Challenge](err, "failed to create challenge")
		}

		challenge := row.ToDomain()
		fx.notify(ladderevents.NotificationRequestedPayloadV1{
			Kind:        ladderevents.NotifyChallengeCreated,
			Teams:       notificationTeams(p.challenger, p.target),
			ChallengeID: challenge.ID.String(),
			OccurredAt:  now,
		})
		return ok(challenge)
	})
}

// challengeTransition describes one move out of pending.
type challengeTransition struct {
	op     string
	to     ladderdomain.ChallengeStatus
	action string
	audit  ladderdomain.AuditAction
	notify ladderevents.NotificationKind
	// byChallenger is set when the challenger, not the challenged team, owns the move.
	byChallenger bool
	reason       string
}

func (s *LadderService) transitionChallenge(ctx context.Context, actor ladderdomain.Actor, challengeID uuid.UUID, tr challengeTransition) (ladderdomain.Challenge, error) {
	return execute(s, ctx, tr.op, challengeID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[ladderdomain.Challenge, error], error) {
		challenge, err := s.lockChallenge(ctx, db, challengeID)
		if err != nil {
			return fail[ladderdomain.Challenge](err, "failed to load challenge")
		}
		challenger, err := s.loadTeam(ctx, db, challenge.ChallengerTeamID)
		if err != nil {
			return fail[ladderdomain.Challenge](err, "failed to load challenger")
		}
		challenged, err := s.loadTeam(ctx, db, challenge.ChallengedTeamID)
		if err != nil {
			return fail[ladderdomain.Challenge](err, "failed to load challenged team")
		}

		owner := challenged
		if tr.byChallenger {
			owner = challenger
		}
		if err := requireMember(actor, tr.action, owner); err != nil {
			return fail[ladderdomain.Challenge](err, "")
		}

		now := s.clock.Now()
		if challenge.Status != ladderdomain.ChallengePending {
			return fail[ladderdomain.Challenge](ladderdomain.InvalidTransition("challenge is %s, not pending", challenge.Status), "")
		}
		// The response window closes at ExpiresAt even before the sweep runs.
		// The challenger may still withdraw.
		if !tr.byChallenger && challenge.IsOverdue(now) {
			return fail[ladderdomain.Challenge](ladderdomain.InvalidTransition("challenge expired at %s", challenge.ExpiresAt.Format(time.RFC3339)), "")
		}

		before := challenge.Status
		challenge.Status = tr.to
		challenge.RespondedAt = &now
		challenge.RespondedBy = ptr(actor.ID)
		if tr.reason != "" {
			challenge.DeclineReason = ptr(tr.reason)
		}

		row := &ladderdb.Challenge{
			ID:            challenge.ID,
			Status:        string(challenge.Status),
			DeclineReason: challenge.DeclineReason,
			RespondedAt:   challenge.RespondedAt,
			RespondedBy:   challenge.RespondedBy,
		}
		if err := s.repo.ResolveChallenge(ctx, db, row); err != nil {
			if errors.Is(err, ladderdb.ErrStaleState) {
				return fail[ladderdomain.Challenge](ladderdomain.InvalidTransition("challenge is no longer pending"), "")
			}
			return fail[ladderdomain.Challenge](err, "failed to update challenge")
		}

		if actingForOthers(actor, owner) {
			if err := s.audit.Record(ctx, db, actor, AuditRecord{
				Action:     tr.audit,
				TeamID:     ptr(owner.ID),
				CategoryID: ptr(challenge.CategoryID),
				OldValues:  map[string]any{"challenge_id": challenge.ID.String(), "status": string(before)},
				NewValues:  map[string]any{"challenge_id": challenge.ID.String(), "status": string(challenge.Status)},
				Notes:      tr.reason,
			}); err != nil {
				return fail[ladderdomain.Challenge](err, "failed to audit challenge transition")
			}
		}

		if tr.notify != "" {
			fx.notify(ladderevents.NotificationRequestedPayloadV1{
				Kind:        tr.notify,
				Teams:       notificationTeams(challenger, challenged),
				ChallengeID: challenge.ID.String(),
				Reason:      tr.reason,
				OccurredAt:  now,
			})
		}
		return ok(challenge)
	})
}

func (s *LadderService) AcceptChallenge(ctx context.Context, actor ladderdomain.Actor, challengeID uuid.UUID) (ladderdomain.Challenge, error) {
	return s.transitionChallenge(ctx, actor, challengeID, challengeTransition{
		op:     "AcceptChallenge",
		to:     ladderdomain.ChallengeAccepted,
		action: "accepting a challenge",
		audit:  ladderdomain.AuditChallengeAccepted,
		notify: ladderevents.NotifyChallengeAccepted,
	})
}

func (s *LadderService) DeclineChallenge(ctx context.Context, actor ladderdomain.Actor, challengeID uuid.UUID, reason string) (ladderdomain.Challenge, error) {
	return s.transitionChallenge(ctx, actor, challengeID, challengeTransition{
		op:     "DeclineChallenge",
		to:     ladderdomain.ChallengeDeclined,
		action: "declining a challenge",
		audit:  ladderdomain.AuditChallengeDeclined,
		notify: ladderevents.NotifyChallengeDeclined,
		reason: strings.TrimSpace(reason),
	})
}

func (s *LadderService) CancelChallenge(ctx context.Context, actor ladderdomain.Actor, challengeID uuid.UUID) (ladderdomain.Challenge, error) {
	return s.transitionChallenge(ctx, actor, challengeID, challengeTransition{
		op:           "CancelChallenge",
		to:           ladderdomain.ChallengeCancelled,
		action:       "cancelling a challenge",
		audit:        ladderdomain.AuditChallengeCancelled,
		byChallenger: true,
	})
}

// ListChallenges returns the team's challenges in either direction, newest first.
func (s *LadderService) ListChallenges(ctx context.Context, teamID uuid.UUID, status *ladderdomain.ChallengeStatus) ([]ladderdomain.Challenge, error) {
	return execute(s, ctx, "ListChallenges", teamID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[[]ladderdomain.Challenge, error], error) {
		if status != nil && !status.Valid() {
			return fail[[]ladderdomain.Challenge](ladderdomain.Validation("unknown challenge status %q", *status), "")
		}
		rows, err := s.repo.ListChallengesByTeam(ctx, db, teamID, status)
		if err != nil {
			return fail[[]ladderdomain.Challenge](err, "failed to list challenges")
		}
		out := make([]ladderdomain.Challenge, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
		return ok(out)
	})
}

func (s *LadderService) RecordMatchResult(ctx context.Context, actor ladderdomain.Actor, in MatchResultInput) (MatchRecord, error) {
	return execute(s, ctx, "RecordMatchResult", in.ChallengeID.String(), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[MatchRecord, error], error) {
		challenge, err := s.lockChallenge(ctx, db, in.ChallengeID)
		if err != nil {
			return fail[MatchRecord](err, "failed to load challenge")
		}
		challenger, err := s.loadTeam(ctx, db, challenge.ChallengerTeamID)
		if err != nil {
			return fail[MatchRecord](err, "failed to load challenger")
		}
		challenged, err := s.loadTeam(ctx, db, challenge.ChallengedTeamID)
		if err != nil {
			return fail[MatchRecord](err, "failed to load challenged team")
		}
		if err := requireMember(actor, "reporting a result", challenger, challenged); err != nil {
			return fail[MatchRecord](err, "")
		}

		existing, err := s.repo.GetMatchByChallenge(ctx, db, challenge.ID)
		switch {
		case err == nil:
			return ok(MatchRecord{Match: existing.ToDomain(), AlreadyRecorded: true})
		case !errors.Is(err, ladderdb.ErrNotFound):
			return fail[MatchRecord](err, "failed to look up match")
		}

		if challenge.Status != ladderdomain.ChallengeAccepted {
			return fail[MatchRecord](ladderdomain.InvalidTransition("challenge is %s, not accepted", challenge.Status), "")
		}

		var loserID uuid.UUID
		switch in.WinnerTeamID {
		case challenge.ChallengerTeamID:
			loserID = challenge.ChallengedTeamID
		case challenge.ChallengedTeamID:
			loserID = challenge.ChallengerTeamID
		default:
			return fail[MatchRecord](ladderdomain.Validation("winner must be one of the challenge's teams"), "")
		}

		now := s.clock.Now()
		playedAt := now
		if in.PlayedAt != nil {
			playedAt = *in.PlayedAt
		}
		if playedAt.After(now) {
			return fail[MatchRecord](ladderdomain.Validation("match cannot be played in the future"), "")
		}

		outcome, err := s.rankings.ApplyMatchResult(ctx, db, challenge.CategoryID, in.WinnerTeamID, loserID, in.WinnerScore, in.LoserScore, playedAt)
		if err != nil {
			return fail[MatchRecord](err, "failed to apply match result")
		}

		row := &ladderdb.Match{
			ChallengeID:  challenge.ID,
			CategoryID:   challenge.CategoryID,
			WinnerTeamID: in.WinnerTeamID,
			LoserTeamID:  loserID,
			WinnerScore:  in.WinnerScore,
			LoserScore:   in.LoserScore,
			RecordedBy:   actor.ID,
			PlayedAt:     playedAt.UTC(),
		}
		if err := s.repo.InsertMatch(ctx, db, row); err != nil {
			if errors.Is(err, ladderdb.ErrMatchRecorded) {
				// Lost a race with another reporter; the retry finds the stored match.
				return fail[MatchRecord](ladderdomain.ConstraintConflict(err), "")
			}
			return fail[MatchRecord](err, "failed to store match")
		}

		fx.rankingChanged(now, challenge.CategoryID.String(), ladderevents.CauseMatchResult, outcome.Winner, outcome.Loser)
		return ok(MatchRecord{Match: row.ToDomain(), Outcome: &outcome})
	})
}

// ExpireOverdueChallenges is the sweep run by the scheduler. Pending rows past their
// expiry stay visible as pending until it runs.
func (s *LadderService) ExpireOverdueChallenges(ctx context.Context, asOf time.Time) (int, error) {
	n, err := execute(s, ctx, "ExpireOverdueChallenges", asOf.UTC().Format(time.RFC3339), func(ctx context.Context, db bun.IDB, fx *effects) (results.OperationResult[int, error], error) {
		expired, err := s.repo.ExpireOverdueChallenges(ctx, db, asOf)
		if err != nil {
			return fail[int](err, "failed to expire challenges")
		}
		return ok(len(expired))
	})
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.RecordChallengesExpired(ctx, n)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "Expired overdue challenges",
			attr.ExtractCorrelationID(ctx),
			attr.Int("count", n),
		)
	}
	return n, nil
}
