package ladderdomain

import (
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditCategoryCreated      AuditAction = "category_created"
	AuditTeamDeleted          AuditAction = "team_deleted"
	AuditRankingSeeded        AuditAction = "ranking_seeded"
	AuditRankingSwapped       AuditAction = "ranking_swapped"
	AuditRankingRemoved       AuditAction = "ranking_removed"
	AuditRankingStatsAdjusted AuditAction = "ranking_stats_adjusted"
	AuditTeamFrozen           AuditAction = "team_frozen"
	AuditTeamUnfrozen         AuditAction = "team_unfrozen"
	AuditJoinRequestApproved  AuditAction = "join_request_approved"
	AuditJoinRequestRejected  AuditAction = "join_request_rejected"
	AuditChallengeAccepted    AuditAction = "challenge_accepted_by_admin"
	AuditChallengeDeclined    AuditAction = "challenge_declined_by_admin"
	AuditChallengeCancelled   AuditAction = "challenge_cancelled_by_admin"
)

// AuditEntry is an immutable record of an admin-triggered mutation.
type AuditEntry struct {
	ID          uuid.UUID
	AdminUserID string
	Action      AuditAction
	TeamID      *uuid.UUID
	CategoryID  *uuid.UUID
	OldValues   map[string]any
	NewValues   map[string]any
	Notes       *string
	CreatedAt   time.Time
}

type AuditFilter struct {
	TeamID     *uuid.UUID
	CategoryID *uuid.UUID
	Limit      int
}

// RankingSnapshot renders the audited fields of a ranking.
func RankingSnapshot(r Ranking) map[string]any {
	return map[string]any{
		"team_id":     r.TeamID.String(),
		"category_id": r.CategoryID.String(),
		"rank":        r.Rank,
		"points":      r.Points,
		"wins":        r.Wins,
		"losses":      r.Losses,
		"streak":      r.Streak,
	}
}

// FreezeSnapshot renders the audited freeze fields of a team.
func FreezeSnapshot(w FreezeWindow) map[string]any {
	snap := map[string]any{"is_frozen": w.IsFrozen}
	if w.FrozenUntil != nil {
		snap["frozen_until"] = w.FrozenUntil.UTC().Format(time.RFC3339)
	}
	if w.FrozenReason != nil {
		snap["frozen_reason"] = *w.FrozenReason
	}
	if w.FrozenBy != nil {
		snap["frozen_by"] = *w.FrozenBy
	}
	if w.FrozenAt != nil {
		snap["frozen_at"] = w.FrozenAt.UTC().Format(time.RFC3339)
	}
	return snap
}
