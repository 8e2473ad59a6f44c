package ladderservice

import (
	"context"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/google/uuid"
)

// Service is the ladder ranking and challenge engine. Every mutating operation takes
// the acting identity explicitly.
type Service interface {
	// --- Administration ---

	CreateLadder(ctx context.Context, actor ladderdomain.Actor, name string) (ladderdomain.Ladder, error)
	CreateCategory(ctx context.Context, actor ladderdomain.Actor, in CreateCategoryInput) (ladderdomain.Category, error)
	RegisterTeam(ctx context.Context, actor ladderdomain.Actor, in RegisterTeamInput) (ladderdomain.Team, error)
	GetTeam(ctx context.Context, teamID uuid.UUID) (ladderdomain.Team, error)
	// DeleteTeam removes the team from every category, closing each rank gap, then deletes it.
	DeleteTeam(ctx context.Context, actor ladderdomain.Actor, teamID uuid.UUID) error

	// --- Rankings ---

	// SeedRanking places a team at the bottom of a category without a join request.
	SeedRanking(ctx context.Context, actor ladderdomain.Actor, categoryID, teamID uuid.UUID) (ladderdomain.Ranking, error)
	SwapRanks(ctx context.Context, actor ladderdomain.Actor, categoryID, teamA, teamB uuid.UUID) error
	RemoveFromCategory(ctx context.Context, actor ladderdomain.Actor, categoryID, teamID uuid.UUID) error
	AdjustStats(ctx context.Context, actor ladderdomain.Actor, categoryID, teamID uuid.UUID, patch ladderdomain.StatsPatch, notes string) (ladderdomain.Ranking, error)
	GetStandings(ctx context.Context, categoryID uuid.UUID) ([]ladderdomain.Standing, error)

	// --- Freeze ---

	FreezeTeam(ctx context.Context, actor ladderdomain.Actor, teamID uuid.UUID, until time.Time, reason string) (ladderdomain.Team, error)
	UnfreezeTeam(ctx context.Context, actor ladderdomain.Actor, teamID uuid.UUID) (ladderdomain.Team, error)

	// --- Challenges ---

	CheckEligibility(ctx context.Context, challengerTeamID, targetTeamID, categoryID uuid.UUID, asOf time.Time) (ladderdomain.Eligibility, error)
	CreateChallenge(ctx context.Context, actor ladderdomain.Actor, challengerTeamID, targetTeamID, categoryID uuid.UUID) (ladderdomain.Challenge, error)
	AcceptChallenge(ctx context.Context, actor ladderdomain.Actor, challengeID uuid.UUID) (ladderdomain.Challenge, error)
	DeclineChallenge(ctx context.Context, actor ladderdomain.Actor, challengeID uuid.UUID, reason string) (ladderdomain.Challenge, error)
	CancelChallenge(ctx context.Context, actor ladderdomain.Actor, challengeID uuid.UUID) (ladderdomain.Challenge, error)
	ListChallenges(ctx context.Context, teamID uuid.UUID, status *ladderdomain.ChallengeStatus) ([]ladderdomain.Challenge, error)
	// RecordMatchResult stores the match of an accepted challenge and applies it to the
	// rankings. Reporting the same challenge twice returns the stored match.
	RecordMatchResult(ctx context.Context, actor ladderdomain.Actor, in MatchResultInput) (MatchRecord, error)
	// ExpireOverdueChallenges moves pending challenges past their expiry to expired.
	ExpireOverdueChallenges(ctx context.Context, asOf time.Time) (int, error)

	// --- Join requests ---

	CreateJoinRequest(ctx context.Context, actor ladderdomain.Actor, teamID, categoryID uuid.UUID, message string) (ladderdomain.JoinRequest, error)
	ApproveJoinRequest(ctx context.Context, actor ladderdomain.Actor, requestID uuid.UUID, notes string) (ladderdomain.Ranking, error)
	RejectJoinRequest(ctx context.Context, actor ladderdomain.Actor, requestID uuid.UUID, notes string) (ladderdomain.JoinRequest, error)
	ListJoinRequests(ctx context.Context, categoryID uuid.UUID, status *ladderdomain.JoinRequestStatus) ([]ladderdomain.JoinRequest, error)

	// --- Audit ---

	ListAuditEntries(ctx context.Context, actor ladderdomain.Actor, filter ladderdomain.AuditFilter) ([]ladderdomain.AuditEntry, error)
}

type CreateCategoryInput struct {
	LadderID       uuid.UUID
	Name           string
	ChallengeRange int
	EntryFeeCents  *int64
}

type RegisterTeamInput struct {
	Name          string
	CaptainUserID string
	PartnerUserID *string
	PartnerName   *string
}

type MatchResultInput struct {
	ChallengeID  uuid.UUID
	WinnerTeamID uuid.UUID
	WinnerScore  int
	LoserScore   int
	// PlayedAt defaults to the time the result is recorded.
	PlayedAt *time.Time
}

// MatchRecord is the stored match and, when it was applied by this call, the outcome.
type MatchRecord struct {
	Match           ladderdomain.Match
	Outcome         *ladderdomain.MatchOutcome
	AlreadyRecorded bool
}
