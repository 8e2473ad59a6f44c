package ladderdb

import (
	"context"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for ladder persistence.
// Every method takes the bun.IDB to run on so the service can compose several
// calls into one transaction.
//
// Error semantics:
//   - ErrNotFound: record does not exist
//   - ErrAlreadyRanked: (team, category) already has a ranking
//   - ErrDuplicatePending: a pending challenge or join request already exists for the pair
//   - ErrMatchRecorded: a result is already stored for the challenge
//   - ErrRankConflict: concurrent writer conflict, safe to retry
//   - ErrStaleState: conditional status update matched no rows
//   - Other errors: infrastructure failures (DB connection, query errors)
type Repository interface {
	// --- Ladders & categories ---

	InsertLadder(ctx context.Context, db bun.IDB, ladder *Ladder) error
	GetLadder(ctx context.Context, db bun.IDB, id uuid.UUID) (*Ladder, error)
	InsertCategory(ctx context.Context, db bun.IDB, category *Category) error
	GetCategory(ctx context.Context, db bun.IDB, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, db bun.IDB, ladderID uuid.UUID) ([]Category, error)

	// --- Teams ---

	InsertTeam(ctx context.Context, db bun.IDB, team *Team) error
	GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*Team, error)
	// GetTeamForUpdate reads the team with SELECT ... FOR UPDATE. Must be called within a transaction.
	GetTeamForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*Team, error)
	// UpdateTeamFreeze overwrites every freeze column. A zero window clears them.
	UpdateTeamFreeze(ctx context.Context, db bun.IDB, teamID uuid.UUID, w ladderdomain.FreezeWindow) error
	DeleteTeam(ctx context.Context, db bun.IDB, id uuid.UUID) error

	// --- Rankings ---

	// AcquireCategoryLock takes a pg_advisory_xact_lock scoped to the category.
	// Must be called within a transaction.
	AcquireCategoryLock(ctx context.Context, db bun.IDB, categoryID uuid.UUID) error
	MaxRank(ctx context.Context, db bun.IDB, categoryID uuid.UUID) (int, error)
	InsertRanking(ctx context.Context, db bun.IDB, ranking *Ranking) error
	GetRanking(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (*Ranking, error)
	// GetRankingForUpdate row-locks the ranking until the transaction ends.
	GetRankingForUpdate(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (*Ranking, error)
	ListRankings(ctx context.Context, db bun.IDB, categoryID uuid.UUID) ([]Ranking, error)
	ListRankingsByTeam(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]Ranking, error)
	ListStandings(ctx context.Context, db bun.IDB, categoryID uuid.UUID) ([]StandingRow, error)
	// SwapRankValues exchanges the rank of two rankings in a single statement.
	SwapRankValues(ctx context.Context, db bun.IDB, a, b *Ranking) error
	// UpdateRanking persists rank and counters of an existing ranking.
	UpdateRanking(ctx context.Context, db bun.IDB, ranking *Ranking) error
	DeleteRanking(ctx context.Context, db bun.IDB, id uuid.UUID) error
	// CloseRankGap decrements every rank above removedRank in the category.
	CloseRankGap(ctx context.Context, db bun.IDB, categoryID uuid.UUID, removedRank int) (int64, error)

	// --- Challenges ---

	InsertChallenge(ctx context.Context, db bun.IDB, challenge *Challenge) error
	GetChallenge(ctx context.Context, db bun.IDB, id uuid.UUID) (*Challenge, error)
	GetChallengeForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*Challenge, error)
	HasPendingChallenge(ctx context.Context, db bun.IDB, challengerID, challengedID uuid.UUID) (bool, error)
	// ResolveChallenge moves a pending challenge to challenge.Status.
	// Returns ErrStaleState if the row is no longer pending.
	ResolveChallenge(ctx context.Context, db bun.IDB, challenge *Challenge) error
	ListChallengesByTeam(ctx context.Context, db bun.IDB, teamID uuid.UUID, status *ladderdomain.ChallengeStatus) ([]Challenge, error)
	// ExpireOverdueChallenges marks every pending challenge whose expiry is before asOf as expired.
	ExpireOverdueChallenges(ctx context.Context, db bun.IDB, asOf time.Time) ([]Challenge, error)

	// --- Join requests ---

	InsertJoinRequest(ctx context.Context, db bun.IDB, req *JoinRequest) error
	GetJoinRequestForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*JoinRequest, error)
	// ResolveJoinRequest moves a pending request to req.Status.
	// Returns ErrStaleState if the row is no longer pending.
	ResolveJoinRequest(ctx context.Context, db bun.IDB, req *JoinRequest) error
	ListJoinRequests(ctx context.Context, db bun.IDB, categoryID uuid.UUID, status *ladderdomain.JoinRequestStatus) ([]JoinRequest, error)

	// --- Audit ---

	InsertAuditEntry(ctx context.Context, db bun.IDB, entry *AuditEntry) error
	ListAuditEntries(ctx context.Context, db bun.IDB, filter ladderdomain.AuditFilter) ([]AuditEntry, error)

	// --- Matches ---

	InsertMatch(ctx context.Context, db bun.IDB, match *Match) error
	GetMatchByChallenge(ctx context.Context, db bun.IDB, challengeID uuid.UUID) (*Match, error)
}

// Impl implements Repository against Postgres.
type Impl struct{}

func NewRepository() Repository {
	return &Impl{}
}

var _ Repository = (*Impl)(nil)
