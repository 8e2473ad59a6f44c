package ladderservice

import (
	"context"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Ladder Repo
// ------------------------

// FakeLadderRepo provides a programmable stub for the ladderdb.Repository interface.
// Lookups default to ErrNotFound and writes to success.
type FakeLadderRepo struct {
	trace []string

	InsertLadderFunc            func(ctx context.Context, db bun.IDB, ladder *ladderdb.Ladder) error
	GetLadderFunc               func(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Ladder, error)
	InsertCategoryFunc          func(ctx context.Context, db bun.IDB, category *ladderdb.Category) error
	GetCategoryFunc             func(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Category, error)
	ListCategoriesFunc          func(ctx context.Context, db bun.IDB, ladderID uuid.UUID) ([]ladderdb.Category, error)
	InsertTeamFunc              func(ctx context.Context, db bun.IDB, team *ladderdb.Team) error
	GetTeamFunc                 func(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Team, error)
	GetTeamForUpdateFunc        func(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Team, error)
	UpdateTeamFreezeFunc        func(ctx context.Context, db bun.IDB, teamID uuid.UUID, w ladderdomain.FreezeWindow) error
	DeleteTeamFunc              func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	AcquireCategoryLockFunc     func(ctx context.Context, db bun.IDB, categoryID uuid.UUID) error
	MaxRankFunc                 func(ctx context.Context, db bun.IDB, categoryID uuid.UUID) (int, error)
	InsertRankingFunc           func(ctx context.Context, db bun.IDB, ranking *ladderdb.Ranking) error
	GetRankingFunc              func(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (*ladderdb.Ranking, error)
	GetRankingForUpdateFunc     func(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (*ladderdb.Ranking, error)
	ListRankingsFunc            func(ctx context.Context, db bun.IDB, categoryID uuid.UUID) ([]ladderdb.Ranking, error)
	ListRankingsByTeamFunc      func(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]ladderdb.Ranking, error)
	ListStandingsFunc           func(ctx context.Context, db bun.IDB, categoryID uuid.UUID) ([]ladderdb.StandingRow, error)
	SwapRankValuesFunc          func(ctx context.Context, db bun.IDB, a, b *ladderdb.Ranking) error
	UpdateRankingFunc           func(ctx context.Context, db bun.IDB, ranking *ladderdb.Ranking) error
	DeleteRankingFunc           func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	CloseRankGapFunc            func(ctx context.Context, db bun.IDB, categoryID uuid.UUID, removedRank int) (int64, error)
	InsertChallengeFunc         func(ctx context.Context, db bun.IDB, challenge *ladderdb.Challenge) error
	GetChallengeFunc            func(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Challenge, error)
	GetChallengeForUpdateFunc   func(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Challenge, error)
	HasPendingChallengeFunc     func(ctx context.Context, db bun.IDB, challengerID, challengedID uuid.UUID) (bool, error)
	ResolveChallengeFunc        func(ctx context.Context, db bun.IDB, challenge *ladderdb.Challenge) error
	ListChallengesByTeamFunc    func(ctx context.Context, db bun.IDB, teamID uuid.UUID, status *ladderdomain.ChallengeStatus) ([]ladderdb.Challenge, error)
	ExpireOverdueChallengesFunc func(ctx context.Context, db bun.IDB, asOf time.Time) ([]ladderdb.Challenge, error)
	InsertJoinRequestFunc       func(ctx context.Context, db bun.IDB, req *ladderdb.JoinRequest) error
	GetJoinRequestForUpdateFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.JoinRequest, error)
	ResolveJoinRequestFunc      func(ctx context.Context, db bun.IDB, req *ladderdb.JoinRequest) error
	ListJoinRequestsFunc        func(ctx context.Context, db bun.IDB, categoryID uuid.UUID, status *ladderdomain.JoinRequestStatus) ([]ladderdb.JoinRequest, error)
	InsertAuditEntryFunc        func(ctx context.Context, db bun.IDB, entry *ladderdb.AuditEntry) error
	ListAuditEntriesFunc        func(ctx context.Context, db bun.IDB, filter ladderdomain.AuditFilter) ([]ladderdb.AuditEntry, error)
	InsertMatchFunc             func(ctx context.Context, db bun.IDB, match *ladderdb.Match) error
	GetMatchByChallengeFunc     func(ctx context.Context, db bun.IDB, challengeID uuid.UUID) (*ladderdb.Match, error)
}

func NewFakeLadderRepo() *FakeLadderRepo {
	return &FakeLadderRepo{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeLadderRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Called reports whether step appears in the trace.
func (f *FakeLadderRepo) Called(step string) bool {
	for _, s := range f.trace {
		if s == step {
			return true
		}
	}
	return false
}

func (f *FakeLadderRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeLadderRepo) InsertLadder(ctx context.Context, db bun.IDB, ladder *ladderdb.Ladder) error {
	f.record("InsertLadder")
	if f.InsertLadderFunc != nil {
		return f.InsertLadderFunc(ctx, db, ladder)
	}
	return nil
}

func (f *FakeLadderRepo) GetLadder(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Ladder, error) {
	f.record("GetLadder")
	if f.GetLadderFunc != nil {
		return f.GetLadderFunc(ctx, db, id)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) InsertCategory(ctx context.Context, db bun.IDB, category *ladderdb.Category) error {
	f.record("InsertCategory")
	if f.InsertCategoryFunc != nil {
		return f.InsertCategoryFunc(ctx, db, category)
	}
	return nil
}

func (f *FakeLadderRepo) GetCategory(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Category, error) {
	f.record("GetCategory")
	if f.GetCategoryFunc != nil {
		return f.GetCategoryFunc(ctx, db, id)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) ListCategories(ctx context.Context, db bun.IDB, ladderID uuid.UUID) ([]ladderdb.Category, error) {
	f.record("ListCategories")
	if f.ListCategoriesFunc != nil {
		return f.ListCategoriesFunc(ctx, db, ladderID)
	}
	return nil, nil
}

func (f *FakeLadderRepo) InsertTeam(ctx context.Context, db bun.IDB, team *ladderdb.Team) error {
	f.record("InsertTeam")
	if f.InsertTeamFunc != nil {
		return f.InsertTeamFunc(ctx, db, team)
	}
	return nil
}

func (f *FakeLadderRepo) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Team, error) {
	f.record("GetTeam")
	if f.GetTeamFunc != nil {
		return f.GetTeamFunc(ctx, db, id)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) GetTeamForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Team, error) {
	f.record("GetTeamForUpdate")
	if f.GetTeamForUpdateFunc != nil {
		return f.GetTeamForUpdateFunc(ctx, db, id)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) UpdateTeamFreeze(ctx context.Context, db bun.IDB, teamID uuid.UUID, w ladderdomain.FreezeWindow) error {
	f.record("UpdateTeamFreeze")
	if f.UpdateTeamFreezeFunc != nil {
		return f.UpdateTeamFreezeFunc(ctx, db, teamID, w)
	}
	return nil
}

func (f *FakeLadderRepo) DeleteTeam(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteTeam")
	if f.DeleteTeamFunc != nil {
		return f.DeleteTeamFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeLadderRepo) AcquireCategoryLock(ctx context.Context, db bun.IDB, categoryID uuid.UUID) error {
	f.record("AcquireCategoryLock")
	if f.AcquireCategoryLockFunc != nil {
		return f.AcquireCategoryLockFunc(ctx, db, categoryID)
	}
	return nil
}

func (f *FakeLadderRepo) MaxRank(ctx context.Context, db bun.IDB, categoryID uuid.UUID) (int, error) {
	f.record("MaxRank")
	if f.MaxRankFunc != nil {
		return f.MaxRankFunc(ctx, db, categoryID)
	}
	return 0, nil
}

func (f *FakeLadderRepo) InsertRanking(ctx context.Context, db bun.IDB, ranking *ladderdb.Ranking) error {
	f.record("InsertRanking")
	if f.InsertRankingFunc != nil {
		return f.InsertRankingFunc(ctx, db, ranking)
	}
	return nil
}

func (f *FakeLadderRepo) GetRanking(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (*ladderdb.Ranking, error) {
	f.record("GetRanking")
	if f.GetRankingFunc != nil {
		return f.GetRankingFunc(ctx, db, teamID, categoryID)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) GetRankingForUpdate(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (*ladderdb.Ranking, error) {
	f.record("GetRankingForUpdate")
	if f.GetRankingForUpdateFunc != nil {
		return f.GetRankingForUpdateFunc(ctx, db, teamID, categoryID)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) ListRankings(ctx context.Context, db bun.IDB, categoryID uuid.UUID) ([]ladderdb.Ranking, error) {
	f.record("ListRankings")
	if f.ListRankingsFunc != nil {
		return f.ListRankingsFunc(ctx, db, categoryID)
	}
	return nil, nil
}

func (f *FakeLadderRepo) ListRankingsByTeam(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]ladderdb.Ranking, error) {
	f.record("ListRankingsByTeam")
	if f.ListRankingsByTeamFunc != nil {
		return f.ListRankingsByTeamFunc(ctx, db, teamID)
	}
	return nil, nil
}

func (f *FakeLadderRepo) ListStandings(ctx context.Context, db bun.IDB, categoryID uuid.UUID) ([]ladderdb.StandingRow, error) {
	f.record("ListStandings")
	if f.ListStandingsFunc != nil {
		return f.ListStandingsFunc(ctx, db, categoryID)
	}
	return nil, nil
}

func (f *FakeLadderRepo) SwapRankValues(ctx context.Context, db bun.IDB, a, b *ladderdb.Ranking) error {
	f.record("SwapRankValues")
	if f.SwapRankValuesFunc != nil {
		return f.SwapRankValuesFunc(ctx, db, a, b)
	}
	return nil
}

func (f *FakeLadderRepo) UpdateRanking(ctx context.Context, db bun.IDB, ranking *ladderdb.Ranking) error {
	f.record("UpdateRanking")
	if f.UpdateRankingFunc != nil {
		return f.UpdateRankingFunc(ctx, db, ranking)
	}
	return nil
}

func (f *FakeLadderRepo) DeleteRanking(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteRanking")
	if f.DeleteRankingFunc != nil {
		return f.DeleteRankingFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeLadderRepo) CloseRankGap(ctx context.Context, db bun.IDB, categoryID uuid.UUID, removedRank int) (int64, error) {
	f.record("CloseRankGap")
	if f.CloseRankGapFunc != nil {
		return f.CloseRankGapFunc(ctx, db, categoryID, removedRank)
	}
	return 0, nil
}

func (f *FakeLadderRepo) InsertChallenge(ctx context.Context, db bun.IDB, challenge *ladderdb.Challenge) error {
	f.record("InsertChallenge")
	if f.InsertChallengeFunc != nil {
		return f.InsertChallengeFunc(ctx, db, challenge)
	}
	return nil
}

func (f *FakeLadderRepo) GetChallenge(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Challenge, error) {
	f.record("GetChallenge")
	if f.GetChallengeFunc != nil {
		return f.GetChallengeFunc(ctx, db, id)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) GetChallengeForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.Challenge, error) {
	f.record("GetChallengeForUpdate")
	if f.GetChallengeForUpdateFunc != nil {
		return f.GetChallengeForUpdateFunc(ctx, db, id)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) HasPendingChallenge(ctx context.Context, db bun.IDB, challengerID, challengedID uuid.UUID) (bool, error) {
	f.record("HasPendingChallenge")
	if f.HasPendingChallengeFunc != nil {
		return f.HasPendingChallengeFunc(ctx, db, challengerID, challengedID)
	}
	return false, nil
}

func (f *FakeLadderRepo) ResolveChallenge(ctx context.Context, db bun.IDB, challenge *ladderdb.Challenge) error {
	f.record("ResolveChallenge")
	if f.ResolveChallengeFunc != nil {
		return f.ResolveChallengeFunc(ctx, db, challenge)
	}
	return nil
}

func (f *FakeLadderRepo) ListChallengesByTeam(ctx context.Context, db bun.IDB, teamID uuid.UUID, status *ladderdomain.ChallengeStatus) ([]ladderdb.Challenge, error) {
	f.record("ListChallengesByTeam")
	if f.ListChallengesByTeamFunc != nil {
		return f.ListChallengesByTeamFunc(ctx, db, teamID, status)
	}
	return nil, nil
}

func (f *FakeLadderRepo) ExpireOverdueChallenges(ctx context.Context, db bun.IDB, asOf time.Time) ([]ladderdb.Challenge, error) {
	f.record("ExpireOverdueChallenges")
	if f.ExpireOverdueChallengesFunc != nil {
		return f.ExpireOverdueChallengesFunc(ctx, db, asOf)
	}
	return nil, nil
}

func (f *FakeLadderRepo) InsertJoinRequest(ctx context.Context, db bun.IDB, req *ladderdb.JoinRequest) error {
	f.record("InsertJoinRequest")
	if f.InsertJoinRequestFunc != nil {
		return f.InsertJoinRequestFunc(ctx, db, req)
	}
	return nil
}

func (f *FakeLadderRepo) GetJoinRequestForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*ladderdb.JoinRequest, error) {
	f.record("GetJoinRequestForUpdate")
	if f.GetJoinRequestForUpdateFunc != nil {
		return f.GetJoinRequestForUpdateFunc(ctx, db, id)
	}
	return nil, ladderdb.ErrNotFound
}

func (f *FakeLadderRepo) ResolveJoinRequest(ctx context.Context, db bun.IDB, req *ladderdb.JoinRequest) error {
	f.record("ResolveJoinRequest")
	if f.ResolveJoinRequestFunc != nil {
		return f.ResolveJoinRequestFunc(ctx, db, req)
	}
	return nil
}

func (f *FakeLadderRepo) ListJoinRequests(ctx context.Context, db bun.IDB, categoryID uuid.UUID, status *ladderdomain.JoinRequestStatus) ([]ladderdb.JoinRequest, error) {
	f.record("ListJoinRequests")
	if f.ListJoinRequestsFunc != nil {
		return f.ListJoinRequestsFunc(ctx, db, categoryID, status)
	}
	return nil, nil
}

func (f *FakeLadderRepo) InsertAuditEntry(ctx context.Context, db bun.IDB, entry *ladderdb.AuditEntry) error {
	f.record("InsertAuditEntry")
	if f.InsertAuditEntryFunc != nil {
		return f.InsertAuditEntryFunc(ctx, db, entry)
	}
	return nil
}

func (f *FakeLadderRepo) ListAuditEntries(ctx context.Context, db bun.IDB, filter ladderdomain.AuditFilter) ([]ladderdb.AuditEntry, error) {
	f.record("ListAuditEntries")
	if f.ListAuditEntriesFunc != nil {
		return f.ListAuditEntriesFunc(ctx, db, filter)
	}
	return nil, nil
}

func (f *FakeLadderRepo) InsertMatch(ctx context.Context, db bun.IDB, match *ladderdb.Match) error {
	f.record("InsertMatch")
	if f.InsertMatchFunc != nil {
		return f.InsertMatchFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeLadderRepo) GetMatchByChallenge(ctx context.Context, db bun.IDB, challengeID uuid.UUID) (*ladderdb.Match, error) {
	f.record("GetMatchByChallenge")
	if f.GetMatchByChallengeFunc != nil {
		return f.GetMatchByChallengeFunc(ctx, db, challengeID)
	}
	return nil, ladderdb.ErrNotFound
}

// Ensure the fake actually satisfies the interface
var _ ladderdb.Repository = (*FakeLadderRepo)(nil)
