package ladderservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RankingStore owns the per-category rank permutation. Every method must run inside
// a transaction: each takes the category advisory lock first, so all rank
// mutations in a category are serialized until commit. The deferred
// (category_id, rank) unique constraint is the backstop that turns any missed
// interleaving into a retryable conflict instead of a duplicate rank.
type RankingStore struct {
	repo ladderdb.Repository
}

func NewRankingStore(repo ladderdb.Repository) *RankingStore {
	return &RankingStore{repo: repo}
}

// InsertAtNextRank appends the team at max(rank)+1 with default stats.
func (rs *RankingStore) InsertAtNextRank(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (ladderdomain.Ranking, error) {
	if err := rs.repo.AcquireCategoryLock(ctx, db, categoryID); err != nil {
		return ladderdomain.Ranking{}, err
	}

	_, err := rs.repo.GetRanking(ctx, db, teamID, categoryID)
	switch {
	case err == nil:
		return ladderdomain.Ranking{}, ladderdomain.AlreadyInCategory("team %s is already ranked in category %s", teamID, categoryID)
	case !errors.Is(err, ladderdb.ErrNotFound):
		return ladderdomain.Ranking{}, err
	}

	maxRank, err := rs.repo.MaxRank(ctx, db, categoryID)
	if err != nil {
		return ladderdomain.Ranking{}, err
	}

	row := &ladderdb.Ranking{
		TeamID:     teamID,
		CategoryID: categoryID,
		Rank:       maxRank + 1,
		Points:     ladderdomain.DefaultPoints,
	}
	if err := rs.repo.InsertRanking(ctx, db, row); err != nil {
		if errors.Is(err, ladderdb.ErrAlreadyRanked) {
			return ladderdomain.Ranking{}, ladderdomain.AlreadyInCategory("team %s is already ranked in category %s", teamID, categoryID)
		}
		return ladderdomain.Ranking{}, notFound(err, "team %s", teamID)
	}
	return row.ToDomain(), nil
}

// SwapRanks exchanges the ranks of two teams in one statement. It returns both
// rankings before and after the swap, in argument order.
func (rs *RankingStore) SwapRanks(ctx context.Context, db bun.IDB, categoryID, teamA, teamB uuid.UUID) (before, after [2]ladderdomain.Ranking, err error) {
	if teamA == teamB {
		return before, after, ladderdomain.Validation("cannot swap a team with itself")
	}
	if err := rs.repo.AcquireCategoryLock(ctx, db, categoryID); err != nil {
		return before, after, err
	}

	a, err := rs.lockRanking(ctx, db, categoryID, teamA)
	if err != nil {
		return before, after, err
	}
	b, err := rs.lockRanking(ctx, db, categoryID, teamB)
	if err != nil {
		return before, after, err
	}

	before = [2]ladderdomain.Ranking{a.ToDomain(), b.ToDomain()}
	if err := rs.repo.SwapRankValues(ctx, db, a, b); err != nil {
		return before, after, err
	}
	after = [2]ladderdomain.Ranking{a.ToDomain(), b.ToDomain()}
	return before, after, nil
}

// ApplyMatchResult updates both rankings' counters, streaks and points, and moves the
// winner into the loser's slot when the winner started below it.
func (rs *RankingStore) ApplyMatchResult(
	ctx context.Context,
	db bun.IDB,
	categoryID, winnerTeamID, loserTeamID uuid.UUID,
	winnerScore, loserScore int,
	playedAt time.Time,
) (ladderdomain.MatchOutcome, error) {
	if winnerTeamID == loserTeamID {
		return ladderdomain.MatchOutcome{}, ladderdomain.Validation("winner and loser must differ")
	}
	if winnerScore < 0 || loserScore < 0 {
		return ladderdomain.MatchOutcome{}, ladderdomain.Validation("scores cannot be negative")
	}
	if winnerScore <= loserScore {
		return ladderdomain.MatchOutcome{}, ladderdomain.Validation("winner score must be greater than loser score")
	}
	if err := rs.repo.AcquireCategoryLock(ctx, db, categoryID); err != nil {
		return ladderdomain.MatchOutcome{}, err
	}

	w, err := rs.lockRanking(ctx, db, categoryID, winnerTeamID)
	if err != nil {
		return ladderdomain.MatchOutcome{}, err
	}
	l, err := rs.lockRanking(ctx, db, categoryID, loserTeamID)
	if err != nil {
		return ladderdomain.MatchOutcome{}, err
	}

	outcome := ladderdomain.ApplyMatch(w.ToDomain(), l.ToDomain(), playedAt)
	if err := rs.repo.UpdateRanking(ctx, db, ladderdb.RankingFromDomain(outcome.Winner)); err != nil {
		return ladderdomain.MatchOutcome{}, err
	}
	if err := rs.repo.UpdateRanking(ctx, db, ladderdb.RankingFromDomain(outcome.Loser)); err != nil {
		return ladderdomain.MatchOutcome{}, err
	}
	return outcome, nil
}

// RemoveFromCategory deletes the ranking and closes the gap it leaves.
func (rs *RankingStore) RemoveFromCategory(ctx context.Context, db bun.IDB, categoryID, teamID uuid.UUID) (ladderdomain.Ranking, error) {
	if err := rs.repo.AcquireCategoryLock(ctx, db, categoryID); err != nil {
		return ladderdomain.Ranking{}, err
	}

	r, err := rs.repo.GetRankingForUpdate(ctx, db, teamID, categoryID)
	if err != nil {
		return ladderdomain.Ranking{}, notFound(err, "team %s has no ranking in category %s", teamID, categoryID)
	}
	if err := rs.repo.DeleteRanking(ctx, db, r.ID); err != nil {
		return ladderdomain.Ranking{}, err
	}
	if _, err := rs.repo.CloseRankGap(ctx, db, categoryID, r.Rank); err != nil {
		return ladderdomain.Ranking{}, err
	}
	return r.ToDomain(), nil
}

// UpdateStats applies an admin correction to a ranking's counters.
func (rs *RankingStore) UpdateStats(ctx context.Context, db bun.IDB, categoryID, teamID uuid.UUID, patch ladderdomain.StatsPatch) (before, after ladderdomain.Ranking, err error) {
	if patch.IsEmpty() {
		return before, after, ladderdomain.Validation("no stats to change")
	}
	if err := rs.repo.AcquireCategoryLock(ctx, db, categoryID); err != nil {
		return before, after, err
	}
	r, err := rs.lockRanking(ctx, db, categoryID, teamID)
	if err != nil {
		return before, after, err
	}

	before = r.ToDomain()
	after, err = ladderdomain.ApplyStatsPatch(before, patch)
	if err != nil {
		return before, after, err
	}
	if err := rs.repo.UpdateRanking(ctx, db, ladderdb.RankingFromDomain(after)); err != nil {
		return before, after, err
	}
	return before, after, nil
}

// lockRanking row-locks a team's ranking in the category. A team ranked only in
// other categories is reported as CategoryMismatch, an unranked team as NotFound.
func (rs *RankingStore) lockRanking(ctx context.Context, db bun.IDB, categoryID, teamID uuid.UUID) (*ladderdb.Ranking, error) {
	r, err := rs.repo.GetRankingForUpdate(ctx, db, teamID, categoryID)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ladderdb.ErrNotFound) {
		return nil, err
	}

	elsewhere, listErr := rs.repo.ListRankingsByTeam(ctx, db, teamID)
	if listErr != nil {
		return nil, fmt.Errorf("check rankings of team %s: %w", teamID, listErr)
	}
	if len(elsewhere) > 0 {
		return nil, ladderdomain.CategoryMismatch("team %s is not ranked in category %s", teamID, categoryID)
	}
	return nil, ladderdomain.NotFound("team %s has no ranking in category %s", teamID, categoryID)
}
