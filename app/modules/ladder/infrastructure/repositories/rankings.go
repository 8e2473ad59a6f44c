package ladderdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) AcquireCategoryLock(ctx context.Context, db bun.IDB, categoryID uuid.UUID) error {
	// Use hashtext() for a stable int8 from the category key
	_, err := db.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", "ladder_category:"+categoryID.String()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("rankings.AcquireCategoryLock: %w", err)
	}
	return nil
}

func (r *Impl) MaxRank(ctx context.Context, db bun.IDB, categoryID uuid.UUID) (int, error) {
	var maxRank int
	err := db.NewSelect().
		Model((*Ranking)(nil)).
		ColumnExpr("COALESCE(MAX(r.rank), 0)").
		Where("r.category_id = ?", categoryID).
		Scan(ctx, &maxRank)
	if err != nil {
		return 0, fmt.Errorf("rankings.MaxRank: %w", err)
	}
	return maxRank, nil
}

func (r *Impl) InsertRanking(ctx context.Context, db bun.IDB, ranking *Ranking) error {
	if ranking.ID == uuid.Nil {
		ranking.ID = uuid.New()
	}
	now := time.Now().UTC()
	ranking.CreatedAt = now
	ranking.UpdatedAt = now
	if _, err := db.NewInsert().Model(ranking).Returning("*").Exec(ctx); err != nil {
		return classify("rankings.InsertRanking", err)
	}
	return nil
}

func (r *Impl) GetRanking(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (*Ranking, error) {
	return r.getRanking(ctx, db, teamID, categoryID, false)
}

func (r *Impl) GetRankingForUpdate(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID) (*Ranking, error) {
	return r.getRanking(ctx, db, teamID, categoryID, true)
}

func (r *Impl) getRanking(ctx context.Context, db bun.IDB, teamID, categoryID uuid.UUID, forUpdate bool) (*Ranking, error) {
	ranking := new(Ranking)
	q := db.NewSelect().
		Model(ranking).
		Where("r.team_id = ?", teamID).
		Where("r.category_id = ?", categoryID)
	if forUpdate {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("rankings.GetRanking", err)
	}
	return ranking, nil
}

func (r *Impl) ListRankings(ctx context.Context, db bun.IDB, categoryID uuid.UUID) ([]Ranking, error) {
	var rankings []Ranking
	err := db.NewSelect().
		Model(&rankings).
		Where("r.category_id = ?", categoryID).
		Order("r.rank ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rankings.ListRankings: %w", err)
	}
	return rankings, nil
}

func (r *Impl) ListRankingsByTeam(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]Ranking, error) {
	var rankings []Ranking
	err := db.NewSelect().
		Model(&rankings).
		Where("r.team_id = ?", teamID).
		Order("r.category_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rankings.ListRankingsByTeam: %w", err)
	}
	return rankings, nil
}

func (r *Impl) ListStandings(ctx context.Context, db bun.IDB, categoryID uuid.UUID) ([]StandingRow, error) {
	var rows []StandingRow
	err := db.NewSelect().
		Model(&rows).
		ColumnExpr("r.*").
		ColumnExpr("t.name AS team_name, t.is_frozen, t.frozen_until").
		Join("JOIN ladder_teams AS t ON t.id = r.team_id").
		Where("r.category_id = ?", categoryID).
		Order("r.rank ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("rankings.ListStandings: %w", err)
	}
	return rows, nil
}

// SwapRankValues relies on ladder_rankings_category_rank_key being deferred to commit,
// so the intermediate state of the single UPDATE never trips the unique check.
func (r *Impl) SwapRankValues(ctx context.Context, db bun.IDB, a, b *Ranking) error {
	res, err := db.NewRaw(`
		UPDATE ladder_rankings
		SET rank = CASE id WHEN ? THEN ?::int WHEN ? THEN ?::int END,
		    updated_at = ?
		WHERE id IN (?, ?)`,
		a.ID, b.Rank, b.ID, a.Rank, time.Now().UTC(), a.ID, b.ID,
	).Exec(ctx)
	if err != nil {
		return classify("rankings.SwapRankValues", err)
	}
	if n, _ := res.RowsAffected(); n != 2 {
		return fmt.Errorf("rankings.SwapRankValues: %w: updated %d rows", ErrNotFound, n)
	}
	a.Rank, b.Rank = b.Rank, a.Rank
	return nil
}

func (r *Impl) UpdateRanking(ctx context.Context, db bun.IDB, ranking *Ranking) error {
	ranking.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(ranking).
		Column("rank", "points", "wins", "losses", "streak", "last_match_at", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return classify("rankings.UpdateRanking", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) DeleteRanking(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := db.NewDelete().Model((*Ranking)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return classify("rankings.DeleteRanking", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) CloseRankGap(ctx context.Context, db bun.IDB, categoryID uuid.UUID, removedRank int) (int64, error) {
	res, err := db.NewUpdate().
		Model((*Ranking)(nil)).
		Set("rank = rank - 1").
		Set("updated_at = ?", time.Now().UTC()).
		Where("category_id = ?", categoryID).
		Where("rank > ?", removedRank).
		Exec(ctx)
	if err != nil {
		return 0, classify("rankings.CloseRankGap", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
