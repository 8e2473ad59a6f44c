package ladderdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) InsertTeam(ctx context.Context, db bun.IDB, team *Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(team).Returning("*").Exec(ctx); err != nil {
		return classify("teams.InsertTeam", err)
	}
	return nil
}

func (r *Impl) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*Team, error) {
	return r.getTeam(ctx, db, id, false)
}

// GetTeamForUpdate row-locks the team. Rank inserts for it wait on the
// foreign key check until the holder commits.
func (r *Impl) GetTeamForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*Team, error) {
	return r.getTeam(ctx, db, id, true)
}

func (r *Impl) getTeam(ctx context.Context, db bun.IDB, id uuid.UUID, forUpdate bool) (*Team, error) {
	team := new(Team)
	q := db.NewSelect().Model(team).Where("t.id = ?", id)
	if forUpdate {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("teams.GetTeam", err)
	}
	return team, nil
}

func (r *Impl) UpdateTeamFreeze(ctx context.Context, db bun.IDB, teamID uuid.UUID, w ladderdomain.FreezeWindow) error {
	res, err := db.NewUpdate().
		Model((*Team)(nil)).
		Set("is_frozen = ?", w.IsFrozen).
		Set("frozen_until = ?", w.FrozenUntil).
		Set("frozen_reason = ?", w.FrozenReason).
		Set("frozen_by = ?", w.FrozenBy).
		Set("frozen_at = ?", w.FrozenAt).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", teamID).
		Exec(ctx)
	if err != nil {
		return classify("teams.UpdateTeamFreeze", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTeam removes the team; challenges, join requests and rankings cascade.
// Callers re-densify the categories first.
func (r *Impl) DeleteTeam(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := db.NewDelete().Model((*Team)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return classify("teams.DeleteTeam", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
