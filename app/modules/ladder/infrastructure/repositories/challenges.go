package ladderdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) InsertChallenge(ctx context.Context, db bun.IDB, challenge *Challenge) error {
	if challenge.ID == uuid.Nil {
		challenge.ID = uuid.New()
	}
	if challenge.Status == "" {
		challenge.Status = string(ladderdomain.ChallengePending)
	}
	if _, err := db.NewInsert().Model(challenge).Returning("*").Exec(ctx); err != nil {
		return classify("challenges.InsertChallenge", err)
	}
	return nil
}

func (r *Impl) GetChallenge(ctx context.Context, db bun.IDB, id uuid.UUID) (*Challenge, error) {
	return r.getChallenge(ctx, db, id, false)
}

func (r *Impl) GetChallengeForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*Challenge, error) {
	return r.getChallenge(ctx, db, id, true)
}

func (r *Impl) getChallenge(ctx context.Context, db bun.IDB, id uuid.UUID, forUpdate bool) (*Challenge, error) {
	challenge := new(Challenge)
	q := db.NewSelect().Model(challenge).Where("ch.id = ?", id)
	if forUpdate {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("challenges.GetChallenge", err)
	}
	return challenge, nil
}

func (r *Impl) HasPendingChallenge(ctx context.Context, db bun.IDB, challengerID, challengedID uuid.UUID) (bool, error) {
	exists, err := db.NewSelect().
		Model((*Challenge)(nil)).
		Where("ch.challenger_team_id = ?", challengerID).
		Where("ch.challenged_team_id = ?", challengedID).
		Where("ch.status = ?", ladderdomain.ChallengePending).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("challenges.HasPendingChallenge: %w", err)
	}
	return exists, nil
}

func (r *Impl) ResolveChallenge(ctx context.Context, db bun.IDB, challenge *Challenge) error {
	res, err := db.NewUpdate().
		Model((*Challenge)(nil)).
		Set("status = ?", challenge.Status).
		Set("decline_reason = ?", challenge.DeclineReason).
		Set("responded_at = ?", challenge.RespondedAt).
		Set("responded_by = ?", challenge.RespondedBy).
		Where("id = ?", challenge.ID).
		Where("status = ?", ladderdomain.ChallengePending).
		Exec(ctx)
	if err != nil {
		return classify("challenges.ResolveChallenge", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleState
	}
	return nil
}

func (r *Impl) ListChallengesByTeam(ctx context.Context, db bun.IDB, teamID uuid.UUID, status *ladderdomain.ChallengeStatus) ([]Challenge, error) {
	var challenges []Challenge
	q := db.NewSelect().
		Model(&challenges).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("ch.challenger_team_id = ?", teamID).
				WhereOr("ch.challenged_team_id = ?", teamID)
		}).
		Order("ch.created_at DESC")
	if status != nil {
		q = q.Where("ch.status = ?", *status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("challenges.ListChallengesByTeam: %w", err)
	}
	return challenges, nil
}

// ExpireOverdueChallenges moves every pending challenge past its deadline to
// expired. responded_at stays NULL because nobody responded.
func (r *Impl) ExpireOverdueChallenges(ctx context.Context, db bun.IDB, asOf time.Time) ([]Challenge, error) {
	var expired []Challenge
	err := db.NewRaw(`
		UPDATE ladder_challenges
		SET status = ?
		WHERE status = ? AND expires_at < ?
		RETURNING *`,
		ladderdomain.ChallengeExpired, ladderdomain.ChallengePending, asOf.UTC(),
	).Scan(ctx, &expired)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, classify("challenges.ExpireOverdueChallenges", err)
	}
	return expired, nil
}
