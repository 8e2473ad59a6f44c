package ladderdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) InsertMatch(ctx context.Context, db bun.IDB, match *Match) error {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(match).Exec(ctx); err != nil {
		return classify("matches.InsertMatch", err)
	}
	return nil
}

func (r *Impl) GetMatchByChallenge(ctx context.Context, db bun.IDB, challengeID uuid.UUID) (*Match, error) {
	match := new(Match)
	err := db.NewSelect().Model(match).Where("m.challenge_id = ?", challengeID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("matches.GetMatchByChallenge: %w", err)
	}
	return match, nil
}
