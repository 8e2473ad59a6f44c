package laddermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating ladder_challenges, ladder_join_requests and ladder_matches tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS ladder_challenges (
					id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					challenger_team_id  UUID NOT NULL REFERENCES ladder_teams(id) ON DELETE CASCADE,
					challenged_team_id  UUID NOT NULL REFERENCES ladder_teams(id) ON DELETE CASCADE,
					ladder_category_id  UUID NOT NULL REFERENCES ladder_categories(id) ON DELETE CASCADE,
					status              TEXT NOT NULL DEFAULT 'pending'
						CHECK (status IN ('pending', 'accepted', 'declined', 'expired', 'cancelled')),
					decline_reason      TEXT,
					created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					expires_at          TIMESTAMPTZ NOT NULL,
					responded_at        TIMESTAMPTZ,
					responded_by        TEXT,
					CHECK (challenger_team_id <> challenged_team_id)
				);
				CREATE UNIQUE INDEX IF NOT EXISTS ladder_challenges_pending_pair_idx
					ON ladder_challenges(challenger_team_id, challenged_team_id)
					WHERE status = 'pending';
				CREATE INDEX IF NOT EXISTS idx_ladder_challenges_challenged ON ladder_challenges(challenged_team_id);
				CREATE INDEX IF NOT EXISTS idx_ladder_challenges_pending_expiry
					ON ladder_challenges(expires_at)
					WHERE status = 'pending';

				CREATE TABLE IF NOT EXISTS ladder_join_requests (
					id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					team_id       UUID NOT NULL REFERENCES ladder_teams(id) ON DELETE CASCADE,
					category_id   UUID NOT NULL REFERENCES ladder_categories(id) ON DELETE CASCADE,
					status        TEXT NOT NULL DEFAULT 'pending'
						CHECK (status IN ('pending', 'approved', 'rejected')),
					message       TEXT,
					admin_notes   TEXT,
					created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					responded_at  TIMESTAMPTZ,
					responded_by  TEXT
				);
				CREATE UNIQUE INDEX IF NOT EXISTS ladder_join_requests_pending_idx
					ON ladder_join_requests(team_id, category_id)
					WHERE status = 'pending';
				CREATE INDEX IF NOT EXISTS idx_ladder_join_requests_category ON ladder_join_requests(category_id, status);

				CREATE TABLE IF NOT EXISTS ladder_matches (
					id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					challenge_id    UUID NOT NULL REFERENCES ladder_challenges(id) ON DELETE CASCADE,
					category_id     UUID NOT NULL REFERENCES ladder_categories(id) ON DELETE CASCADE,
					winner_team_id  UUID NOT NULL,
					loser_team_id   UUID NOT NULL,
					winner_score    INTEGER NOT NULL CHECK (winner_score >= 0),
					loser_score     INTEGER NOT NULL CHECK (loser_score >= 0),
					recorded_by     TEXT NOT NULL,
					played_at       TIMESTAMPTZ NOT NULL,
					CONSTRAINT ladder_matches_challenge_key UNIQUE (challenge_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create challenge tables: %w", err)
			}
			fmt.Println("Challenge tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping challenge tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS ladder_matches;
				DROP TABLE IF EXISTS ladder_join_requests;
				DROP TABLE IF EXISTS ladder_challenges;
			`); err != nil {
				return fmt.Errorf("failed to drop challenge tables: %w", err)
			}
			return nil
		})
	})
}
