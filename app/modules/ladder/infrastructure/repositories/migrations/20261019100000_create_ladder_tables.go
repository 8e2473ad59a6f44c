package laddermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating ladders, ladder_categories, ladder_teams and ladder_rankings tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS ladders (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name        TEXT NOT NULL,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);

				CREATE TABLE IF NOT EXISTS ladder_categories (
					id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					ladder_id        UUID NOT NULL REFERENCES ladders(id) ON DELETE CASCADE,
					name             TEXT NOT NULL,
					challenge_range  INTEGER NOT NULL CHECK (challenge_range >= 1),
					entry_fee_cents  BIGINT CHECK (entry_fee_cents >= 0),
					created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT ladder_categories_ladder_name_key UNIQUE (ladder_id, name)
				);

				CREATE TABLE IF NOT EXISTS ladder_teams (
					id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name             TEXT NOT NULL,
					captain_user_id  TEXT NOT NULL,
					partner_user_id  TEXT,
					partner_name     TEXT,
					is_frozen        BOOLEAN NOT NULL DEFAULT false,
					frozen_until     TIMESTAMPTZ,
					frozen_reason    TEXT,
					frozen_by        TEXT,
					frozen_at        TIMESTAMPTZ,
					created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_ladder_teams_captain ON ladder_teams(captain_user_id);

				CREATE TABLE IF NOT EXISTS ladder_rankings (
					id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					team_id        UUID NOT NULL REFERENCES ladder_teams(id) ON DELETE CASCADE,
					category_id    UUID NOT NULL REFERENCES ladder_categories(id) ON DELETE CASCADE,
					rank           INTEGER NOT NULL CHECK (rank > 0),
					points         INTEGER NOT NULL DEFAULT 1000,
					wins           INTEGER NOT NULL DEFAULT 0 CHECK (wins >= 0),
					losses         INTEGER NOT NULL DEFAULT 0 CHECK (losses >= 0),
					streak         INTEGER NOT NULL DEFAULT 0,
					last_match_at  TIMESTAMPTZ,
					created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT ladder_rankings_team_category_key UNIQUE (team_id, category_id),
					CONSTRAINT ladder_rankings_category_rank_key UNIQUE (category_id, rank) DEFERRABLE INITIALLY DEFERRED
				);
				CREATE INDEX IF NOT EXISTS idx_ladder_rankings_team ON ladder_rankings(team_id);
			`); err != nil {
				return fmt.Errorf("failed to create ladder tables: %w", err)
			}
			fmt.Println("Ladder tables created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping ladder tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS ladder_rankings;
				DROP TABLE IF EXISTS ladder_teams;
				DROP TABLE IF EXISTS ladder_categories;
				DROP TABLE IF EXISTS ladders;
			`); err != nil {
				return fmt.Errorf("failed to drop ladder tables: %w", err)
			}
			return nil
		})
	})
}
