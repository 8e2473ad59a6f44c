package laddermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating ladder_audit_log table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			// No foreign keys: entries outlive the teams and categories they describe.
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS ladder_audit_log (
					id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					admin_user_id  TEXT NOT NULL,
					action         TEXT NOT NULL,
					team_id        UUID,
					category_id    UUID,
					old_values     JSONB,
					new_values     JSONB,
					notes          TEXT,
					created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_ladder_audit_log_team ON ladder_audit_log(team_id, created_at DESC);
				CREATE INDEX IF NOT EXISTS idx_ladder_audit_log_category ON ladder_audit_log(category_id, created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create ladder_audit_log: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping ladder_audit_log table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS ladder_audit_log;`); err != nil {
				return fmt.Errorf("failed to drop ladder_audit_log: %w", err)
			}
			return nil
		})
	})
}
