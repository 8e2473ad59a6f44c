package ladderdb

import (
	"context"
	"fmt"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

func (r *Impl) InsertAuditEntry(ctx context.Context, db bun.IDB, entry *AuditEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(entry).Returning("created_at").Exec(ctx); err != nil {
		return classify("audit.InsertAuditEntry", err)
	}
	return nil
}

func (r *Impl) ListAuditEntries(ctx context.Context, db bun.IDB, filter ladderdomain.AuditFilter) ([]AuditEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	var entries []AuditEntry
	q := db.NewSelect().
		Model(&entries).
		Order("al.created_at DESC").
		Limit(limit)
	if filter.TeamID != nil {
		q = q.Where("al.team_id = ?", *filter.TeamID)
	}
	if filter.CategoryID != nil {
		q = q.Where("al.category_id = ?", *filter.CategoryID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("audit.ListAuditEntries: %w", err)
	}
	return entries, nil
}
