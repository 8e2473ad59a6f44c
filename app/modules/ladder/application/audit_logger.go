package ladderservice

import (
	"context"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	ladderdb "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/infrastructure/repositories"
	ladderutil "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/utils"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AuditRecord describes one admin-triggered mutation.
type AuditRecord struct {
	Action     ladderdomain.AuditAction
	TeamID     *uuid.UUID
	CategoryID *uuid.UUID
	OldValues  map[string]any
	NewValues  map[string]any
	Notes      string
}

// AuditLogger appends to the audit log on the caller's transaction, so an entry
// commits or rolls back together with the mutation it describes.
type AuditLogger struct {
	repo  ladderdb.Repository
	clock ladderutil.Clock
}

func NewAuditLogger(repo ladderdb.Repository, clock ladderutil.Clock) *AuditLogger {
	return &AuditLogger{repo: repo, clock: clock}
}

func (a *AuditLogger) Record(ctx context.Context, db bun.IDB, actor ladderdomain.Actor, rec AuditRecord) error {
	entry := &ladderdb.AuditEntry{
		AdminUserID: actor.ID,
		Action:      string(rec.Action),
		TeamID:      rec.TeamID,
		CategoryID:  rec.CategoryID,
		OldValues:   rec.OldValues,
		NewValues:   rec.NewValues,
		CreatedAt:   a.clock.Now(),
	}
	if rec.Notes != "" {
		notes := rec.Notes
		entry.Notes = &notes
	}
	return a.repo.InsertAuditEntry(ctx, db, entry)
}

func ptr[T any](v T) *T { return &v }
