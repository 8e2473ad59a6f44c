package ladderdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) InsertJoinRequest(ctx context.Context, db bun.IDB, req *JoinRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.Status == "" {
		req.Status = string(ladderdomain.JoinRequestPending)
	}
	if _, err := db.NewInsert().Model(req).Returning("*").Exec(ctx); err != nil {
		return classify("joinrequests.InsertJoinRequest", err)
	}
	return nil
}

func (r *Impl) GetJoinRequestForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (*JoinRequest, error) {
	req := new(JoinRequest)
	err := db.NewSelect().Model(req).Where("jr.id = ?", id).For("UPDATE").Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classify("joinrequests.GetJoinRequestForUpdate", err)
	}
	return req, nil
}

func (r *Impl) ResolveJoinRequest(ctx context.Context, db bun.IDB, req *JoinRequest) error {
	res, err := db.NewUpdate().
		Model((*JoinRequest)(nil)).
		Set("status = ?", req.Status).
		Set("admin_notes = ?", req.AdminNotes).
		Set("responded_at = ?", req.RespondedAt).
		Set("responded_by = ?", req.RespondedBy).
		Where("id = ?", req.ID).
		Where("status = ?", ladderdomain.JoinRequestPending).
		Exec(ctx)
	if err != nil {
		return classify("joinrequests.ResolveJoinRequest", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStaleState
	}
	return nil
}

func (r *Impl) ListJoinRequests(ctx context.Context, db bun.IDB, categoryID uuid.UUID, status *ladderdomain.JoinRequestStatus) ([]JoinRequest, error) {
	var reqs []JoinRequest
	q := db.NewSelect().
		Model(&reqs).
		Where("jr.category_id = ?", categoryID).
		Order("jr.created_at ASC")
	if status != nil {
		q = q.Where("jr.status = ?", *status)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("joinrequests.ListJoinRequests: %w", err)
	}
	return reqs, nil
}
