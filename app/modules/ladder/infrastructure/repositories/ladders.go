package ladderdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (r *Impl) InsertLadder(ctx context.Context, db bun.IDB, ladder *Ladder) error {
	if ladder.ID == uuid.Nil {
		ladder.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(ladder).Returning("*").Exec(ctx); err != nil {
		return classify("ladders.InsertLadder", err)
	}
	return nil
}

func (r *Impl) GetLadder(ctx context.Context, db bun.IDB, id uuid.UUID) (*Ladder, error) {
	ladder := new(Ladder)
	err := db.NewSelect().Model(ladder).Where("l.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ladders.GetLadder: %w", err)
	}
	return ladder, nil
}

func (r *Impl) InsertCategory(ctx context.Context, db bun.IDB, category *Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if _, err := db.NewInsert().Model(category).Returning("*").Exec(ctx); err != nil {
		return classify("ladders.InsertCategory", err)
	}
	return nil
}

func (r *Impl) GetCategory(ctx context.Context, db bun.IDB, id uuid.UUID) (*Category, error) {
	category := new(Category)
	err := db.NewSelect().Model(category).Where("c.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ladders.GetCategory: %w", err)
	}
	return category, nil
}

func (r *Impl) ListCategories(ctx context.Context, db bun.IDB, ladderID uuid.UUID) ([]Category, error) {
	var categories []Category
	err := db.NewSelect().
		Model(&categories).
		Where("c.ladder_id = ?", ladderID).
		Order("c.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ladders.ListCategories: %w", err)
	}
	return categories, nil
}
