package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"yatube/internal/model"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, g *model.Group) error {
	query := `
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.GetContext(ctx, &g.ID, query, g.Title, g.Slug, g.Description); err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	var g model.Group
	err := r.db.GetContext(ctx, &g, `SELECT id, title, slug, description FROM groups WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var g model.Group
	err := r.db.GetContext(ctx, &g, `SELECT id, title, slug, description FROM groups WHERE slug = $1`, slug)
	if err == sql.ErrNoRows {
		return nil, model.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get group by slug: %w", err)
	}
	return &g, nil
}

// List returns all groups ordered by title, for the post form's group choices.
func (r *groupRepository) List(ctx context.Context) ([]model.Group, error) {
	groups := []model.Group{}
	err := r.db.SelectContext(ctx, &groups, `SELECT id, title, slug, description FROM groups ORDER BY title, id`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
