package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create relies on the (user_id, author_id) unique constraint, so concurrent
// follow requests cannot produce duplicate edges.
func (r *followRepository) Create(ctx context.Context, userID, authorID int64) (bool, error) {
	query := `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("failed to create follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID int64) (bool, error) {
	query := `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("failed to check follow existence: %w", err)
	}
	return exists, nil
}
