package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"yatube/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment.
func (r *commentRepository) Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error) {
	query := `
		WITH inserted AS (
			INSERT INTO comments (post_id, author_id, text)
			VALUES ($1, $2, $3)
			RETURNING id, post_id, author_id, text, created_at
		)
		SELECT i.id, i.post_id, i.author_id, i.text, i.created_at, u.username AS author_username
		FROM inserted i
		JOIN users u ON u.id = i.author_id
	`
	var comment model.Comment
	if err := r.db.GetContext(ctx, &comment, query, postID, authorID, text); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

// ListByPost returns every comment on a post, oldest first.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.text, c.created_at, u.username AS author_username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	comments := []model.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
