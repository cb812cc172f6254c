package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"yatube/internal/model"
)

// postSelect joins the author and group columns every listing needs.
const postSelect = `
	SELECT p.id, p.author_id, p.group_id, p.text, p.image_url, p.image_key, p.created_at,
	       u.username AS author_username, u.first_name AS author_first_name, u.last_name AS author_last_name,
	       g.slug AS group_slug, g.title AS group_title
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
`

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post and returns it with joined author/group fields.
func (r *postRepository) Create(ctx context.Context, authorID int64, in model.PostInput) (*model.Post, error) {
	query := `
		INSERT INTO posts (author_id, group_id, text, image_url, image_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.GetContext(ctx, &id, query, authorID, in.GroupID, in.Text, in.ImageURL, in.ImageKey)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return r.getByID(ctx, id)
}

// Update overwrites text and group. A nil image in the input keeps the current one.
func (r *postRepository) Update(ctx context.Context, postID int64, in model.PostInput) (*model.Post, error) {
	query := `
		UPDATE posts
		SET text = $1,
		    group_id = $2,
		    image_url = COALESCE($3, image_url),
		    image_key = COALESCE($4, image_key)
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query, in.Text, in.GroupID, in.ImageURL, in.ImageKey, postID)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, model.ErrPostNotFound
	}

	return r.getByID(ctx, postID)
}

// GetByAuthor retrieves a post by id, scoped to the author's username.
func (r *postRepository) GetByAuthor(ctx context.Context, username string, postID int64) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post, postSelect+` WHERE p.id = $1 AND u.username = $2`, postID, username)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (r *postRepository) getByID(ctx context.Context, postID int64) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post, postSelect+` WHERE p.id = $1`, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// Count returns how many posts match the filter.
func (r *postRepository) Count(ctx context.Context, filter model.PostFilter) (int, error) {
	where, args := buildPostFilter(filter)

	var count int
	query := `SELECT COUNT(*) FROM posts p` + where
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// List returns one page of matching posts, newest first.
// id breaks ties between posts created in the same instant so pages never overlap.
func (r *postRepository) List(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error) {
	where, args := buildPostFilter(filter)

	args = append(args, limit, offset)
	query := postSelect + where + fmt.Sprintf(`
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d OFFSET $%d
	`, len(args)-1, len(args))

	posts := []model.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// buildPostFilter renders the WHERE clause for a filter against alias p.
func buildPostFilter(filter model.PostFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conds = append(conds, fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conds = append(conds, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filter.FollowerID != nil {
		args = append(args, *filter.FollowerID)
		conds = append(conds, fmt.Sprintf("p.author_id IN (SELECT author_id FROM follows WHERE user_id = $%d)", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
