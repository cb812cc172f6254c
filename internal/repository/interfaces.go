package repository

import (
	"context"

	"yatube/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Stats counts the user's posts, followers and followees.
	Stats(ctx context.Context, userID int64) (model.AuthorStats, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
}

type PostRepository interface {
	Create(ctx context.Context, authorID int64, in model.PostInput) (*model.Post, error)
	// Update rewrites text and group; the image is replaced only when in carries one.
	Update(ctx context.Context, postID int64, in model.PostInput) (*model.Post, error)
	// GetByAuthor fetches a post only if it belongs to the given username.
	GetByAuthor(ctx context.Context, username string, postID int64) (*model.Post, error)
	Count(ctx context.Context, filter model.PostFilter) (int, error)
	// List returns posts newest first.
	List(ctx context.Context, filter model.PostFilter, limit, offset int) ([]model.Post, error)
}

type CommentRepository interface {
	Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error)
	// ListByPost returns comments oldest first.
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
}

type FollowRepository interface {
	// Create inserts the edge unless it exists; inserted reports which happened.
	Create(ctx context.Context, userID, authorID int64) (inserted bool, err error)
	// Delete removes the edge if present; removing a missing edge is not an error.
	// deleted reports whether an edge was actually removed.
	Delete(ctx context.Context, userID, authorID int64) (deleted bool, err error)
	Exists(ctx context.Context, userID, authorID int64) (bool, error)
}
