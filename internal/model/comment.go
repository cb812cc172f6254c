package model

import "time"

// Comment represents a comment on a post.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	AuthorUsername string `db:"author_username" json:"author_username"`
}

// CommentForm is the submitted comment form.
type CommentForm struct {
	Text string `form:"text" validate:"required,notblank"`
}
