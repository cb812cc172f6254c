package model

import (
	"errors"
	"time"
)

// Post represents an entry written by an author, optionally filed under a group.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	GroupID   *int64    `db:"group_id" json:"group_id"`
	Text      string    `db:"text" json:"text"`
	ImageURL  *string   `db:"image_url" json:"image_url"`
	ImageKey  *string   `db:"image_key" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not in posts table)
	AuthorUsername string  `db:"author_username" json:"author_username"`
	AuthorFirst    string  `db:"author_first_name" json:"-"`
	AuthorLast     string  `db:"author_last_name" json:"-"`
	GroupSlug      *string `db:"group_slug" json:"group_slug,omitempty"`
	GroupTitle     *string `db:"group_title" json:"group_title,omitempty"`
}

// AuthorName is the display name of the post's author.
func (p Post) AuthorName() string {
	u := User{Username: p.AuthorUsername, FirstName: p.AuthorFirst, LastName: p.AuthorLast}
	return u.FullName()
}

// PostFilter narrows a post listing. Zero value lists every post.
type PostFilter struct {
	GroupID    *int64
	AuthorID   *int64
	FollowerID *int64 // posts whose author is followed by this user
}

// PostForm is the submitted create/edit form.
type PostForm struct {
	Text    string `form:"text" validate:"required,notblank"`
	GroupID *int64 `form:"group"`
}

// PostInput carries a validated form plus an already uploaded image.
type PostInput struct {
	Text     string
	GroupID  *int64
	ImageURL *string
	ImageKey *string
}

// Post errors
var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostAuthor = errors.New("not the author of this post")
)
