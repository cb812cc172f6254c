package model

import (
	"errors"
	"time"
)

// Follow is a directed edge: UserID follows AuthorID.
type Follow struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

var ErrCannotFollowSelf = errors.New("cannot follow yourself")
