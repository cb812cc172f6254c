package model

import "errors"

// Group is a named category posts can be filed under.
type Group struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

// Group constraints
const (
	MaxGroupTitleLength       = 200
	MaxGroupDescriptionLength = 1000
)

var ErrGroupNotFound = errors.New("group not found")
