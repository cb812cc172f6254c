package model

import "yatube/internal/pagination"

// FeedPage is one page of posts for the index, group and following feeds.
type FeedPage struct {
	Posts []Post
	Page  pagination.Page
	Group *Group // set for group feeds
}

// ProfilePage is an author's feed plus their counters.
type ProfilePage struct {
	Author    *User
	Stats     AuthorStats
	Following bool
	Posts     []Post
	Page      pagination.Page
}

// PostDetail is a single post with its comments and author context.
type PostDetail struct {
	Post      *Post
	Author    *User
	Stats     AuthorStats
	Following bool
	Comments  []Comment
}
