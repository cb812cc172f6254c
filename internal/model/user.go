package model

import (
	"errors"
	"time"
)

// User represents a registered author.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	PasswordHashed string    `db:"password_hashed" json:"-"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// FullName returns "First Last", falling back to the username.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

// AuthorStats holds the counters shown next to an author's posts.
type AuthorStats struct {
	PostsCount     int `db:"posts_count"`
	FollowersCount int `db:"followers_count"`
	FollowingCount int `db:"following_count"`
}

// SignupForm represents the data needed to register a new user
type SignupForm struct {
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Username  string `form:"username" validate:"required,max=150,username"`
	Password  string `form:"password" validate:"required,min=8,max=72"`
}

// LoginForm represents the data needed to log in
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// Session identifies the authenticated requester.
type Session struct {
	UserID   int64
	Username string
}

// ReservedUsernames collide with top-level routes and cannot be registered.
var ReservedUsernames = map[string]struct{}{
	"auth":   {},
	"group":  {},
	"new":    {},
	"follow": {},
	"health": {},
	"static": {},
}

// IsReservedUsername reports whether username is taken by a route.
func IsReservedUsername(username string) bool {
	_, ok := ReservedUsernames[username]
	return ok
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to create a user with a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for session tokens that fail verification
	ErrInvalidToken = errors.New("invalid session token")
)
