package middleware

import (
	"context"
	"net/http"
	"strings"

	"yatube/internal/httputil"
	"yatube/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SessionKey is the context key for the authenticated requester
	SessionKey contextKey = "session"

	// SessionCookie holds the signed session token in browsers
	SessionCookie = "session"
)

// TokenParser verifies session tokens.
type TokenParser interface {
	ParseToken(token string) (*model.Session, error)
}

// Authenticate attaches the session to the request context when a valid
// token is present. Requests without one continue anonymously.
// Checks Authorization header first, then falls back to the session cookie.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := tokens.ParseToken(tokenString)
			if err != nil {
				// A stale cookie is treated as logged out
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth redirects anonymous requests to the login page, which returns
// to the requested path afterwards.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			httputil.Redirect(w, r, httputil.LoginURL(r.URL.RequestURI()))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func tokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	cookie, err := r.Cookie(SessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}

// GetSessionFromContext extracts the session from the request context
// Returns the session and true if found, or nil and false if not found
func GetSessionFromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(SessionKey).(*model.Session)
	return session, ok && session != nil
}

// WithSession returns ctx carrying session.
func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}
