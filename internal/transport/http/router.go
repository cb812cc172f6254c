package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"yatube/internal/cache"
	"yatube/internal/handler"
	"yatube/internal/httputil"
	authmw "yatube/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	FollowHandler  *handler.FollowHandler
	FeedHandler    *handler.FeedHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	Renderer       *httputil.Renderer
	Tokens         authmw.TokenParser
	PageCache      cache.PageCache
	PageCacheTTL   time.Duration
	AccessLog      bool
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(authmw.Recoverer(cfg.Renderer))
	r.Use(authmw.Authenticate(cfg.Tokens))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		session, _ := authmw.GetSessionFromContext(req.Context())
		cfg.Renderer.NotFound(w, req, session)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.With(authmw.CachePage(cfg.PageCache, cfg.PageCacheTTL)).Get("/", cfg.FeedHandler.Index)
	r.Get("/group/{slug}/", cfg.FeedHandler.Group)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/signup/", cfg.AuthHandler.SignupPage)
		r.Post("/signup/", cfg.AuthHandler.Signup)
		r.Get("/login/", cfg.AuthHandler.LoginPage)
		r.Post("/login/", cfg.AuthHandler.Login)
		r.Get("/logout/", cfg.AuthHandler.Logout)
		r.Post("/logout/", cfg.AuthHandler.Logout)
	})

	r.Get("/{username}/", cfg.UserHandler.Profile)
	r.Get("/{username}/{post_id}/", cfg.PostHandler.Detail)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth)

		r.Get("/new", cfg.PostHandler.New)
		r.Post("/new", cfg.PostHandler.Create)
		r.Get("/follow/", cfg.FeedHandler.Follow)

		r.Post("/{username}/{post_id}/comment", cfg.CommentHandler.Create)
		r.Get("/{username}/{post_id}/edit", cfg.PostHandler.Edit)
		r.Post("/{username}/{post_id}/edit", cfg.PostHandler.Update)

		r.Get("/{username}/follow", cfg.FollowHandler.Follow)
		r.Post("/{username}/follow", cfg.FollowHandler.Follow)
		r.Get("/{username}/unfollow", cfg.FollowHandler.Unfollow)
		r.Post("/{username}/unfollow", cfg.FollowHandler.Unfollow)
	})

	return r
}
