package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/handler"
	"yatube/internal/httputil"
	"yatube/internal/repository"
	"yatube/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Repositories bundles the stores the application runs on.
type Repositories struct {
	Users    repository.UserRepository
	Groups   repository.GroupRepository
	Posts    repository.PostRepository
	Comments repository.CommentRepository
	Follows  repository.FollowRepository
}

// NewRepositories returns the PostgreSQL-backed stores.
func NewRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Users:    repository.NewUserRepository(db),
		Groups:   repository.NewGroupRepository(db),
		Posts:    repository.NewPostRepository(db),
		Comments: repository.NewCommentRepository(db),
		Follows:  repository.NewFollowRepository(db),
	}
}

// Deps is everything NewHandler wires together.
type Deps struct {
	Config    *config.Config
	Repos     Repositories
	PageCache cache.PageCache
	Images    service.ImageUploader // nil disables image uploads
	AccessLog bool
}

// NewHandler builds services, handlers and the router.
func NewHandler(deps Deps) (stdhttp.Handler, error) {
	renderer, err := httputil.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	cfg := deps.Config
	repos := deps.Repos

	// 1. Services
	userService := service.NewUserService(repos.Users)
	authService := service.NewAuthService(cfg)
	feedService := service.NewFeedService(repos.Posts, repos.Groups, repos.Users, repos.Follows, cfg.PostsPerPage)
	postService := service.NewPostService(repos.Posts, repos.Groups, repos.Users, repos.Follows, repos.Comments, deps.Images)
	commentService := service.NewCommentService(repos.Comments, repos.Posts)
	followService := service.NewFollowService(repos.Follows, repos.Users)

	// 2. Handlers and routes
	return NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService, renderer),
		UserHandler:    handler.NewUserHandler(feedService, renderer),
		FollowHandler:  handler.NewFollowHandler(followService, renderer),
		FeedHandler:    handler.NewFeedHandler(feedService, renderer),
		PostHandler:    handler.NewPostHandler(postService, renderer),
		CommentHandler: handler.NewCommentHandler(commentService, postService, renderer),
		Renderer:       renderer,
		Tokens:         authService,
		PageCache:      deps.PageCache,
		PageCacheTTL:   cfg.PageCacheTTL,
		AccessLog:      deps.AccessLog,
	}), nil
}

// Run serves h on the configured port until ctx is cancelled, then drains
// in-flight requests.
func Run(ctx context.Context, cfg *config.Config, h stdhttp.Handler) error {
	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
