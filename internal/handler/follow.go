package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/service"
)

type FollowHandler struct {
	followService *service.FollowService
	pages
}

func NewFollowHandler(followService *service.FollowService, renderer *httputil.Renderer) *FollowHandler {
	return &FollowHandler{
		followService: followService,
		pages:         pages{renderer: renderer},
	}
}

// Follow handles GET|POST /{username}/follow
// Always lands back on the author's profile.
func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r)
	username := chi.URLParam(r, "username")

	if _, err := h.followService.Follow(r.Context(), session.UserID, username); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			h.notFound(w, r)
			return
		case errors.Is(err, model.ErrCannotFollowSelf):
			log.Printf("[FollowHandler] Ignored self-follow: user=%d", session.UserID)
		default:
			h.serverError(w, r, "Follow", err)
			return
		}
	}

	httputil.Redirect(w, r, profileURL(username))
}

// Unfollow handles GET|POST /{username}/unfollow
func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r)
	username := chi.URLParam(r, "username")

	if _, err := h.followService.Unfollow(r.Context(), session.UserID, username); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "Unfollow", err)
		return
	}

	httputil.Redirect(w, r, profileURL(username))
}
