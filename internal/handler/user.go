package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/service"
)

type UserHandler struct {
	feedService *service.FeedService
	pages
}

func NewUserHandler(feedService *service.FeedService, renderer *httputil.Renderer) *UserHandler {
	return &UserHandler{
		feedService: feedService,
		pages:       pages{renderer: renderer},
	}
}

// Profile handles GET /{username}/
// The author's posts with their counters and the viewer's follow state.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.feedService.Profile(r.Context(), chi.URLParam(r, "username"), viewerID(r), r.URL.Query().Get("page"))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "Profile", err)
		return
	}

	h.render(w, r, http.StatusOK, httputil.PageProfile, profile)
}
