package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/service"
)

type FeedHandler struct {
	feedService *service.FeedService
	pages
}

func NewFeedHandler(feedService *service.FeedService, renderer *httputil.Renderer) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		pages:       pages{renderer: renderer},
	}
}

// Index handles GET /
// Every post, newest first.
//
// Query params:
//   - page: optional, 1-based page number
func (h *FeedHandler) Index(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.Index(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.serverError(w, r, "Index", err)
		return
	}

	h.render(w, r, http.StatusOK, httputil.PageIndex, feed)
}

// Group handles GET /group/{slug}/
func (h *FeedHandler) Group(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.Group(r.Context(), chi.URLParam(r, "slug"), r.URL.Query().Get("page"))
	if err != nil {
		if errors.Is(err, model.ErrGroupNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "Group", err)
		return
	}

	h.render(w, r, http.StatusOK, httputil.PageGroup, feed)
}

// Follow handles GET /follow/
// Posts by the authors the requester follows.
func (h *FeedHandler) Follow(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r)

	feed, err := h.feedService.Following(r.Context(), session.UserID, r.URL.Query().Get("page"))
	if err != nil {
		h.serverError(w, r, "Follow", err)
		return
	}

	h.render(w, r, http.StatusOK, httputil.PageFollow, feed)
}
