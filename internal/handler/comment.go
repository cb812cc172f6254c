package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"yatube/internal/form"
	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
	postService    *service.PostService
	pages
}

func NewCommentHandler(commentService *service.CommentService, postService *service.PostService, renderer *httputil.Renderer) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		postService:    postService,
		pages:          pages{renderer: renderer},
	}
}

// Create handles POST /{username}/{post_id}/comment
// Success redirects to the post; an empty comment re-renders the post page
// with the error.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r)
	username := chi.URLParam(r, "username")
	postID, ok := postIDParam(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		h.renderDetail(w, r, username, postID, "", form.Errors{"text": "The form could not be read."})
		return
	}
	f := model.CommentForm{Text: r.PostFormValue("text")}

	_, err := h.commentService.Create(r.Context(), session.UserID, username, postID, f)
	if err != nil {
		var errs form.Errors
		switch {
		case errors.As(err, &errs):
			h.renderDetail(w, r, username, postID, f.Text, errs)
		case errors.Is(err, model.ErrPostNotFound):
			h.notFound(w, r)
		default:
			h.serverError(w, r, "Comment", err)
		}
		return
	}

	httputil.Redirect(w, r, postURL(username, postID))
}

func (h *CommentHandler) renderDetail(w http.ResponseWriter, r *http.Request, username string, postID int64, text string, errs form.Errors) {
	detail, err := h.postService.Detail(r.Context(), username, postID, viewerID(r))
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "Comment", err)
		return
	}

	h.render(w, r, http.StatusOK, httputil.PagePost, postView{Detail: detail, CommentText: text, Errors: errs})
}
