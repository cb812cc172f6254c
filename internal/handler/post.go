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

type PostHandler struct {
	postService *service.PostService
	pages
}

func NewPostHandler(postService *service.PostService, renderer *httputil.Renderer) *PostHandler {
	return &PostHandler{
		postService: postService,
		pages:       pages{renderer: renderer},
	}
}

// postView is the data of the post detail page.
type postView struct {
	Detail      *model.PostDetail
	CommentText string
	Errors      form.Errors
}

// postFormView is the data of the create/edit form.
type postFormView struct {
	Text     string
	Selected int64
	Groups   []model.Group
	Errors   form.Errors
	Post     *model.Post // nil when creating
	Action   string
}

// Detail handles GET /{username}/{post_id}/
func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDParam(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	detail, err := h.postService.Detail(r.Context(), chi.URLParam(r, "username"), postID, viewerID(r))
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, "Detail", err)
		return
	}

	h.render(w, r, http.StatusOK, httputil.PagePost, postView{Detail: detail})
}

// New handles GET /new
func (h *PostHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, postFormView{Action: "/new"})
}

// Create handles POST /new
// Success redirects to the global feed; an invalid form is shown again.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r)
	view := postFormView{Action: "/new"}

	f, image, errs := parsePostForm(w, r)
	if errs != nil {
		view.Errors = errs
		h.renderForm(w, r, view)
		return
	}
	if image != nil {
		defer image.File.Close()
	}

	_, err := h.postService.Create(r.Context(), session.UserID, f, image)
	if err != nil {
		if errors.As(err, &errs) {
			view.Text, view.Selected, view.Errors = f.Text, selected(f.GroupID), errs
			h.renderForm(w, r, view)
			return
		}
		h.serverError(w, r, "Create", err)
		return
	}

	httputil.Redirect(w, r, "/")
}

// Edit handles GET /{username}/{post_id}/edit
// Only the author sees the form; everyone else is sent to the post.
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r)
	username := chi.URLParam(r, "username")
	postID, ok := postIDParam(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	post, err := h.postService.GetForEdit(r.Context(), session.UserID, username, postID)
	if err != nil {
		h.editFailed(w, r, username, postID, err)
		return
	}

	h.renderForm(w, r, postFormView{
		Text:     post.Text,
		Selected: selected(post.GroupID),
		Post:     post,
		Action:   postURL(username, postID) + "edit",
	})
}

// Update handles POST /{username}/{post_id}/edit
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r)
	username := chi.URLParam(r, "username")
	postID, ok := postIDParam(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	f, image, errs := parsePostForm(w, r)
	if image != nil {
		defer image.File.Close()
	}

	var post *model.Post
	var err error
	if errs == nil {
		post, err = h.postService.Edit(r.Context(), session.UserID, username, postID, f, image)
	} else {
		// The body was unreadable; still refuse non-authors before showing the form
		post, err = h.postService.GetForEdit(r.Context(), session.UserID, username, postID)
		if err == nil {
			err = errs
		}
	}

	if err != nil {
		if errors.As(err, &errs) && post != nil {
			h.renderForm(w, r, postFormView{
				Text:     f.Text,
				Selected: selected(f.GroupID),
				Errors:   errs,
				Post:     post,
				Action:   postURL(username, postID) + "edit",
			})
			return
		}
		h.editFailed(w, r, username, postID, err)
		return
	}

	httputil.Redirect(w, r, postURL(username, postID))
}

func (h *PostHandler) editFailed(w http.ResponseWriter, r *http.Request, username string, postID int64, err error) {
	switch {
	case errors.Is(err, model.ErrNotPostAuthor):
		httputil.Redirect(w, r, postURL(username, postID))
	case errors.Is(err, model.ErrPostNotFound):
		h.notFound(w, r)
	default:
		h.serverError(w, r, "Edit", err)
	}
}

func (h *PostHandler) renderForm(w http.ResponseWriter, r *http.Request, view postFormView) {
	groups, err := h.postService.Groups(r.Context())
	if err != nil {
		h.serverError(w, r, "PostForm", err)
		return
	}
	view.Groups = groups
	h.render(w, r, http.StatusOK, httputil.PagePostForm, view)
}

func selected(groupID *int64) int64 {
	if groupID == nil {
		return 0
	}
	return *groupID
}
