package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/transport/http/middleware"
)

// pages renders HTML for the handlers that embed it.
type pages struct {
	renderer *httputil.Renderer
}

func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	p.renderer.Render(w, r, status, name, currentSession(r), data)
}

func (p pages) notFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.NotFound(w, r, currentSession(r))
}

func (p pages) serverError(w http.ResponseWriter, r *http.Request, where string, err error) {
	log.Printf("[ERROR] %s handler: %s %s: %v", where, r.Method, r.URL.Path, err)
	p.renderer.InternalError(w, r, currentSession(r))
}

// currentSession is nil for anonymous requests.
func currentSession(r *http.Request) *model.Session {
	session, _ := middleware.GetSessionFromContext(r.Context())
	return session
}

func viewerID(r *http.Request) *int64 {
	if session := currentSession(r); session != nil {
		id := session.UserID
		return &id
	}
	return nil
}

// postIDParam parses {post_id}; ok=false means the URL cannot name a post.
func postIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "post_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func profileURL(username string) string {
	return "/" + username + "/"
}

func postURL(username string, postID int64) string {
	return "/" + username + "/" + strconv.FormatInt(postID, 10) + "/"
}
