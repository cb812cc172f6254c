package httputil

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"path"
	"time"

	"yatube/internal/model"
)

//go:embed templates
var templateFS embed.FS

// Page template names.
const (
	PageIndex    = "index.html"
	PageGroup    = "group.html"
	PageFollow   = "follow.html"
	PageProfile  = "profile.html"
	PagePost     = "post.html"
	PagePostForm = "post_form.html"
	PageLogin    = "login.html"
	PageSignup   = "signup.html"
	PageNotFound = "misc/404.html"
	PageError    = "misc/500.html"
)

// View is what every page template receives.
type View struct {
	Session *model.Session
	Path    string
	Data    interface{}
}

// Renderer executes the embedded page templates. Each page is parsed together
// with the shared layout and partials.
type Renderer struct {
	pages map[string]*template.Template
}

// followButton is the data of the follow/unfollow partial.
type followButton struct {
	Session   *model.Session
	Author    *model.User
	Following bool
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2 Jan 2006 15:04")
	},
	"followButton": func(session *model.Session, author *model.User, following bool) followButton {
		return followButton{Session: session, Author: author, Following: following}
	},
}

// NewRenderer parses every page under templates/.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}
		name := p[len("templates/"):]
		if name == "base.html" || name == "partials.html" {
			return nil
		}

		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/partials.html",
			p,
		)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render writes the page with status. The page is executed into a buffer
// first so a template failure still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, session *model.Session, data interface{}) {
	tmpl, ok := r.pages[name]
	if !ok {
		log.Printf("[ERROR] Render: unknown page %q", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	view := View{Session: session, Path: req.URL.Path, Data: data}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", view); err != nil {
		log.Printf("[ERROR] Render %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[ERROR] Render %s: write: %v", name, err)
	}
}

// NotFound renders misc/404.html with the requested path.
func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request, session *model.Session) {
	r.Render(w, req, http.StatusNotFound, PageNotFound, session, nil)
}

// InternalError renders misc/500.html.
func (r *Renderer) InternalError(w http.ResponseWriter, req *http.Request, session *model.Session) {
	r.Render(w, req, http.StatusInternalServerError, PageError, session, nil)
}
