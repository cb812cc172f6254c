package handler

import (
	"errors"
	"net/http"
	"strings"

	"yatube/internal/form"
	"yatube/internal/httputil"
	"yatube/internal/model"
	"yatube/internal/service"
	"yatube/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
	pages
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService, renderer *httputil.Renderer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		pages:       pages{renderer: renderer},
	}
}

type signupView struct {
	Form   model.SignupForm
	Errors form.Errors
}

type loginView struct {
	Username string
	Next     string
	Errors   form.Errors
}

// SignupPage handles GET /auth/signup/
func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, httputil.PageSignup, signupView{})
}

// Signup handles POST /auth/signup/
// Creates the account, signs the user in and redirects to the feed.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusOK, httputil.PageSignup, signupView{Errors: form.Errors{"__all__": "The form could not be read."}})
		return
	}

	f := model.SignupForm{
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Password:  r.PostFormValue("password"),
	}

	user, err := h.userService.Register(r.Context(), f)
	if err != nil {
		var errs form.Errors
		switch {
		case errors.As(err, &errs):
		case errors.Is(err, model.ErrUsernameExists):
			errs = form.Errors{"username": "A user with that username already exists."}
		default:
			h.serverError(w, r, "Signup", err)
			return
		}
		f.Password = ""
		h.render(w, r, http.StatusOK, httputil.PageSignup, signupView{Form: f, Errors: errs})
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		h.serverError(w, r, "Signup", err)
		return
	}
	httputil.Redirect(w, r, "/")
}

// LoginPage handles GET /auth/login/
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, httputil.PageLogin, loginView{Next: r.URL.Query().Get("next")})
}

// Login handles POST /auth/login/
// Sets the session cookie and returns to next, or the feed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusOK, httputil.PageLogin, loginView{Errors: form.Errors{"__all__": "The form could not be read."}})
		return
	}

	f := model.LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	next := r.PostFormValue("next")

	user, err := h.userService.Login(r.Context(), f)
	if err != nil {
		var errs form.Errors
		switch {
		case errors.As(err, &errs):
		case errors.Is(err, model.ErrInvalidCredentials):
			errs = form.Errors{"__all__": "Please enter a correct username and password."}
		default:
			h.serverError(w, r, "Login", err)
			return
		}
		h.render(w, r, http.StatusOK, httputil.PageLogin, loginView{Username: f.Username, Next: next, Errors: errs})
		return
	}

	if err := h.startSession(w, r, user); err != nil {
		h.serverError(w, r, "Login", err)
		return
	}
	httputil.Redirect(w, r, httputil.SafeNext(next))
}

// Logout handles GET|POST /auth/logout/
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.Redirect(w, r, "/")
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User) error {
	token, err := h.authService.IssueToken(user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authService.SessionMaxAge().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
