package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"yatube/internal/httputil"
)

// Recoverer turns a panic into the 500 page.
func Recoverer(pages *httputil.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Printf("[ERROR] panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())

				session, _ := GetSessionFromContext(r.Context())
				pages.InternalError(w, r, session)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
