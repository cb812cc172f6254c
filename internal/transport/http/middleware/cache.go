package middleware

import (
	"bytes"
	"log"
	"net/http"
	"strconv"
	"time"

	"yatube/internal/cache"
)

// CachePage serves repeated GETs of the same URL from pages for ttl. The key
// includes the viewer so personalised navigation is never shared. Only 200
// responses are stored; nothing invalidates an entry before it expires except
// an explicit Clear.
func CachePage(pages cache.PageCache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := pageKey(r)

			entry, ok, err := pages.Get(r.Context(), key)
			if err != nil {
				log.Printf("[ERROR] CachePage get %s: %v", key, err)
			}
			if ok {
				w.Header().Set("Content-Type", entry.ContentType)
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(entry.Body)
				return
			}

			rec := &capturingWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				return
			}
			entry = cache.Entry{
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}
			if err := pages.Set(r.Context(), key, entry, ttl); err != nil {
				log.Printf("[ERROR] CachePage set %s: %v", key, err)
			}
		})
	}
}

func pageKey(r *http.Request) string {
	viewer := "anon"
	if session, ok := GetSessionFromContext(r.Context()); ok {
		viewer = strconv.FormatInt(session.UserID, 10)
	}
	return viewer + ":" + r.URL.RequestURI()
}

// capturingWriter passes the response through while keeping a copy of it.
type capturingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *capturingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *capturingWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}
