package httputil

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; nothing left but to log it
			log.Printf("[ERROR] WriteJSON: %v", err)
		}
	}
}

// Redirect sends a 302 to target. Every successful form submission ends here
// so a browser refresh never replays the write.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}

// LoginURL is the login page that returns to next after signing in.
func LoginURL(next string) string {
	return "/auth/login/?next=" + url.QueryEscape(next)
}

// SafeNext returns next when it is a local path, otherwise "/".
// Browsers read a backslash as a slash, so "/\host" counts as another host.
func SafeNext(next string) string {
	if next == "" || next[0] != '/' || strings.ContainsRune(next, '\\') {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || (len(next) > 1 && next[1] == '/') {
		return "/"
	}
	return next
}
