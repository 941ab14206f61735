package httpapi

import (
	"net/http"
	"strings"

	"github.com/windhans/reels/internal/server/session"
)

// pageClass partitions the browsable paths for the route guard.
type pageClass int

const (
	classOpen pageClass = iota
	classProtected
	classAuthOnly
)

// protectedPrefixes are pages that require a session cookie to be
// present. Subpaths inherit the class of their prefix.
var protectedPrefixes = []string{"/feed", "/profile", "/upload"}

// authOnlyPrefixes are pages that signed-in users are bounced away from.
var authOnlyPrefixes = []string{"/login", "/register"}

func matchesPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func classifyPath(path string) pageClass {
	for _, p := range protectedPrefixes {
		if matchesPrefix(path, p) {
			return classProtected
		}
	}
	for _, p := range authOnlyPrefixes {
		if matchesPrefix(path, p) {
			return classAuthOnly
		}
	}
	return classOpen
}

// guardMiddleware redirects browsers between the signed-in and
// signed-out halves of the site. It checks only whether a session
// cookie is present; whether the token actually resolves to a user is
// the concern of the handler behind the guard.
func (s *Server) guardMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.TokenFromRequest(r)
		switch classifyPath(r.URL.Path) {
		case classProtected:
			if token == "" {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
		case classAuthOnly:
			if token != "" {
				http.Redirect(w, r, "/feed", http.StatusFound)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
