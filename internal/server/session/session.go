// Package session implements the cookie-backed sign-in state.
//
// The session token is the user's id stored verbatim in a cookie. The
// browser presents it on every request; the server treats a token that
// resolves to an existing user as an authenticated viewer and anything
// else as anonymous.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/windhans/reels/internal/server/models"
)

// CookieName is the cookie carrying the session token.
const CookieName = "userId"

// TTL is how long an issued session cookie stays valid in the browser.
const TTL = 7 * 24 * time.Hour

// Identity is the resolved viewer of a request. A zero Identity is
// anonymous.
type Identity struct {
	User *models.User
}

// Anonymous reports whether the identity does not belong to a signed-in
// user.
func (i Identity) Anonymous() bool { return i.User == nil }

// UserSource loads users by id. *services.UserService satisfies it.
type UserSource interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Manager issues, revokes and resolves session cookies.
type Manager struct {
	users  UserSource
	secure bool
}

func NewManager(users UserSource, secure bool) *Manager {
	return &Manager{users: users, secure: secure}
}

// TokenFromRequest extracts the session token from the request cookie.
// The empty string means no session is presented.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Resolve maps a session token to an Identity. A missing, malformed or
// stale token resolves to the anonymous identity rather than an error:
// the caller decides whether anonymity is acceptable for the operation.
func (m *Manager) Resolve(ctx context.Context, token string) Identity {
	if token == "" {
		return Identity{}
	}
	user, err := m.users.GetByID(ctx, token)
	if err != nil {
		return Identity{}
	}
	return Identity{User: user}
}

// Issue sets the session cookie for the given user id.
func (m *Manager) Issue(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    userID,
		Path:     "/",
		MaxAge:   int(TTL / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Revoke clears the session cookie.
func (m *Manager) Revoke(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
