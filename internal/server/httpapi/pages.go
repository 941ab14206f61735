package httpapi

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/windhans/reels/internal/server/models"
	"github.com/windhans/reels/internal/server/session"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.gohtml"))

type pageData struct {
	Title  string
	Viewer *models.User
	Reels  []*models.FeedReel
}

func (s *Server) renderPage(ctx context.Context, w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(ctx, "render page", "template", name, "error", err.Error())
	}
}

// requireViewer resolves the identity for a guarded page. The guard only
// checks cookie presence, so a stale token can still reach the handler;
// that case is rejected here.
func (s *Server) requireViewer(w http.ResponseWriter, r *http.Request) (session.Identity, bool) {
	viewer := s.identity(r)
	if viewer.Anonymous() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return viewer, false
	}
	return viewer, true
}

func (s *Server) pageHome(w http.ResponseWriter, r *http.Request) {
	if session.TokenFromRequest(r) != "" {
		http.Redirect(w, r, "/feed", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) pageFeed(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.requireViewer(w, r)
	if !ok {
		return
	}
	feed, err := s.reels.Feed(r.Context(), viewer.User.ID, 0)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.renderPage(r.Context(), w, "feed.gohtml", pageData{Title: "Feed", Viewer: viewer.User, Reels: feed})
}

func (s *Server) pageProfile(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.requireViewer(w, r)
	if !ok {
		return
	}
	own, err := s.reels.ListByOwner(r.Context(), viewer.User.ID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	s.renderPage(r.Context(), w, "profile.gohtml", pageData{Title: "Profile", Viewer: viewer.User, Reels: own})
}

func (s *Server) pageUpload(w http.ResponseWriter, r *http.Request) {
	viewer, ok := s.requireViewer(w, r)
	if !ok {
		return
	}
	s.renderPage(r.Context(), w, "upload.gohtml", pageData{Title: "Upload", Viewer: viewer.User})
}

func (s *Server) pageLogin(w http.ResponseWriter, r *http.Request) {
	s.renderPage(r.Context(), w, "login.gohtml", pageData{Title: "Log in"})
}

func (s *Server) pageRegister(w http.ResponseWriter, r *http.Request) {
	s.renderPage(r.Context(), w, "register.gohtml", pageData{Title: "Register"})
}
