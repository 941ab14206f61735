package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/windhans/reels/internal/common"
	"github.com/windhans/reels/internal/server/session"
)

// maxUploadMemory bounds the in-memory part of multipart parsing;
// larger bodies spill to temp files.
const maxUploadMemory = 32 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

// identity resolves the viewer for the current request.
func (s *Server) identity(r *http.Request) session.Identity {
	return s.sessions.Resolve(r.Context(), session.TokenFromRequest(r))
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	user, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	s.sessions.Issue(w, user.ID)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	user, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	s.sessions.Issue(w, user.ID)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Revoke(w)
	writeJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	viewer := s.identity(r)
	viewerID := ""
	if !viewer.Anonymous() {
		viewerID = viewer.User.ID
	}
	feed, err := s.reels.Feed(r.Context(), viewerID, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	viewer := s.identity(r)
	if viewer.Anonymous() {
		writeError(w, common.ErrorUnauthorized)
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	defer file.Close()

	reel, err := s.reels.Upload(r.Context(), viewer.User, file, header.Size,
		header.Header.Get("Content-Type"), r.FormValue("caption"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reel)
}

func (s *Server) handleDeleteReel(w http.ResponseWriter, r *http.Request) {
	viewer := s.identity(r)
	result, err := s.reels.Delete(r.Context(), viewer.User, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"deleted":      true,
		"mediaRemoved": result.MediaRemoved,
	})
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	viewer := s.identity(r)
	liked, err := s.interactions.ToggleLike(r.Context(), viewer.User, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if liked {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]bool{"liked": liked})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.interactions.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	viewer := s.identity(r)
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	comment, err := s.interactions.AddComment(r.Context(), viewer.User, r.PathValue("id"), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
