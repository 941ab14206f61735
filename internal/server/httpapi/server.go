// Package httpapi exposes the reels application over HTTP: a JSON API
// for the client-side code plus a handful of server-rendered pages.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/windhans/reels/internal/logging"
	"github.com/windhans/reels/internal/server/models"
	"github.com/windhans/reels/internal/server/services"
	"github.com/windhans/reels/internal/server/session"
)

// UsersAPI is the account surface consumed by the handlers.
type UsersAPI interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// ReelsAPI is the reel lifecycle surface consumed by the handlers.
type ReelsAPI interface {
	Upload(ctx context.Context, actor *models.User, video io.Reader, size int64, contentType, caption string) (*models.Reel, error)
	Feed(ctx context.Context, viewerID string, limit int) ([]*models.FeedReel, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.FeedReel, error)
	Delete(ctx context.Context, actor *models.User, reelID string) (services.DeleteResult, error)
}

// InteractionsAPI is the like/comment surface consumed by the handlers.
type InteractionsAPI interface {
	ToggleLike(ctx context.Context, actor *models.User, reelID string) (bool, error)
	AddComment(ctx context.Context, actor *models.User, reelID, text string) (*models.Comment, error)
	ListComments(ctx context.Context, reelID string) ([]*models.Comment, error)
}

// SessionManager issues, revokes and resolves session cookies.
type SessionManager interface {
	Resolve(ctx context.Context, token string) session.Identity
	Issue(w http.ResponseWriter, userID string)
	Revoke(w http.ResponseWriter)
}

// Server wires the application services to an http.Server.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	users           UsersAPI
	reels           ReelsAPI
	interactions    InteractionsAPI
	sessions        SessionManager
	logger          logging.Logger
}

func NewServer(addr string, shutdownTimeout time.Duration, users UsersAPI, reels ReelsAPI,
	interactions InteractionsAPI, sessions SessionManager, logger logging.Logger) *Server {
	return &Server{
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		users:           users,
		reels:           reels,
		interactions:    interactions,
		sessions:        sessions,
		logger:          logger.With("module", "httpapi"),
	}
}

func applyMiddleware(h http.Handler, m ...func(http.Handler) http.Handler) http.Handler {
	for i := len(m) - 1; i >= 0; i-- {
		h = m[i](h)
	}
	return h
}

// Handler builds the routed and middleware-wrapped root handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)

	mux.HandleFunc("GET /reels", s.handleFeed)
	mux.HandleFunc("POST /reels/upload", s.handleUpload)
	mux.HandleFunc("DELETE /reels/{id}", s.handleDeleteReel)
	mux.HandleFunc("POST /reels/{id}/like", s.handleToggleLike)
	mux.HandleFunc("GET /reels/{id}/comments", s.handleListComments)
	mux.HandleFunc("POST /reels/{id}/comments", s.handleAddComment)

	mux.HandleFunc("GET /feed", s.pageFeed)
	mux.HandleFunc("GET /profile", s.pageProfile)
	mux.HandleFunc("GET /upload", s.pageUpload)
	mux.HandleFunc("GET /login", s.pageLogin)
	mux.HandleFunc("GET /register", s.pageRegister)
	mux.HandleFunc("GET /{$}", s.pageHome)

	return applyMiddleware(mux,
		s.loggerMiddleware,
		s.guardMiddleware,
	)
}

// Run serves until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info(context.Background(), "http server stopped")
	return <-errCh
}
