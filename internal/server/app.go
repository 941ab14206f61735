// Package server initializes and runs the reels application: database,
// migrations, media storage, services and the HTTP endpoint, with
// graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/windhans/reels/internal/logging"
	"github.com/windhans/reels/internal/server/config"
	"github.com/windhans/reels/internal/server/httpapi"
	"github.com/windhans/reels/internal/server/media"
	"github.com/windhans/reels/internal/server/repositories/repomanager"
	"github.com/windhans/reels/internal/server/services"
	"github.com/windhans/reels/internal/server/session"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := media.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("media store init error: %w", err)
	}

	userService := services.NewUserService(db, repos)
	reelService := services.NewReelService(db, repos, store, logger)
	interactionService := services.NewInteractionService(db, repos)
	sessions := session.NewManager(userService, cfg.SecureCookies)

	srv := httpapi.NewServer(cfg.EndpointAddr, cfg.ShutdownTimeout,
		userService, reelService, interactionService, sessions, logger)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
