package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/bitebrain/internal/domain/tiles"
	"github.com/yanqian/bitebrain/internal/infra/config"
	"github.com/yanqian/bitebrain/internal/infra/tiles/queue"
)

// App encapsulates the HTTP server, the tile job consumer and the prune schedule.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	tiles     *tiles.Service
	queue     queue.HandlerQueue
	scheduler *Scheduler
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, tilesSvc *tiles.Service, jobs queue.HandlerQueue, scheduler *Scheduler) *App {
	return &App{
		cfg:       cfg,
		logger:    logger.With("component", "bootstrap"),
		server:    server,
		tiles:     tilesSvc,
		queue:     jobs,
		scheduler: scheduler,
	}
}

// Run starts the HTTP server and background work, and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.queue.SetHandler(a.tiles.HandleJob)
	defer a.queue.Close()

	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}
	defer a.scheduler.Stop()

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
