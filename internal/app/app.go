package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Hanjarang/news/internal/config"
	"github.com/Hanjarang/news/internal/logger"
)

// App owns the HTTP server and the infrastructure it runs on.
type App struct {
	server *http.Server
	infra  *infra
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	inf, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine, err := setupHTTP(ctx, cfg, inf)
	if err != nil {
		inf.close()
		return nil, err
	}

	return &App{
		server: &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		infra: inf,
	}, nil
}

// Run blocks until the server stops.
func (a *App) Run() error {
	logger.Info("http server starting", map[string]any{"addr": a.server.Addr})

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes infrastructure.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.infra.close()
	return err
}
