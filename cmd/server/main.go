package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hanjarang/news/internal/app"
	"github.com/Hanjarang/news/internal/config"
	"github.com/Hanjarang/news/internal/logger"
)

func main() {
	logger.Init()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{"error": err.Error()})
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("http server failed", map[string]any{"error": err.Error()})
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", map[string]any{"error": err.Error()})
	}

	logger.Info("server stopped", nil)
}
