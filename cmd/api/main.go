package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"autoelite/internal/bootstrap"
	infraconfig "autoelite/internal/infrastructure/config"
	"autoelite/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.InitAPI(ctx)
	if err != nil {
		logger.Fatal("bootstrap api", zap.Error(err))
	}
	defer cleanup()

	flushDone := make(chan struct{})
	if app.Flusher != nil {
		go func() {
			defer close(flushDone)
			app.Flusher.Start(ctx)
		}()
	} else {
		close(flushDone)
	}

	addr := ":" + app.Config.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Handler,
		ReadHeaderTimeout: infraconfig.DefaultReadTimeout,
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr), zap.String("storage", app.Config.Storage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	<-flushDone
	logger.Info("server stopped")
}
