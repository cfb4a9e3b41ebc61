package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cryptocompare-client/internal/bootstrap"
	"cryptocompare-client/internal/config"
	"cryptocompare-client/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()
	cfg := config.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, cleanup, err := bootstrap.InitApp(ctx, cfg, logger)
	if err != nil {
		cleanup()
		logger.Error("bootstrap", zap.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	t := app.Poller.Target()
	logger.Info("poller configured",
		zap.Stringer("endpoint", t.Endpoint),
		zap.String("pair", t.From+"/"+t.To),
		zap.Uint64("limit", t.Limit),
		zap.String("exchange", t.Options.Exchange),
		zap.String("schedule", cfg.PollSchedule),
	)

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Worker.Start(ctx)
	}()

	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	wg.Wait()
	logger.Info("poller stopped")
}
