package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pigdice/internal/config"
	"pigdice/internal/engine"
	"pigdice/internal/httpapi"
	"pigdice/internal/hub"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		panic(err)
	}
	cfg := config.FromEnv()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// The hub outlives the signal context: ShutdownHub is what closes
	// every room's client channels, so it must still be deliverable
	// after the interrupt arrives.
	h := hub.New(context.Background(), cfg.Target, engine.NewDice(), log)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, cfg.AllowedOrigins, log)

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		h.Inbox() <- hub.ShutdownHub{}
		drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(drainCtx)
	}()

	log.Info("listening", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", zap.Error(err))
	}
}
