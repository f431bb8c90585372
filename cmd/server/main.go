package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ugaemi/mazechase/internal/config"
	"github.com/ugaemi/mazechase/internal/game"
	"github.com/ugaemi/mazechase/internal/handler"
	"github.com/ugaemi/mazechase/internal/room"
	"github.com/ugaemi/mazechase/internal/store"
	"github.com/ugaemi/mazechase/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	slog.SetDefault(config.NewLogger(cfg, os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open result store", "error", err)
		os.Exit(1)
	}
	defer results.Close()

	hub := ws.NewHub()
	rm := room.NewManager(game.DefaultMaze(), results, cfg.Seed)
	router := handler.NewRouter(rm, results, cfg.LeaderboardSize)

	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	// The hub outlives the signal context: rooms stop first, then clients close.
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	srv := &Server{hub: hub, leaderboard: router.Leaderboard()}
	srv.routes()

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: srv.router,
	}

	go func() {
		<-ctx.Done()
		rm.StopAll()
		stopHub()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "addr", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openStore picks PostgreSQL when DATABASE_URL is set and memory otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.ResultStore, error) {
	if cfg.DatabaseURL == "" {
		slog.Info("DATABASE_URL not set, keeping results in memory")
		return store.NewMemoryStore(), nil
	}
	pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	slog.Info("connected to PostgreSQL")
	return pg, nil
}
