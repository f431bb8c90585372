package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/mazechase/internal/audio"
	"github.com/ugaemi/mazechase/internal/config"
	"github.com/ugaemi/mazechase/internal/game"
	"github.com/ugaemi/mazechase/internal/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chase: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(cfg, logOut)
	slog.SetDefault(logger)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	sound := audio.NewPlayer(audio.WithMuted(cfg.Mute))
	if err := sound.Init(); err != nil {
		// The game runs without sound.
		logger.Warn("audio initialization failed", "error", err)
	}
	defer sound.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	round := game.NewRound(game.DefaultMaze(), seed)
	logger.Info("round started", "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return terminal.NewApp(screen, round, sound, logger).Run(ctx)
}
