package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/mazechase/internal/game"
)

// Sound is the audio collaborator as seen by the app.
type Sound interface {
	game.Listener
	ToggleMute() bool
	Muted() bool
}

// App drives one local round: it ticks the simulation, forwards events to the
// audio collaborator and redraws after every tick.
type App struct {
	screen   tcell.Screen
	round    *game.Round
	sound    Sound
	renderer *Renderer
	logger   *slog.Logger
	interval time.Duration
}

// NewApp wires a round to a screen and a sound player.
func NewApp(screen tcell.Screen, round *game.Round, sound Sound, logger *slog.Logger) *App {
	return &App{
		screen:   screen,
		round:    round,
		sound:    sound,
		renderer: NewRenderer(screen),
		logger:   logger,
		interval: game.TickInterval,
	}
}

// Run blocks until the user quits, ctx is cancelled, or the round hits a
// fatal simulation error.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := a.tick(); err != nil {
				return err
			}
		}
	}
}

// tick advances the round once and redraws. Ended rounds keep rendering.
func (a *App) tick() error {
	events, err := a.round.Step()
	if err != nil {
		return fmt.Errorf("tick %d: %w", a.round.Tick, err)
	}
	game.Dispatch(events, a.sound)
	for _, e := range events {
		if e.Type == game.EventRoundEnded {
			a.logger.Info("round ended", "won", e.Flag, "score", a.round.Score, "ticks", a.round.Tick)
		}
	}
	a.draw()
	return nil
}

func (a *App) draw() {
	a.renderer.Draw(a.round.Snapshot(), a.sound.Muted())
}

// handleEvent applies one terminal event. It returns false when the user quits.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'm', 'M':
			muted := a.sound.ToggleMute()
			a.logger.Debug("sound toggled", "muted", muted)
			return true
		case 'r', 'R':
			if a.round.State.IsTerminal() {
				a.round.Init()
				a.logger.Info("round restarted")
			}
			return true
		}
	}
	if v, ok := keyHeading(key, r); ok {
		if err := a.round.SetPlayerHeading(v); err != nil {
			a.logger.Debug("heading rejected", "error", err)
		}
	}
	return true
}
