// Package audio plays the core's signals as short synthesized tones.
package audio

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/ugaemi/mazechase/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Player is a game.Listener that turns signals into sounds. Notifications that
// are not signals are ignored. A Player that was never initialized, or is
// muted, drops everything.
type Player struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	mixer       *beep.Mixer
	sink        func(beep.Streamer)
	initialized bool

	muted atomic.Bool
}

// Option configures a Player.
type Option func(*Player)

// WithSink routes finished streamers to fn instead of the speaker.
func WithSink(fn func(beep.Streamer)) Option {
	return func(p *Player) {
		p.sink = fn
		p.initialized = true
	}
}

// WithMuted sets the initial mute state.
func WithMuted(muted bool) Option {
	return func(p *Player) {
		p.muted.Store(muted)
	}
}

// NewPlayer creates a Player. Call Init to attach it to the speaker.
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		sr:    sampleRate,
		mixer: &beep.Mixer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init opens the speaker. Failure leaves the player silent; the game runs on.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(p.sr, p.sr.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.sink = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	p.initialized = true
	return nil
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
	p.sink = nil
}

// HandleEvent implements game.Listener.
func (p *Player) HandleEvent(e game.Event) {
	if !e.Type.IsSignal() || p.muted.Load() {
		return
	}
	tone, ok := Tones[e.Type]
	if !ok {
		return
	}

	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()
	if sink == nil {
		return
	}

	s, err := tone.Streamer(p.sr)
	if err != nil {
		slog.Warn("tone synthesis failed", "signal", e.Type, "error", err)
		return
	}
	sink(s)
}

// ToggleMute flips the mute state and returns the new value.
func (p *Player) ToggleMute() bool {
	muted := !p.muted.Load()
	p.muted.Store(muted)
	return muted
}

// Muted reports the mute state.
func (p *Player) Muted() bool {
	return p.muted.Load()
}
