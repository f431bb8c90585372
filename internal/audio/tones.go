package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/ugaemi/mazechase/internal/game"
)

// Tone is a plain sine cue.
type Tone struct {
	Frequency float64 // Hz
	Volume    float64 // linear gain, 0..1
	Duration  time.Duration
}

// Tones maps each core signal to its cue.
var Tones = map[game.EventType]Tone{
	game.EventCollect:       {Frequency: 440, Volume: 0.5, Duration: 100 * time.Millisecond},
	game.EventPowerUp:       {Frequency: 880, Volume: 0.7, Duration: 300 * time.Millisecond},
	game.EventEnemyDefeated: {Frequency: 220, Volume: 0.6, Duration: 200 * time.Millisecond},
	game.EventDie:           {Frequency: 110, Volume: 0.8, Duration: 500 * time.Millisecond},
	game.EventWin:           {Frequency: 660, Volume: 0.8, Duration: time.Second},
	game.EventLose:          {Frequency: 165, Volume: 0.8, Duration: 1500 * time.Millisecond},
}

// Streamer renders the tone at sr as a finite streamer.
func (t Tone) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, t.Frequency)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(t.Duration), sine),
		Base:     2,
		Volume:   math.Log2(t.Volume),
	}, nil
}
