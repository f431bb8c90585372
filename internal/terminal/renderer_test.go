package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/mazechase/internal/game"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y)
	return mainc
}

func cellRune(screen tcell.Screen, c game.Cell) rune {
	x, y := ScreenPos(c)
	return runeAt(screen, x, y)
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(runeAt(screen, x, y))
	}
	return b.String()
}

func TestDraw_InitialRound(t *testing.T) {
	screen := newScreen(t)
	round := game.NewRound(game.DefaultMaze(), 1)
	s := round.Snapshot()

	NewRenderer(screen).Draw(s, false)

	// Walls fill both columns.
	x, y := ScreenPos(game.Cell{X: 0, Y: 0})
	assert.Equal(t, '█', runeAt(screen, x, y))
	assert.Equal(t, '█', runeAt(screen, x+1, y))

	assert.Equal(t, '·', cellRune(screen, s.Tokens[0]))
	assert.Equal(t, '●', cellRune(screen, game.Cell{X: 1, Y: 3}))
	assert.Equal(t, 'C', cellRune(screen, game.Cell{X: 9, Y: 8}), "Confuso")

	assert.True(t, strings.HasPrefix(rowText(screen, 0), "SCORE 0  LIVES 3  SOUND on"))
	assert.Contains(t, rowText(screen, HUDRows+game.Rows/2), "READY!")
}

func TestDraw_HUD(t *testing.T) {
	screen := newScreen(t)
	s := game.NewRound(game.DefaultMaze(), 1).Snapshot()
	s.Score = 120
	s.Lives = 2
	s.Power = game.PowerMode{Active: true, RemainingTicks: 300}

	NewRenderer(screen).Draw(s, true)

	assert.True(t, strings.HasPrefix(rowText(screen, 0), "SCORE 120  LIVES 2  POWER 5.0s  SOUND off"))
}

func TestDraw_EndBanner(t *testing.T) {
	tests := []struct {
		state game.RoundState
		want  string
	}{
		{game.StateWon, "YOU WIN! score 40"},
		{game.StateLost, "GAME OVER score 40"},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			screen := newScreen(t)
			s := game.NewRound(game.DefaultMaze(), 1).Snapshot()
			s.State = tt.state
			s.Score = 40
			s.Grace = false

			NewRenderer(screen).Draw(s, false)

			row := rowText(screen, HUDRows+game.Rows/2)
			assert.Contains(t, row, tt.want)
			assert.NotContains(t, row, "READY!")
		})
	}
}

func TestPlayerVisible(t *testing.T) {
	tests := []struct {
		name         string
		tick         int
		invulnerable bool
		want         bool
	}{
		{"vulnerable", 0, false, true},
		{"blink hidden start", 10, true, false},
		{"blink hidden end", 14, true, false},
		{"blink shown start", 15, true, true},
		{"blink shown end", 19, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := game.Snapshot{Tick: tt.tick}
			s.Player.Invulnerable = tt.invulnerable
			assert.Equal(t, tt.want, PlayerVisible(s))
		})
	}
}

func TestDraw_PlayerBlink(t *testing.T) {
	screen := newScreen(t)
	r := NewRenderer(screen)
	s := game.NewRound(game.DefaultMaze(), 1).Snapshot()
	require.True(t, s.Player.Invulnerable)

	s.Tick = 2
	r.Draw(s, false)
	assert.NotEqual(t, 'C', cellRune(screen, game.PlayerSpawn))

	s.Tick = 7
	r.Draw(s, false)
	assert.Equal(t, 'C', cellRune(screen, game.PlayerSpawn))
}

func TestPulse(t *testing.T) {
	p := newPulse(1)

	var peak float32
	for i := 0; i < 31; i++ {
		v := p.advance(1.0 / 60)
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
		if v > peak {
			peak = v
		}
	}
	assert.InDelta(t, 1, peak, 0.01, "reaches full level after half a period")
	assert.False(t, p.rising)

	for i := 0; i < 15; i++ {
		p.advance(1.0 / 60)
	}
	assert.Less(t, p.value, float32(1))

	p.reset()
	assert.True(t, p.rising)
	assert.Equal(t, float32(0), p.value)
}

func TestKeyHeading(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
		want game.Vector
		ok   bool
	}{
		{"arrow up", tcell.KeyUp, 0, game.Up, true},
		{"arrow down", tcell.KeyDown, 0, game.Down, true},
		{"arrow left", tcell.KeyLeft, 0, game.Left, true},
		{"arrow right", tcell.KeyRight, 0, game.Right, true},
		{"w", tcell.KeyRune, 'w', game.Up, true},
		{"d", tcell.KeyRune, 'd', game.Right, true},
		{"other rune", tcell.KeyRune, 'x', game.Zero, false},
		{"enter", tcell.KeyEnter, 0, game.Zero, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyHeading(tt.key, tt.r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
