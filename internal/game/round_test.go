package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRound_InitialState(t *testing.T) {
	m := DefaultMaze()
	r := NewRound(m, 1)

	assert.Equal(t, StatePlaying, r.State)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, StartingLives, r.Lives)
	assert.Equal(t, 0, r.Tick)
	assert.False(t, r.Power.Active)
	assert.True(t, r.InGrace())

	assert.Equal(t, len(m.Cells(CellOpen))-len(PowerZoneCells), r.Tokens.Size())
	assert.Equal(t, len(PowerZoneCells), r.PowerZones.Size())
	for _, c := range PowerZoneCells {
		assert.False(t, r.Tokens.Has(c), "power zone %v must not hold a token", c)
	}
	for _, c := range m.Cells(CellPen) {
		assert.False(t, r.Tokens.Has(c), "pen cell %v must not hold a token", c)
	}

	assert.Equal(t, PlayerSpawn, r.Player.Position)
	assert.True(t, r.Player.IsInvulnerable(r.Tick))
	require.Len(t, r.Pursuers, 4)

	chasers := 0
	for _, p := range r.Pursuers {
		if p.Variant == VariantChaser {
			chasers++
		}
	}
	assert.Equal(t, 1, chasers)
}

func TestStep_StartupGraceSkipsSimulation(t *testing.T) {
	r := NewRound(DefaultMaze(), 1)
	tokens := r.Tokens.Size()

	for range StartupGraceTicks {
		events, err := r.Step()
		require.NoError(t, err)
		assert.Empty(t, events)
	}
	assert.Equal(t, 0, r.Tick)
	assert.Equal(t, tokens, r.Tokens.Size())
	assert.False(t, r.InGrace())

	events, err := r.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Tick)
	assert.Contains(t, eventTypes(events), EventCollect, "spawn token is collected on the first tick")
}

func TestStep_MovementCadence(t *testing.T) {
	r := NewRound(DefaultMaze(), 1)
	r.graceTicks = 0
	require.NoError(t, r.SetPlayerHeading(Left))

	positions := make([]Cell, 0, 6)
	for range 6 {
		_, err := r.Step()
		require.NoError(t, err)
		positions = append(positions, r.Player.Position)
	}

	for i := 0; i < PlayerMoveEvery-1; i++ {
		assert.Equal(t, PlayerSpawn, positions[i], "tick %d", i+1)
	}
	assert.Equal(t, Cell{X: 8, Y: 16}, positions[PlayerMoveEvery-1])

	// Pursuers first move on tick 6.
	r2 := NewRound(DefaultMaze(), 1)
	r2.graceTicks = 0
	spawn := r2.Pursuers[0].Position
	for range PursuerMoveEvery - 1 {
		_, err := r2.Step()
		require.NoError(t, err)
	}
	assert.Equal(t, spawn, r2.Pursuers[0].Position)
	_, err := r2.Step()
	require.NoError(t, err)
	assert.NotEqual(t, spawn, r2.Pursuers[0].Position)
}

func TestStep_InvulnerabilityExpires(t *testing.T) {
	r := NewRound(DefaultMaze(), 1)
	r.graceTicks = 0
	r.Tick = InvulnerableTicks - 1
	assert.True(t, r.Player.IsInvulnerable(r.Tick))
	r.Tick = InvulnerableTicks
	assert.False(t, r.Player.IsInvulnerable(r.Tick))
}

func TestPowerMode_Decay(t *testing.T) {
	var p PowerMode
	p.Activate()
	require.True(t, p.Active)
	require.Equal(t, 600, p.RemainingTicks)

	for i := 0; i < 599; i++ {
		assert.False(t, p.Decay())
	}
	assert.True(t, p.Active)
	assert.True(t, p.Decay(), "the 600th decrement ends power mode")
	assert.False(t, p.Active)
	assert.False(t, p.Decay())
}

func TestStep_PowerModeEndsWithEvent(t *testing.T) {
	r := playingRound(t)
	r.Power.Active = true
	r.Power.RemainingTicks = 1
	r.Player.Position = Cell{X: 1, Y: 1}
	r.Tokens.Remove(r.Player.Position)

	events, err := r.Step()
	require.NoError(t, err)
	assert.False(t, r.Power.Active)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventPowerModeChanged, last.Type)
	assert.False(t, last.Flag)
}

func TestStep_TerminalRoundStopsTicking(t *testing.T) {
	for _, state := range []RoundState{StateWon, StateLost} {
		t.Run(state.String(), func(t *testing.T) {
			r := playingRound(t)
			r.State = state
			tick := r.Tick

			events, err := r.Step()
			require.NoError(t, err)
			assert.Nil(t, events)
			assert.Equal(t, tick, r.Tick)
		})
	}
}

func TestSetPlayerHeading(t *testing.T) {
	r := NewRound(DefaultMaze(), 1)
	require.NoError(t, r.SetPlayerHeading(Up))

	for _, v := range []Vector{Zero, {DX: 1, DY: 1}, {DX: 2, DY: 0}, {DX: 0, DY: -3}} {
		err := r.SetPlayerHeading(v)
		assert.ErrorIs(t, err, ErrInvalidHeading, "vector %v", v)
		assert.Equal(t, Up, r.Player.Heading, "previous heading is retained")
	}
}

func TestInit_RestartsRound(t *testing.T) {
	r := playingRound(t)
	r.Score = 340
	r.Lives = 1
	r.State = StateLost
	r.Power.Activate()
	r.Tokens.Remove(Cell{X: 1, Y: 1})
	r.PowerZones.Remove(PowerZoneCells[2])
	r.Pursuers[0].Position = Cell{X: 1, Y: 1}

	r.Init()

	fresh := NewRound(DefaultMaze(), 1)
	assert.Equal(t, StatePlaying, r.State)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, StartingLives, r.Lives)
	assert.Equal(t, 0, r.Tick)
	assert.False(t, r.Power.Active)
	assert.True(t, r.InGrace())
	assert.Equal(t, fresh.Tokens.Size(), r.Tokens.Size())
	assert.Equal(t, fresh.PowerZones.Size(), r.PowerZones.Size())
	assert.Equal(t, Cell{X: 9, Y: 8}, r.Pursuers[0].Position)
}

func TestSnapshot_IsACopy(t *testing.T) {
	r := playingRound(t)
	snap := r.Snapshot()

	assert.Equal(t, r.Tokens.Size(), len(snap.Tokens))
	assert.Equal(t, len(PowerZoneCells), len(snap.PowerZones))
	for i := 1; i < len(snap.Tokens); i++ {
		prev, cur := snap.Tokens[i-1], snap.Tokens[i]
		assert.True(t, prev.Y < cur.Y || (prev.Y == cur.Y && prev.X < cur.X), "tokens are row-major sorted")
	}

	snap.Pursuers[0].Position = Cell{X: 1, Y: 1}
	snap.Tokens = snap.Tokens[:0]
	snap.Player.Position = Cell{X: 1, Y: 1}

	assert.Equal(t, Cell{X: 9, Y: 8}, r.Pursuers[0].Position)
	assert.Equal(t, PlayerSpawn, r.Player.Position)
	assert.Equal(t, len(r.Snapshot().Tokens), r.Tokens.Size())
	assert.Same(t, r.Maze(), snap.Maze)
}

// TestStep_Invariants plays many rounds with random steering and checks the
// round invariants after every tick.
func TestStep_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	r := NewRound(DefaultMaze(), 99)
	finished := 0

	for range 60000 {
		if rng.Intn(20) == 0 {
			require.NoError(t, r.SetPlayerHeading(Directions[rng.Intn(len(Directions))]))
		}
		tokens := r.Tokens.Size()
		score := r.Score

		events, err := r.Step()
		require.NoError(t, err)

		assert.GreaterOrEqual(t, r.Lives, 0)
		assert.LessOrEqual(t, r.Lives, StartingLives)
		assert.GreaterOrEqual(t, r.Score, score, "score never decreases")
		assert.LessOrEqual(t, tokens-r.Tokens.Size(), 1, "at most one token per tick")
		if r.Tokens.Size() == tokens-1 {
			assert.Contains(t, eventTypes(events), EventCollect)
		}
		if r.Lives == 0 {
			assert.Equal(t, StateLost, r.State)
		}
		if r.State == StateWon {
			assert.Equal(t, 0, r.Tokens.Size())
		}
		for _, p := range r.Pursuers {
			assert.True(t, r.Maze().InBounds(p.Position), "pursuer %s left the grid at %v", p.Name, p.Position)
		}
		assert.True(t, r.Maze().IsWalkable(r.Player.Position))

		if r.State.IsTerminal() {
			finished++
			r.Init()
		}
	}
	assert.Positive(t, finished, "random play should finish at least one round")
}
