package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pursuerByVariant(t *testing.T, r *Round, v Variant) *Pursuer {
	t.Helper()
	for _, p := range r.Pursuers {
		if p.Variant == v {
			return p
		}
	}
	require.FailNow(t, "no pursuer with variant", v.String())
	return nil
}

func TestComputeTarget_Chaser(t *testing.T) {
	r := playingRound(t)
	r.Player.Position = Cell{X: 4, Y: 6}
	r.Player.Heading = Down

	assert.Equal(t, Cell{X: 4, Y: 6}, ComputeTarget(pursuerByVariant(t, r, VariantChaser), r))
}

func TestComputeTarget_Ambusher(t *testing.T) {
	r := playingRound(t)
	ambusher := pursuerByVariant(t, r, VariantAmbusher)

	tests := []struct {
		name    string
		heading Vector
		want    Cell
	}{
		{"heading left", Left, Cell{X: 5, Y: 16}},
		{"heading up", Up, Cell{X: 9, Y: 12}},
		{"stationary", Zero, PlayerSpawn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.Player.Heading = tt.heading
			assert.Equal(t, tt.want, ComputeTarget(ambusher, r))
		})
	}
}

func TestComputeTarget_Flanker(t *testing.T) {
	r := playingRound(t)
	blinky := pursuerByVariant(t, r, VariantChaser)
	blinky.Position = Cell{X: 9, Y: 8}
	blinky.Heading = Right
	r.Player.Position = Cell{X: 9, Y: 16}
	r.Player.Heading = Up

	// pivot (9,14), offset (0,6), target (9,8)+(0,12)
	assert.Equal(t, Cell{X: 9, Y: 20}, ComputeTarget(pursuerByVariant(t, r, VariantFlanker), r))

	t.Run("off-axis chaser", func(t *testing.T) {
		blinky.Position = Cell{X: 4, Y: 14}
		r.Player.Heading = Right
		// pivot (11,16), offset (7,2), target (18,18)
		assert.Equal(t, Cell{X: 18, Y: 18}, ComputeTarget(pursuerByVariant(t, r, VariantFlanker), r))
	})

	t.Run("no chaser falls back to pursuit", func(t *testing.T) {
		flanker := pursuerByVariant(t, r, VariantFlanker)
		r.Pursuers = []*Pursuer{flanker}
		assert.Equal(t, r.Player.Position, ComputeTarget(flanker, r))
	})
}

func TestComputeTarget_Opportunist(t *testing.T) {
	r := playingRound(t)
	opp := pursuerByVariant(t, r, VariantOpportunist)

	tests := []struct {
		name string
		at   Cell
		want Cell
	}{
		{"far away chases", Cell{X: 9, Y: 4}, PlayerSpawn},
		{"close retreats", Cell{X: 9, Y: 12}, Cell{X: 0, Y: Rows - 1}},
		{"exactly at radius retreats", Cell{X: 9, Y: 8}, Cell{X: 0, Y: Rows - 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp.Position = tt.at
			assert.Equal(t, tt.want, ComputeTarget(opp, r))
		})
	}
}

func TestOpportunistTarget_RetreatsToMazeCorner(t *testing.T) {
	m, err := ParseMaze("#####\n#...#\n#...#\n#####")
	require.NoError(t, err)

	opp := &Pursuer{Variant: VariantOpportunist, Position: Cell{X: 1, Y: 1}}
	player := &Player{Position: Cell{X: 3, Y: 2}}

	assert.Equal(t, Cell{X: 0, Y: 3}, opportunistTarget(m, opp, player))
	assert.Equal(t, m.RetreatCorner(), opportunistTarget(m, opp, player))
}

func TestComputeTarget_PowerModeScatters(t *testing.T) {
	r := playingRound(t)
	r.Power.Activate()
	m := r.Maze()

	for _, p := range r.Pursuers {
		for range 50 {
			assert.True(t, m.InBounds(ComputeTarget(p, r)), "scatter target must be in bounds")
		}
	}
}

func TestComputeTarget_ScatterIsSeeded(t *testing.T) {
	a := NewRound(DefaultMaze(), 42)
	b := NewRound(DefaultMaze(), 42)
	a.Power.Activate()
	b.Power.Activate()

	for range 20 {
		assert.Equal(t, ComputeTarget(a.Pursuers[0], a), ComputeTarget(b.Pursuers[0], b))
	}
}
