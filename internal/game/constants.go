package game

import "time"

// Maze dimensions (cells)
const (
	Cols = 19
	Rows = 22
)

// Game timing
const (
	TickRate     = 60 // ticks per second
	TickInterval = time.Second / TickRate

	// StartupGraceTicks is the number of scheduler ticks skipped after a round
	// starts (500ms) while rendering continues.
	StartupGraceTicks = TickRate / 2

	// InvulnerableTicks is the spawn protection window (2s of simulation).
	InvulnerableTicks = 2 * TickRate
)

// Movement cadence, in simulation ticks
const (
	PlayerMoveEvery  = 5
	PursuerMoveEvery = 6
)

// Scoring
const (
	TokenPoints    = 10
	PursuerPoints  = 50
	StartingLives  = 3
	PowerModeTicks = 10 * TickRate
)

// Targeting
const (
	AmbushLookahead   = 4
	FlankLookahead    = 2
	FlankScale        = 2
	OpportunistRadius = 8.0 // cells
)

// Spawn points
var (
	PlayerSpawn = Cell{X: 9, Y: 16}

	PowerZoneCells = []Cell{
		{X: 1, Y: 3},
		{X: 17, Y: 3},
		{X: 1, Y: 16},
		{X: 17, Y: 16},
	}
)
