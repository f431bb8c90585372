package game

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Round is the single mutable context of one play-through. It is owned by one
// tick driver at a time and holds no locks.
type Round struct {
	maze *Maze
	rng  *rand.Rand

	Player     *Player
	Pursuers   []*Pursuer
	Tokens     mapset.Set[Cell]
	PowerZones mapset.Set[Cell]
	Power      PowerMode

	Score int
	Lives int
	Tick  int
	State RoundState

	graceTicks int
}

// NewRound creates a round on m and starts it. The seed drives the power-mode
// scatter targets.
func NewRound(m *Maze, seed int64) *Round {
	r := &Round{
		maze: m,
		rng:  rand.New(rand.NewSource(seed)),
	}
	r.Init()
	return r
}

// Init re-creates tokens and power zones, resets every entity to spawn, resets
// score, lives and power mode, and enters StatePlaying with a fresh startup grace.
func (r *Round) Init() {
	r.Score = 0
	r.Lives = StartingLives
	r.Tick = 0
	r.Power = PowerMode{}
	r.State = StatePlaying
	r.graceTicks = StartupGraceTicks

	r.PowerZones = mapset.New[Cell]()
	for _, c := range PowerZoneCells {
		r.PowerZones.Put(c)
	}
	r.Tokens = mapset.New[Cell]()
	for _, c := range r.maze.Cells(CellOpen) {
		if !r.PowerZones.Has(c) {
			r.Tokens.Put(c)
		}
	}

	r.Player = NewPlayer(r.Tick)
	r.Pursuers = DefaultPursuers()
}

// Maze returns the shared read-only maze.
func (r *Round) Maze() *Maze {
	return r.maze
}

// InGrace reports whether the startup grace is still suspending simulation.
func (r *Round) InGrace() bool {
	return r.graceTicks > 0
}

// SetPlayerHeading stores the latest requested heading. It takes effect on the
// next player-movement tick. Non-unit vectors are rejected and the previous
// heading is kept.
func (r *Round) SetPlayerHeading(v Vector) error {
	return r.Player.SetHeading(v)
}

// Step advances the round by one scheduler tick: movement, then collisions and
// scoring, then power-mode decay. Ended rounds and grace ticks do nothing. An
// ErrNoValidMove error means the maze is malformed and the round cannot go on.
func (r *Round) Step() ([]Event, error) {
	if r.State.IsTerminal() {
		return nil, nil
	}
	if r.graceTicks > 0 {
		r.graceTicks--
		return nil, nil
	}

	r.Tick++
	if r.Tick%PlayerMoveEvery == 0 {
		MovePlayer(r.maze, r.Player)
	}
	if r.Tick%PursuerMoveEvery == 0 {
		if err := r.movePursuers(); err != nil {
			return nil, err
		}
	}

	events := r.resolveCollisions()

	if !r.State.IsTerminal() && r.Power.Decay() {
		events = append(events, Event{Type: EventPowerModeChanged, Flag: false})
	}
	return events, nil
}

// movePursuers retargets and steps each pursuer in roster order, so later
// pursuers see earlier ones at their new cells.
func (r *Round) movePursuers() error {
	for _, p := range r.Pursuers {
		if err := StepPursuer(r.maze, p, ComputeTarget(p, r)); err != nil {
			return err
		}
	}
	return nil
}

// resetCharacters returns player and pursuers to spawn after a death. Token and
// power-zone progress is kept.
func (r *Round) resetCharacters() {
	r.Player = NewPlayer(r.Tick)
	for _, p := range r.Pursuers {
		p.Respawn()
	}
}

// chaser locates the single Chaser pursuer, or nil.
func (r *Round) chaser() *Pursuer {
	for _, p := range r.Pursuers {
		if p.Variant == VariantChaser {
			return p
		}
	}
	return nil
}

// PlayerView is the render-side view of the player.
type PlayerView struct {
	Position     Cell   `json:"position"`
	Heading      Vector `json:"heading"`
	Invulnerable bool   `json:"invulnerable"`
}

// Snapshot is a deep copy of the observable round state for renderers.
type Snapshot struct {
	Tick       int        `json:"tick"`
	State      RoundState `json:"state"`
	Grace      bool       `json:"grace"`
	Score      int        `json:"score"`
	Lives      int        `json:"lives"`
	Power      PowerMode  `json:"power"`
	Player     PlayerView `json:"player"`
	Pursuers   []Pursuer  `json:"pursuers"`
	Tokens     []Cell     `json:"tokens"`
	PowerZones []Cell     `json:"power_zones"`

	// Maze is immutable and shared, not copied.
	Maze *Maze `json:"-"`
}

// Snapshot copies the current state. Mutating the result does not affect r.
func (r *Round) Snapshot() Snapshot {
	pursuers := make([]Pursuer, len(r.Pursuers))
	for i, p := range r.Pursuers {
		pursuers[i] = *p
	}
	return Snapshot{
		Tick:  r.Tick,
		State: r.State,
		Grace: r.InGrace(),
		Score: r.Score,
		Lives: r.Lives,
		Power: r.Power,
		Player: PlayerView{
			Position:     r.Player.Position,
			Heading:      r.Player.Heading,
			Invulnerable: r.Player.IsInvulnerable(r.Tick),
		},
		Pursuers:   pursuers,
		Tokens:     sortedCells(r.Tokens),
		PowerZones: sortedCells(r.PowerZones),
		Maze:       r.maze,
	}
}

func sortedCells(s mapset.Set[Cell]) []Cell {
	cells := make([]Cell, 0, s.Size())
	s.Each(func(c Cell) {
		cells = append(cells, c)
	})
	slices.SortFunc(cells, func(a, b Cell) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return cells
}
