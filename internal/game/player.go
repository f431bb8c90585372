package game

import (
	"encoding/json"
	"fmt"
)

// Player is the token-collecting entity steered by the input collaborator.
type Player struct {
	Position Cell   `json:"position"`
	Heading  Vector `json:"heading"`

	// InvulnerableUntilTick is the first simulation tick at which contact with
	// a pursuer costs a life again.
	InvulnerableUntilTick int `json:"-"`
}

// NewPlayer creates a player at spawn, stationary and protected for InvulnerableTicks.
func NewPlayer(tick int) *Player {
	return &Player{
		Position:              PlayerSpawn,
		Heading:               Zero,
		InvulnerableUntilTick: tick + InvulnerableTicks,
	}
}

// IsInvulnerable reports whether the spawn protection window covers tick.
func (p *Player) IsInvulnerable(tick int) bool {
	return tick < p.InvulnerableUntilTick
}

// SetHeading stores the next heading. Only unit directions are accepted.
func (p *Player) SetHeading(v Vector) error {
	if !v.IsUnit() {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidHeading, v.DX, v.DY)
	}
	p.Heading = v
	return nil
}

type Variant int

const (
	VariantChaser Variant = iota
	VariantAmbusher
	VariantFlanker
	VariantOpportunist
)

func (v Variant) String() string {
	switch v {
	case VariantChaser:
		return "chaser"
	case VariantAmbusher:
		return "ambusher"
	case VariantFlanker:
		return "flanker"
	case VariantOpportunist:
		return "opportunist"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes Variant as a string.
func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON deserializes Variant from a string.
func (v *Variant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "ambusher":
		*v = VariantAmbusher
	case "flanker":
		*v = VariantFlanker
	case "opportunist":
		*v = VariantOpportunist
	default:
		*v = VariantChaser
	}
	return nil
}

// Pursuer is one of the four maze hunters.
type Pursuer struct {
	Name     string  `json:"name"`
	Variant  Variant `json:"variant"`
	Position Cell    `json:"position"`
	Heading  Vector  `json:"heading"`

	spawn        Cell
	spawnHeading Vector
}

// NewPursuer creates a pursuer that respawns at its starting cell and heading.
func NewPursuer(name string, variant Variant, spawn Cell, heading Vector) *Pursuer {
	return &Pursuer{
		Name:         name,
		Variant:      variant,
		Position:     spawn,
		Heading:      heading,
		spawn:        spawn,
		spawnHeading: heading,
	}
}

// Respawn puts the pursuer back on its spawn cell and heading.
func (p *Pursuer) Respawn() {
	p.Position = p.spawn
	p.Heading = p.spawnHeading
}

// Spawn returns the pursuer's fixed spawn cell.
func (p *Pursuer) Spawn() Cell {
	return p.spawn
}

// DefaultPursuers returns the round's roster in spawn order. Exactly one is a Chaser.
func DefaultPursuers() []*Pursuer {
	return []*Pursuer{
		NewPursuer("Confuso", VariantChaser, Cell{X: 9, Y: 8}, Right),
		NewPursuer("Delaya", VariantAmbusher, Cell{X: 9, Y: 10}, Left),
		NewPursuer("MissyMatch", VariantFlanker, Cell{X: 7, Y: 10}, Right),
		NewPursuer("Forgotto", VariantOpportunist, Cell{X: 11, Y: 10}, Left),
	}
}
