package game

import (
	"fmt"
	"math"
)

// MovePlayer applies the player's heading as a single step. Horizontal overflow
// wraps to the opposite column; a wall or a missing row leaves the player in
// place with its heading kept for the next attempt. Returns whether it moved.
func MovePlayer(m *Maze, p *Player) bool {
	if p.Heading.IsZero() {
		return false
	}
	next := m.Wrap(p.Position.Add(p.Heading))
	if !m.IsWalkable(next) {
		return false
	}
	p.Position = next
	return true
}

// walkableMoves lists the headings from pos that lead to a walkable cell, in
// Directions order.
func walkableMoves(m *Maze, pos Cell) []Vector {
	moves := make([]Vector, 0, len(Directions))
	for _, d := range Directions {
		next := pos.Add(d)
		if d.DY != 0 && !m.RowExists(next.Y) {
			continue
		}
		if m.IsWalkable(m.Wrap(next)) {
			moves = append(moves, d)
		}
	}
	return moves
}

// GreedyStep picks the single-step heading from pos that brings the entity
// closest to target. The reversal of heading is excluded unless it is the only
// walkable move. Exact distance ties go to the earliest heading in Directions.
func GreedyStep(m *Maze, pos Cell, heading Vector, target Cell) (Vector, error) {
	moves := walkableMoves(m, pos)
	if len(moves) == 0 {
		return Zero, fmt.Errorf("%w: at (%d,%d)", ErrNoValidMove, pos.X, pos.Y)
	}

	if len(moves) > 1 {
		reverse := heading.Reverse()
		forward := moves[:0:0]
		for _, mv := range moves {
			if mv != reverse {
				forward = append(forward, mv)
			}
		}
		if len(forward) > 0 {
			moves = forward
		}
	}

	best := moves[0]
	bestDist := math.Inf(1)
	for _, mv := range moves {
		d := CellDistance(pos.Add(mv), target)
		if d < bestDist {
			bestDist = d
			best = mv
		}
	}
	return best, nil
}

// StepPursuer moves p one cell toward target. Heading and position change
// together; there is no partial-step state.
func StepPursuer(m *Maze, p *Pursuer, target Cell) error {
	mv, err := GreedyStep(m, p.Position, p.Heading, target)
	if err != nil {
		return fmt.Errorf("pursuer %s: %w", p.Name, err)
	}
	p.Heading = mv
	p.Position = m.Wrap(p.Position.Add(mv))
	return nil
}
