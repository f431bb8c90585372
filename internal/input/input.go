// Package input translates raw user gestures into player headings.
package input

import (
	"math"

	"github.com/ugaemi/mazechase/internal/game"
)

// MinSwipeDistance is the screen distance a touch must travel to count as a swipe.
const MinSwipeDistance = 30.0

// FromSwipe maps a touch delta to a heading along its dominant axis. Deltas
// shorter than MinSwipeDistance on both axes are taps and yield false. Equal
// magnitudes resolve to the vertical axis.
func FromSwipe(dx, dy float64) (game.Vector, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax < MinSwipeDistance && ay < MinSwipeDistance {
		return game.Zero, false
	}
	if ax > ay {
		if dx > 0 {
			return game.Right, true
		}
		return game.Left, true
	}
	if dy > 0 {
		return game.Down, true
	}
	return game.Up, true
}

// FromKeyName maps browser-style key names (ArrowUp, w, ...) to a heading.
func FromKeyName(key string) (game.Vector, bool) {
	switch key {
	case "ArrowUp", "w", "W":
		return game.Up, true
	case "ArrowDown", "s", "S":
		return game.Down, true
	case "ArrowLeft", "a", "A":
		return game.Left, true
	case "ArrowRight", "d", "D":
		return game.Right, true
	default:
		return game.Zero, false
	}
}

// FromRune maps WASD runes to a heading.
func FromRune(r rune) (game.Vector, bool) {
	return FromKeyName(string(r))
}
