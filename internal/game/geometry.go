package game

import (
	"encoding/json"
	"math"
)

// Cell indexes the maze grid. X is the column, Y the row.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the cell offset by v.
func (c Cell) Add(v Vector) Cell {
	return Cell{X: c.X + v.DX, Y: c.Y + v.DY}
}

// Sub returns the vector pointing from o to c.
func (c Cell) Sub(o Cell) Vector {
	return Vector{DX: c.X - o.X, DY: c.Y - o.Y}
}

// Vector is a per-step grid displacement.
type Vector struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Unit headings. Enumeration order matters for greedy tie-breaking.
var (
	Zero  = Vector{}
	Up    = Vector{DX: 0, DY: -1}
	Down  = Vector{DX: 0, DY: 1}
	Left  = Vector{DX: -1, DY: 0}
	Right = Vector{DX: 1, DY: 0}
)

// Directions lists the unit headings in greedy enumeration order.
var Directions = [4]Vector{Up, Down, Left, Right}

// Scale multiplies both components by k.
func (v Vector) Scale(k int) Vector {
	return Vector{DX: v.DX * k, DY: v.DY * k}
}

// Reverse returns the opposite heading.
func (v Vector) Reverse() Vector {
	return Vector{DX: -v.DX, DY: -v.DY}
}

// IsZero reports whether v is the stationary heading.
func (v Vector) IsZero() bool {
	return v == Zero
}

// IsUnit reports whether v is one of the four axis-aligned unit headings.
func (v Vector) IsUnit() bool {
	return v == Up || v == Down || v == Left || v == Right
}

func (v Vector) String() string {
	switch v {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Zero:
		return "none"
	default:
		return "invalid"
	}
}

// ParseDirection converts a direction name into a unit heading.
func ParseDirection(s string) (Vector, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return Zero, false
	}
}

// MarshalJSON serializes Vector as {"dx":..,"dy":..,"name":..} so clients can
// pick a sprite orientation without decoding the components.
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		DX   int    `json:"dx"`
		DY   int    `json:"dy"`
		Name string `json:"name"`
	}{v.DX, v.DY, v.String()})
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}

// CellDistance is the Euclidean distance between two cell centers.
func CellDistance(a, b Cell) float64 {
	return Distance(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y))
}
