package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

type CellKind int

const (
	CellWall CellKind = iota
	CellOpen
	// CellPen is the walkable pursuer house. It never holds tokens.
	CellPen
)

func (k CellKind) String() string {
	switch k {
	case CellWall:
		return "wall"
	case CellOpen:
		return "open"
	case CellPen:
		return "pen"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes CellKind as a string.
func (k CellKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k CellKind) glyph() byte {
	switch k {
	case CellOpen:
		return '.'
	case CellPen:
		return '='
	default:
		return '#'
	}
}

// defaultLayout is the reference 19x22 maze. '#' wall, '.' open, '=' pen.
// Row 10 is a horizontal tunnel open at both edges.
const defaultLayout = `
###################
#........#........#
#.##.###.#.###.##.#
#.##.###.#.###.##.#
#.................#
#.##.#.#####.#.##.#
#....#...#...#....#
####.###.#.###.####
####.#.......#.####
####.#.##=##.#.####
.......#===#.......
####.#.#####.#.####
####.#.......#.####
####.#.#####.#.####
#........#........#
#.##.###.#.###.##.#
#..#...........#..#
##.#.#.#####.#.#.##
#....#...#...#....#
#.######.#.######.#
#.................#
###################
`

var defaultMaze = mustParseMaze(defaultLayout)

// Maze is the immutable walkable/wall grid. It is safe to share by reference.
type Maze struct {
	grid   [][]CellKind
	width  int
	height int
}

// DefaultMaze returns the shared reference maze.
func DefaultMaze() *Maze {
	return defaultMaze
}

func mustParseMaze(layout string) *Maze {
	m, err := ParseMaze(layout)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMaze builds a maze from a text layout and validates it: the grid is
// rectangular, the top and bottom rows are walls, side borders are walls except
// on tunnel rows open at both ends, and all walkable cells are connected.
func ParseMaze(layout string) (*Maze, error) {
	var grid [][]CellKind
	for _, line := range strings.Split(strings.TrimSpace(layout), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]CellKind, len(line))
		for x, ch := range []byte(line) {
			switch ch {
			case '#':
				row[x] = CellWall
			case '.':
				row[x] = CellOpen
			case '=':
				row[x] = CellPen
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at row %d col %d", ErrInvalidMaze, ch, len(grid), x)
			}
		}
		grid = append(grid, row)
	}

	if len(grid) < 3 || len(grid[0]) < 3 {
		return nil, fmt.Errorf("%w: grid too small", ErrInvalidMaze)
	}

	m := &Maze{grid: grid, width: len(grid[0]), height: len(grid)}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Maze) validate() error {
	for y, row := range m.grid {
		if len(row) != m.width {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidMaze, y, len(row), m.width)
		}
	}
	for x := 0; x < m.width; x++ {
		if m.grid[0][x] != CellWall || m.grid[m.height-1][x] != CellWall {
			return fmt.Errorf("%w: open cell on horizontal border at col %d", ErrInvalidMaze, x)
		}
	}
	for y := 1; y < m.height-1; y++ {
		leftOpen := m.grid[y][0] != CellWall
		rightOpen := m.grid[y][m.width-1] != CellWall
		if leftOpen != rightOpen {
			return fmt.Errorf("%w: row %d has a one-sided tunnel", ErrInvalidMaze, y)
		}
	}
	return m.checkConnected()
}

// checkConnected flood-fills from the first walkable cell using the same
// neighborhood movement uses (horizontal wrap, no vertical wrap).
func (m *Maze) checkConnected() error {
	walkable := m.Cells(CellOpen, CellPen)
	if len(walkable) == 0 {
		return fmt.Errorf("%w: no walkable cells", ErrInvalidMaze)
	}

	seen := make(map[Cell]bool, len(walkable))
	queue := []Cell{walkable[0]}
	seen[walkable[0]] = true
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			n := m.Wrap(c.Add(d))
			if !seen[n] && m.IsWalkable(n) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}

	if len(seen) != len(walkable) {
		return fmt.Errorf("%w: %d of %d walkable cells unreachable", ErrInvalidMaze, len(walkable)-len(seen), len(walkable))
	}
	return nil
}

// RetreatCorner is the bottom-left cell the Opportunist falls back to.
func (m *Maze) RetreatCorner() Cell {
	return Cell{X: 0, Y: m.height - 1}
}

func (m *Maze) Width() int  { return m.width }
func (m *Maze) Height() int { return m.height }

// RowExists reports whether y indexes a maze row.
func (m *Maze) RowExists(y int) bool {
	return y >= 0 && y < m.height
}

// InBounds reports whether c lies inside the grid.
func (m *Maze) InBounds(c Cell) bool {
	return m.RowExists(c.Y) && c.X >= 0 && c.X < m.width
}

// KindAt returns the kind of c. Callers are expected to bounds-check first.
func (m *Maze) KindAt(c Cell) (CellKind, error) {
	if !m.InBounds(c) {
		return CellWall, fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, c.X, c.Y)
	}
	return m.grid[c.Y][c.X], nil
}

// IsWalkable is true iff c is in bounds and not a wall.
func (m *Maze) IsWalkable(c Cell) bool {
	kind, err := m.KindAt(c)
	return err == nil && kind != CellWall
}

// Wrap folds a horizontal overflow back onto the grid. Rows are not wrapped.
func (m *Maze) Wrap(c Cell) Cell {
	if c.X < 0 {
		c.X = m.width - 1
	} else if c.X >= m.width {
		c.X = 0
	}
	return c
}

// Cells returns every cell of the given kinds in row-major order.
func (m *Maze) Cells(kinds ...CellKind) []Cell {
	var cells []Cell
	for y, row := range m.grid {
		for x, k := range row {
			for _, want := range kinds {
				if k == want {
					cells = append(cells, Cell{X: x, Y: y})
					break
				}
			}
		}
	}
	return cells
}

// Grid returns a copy of the cell kinds, indexed [row][col].
func (m *Maze) Grid() [][]CellKind {
	out := make([][]CellKind, m.height)
	for y, row := range m.grid {
		out[y] = append([]CellKind(nil), row...)
	}
	return out
}

func (m *Maze) String() string {
	var b strings.Builder
	for _, row := range m.grid {
		for _, k := range row {
			b.WriteByte(k.glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
