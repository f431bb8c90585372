package game

import "errors"

var (
	// ErrOutOfRange is returned by grid lookups outside the maze bounds.
	ErrOutOfRange = errors.New("cell out of range")
	// ErrNoValidMove means a pursuer has no walkable neighbor. The maze is malformed.
	ErrNoValidMove = errors.New("no valid move")
	// ErrInvalidHeading rejects a heading that is not a unit direction.
	ErrInvalidHeading = errors.New("invalid heading")
	// ErrInvalidMaze is returned when a layout breaks the grid invariants.
	ErrInvalidMaze = errors.New("invalid maze")
)
