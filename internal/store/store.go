package store

import (
	"context"

	"github.com/ugaemi/mazechase/internal/record"
)

// ResultStore persists finished rounds and serves the leaderboard.
type ResultStore interface {
	// Save inserts a finished round.
	Save(ctx context.Context, r *record.Result) error
	// FindByID looks up a result. It returns nil, nil when there is none.
	FindByID(ctx context.Context, id string) (*record.Result, error)
	// Top returns up to limit results in leaderboard order.
	Top(ctx context.Context, limit int) ([]*record.Result, error)
	// Close releases resources.
	Close() error
}
