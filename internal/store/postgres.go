package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ugaemi/mazechase/internal/record"
)

const schema = `
CREATE TABLE IF NOT EXISTS round_results (
    id TEXT PRIMARY KEY,
    nickname TEXT NOT NULL DEFAULT '',
    score INTEGER NOT NULL,
    won BOOLEAN NOT NULL DEFAULT false,
    ticks INTEGER NOT NULL,
    finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_round_results_rank
    ON round_results (score DESC, won DESC, ticks ASC, finished_at ASC);
`

const selectResult = `SELECT id, nickname, score, won, ticks, finished_at FROM round_results`

// PostgresStore implements ResultStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Save inserts a finished round.
func (s *PostgresStore) Save(ctx context.Context, r *record.Result) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO round_results (id, nickname, score, won, ticks, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Nickname, r.Score, r.Won, r.Ticks, r.FinishedAt)
	return err
}

// FindByID looks up a result by ID.
func (s *PostgresStore) FindByID(ctx context.Context, id string) (*record.Result, error) {
	row := s.pool.QueryRow(ctx, selectResult+` WHERE id = $1`, id)

	r, err := scanResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// Top returns the best results.
func (s *PostgresStore) Top(ctx context.Context, limit int) ([]*record.Result, error) {
	rows, err := s.pool.Query(ctx,
		selectResult+` ORDER BY score DESC, won DESC, ticks ASC, finished_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*record.Result, 0, limit)
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanResult(row pgx.Row) (*record.Result, error) {
	var r record.Result
	err := row.Scan(&r.ID, &r.Nickname, &r.Score, &r.Won, &r.Ticks, &r.FinishedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
