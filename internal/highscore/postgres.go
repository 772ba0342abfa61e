package highscore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS high_scores (
    id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    score INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// PostgresStore keeps the high score in a single-row table. Saves never lower
// the stored value, so concurrent sessions cannot overwrite a better score.
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

func (s *PostgresStore) Load(ctx context.Context) (int, error) {
	var score int
	err := s.pool.QueryRow(ctx, `SELECT score FROM high_scores WHERE id = 1`).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return score, err
}

func (s *PostgresStore) Save(ctx context.Context, score int) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO high_scores (id, score, updated_at) VALUES (1, $1, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET score = GREATEST(high_scores.score, EXCLUDED.score), updated_at = NOW()`,
		score)
	return err
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
