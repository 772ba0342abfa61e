package highscore

import (
	"context"
	"fmt"
	"io"
)

// Open returns a PostgresStore when databaseURL is set and a FileStore at
// path otherwise. The closer releases the database pool.
func Open(ctx context.Context, databaseURL, path string) (Store, io.Closer, error) {
	if databaseURL == "" {
		return NewFileStore(path), nopCloser{}, nil
	}

	s, err := NewPostgresStore(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect high score database: %w", err)
	}
	return s, s, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
