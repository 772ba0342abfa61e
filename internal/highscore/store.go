// Package highscore persists the single best score.
package highscore

import "context"

// Store loads and saves the high score. Load reports 0 when nothing has been
// saved yet. Save never lowers a stored score, so sessions sharing a store
// cannot overwrite each other's best.
type Store interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, score int) error
}

// Memory keeps the score in process. The zero value is ready to use.
type Memory struct {
	score int
}

func (m *Memory) Load(context.Context) (int, error) {
	return m.score, nil
}

func (m *Memory) Save(_ context.Context, score int) error {
	if score > m.score {
		m.score = score
	}
	return nil
}
