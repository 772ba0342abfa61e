package highscore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
)

// FileStore keeps the high score as a decimal integer in a text file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns 0 for a missing or corrupt file. Other read failures are
// returned alongside 0 so the caller may log them.
func (s *FileStore) Load(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save writes score unless the file already holds a higher one.
func (s *FileStore) Save(_ context.Context, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, err := s.load(); err == nil && current > score {
		return nil
	}
	return os.WriteFile(s.path, []byte(strconv.Itoa(score)), 0o644)
}

func (s *FileStore) load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || score < 0 {
		return 0, nil
	}
	return score, nil
}
