package export

import (
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

// Store defines how exported games tables are loaded.
type Store interface {
	LoadGames(season int) ([]games.RawGame, error)
	HasGames(season int) bool
}

// FSStore loads games tables from the filesystem.
type FSStore struct {
	dir    string
	prefix string
}

// NewFSStore constructs an FS-backed store rooted at dir.
func NewFSStore(dir, prefix string) *FSStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &FSStore{dir: dir, prefix: prefix}
}

// LoadGames reads {dir}/{prefix}_games_{season}.csv. A missing table returns
// an error matching os.ErrNotExist.
func (s *FSStore) LoadGames(season int) ([]games.RawGame, error) {
	if s == nil {
		return nil, errors.New("export store not configured")
	}
	path := GamesPath(s.dir, s.prefix, season)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := DecodeGames(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return raw, nil
}

// HasGames reports whether the season's games table exists.
func (s *FSStore) HasGames(season int) bool {
	if s == nil {
		return false
	}
	info, err := os.Stat(GamesPath(s.dir, s.prefix, season))
	return err == nil && !info.IsDir()
}
