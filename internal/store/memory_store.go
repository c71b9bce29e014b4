package store

import (
	"sync"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

// MemoryStore keeps a thread-safe snapshot of games in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	games []games.RawGame
	index map[int64]int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: []games.RawGame{},
		index: make(map[int64]int),
	}
}

// ListGames returns a copy of the current games slice.
func (s *MemoryStore) ListGames() ([]games.RawGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.RawGame, len(s.games))
	copy(result, s.games)
	return result, nil
}

// GetGame retrieves a game by its gamePk. The first stored match wins.
func (s *MemoryStore) GetGame(gamePK int64) (games.RawGame, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[gamePK]
	if !ok {
		return games.RawGame{}, false, nil
	}
	return s.games[i], true, nil
}

// SetGames replaces the existing games with a new snapshot.
func (s *MemoryStore) SetGames(raw []games.RawGame) error {
	next := make([]games.RawGame, len(raw))
	copy(next, raw)
	index := make(map[int64]int, len(raw))
	for i, g := range next {
		if _, seen := index[g.GamePK]; !seen {
			index[g.GamePK] = i
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = next
	s.index = index
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
