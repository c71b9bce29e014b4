package store

import "github.com/preston-bernstein/mlb-season-service/internal/domain/games"

// GameStore holds the assembled dataset. ListGames returns games in the
// order they were set.
type GameStore interface {
	SetGames(raw []games.RawGame) error
	ListGames() ([]games.RawGame, error)
	GetGame(gamePK int64) (games.RawGame, bool, error)
	Close() error
}
