package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/preston-bernstein/mlb-season-service/internal/domain/games"
)

const gamesTable = `
CREATE TABLE IF NOT EXISTS games (
	position INTEGER PRIMARY KEY,
	game_pk INTEGER NOT NULL,
	game_date TEXT NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS games_game_pk ON games (game_pk);
`

// SQLiteStore persists the dataset in a SQLite file so a restart can serve
// the last refresh before the next one completes.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(gamesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create games table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// SetGames replaces the stored games in a single transaction.
func (s *SQLiteStore) SetGames(raw []games.RawGame) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM games`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO games (position, game_pk, game_date, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, g := range raw {
		payload, mErr := json.Marshal(g)
		if mErr != nil {
			err = mErr
			return err
		}
		if _, err = stmt.Exec(i, g.GamePK, g.GameDate, string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListGames returns every stored game in insertion order.
func (s *SQLiteStore) ListGames() ([]games.RawGame, error) {
	rows, err := s.db.Query(`SELECT payload FROM games ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]games.RawGame, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var g games.RawGame
		if err := json.Unmarshal([]byte(payload), &g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetGame retrieves a game by its gamePk. The first stored match wins.
func (s *SQLiteStore) GetGame(gamePK int64) (games.RawGame, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM games WHERE game_pk = ? ORDER BY position LIMIT 1`, gamePK).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return games.RawGame{}, false, nil
	}
	if err != nil {
		return games.RawGame{}, false, err
	}
	var g games.RawGame
	if err := json.Unmarshal([]byte(payload), &g); err != nil {
		return games.RawGame{}, false, err
	}
	return g, true, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
