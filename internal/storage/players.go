package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hollowfall/delve/internal/player"
)

// LoadPlayer loads a player's state by id. Returns ErrNotFound if the player
// has never been saved; the engine never fabricates a player.
func (s *Store) LoadPlayer(id string) (*player.Player, error) {
	query := s.dialect.Rebind("SELECT data FROM players WHERE id = ?")

	var data []byte
	err := s.db.QueryRow(query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player %s: %w", id, err)
	}

	var p player.Player
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode player %s: %w", id, err)
	}
	return &p, nil
}

// SavePlayer upserts a player's state.
func (s *Store) SavePlayer(p *player.Player) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode player %s: %w", p.ID, err)
	}

	query := s.dialect.Rebind(`INSERT INTO players (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`)
	if _, err := s.db.Exec(query, p.ID, string(data), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save player %s: %w", p.ID, err)
	}
	return nil
}
