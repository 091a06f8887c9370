package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hollowfall/delve/internal/encounter"
)

// LoadEncounter loads a room's encounter state. Returns (nil, nil) when the
// room has no persisted state yet; the lifecycle manager treats that as first
// access.
func (s *Store) LoadEncounter(roomID string) (*encounter.RoomEncounterState, error) {
	query := s.dialect.Rebind("SELECT data FROM encounters WHERE room_id = ?")

	var data []byte
	err := s.db.QueryRow(query, roomID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load encounter %s: %w", roomID, err)
	}

	var state encounter.RoomEncounterState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode encounter %s: %w", roomID, err)
	}
	return &state, nil
}

// SaveEncounter upserts a room's encounter state.
func (s *Store) SaveEncounter(state *encounter.RoomEncounterState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode encounter %s: %w", state.RoomID, err)
	}

	query := s.dialect.Rebind(`INSERT INTO encounters (room_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(room_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`)
	if _, err := s.db.Exec(query, state.RoomID, string(data), time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to save encounter %s: %w", state.RoomID, err)
	}
	return nil
}
