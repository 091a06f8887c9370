package encounter

import (
	"fmt"
	"time"

	"github.com/hollowfall/delve/internal/catalog"
)

// Respawn scaling tuning.
const (
	// DefaultRespawnWindow is how long a cleared room stays empty before it
	// becomes eligible to respawn.
	DefaultRespawnWindow = 90 * time.Second

	respawnExtraInstanceCap = 2
	respawnHPPerDeath       = 0.15
	respawnHPBonusCap       = 0.40
	maxPoweredInstances     = 3
)

// LoadOrRefreshEncounter loads a room's encounter state, creating it on first
// access and regenerating it when the room is cleared and the respawn window
// has elapsed. DeathCount always carries forward across regeneration; it is
// incremented only by the collaborator that records a full clear.
func (e *Engine) LoadOrRefreshEncounter(store EncounterStore, roomID string, respawnWindow time.Duration) (*RoomEncounterState, error) {
	room, ok := e.Catalog.Room(roomID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoom, roomID)
	}
	if respawnWindow <= 0 {
		respawnWindow = DefaultRespawnWindow
	}

	state, err := store.LoadEncounter(roomID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = e.freshEncounter(roomID, room)
		if err := store.SaveEncounter(state); err != nil {
			return nil, err
		}
		return state, nil
	}

	state.normalize()
	if state.AliveCount() == 0 && e.Now().Sub(state.LastUpdated) > respawnWindow {
		e.regenerate(state, room)
		if err := store.SaveEncounter(state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// freshEncounter spawns one baseline instance per listed monster template.
func (e *Engine) freshEncounter(roomID string, room catalog.RoomTemplate) *RoomEncounterState {
	state := &RoomEncounterState{
		RoomID:      roomID,
		LastUpdated: e.Now(),
		Loot:        []LootStackEntry{},
	}
	for _, templateID := range room.Monsters {
		t, ok := e.Catalog.Monster(templateID)
		if !ok {
			continue
		}
		state.Instances = append(state.Instances, newInstance(templateID, t.HP, 0))
	}
	return state
}

// regenerate rebuilds a cleared room's instances in place. Instance count and
// HP scale with the room's death history, and leftover loot empowers up to
// three instances, consuming the oldest stack entries first.
func (e *Engine) regenerate(state *RoomEncounterState, room catalog.RoomTemplate) {
	if len(room.Monsters) == 0 {
		state.Instances = nil
		state.LastUpdated = e.Now()
		return
	}

	extra := state.DeathCount
	if extra > respawnExtraInstanceCap {
		extra = respawnExtraInstanceCap
	}
	count := len(room.Monsters)
	if scaled := 1 + extra; scaled > count {
		count = scaled
	}

	hpBonus := respawnHPPerDeath * float64(state.DeathCount)
	if hpBonus > respawnHPBonusCap {
		hpBonus = respawnHPBonusCap
	}
	hpMult := 1 + hpBonus

	instances := make([]*MonsterInstance, 0, count)
	for i := 0; i < count; i++ {
		templateID := room.Monsters[i%len(room.Monsters)]
		t, ok := e.Catalog.Monster(templateID)
		if !ok {
			continue
		}
		power := 0
		if i < maxPoweredInstances && e.consumeLoot(state) {
			power = 1
		}
		instances = append(instances, newInstance(templateID, int(float64(t.HP)*hpMult), power))
	}

	state.Instances = instances
	state.LastUpdated = e.Now()
}

// consumeLoot removes one unit from the oldest loot stack entry, dropping
// exhausted entries. Returns false when the stack is empty.
func (e *Engine) consumeLoot(state *RoomEncounterState) bool {
	if len(state.Loot) == 0 {
		return false
	}
	state.Loot[0].Quantity--
	if state.Loot[0].Quantity <= 0 {
		state.Loot = state.Loot[1:]
	}
	return true
}
