// Package encounter implements the combat and encounter simulation engine:
// modifier resolution, status conditions, player action resolution, monster
// turns and the per-room encounter lifecycle. All entry points assume the
// caller already holds the room's mutual-exclusion guard.
package encounter

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hollowfall/delve/internal/catalog"
	"github.com/hollowfall/delve/internal/dice"
)

// ErrUnknownRoom is returned when a room id has no template in the catalog.
var ErrUnknownRoom = errors.New("unknown room")

// MonsterInstance is an ephemeral per-room monster, stamped from a template.
// Once Alive is false the instance is never mutated again.
type MonsterInstance struct {
	ID         string         `json:"id"`
	TemplateID string         `json:"template_id"`
	HP         int            `json:"hp"`
	MaxHP      int            `json:"max_hp"`
	Alive      bool           `json:"alive"`
	Power      int            `json:"power,omitempty"` // 0 = baseline, >0 = empowered by consumed loot
	Conditions map[string]int `json:"conditions,omitempty"`
}

// LootStackEntry is one stacked pile of dropped loot. Order matters: the
// lifecycle manager consumes the oldest entries first when seeding powered
// instances.
type LootStackEntry struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// RoomEncounterState is the persisted encounter state of one room.
type RoomEncounterState struct {
	RoomID      string             `json:"room_id"`
	Instances   []*MonsterInstance `json:"instances"`
	LastUpdated time.Time          `json:"last_updated"`
	Loot        []LootStackEntry   `json:"loot,omitempty"`

	// DeathCount is the number of full clears of this room. It only ever
	// increases and is never reset here; it drives respawn scaling.
	DeathCount int `json:"death_count"`
}

// normalize fills in collections that older persisted shapes may lack.
func (s *RoomEncounterState) normalize() {
	if s.Loot == nil {
		s.Loot = []LootStackEntry{}
	}
	for _, inst := range s.Instances {
		if inst.Conditions == nil {
			inst.Conditions = make(map[string]int)
		}
	}
}

// AliveInstances returns the currently living monster instances.
func (s *RoomEncounterState) AliveInstances() []*MonsterInstance {
	var alive []*MonsterInstance
	for _, inst := range s.Instances {
		if inst.Alive {
			alive = append(alive, inst)
		}
	}
	return alive
}

// AliveCount returns the number of living monster instances.
func (s *RoomEncounterState) AliveCount() int {
	count := 0
	for _, inst := range s.Instances {
		if inst.Alive {
			count++
		}
	}
	return count
}

// Instance returns the instance with the given id, or nil.
func (s *RoomEncounterState) Instance(id string) *MonsterInstance {
	for _, inst := range s.Instances {
		if inst.ID == id {
			return inst
		}
	}
	return nil
}

// AddLoot pushes dropped loot onto the room's loot stack, merging into the
// newest entry when the item id matches.
func (s *RoomEncounterState) AddLoot(itemID string, quantity int) {
	if quantity <= 0 {
		return
	}
	if n := len(s.Loot); n > 0 && s.Loot[n-1].ItemID == itemID {
		s.Loot[n-1].Quantity += quantity
		return
	}
	s.Loot = append(s.Loot, LootStackEntry{ItemID: itemID, Quantity: quantity})
}

// Action is a player-issued combat action. An empty SkillID means the basic
// attack; TargetID optionally names a monster instance.
type Action struct {
	SkillID  string `json:"skill_id,omitempty"`
	TargetID string `json:"target_id,omitempty"`
}

// ActionResult is the outcome of one resolved player action. Killed references
// the instance that died this action, if any.
type ActionResult struct {
	Log    []string
	Killed *MonsterInstance
}

// FleeResult is the outcome of a flee attempt.
type FleeResult struct {
	Success bool
	Log     []string
}

// TurnResult is the outcome of a monster turn. Killed lists instances that
// died during the turn (condition ticks); callers use it for room-clear
// bookkeeping the same way they use ActionResult.Killed.
type TurnResult struct {
	Log    []string
	Killed []*MonsterInstance
}

// EncounterStore is the persistence collaborator the lifecycle manager uses.
// Load returns (nil, nil) when no state exists for the room yet.
type EncounterStore interface {
	LoadEncounter(roomID string) (*RoomEncounterState, error)
	SaveEncounter(state *RoomEncounterState) error
}

// Engine resolves combat for all rooms. It holds only immutable catalogs and
// injected capabilities, so a single Engine is shared across connections.
type Engine struct {
	Catalog *catalog.Catalog
	Rand    dice.Source

	// Now is the clock used for cooldowns and respawn windows. Swappable in
	// tests; defaults to time.Now.
	Now func() time.Time
}

// NewEngine creates an engine over the given catalog and randomness source.
func NewEngine(cat *catalog.Catalog, rng dice.Source) *Engine {
	return &Engine{
		Catalog: cat,
		Rand:    rng,
		Now:     time.Now,
	}
}

// newInstance stamps a fresh monster instance from a template.
func newInstance(templateID string, hp int, power int) *MonsterInstance {
	return &MonsterInstance{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		HP:         hp,
		MaxHP:      hp,
		Alive:      true,
		Power:      power,
		Conditions: make(map[string]int),
	}
}
