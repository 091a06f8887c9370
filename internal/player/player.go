// Package player defines the persistent combat state of a player character.
// The engine mutates a loaded Player inside the room guard's critical section;
// the surrounding system guarantees a single writer per player.
package player

import (
	"time"

	"github.com/hollowfall/delve/internal/catalog"
)

// Attributes are the seven primary attributes.
type Attributes struct {
	Strength int `json:"strength"`
	Agility  int `json:"agility"`
	Vigor    int `json:"vigor"`
	Mind     int `json:"mind"`
	Luck     int `json:"luck"`
	Blood    int `json:"blood"`
	Focus    int `json:"focus"`
}

// SubAttributes are the seven derived sub-attributes.
type SubAttributes struct {
	CarryCapacity   int `json:"carry_capacity"`
	PhysicalResist  int `json:"physical_resist"`
	EtherealResist  int `json:"ethereal_resist"`
	AttackSpeed     int `json:"attack_speed"`
	StaminaRegen    int `json:"stamina_regen"`
	EssenceAffinity int `json:"essence_affinity"`
	Perception      int `json:"perception"`
}

// Player is a player character's combat-relevant state. It is persisted as a
// JSON blob by the storage layer.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Lineage string `json:"lineage,omitempty"`

	Attributes Attributes    `json:"attributes"`
	Subs       SubAttributes `json:"subs"`

	HP         int `json:"hp"`
	MaxHP      int `json:"max_hp"`
	Stamina    int `json:"stamina"`
	MaxStamina int `json:"max_stamina"`

	Gold       int `json:"gold"`
	Experience int `json:"experience"`
	Corruption int `json:"corruption"` // 0-100

	Equipment map[string]string `json:"equipment,omitempty"` // slot -> item id
	Inventory map[string]int    `json:"inventory,omitempty"` // item id -> quantity

	Passives     map[string]bool `json:"passives,omitempty"`
	Essences     map[string]bool `json:"essences,omitempty"`
	EssenceSlots int             `json:"essence_slots"`

	// Shield absorbs incoming damage 1:1 before HP. DroneCharges power the
	// drone's pulse and counter interception.
	Shield       int `json:"shield,omitempty"`
	DroneCharges int `json:"drone_charges,omitempty"`

	// TargetID is the currently selected monster instance, if any.
	TargetID string `json:"target_id,omitempty"`

	Cooldowns  map[string]time.Time `json:"cooldowns,omitempty"` // skill id -> last use
	Conditions map[string]int       `json:"conditions,omitempty"`
}

// New creates a player with sane defaults and empty collections.
func New(id, name string) *Player {
	return &Player{
		ID:           id,
		Name:         name,
		Attributes:   Attributes{Strength: 10, Agility: 10, Vigor: 10, Mind: 10, Luck: 10, Blood: 10, Focus: 10},
		Subs:         SubAttributes{CarryCapacity: 20, PhysicalResist: 5, AttackSpeed: 5, StaminaRegen: 2, Perception: 5},
		HP:           100,
		MaxHP:        100,
		Stamina:      50,
		MaxStamina:   50,
		Gold:         20,
		EssenceSlots: 3,
		Equipment:    make(map[string]string),
		Inventory:    make(map[string]int),
		Passives:     make(map[string]bool),
		Essences:     make(map[string]bool),
		Cooldowns:    make(map[string]time.Time),
		Conditions:   make(map[string]int),
	}
}

// HasPassive reports whether the player has unlocked the given passive.
func (p *Player) HasPassive(id string) bool {
	return p.Passives[id]
}

// HasEssence reports whether the player has absorbed the given essence.
func (p *Player) HasEssence(id string) bool {
	return p.Essences[id]
}

// EquippedWeight sums the weight of every equipped item. Unknown item ids
// weigh nothing.
func (p *Player) EquippedWeight(cat *catalog.Catalog) int {
	total := 0
	for _, itemID := range p.Equipment {
		if def, ok := cat.Item(itemID); ok {
			total += def.Weight
		}
	}
	return total
}

// ClampVitals clamps HP and stamina into [0, max].
func (p *Player) ClampVitals() {
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.HP < 0 {
		p.HP = 0
	}
	if p.Stamina > p.MaxStamina {
		p.Stamina = p.MaxStamina
	}
	if p.Stamina < 0 {
		p.Stamina = 0
	}
}

// Heal restores HP up to the maximum.
func (p *Player) Heal(amount int) {
	if amount <= 0 {
		return
	}
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// SpendStamina deducts up to cost stamina, flooring at 0, and returns the
// amount actually deducted.
func (p *Player) SpendStamina(cost int) int {
	if cost <= 0 {
		return 0
	}
	spent := cost
	if spent > p.Stamina {
		spent = p.Stamina
	}
	p.Stamina -= spent
	return spent
}

// DrainStamina removes stamina, flooring at 0.
func (p *Player) DrainStamina(amount int) {
	p.Stamina -= amount
	if p.Stamina < 0 {
		p.Stamina = 0
	}
}

// AddItem adds quantity of an item to the inventory.
func (p *Player) AddItem(itemID string, quantity int) {
	if quantity <= 0 {
		return
	}
	if p.Inventory == nil {
		p.Inventory = make(map[string]int)
	}
	p.Inventory[itemID] += quantity
}

// OnCooldown reports whether a skill is still cooling down at the given time.
func (p *Player) OnCooldown(skillID string, cooldownSeconds int, now time.Time) bool {
	if cooldownSeconds <= 0 {
		return false
	}
	last, ok := p.Cooldowns[skillID]
	if !ok {
		return false
	}
	return now.Sub(last) < time.Duration(cooldownSeconds)*time.Second
}

// MarkUsed records a skill use for cooldown tracking.
func (p *Player) MarkUsed(skillID string, now time.Time) {
	if p.Cooldowns == nil {
		p.Cooldowns = make(map[string]time.Time)
	}
	p.Cooldowns[skillID] = now
}
