// Package catalog provides the immutable static data tables the combat engine
// reads: items, skills, passives, essences, monster templates and room
// templates. Tables are loaded once at startup and never mutated afterwards.
package catalog

// Role represents a monster template's behavioral role in combat.
type Role string

const (
	RoleBrute      Role = "brute"
	RoleCaster     Role = "caster"
	RoleSkirmisher Role = "skirmisher"
	RoleSupport    Role = "support"
	RoleElite      Role = "elite"
)

// EquipSlot identifies an equipment slot. A player holds at most one item per slot.
type EquipSlot string

const (
	SlotWeapon  EquipSlot = "weapon"
	SlotArmor   EquipSlot = "armor"
	SlotTrinket EquipSlot = "trinket"
)

// ItemDefinition describes a static item.
type ItemDefinition struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Weight      int     `yaml:"weight"`
	Slot        string  `yaml:"slot,omitempty"` // weapon/armor/trinket, empty = not equippable
	Value       int     `yaml:"value"`
	DropWeight  float64 `yaml:"drop_weight,omitempty"`
}

// StatusApplication is one entry in a skill's status table: a condition applied
// to self or the foe, rolled independently against its chance.
type StatusApplication struct {
	Effect   string  `yaml:"effect"`
	Duration int     `yaml:"duration"`
	Chance   float64 `yaml:"chance,omitempty"` // percent, 0 means 100
	Target   string  `yaml:"target,omitempty"` // "self" or "foe", default "foe"
}

// SkillDefinition describes an invokable combat skill.
type SkillDefinition struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	BaseMin     int                 `yaml:"base_min"`
	BaseMax     int                 `yaml:"base_max"`
	StaminaCost int                 `yaml:"stamina_cost"`
	Cooldown    int                 `yaml:"cooldown,omitempty"` // seconds, 0 = none
	Statuses    []StatusApplication `yaml:"statuses,omitempty"`
	Lineage     string              `yaml:"lineage,omitempty"` // required lineage, empty = open to all
	SideEffect  string              `yaml:"side_effect,omitempty"` // "shield" or "drone"
	Charges     int                 `yaml:"charges,omitempty"`     // drone charges granted by a "drone" side effect
}

// RequiresLineage returns true if the skill is gated behind a lineage.
func (s *SkillDefinition) RequiresLineage() bool {
	return s.Lineage != ""
}

// ModifierGrant is the set of combat-modifier deltas contributed by one passive
// or essence id. All fields are additive; the resolver accumulates them in any
// order.
type ModifierGrant struct {
	DamageMult     float64 `yaml:"damage_mult,omitempty"`    // added to the 1.0 base multiplier
	DamagePerFoe   float64 `yaml:"damage_per_foe,omitempty"` // multiplier bonus per living monster in the room
	ElementalBonus int     `yaml:"elemental_bonus,omitempty"`
	Element        string  `yaml:"element,omitempty"`
	StaminaDelta   int     `yaml:"stamina_delta,omitempty"`
	CritBonus      float64 `yaml:"crit_bonus,omitempty"`
	CounterSkip    float64 `yaml:"counter_skip,omitempty"`
	CounterMitPct  float64 `yaml:"counter_mit_pct,omitempty"`
	CounterMitFlat int     `yaml:"counter_mit_flat,omitempty"`
	ExtraHits      int     `yaml:"extra_hits,omitempty"`
	DotDamage      int     `yaml:"dot_damage,omitempty"`
	HealOnKill     int     `yaml:"heal_on_kill,omitempty"`
	DronePulse     int     `yaml:"drone_pulse,omitempty"`
	FleeBonus      float64 `yaml:"flee_bonus,omitempty"`
}

// LootEntry is one row of a monster template's loot table.
type LootEntry struct {
	ItemID     string  `yaml:"item"`
	DropChance float64 `yaml:"chance"` // percent, 0-100
}

// DamageRange is an inclusive min/max damage roll range.
type DamageRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// MonsterTemplate is the static definition a monster instance is stamped from.
type MonsterTemplate struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	HP          int         `yaml:"hp"`
	Damage      DamageRange `yaml:"damage"`
	Role        Role        `yaml:"role"`
	Biome       string      `yaml:"biome,omitempty"`
	Experience  int         `yaml:"experience"`
	GoldMin     int         `yaml:"gold_min,omitempty"`
	GoldMax     int         `yaml:"gold_max,omitempty"`
	LootTable   []LootEntry `yaml:"loot,omitempty"`
}

// RoomTemplate describes a room as the engine sees it: a difficulty rating and
// the monster templates that spawn there. Topology (exits, floors) is owned by
// the world generator, which is a separate collaborator.
type RoomTemplate struct {
	Name       string   `yaml:"name"`
	Difficulty int      `yaml:"difficulty"`
	Monsters   []string `yaml:"monsters"` // monster template ids, one instance each at base spawn
}
