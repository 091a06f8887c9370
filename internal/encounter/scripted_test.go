package encounter

import (
	"github.com/hollowfall/delve/internal/catalog"
	"github.com/hollowfall/delve/internal/player"
)

// scriptSource is a dice.Source that replays a fixed script. Exhausted
// scripts fall back to 0.99 floats (probability rolls fail) and 0 ints
// (lowest roll), keeping tests deterministic without scripting every call.
type scriptSource struct {
	floats []float64
	ints   []int
}

func (s *scriptSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// testCatalog builds a small fixed catalog used across the engine tests.
func testCatalog() *catalog.Catalog {
	items := map[string]catalog.ItemDefinition{
		"heavy_blade": {Name: "Heavy Blade", Weight: 24, Slot: "weapon"},
		"fang":        {Name: "Fang", Weight: 1},
	}
	skills := map[string]catalog.SkillDefinition{
		"cleave": {Name: "cleave", BaseMin: 4, BaseMax: 8, StaminaCost: 6},
		"steady": {Name: "steady", BaseMin: 6, BaseMax: 6, StaminaCost: 6},
		"hexweave": {
			Name: "hexweave", BaseMin: 2, BaseMax: 2, StaminaCost: 5,
			Statuses: []catalog.StatusApplication{
				{Effect: "poison", Duration: 4},
			},
		},
		"bulwark": {Name: "bulwark", BaseMin: 1, BaseMax: 1, StaminaCost: 8, SideEffect: "shield"},
		"riposte": {Name: "riposte", BaseMin: 3, BaseMax: 3, StaminaCost: 5, Cooldown: 30},
		"summon_drone": {
			Name: "summon drone", BaseMin: 1, BaseMax: 1, StaminaCost: 8,
			Lineage: "tinker", SideEffect: "drone", Charges: 3,
		},
	}
	passives := map[string]catalog.ModifierGrant{
		"heavy_hands":    {DamageMult: 0.10},
		"fleet_step":     {FleeBonus: 0.10},
		"duelists_poise": {CounterSkip: 0.10},
		"pack_reader":    {DamagePerFoe: 0.02},
	}
	essences := map[string]catalog.ModifierGrant{
		"lucky_marrow": {CritBonus: 0.05},
	}
	monsters := map[string]catalog.MonsterTemplate{
		"hound": {
			Name: "Gutter Hound", HP: 15, Damage: catalog.DamageRange{Min: 2, Max: 5},
			Role: catalog.RoleSkirmisher, Biome: "mire", Experience: 8,
			GoldMin: 2, GoldMax: 2,
			LootTable: []catalog.LootEntry{{ItemID: "fang", DropChance: 100}},
		},
		"thug": {
			Name: "Barrow Thug", HP: 24, Damage: catalog.DamageRange{Min: 5, Max: 5},
			Role: catalog.RoleBrute, Biome: "crypt", Experience: 14,
		},
		"witch": {
			Name: "Wick Witch", HP: 16, Damage: catalog.DamageRange{Min: 3, Max: 3},
			Role: catalog.RoleCaster, Biome: "cinder", Experience: 16,
		},
		"warden": {
			Name: "Bone Warden", HP: 20, Damage: catalog.DamageRange{Min: 1, Max: 4},
			Role: catalog.RoleSupport, Biome: "crypt", Experience: 12,
		},
	}
	rooms := map[string]catalog.RoomTemplate{
		"shallows": {Name: "The Shallows", Difficulty: 1, Monsters: []string{"hound", "hound"}},
		"gate":     {Name: "Barrow Gate", Difficulty: 2, Monsters: []string{"thug", "warden"}},
	}
	return catalog.New(items, skills, passives, essences, monsters, rooms)
}

// testPlayer builds a neutral player: no passives, no equipment, no luck, so
// every probability in a test comes only from what the test sets up.
func testPlayer() *player.Player {
	p := player.New("p1", "Vess")
	p.Attributes = player.Attributes{}
	p.Subs = player.SubAttributes{CarryCapacity: 20}
	p.HP = 100
	p.MaxHP = 100
	p.Stamina = 50
	p.MaxStamina = 50
	p.Gold = 0
	return p
}

// testEngine wires a scripted source into an engine over the test catalog.
func testEngine(src *scriptSource) *Engine {
	return NewEngine(testCatalog(), src)
}

// singleMonsterState builds a room state with one living instance of the
// given template.
func singleMonsterState(templateID string, hp int) (*RoomEncounterState, *MonsterInstance) {
	inst := newInstance(templateID, hp, 0)
	state := &RoomEncounterState{
		RoomID:    "shallows",
		Instances: []*MonsterInstance{inst},
		Loot:      []LootStackEntry{},
	}
	return state, inst
}
