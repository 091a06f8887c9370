package catalog

// Catalog aggregates every static lookup table. It is built once at startup
// and treated as read-only afterwards; lookups for unknown ids return the zero
// value and false rather than an error.
type Catalog struct {
	items    map[string]ItemDefinition
	skills   map[string]SkillDefinition
	passives map[string]ModifierGrant
	essences map[string]ModifierGrant
	monsters map[string]MonsterTemplate
	rooms    map[string]RoomTemplate
}

// New builds a Catalog from the given tables. Nil maps are replaced with empty
// ones so lookups never panic.
func New(items map[string]ItemDefinition, skills map[string]SkillDefinition,
	passives, essences map[string]ModifierGrant,
	monsters map[string]MonsterTemplate, rooms map[string]RoomTemplate) *Catalog {
	if items == nil {
		items = map[string]ItemDefinition{}
	}
	if skills == nil {
		skills = map[string]SkillDefinition{}
	}
	if passives == nil {
		passives = map[string]ModifierGrant{}
	}
	if essences == nil {
		essences = map[string]ModifierGrant{}
	}
	if monsters == nil {
		monsters = map[string]MonsterTemplate{}
	}
	if rooms == nil {
		rooms = map[string]RoomTemplate{}
	}
	return &Catalog{
		items:    items,
		skills:   skills,
		passives: passives,
		essences: essences,
		monsters: monsters,
		rooms:    rooms,
	}
}

// Item returns the item definition for the given id.
func (c *Catalog) Item(id string) (ItemDefinition, bool) {
	def, ok := c.items[id]
	return def, ok
}

// Skill returns the skill definition for the given id.
func (c *Catalog) Skill(id string) (SkillDefinition, bool) {
	def, ok := c.skills[id]
	return def, ok
}

// Passive returns the modifier grant for the given passive id.
// Unknown ids contribute nothing.
func (c *Catalog) Passive(id string) (ModifierGrant, bool) {
	g, ok := c.passives[id]
	return g, ok
}

// Essence returns the modifier grant for the given essence id.
func (c *Catalog) Essence(id string) (ModifierGrant, bool) {
	g, ok := c.essences[id]
	return g, ok
}

// Monster returns the monster template for the given id.
func (c *Catalog) Monster(id string) (MonsterTemplate, bool) {
	t, ok := c.monsters[id]
	return t, ok
}

// Room returns the room template for the given id.
func (c *Catalog) Room(id string) (RoomTemplate, bool) {
	t, ok := c.rooms[id]
	return t, ok
}

// Items returns the full item table. Callers must treat it as read-only.
func (c *Catalog) Items() map[string]ItemDefinition {
	return c.items
}

// Skills returns the full skill table. Callers must treat it as read-only.
func (c *Catalog) Skills() map[string]SkillDefinition {
	return c.skills
}

// Monsters returns the full monster table. Callers must treat it as read-only.
func (c *Catalog) Monsters() map[string]MonsterTemplate {
	return c.monsters
}

// Rooms returns the full room table. Callers must treat it as read-only.
func (c *Catalog) Rooms() map[string]RoomTemplate {
	return c.rooms
}
