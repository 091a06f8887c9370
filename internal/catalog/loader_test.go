package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "items.yaml", `
items:
  rusted_cleaver:
    name: Rusted Cleaver
    weight: 6
    slot: weapon
    value: 12
`)
	writeFile(t, dir, "skills.yaml", `
skills:
  cleave:
    name: cleave
    base_min: 4
    base_max: 8
    stamina_cost: 6
  hamstring:
    name: hamstring
    base_min: 2
    base_max: 4
    stamina_cost: 5
    statuses:
      - effect: bleed
        duration: 3
      - effect: slow
        duration: 2
        chance: 50
`)
	writeFile(t, dir, "passives.yaml", `
traits:
  heavy_hands:
    damage_mult: 0.10
`)
	writeFile(t, dir, "essences.yaml", `
traits:
  ember_heart:
    elemental_bonus: 3
    element: fire
`)
	writeFile(t, dir, "monsters.yaml", `
monsters:
  gutter_hound:
    name: Gutter Hound
    hp: 14
    damage: {min: 2, max: 5}
    role: skirmisher
    biome: mire
    experience: 8
    gold_min: 1
    gold_max: 4
    loot:
      - item: chipped_fang
        chance: 35
`)
	writeFile(t, dir, "rooms.yaml", `
rooms:
  mire_shallows:
    name: The Mire Shallows
    difficulty: 1
    monsters: [gutter_hound, gutter_hound]
`)

	cat, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	item, ok := cat.Item("rusted_cleaver")
	if !ok || item.Name != "Rusted Cleaver" || item.Weight != 6 {
		t.Errorf("item = %+v ok=%v, want the cleaver", item, ok)
	}

	skill, ok := cat.Skill("hamstring")
	if !ok || len(skill.Statuses) != 2 {
		t.Fatalf("skill = %+v ok=%v, want hamstring with 2 statuses", skill, ok)
	}
	if skill.Statuses[0].Effect != "bleed" || skill.Statuses[0].Duration != 3 {
		t.Errorf("status[0] = %+v, want bleed for 3", skill.Statuses[0])
	}
	if skill.Statuses[1].Chance != 50 {
		t.Errorf("status[1].Chance = %v, want 50", skill.Statuses[1].Chance)
	}

	if grant, ok := cat.Passive("heavy_hands"); !ok || grant.DamageMult != 0.10 {
		t.Errorf("passive = %+v ok=%v, want heavy_hands", grant, ok)
	}
	if grant, ok := cat.Essence("ember_heart"); !ok || grant.ElementalBonus != 3 || grant.Element != "fire" {
		t.Errorf("essence = %+v ok=%v, want ember_heart", grant, ok)
	}

	monster, ok := cat.Monster("gutter_hound")
	if !ok || monster.Role != RoleSkirmisher || monster.Damage.Max != 5 {
		t.Fatalf("monster = %+v ok=%v, want the hound", monster, ok)
	}
	if len(monster.LootTable) != 1 || monster.LootTable[0].ItemID != "chipped_fang" {
		t.Errorf("loot = %+v, want chipped_fang", monster.LootTable)
	}

	room, ok := cat.Room("mire_shallows")
	if !ok || room.Difficulty != 1 || len(room.Monsters) != 2 {
		t.Errorf("room = %+v ok=%v, want the shallows", room, ok)
	}
}

func TestLoadDirMissingFilesLeaveTablesEmpty(t *testing.T) {
	cat, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if _, ok := cat.Item("anything"); ok {
		t.Error("empty catalog returned an item")
	}
	if _, ok := cat.Room("anywhere"); ok {
		t.Error("empty catalog returned a room")
	}
}

func TestLoadDirMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "items.yaml", "items: [not, a, map]")
	if _, err := LoadDir(dir); err == nil {
		t.Error("malformed items.yaml did not error")
	}
}

func TestRequiresLineage(t *testing.T) {
	open := SkillDefinition{Name: "cleave"}
	if open.RequiresLineage() {
		t.Error("skill with no lineage should be open")
	}
	gated := SkillDefinition{Name: "summon drone", Lineage: "tinker"}
	if !gated.RequiresLineage() {
		t.Error("lineage-bound skill should be gated")
	}
}
