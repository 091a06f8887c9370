// datacheck loads the YAML catalogs and reports dangling references: rooms
// naming unknown monsters, loot tables naming unknown items, skills applying
// unknown status effects. Run it after editing the data files.
//
// Usage:
//
//	go run ./cmd/datacheck -data data
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hollowfall/delve/internal/catalog"
)

var knownEffects = map[string]bool{
	"poison":  true,
	"bleed":   true,
	"fear":    true,
	"stun":    true,
	"freeze":  true,
	"weaken":  true,
	"silence": true,
	"slow":    true,
}

func main() {
	dataDir := flag.String("data", "data", "Path to the YAML data directory")
	flag.Parse()

	cat, err := catalog.LoadDir(*dataDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d items, %d skills, %d monsters, %d rooms\n",
		len(cat.Items()), len(cat.Skills()), len(cat.Monsters()), len(cat.Rooms()))

	problems := 0
	report := func(format string, args ...any) {
		problems++
		fmt.Printf("  PROBLEM: "+format+"\n", args...)
	}

	for id, room := range cat.Rooms() {
		if len(room.Monsters) == 0 {
			report("room %s spawns no monsters", id)
		}
		for _, templateID := range room.Monsters {
			if _, ok := cat.Monster(templateID); !ok {
				report("room %s references unknown monster %s", id, templateID)
			}
		}
		if room.Difficulty < 1 {
			report("room %s has difficulty %d, want >= 1", id, room.Difficulty)
		}
	}

	for id, m := range cat.Monsters() {
		if m.HP <= 0 {
			report("monster %s has %d HP", id, m.HP)
		}
		if m.Damage.Max < m.Damage.Min {
			report("monster %s has inverted damage range [%d, %d]", id, m.Damage.Min, m.Damage.Max)
		}
		for _, entry := range m.LootTable {
			if _, ok := cat.Item(entry.ItemID); !ok {
				report("monster %s drops unknown item %s", id, entry.ItemID)
			}
			if entry.DropChance <= 0 || entry.DropChance > 100 {
				report("monster %s drop chance for %s is %v, want (0, 100]", id, entry.ItemID, entry.DropChance)
			}
		}
	}

	for id, skill := range cat.Skills() {
		if skill.BaseMax < skill.BaseMin {
			report("skill %s has inverted damage range [%d, %d]", id, skill.BaseMin, skill.BaseMax)
		}
		for _, app := range skill.Statuses {
			if !knownEffects[app.Effect] {
				report("skill %s applies unknown effect %s", id, app.Effect)
			}
			if app.Duration <= 0 {
				report("skill %s applies %s with duration %d", id, app.Effect, app.Duration)
			}
		}
	}

	if problems > 0 {
		fmt.Printf("%d problem(s) found\n", problems)
		os.Exit(1)
	}
	fmt.Println("All references check out")
}
