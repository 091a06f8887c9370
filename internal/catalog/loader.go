package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// itemsFile is the structure of items.yaml.
type itemsFile struct {
	Items map[string]ItemDefinition `yaml:"items"`
}

// skillsFile is the structure of skills.yaml.
type skillsFile struct {
	Skills map[string]SkillDefinition `yaml:"skills"`
}

// traitsFile is the structure of passives.yaml and essences.yaml.
type traitsFile struct {
	Traits map[string]ModifierGrant `yaml:"traits"`
}

// monstersFile is the structure of monsters.yaml.
type monstersFile struct {
	Monsters map[string]MonsterTemplate `yaml:"monsters"`
}

// roomsFile is the structure of rooms.yaml.
type roomsFile struct {
	Rooms map[string]RoomTemplate `yaml:"rooms"`
}

// LoadDir loads every catalog file from the given data directory.
// Expected files: items.yaml, skills.yaml, passives.yaml, essences.yaml,
// monsters.yaml, rooms.yaml. A missing file leaves its table empty.
func LoadDir(dir string) (*Catalog, error) {
	var items itemsFile
	if err := loadYAML(filepath.Join(dir, "items.yaml"), &items); err != nil {
		return nil, err
	}

	var skills skillsFile
	if err := loadYAML(filepath.Join(dir, "skills.yaml"), &skills); err != nil {
		return nil, err
	}

	var passives traitsFile
	if err := loadYAML(filepath.Join(dir, "passives.yaml"), &passives); err != nil {
		return nil, err
	}

	var essences traitsFile
	if err := loadYAML(filepath.Join(dir, "essences.yaml"), &essences); err != nil {
		return nil, err
	}

	var monsters monstersFile
	if err := loadYAML(filepath.Join(dir, "monsters.yaml"), &monsters); err != nil {
		return nil, err
	}

	var rooms roomsFile
	if err := loadYAML(filepath.Join(dir, "rooms.yaml"), &rooms); err != nil {
		return nil, err
	}

	return New(items.Items, skills.Skills, passives.Traits, essences.Traits,
		monsters.Monsters, rooms.Rooms), nil
}

// loadYAML reads and parses one YAML data file into out.
// A missing file is not an error; the table stays empty.
func loadYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
