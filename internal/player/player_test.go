package player

import (
	"testing"
	"time"

	"github.com/hollowfall/delve/internal/catalog"
)

func TestEquippedWeight(t *testing.T) {
	cat := catalog.New(map[string]catalog.ItemDefinition{
		"cleaver": {Name: "Cleaver", Weight: 6},
		"jacket":  {Name: "Jacket", Weight: 9},
	}, nil, nil, nil, nil, nil)

	p := New("p1", "Vess")
	p.Equipment["weapon"] = "cleaver"
	p.Equipment["armor"] = "jacket"
	p.Equipment["trinket"] = "lost_relic" // unknown ids weigh nothing

	if got := p.EquippedWeight(cat); got != 15 {
		t.Errorf("EquippedWeight = %d, want 15", got)
	}
}

func TestClampVitals(t *testing.T) {
	p := New("p1", "Vess")
	p.HP = 150
	p.Stamina = -3
	p.ClampVitals()
	if p.HP != p.MaxHP {
		t.Errorf("HP = %d, want clamped to %d", p.HP, p.MaxHP)
	}
	if p.Stamina != 0 {
		t.Errorf("Stamina = %d, want 0", p.Stamina)
	}
}

func TestSpendStaminaPaysWhatYouHave(t *testing.T) {
	p := New("p1", "Vess")
	p.Stamina = 4
	if spent := p.SpendStamina(6); spent != 4 {
		t.Errorf("spent = %d, want 4", spent)
	}
	if p.Stamina != 0 {
		t.Errorf("Stamina = %d, want 0", p.Stamina)
	}
	if spent := p.SpendStamina(0); spent != 0 {
		t.Errorf("zero cost spent = %d, want 0", spent)
	}
}

func TestHealCapsAtMax(t *testing.T) {
	p := New("p1", "Vess")
	p.HP = 95
	p.Heal(20)
	if p.HP != p.MaxHP {
		t.Errorf("HP = %d, want %d", p.HP, p.MaxHP)
	}
	p.HP = 50
	p.Heal(-5)
	if p.HP != 50 {
		t.Errorf("HP = %d, want 50 (negative heal is a no-op)", p.HP)
	}
}

func TestCooldowns(t *testing.T) {
	p := New("p1", "Vess")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if p.OnCooldown("cleave", 30, now) {
		t.Error("never-used skill reported on cooldown")
	}

	p.MarkUsed("cleave", now)
	if !p.OnCooldown("cleave", 30, now.Add(29*time.Second)) {
		t.Error("skill should still be cooling down at 29s of 30")
	}
	if p.OnCooldown("cleave", 30, now.Add(30*time.Second)) {
		t.Error("skill should be ready at 30s of 30")
	}
	if p.OnCooldown("cleave", 0, now) {
		t.Error("zero-cooldown skill is never on cooldown")
	}
}

func TestAddItem(t *testing.T) {
	p := New("p1", "Vess")
	p.Inventory = nil // simulate an older persisted shape
	p.AddItem("fang", 2)
	p.AddItem("fang", 1)
	p.AddItem("fang", 0)
	if p.Inventory["fang"] != 3 {
		t.Errorf("fang = %d, want 3", p.Inventory["fang"])
	}
}
