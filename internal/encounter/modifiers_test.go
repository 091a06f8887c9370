package encounter

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeModifiersBaseline(t *testing.T) {
	e := testEngine(&scriptSource{})
	p := testPlayer()

	m := e.ComputeModifiers(p, nil)
	if !almostEqual(m.DamageMult, 1.0) {
		t.Errorf("DamageMult = %v, want 1.0", m.DamageMult)
	}
	if m.WeightExcess != 0 || m.WeightSurcharge != 0 {
		t.Errorf("weight excess/surcharge = %d/%d, want 0/0", m.WeightExcess, m.WeightSurcharge)
	}
	if m.StaminaDelta != 0 || m.CritBonus != 0 || m.CounterSkip != 0 {
		t.Errorf("unexpected nonzero modifiers: %+v", m)
	}
}

func TestComputeModifiersWeightPenalty(t *testing.T) {
	e := testEngine(&scriptSource{})
	p := testPlayer()
	p.Passives["duelists_poise"] = true // +0.10 counter skip
	p.Equipment["weapon"] = "heavy_blade"

	// Weight 24 against capacity 20: 4 points of excess.
	m := e.ComputeModifiers(p, nil)
	if m.WeightExcess != 4 {
		t.Fatalf("WeightExcess = %d, want 4", m.WeightExcess)
	}
	if m.WeightSurcharge != 2 {
		t.Errorf("WeightSurcharge = %d, want 2", m.WeightSurcharge)
	}
	if want := 1 - 0.03*4; !almostEqual(m.DamageMult, want) {
		t.Errorf("DamageMult = %v, want %v", m.DamageMult, want)
	}
	if want := 0.10 - 0.01*4; !almostEqual(m.CounterSkip, want) {
		t.Errorf("CounterSkip = %v, want %v", m.CounterSkip, want)
	}
}

func TestComputeModifiersWeightPenaltyCaps(t *testing.T) {
	e := testEngine(&scriptSource{})
	p := testPlayer()
	p.Subs.CarryCapacity = 4 // excess 20, far past both caps
	p.Equipment["weapon"] = "heavy_blade"

	m := e.ComputeModifiers(p, nil)
	if want := 1 - 0.15; !almostEqual(m.DamageMult, want) {
		t.Errorf("DamageMult = %v, want %v (capped)", m.DamageMult, want)
	}
	if m.WeightSurcharge != 10 {
		t.Errorf("WeightSurcharge = %d, want 10 (uncapped)", m.WeightSurcharge)
	}
	// Skip penalty caps at 0.05 and floors at 0 with no grant behind it.
	if m.CounterSkip != 0 {
		t.Errorf("CounterSkip = %v, want 0 (floored)", m.CounterSkip)
	}
}

func TestComputeModifiersCorruptionTiers(t *testing.T) {
	e := testEngine(&scriptSource{})

	minor := testPlayer()
	minor.Corruption = 40
	m := e.ComputeModifiers(minor, nil)
	if !almostEqual(m.DamageMult, 0.95) {
		t.Errorf("minor DamageMult = %v, want 0.95", m.DamageMult)
	}
	if !almostEqual(m.CritBonus, -0.02) {
		t.Errorf("minor CritBonus = %v, want -0.02", m.CritBonus)
	}
	if m.StaminaDelta != 0 {
		t.Errorf("minor StaminaDelta = %d, want 0", m.StaminaDelta)
	}

	// Major tier stacks multiplicatively on the minor tier.
	major := testPlayer()
	major.Corruption = 75
	m = e.ComputeModifiers(major, nil)
	if want := 0.95 * 0.95; !almostEqual(m.DamageMult, want) {
		t.Errorf("major DamageMult = %v, want %v", m.DamageMult, want)
	}
	if m.StaminaDelta != 1 {
		t.Errorf("major StaminaDelta = %d, want 1", m.StaminaDelta)
	}
}

func TestComputeModifiersCorruptionAndWeight(t *testing.T) {
	e := testEngine(&scriptSource{})
	p := testPlayer()
	p.Corruption = 75
	p.Equipment["weapon"] = "heavy_blade" // 4 excess

	m := e.ComputeModifiers(p, nil)
	if want := (1 - 0.03*4) * 0.95 * 0.95; !almostEqual(m.DamageMult, want) {
		t.Errorf("DamageMult = %v, want %v", m.DamageMult, want)
	}
	if m.WeightSurcharge != 2 || m.StaminaDelta != 1 {
		t.Errorf("surcharge/delta = %d/%d, want 2/1", m.WeightSurcharge, m.StaminaDelta)
	}
	if m.CounterSkip != 0 {
		t.Errorf("CounterSkip = %v, want 0 (floored)", m.CounterSkip)
	}
}

func TestComputeModifiersDamagePerFoe(t *testing.T) {
	e := testEngine(&scriptSource{})
	p := testPlayer()
	p.Passives["pack_reader"] = true // +0.02 per living monster

	state := &RoomEncounterState{
		RoomID: "shallows",
		Instances: []*MonsterInstance{
			newInstance("hound", 15, 0),
			newInstance("hound", 15, 0),
			newInstance("hound", 15, 0),
		},
	}
	state.Instances[2].Alive = false

	m := e.ComputeModifiers(p, state)
	if want := 1 + 0.02*2; !almostEqual(m.DamageMult, want) {
		t.Errorf("DamageMult = %v, want %v (2 living foes)", m.DamageMult, want)
	}
}

func TestComputeModifiersDeterministic(t *testing.T) {
	e := testEngine(&scriptSource{})
	p := testPlayer()
	p.Corruption = 55
	p.Passives["heavy_hands"] = true
	p.Essences["lucky_marrow"] = true
	p.Equipment["weapon"] = "heavy_blade"

	state, _ := singleMonsterState("hound", 15)
	first := e.ComputeModifiers(p, state)
	second := e.ComputeModifiers(p, state)
	if first != second {
		t.Errorf("ComputeModifiers not stable: %+v vs %+v", first, second)
	}
}
