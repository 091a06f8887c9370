package encounter

import "testing"

func TestFleeTrivialWhenRoomClear(t *testing.T) {
	e := testEngine(&scriptSource{})
	p := testPlayer()
	state, inst := singleMonsterState("hound", 15)
	inst.Alive = false

	result := e.ResolveFlee(p, state)
	if !result.Success {
		t.Fatal("flee from a cleared room must succeed")
	}
	if p.Stamina != 50 || p.HP != 100 {
		t.Errorf("trivial flee changed vitals: stamina=%d hp=%d", p.Stamina, p.HP)
	}
}

func TestFleeTicksConditions(t *testing.T) {
	e := testEngine(&scriptSource{})
	p := testPlayer()
	p.Conditions[CondPoison] = 1
	state, inst := singleMonsterState("hound", 15)
	inst.Alive = false

	result := e.ResolveFlee(p, state)
	if !result.Success {
		t.Fatal("flee from a cleared room must succeed")
	}
	if p.HP != 98 {
		t.Errorf("HP = %d, want 98 (poison ticked on the attempt)", p.HP)
	}
	if _, ok := p.Conditions[CondPoison]; ok {
		t.Errorf("poison should have expired: %v", p.Conditions)
	}
	if !logContains(result.Log, "fester") {
		t.Errorf("log = %v, want a fester line", result.Log)
	}
}

func TestFleeSuccess(t *testing.T) {
	// 0.35 base + 0.15 agility + 0.10 attack speed - 0.05 one monster = 0.55.
	src := &scriptSource{floats: []float64{0.10}}
	e := testEngine(src)

	p := testPlayer()
	p.Attributes.Agility = 5
	p.Subs.AttackSpeed = 5
	state, _ := singleMonsterState("hound", 15)

	result := e.ResolveFlee(p, state)
	if !result.Success {
		t.Fatal("expected flee to succeed under the scripted roll")
	}
	if p.Stamina != 46 {
		t.Errorf("stamina = %d, want 46 (base flee cost 4)", p.Stamina)
	}
	if p.HP != 100 {
		t.Errorf("HP = %d, want 100 (no retaliation on success)", p.HP)
	}
}

func TestFleeWeightSurchargeOnStamina(t *testing.T) {
	src := &scriptSource{floats: []float64{0.01}}
	e := testEngine(src)

	p := testPlayer()
	p.Attributes.Agility = 5
	p.Subs.AttackSpeed = 5
	p.Equipment["weapon"] = "heavy_blade" // excess 4, surcharge 2
	state, _ := singleMonsterState("hound", 15)

	result := e.ResolveFlee(p, state)
	if !result.Success {
		t.Fatal("expected flee to succeed under the scripted roll")
	}
	if p.Stamina != 44 {
		t.Errorf("stamina = %d, want 44 (cost 4 + surcharge 2)", p.Stamina)
	}
}

func TestFleeFailureRetaliationCanKill(t *testing.T) {
	src := &scriptSource{floats: []float64{0.99}}
	e := testEngine(src)

	p := testPlayer()
	p.HP = 3
	hound := newInstance("hound", 15, 0)
	thug := newInstance("thug", 24, 0)
	state := &RoomEncounterState{
		RoomID:    "gate",
		Instances: []*MonsterInstance{hound, thug},
	}

	result := e.ResolveFlee(p, state)
	if result.Success {
		t.Fatal("expected flee to fail under the scripted roll")
	}
	// The brute outweighs the skirmisher (1.2*5 vs 1.1*5) and its flat 5
	// retaliation is scaled by 1.2 to 6: failed escapes have no HP floor.
	if p.HP != 0 {
		t.Errorf("HP = %d, want 0", p.HP)
	}
	if !logContains(result.Log, "Everything goes dark") {
		t.Errorf("log = %v, want a knockout line", result.Log)
	}
	if !logContains(result.Log, "Barrow Thug") {
		t.Errorf("log = %v, want the brute as the retaliator", result.Log)
	}
}

func TestFleeFailureShieldAbsorbs(t *testing.T) {
	src := &scriptSource{floats: []float64{0.99}}
	e := testEngine(src)

	p := testPlayer()
	p.Shield = 10
	state, _ := singleMonsterState("thug", 24)

	result := e.ResolveFlee(p, state)
	if result.Success {
		t.Fatal("expected flee to fail under the scripted roll")
	}
	if p.HP != 100 {
		t.Errorf("HP = %d, want 100 (ward soaked the retaliation)", p.HP)
	}
	if p.Shield != 4 {
		t.Errorf("shield = %d, want 4 (absorbed 6)", p.Shield)
	}
}

func TestFleeChanceClampedToFloor(t *testing.T) {
	// Zero agility and attack speed, four living monsters and a heavy pack
	// drive the raw chance below zero; the floor keeps escape possible.
	src := &scriptSource{floats: []float64{0.04}}
	e := testEngine(src)

	p := testPlayer()
	p.Equipment["weapon"] = "heavy_blade"
	state := &RoomEncounterState{
		RoomID: "shallows",
		Instances: []*MonsterInstance{
			newInstance("hound", 15, 0),
			newInstance("hound", 15, 0),
			newInstance("hound", 15, 0),
			newInstance("hound", 15, 0),
		},
		DeathCount: 5,
	}

	result := e.ResolveFlee(p, state)
	if !result.Success {
		t.Error("a roll under the 0.05 floor must still succeed")
	}
}
