package encounter

import (
	"fmt"

	"github.com/hollowfall/delve/internal/catalog"
	"github.com/hollowfall/delve/internal/dice"
	"github.com/hollowfall/delve/internal/player"
)

// basicAttack is the implicit skill used when an action names no skill id.
var basicAttack = catalog.SkillDefinition{
	Name:        "strike",
	BaseMin:     2,
	BaseMax:     5,
	StaminaCost: 5,
}

// Base crit chance and the per-luck-point bonus.
const (
	baseCritChance         = 0.10
	critPerLuck            = 0.01
	critMultiplier         = 1.5
	minStaminaCost         = 4
	resistPerPoint         = 0.02
	resistCap              = 0.4
	conditionDamagePenalty = 0.90 // silence/weaken on the player, each
)

// ResolvePlayerAction resolves one combat action against the room's encounter
// state. The player and state are mutated in place; the returned log is the
// player-visible record of everything that happened. Killed references the
// instance that died this action, if any.
func (e *Engine) ResolvePlayerAction(p *player.Player, room catalog.RoomTemplate, state *RoomEncounterState, action Action) ActionResult {
	var log []string
	state.normalize()
	if p.Conditions == nil {
		p.Conditions = make(map[string]int)
	}

	skill := basicAttack
	if action.SkillID != "" {
		def, ok := e.Catalog.Skill(action.SkillID)
		if !ok {
			log = append(log, "You trace an unfamiliar sigil. Nothing happens.")
			return ActionResult{Log: log}
		}
		skill = def
		if skill.RequiresLineage() && p.Lineage != skill.Lineage {
			log = append(log, fmt.Sprintf("The %s refuses you. Your blood carries no claim to it.", skill.Name))
			return ActionResult{Log: log}
		}
		if p.OnCooldown(action.SkillID, skill.Cooldown, e.Now()) {
			log = append(log, fmt.Sprintf("The %s is not ready yet.", skill.Name))
			return ActionResult{Log: log}
		}
	}

	target := e.selectTarget(p, state, action.TargetID)
	if target == nil {
		log = append(log, "There is nothing left to fight here.")
		return ActionResult{Log: log}
	}

	mods := e.ComputeModifiers(p, state)
	if hasCondition(p.Conditions, CondSilence) {
		mods.DamageMult *= conditionDamagePenalty
	}
	if hasCondition(p.Conditions, CondWeaken) {
		mods.DamageMult *= conditionDamagePenalty
	}
	slowSurcharge := 0
	if hasCondition(p.Conditions, CondSlow) {
		slowSurcharge = 1
	}

	str := float64(p.Attributes.Strength)
	agi := float64(p.Attributes.Agility)
	low := int(float64(skill.BaseMin) + 0.6*str + 0.3*agi)
	high := int(float64(skill.BaseMax) + 0.8*str + 0.5*agi)
	roll := dice.Between(e.Rand, low, high)
	damage := int(float64(roll) * mods.DamageMult)

	cost := int(float64(skill.StaminaCost+mods.WeightSurcharge+mods.StaminaDelta+slowSurcharge) *
		(1 + 0.1*float64(room.Difficulty-1)))
	if cost < minStaminaCost {
		cost = minStaminaCost
	}
	exhausted := p.Stamina < cost
	p.SpendStamina(cost)
	if exhausted {
		damage /= 2
		log = append(log, "Exhaustion drags at your arms. The blow lands half as hard.")
	}

	critChance := baseCritChance + critPerLuck*float64(p.Attributes.Luck) + mods.CritBonus
	if dice.Chance(e.Rand, critChance) {
		damage = int(float64(damage) * critMultiplier)
		log = append(log, "A perfect opening. Critical hit!")
	}

	targetName := e.instanceName(target)
	log = append(log, fmt.Sprintf("Your %s hits %s for %d damage.", skill.Name, targetName, damage))
	e.damageInstance(p, state, target, damage, &log)

	if target.Alive && mods.ElementalBonus > 0 {
		log = append(log, fmt.Sprintf("%s surges through the wound for %d bonus damage.", elementLabel(mods.Element), mods.ElementalBonus))
		e.damageInstance(p, state, target, mods.ElementalBonus, &log)
	}
	if target.Alive && mods.DronePulse > 0 && p.DroneCharges > 0 {
		p.DroneCharges--
		log = append(log, fmt.Sprintf("Your drone pulses for %d damage.", mods.DronePulse))
		e.damageInstance(p, state, target, mods.DronePulse, &log)
	}

	if target.Alive {
		e.resolveCounter(p, target, mods, &log)
	}

	if target.Alive && mods.ExtraHits > 0 {
		extra := damage * mods.ExtraHits / 2
		log = append(log, fmt.Sprintf("You press the attack, %d follow-up strikes for %d damage.", mods.ExtraHits, extra))
		e.damageInstance(p, state, target, extra, &log)
	}
	if target.Alive && mods.DotDamage > 0 {
		log = append(log, fmt.Sprintf("Lingering venom bites for %d damage.", mods.DotDamage))
		e.damageInstance(p, state, target, mods.DotDamage, &log)
	}

	if !target.Alive && mods.HealOnKill > 0 {
		p.Heal(mods.HealOnKill)
		log = append(log, fmt.Sprintf("The kill feeds you. You recover %d health.", mods.HealOnKill))
	}

	for _, app := range skill.Statuses {
		chance := app.Chance
		if chance <= 0 {
			chance = 100
		}
		if !dice.Percent(e.Rand, chance) {
			continue
		}
		if app.Target == "self" {
			applyCondition(p.Conditions, app.Effect, app.Duration)
			log = append(log, fmt.Sprintf("You are marked by %s.", app.Effect))
		} else if target.Alive {
			applyCondition(target.Conditions, app.Effect, app.Duration)
			log = append(log, fmt.Sprintf("%s is afflicted with %s.", targetName, app.Effect))
		}
	}

	switch skill.SideEffect {
	case "shield":
		shield := p.Attributes.Vigor*2 + p.Attributes.Focus
		if shield > p.Shield {
			p.Shield = shield
		}
		log = append(log, fmt.Sprintf("A ward of force settles around you (%d).", p.Shield))
	case "drone":
		charges := skill.Charges
		if charges <= 0 {
			charges = 1
		}
		p.DroneCharges += charges
		log = append(log, fmt.Sprintf("Your drone hums to life (+%d charges).", charges))
	}

	if action.SkillID != "" {
		p.MarkUsed(action.SkillID, e.Now())
	}

	if target.HP < 0 {
		target.HP = 0
	}
	p.ClampVitals()
	state.LastUpdated = e.Now()

	var killed *MonsterInstance
	if !target.Alive {
		killed = target
	}
	return ActionResult{Log: log, Killed: killed}
}

// selectTarget picks the monster instance an action applies to: the explicit
// id if it names a living instance, then the player's selected target, then a
// uniform pick among the living.
func (e *Engine) selectTarget(p *player.Player, state *RoomEncounterState, explicitID string) *MonsterInstance {
	if explicitID != "" {
		if inst := state.Instance(explicitID); inst != nil && inst.Alive {
			return inst
		}
	}
	if p.TargetID != "" {
		if inst := state.Instance(p.TargetID); inst != nil && inst.Alive {
			return inst
		}
	}
	alive := state.AliveInstances()
	if len(alive) == 0 {
		return nil
	}
	return alive[e.Rand.Intn(len(alive))]
}

// damageInstance applies damage to a monster instance, handling death and
// kill rewards. Returns true if the instance died from this damage.
func (e *Engine) damageInstance(p *player.Player, state *RoomEncounterState, inst *MonsterInstance, damage int, log *[]string) bool {
	if damage < 0 {
		damage = 0
	}
	inst.HP -= damage
	if inst.HP > 0 {
		return false
	}
	inst.HP = 0
	inst.Alive = false
	*log = append(*log, fmt.Sprintf("%s collapses, defeated.", e.instanceName(inst)))
	e.awardKill(p, state, inst, log)
	return true
}

// awardKill grants the template's experience and gold to the player and rolls
// the loot table onto the room's loot stack.
func (e *Engine) awardKill(p *player.Player, state *RoomEncounterState, inst *MonsterInstance, log *[]string) {
	t, ok := e.Catalog.Monster(inst.TemplateID)
	if !ok {
		return
	}
	if t.Experience > 0 {
		p.Experience += t.Experience
		*log = append(*log, fmt.Sprintf("You gain %d experience.", t.Experience))
	}
	if t.GoldMax > 0 {
		gold := dice.Between(e.Rand, t.GoldMin, t.GoldMax)
		if gold > 0 {
			p.Gold += gold
			*log = append(*log, fmt.Sprintf("You pocket %d gold.", gold))
		}
	}
	for _, entry := range t.LootTable {
		if !dice.Percent(e.Rand, entry.DropChance) {
			continue
		}
		state.AddLoot(entry.ItemID, 1)
		name := entry.ItemID
		if def, ok := e.Catalog.Item(entry.ItemID); ok {
			name = def.Name
		}
		*log = append(*log, fmt.Sprintf("%s falls among the remains.", name))
	}
}

// resolveCounter runs the monster's counter-attack against the player. A drone
// charge intercepts it outright; otherwise the counter-skip chance is rolled,
// then the monster's damage range mitigated by physical resistance and counter
// mitigation, absorbed by the shield and finally soft-floored at 1 HP.
func (e *Engine) resolveCounter(p *player.Player, target *MonsterInstance, mods CombatModifiers, log *[]string) {
	if p.DroneCharges > 0 {
		p.DroneCharges--
		*log = append(*log, "Your drone darts in and absorbs the counterblow.")
		return
	}
	if dice.Chance(e.Rand, mods.CounterSkip) {
		*log = append(*log, "You slip aside before it can answer.")
		return
	}
	t, ok := e.Catalog.Monster(target.TemplateID)
	if !ok {
		return
	}
	roll := dice.Between(e.Rand, t.Damage.Min, t.Damage.Max)

	resist := resistPerPoint * float64(p.Subs.PhysicalResist)
	if resist > resistCap {
		resist = resistCap
	}
	damage := int(float64(roll)*(1-resist)*(1-mods.CounterMitPct)) - mods.CounterMitFlat
	if damage < 1 {
		damage = 1
	}
	*log = append(*log, fmt.Sprintf("%s counters for %d damage.", t.Name, damage))
	e.damagePlayerSoft(p, damage, log)
}

// damagePlayerSoft applies damage to the player through any active shield and
// floors HP at 1. Death inside a resolved action is a soft-fail, recoverable
// by resting, never a hard KO.
func (e *Engine) damagePlayerSoft(p *player.Player, damage int, log *[]string) {
	if damage <= 0 {
		return
	}
	if p.Shield > 0 {
		absorbed := damage
		if absorbed > p.Shield {
			absorbed = p.Shield
		}
		p.Shield -= absorbed
		damage -= absorbed
		*log = append(*log, fmt.Sprintf("Your ward absorbs %d.", absorbed))
		if damage <= 0 {
			return
		}
	}
	p.HP -= damage
	if p.HP <= 0 {
		p.HP = 1
		*log = append(*log, "You stagger at the brink of death, but do not fall.")
	}
}

// elementLabel renders an element tag for the narration log.
func elementLabel(element string) string {
	if element == "" {
		return "Raw force"
	}
	return "The " + element
}
