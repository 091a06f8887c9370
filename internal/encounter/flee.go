package encounter

import (
	"fmt"

	"github.com/hollowfall/delve/internal/catalog"
	"github.com/hollowfall/delve/internal/dice"
	"github.com/hollowfall/delve/internal/player"
)

// Flee formula tuning.
const (
	fleeBase            = 0.35
	fleePerAgility      = 0.03
	fleePerAttackSpeed  = 0.02
	fleePerAliveMonster = 0.05
	fleeAlivePenaltyCap = 0.20
	fleePerWeightExcess = 0.02
	fleePerDeathCount   = 0.02
	fleeDeathCountCap   = 3
	fleeFloor           = 0.05
	fleeCeiling         = 0.95
	fleeStaminaBase     = 4
)

// ResolveFlee resolves a flee attempt. With no living monsters it succeeds
// trivially. On failure the most dangerous monster retaliates, mitigated only
// by the shield, with no HP floor: a botched escape can legitimately drop the
// player to 0.
func (e *Engine) ResolveFlee(p *player.Player, state *RoomEncounterState) FleeResult {
	var log []string
	state.normalize()

	// A flee attempt is a resolved action: conditions tick here too.
	e.tickPlayer(p, &log)

	alive := state.AliveInstances()
	if len(alive) == 0 {
		log = append(log, "You slip away unchallenged.")
		return FleeResult{Success: true, Log: log}
	}

	mods := e.ComputeModifiers(p, state)

	alivePenalty := fleePerAliveMonster * float64(len(alive))
	if alivePenalty > fleeAlivePenaltyCap {
		alivePenalty = fleeAlivePenaltyCap
	}
	deaths := state.DeathCount
	if deaths > fleeDeathCountCap {
		deaths = fleeDeathCountCap
	}

	chance := fleeBase +
		fleePerAgility*float64(p.Attributes.Agility) +
		fleePerAttackSpeed*float64(p.Subs.AttackSpeed) +
		mods.FleeBonus -
		alivePenalty -
		fleePerWeightExcess*float64(mods.WeightExcess) -
		fleePerDeathCount*float64(deaths)
	if chance < fleeFloor {
		chance = fleeFloor
	}
	if chance > fleeCeiling {
		chance = fleeCeiling
	}

	if dice.Chance(e.Rand, chance) {
		p.SpendStamina(fleeStaminaBase + mods.WeightSurcharge)
		p.ClampVitals()
		state.LastUpdated = e.Now()
		log = append(log, "You break away and escape into the dark.")
		return FleeResult{Success: true, Log: log}
	}

	log = append(log, "You turn to run and the room closes in.")
	e.fleeRetaliation(p, alive, &log)
	p.ClampVitals()
	state.LastUpdated = e.Now()
	return FleeResult{Success: false, Log: log}
}

// fleeRetaliation lets the most dangerous living monster punish the failed
// escape. Danger is weighted by role: brutes hit hardest, skirmishers strike
// fastest.
func (e *Engine) fleeRetaliation(p *player.Player, alive []*MonsterInstance, log *[]string) {
	var (
		attacker   *MonsterInstance
		bestWeight float64
	)
	for _, inst := range alive {
		t, ok := e.Catalog.Monster(inst.TemplateID)
		if !ok {
			continue
		}
		weight := roleFleeWeight(t.Role) * float64(t.Damage.Max)
		if attacker == nil || weight > bestWeight {
			attacker = inst
			bestWeight = weight
		}
	}
	if attacker == nil {
		return
	}

	t, _ := e.Catalog.Monster(attacker.TemplateID)
	roll := dice.Between(e.Rand, t.Damage.Min, t.Damage.Max)
	damage := int(float64(roll) * roleFleeWeight(t.Role))

	if p.Shield > 0 {
		absorbed := damage
		if absorbed > p.Shield {
			absorbed = p.Shield
		}
		p.Shield -= absorbed
		damage -= absorbed
		*log = append(*log, fmt.Sprintf("Your ward absorbs %d.", absorbed))
	}
	if damage > 0 {
		p.HP -= damage
		*log = append(*log, fmt.Sprintf("%s tears into your back for %d damage.", t.Name, damage))
		if p.HP <= 0 {
			p.HP = 0
			*log = append(*log, "Everything goes dark.")
		}
	}
}

// roleFleeWeight is the retaliation damage multiplier per role.
func roleFleeWeight(role catalog.Role) float64 {
	switch role {
	case catalog.RoleBrute:
		return 1.2
	case catalog.RoleSkirmisher:
		return 1.1
	default:
		return 1.0
	}
}
