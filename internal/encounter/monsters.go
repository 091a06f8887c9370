package encounter

import (
	"fmt"

	"github.com/hollowfall/delve/internal/catalog"
	"github.com/hollowfall/delve/internal/dice"
	"github.com/hollowfall/delve/internal/player"
)

// Monster turn tuning.
const (
	dangerRampCap      = 2
	trapChancePerDeath = 0.05
	trapChanceCap      = 0.25
	trapBaseDamage     = 3
	trapDamagePerDeath = 2

	eliteStrikeChance   = 0.35
	elitePierceChance   = 0.40
	eliteStrikeBonus    = 0.25
	eliteBonusPerPower  = 0.15
	casterDrainChance   = 0.45
	skirmishAmbushOdds  = 0.25
	skirmishAmbushMult  = 1.5
	skirmishCritOdds    = 0.20
	fearHesitateChance  = 0.50
	supportHealFraction = 4 // heals maxHP / supportHealFraction

	rampDamagePerPoint  = 0.10
	powerDamagePerPoint = 0.15
	weakenDamageFactor  = 0.85
	slowDamageFactor    = 0.90
)

// roleInfliction maps each role to the condition it can leave on the player
// after its action, with the roll chance and applied duration.
type infliction struct {
	effect   string
	chance   float64
	duration int
}

var roleInflictions = map[catalog.Role]infliction{
	catalog.RoleSkirmisher: {CondBleed, 0.25, 3},
	catalog.RoleCaster:     {CondSilence, 0.20, 2},
	catalog.RoleBrute:      {CondStun, 0.20, 1},
	catalog.RoleSupport:    {CondWeaken, 0.25, 2},
	catalog.RoleElite:      {CondFear, 0.20, 2},
}

// biomeInflictions are environmental overlays applied on top of the role roll.
var biomeInflictions = map[string]infliction{
	"mire":   {CondPoison, 0.25, 3},
	"crypt":  {CondFear, 0.20, 2},
	"cinder": {CondWeaken, 0.20, 2},
}

// RunMonsterTurn resolves the monsters' turn against the player: player-side
// condition ticking, then an action budget of monster strikes that escalates
// with the number of living monsters and the room's death history.
func (e *Engine) RunMonsterTurn(p *player.Player, state *RoomEncounterState) TurnResult {
	var (
		log    []string
		killed []*MonsterInstance
	)
	state.normalize()
	if p.Conditions == nil {
		p.Conditions = make(map[string]int)
	}

	e.tickPlayer(p, &log)

	ramp := state.DeathCount
	if ramp > dangerRampCap {
		ramp = dangerRampCap
	}

	aliveCount := state.AliveCount()
	budget := 1 + ramp
	if aliveCount > 1 {
		budget++
	}
	if budget > aliveCount {
		budget = aliveCount
	}

	for slot := 0; slot < budget; slot++ {
		alive := state.AliveInstances()
		if len(alive) == 0 {
			break
		}
		inst := alive[e.Rand.Intn(len(alive))]

		// Capture control conditions before the tick decays them, so a
		// one-turn stun still costs the monster this action.
		locked := hasCondition(inst.Conditions, CondStun) || hasCondition(inst.Conditions, CondFreeze)
		feared := hasCondition(inst.Conditions, CondFear)

		if e.tickInstance(inst, &log) {
			// Died to its own wounds: still a kill, still rewarded.
			e.awardKill(p, state, inst, &log)
			killed = append(killed, inst)
			continue
		}

		trapChance := trapChancePerDeath * float64(state.DeathCount)
		if trapChance > trapChanceCap {
			trapChance = trapChanceCap
		}
		if dice.Chance(e.Rand, trapChance) {
			damage := trapBaseDamage + trapDamagePerDeath*state.DeathCount
			log = append(log, fmt.Sprintf("The room itself turns against you. A trap springs for %d damage.", damage))
			e.damagePlayerSoft(p, damage, &log)
			continue
		}

		name := e.instanceName(inst)
		if locked {
			log = append(log, fmt.Sprintf("%s is locked in place and cannot act.", name))
			continue
		}
		if feared && dice.Chance(e.Rand, fearHesitateChance) {
			log = append(log, fmt.Sprintf("%s hesitates, eyes wide with fear.", name))
			continue
		}

		t, ok := e.Catalog.Monster(inst.TemplateID)
		if !ok {
			continue
		}

		if !e.roleAction(p, state, inst, t, ramp, &log) {
			e.defaultStrike(p, inst, t, ramp, &log)
		}
		e.rollInflictions(p, t, &log)
	}

	p.ClampVitals()
	state.LastUpdated = e.Now()
	return TurnResult{Log: log, Killed: killed}
}

// roleAction attempts the monster's role-specific behavior. Returns false when
// the role roll fails (or doesn't apply) and the default strike should run.
func (e *Engine) roleAction(p *player.Player, state *RoomEncounterState, inst *MonsterInstance, t catalog.MonsterTemplate, ramp int, log *[]string) bool {
	name := t.Name
	switch t.Role {
	case catalog.RoleSupport:
		ally := e.woundedAlly(state)
		if ally == nil {
			return false
		}
		heal := ally.MaxHP / supportHealFraction
		ally.HP += heal
		if ally.HP > ally.MaxHP {
			ally.HP = ally.MaxHP
		}
		*log = append(*log, fmt.Sprintf("%s chants, knitting %s's wounds for %d.", name, e.instanceName(ally), heal))
		return true

	case catalog.RoleElite:
		if !dice.Chance(e.Rand, eliteStrikeChance) {
			return false
		}
		roll := dice.Between(e.Rand, t.Damage.Min, t.Damage.Max)
		damage := int(float64(roll) * (1 + eliteStrikeBonus + eliteBonusPerPower*float64(inst.Power)))
		if dice.Chance(e.Rand, elitePierceChance) && p.Shield > 0 {
			*log = append(*log, fmt.Sprintf("%s's empowered strike punches straight through your ward for %d damage.", name, damage))
			p.HP -= damage
			if p.HP <= 0 {
				p.HP = 1
				*log = append(*log, "You stagger at the brink of death, but do not fall.")
			}
			return true
		}
		*log = append(*log, fmt.Sprintf("%s delivers an empowered strike for %d damage.", name, damage))
		e.damagePlayerSoft(p, damage, log)
		return true

	case catalog.RoleCaster:
		if hasCondition(inst.Conditions, CondSilence) {
			return false
		}
		if !dice.Chance(e.Rand, casterDrainChance) {
			return false
		}
		drain := dice.Between(e.Rand, t.Damage.Min, t.Damage.Max)
		p.DrainStamina(drain)
		*log = append(*log, fmt.Sprintf("%s's incantation saps %d stamina from you.", name, drain))
		return true

	case catalog.RoleSkirmisher:
		if !dice.Chance(e.Rand, skirmishAmbushOdds) {
			return false
		}
		roll := dice.Between(e.Rand, t.Damage.Min, t.Damage.Max)
		damage := int(float64(roll) * skirmishAmbushMult)
		*log = append(*log, fmt.Sprintf("%s strikes from your blind side for %d damage.", name, damage))
		e.damagePlayerSoft(p, damage, log)
		return true
	}
	return false
}

// defaultStrike is the fallback attack every role shares: a damage roll scaled
// by role, danger ramp and power tier, dampened by the monster's own weaken
// and slow conditions, applied through shield then HP.
func (e *Engine) defaultStrike(p *player.Player, inst *MonsterInstance, t catalog.MonsterTemplate, ramp int, log *[]string) {
	roll := dice.Between(e.Rand, t.Damage.Min, t.Damage.Max)

	mult := 1.0
	switch t.Role {
	case catalog.RoleBrute:
		mult = 1.2
	case catalog.RoleCaster:
		mult = 1.1
	case catalog.RoleSkirmisher:
		if dice.Chance(e.Rand, skirmishCritOdds) {
			mult = 1.3
		}
	}
	mult *= 1 + rampDamagePerPoint*float64(ramp)
	mult *= 1 + powerDamagePerPoint*float64(inst.Power)
	if hasCondition(inst.Conditions, CondWeaken) {
		mult *= weakenDamageFactor
	}
	if hasCondition(inst.Conditions, CondSlow) {
		mult *= slowDamageFactor
	}

	damage := int(float64(roll) * mult)
	if damage < 1 {
		damage = 1
	}
	*log = append(*log, fmt.Sprintf("%s lashes out for %d damage.", t.Name, damage))
	e.damagePlayerSoft(p, damage, log)
}

// rollInflictions rolls the role's condition against the player, then any
// biome overlay.
func (e *Engine) rollInflictions(p *player.Player, t catalog.MonsterTemplate, log *[]string) {
	if inf, ok := roleInflictions[t.Role]; ok {
		if dice.Chance(e.Rand, inf.chance) {
			applyCondition(p.Conditions, inf.effect, inf.duration)
			*log = append(*log, fmt.Sprintf("You are afflicted with %s.", inf.effect))
		}
	}
	if inf, ok := biomeInflictions[t.Biome]; ok {
		if dice.Chance(e.Rand, inf.chance) {
			applyCondition(p.Conditions, inf.effect, inf.duration)
			*log = append(*log, fmt.Sprintf("The %s's taint leaves you %sed.", t.Biome, inf.effect))
		}
	}
}

// woundedAlly returns a living instance missing HP, or nil.
func (e *Engine) woundedAlly(state *RoomEncounterState) *MonsterInstance {
	for _, inst := range state.Instances {
		if inst.Alive && inst.HP < inst.MaxHP {
			return inst
		}
	}
	return nil
}
