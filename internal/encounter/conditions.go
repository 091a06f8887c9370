package encounter

import (
	"fmt"

	"github.com/hollowfall/delve/internal/player"
)

// Status condition ids. Unknown ids are ignored on application, which keeps
// forward-compatible data files harmless.
const (
	CondPoison  = "poison"
	CondBleed   = "bleed"
	CondFear    = "fear"
	CondStun    = "stun"
	CondFreeze  = "freeze"
	CondWeaken  = "weaken"
	CondSilence = "silence"
	CondSlow    = "slow"
)

// dotPerTick is the flat HP lost per active poison or bleed on each tick.
const dotPerTick = 2

var knownConditions = map[string]bool{
	CondPoison:  true,
	CondBleed:   true,
	CondFear:    true,
	CondStun:    true,
	CondFreeze:  true,
	CondWeaken:  true,
	CondSilence: true,
	CondSlow:    true,
}

// applyCondition sets a condition's duration to the max of the current and
// incoming values. Re-application never shortens an effect and never stacks.
func applyCondition(conditions map[string]int, effect string, duration int) {
	if !knownConditions[effect] || duration <= 0 {
		return
	}
	if duration > conditions[effect] {
		conditions[effect] = duration
	}
}

// hasCondition reports whether the effect is active (duration > 0).
func hasCondition(conditions map[string]int, effect string) bool {
	return conditions[effect] > 0
}

// dotDamage returns the periodic damage due this tick: 2 per active poison or
// bleed, applied before durations decrement.
func dotDamage(conditions map[string]int) int {
	damage := 0
	if hasCondition(conditions, CondPoison) {
		damage += dotPerTick
	}
	if hasCondition(conditions, CondBleed) {
		damage += dotPerTick
	}
	return damage
}

// decayConditions decrements every duration by 1 and removes expired entries.
func decayConditions(conditions map[string]int) {
	for effect, duration := range conditions {
		duration--
		if duration <= 0 {
			delete(conditions, effect)
		} else {
			conditions[effect] = duration
		}
	}
}

// tickInstance applies periodic condition damage to a monster instance, then
// decays its durations. Returns true if the instance died from the damage.
func (e *Engine) tickInstance(inst *MonsterInstance, log *[]string) bool {
	damage := dotDamage(inst.Conditions)
	died := false
	if damage > 0 {
		inst.HP -= damage
		name := e.instanceName(inst)
		*log = append(*log, fmt.Sprintf("%s suffers %d festering damage.", name, damage))
		if inst.HP <= 0 {
			inst.HP = 0
			inst.Alive = false
			died = true
			*log = append(*log, fmt.Sprintf("%s succumbs to its wounds.", name))
		}
	}
	decayConditions(inst.Conditions)
	return died
}

// tickPlayer applies periodic condition damage to the player, then decays the
// durations. Condition damage bypasses the shield but respects the soft-fail
// floor: a tick never leaves the player at 0 HP.
func (e *Engine) tickPlayer(p *player.Player, log *[]string) {
	if p.Conditions == nil {
		p.Conditions = make(map[string]int)
	}
	damage := dotDamage(p.Conditions)
	if damage > 0 {
		*log = append(*log, fmt.Sprintf("Your wounds fester for %d damage.", damage))
		p.HP -= damage
		if p.HP <= 0 {
			p.HP = 1
			*log = append(*log, "You collapse to one knee, clinging to life.")
		}
	}
	decayConditions(p.Conditions)
}

// instanceName resolves a display name from the instance's template.
func (e *Engine) instanceName(inst *MonsterInstance) string {
	if t, ok := e.Catalog.Monster(inst.TemplateID); ok {
		return t.Name
	}
	return "the creature"
}
