package encounter

import (
	"github.com/hollowfall/delve/internal/catalog"
	"github.com/hollowfall/delve/internal/player"
)

// CombatModifiers is the transient, per-action derived view of a player's
// combat effectiveness. It is recomputed from player state at the start of
// every action and never persisted.
type CombatModifiers struct {
	DamageMult     float64
	ElementalBonus int
	Element        string
	StaminaDelta   int
	CritBonus      float64
	CounterSkip    float64
	CounterMitPct  float64
	CounterMitFlat int
	ExtraHits      int
	DotDamage      int
	HealOnKill     int
	DronePulse     int
	FleeBonus      float64

	// Derived weight figures, reused by the stamina and flee formulas.
	WeightExcess    int
	WeightSurcharge int
}

// Weight and corruption penalty tuning.
const (
	weightDamagePenaltyPerPoint = 0.03
	weightDamagePenaltyCap      = 0.15
	weightSkipPenaltyPerPoint   = 0.01
	weightSkipPenaltyCap        = 0.05

	corruptionMinorThreshold = 40
	corruptionMajorThreshold = 70
	corruptionDamageFactor   = 0.95
	corruptionCritPenalty    = 0.02
	corruptionSkipPenalty    = 0.03
)

// ComputeModifiers derives the player's combat modifiers from equipped items,
// passives, essences, carried weight and corruption. It is a pure function:
// the same inputs always produce the same output, and grant accumulation is
// order-independent because every grant field is additive.
func (e *Engine) ComputeModifiers(p *player.Player, state *RoomEncounterState) CombatModifiers {
	m := CombatModifiers{DamageMult: 1.0}

	aliveCount := 0
	if state != nil {
		aliveCount = state.AliveCount()
	}

	for id := range p.Passives {
		if grant, ok := e.Catalog.Passive(id); ok {
			m.accumulate(grant, aliveCount)
		}
	}
	for id := range p.Essences {
		if grant, ok := e.Catalog.Essence(id); ok {
			m.accumulate(grant, aliveCount)
		}
	}

	// Carried-weight penalty: each point of excess over carry capacity costs
	// damage and counter-avoidance, and half a point (rounded up) of stamina.
	excess := p.EquippedWeight(e.Catalog) - p.Subs.CarryCapacity
	if excess > 0 {
		m.WeightExcess = excess
		m.WeightSurcharge = (excess + 1) / 2

		damagePenalty := weightDamagePenaltyPerPoint * float64(excess)
		if damagePenalty > weightDamagePenaltyCap {
			damagePenalty = weightDamagePenaltyCap
		}
		m.DamageMult -= damagePenalty

		skipPenalty := weightSkipPenaltyPerPoint * float64(excess)
		if skipPenalty > weightSkipPenaltyCap {
			skipPenalty = weightSkipPenaltyCap
		}
		m.CounterSkip -= skipPenalty
	}

	// Corruption tiers stack cumulatively: the 70% tier applies on top of the
	// 40% tier's reduction.
	if p.Corruption >= corruptionMinorThreshold {
		m.DamageMult *= corruptionDamageFactor
		m.CritBonus -= corruptionCritPenalty
	}
	if p.Corruption >= corruptionMajorThreshold {
		m.DamageMult *= corruptionDamageFactor
		m.StaminaDelta++
		m.CounterSkip -= corruptionSkipPenalty
	}

	if m.CounterSkip < 0 {
		m.CounterSkip = 0
	}
	return m
}

// accumulate folds one passive or essence grant into the modifiers.
func (m *CombatModifiers) accumulate(g catalog.ModifierGrant, aliveCount int) {
	m.DamageMult += g.DamageMult
	m.DamageMult += g.DamagePerFoe * float64(aliveCount)
	m.ElementalBonus += g.ElementalBonus
	if g.Element != "" {
		m.Element = g.Element
	}
	m.StaminaDelta += g.StaminaDelta
	m.CritBonus += g.CritBonus
	m.CounterSkip += g.CounterSkip
	m.CounterMitPct += g.CounterMitPct
	m.CounterMitFlat += g.CounterMitFlat
	m.ExtraHits += g.ExtraHits
	m.DotDamage += g.DotDamage
	m.HealOnKill += g.HealOnKill
	m.DronePulse += g.DronePulse
	m.FleeBonus += g.FleeBonus
}
