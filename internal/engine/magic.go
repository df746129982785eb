package engine

import "math"

// Tier is the magic strength band of a combatant, derived from its rarity
type Tier int

// Tiers
const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

// Coefficients parameterise one magic action for one tier. Only the field
// relevant to the action is non-zero besides CostPercent.
type Coefficients struct {
	DamageMultiplier  float64
	BuffPercent       float64
	MitigationPercent float64
	CostPercent       float64
}

// magicTable holds the twelve fixed coefficients. The values are part of the
// game's balance contract and must not drift.
var magicTable = map[Tier]map[Action]Coefficients{
	TierLow: {
		ActionMagicAttack:  {DamageMultiplier: 1.07, CostPercent: 0.5},
		ActionBuffAttack:   {BuffPercent: 0.02, CostPercent: 0.25},
		ActionMagicDefense: {MitigationPercent: 0.10, CostPercent: 0.5},
		ActionBuffDefense:  {MitigationPercent: 0.02, CostPercent: 0.25},
	},
	TierMid: {
		ActionMagicAttack:  {DamageMultiplier: 1.12, CostPercent: 0.5},
		ActionBuffAttack:   {BuffPercent: 0.05, CostPercent: 0.25},
		ActionMagicDefense: {MitigationPercent: 0.15, CostPercent: 0.5},
		ActionBuffDefense:  {MitigationPercent: 0.05, CostPercent: 0.25},
	},
	TierHigh: {
		ActionMagicAttack:  {DamageMultiplier: 1.20, CostPercent: 0.5},
		ActionBuffAttack:   {BuffPercent: 0.08, CostPercent: 0.25},
		ActionMagicDefense: {MitigationPercent: 0.20, CostPercent: 0.5},
		ActionBuffDefense:  {MitigationPercent: 0.08, CostPercent: 0.25},
	},
}

// MagicCoefficients looks up the coefficients for a magic action
func MagicCoefficients(tier Tier, action Action) (Coefficients, bool) {
	byAction, ok := magicTable[tier]
	if !ok {
		return Coefficients{}, false
	}
	c, ok := byAction[action]
	return c, ok
}

// MagicCost is floor(maxMagic * costPercent) for magic actions and 0 otherwise
func MagicCost(tier Tier, maxMagic int, action Action) int {
	c, ok := MagicCoefficients(tier, action)
	if !ok {
		return 0
	}
	return int(math.Floor(float64(maxMagic) * c.CostPercent))
}
