package battle

import (
	"github.com/gamewaifu/waifu-api/internal/engine"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
)

// TierOf maps a rarity onto its magic tier
func TierOf(r entities.Rarity) engine.Tier {
	switch r {
	case entities.RarityGolden:
		return engine.TierHigh
	case entities.RarityPurple:
		return engine.TierMid
	default:
		return engine.TierLow
	}
}

// Snapshot copies the combat-relevant fields of a character
func Snapshot(c *entities.Character) engine.Combatant {
	return engine.Combatant{
		ID:         c.ID,
		Tier:       TierOf(c.Rarity),
		Health:     c.CurrentHealth,
		MaxHealth:  c.MaxHealth,
		Magic:      c.CurrentMagic,
		MaxMagic:   c.MaxMagic,
		Attack:     c.Attack,
		Defense:    c.Defense,
		Speed:      c.Speed,
		CritChance: c.CritProbability,
		CritDamage: c.CritDamage,
	}
}

// checkEligible applies the rules both battle modes share
func checkEligible(ownerID string, attacker, defender *entities.Character) error {
	if attacker.OwnerID != ownerID {
		return errors.NotFoundf("character %s not found", attacker.ID).WithMeta("character_id", attacker.ID)
	}
	if attacker.OwnerID == defender.OwnerID {
		return errors.InvalidArgument("cannot battle a character of the same owner").
			WithMeta("attacker_id", attacker.ID).
			WithMeta("defender_id", defender.ID)
	}
	for _, c := range []*entities.Character{attacker, defender} {
		if c.IsLost {
			return errors.InvalidStatef("character %s is lost", c.ID).WithMeta("character_id", c.ID)
		}
		if c.CurrentHealth <= 0 {
			return errors.InvalidStatef("character %s has no health", c.ID).WithMeta("character_id", c.ID)
		}
	}
	return nil
}
