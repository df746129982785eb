package progression

import (
	"github.com/gamewaifu/waifu-api/internal/config"
)

// MaxHealth is base_health + level*health_per_level + defense*health_per_defense
func MaxHealth(rules config.CharacterRules, level, defense int) int {
	return rules.BaseHealth + level*rules.HealthPerLevel + defense*rules.HealthPerDefense
}

// MaxMagic is base_magic + level*magic_per_level + magic*magic_per_stat
func MaxMagic(rules config.CharacterRules, level, magic int) int {
	return rules.BaseMagic + level*rules.MagicPerLevel + magic*rules.MagicPerStat
}
