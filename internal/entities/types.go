package entities

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Rarity is the tier of a character template. It sets base stats and the
// strength of the character's magic abilities.
type Rarity string

// Rarities from lowest to highest
const (
	RarityBlue   Rarity = "blue"
	RarityPurple Rarity = "purple"
	RarityGolden Rarity = "golden"
)

// Rarities lists every rarity
var Rarities = []Rarity{RarityBlue, RarityPurple, RarityGolden}

// Valid reports whether r is a known rarity
func (r Rarity) Valid() bool {
	switch r {
	case RarityBlue, RarityPurple, RarityGolden:
		return true
	default:
		return false
	}
}

// Stat is an allocatable combat stat
type Stat string

// Allocatable stats
const (
	StatAttack          Stat = "attack"
	StatDefense         Stat = "defense"
	StatSpeed           Stat = "speed"
	StatCritDamage      Stat = "crit_damage"
	StatCritProbability Stat = "crit_probability"
	StatMagic           Stat = "magic"
)

// Stats lists every allocatable stat in display order
var Stats = []Stat{StatAttack, StatDefense, StatSpeed, StatCritDamage, StatCritProbability, StatMagic}

// ParseStat maps a key to a Stat, accepting any case
func ParseStat(key string) (Stat, bool) {
	s := Stat(strings.ToLower(strings.TrimSpace(key)))
	for _, known := range Stats {
		if s == known {
			return s, true
		}
	}
	return "", false
}

// ClickSession is an append-only audit row for one flushed batch of taps
type ClickSession struct {
	ID           string    `gorm:"primaryKey;size:64"`
	OwnerID      string    `gorm:"size:64;not null;index"`
	CharacterID  string    `gorm:"size:64;not null;index"`
	ClickCount   int       `gorm:"not null"`
	LoveGained   int64     `gorm:"not null"`
	WasResentful bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// BattleMode says how the actions of a battle were chosen
type BattleMode string

// Battle modes
const (
	BattleModeAuto        BattleMode = "auto"
	BattleModeInteractive BattleMode = "interactive"
)

// BattleRecord is the persisted summary of a finished battle
type BattleRecord struct {
	ID         string         `gorm:"primaryKey;size:64"`
	Mode       BattleMode     `gorm:"size:16;not null"`
	AttackerID string         `gorm:"size:64;not null;index"`
	DefenderID string         `gorm:"size:64;not null;index"`
	WinnerID   *string        `gorm:"size:64"`
	Turns      int            `gorm:"not null"`
	Log        datatypes.JSON `gorm:"type:json"`
	AttackerHP int            `gorm:"not null"`
	DefenderHP int            `gorm:"not null"`
	AttackerMP int            `gorm:"not null"`
	DefenderMP int            `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}

// LevelRequirement is the love needed to advance from Level to Level+1
type LevelRequirement struct {
	Level        int   `gorm:"primaryKey;autoIncrement:false" yaml:"level"`
	LoveRequired int64 `gorm:"not null" yaml:"love_required"`
}
