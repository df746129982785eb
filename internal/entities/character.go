// Package entities provides the persistent records of waifu-api.
package entities

import (
	"time"
)

// Character is one user-owned character instance.
//
// Invariants kept by every writer:
//   - 0 <= CurrentHealth <= MaxHealth and 0 <= CurrentMagic <= MaxMagic
//   - CurrentLove >= 0
//   - IsResentful implies ResentmentBaseLevel and ResentmentStart are set
//   - IsLost implies !IsResentful and !IsActive
//   - at most one IsActive row per OwnerID
type Character struct {
	ID         string `gorm:"primaryKey;size:64"`
	OwnerID    string `gorm:"size:64;not null;index"`
	TemplateID string `gorm:"size:64;not null"`
	Rarity     Rarity `gorm:"size:16;not null"`

	Level         int `gorm:"not null"`
	StatPoints    int `gorm:"not null"`
	CurrentHealth int `gorm:"not null"`
	MaxHealth     int `gorm:"not null"`
	CurrentMagic  int `gorm:"not null"`
	MaxMagic      int `gorm:"not null"`

	Attack          int `gorm:"not null"`
	Defense         int `gorm:"not null"`
	Speed           int `gorm:"not null"`
	CritDamage      int `gorm:"not null"`
	CritProbability int `gorm:"not null"`
	Magic           int `gorm:"not null"`

	CurrentLove int64 `gorm:"not null"`

	IsActive            bool `gorm:"not null;index"`
	IsResentful         bool `gorm:"not null;index"`
	IsLost              bool `gorm:"not null;index"`
	ResentmentBaseLevel *int
	ResentmentStart     *time.Time

	UsageCounter int64 `gorm:"not null"`
	LastUsed     *time.Time

	HealthRegenRate int `gorm:"not null"`
	LastRest        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stat returns the value of a combat stat
func (c *Character) Stat(stat Stat) int {
	switch stat {
	case StatAttack:
		return c.Attack
	case StatDefense:
		return c.Defense
	case StatSpeed:
		return c.Speed
	case StatCritDamage:
		return c.CritDamage
	case StatCritProbability:
		return c.CritProbability
	case StatMagic:
		return c.Magic
	default:
		return 0
	}
}

// AddStat adds delta to a combat stat. Unknown stats are ignored; callers
// validate keys with ParseStat first.
func (c *Character) AddStat(stat Stat, delta int) {
	switch stat {
	case StatAttack:
		c.Attack += delta
	case StatDefense:
		c.Defense += delta
	case StatSpeed:
		c.Speed += delta
	case StatCritDamage:
		c.CritDamage += delta
	case StatCritProbability:
		c.CritProbability += delta
	case StatMagic:
		c.Magic += delta
	}
}

// EnterResentment marks the character resentful from now at its current
// level. An already resentful character keeps its original window.
func (c *Character) EnterResentment(now time.Time) bool {
	if c.IsResentful || c.IsLost {
		return false
	}

	level := c.Level
	start := now
	c.IsResentful = true
	c.ResentmentBaseLevel = &level
	c.ResentmentStart = &start
	return true
}

// ClampVitals keeps current health and magic inside [0, max]
func (c *Character) ClampVitals() {
	c.CurrentHealth = clamp(c.CurrentHealth, 0, c.MaxHealth)
	c.CurrentMagic = clamp(c.CurrentMagic, 0, c.MaxMagic)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
