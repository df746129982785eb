package testutils

import (
	"time"

	"github.com/gamewaifu/waifu-api/internal/entities"
)

// CharacterBuilder builds characters with playable defaults: level 1 blue,
// full health and magic per the default formulas, no love.
type CharacterBuilder struct {
	c entities.Character
}

// NewCharacter starts a builder for id owned by ownerID
func NewCharacter(id, ownerID string) *CharacterBuilder {
	return &CharacterBuilder{c: entities.Character{
		ID:              id,
		OwnerID:         ownerID,
		TemplateID:      "tpl_" + id,
		Rarity:          entities.RarityBlue,
		Level:           1,
		MaxHealth:       115,
		CurrentHealth:   115,
		MaxMagic:        65,
		CurrentMagic:    65,
		Attack:          1,
		Defense:         1,
		Speed:           1,
		CritDamage:      1,
		CritProbability: 1,
		Magic:           1,
		HealthRegenRate: 1,
	}}
}

// Level sets the level
func (b *CharacterBuilder) Level(level int) *CharacterBuilder {
	b.c.Level = level
	return b
}

// Love sets current love
func (b *CharacterBuilder) Love(love int64) *CharacterBuilder {
	b.c.CurrentLove = love
	return b
}

// StatPoints sets unspent stat points
func (b *CharacterBuilder) StatPoints(points int) *CharacterBuilder {
	b.c.StatPoints = points
	return b
}

// Rarity sets the rarity
func (b *CharacterBuilder) Rarity(r entities.Rarity) *CharacterBuilder {
	b.c.Rarity = r
	return b
}

// Combat sets attack, defense and speed
func (b *CharacterBuilder) Combat(attack, defense, speed int) *CharacterBuilder {
	b.c.Attack, b.c.Defense, b.c.Speed = attack, defense, speed
	return b
}

// Crit sets crit chance and crit damage percentages
func (b *CharacterBuilder) Crit(chance, damage int) *CharacterBuilder {
	b.c.CritProbability, b.c.CritDamage = chance, damage
	return b
}

// Health sets current and max health
func (b *CharacterBuilder) Health(current, maxHealth int) *CharacterBuilder {
	b.c.CurrentHealth, b.c.MaxHealth = current, maxHealth
	return b
}

// Magic sets current and max magic
func (b *CharacterBuilder) Magic(current, maxMagic int) *CharacterBuilder {
	b.c.CurrentMagic, b.c.MaxMagic = current, maxMagic
	return b
}

// Resentful marks the character resentful since start at baseLevel
func (b *CharacterBuilder) Resentful(baseLevel int, start time.Time) *CharacterBuilder {
	start = start.UTC()
	b.c.IsResentful = true
	b.c.ResentmentBaseLevel = &baseLevel
	b.c.ResentmentStart = &start
	return b
}

// Lost marks the character lost
func (b *CharacterBuilder) Lost() *CharacterBuilder {
	b.c.IsLost = true
	return b
}

// Active marks the character active
func (b *CharacterBuilder) Active() *CharacterBuilder {
	b.c.IsActive = true
	return b
}

// RestedAt sets last_rest
func (b *CharacterBuilder) RestedAt(t time.Time) *CharacterBuilder {
	t = t.UTC()
	b.c.LastRest = &t
	return b
}

// Build returns a copy of the character
func (b *CharacterBuilder) Build() *entities.Character {
	c := b.c
	return &c
}
