package progression

import (
	"github.com/gamewaifu/waifu-api/internal/entities"
)

// LevelUpInput defines the request for spending love on a level
type LevelUpInput struct {
	CharacterID string
	// OwnerID, when set, must own the character
	OwnerID string
}

// LevelUpOutput defines the response for a level up
type LevelUpOutput struct {
	NewLevel      int
	NewMaxHealth  int
	NewMaxMagic   int
	LoveSpent     int64
	RemainingLove int64
	StatPoints    int
}

// AllocateStatPointsInput spends unspent stat points. Keys are stat names
// such as "attack" or "crit_probability".
type AllocateStatPointsInput struct {
	CharacterID string
	OwnerID     string
	Points      map[string]int
}

// AllocateStatPointsOutput is the character after allocation
type AllocateStatPointsOutput struct {
	Character *entities.Character
}

// BindCharacterInput defines the request for acquiring a character
type BindCharacterInput struct {
	OwnerID    string
	TemplateID string
	Rarity     entities.Rarity
}

// BindCharacterOutput defines the response for acquiring a character
type BindCharacterOutput struct {
	Character *entities.Character
}

// SetActiveInput defines the request for switching the active character
type SetActiveInput struct {
	OwnerID     string
	CharacterID string
}

// SetActiveOutput defines the response for switching the active character
type SetActiveOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for reading one character
type GetCharacterInput struct {
	CharacterID string
	// OwnerID, when set, must own the character
	OwnerID string
}

// GetCharacterOutput defines the response for reading one character
type GetCharacterOutput struct {
	Character *entities.Character
}

// GetActiveCharacterInput defines the request for the owner's active character
type GetActiveCharacterInput struct {
	OwnerID string
}

// GetActiveCharacterOutput defines the response for the owner's active character
type GetActiveCharacterOutput struct {
	Character *entities.Character
}

// ListCharactersInput defines the request for listing an owner's characters
type ListCharactersInput struct {
	OwnerID     string
	IncludeLost bool
}

// ListCharactersOutput defines the response for listing an owner's characters
type ListCharactersOutput struct {
	Characters []*entities.Character
}
