package regeneration

import "github.com/gamewaifu/waifu-api/internal/entities"

// RegenerateHealthInput defines the request for one health regeneration tick
type RegenerateHealthInput struct{}

// RegenerateHealthOutput reports one health regeneration tick
type RegenerateHealthOutput struct {
	Regenerated int
	Failed      int
	// Stamped counts rows whose last_rest was reset because they are at full
	// health or had never rested
	Stamped int64
}

// RegenerateMagicInput defines the request for one magic regeneration tick
type RegenerateMagicInput struct{}

// RegenerateMagicOutput reports one magic regeneration tick
type RegenerateMagicOutput struct {
	Updated int64
}

// RestoreInput restores a fixed amount of health or magic to one character
type RestoreInput struct {
	CharacterID string
	// OwnerID is checked when set
	OwnerID string
	Amount  int
}

// RestoreOutput returns the character after the restore
type RestoreOutput struct {
	Character *entities.Character
	Restored  int
}
