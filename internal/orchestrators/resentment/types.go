package resentment

import (
	"github.com/gamewaifu/waifu-api/internal/entities"
)

// SweepInput defines the request for a resentment sweep
type SweepInput struct{}

// SweepOutput reports how many rows changed state
type SweepOutput struct {
	Transitioned int64
}

// EnterResentfulInput defines the request for entering the resentful state
type EnterResentfulInput struct {
	CharacterID string
}

// EnterResentfulOutput defines the response for entering the resentful state
type EnterResentfulOutput struct {
	Character *entities.Character
	// Entered is false when the character was already resentful
	Entered bool
}

// DefeatOutcome describes what a defeat did to a character
type DefeatOutcome struct {
	LoveLost         int64
	EnteredResentful bool
}
