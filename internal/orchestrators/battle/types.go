package battle

import (
	"github.com/gamewaifu/waifu-api/internal/engine"
	"github.com/gamewaifu/waifu-api/internal/entities"
	battlesession "github.com/gamewaifu/waifu-api/internal/repositories/battle_session"
)

// ExecuteBattleInput defines the request for an automatic battle
type ExecuteBattleInput struct {
	OwnerID    string
	AttackerID string
	DefenderID string
}

// ExecuteBattleOutput is the persisted outcome of an automatic battle
type ExecuteBattleOutput struct {
	BattleID string
	// WinnerID is nil on a draw at the turn cap
	WinnerID *string
	Turns    int
	Log      []engine.Event
	Attacker *entities.Character
	Defender *entities.Character
}

// StartBattleInput defines the request for opening an interactive battle
type StartBattleInput struct {
	OwnerID    string
	AttackerID string
	DefenderID string
}

// StartBattleOutput defines the response for opening an interactive battle
type StartBattleOutput struct {
	Session *battlesession.BattleSession
}

// SubmitTurnInput carries the challenger's action for the next turn
type SubmitTurnInput struct {
	OwnerID  string
	BattleID string
	Action   engine.Action
}

// SubmitTurnOutput describes the resolved turn
type SubmitTurnOutput struct {
	// Turn is nil when the call only retried persisting a finished battle
	Turn     *engine.TurnResult
	Session  *battlesession.BattleSession
	Finished bool
	WinnerID *string
}

// GetBattleInput defines the request for an interactive battle
type GetBattleInput struct {
	OwnerID  string
	BattleID string
}

// GetBattleOutput defines the response for an interactive battle
type GetBattleOutput struct {
	Session *battlesession.BattleSession
}

// FindOpponentInput defines the request for matchmaking
type FindOpponentInput struct {
	OwnerID     string
	CharacterID string
}

// FindOpponentOutput defines the response for matchmaking
type FindOpponentOutput struct {
	Opponent *entities.Character
}

// ListBattlesInput defines the request for a character's battle history
type ListBattlesInput struct {
	CharacterID string
	Limit       int
}

// ListBattlesOutput defines the response for a character's battle history
type ListBattlesOutput struct {
	Battles []*entities.BattleRecord
}
