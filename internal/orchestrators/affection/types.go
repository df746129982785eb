package affection

import (
	"github.com/gamewaifu/waifu-api/internal/entities"
)

// RecordClickSessionInput is one flushed batch of taps
type RecordClickSessionInput struct {
	OwnerID     string
	CharacterID string
	ClickCount  int
	// Token optionally identifies the batch for replay rejection
	Token string
}

// RecordClickSessionOutput is the result of a click batch
type RecordClickSessionOutput struct {
	SessionID   string
	LoveGain    int64
	NewLove     int64
	IsResentful bool
	IsLost      bool
}

// ListClickSessionsInput defines the request for a character's click ledger
type ListClickSessionsInput struct {
	OwnerID     string
	CharacterID string
	Limit       int
}

// ListClickSessionsOutput defines the response for a character's click ledger
type ListClickSessionsOutput struct {
	Sessions []*entities.ClickSession
}
