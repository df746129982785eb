// Package battlesession stores in-progress interactive battles in Redis
package battlesession

import (
	"context"
	"time"

	"github.com/gamewaifu/waifu-api/internal/engine"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesessionmock github.com/gamewaifu/waifu-api/internal/repositories/battle_session Repository

// BattleSession is an interactive battle waiting for turn submissions
type BattleSession struct {
	// Battle identifier, also the ID of the battle record written on finish
	ID string `json:"id"`

	// Owner of the challenging character; only they may submit turns
	OwnerID string `json:"owner_id"`

	ChallengerID string `json:"challenger_id"`
	OpponentID   string `json:"opponent_id"`

	// Engine state, index 0 is the challenger
	State *engine.State `json:"state"`

	// Snapshots taken at start; the finished battle applies the difference
	// to the stored characters
	Initial [2]engine.Combatant `json:"initial"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInput contains parameters for opening a battle session
type CreateInput struct {
	Session *BattleSession
	TTL     time.Duration
}

// CreateOutput contains the stored session
type CreateOutput struct {
	Session *BattleSession
}

// GetInput contains parameters for retrieving a battle session
type GetInput struct {
	BattleID string
}

// GetOutput contains the retrieved session
type GetOutput struct {
	Session *BattleSession
}

// GetByCharacterInput looks up the open battle a character is in
type GetByCharacterInput struct {
	CharacterID string
}

// UpdateFunc mutates a session read under WATCH. Returning an error aborts
// the write and is handed back to the caller unchanged.
type UpdateFunc func(session *BattleSession) error

// UpdateInput contains parameters for a read-modify-write of a session
type UpdateInput struct {
	BattleID string
	Fn       UpdateFunc
}

// UpdateOutput contains the session as written
type UpdateOutput struct {
	Session *BattleSession
}

// DeleteInput contains parameters for removing a session
type DeleteInput struct {
	BattleID string
}

// DeleteOutput contains the result of removing a session
type DeleteOutput struct {
	Deleted bool
}

// PruneInput controls a cleanup pass
type PruneInput struct {
	// DryRun reports stale keys without deleting them
	DryRun bool
}

// PruneOutput lists what a cleanup pass found
type PruneOutput struct {
	Checked int
	Stale   []string
	Deleted int64
}

// Repository defines the interface for battle session storage operations
type Repository interface {
	// Create stores a new session and marks both characters as in battle
	// Returns errors.InvalidArgument for a missing session or IDs
	// Returns errors.AlreadyExists if either character is already in a battle
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by battle ID
	// Returns errors.NotFound if the session is missing or expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByCharacter retrieves the open session a character takes part in
	// Returns errors.NotFound if the character is not in a battle
	GetByCharacter(ctx context.Context, input GetByCharacterInput) (*GetOutput, error)

	// Update applies input.Fn to the stored session and writes it back
	// atomically, keeping the remaining TTL
	// Returns errors.NotFound if the session is missing or expired
	// Returns errors.Aborted if the session changed concurrently
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a session and releases both characters
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Prune scans every battle key and removes sessions that no longer decode
	// and character index keys whose session is gone. Finished sessions are
	// kept since their outcome may not be persisted yet.
	// Returns errors.Internal for storage failures
	Prune(ctx context.Context, input PruneInput) (*PruneOutput, error)
}
