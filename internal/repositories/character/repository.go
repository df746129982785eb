// Package character provides persistence for character instances and the
// ledgers that hang off them.
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/gamewaifu/waifu-api/internal/repositories/character Repository,Tx

import (
	"context"
	"time"

	"github.com/gamewaifu/waifu-api/internal/entities"
)

// ExclusiveFunc runs while the rows it received are locked. Returning an error
// rolls back every write made through tx.
type ExclusiveFunc func(ctx context.Context, tx Tx, locked []*entities.Character) error

// Repository defines the interface for character persistence
type Repository interface {
	// Create inserts a new character. When Activate is set every other
	// instance of the owner is deactivated in the same transaction.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the ID is taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID without locking it
	// Returns errors.NotFound if the character doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetActive retrieves the owner's active character
	// Returns errors.NotFound if the owner has none
	// Returns errors.Internal for storage failures
	GetActive(ctx context.Context, input GetActiveInput) (*GetActiveOutput, error)

	// ListByOwner retrieves the owner's characters, oldest first
	// Returns errors.Internal for storage failures
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)

	// FindOpponent picks a random battle-ready character of another owner
	// whose level lies in [MinLevel, MaxLevel]
	// Returns errors.NotFound if nobody qualifies
	// Returns errors.Internal for storage failures
	FindOpponent(ctx context.Context, input FindOpponentInput) (*FindOpponentOutput, error)

	// WithExclusiveAccess locks the given rows, always in ID order, and runs fn
	// inside a single transaction. locked follows the order of ids.
	// Returns errors.InvalidArgument for empty or duplicate IDs
	// Returns errors.NotFound if any row is missing
	// Returns whatever fn returns, or errors.Internal for storage failures
	WithExclusiveAccess(ctx context.Context, ids []string, fn ExclusiveFunc) error

	// SweepResentment settles every resentful row in one statement. Rows that
	// reached the recovery level go back to normal; the rest whose window
	// started at or before Cutoff become lost.
	// Returns errors.Internal for storage failures
	SweepResentment(ctx context.Context, input SweepResentmentInput) (*SweepResentmentOutput, error)

	// ListHealthRegenCandidates pages through IDs of playable rows below max health
	// Returns errors.Internal for storage failures
	ListHealthRegenCandidates(ctx context.Context, input ListHealthRegenCandidatesInput) (*ListHealthRegenCandidatesOutput, error)

	// MarkRested stamps last_rest on non-lost rows at full health or never rested so
	// regeneration counts from the moment they are damaged
	// Returns errors.Internal for storage failures
	MarkRested(ctx context.Context, input MarkRestedInput) (*MarkRestedOutput, error)

	// RegenerateMagic adds max(Minimum, max_magic*Percent/100) to every row
	// below max magic, capped at max, in one statement
	// Returns errors.Internal for storage failures
	RegenerateMagic(ctx context.Context, input RegenerateMagicInput) (*RegenerateMagicOutput, error)

	// ListClickSessions returns a character's click ledger, newest first
	// Returns errors.Internal for storage failures
	ListClickSessions(ctx context.Context, input ListClickSessionsInput) (*ListClickSessionsOutput, error)

	// ListBattles returns battles a character took part in, newest first
	// Returns errors.Internal for storage failures
	ListBattles(ctx context.Context, input ListBattlesInput) (*ListBattlesOutput, error)
}

// Tx is the write capability handed to an ExclusiveFunc
type Tx interface {
	// Save writes every column of a locked character
	Save(ctx context.Context, character *entities.Character) error

	// AppendClickSession inserts an immutable click ledger row
	AppendClickSession(ctx context.Context, session *entities.ClickSession) error

	// BattleExists reports whether a battle summary with id was already written
	BattleExists(ctx context.Context, id string) (bool, error)

	// CreateBattle inserts a battle summary
	CreateBattle(ctx context.Context, record *entities.BattleRecord) error

	// DeactivateOthers clears is_active on every instance of ownerID except keepID
	DeactivateOthers(ctx context.Context, ownerID, keepID string) error
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
	Activate  bool
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// GetActiveInput defines the input for getting the active character
type GetActiveInput struct {
	OwnerID string
}

// GetActiveOutput defines the output for getting the active character
type GetActiveOutput struct {
	Character *entities.Character
}

// ListByOwnerInput defines the input for listing an owner's characters
type ListByOwnerInput struct {
	OwnerID     string
	IncludeLost bool
}

// ListByOwnerOutput defines the output for listing an owner's characters
type ListByOwnerOutput struct {
	Characters []*entities.Character
}

// FindOpponentInput defines the input for matchmaking
type FindOpponentInput struct {
	ExcludeOwnerID string
	MinLevel       int
	MaxLevel       int
}

// FindOpponentOutput defines the output for matchmaking
type FindOpponentOutput struct {
	Character *entities.Character
}

// SweepResentmentInput defines the input for the resentment sweep
type SweepResentmentInput struct {
	Now            time.Time
	Cutoff         time.Time
	RecoveryLevels int
}

// SweepResentmentOutput defines the output for the resentment sweep
type SweepResentmentOutput struct {
	Transitioned int64
}

// ListHealthRegenCandidatesInput defines a page of the health regeneration scan
type ListHealthRegenCandidatesInput struct {
	AfterID string
	Limit   int
}

// ListHealthRegenCandidatesOutput defines the output of a scan page
type ListHealthRegenCandidatesOutput struct {
	IDs []string
}

// MarkRestedInput defines the input for stamping rest times
type MarkRestedInput struct {
	Now time.Time
}

// MarkRestedOutput defines the output for stamping rest times
type MarkRestedOutput struct {
	Updated int64
}

// RegenerateMagicInput defines the input for bulk magic regeneration
type RegenerateMagicInput struct {
	Percent int
	Minimum int
	Now     time.Time
}

// RegenerateMagicOutput defines the output for bulk magic regeneration
type RegenerateMagicOutput struct {
	Updated int64
}

// ListClickSessionsInput defines the input for reading the click ledger
type ListClickSessionsInput struct {
	CharacterID string
	Limit       int
}

// ListClickSessionsOutput defines the output for reading the click ledger
type ListClickSessionsOutput struct {
	Sessions []*entities.ClickSession
}

// ListBattlesInput defines the input for reading battle history
type ListBattlesInput struct {
	CharacterID string
	Limit       int
}

// ListBattlesOutput defines the output for reading battle history
type ListBattlesOutput struct {
	Battles []*entities.BattleRecord
}
