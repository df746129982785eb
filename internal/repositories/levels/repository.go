// Package levels provides the read-only level requirement table: how much
// love a character must spend to advance from a level.
package levels

//go:generate mockgen -destination=mock/mock_repository.go -package=levelsmock github.com/gamewaifu/waifu-api/internal/repositories/levels Repository

import (
	"context"

	"github.com/gamewaifu/waifu-api/internal/entities"
)

// Repository looks up level requirements
type Repository interface {
	// Get returns the requirement to advance from input.Level
	// Returns errors.InvalidArgument for levels below 1
	// Returns errors.NotFound if the level has no requirement
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns every stored requirement in level order
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// GetInput defines the input for a requirement lookup
type GetInput struct {
	Level int
}

// GetOutput defines the output for a requirement lookup
type GetOutput struct {
	Requirement *entities.LevelRequirement
}

// ListInput defines the input for listing requirements
type ListInput struct{}

// ListOutput defines the output for listing requirements
type ListOutput struct {
	Requirements []*entities.LevelRequirement
}

// DefaultRequirement is step*level, the curve used when a level has no row
func DefaultRequirement(level int, step int64) *entities.LevelRequirement {
	return &entities.LevelRequirement{Level: level, LoveRequired: int64(level) * step}
}
