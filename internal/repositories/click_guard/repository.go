// Package clickguard rejects replays of a flushed click batch. Clients tag
// each batch with a token; a token seen inside the window is refused.
package clickguard

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=clickguardmock github.com/gamewaifu/waifu-api/internal/repositories/click_guard Repository

// ClaimInput identifies one click batch
type ClaimInput struct {
	CharacterID string
	Token       string
}

// ClaimOutput reports whether the claim is new
type ClaimOutput struct {
	Claimed bool
}

// ReleaseInput identifies a claim to drop after a failed write
type ReleaseInput struct {
	CharacterID string
	Token       string
}

// Repository tracks claimed click batch tokens
type Repository interface {
	// Claim records a token for a character
	// Returns errors.AlreadyExists if the token was claimed inside the window
	// An empty token is always accepted and never recorded
	Claim(ctx context.Context, input ClaimInput) (*ClaimOutput, error)

	// Release forgets a claim so the client can retry the same batch
	Release(ctx context.Context, input ReleaseInput) error
}

type noop struct{}

// NewNoop returns a guard that accepts every batch
func NewNoop() Repository {
	return noop{}
}

func (noop) Claim(context.Context, ClaimInput) (*ClaimOutput, error) {
	return &ClaimOutput{Claimed: false}, nil
}

func (noop) Release(context.Context, ReleaseInput) error {
	return nil
}

// DefaultWindow is how long a token is remembered when none is configured
const DefaultWindow = 10 * time.Minute
