package clickguard

import (
	"context"
	"fmt"
	"time"

	"github.com/gamewaifu/waifu-api/internal/errors"
	redisclient "github.com/gamewaifu/waifu-api/internal/redis"
)

const tokenKeyPrefix = "click_token:"

// Config holds the configuration for the Redis guard
type Config struct {
	Client redisclient.Client
	Window time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Window < 0 {
		return errors.InvalidArgument("window cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	window time.Duration
}

// NewRedisRepository creates a token guard backed by SET NX
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	window := cfg.Window
	if window == 0 {
		window = DefaultWindow
	}

	return &redisRepository{client: cfg.Client, window: window}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Claim(ctx context.Context, input ClaimInput) (*ClaimOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID cannot be empty")
	}
	if input.Token == "" {
		return &ClaimOutput{Claimed: false}, nil
	}

	ok, err := r.client.SetNX(ctx, r.key(input.CharacterID, input.Token), 1, r.window).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to claim click token")
	}
	if !ok {
		return nil, errors.AlreadyExists("click batch already recorded").
			WithMeta("character_id", input.CharacterID).
			WithMeta("token", input.Token)
	}

	return &ClaimOutput{Claimed: true}, nil
}

func (r *redisRepository) Release(ctx context.Context, input ReleaseInput) error {
	if input.Token == "" {
		return nil
	}
	if err := r.client.Del(ctx, r.key(input.CharacterID, input.Token)).Err(); err != nil {
		return errors.Wrapf(err, "failed to release click token")
	}
	return nil
}

func (r *redisRepository) key(characterID, token string) string {
	return fmt.Sprintf("%s%s:%s", tokenKeyPrefix, characterID, token)
}
