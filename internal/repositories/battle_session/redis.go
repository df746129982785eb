package battlesession

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	redisclient "github.com/gamewaifu/waifu-api/internal/redis"
)

const (
	// Key patterns:
	//   battle_session:{battle_id}      session JSON
	//   battle_session:char:{char_id}   battle_id the character is in
	sessionKeyPrefix   = "battle_session:"
	characterKeyPrefix = "battle_session:char:"
	defaultTTL         = 30 * time.Minute
	pruneScanCount     = 100

	errBattleIDEmpty  = "battle ID cannot be empty"
	errSessionExpired = "battle session has expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for battle sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	session := input.Session
	if session == nil {
		return nil, errors.InvalidArgument("session cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", session.ID, vb)
	errors.ValidateRequired("challenger_id", session.ChallengerID, vb)
	errors.ValidateRequired("opponent_id", session.OpponentID, vb)
	if session.State == nil {
		vb.RequiredField("state")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	ttl := input.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	session.CreatedAt = now
	session.ExpiresAt = now.Add(ttl)

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal session")
	}

	key := r.sessionKey(session.ID)
	charKeys := []string{r.characterKey(session.ChallengerID), r.characterKey(session.OpponentID)}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		busy, err := tx.Exists(ctx, charKeys...).Result()
		if err != nil {
			return errors.Wrap(err, "failed to check characters in battle")
		}
		if busy > 0 {
			return errors.AlreadyExists("character is already in a battle").
				WithMeta("challenger_id", session.ChallengerID).
				WithMeta("opponent_id", session.OpponentID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, ttl)
			for _, ck := range charKeys {
				pipe.Set(ctx, ck, session.ID, ttl)
			}
			return nil
		})
		return err
	}, charKeys...)
	if err != nil {
		return nil, r.mapTxErr(err, "failed to store session in Redis")
	}

	return &CreateOutput{Session: session}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	raw, err := r.client.Get(ctx, r.sessionKey(input.BattleID)).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFound("battle session not found").WithMeta("battle_id", input.BattleID)
		}
		return nil, errors.Wrapf(err, "failed to get session from Redis")
	}

	session, err := r.decode(raw)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: session}, nil
}

func (r *redisRepository) GetByCharacter(ctx context.Context, input GetByCharacterInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID cannot be empty")
	}

	battleID, err := r.client.Get(ctx, r.characterKey(input.CharacterID)).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFound("character is not in a battle").WithMeta("character_id", input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to get character battle from Redis")
	}

	return r.Get(ctx, GetInput{BattleID: battleID})
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}
	if input.Fn == nil {
		return nil, errors.InvalidArgument("update function cannot be nil")
	}

	key := r.sessionKey(input.BattleID)
	var updated *BattleSession

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redisclient.Nil {
				return errors.NotFound("battle session not found").WithMeta("battle_id", input.BattleID)
			}
			return errors.Wrapf(err, "failed to get session from Redis")
		}

		session, err := r.decode(raw)
		if err != nil {
			return err
		}
		if err := input.Fn(session); err != nil {
			return err
		}

		remaining := session.ExpiresAt.Sub(r.clock.Now())
		if remaining <= 0 {
			return errors.NotFound(errSessionExpired).WithMeta("battle_id", input.BattleID)
		}

		sessionJSON, err := json.Marshal(session)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal session")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, remaining)
			return nil
		})
		if err != nil {
			return err
		}

		updated = session
		return nil
	}, key)
	if err != nil {
		return nil, r.mapTxErr(err, "failed to update session in Redis")
	}

	return &UpdateOutput{Session: updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	got, err := r.Get(ctx, GetInput(input))
	if err != nil {
		if errors.IsNotFound(err) {
			return &DeleteOutput{Deleted: false}, nil
		}
		return nil, err
	}

	keys := []string{
		r.sessionKey(input.BattleID),
		r.characterKey(got.Session.ChallengerID),
		r.characterKey(got.Session.OpponentID),
	}
	n, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}

func (r *redisRepository) Prune(ctx context.Context, input PruneInput) (*PruneOutput, error) {
	output := &PruneOutput{}

	// session key -> decodes; character key -> session key it points at
	healthy := make(map[string]bool)
	index := make(map[string]string)

	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", pruneScanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := r.client.Get(ctx, key).Bytes()
		if err == redisclient.Nil {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}
		output.Checked++

		if strings.HasPrefix(key, characterKeyPrefix) {
			index[key] = r.sessionKey(string(raw))
			continue
		}
		var session BattleSession
		healthy[key] = json.Unmarshal(raw, &session) == nil && session.State != nil
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan battle keys")
	}

	for key, ok := range healthy {
		if !ok {
			output.Stale = append(output.Stale, key)
		}
	}
	for key, sessionKey := range index {
		ok, seen := healthy[sessionKey]
		if !seen {
			// created after the scan passed it, or gone
			n, err := r.client.Exists(ctx, sessionKey).Result()
			if err != nil {
				return nil, errors.Wrapf(err, "failed to check session for %s", key)
			}
			ok = n > 0
		}
		if !ok {
			output.Stale = append(output.Stale, key)
		}
	}
	sort.Strings(output.Stale)

	if input.DryRun || len(output.Stale) == 0 {
		return output, nil
	}

	n, err := r.client.Del(ctx, output.Stale...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete stale battle keys")
	}
	output.Deleted = n

	return output, nil
}

func (r *redisRepository) decode(raw []byte) (*BattleSession, error) {
	var session BattleSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session")
	}

	// Redis expiry is authoritative; this covers clock skew between writers
	if r.clock.Now().After(session.ExpiresAt) {
		return nil, errors.NotFound(errSessionExpired).WithMeta("battle_id", session.ID)
	}

	return &session, nil
}

// mapTxErr keeps application errors raised inside WATCH callbacks intact
func (r *redisRepository) mapTxErr(err error, message string) error {
	if err == redisclient.TxFailedErr {
		return errors.WrapWithCode(err, errors.CodeAborted, "battle session changed concurrently")
	}
	var appErr *errors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.Wrap(err, message)
}

func (r *redisRepository) sessionKey(battleID string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, battleID)
}

func (r *redisRepository) characterKey(characterID string) string {
	return fmt.Sprintf("%s%s", characterKeyPrefix, characterID)
}
