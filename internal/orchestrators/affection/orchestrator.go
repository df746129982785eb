// Package affection turns click batches into love
package affection

//go:generate mockgen -destination=mock/mock_service.go -package=affectionmock github.com/gamewaifu/waifu-api/internal/orchestrators/affection Service

import (
	"context"
	"log/slog"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	"github.com/gamewaifu/waifu-api/internal/pkg/idgen"
	platformotel "github.com/gamewaifu/waifu-api/internal/platform/otel"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
	clickguard "github.com/gamewaifu/waifu-api/internal/repositories/click_guard"
)

var tracer = otel.Tracer("waifu-api/affection")

// Service defines the interface for affection operations
type Service interface {
	// RecordClickSession adds the love earned by one batch of taps. A lost
	// character earns nothing; the batch is still logged.
	RecordClickSession(ctx context.Context, input *RecordClickSessionInput) (*RecordClickSessionOutput, error)
	ListClickSessions(ctx context.Context, input *ListClickSessionsInput) (*ListClickSessionsOutput, error)
}

// Config holds the dependencies for the affection orchestrator
type Config struct {
	CharacterRepo character.Repository
	// ClickGuard defaults to accepting every batch
	ClickGuard  clickguard.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Rules       config.ClickRules
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidatePositive("Rules.LovePerClick", c.Rules.LovePerClick, vb)
	errors.ValidatePositive("Rules.MaxPerSession", c.Rules.MaxPerSession, vb)
	if c.Rules.ResentfulMultiplier < 0 || c.Rules.ResentfulMultiplier > 1 {
		vb.Field("Rules.ResentfulMultiplier", "must be between 0 and 1")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo character.Repository
	guard         clickguard.Repository
	idGen         idgen.Generator
	clock         clock.Clock
	rules         config.ClickRules
}

// NewOrchestrator creates a new affection orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	guard := cfg.ClickGuard
	if guard == nil {
		guard = clickguard.NewNoop()
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		guard:         guard,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		rules:         cfg.Rules,
	}, nil
}

// LoveGain is the love earned by clicks at the given multiplier, rounded to
// the nearest whole point
func LoveGain(clicks, lovePerClick int, multiplier float64) int64 {
	return int64(math.Round(float64(clicks) * float64(lovePerClick) * multiplier))
}

func (o *orchestrator) RecordClickSession(
	ctx context.Context,
	input *RecordClickSessionInput,
) (_ *RecordClickSessionOutput, err error) {
	ctx, span := tracer.Start(ctx, "affection.RecordClickSession")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", input.OwnerID, vb)
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidateRange("click_count", input.ClickCount, 1, o.rules.MaxPerSession, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("character.id", input.CharacterID),
		attribute.Int("click.count", input.ClickCount),
	)

	claim, err := o.guard.Claim(ctx, clickguard.ClaimInput{CharacterID: input.CharacterID, Token: input.Token})
	if err != nil {
		return nil, err
	}

	output := &RecordClickSessionOutput{SessionID: o.idGen.Generate()}
	now := o.clock.Now()

	err = o.characterRepo.WithExclusiveAccess(ctx, []string{input.CharacterID},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			c := locked[0]
			if c.OwnerID != input.OwnerID {
				return errors.NotFoundf("character %s not found", input.CharacterID).
					WithMeta("character_id", input.CharacterID)
			}

			output.IsResentful = c.IsResentful
			output.IsLost = c.IsLost

			if !c.IsLost {
				multiplier := 1.0
				if c.IsResentful {
					multiplier = o.rules.ResentfulMultiplier
				}
				output.LoveGain = LoveGain(input.ClickCount, o.rules.LovePerClick, multiplier)

				c.CurrentLove += output.LoveGain
				c.UsageCounter++
				c.LastUsed = &now
				if err := tx.Save(ctx, c); err != nil {
					return err
				}
			}
			output.NewLove = c.CurrentLove

			return tx.AppendClickSession(ctx, &entities.ClickSession{
				ID:           output.SessionID,
				OwnerID:      input.OwnerID,
				CharacterID:  input.CharacterID,
				ClickCount:   input.ClickCount,
				LoveGained:   output.LoveGain,
				WasResentful: c.IsResentful,
				CreatedAt:    now,
			})
		})
	if err != nil {
		if claim.Claimed {
			if relErr := o.guard.Release(ctx, clickguard.ReleaseInput{
				CharacterID: input.CharacterID,
				Token:       input.Token,
			}); relErr != nil {
				slog.WarnContext(ctx, "failed to release click token",
					"character_id", input.CharacterID,
					"error", relErr,
				)
			}
		}
		if errors.IsInternal(err) {
			slog.ErrorContext(ctx, "click session failed",
				"operation", "RecordClickSession",
				"owner_id", input.OwnerID,
				"character_id", input.CharacterID,
				"error", err,
			)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "Click session recorded",
		"session_id", output.SessionID,
		"character_id", input.CharacterID,
		"click_count", input.ClickCount,
		"love_gain", output.LoveGain,
		"new_love", output.NewLove,
		"is_resentful", output.IsResentful,
		"is_lost", output.IsLost,
	)

	return output, nil
}

func (o *orchestrator) ListClickSessions(
	ctx context.Context,
	input *ListClickSessionsInput,
) (_ *ListClickSessionsOutput, err error) {
	ctx, span := tracer.Start(ctx, "affection.ListClickSessions")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", input.OwnerID, vb)
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidateNonNegative("limit", input.Limit, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	got, err := o.characterRepo.Get(ctx, character.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	if got.Character.OwnerID != input.OwnerID {
		return nil, errors.NotFoundf("character %s not found", input.CharacterID)
	}

	out, err := o.characterRepo.ListClickSessions(ctx, character.ListClickSessionsInput{
		CharacterID: input.CharacterID,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list click sessions")
	}

	return &ListClickSessionsOutput{Sessions: out.Sessions}, nil
}
