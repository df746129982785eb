// Package resentment runs the Normal -> Resentful -> Lost lifecycle
package resentment

//go:generate mockgen -destination=mock/mock_service.go -package=resentmentmock github.com/gamewaifu/waifu-api/internal/orchestrators/resentment Service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	platformotel "github.com/gamewaifu/waifu-api/internal/platform/otel"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
)

var tracer = otel.Tracer("waifu-api/resentment")

// Service defines the interface for resentment operations
type Service interface {
	// Sweep settles every resentful character in one statement. Recovery
	// wins over loss when both conditions hold.
	Sweep(ctx context.Context, input *SweepInput) (*SweepOutput, error)

	// EnterResentful starts the resentful window at the current level
	EnterResentful(ctx context.Context, input *EnterResentfulInput) (*EnterResentfulOutput, error)

	// ApplyDefeat charges the defeat penalty on a character already locked
	// by the caller and saves it through tx
	ApplyDefeat(ctx context.Context, tx character.Tx, c *entities.Character) (*DefeatOutcome, error)
}

// Config holds the dependencies for the resentment orchestrator
type Config struct {
	CharacterRepo character.Repository
	Clock         clock.Clock
	Rules         config.ResentmentRules
	// Defeat carries the penalty settings used by ApplyDefeat
	Defeat config.BattleRules
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Rules.Window <= 0 {
		vb.Field("Rules.Window", "must be positive")
	}
	errors.ValidatePositive("Rules.RecoveryLevels", c.Rules.RecoveryLevels, vb)
	if c.Defeat.DefeatLovePenalty < 0 {
		vb.Field("Defeat.DefeatLovePenalty", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo character.Repository
	clock         clock.Clock
	rules         config.ResentmentRules
	defeat        config.BattleRules
}

// NewOrchestrator creates a new resentment orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		clock:         cfg.Clock,
		rules:         cfg.Rules,
		defeat:        cfg.Defeat,
	}, nil
}

func (o *orchestrator) Sweep(ctx context.Context, _ *SweepInput) (_ *SweepOutput, err error) {
	ctx, span := tracer.Start(ctx, "resentment.Sweep")
	defer func() { platformotel.End(span, err) }()

	now := o.clock.Now()
	out, err := o.characterRepo.SweepResentment(ctx, character.SweepResentmentInput{
		Now:            now,
		Cutoff:         now.Add(-o.rules.Window),
		RecoveryLevels: o.rules.RecoveryLevels,
	})
	if err != nil {
		slog.ErrorContext(ctx, "resentment sweep failed", "operation", "Sweep", "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "Resentment sweep finished", "transitioned", out.Transitioned)

	return &SweepOutput{Transitioned: out.Transitioned}, nil
}

func (o *orchestrator) EnterResentful(
	ctx context.Context,
	input *EnterResentfulInput,
) (_ *EnterResentfulOutput, err error) {
	ctx, span := tracer.Start(ctx, "resentment.EnterResentful")
	defer func() { platformotel.End(span, err) }()

	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	output := &EnterResentfulOutput{}
	err = o.characterRepo.WithExclusiveAccess(ctx, []string{input.CharacterID},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			c := locked[0]
			if c.IsLost {
				return errors.InvalidState("character is lost").WithMeta("character_id", c.ID)
			}

			output.Character = c
			output.Entered = c.EnterResentment(o.clock.Now())
			if !output.Entered {
				return nil
			}
			return tx.Save(ctx, c)
		})
	if err != nil {
		if errors.IsInternal(err) {
			slog.ErrorContext(ctx, "enter resentful failed",
				"operation", "EnterResentful",
				"character_id", input.CharacterID,
				"error", err,
			)
		}
		return nil, err
	}

	if output.Entered {
		slog.InfoContext(ctx, "Character became resentful",
			"character_id", input.CharacterID,
			"base_level", *output.Character.ResentmentBaseLevel,
		)
	}

	return output, nil
}

func (o *orchestrator) ApplyDefeat(ctx context.Context, tx character.Tx, c *entities.Character) (*DefeatOutcome, error) {
	if c == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if c.IsLost {
		return &DefeatOutcome{}, nil
	}

	outcome := &DefeatOutcome{LoveLost: min(o.defeat.DefeatLovePenalty, c.CurrentLove)}
	c.CurrentLove -= outcome.LoveLost
	if o.defeat.DefeatEntersResentment {
		outcome.EnteredResentful = c.EnterResentment(o.clock.Now())
	}

	if err := tx.Save(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Defeat applied",
		"character_id", c.ID,
		"love_lost", outcome.LoveLost,
		"entered_resentful", outcome.EnteredResentful,
	)

	return outcome, nil
}
