// Package regeneration moves health and magic back toward their caps, both on
// a schedule and on demand
package regeneration

//go:generate mockgen -destination=mock/mock_service.go -package=regenerationmock github.com/gamewaifu/waifu-api/internal/orchestrators/regeneration Service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	platformotel "github.com/gamewaifu/waifu-api/internal/platform/otel"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
)

var tracer = otel.Tracer("waifu-api/regeneration")

// Service defines the interface for regeneration operations
type Service interface {
	// RegenerateHealth adds health_regen_rate per whole minute since each
	// damaged character's last rest, capped at max health. Rows are updated one
	// at a time under their own lock; a failing row does not stop the rest.
	RegenerateHealth(ctx context.Context, input *RegenerateHealthInput) (*RegenerateHealthOutput, error)

	// RegenerateMagic adds max(minimum, max_magic * percent / 100) to every
	// playable character below max magic in one statement
	RegenerateMagic(ctx context.Context, input *RegenerateMagicInput) (*RegenerateMagicOutput, error)

	// RestoreHealth adds Amount health to one character, capped at max
	RestoreHealth(ctx context.Context, input *RestoreInput) (*RestoreOutput, error)

	// RestoreMagic adds Amount magic to one character, capped at max
	RestoreMagic(ctx context.Context, input *RestoreInput) (*RestoreOutput, error)
}

// Config holds the dependencies for the regeneration orchestrator
type Config struct {
	CharacterRepo character.Repository
	Clock         clock.Clock
	Rules         config.RegenerationRules
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
	errors.ValidateRange("Rules.MagicPercent", c.Rules.MagicPercent, 0, 100, vb)
	errors.ValidateNonNegative("Rules.MagicMinimum", c.Rules.MagicMinimum, vb)
	errors.ValidatePositive("Rules.BatchSize", c.Rules.BatchSize, vb)

	return vb.Build()
}

type orchestrator struct {
	characterRepo character.Repository
	clock         clock.Clock
	rules         config.RegenerationRules
}

// NewOrchestrator creates a new regeneration orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		clock:         cfg.Clock,
		rules:         cfg.Rules,
	}, nil
}

func (o *orchestrator) RegenerateHealth(
	ctx context.Context,
	_ *RegenerateHealthInput,
) (_ *RegenerateHealthOutput, err error) {
	ctx, span := tracer.Start(ctx, "regeneration.RegenerateHealth")
	defer func() { platformotel.End(span, err) }()

	now := o.clock.Now()
	output := &RegenerateHealthOutput{}

	afterID := ""
	for {
		page, err := o.characterRepo.ListHealthRegenCandidates(ctx, character.ListHealthRegenCandidatesInput{
			AfterID: afterID,
			Limit:   o.rules.BatchSize,
		})
		if err != nil {
			return nil, err
		}

		for _, id := range page.IDs {
			changed, err := o.regenerateOne(ctx, id, now)
			if err != nil {
				output.Failed++
				slog.ErrorContext(ctx, "health regeneration failed",
					"operation", "RegenerateHealth",
					"character_id", id,
					"error", err,
				)
				continue
			}
			if changed {
				output.Regenerated++
			}
		}

		if len(page.IDs) < o.rules.BatchSize {
			break
		}
		afterID = page.IDs[len(page.IDs)-1]
	}

	stamped, err := o.characterRepo.MarkRested(ctx, character.MarkRestedInput{Now: now})
	if err != nil {
		return nil, err
	}
	output.Stamped = stamped.Updated

	span.SetAttributes(
		attribute.Int("regeneration.regenerated", output.Regenerated),
		attribute.Int("regeneration.failed", output.Failed),
	)

	if output.Failed > 0 {
		return output, errors.Internalf("health regeneration failed for %d characters", output.Failed).
			WithMeta("regenerated", output.Regenerated)
	}

	slog.InfoContext(ctx, "Health regeneration finished",
		"regenerated", output.Regenerated,
		"stamped", output.Stamped,
	)

	return output, nil
}

// regenerateOne applies the elapsed whole minutes to one row. last_rest only
// advances by the minutes consumed so partial minutes carry over to the next
// tick.
func (o *orchestrator) regenerateOne(ctx context.Context, id string, now time.Time) (bool, error) {
	changed := false
	err := o.characterRepo.WithExclusiveAccess(ctx, []string{id},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			c := locked[0]
			if c.IsLost || c.CurrentHealth >= c.MaxHealth || c.HealthRegenRate <= 0 {
				return nil
			}

			if c.LastRest == nil {
				c.LastRest = &now
				return tx.Save(ctx, c)
			}

			minutes := int(now.Sub(*c.LastRest) / time.Minute)
			if minutes <= 0 {
				return nil
			}

			c.CurrentHealth = min(c.MaxHealth, c.CurrentHealth+c.HealthRegenRate*minutes)
			rested := c.LastRest.Add(time.Duration(minutes) * time.Minute)
			if c.CurrentHealth == c.MaxHealth {
				rested = now
			}
			c.LastRest = &rested
			changed = true
			return tx.Save(ctx, c)
		})
	return changed, err
}

func (o *orchestrator) RegenerateMagic(
	ctx context.Context,
	_ *RegenerateMagicInput,
) (_ *RegenerateMagicOutput, err error) {
	ctx, span := tracer.Start(ctx, "regeneration.RegenerateMagic")
	defer func() { platformotel.End(span, err) }()

	out, err := o.characterRepo.RegenerateMagic(ctx, character.RegenerateMagicInput{
		Percent: o.rules.MagicPercent,
		Minimum: o.rules.MagicMinimum,
		Now:     o.clock.Now(),
	})
	if err != nil {
		if errors.IsInternal(err) {
			slog.ErrorContext(ctx, "magic regeneration failed",
				"operation", "RegenerateMagic",
				"error", err,
			)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "Magic regeneration finished", "updated", out.Updated)

	return &RegenerateMagicOutput{Updated: out.Updated}, nil
}

func (o *orchestrator) RestoreHealth(ctx context.Context, input *RestoreInput) (*RestoreOutput, error) {
	return o.restore(ctx, "RestoreHealth", input, func(c *entities.Character) int {
		before := c.CurrentHealth
		c.CurrentHealth = min(c.MaxHealth, c.CurrentHealth+input.Amount)
		return c.CurrentHealth - before
	})
}

func (o *orchestrator) RestoreMagic(ctx context.Context, input *RestoreInput) (*RestoreOutput, error) {
	return o.restore(ctx, "RestoreMagic", input, func(c *entities.Character) int {
		before := c.CurrentMagic
		c.CurrentMagic = min(c.MaxMagic, c.CurrentMagic+input.Amount)
		return c.CurrentMagic - before
	})
}

func (o *orchestrator) restore(
	ctx context.Context,
	operation string,
	input *RestoreInput,
	apply func(c *entities.Character) int,
) (_ *RestoreOutput, err error) {
	ctx, span := tracer.Start(ctx, "regeneration."+operation)
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidatePositive("amount", input.Amount, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	output := &RestoreOutput{}
	err = o.characterRepo.WithExclusiveAccess(ctx, []string{input.CharacterID},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			c := locked[0]
			if input.OwnerID != "" && c.OwnerID != input.OwnerID {
				return errors.NotFoundf("character %s not found", input.CharacterID)
			}
			if c.IsLost {
				return errors.InvalidState("character is lost").WithMeta("character_id", c.ID)
			}

			output.Character = c
			output.Restored = apply(c)
			if output.Restored == 0 {
				return nil
			}
			return tx.Save(ctx, c)
		})
	if err != nil {
		if errors.IsInternal(err) {
			slog.ErrorContext(ctx, "restore failed",
				"operation", operation,
				"character_id", input.CharacterID,
				"error", err,
			)
		}
		return nil, err
	}

	slog.InfoContext(ctx, "Character restored",
		"operation", operation,
		"character_id", input.CharacterID,
		"restored", output.Restored,
	)

	return output, nil
}
