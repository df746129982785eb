// Package progression handles levelling, stat allocation and the lifecycle
// of an owner's characters
package progression

//go:generate mockgen -destination=mock/mock_service.go -package=progressionmock github.com/gamewaifu/waifu-api/internal/orchestrators/progression Service

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	"github.com/gamewaifu/waifu-api/internal/pkg/idgen"
	platformotel "github.com/gamewaifu/waifu-api/internal/platform/otel"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
	"github.com/gamewaifu/waifu-api/internal/repositories/levels"
)

var tracer = otel.Tracer("waifu-api/progression")

// Service defines the interface for progression operations
type Service interface {
	// LevelUp spends the love required by the current level and restores
	// health and magic to the new maxima
	LevelUp(ctx context.Context, input *LevelUpInput) (*LevelUpOutput, error)

	// AllocateStatPoints applies every delta or none
	AllocateStatPoints(ctx context.Context, input *AllocateStatPointsInput) (*AllocateStatPointsOutput, error)

	// BindCharacter creates a level 1 instance and makes it the owner's active one
	BindCharacter(ctx context.Context, input *BindCharacterInput) (*BindCharacterOutput, error)

	// SetActive switches the owner's active character
	SetActive(ctx context.Context, input *SetActiveInput) (*SetActiveOutput, error)

	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	GetActiveCharacter(ctx context.Context, input *GetActiveCharacterInput) (*GetActiveCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
}

// Config holds the dependencies for the progression orchestrator
type Config struct {
	CharacterRepo character.Repository
	// LevelRepo is consulted while a character row is locked; back it with
	// levels.NewStatic or levels.Snapshot
	LevelRepo   levels.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
	Rules       config.CharacterRules
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.LevelRepo == nil {
		vb.RequiredField("LevelRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidatePositive("Rules.MaxLevel", c.Rules.MaxLevel, vb)
	errors.ValidateNonNegative("Rules.StatPointsPerLevel", c.Rules.StatPointsPerLevel, vb)

	return vb.Build()
}

type orchestrator struct {
	characterRepo character.Repository
	levelRepo     levels.Repository
	idGen         idgen.Generator
	clock         clock.Clock
	rules         config.CharacterRules
}

// NewOrchestrator creates a new progression orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		levelRepo:     cfg.LevelRepo,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		rules:         cfg.Rules,
	}, nil
}

func (o *orchestrator) LevelUp(ctx context.Context, input *LevelUpInput) (_ *LevelUpOutput, err error) {
	ctx, span := tracer.Start(ctx, "progression.LevelUp")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("character.id", input.CharacterID))

	output := &LevelUpOutput{}
	err = o.characterRepo.WithExclusiveAccess(ctx, []string{input.CharacterID},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			c := locked[0]
			if err := checkOwner(c, input.OwnerID); err != nil {
				return err
			}
			if c.IsLost {
				return errors.InvalidState("character is lost").WithMeta("character_id", c.ID)
			}
			if c.Level >= o.rules.MaxLevel {
				return errors.InvalidState("max level reached").
					WithMeta("character_id", c.ID).
					WithMeta("level", c.Level)
			}

			req, err := o.levelRepo.Get(ctx, levels.GetInput{Level: c.Level})
			if err != nil {
				return err
			}
			cost := req.Requirement.LoveRequired
			if c.CurrentLove < cost {
				return errors.InvalidState("insufficient affection").
					WithMeta("character_id", c.ID).
					WithMeta("love", c.CurrentLove).
					WithMeta("required", cost)
			}

			c.Level++
			c.CurrentLove -= cost
			c.StatPoints += o.rules.StatPointsPerLevel
			c.MaxHealth = MaxHealth(o.rules, c.Level, c.Defense)
			c.MaxMagic = MaxMagic(o.rules, c.Level, c.Magic)
			c.CurrentHealth = c.MaxHealth
			c.CurrentMagic = c.MaxMagic

			if err := tx.Save(ctx, c); err != nil {
				return err
			}

			*output = LevelUpOutput{
				NewLevel:      c.Level,
				NewMaxHealth:  c.MaxHealth,
				NewMaxMagic:   c.MaxMagic,
				LoveSpent:     cost,
				RemainingLove: c.CurrentLove,
				StatPoints:    c.StatPoints,
			}
			return nil
		})
	if err != nil {
		o.logInternal(ctx, "LevelUp", input.CharacterID, err)
		return nil, err
	}

	slog.InfoContext(ctx, "Character levelled up",
		"character_id", input.CharacterID,
		"new_level", output.NewLevel,
		"love_spent", output.LoveSpent,
		"remaining_love", output.RemainingLove,
		"max_health", output.NewMaxHealth,
		"max_magic", output.NewMaxMagic,
	)

	return output, nil
}

func (o *orchestrator) AllocateStatPoints(
	ctx context.Context,
	input *AllocateStatPointsInput,
) (_ *AllocateStatPointsOutput, err error) {
	ctx, span := tracer.Start(ctx, "progression.AllocateStatPoints")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	deltas, total, err := parsePoints(input)
	if err != nil {
		return nil, err
	}

	var updated *entities.Character
	err = o.characterRepo.WithExclusiveAccess(ctx, []string{input.CharacterID},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			c := locked[0]
			if err := checkOwner(c, input.OwnerID); err != nil {
				return err
			}
			if c.IsLost {
				return errors.InvalidState("character is lost").WithMeta("character_id", c.ID)
			}
			if total > c.StatPoints {
				return errors.InvalidStatef("not enough stat points: have %d, need %d", c.StatPoints, total).
					WithMeta("character_id", c.ID)
			}

			for stat, delta := range deltas {
				c.AddStat(stat, delta)
			}
			c.StatPoints -= total

			if deltas[entities.StatDefense] > 0 || deltas[entities.StatMagic] > 0 {
				c.MaxHealth = MaxHealth(o.rules, c.Level, c.Defense)
				c.MaxMagic = MaxMagic(o.rules, c.Level, c.Magic)
				c.CurrentHealth = min(c.CurrentHealth, c.MaxHealth)
				c.CurrentMagic = min(c.CurrentMagic, c.MaxMagic)
			}

			if err := tx.Save(ctx, c); err != nil {
				return err
			}
			updated = c
			return nil
		})
	if err != nil {
		o.logInternal(ctx, "AllocateStatPoints", input.CharacterID, err)
		return nil, err
	}

	slog.InfoContext(ctx, "Stat points allocated",
		"character_id", input.CharacterID,
		"points", total,
		"remaining", updated.StatPoints,
	)

	return &AllocateStatPointsOutput{Character: updated}, nil
}

// parsePoints validates every key and value before any row is touched
func parsePoints(input *AllocateStatPointsInput) (map[entities.Stat]int, int, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	if len(input.Points) == 0 {
		vb.RequiredField("points")
	}

	keys := make([]string, 0, len(input.Points))
	for key := range input.Points {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	deltas := make(map[entities.Stat]int, len(keys))
	total := 0
	overflow := false
	for _, key := range keys {
		value := input.Points[key]
		stat, ok := entities.ParseStat(key)
		if !ok {
			vb.Field("points."+key, "unknown stat")
			continue
		}
		if value < 0 {
			errors.ValidateNonNegative("points."+key, value, vb)
			continue
		}
		if value > math.MaxInt-total {
			vb.Field("points", "total is too large")
			overflow = true
			break
		}
		deltas[stat] += value
		total += value
	}
	if len(input.Points) > 0 && total == 0 && !overflow {
		vb.Field("points", "must allocate at least one point")
	}

	if err := vb.Build(); err != nil {
		return nil, 0, err
	}
	return deltas, total, nil
}

func (o *orchestrator) BindCharacter(ctx context.Context, input *BindCharacterInput) (_ *BindCharacterOutput, err error) {
	ctx, span := tracer.Start(ctx, "progression.BindCharacter")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", input.OwnerID, vb)
	errors.ValidateRequired("template_id", input.TemplateID, vb)
	rarities := make([]string, len(entities.Rarities))
	for i, r := range entities.Rarities {
		rarities[i] = string(r)
	}
	errors.ValidateEnum("rarity", string(input.Rarity), rarities, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	base := o.rules.BaseStats[string(input.Rarity)]
	now := o.clock.Now()
	c := &entities.Character{
		ID:              o.idGen.Generate(),
		OwnerID:         input.OwnerID,
		TemplateID:      input.TemplateID,
		Rarity:          input.Rarity,
		Level:           1,
		Attack:          base,
		Defense:         base,
		Speed:           base,
		CritDamage:      base,
		CritProbability: base,
		Magic:           base,
		HealthRegenRate: o.rules.HealthRegenRate,
		LastRest:        &now,
	}
	c.MaxHealth = MaxHealth(o.rules, c.Level, c.Defense)
	c.MaxMagic = MaxMagic(o.rules, c.Level, c.Magic)
	c.CurrentHealth = c.MaxHealth
	c.CurrentMagic = c.MaxMagic

	out, err := o.characterRepo.Create(ctx, character.CreateInput{Character: c, Activate: true})
	if err != nil {
		o.logInternal(ctx, "BindCharacter", c.ID, err)
		return nil, err
	}

	slog.InfoContext(ctx, "Character bound",
		"character_id", c.ID,
		"owner_id", c.OwnerID,
		"template_id", c.TemplateID,
		"rarity", c.Rarity,
	)

	return &BindCharacterOutput{Character: out.Character}, nil
}

func (o *orchestrator) SetActive(ctx context.Context, input *SetActiveInput) (_ *SetActiveOutput, err error) {
	ctx, span := tracer.Start(ctx, "progression.SetActive")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", input.OwnerID, vb)
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var active *entities.Character
	err = o.characterRepo.WithExclusiveAccess(ctx, []string{input.CharacterID},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			c := locked[0]
			if err := checkOwner(c, input.OwnerID); err != nil {
				return err
			}
			if c.IsLost {
				return errors.InvalidState("a lost character cannot be active").WithMeta("character_id", c.ID)
			}

			// clear the others first so the one-active-per-owner index holds
			if err := tx.DeactivateOthers(ctx, c.OwnerID, c.ID); err != nil {
				return err
			}
			c.IsActive = true
			if err := tx.Save(ctx, c); err != nil {
				return err
			}
			active = c
			return nil
		})
	if err != nil {
		o.logInternal(ctx, "SetActive", input.CharacterID, err)
		return nil, err
	}

	slog.InfoContext(ctx, "Active character switched",
		"owner_id", input.OwnerID,
		"character_id", input.CharacterID,
	)

	return &SetActiveOutput{Character: active}, nil
}

func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	out, err := o.characterRepo.Get(ctx, character.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	if err := checkOwner(out.Character, input.OwnerID); err != nil {
		return nil, err
	}

	return &GetCharacterOutput{Character: out.Character}, nil
}

func (o *orchestrator) GetActiveCharacter(
	ctx context.Context,
	input *GetActiveCharacterInput,
) (*GetActiveCharacterOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.characterRepo.GetActive(ctx, character.GetActiveInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}

	return &GetActiveCharacterOutput{Character: out.Character}, nil
}

func (o *orchestrator) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.characterRepo.ListByOwner(ctx, character.ListByOwnerInput{
		OwnerID:     input.OwnerID,
		IncludeLost: input.IncludeLost,
	})
	if err != nil {
		return nil, err
	}

	return &ListCharactersOutput{Characters: out.Characters}, nil
}

func (o *orchestrator) logInternal(ctx context.Context, operation, characterID string, err error) {
	if !errors.IsInternal(err) {
		return
	}
	slog.ErrorContext(ctx, "progression operation failed",
		"operation", operation,
		"character_id", characterID,
		"error", err,
	)
}

// checkOwner hides characters of other owners behind NotFound
func checkOwner(c *entities.Character, ownerID string) error {
	if ownerID != "" && c.OwnerID != ownerID {
		return errors.NotFoundf("character %s not found", c.ID).WithMeta("character_id", c.ID)
	}
	return nil
}
