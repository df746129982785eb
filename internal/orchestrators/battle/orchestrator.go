// Package battle runs battles between characters of different owners and
// persists their outcome
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/gamewaifu/waifu-api/internal/orchestrators/battle Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/engine"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/resentment"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	"github.com/gamewaifu/waifu-api/internal/pkg/idgen"
	platformotel "github.com/gamewaifu/waifu-api/internal/platform/otel"
	battlesession "github.com/gamewaifu/waifu-api/internal/repositories/battle_session"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
)

var tracer = otel.Tracer("waifu-api/battle")

// Service defines the interface for battle operations
type Service interface {
	// ExecuteBattle simulates a basic-attack battle and persists the result,
	// both characters' health and magic, and the defeat penalty in one
	// transaction
	ExecuteBattle(ctx context.Context, input *ExecuteBattleInput) (*ExecuteBattleOutput, error)

	// StartBattle opens an interactive battle kept in Redis until it ends
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// SubmitTurn plays one turn of an interactive battle; the finishing turn
	// persists the outcome
	SubmitTurn(ctx context.Context, input *SubmitTurnInput) (*SubmitTurnOutput, error)

	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)

	// FindOpponent picks a random playable character of another owner within
	// the configured level range
	FindOpponent(ctx context.Context, input *FindOpponentInput) (*FindOpponentOutput, error)

	ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	CharacterRepo character.Repository
	SessionRepo   battlesession.Repository
	Resentment    resentment.Service
	IDGenerator   idgen.Generator
	Clock         clock.Clock
	// Random defaults to the system source
	Random engine.Random
	// OpponentPolicy picks the defender's interactive actions; defaults to
	// basic attacks
	OpponentPolicy engine.Chooser
	Rules          config.BattleRules
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.Resentment == nil {
		vb.RequiredField("Resentment")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidatePositive("Rules.MaxTurns", c.Rules.MaxTurns, vb)
	errors.ValidateNonNegative("Rules.LevelRange", c.Rules.LevelRange, vb)

	return vb.Build()
}

type orchestrator struct {
	characterRepo character.Repository
	sessionRepo   battlesession.Repository
	resentment    resentment.Service
	idGen         idgen.Generator
	clock         clock.Clock
	engine        *engine.Engine
	policy        engine.Chooser
	rules         config.BattleRules
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	policy := cfg.OpponentPolicy
	if policy == nil {
		policy = engine.BasicAttacks
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		sessionRepo:   cfg.SessionRepo,
		resentment:    cfg.Resentment,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		engine: engine.New(engine.Options{
			MaxTurns:               cfg.Rules.MaxTurns,
			MagicDefenseTurnScoped: cfg.Rules.MagicDefenseTurnScoped,
		}, cfg.Random),
		policy: policy,
		rules:  cfg.Rules,
	}, nil
}

func validatePair(ownerID, attackerID, defenderID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", ownerID, vb)
	errors.ValidateRequired("attacker_id", attackerID, vb)
	errors.ValidateRequired("defender_id", defenderID, vb)
	if attackerID != "" && attackerID == defenderID {
		vb.Field("defender_id", "must differ from attacker_id")
	}
	return vb.Build()
}

func (o *orchestrator) ExecuteBattle(ctx context.Context, input *ExecuteBattleInput) (_ *ExecuteBattleOutput, err error) {
	ctx, span := tracer.Start(ctx, "battle.ExecuteBattle")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validatePair(input.OwnerID, input.AttackerID, input.DefenderID); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("battle.attacker_id", input.AttackerID),
		attribute.String("battle.defender_id", input.DefenderID),
	)

	output := &ExecuteBattleOutput{BattleID: o.idGen.Generate()}
	err = o.characterRepo.WithExclusiveAccess(ctx, []string{input.AttackerID, input.DefenderID},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			attacker, defender := locked[0], locked[1]
			if err := checkEligible(input.OwnerID, attacker, defender); err != nil {
				return err
			}

			initial := [2]engine.Combatant{Snapshot(attacker), Snapshot(defender)}
			summary, err := o.engine.Simulate(initial[0], initial[1], engine.BasicAttacks)
			if err != nil {
				return err
			}

			if err := o.persist(ctx, tx, output.BattleID, entities.BattleModeAuto, initial, summary, locked); err != nil {
				return err
			}

			output.WinnerID = summary.WinnerID
			output.Turns = summary.Turns
			output.Log = summary.Log
			output.Attacker = attacker
			output.Defender = defender
			return nil
		})
	if err != nil {
		o.logInternal(ctx, "ExecuteBattle", input.AttackerID, input.DefenderID, err)
		return nil, err
	}

	slog.InfoContext(ctx, "Battle executed",
		"battle_id", output.BattleID,
		"attacker_id", input.AttackerID,
		"defender_id", input.DefenderID,
		"winner_id", winnerString(output.WinnerID),
		"turns", output.Turns,
	)

	return output, nil
}

// persist applies a finished battle to the locked rows. Health and magic move
// by the amount the battle changed them, so writes that landed after the
// snapshot are kept.
func (o *orchestrator) persist(
	ctx context.Context,
	tx character.Tx,
	battleID string,
	mode entities.BattleMode,
	initial [2]engine.Combatant,
	summary *engine.Summary,
	locked []*entities.Character,
) error {
	logJSON, err := json.Marshal(summary.Log)
	if err != nil {
		return errors.Wrap(err, "failed to encode battle log")
	}

	now := o.clock.Now()
	for i, c := range locked {
		if c.IsLost {
			continue
		}
		c.CurrentHealth += summary.Final[i].Health - initial[i].Health
		c.CurrentMagic += summary.Final[i].Magic - initial[i].Magic
		c.UsageCounter++
		c.LastUsed = &now
		if err := tx.Save(ctx, c); err != nil {
			return err
		}
	}

	if err := tx.CreateBattle(ctx, &entities.BattleRecord{
		ID:         battleID,
		Mode:       mode,
		AttackerID: locked[0].ID,
		DefenderID: locked[1].ID,
		WinnerID:   summary.WinnerID,
		Turns:      summary.Turns,
		Log:        datatypes.JSON(logJSON),
		AttackerHP: locked[0].CurrentHealth,
		DefenderHP: locked[1].CurrentHealth,
		AttackerMP: locked[0].CurrentMagic,
		DefenderMP: locked[1].CurrentMagic,
		CreatedAt:  now,
	}); err != nil {
		return err
	}

	// only a knockout carries the defeat penalty
	for i, c := range locked {
		if summary.Final[i].Health > 0 || c.IsLost {
			continue
		}
		if _, err := o.resentment.ApplyDefeat(ctx, tx, c); err != nil {
			return err
		}
	}

	return nil
}

func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (_ *StartBattleOutput, err error) {
	ctx, span := tracer.Start(ctx, "battle.StartBattle")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validatePair(input.OwnerID, input.AttackerID, input.DefenderID); err != nil {
		return nil, err
	}

	attacker, err := o.characterRepo.Get(ctx, character.GetInput{ID: input.AttackerID})
	if err != nil {
		return nil, err
	}
	defender, err := o.characterRepo.Get(ctx, character.GetInput{ID: input.DefenderID})
	if err != nil {
		return nil, err
	}
	if err := checkEligible(input.OwnerID, attacker.Character, defender.Character); err != nil {
		return nil, err
	}

	initial := [2]engine.Combatant{Snapshot(attacker.Character), Snapshot(defender.Character)}
	state, err := o.engine.Start(initial[0], initial[1])
	if err != nil {
		return nil, err
	}

	out, err := o.sessionRepo.Create(ctx, battlesession.CreateInput{
		Session: &battlesession.BattleSession{
			ID:           o.idGen.Generate(),
			OwnerID:      input.OwnerID,
			ChallengerID: input.AttackerID,
			OpponentID:   input.DefenderID,
			State:        state,
			Initial:      initial,
		},
		TTL: o.rules.SessionTTL,
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Interactive battle started",
		"battle_id", out.Session.ID,
		"attacker_id", input.AttackerID,
		"defender_id", input.DefenderID,
		"expires_at", out.Session.ExpiresAt.Format(time.RFC3339),
	)

	return &StartBattleOutput{Session: out.Session}, nil
}

func (o *orchestrator) SubmitTurn(ctx context.Context, input *SubmitTurnInput) (_ *SubmitTurnOutput, err error) {
	ctx, span := tracer.Start(ctx, "battle.SubmitTurn")
	defer func() { platformotel.End(span, err) }()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("owner_id", input.OwnerID, vb)
	errors.ValidateRequired("battle_id", input.BattleID, vb)
	if !input.Action.Valid() {
		vb.Field("action", "must be a known action")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	output := &SubmitTurnOutput{}
	updated, err := o.sessionRepo.Update(ctx, battlesession.UpdateInput{
		BattleID: input.BattleID,
		Fn: func(session *battlesession.BattleSession) error {
			if session.OwnerID != input.OwnerID {
				return errors.NotFound("battle session not found").WithMeta("battle_id", input.BattleID)
			}
			// finished but not yet persisted: fall through and retry the write
			if session.State.Finished {
				return nil
			}

			turn, err := o.engine.PlayTurn(session.State, input.Action, o.policy(session.State, 1))
			if err != nil {
				return err
			}
			output.Turn = turn
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	session := updated.Session
	output.Session = session
	output.Finished = session.State.Finished
	output.WinnerID = session.State.WinnerID

	if !session.State.Finished {
		return output, nil
	}

	err = o.characterRepo.WithExclusiveAccess(ctx, []string{session.ChallengerID, session.OpponentID},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			// an earlier call settled the battle but could not drop the session
			settled, err := tx.BattleExists(ctx, session.ID)
			if err != nil || settled {
				return err
			}
			return o.persist(ctx, tx, session.ID, entities.BattleModeInteractive, session.Initial, session.State.Summary(), locked)
		})
	if err != nil {
		o.logInternal(ctx, "SubmitTurn", session.ChallengerID, session.OpponentID, err)
		return nil, err
	}

	if _, err := o.sessionRepo.Delete(ctx, battlesession.DeleteInput{BattleID: session.ID}); err != nil {
		slog.WarnContext(ctx, "failed to delete finished battle session",
			"battle_id", session.ID,
			"error", err,
		)
	}

	slog.InfoContext(ctx, "Interactive battle finished",
		"battle_id", session.ID,
		"winner_id", winnerString(session.State.WinnerID),
		"turns", session.State.Turn,
	)

	return output, nil
}

func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil || input.BattleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	out, err := o.sessionRepo.Get(ctx, battlesession.GetInput{BattleID: input.BattleID})
	if err != nil {
		return nil, err
	}
	if input.OwnerID != "" && out.Session.OwnerID != input.OwnerID {
		return nil, errors.NotFound("battle session not found").WithMeta("battle_id", input.BattleID)
	}

	return &GetBattleOutput{Session: out.Session}, nil
}

func (o *orchestrator) FindOpponent(ctx context.Context, input *FindOpponentInput) (_ *FindOpponentOutput, err error) {
	ctx, span := tracer.Start(ctx, "battle.FindOpponent")
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

	got, err := o.characterRepo.Get(ctx, character.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	if got.Character.OwnerID != input.OwnerID {
		return nil, errors.NotFoundf("character %s not found", input.CharacterID)
	}

	level := got.Character.Level
	out, err := o.characterRepo.FindOpponent(ctx, character.FindOpponentInput{
		ExcludeOwnerID: input.OwnerID,
		MinLevel:       max(1, level-o.rules.LevelRange),
		MaxLevel:       level + o.rules.LevelRange,
	})
	if err != nil {
		return nil, err
	}

	return &FindOpponentOutput{Opponent: out.Character}, nil
}

func (o *orchestrator) ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	out, err := o.characterRepo.ListBattles(ctx, character.ListBattlesInput{
		CharacterID: input.CharacterID,
		Limit:       input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &ListBattlesOutput{Battles: out.Battles}, nil
}

func (o *orchestrator) logInternal(ctx context.Context, operation, attackerID, defenderID string, err error) {
	if !errors.IsInternal(err) {
		return
	}
	slog.ErrorContext(ctx, "battle operation failed",
		"operation", operation,
		"attacker_id", attackerID,
		"defender_id", defenderID,
		"error", err,
	)
}

func winnerString(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
