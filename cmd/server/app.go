package main

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/database"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/affection"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/battle"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/progression"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/regeneration"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/resentment"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	"github.com/gamewaifu/waifu-api/internal/pkg/idgen"
	redisclient "github.com/gamewaifu/waifu-api/internal/redis"
	battlesession "github.com/gamewaifu/waifu-api/internal/repositories/battle_session"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
	clickguard "github.com/gamewaifu/waifu-api/internal/repositories/click_guard"
	"github.com/gamewaifu/waifu-api/internal/repositories/levels"
)

// app holds every wired service for one process
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	redis    redisclient.Client
	sessions battlesession.Repository

	affection    affection.Service
	progression  progression.Service
	resentment   resentment.Service
	battle       battle.Service
	regeneration regeneration.Service
}

func newApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = database.Close(db)
		}
	}()

	rdb, err := redisclient.NewClient(cfg.Redis.Address, &redisclient.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis config")
	}
	defer func() {
		if err != nil {
			_ = rdb.Close()
		}
	}()

	clk := clock.New()

	characters, err := character.NewGorm(&character.GormConfig{DB: db, Clock: clk})
	if err != nil {
		return nil, err
	}

	levelRepo, err := loadLevels(ctx, cfg, db)
	if err != nil {
		return nil, err
	}

	sessions, err := battlesession.NewRedisRepository(&battlesession.Config{Client: rdb, Clock: clk})
	if err != nil {
		return nil, err
	}

	var guard clickguard.Repository
	if cfg.Game.Clicks.DedupeWindow > 0 {
		guard, err = clickguard.NewRedisRepository(&clickguard.Config{
			Client: rdb,
			Window: cfg.Game.Clicks.DedupeWindow,
		})
		if err != nil {
			return nil, err
		}
	}

	a := &app{cfg: cfg, db: db, redis: rdb, sessions: sessions}

	a.affection, err = affection.NewOrchestrator(&affection.Config{
		CharacterRepo: characters,
		ClickGuard:    guard,
		IDGenerator:   idgen.NewUUID("click"),
		Clock:         clk,
		Rules:         cfg.Game.Clicks,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create affection orchestrator")
	}

	a.progression, err = progression.NewOrchestrator(&progression.Config{
		CharacterRepo: characters,
		LevelRepo:     levelRepo,
		IDGenerator:   idgen.NewUUID("chr"),
		Clock:         clk,
		Rules:         cfg.Game.Character,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create progression orchestrator")
	}

	a.resentment, err = resentment.NewOrchestrator(&resentment.Config{
		CharacterRepo: characters,
		Clock:         clk,
		Rules:         cfg.Game.Resentment,
		Defeat:        cfg.Game.Battle,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create resentment orchestrator")
	}

	a.battle, err = battle.NewOrchestrator(&battle.Config{
		CharacterRepo: characters,
		SessionRepo:   sessions,
		Resentment:    a.resentment,
		IDGenerator:   idgen.NewUUID("btl"),
		Clock:         clk,
		Rules:         cfg.Game.Battle,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create battle orchestrator")
	}

	a.regeneration, err = regeneration.NewOrchestrator(&regeneration.Config{
		CharacterRepo: characters,
		Clock:         clk,
		Rules:         cfg.Game.Regeneration,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create regeneration orchestrator")
	}

	return a, nil
}

// loadLevels returns a level table that never queries storage, since
// progression reads it while a character row is locked
func loadLevels(ctx context.Context, cfg *config.Config, db *gorm.DB) (levels.Repository, error) {
	step := cfg.Game.Levels.DefaultStep

	if path := cfg.Game.Levels.File; path != "" {
		f, err := levels.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if f.DefaultStep > 0 {
			step = f.DefaultStep
		}
		slog.InfoContext(ctx, "Level table loaded from file", "path", path, "levels", len(f.Levels))
		return levels.NewStatic(f.Levels, step)
	}

	stored, err := levels.NewGorm(&levels.GormConfig{DB: db, DefaultStep: step})
	if err != nil {
		return nil, err
	}
	return levels.Snapshot(ctx, stored, step)
}

func (a *app) Close() {
	if err := a.redis.Close(); err != nil {
		slog.Warn("failed to close redis", "error", err)
	}
	if err := database.Close(a.db); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

// withApp loads config, wires the app and hands it to fn
func withApp(ctx context.Context, fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
