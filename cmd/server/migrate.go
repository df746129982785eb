package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/database"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/repositories/levels"
)

var levelsFile string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed the level table",
	Long: `Migrate the database schema, then upsert the level requirement table from a
YAML file, or from the configured default step for every level up to the cap.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&levelsFile, "levels", "", "YAML level table (overrides game.levels.file)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	reqs, err := levelTable(cfg)
	if err != nil {
		return err
	}
	if err := levels.Seed(ctx, db, reqs); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Migration finished", "levels_seeded", len(reqs))
	return nil
}

func levelTable(cfg *config.Config) ([]*entities.LevelRequirement, error) {
	path := levelsFile
	if path == "" {
		path = cfg.Game.Levels.File
	}
	if path != "" {
		f, err := levels.LoadFile(path)
		if err != nil {
			return nil, err
		}
		// validates duplicates and row values before anything is written
		if _, err := levels.NewStatic(f.Levels, f.DefaultStep); err != nil {
			return nil, err
		}
		return f.Levels, nil
	}

	reqs := make([]*entities.LevelRequirement, 0, cfg.Game.Character.MaxLevel)
	for level := 1; level <= cfg.Game.Character.MaxLevel; level++ {
		reqs = append(reqs, levels.DefaultRequirement(level, cfg.Game.Levels.DefaultStep))
	}
	return reqs, nil
}
