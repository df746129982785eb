package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) writeConfig(body string) string {
	path := filepath.Join(s.dir, "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaultsMatchGameBalance() {
	cfg := config.Default()

	s.Assert().Equal(100, cfg.Game.Character.MaxLevel)
	s.Assert().Equal(10, cfg.Game.Character.StatPointsPerLevel)
	s.Assert().Equal(map[string]int{"blue": 1, "purple": 3, "golden": 5}, cfg.Game.Character.BaseStats)
	s.Assert().Equal(10000, cfg.Game.Clicks.MaxPerSession)
	s.Assert().InDelta(0.1, cfg.Game.Clicks.ResentfulMultiplier, 1e-9)
	s.Assert().Equal(10, cfg.Game.Battle.MaxTurns)
	s.Assert().False(cfg.Game.Battle.MagicDefenseTurnScoped)
	s.Assert().Equal(24*time.Hour, cfg.Game.Resentment.Window)
	s.Assert().Equal(5, cfg.Game.Resentment.RecoveryLevels)
	s.Assert().Equal("*/5 * * * *", cfg.Jobs.MagicSchedule)
}

func (s *ConfigTestSuite) TestLoadFileAndEnvOverride() {
	path := s.writeConfig(`
database:
  driver: sqlite
  dsn: file::memory:
game:
  clicks:
    love_per_click: 2
  battle:
    magic_defense_turn_scoped: true
`)
	s.T().Setenv("WAIFU_GAME_CLICKS_MAX_PER_SESSION", "500")
	s.T().Setenv("WAIFU_GAME_RESENTMENT_WINDOW", "12h")

	cfg, err := config.Load(path)
	s.Require().NoError(err)

	s.Assert().Equal("sqlite", cfg.Database.Driver)
	s.Assert().Equal(2, cfg.Game.Clicks.LovePerClick)
	s.Assert().Equal(500, cfg.Game.Clicks.MaxPerSession)
	s.Assert().True(cfg.Game.Battle.MagicDefenseTurnScoped)
	s.Assert().Equal(12*time.Hour, cfg.Game.Resentment.Window)
	s.Assert().Equal(100, cfg.Game.Character.MaxLevel)
}

func (s *ConfigTestSuite) TestLoadRejectsInvalidValues() {
	path := s.writeConfig(`
database:
  driver: mysql
  dsn: x
game:
  clicks:
    resentful_multiplier: 2
`)

	_, err := config.Load(path)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "database.driver")
	s.Assert().Contains(err.Error(), "game.clicks.resentful_multiplier")
}

func (s *ConfigTestSuite) TestLoadMissingExplicitFile() {
	_, err := config.Load(filepath.Join(s.dir, "nope.yaml"))
	s.Assert().Error(err)
}
