// Package config loads waifu-api configuration from config.yaml, a .env file
// and WAIFU_-prefixed environment variables, in increasing precedence.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/gamewaifu/waifu-api/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g. WAIFU_DATABASE_DSN
const EnvPrefix = "WAIFU"

// Config mirrors the structure of config.yaml
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
	Game      GameConfig      `mapstructure:"game"`
}

// ServerConfig holds the health/gRPC listener settings
type ServerConfig struct {
	GRPCPort        int           `mapstructure:"grpc_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects the relational store
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres | sqlite
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogLevel     string `mapstructure:"log_level"` // silent | error | warn | info
}

// RedisConfig holds the battle session store settings
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TelemetryConfig enables OTLP tracing when OTelEndpoint is set
type TelemetryConfig struct {
	OTelEndpoint string `mapstructure:"otel_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
}

// JobsConfig holds cron expressions for the scheduled jobs
type JobsConfig struct {
	HealthSchedule     string        `mapstructure:"health_schedule"`
	MagicSchedule      string        `mapstructure:"magic_schedule"`
	ResentmentSchedule string        `mapstructure:"resentment_schedule"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// GameConfig groups the balance rules injected into each engine
type GameConfig struct {
	Character    CharacterRules    `mapstructure:"character"`
	Clicks       ClickRules        `mapstructure:"clicks"`
	Battle       BattleRules       `mapstructure:"battle"`
	Resentment   ResentmentRules   `mapstructure:"resentment"`
	Regeneration RegenerationRules `mapstructure:"regeneration"`
	Levels       LevelRules        `mapstructure:"levels"`
}

// CharacterRules are the progression formulas
type CharacterRules struct {
	MaxLevel           int            `mapstructure:"max_level"`
	BaseHealth         int            `mapstructure:"base_health"`
	HealthPerLevel     int            `mapstructure:"health_per_level"`
	HealthPerDefense   int            `mapstructure:"health_per_defense"`
	BaseMagic          int            `mapstructure:"base_magic"`
	MagicPerLevel      int            `mapstructure:"magic_per_level"`
	MagicPerStat       int            `mapstructure:"magic_per_stat"`
	StatPointsPerLevel int            `mapstructure:"stat_points_per_level"`
	HealthRegenRate    int            `mapstructure:"health_regen_rate"`
	BaseStats          map[string]int `mapstructure:"base_stats"` // keyed by rarity
}

// ClickRules govern affection accrual
type ClickRules struct {
	LovePerClick        int           `mapstructure:"love_per_click"`
	MaxPerSession       int           `mapstructure:"max_per_session"`
	ResentfulMultiplier float64       `mapstructure:"resentful_multiplier"`
	DedupeWindow        time.Duration `mapstructure:"dedupe_window"` // 0 disables token dedupe
}

// BattleRules govern battles and their aftermath
type BattleRules struct {
	MaxTurns               int           `mapstructure:"max_turns"`
	LevelRange             int           `mapstructure:"level_range"`
	DefeatEntersResentment bool          `mapstructure:"defeat_enters_resentment"`
	DefeatLovePenalty      int64         `mapstructure:"defeat_love_penalty"`
	MagicDefenseTurnScoped bool          `mapstructure:"magic_defense_turn_scoped"`
	SessionTTL             time.Duration `mapstructure:"session_ttl"`
}

// ResentmentRules govern the resentful window
type ResentmentRules struct {
	Window         time.Duration `mapstructure:"window"`
	RecoveryLevels int           `mapstructure:"recovery_levels"`
}

// RegenerationRules govern the magic regeneration job. Health regenerates at
// each character's own health_regen_rate.
type RegenerationRules struct {
	MagicPercent int `mapstructure:"magic_percent"`
	MagicMinimum int `mapstructure:"magic_minimum"`
	BatchSize    int `mapstructure:"batch_size"`
}

// LevelRules configure the level requirement table
type LevelRules struct {
	File        string `mapstructure:"file"`
	DefaultStep int64  `mapstructure:"default_step"`
}

var defaults = map[string]interface{}{
	"server.grpc_port":        50051,
	"server.shutdown_timeout": 10 * time.Second,

	"database.driver":         "postgres",
	"database.dsn":            "",
	"database.max_open_conns": 20,
	"database.max_idle_conns": 5,
	"database.log_level":      "warn",

	"redis.address":  "localhost:6379",
	"redis.password": "",
	"redis.db":       0,

	"telemetry.otel_endpoint": "",
	"telemetry.service_name":  "waifu-api",

	"jobs.health_schedule":     "*/5 * * * *",
	"jobs.magic_schedule":      "*/5 * * * *",
	"jobs.resentment_schedule": "*/5 * * * *",
	"jobs.timeout":             time.Minute,

	"game.character.max_level":             100,
	"game.character.base_health":           100,
	"game.character.health_per_level":      10,
	"game.character.health_per_defense":    5,
	"game.character.base_magic":            50,
	"game.character.magic_per_level":       5,
	"game.character.magic_per_stat":        10,
	"game.character.stat_points_per_level": 10,
	"game.character.health_regen_rate":     1,
	"game.character.base_stats":            map[string]int{"blue": 1, "purple": 3, "golden": 5},

	"game.clicks.love_per_click":       1,
	"game.clicks.max_per_session":      10000,
	"game.clicks.resentful_multiplier": 0.1,
	"game.clicks.dedupe_window":        time.Duration(0),

	"game.battle.max_turns":                 10,
	"game.battle.level_range":               5,
	"game.battle.defeat_enters_resentment":  true,
	"game.battle.defeat_love_penalty":       200,
	"game.battle.magic_defense_turn_scoped": false,
	"game.battle.session_ttl":               15 * time.Minute,

	"game.resentment.window":          24 * time.Hour,
	"game.resentment.recovery_levels": 5,

	"game.regeneration.magic_percent": 5,
	"game.regeneration.magic_minimum": 1,
	"game.regeneration.batch_size":    200,

	"game.levels.file":         "",
	"game.levels.default_step": 500,
}

// Load reads configuration. An explicit path must exist; otherwise config.yaml
// is searched in ./config and the working directory and may be absent.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.Wrap(err, "failed to load .env")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, apperrors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration without touching the
// filesystem or environment.
func Default() *Config {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	// defaults are static and always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks the values the engines cannot run without
func (c *Config) Validate() error {
	vb := apperrors.NewValidationBuilder()

	apperrors.ValidateEnum("database.driver", c.Database.Driver, []string{"postgres", "sqlite"}, vb)
	apperrors.ValidateRequired("database.dsn", c.Database.DSN, vb)

	ch := c.Game.Character
	apperrors.ValidatePositive("game.character.max_level", ch.MaxLevel, vb)
	apperrors.ValidateNonNegative("game.character.stat_points_per_level", ch.StatPointsPerLevel, vb)
	for _, rarity := range []string{"blue", "purple", "golden"} {
		if _, ok := ch.BaseStats[rarity]; !ok {
			vb.Fieldf("game.character.base_stats", "missing rarity %s", rarity)
		}
	}

	apperrors.ValidatePositive("game.clicks.love_per_click", c.Game.Clicks.LovePerClick, vb)
	apperrors.ValidatePositive("game.clicks.max_per_session", c.Game.Clicks.MaxPerSession, vb)
	if m := c.Game.Clicks.ResentfulMultiplier; m < 0 || m > 1 {
		vb.Field("game.clicks.resentful_multiplier", "must be between 0 and 1")
	}

	apperrors.ValidatePositive("game.battle.max_turns", c.Game.Battle.MaxTurns, vb)
	apperrors.ValidateNonNegative("game.battle.level_range", c.Game.Battle.LevelRange, vb)

	if c.Game.Resentment.Window <= 0 {
		vb.Field("game.resentment.window", "must be positive")
	}
	apperrors.ValidatePositive("game.resentment.recovery_levels", c.Game.Resentment.RecoveryLevels, vb)
	apperrors.ValidateRange("game.regeneration.magic_percent", c.Game.Regeneration.MagicPercent, 0, 100, vb)

	return vb.Build()
}
