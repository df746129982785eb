package levels

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
)

// GormConfig contains configuration for the table-backed repository
type GormConfig struct {
	DB *gorm.DB
	// DefaultStep fills levels missing from the table; 0 makes them NotFound
	DefaultStep int64
}

// Validate validates the GormConfig
func (cfg *GormConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DB == nil {
		return errors.InvalidArgument("db cannot be nil")
	}
	if cfg.DefaultStep < 0 {
		return errors.InvalidArgument("default step cannot be negative")
	}
	return nil
}

type gormRepository struct {
	db   *gorm.DB
	step int64
}

// NewGorm creates a repository reading the level_requirements table
func NewGorm(cfg *GormConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &gormRepository{db: cfg.DB, step: cfg.DefaultStep}, nil
}

func (r *gormRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Level < 1 {
		return nil, errors.InvalidArgumentf("level must be at least 1, got %d", input.Level)
	}

	var req entities.LevelRequirement
	err := r.db.WithContext(ctx).Where("level = ?", input.Level).First(&req).Error
	switch {
	case err == nil:
		return &GetOutput{Requirement: &req}, nil
	case errors.Is(err, gorm.ErrRecordNotFound) && r.step > 0:
		return &GetOutput{Requirement: DefaultRequirement(input.Level, r.step)}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.NotFoundf("no requirement for level %d", input.Level)
	default:
		return nil, errors.Wrap(err, "failed to get level requirement")
	}
}

func (r *gormRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	var reqs []*entities.LevelRequirement
	if err := r.db.WithContext(ctx).Order("level ASC").Find(&reqs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list level requirements")
	}
	return &ListOutput{Requirements: reqs}, nil
}

// Seed upserts requirements into the table
func Seed(ctx context.Context, db *gorm.DB, reqs []*entities.LevelRequirement) error {
	if len(reqs) == 0 {
		return nil
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "level"}},
		DoUpdates: clause.AssignmentColumns([]string{"love_required"}),
	}).Create(&reqs).Error
	if err != nil {
		return errors.Wrap(err, "failed to seed level requirements")
	}
	return nil
}
