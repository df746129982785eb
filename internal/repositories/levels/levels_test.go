package levels_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/repositories/levels"
	"github.com/gamewaifu/waifu-api/internal/testutils"
)

type LevelsTestSuite struct {
	suite.Suite
	db      *gorm.DB
	cleanup func()
	ctx     context.Context
}

func TestLevelsSuite(t *testing.T) {
	suite.Run(t, new(LevelsTestSuite))
}

func (s *LevelsTestSuite) SetupTest() {
	s.db, s.cleanup = testutils.CreateTestDB(s.T())
	s.ctx = context.Background()
}

func (s *LevelsTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *LevelsTestSuite) TestGormSeedAndLookup() {
	s.Require().NoError(levels.Seed(s.ctx, s.db, []*entities.LevelRequirement{
		{Level: 1, LoveRequired: 500},
		{Level: 2, LoveRequired: 900},
	}))
	// reseeding updates in place
	s.Require().NoError(levels.Seed(s.ctx, s.db, []*entities.LevelRequirement{{Level: 2, LoveRequired: 1000}}))

	repo, err := levels.NewGorm(&levels.GormConfig{DB: s.db, DefaultStep: 500})
	s.Require().NoError(err)

	out, err := repo.Get(s.ctx, levels.GetInput{Level: 2})
	s.Require().NoError(err)
	s.Assert().Equal(int64(1000), out.Requirement.LoveRequired)

	out, err = repo.Get(s.ctx, levels.GetInput{Level: 7})
	s.Require().NoError(err)
	s.Assert().Equal(int64(3500), out.Requirement.LoveRequired)

	list, err := repo.List(s.ctx, levels.ListInput{})
	s.Require().NoError(err)
	s.Assert().Len(list.Requirements, 2)

	_, err = repo.Get(s.ctx, levels.GetInput{Level: 0})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *LevelsTestSuite) TestGormWithoutDefaultStep() {
	repo, err := levels.NewGorm(&levels.GormConfig{DB: s.db})
	s.Require().NoError(err)

	_, err = repo.Get(s.ctx, levels.GetInput{Level: 3})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *LevelsTestSuite) TestStaticFromYAML() {
	path := filepath.Join(s.T().TempDir(), "levels.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
default_step: 0
levels:
  - level: 1
    love_required: 500
  - level: 2
    love_required: 1200
`), 0o600))

	f, err := levels.LoadFile(path)
	s.Require().NoError(err)

	repo, err := levels.NewStatic(f.Levels, f.DefaultStep)
	s.Require().NoError(err)

	out, err := repo.Get(s.ctx, levels.GetInput{Level: 2})
	s.Require().NoError(err)
	s.Assert().Equal(int64(1200), out.Requirement.LoveRequired)

	_, err = repo.Get(s.ctx, levels.GetInput{Level: 3})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *LevelsTestSuite) TestStaticRejectsDuplicates() {
	_, err := levels.NewStatic([]*entities.LevelRequirement{{Level: 1}, {Level: 1}}, 0)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *LevelsTestSuite) TestSnapshot() {
	s.Require().NoError(levels.Seed(s.ctx, s.db, []*entities.LevelRequirement{{Level: 1, LoveRequired: 300}}))
	src, err := levels.NewGorm(&levels.GormConfig{DB: s.db})
	s.Require().NoError(err)

	snap, err := levels.Snapshot(s.ctx, src, 500)
	s.Require().NoError(err)

	// later writes do not leak into the snapshot
	s.Require().NoError(levels.Seed(s.ctx, s.db, []*entities.LevelRequirement{{Level: 1, LoveRequired: 999}}))

	out, err := snap.Get(s.ctx, levels.GetInput{Level: 1})
	s.Require().NoError(err)
	s.Assert().Equal(int64(300), out.Requirement.LoveRequired)

	out, err = snap.Get(s.ctx, levels.GetInput{Level: 2})
	s.Require().NoError(err)
	s.Assert().Equal(int64(1000), out.Requirement.LoveRequired)
}
