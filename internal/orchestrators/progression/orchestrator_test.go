package progression_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/affection"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/progression"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	"github.com/gamewaifu/waifu-api/internal/pkg/idgen"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
	"github.com/gamewaifu/waifu-api/internal/repositories/levels"
	levelsmock "github.com/gamewaifu/waifu-api/internal/repositories/levels/mock"
	"github.com/gamewaifu/waifu-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	db      *gorm.DB
	cleanup func()
	clock   *clock.Fixed
	cfg     *config.Config
	repo    character.Repository
	levels  levels.Repository
	svc     progression.Service
	ctx     context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.db, s.cleanup = testutils.CreateTestDB(s.T())
	s.clock = clock.NewFixed(time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC))
	s.cfg = config.Default()
	s.ctx = context.Background()

	repo, err := character.NewGorm(&character.GormConfig{DB: s.db, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo

	s.levels, err = levels.NewStatic(nil, 500)
	s.Require().NoError(err)

	s.svc = s.newService(s.levels)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *OrchestratorTestSuite) newService(levelRepo levels.Repository) progression.Service {
	svc, err := progression.NewOrchestrator(&progression.Config{
		CharacterRepo: s.repo,
		LevelRepo:     levelRepo,
		IDGenerator:   idgen.NewSequential("chr"),
		Clock:         s.clock,
		Rules:         s.cfg.Game.Character,
	})
	s.Require().NoError(err)
	return svc
}

func (s *OrchestratorTestSuite) insert(chars ...*entities.Character) {
	for _, c := range chars {
		s.Require().NoError(s.db.Create(c).Error)
	}
}

func (s *OrchestratorTestSuite) reload(id string) *entities.Character {
	out, err := s.repo.Get(s.ctx, character.GetInput{ID: id})
	s.Require().NoError(err)
	return out.Character
}

func (s *OrchestratorTestSuite) TestClicksThenLevelUp() {
	s.insert(testutils.NewCharacter("c1", "u1").Combat(10, 4, 1).Health(60, 140).Build())

	clicks, err := affection.NewOrchestrator(&affection.Config{
		CharacterRepo: s.repo,
		IDGenerator:   idgen.NewSequential("clk"),
		Clock:         s.clock,
		Rules:         s.cfg.Game.Clicks,
	})
	s.Require().NoError(err)

	gained, err := clicks.RecordClickSession(s.ctx, &affection.RecordClickSessionInput{
		OwnerID:     "u1",
		CharacterID: "c1",
		ClickCount:  1000,
	})
	s.Require().NoError(err)
	s.Require().Equal(int64(1000), gained.NewLove)

	out, err := s.svc.LevelUp(s.ctx, &progression.LevelUpInput{CharacterID: "c1", OwnerID: "u1"})
	s.Require().NoError(err)
	s.Assert().Equal(2, out.NewLevel)
	s.Assert().Equal(int64(500), out.LoveSpent)
	s.Assert().Equal(int64(500), out.RemainingLove)

	c := s.reload("c1")
	s.Assert().Equal(2, c.Level)
	s.Assert().Equal(int64(500), c.CurrentLove)
}

func (s *OrchestratorTestSuite) TestLevelUpRestoresToNewMaxima() {
	s.insert(testutils.NewCharacter("c1", "u1").Combat(10, 4, 1).Health(12, 140).Magic(3, 65).Love(700).StatPoints(2).Build())

	out, err := s.svc.LevelUp(s.ctx, &progression.LevelUpInput{CharacterID: "c1"})
	s.Require().NoError(err)
	// 100 + 2*10 + 4*5 and 50 + 2*5 + 1*10
	s.Assert().Equal(140, out.NewMaxHealth)
	s.Assert().Equal(70, out.NewMaxMagic)
	s.Assert().Equal(12, out.StatPoints)

	c := s.reload("c1")
	s.Assert().Equal(140, c.CurrentHealth)
	s.Assert().Equal(70, c.CurrentMagic)
	s.Assert().Equal(int64(200), c.CurrentLove)
}

func (s *OrchestratorTestSuite) TestLevelUpRejections() {
	s.insert(
		testutils.NewCharacter("poor", "u1").Love(499).Build(),
		testutils.NewCharacter("capped", "u1").Level(100).Love(1_000_000).Build(),
		testutils.NewCharacter("lost", "u1").Love(1_000).Lost().Build(),
	)

	testCases := []struct {
		name    string
		id      string
		message string
		check   func(error) bool
	}{
		{name: "insufficient affection", id: "poor", message: "FAILED_PRECONDITION: insufficient affection", check: errors.IsInvalidState},
		{name: "max level", id: "capped", message: "FAILED_PRECONDITION: max level reached", check: errors.IsInvalidState},
		{name: "lost", id: "lost", message: "FAILED_PRECONDITION: character is lost", check: errors.IsInvalidState},
		{name: "missing", id: "ghost", message: "NOT_FOUND: character ghost not found", check: errors.IsNotFound},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.svc.LevelUp(s.ctx, &progression.LevelUpInput{CharacterID: tc.id})
			s.Require().Error(err)
			s.Assert().True(tc.check(err))
			s.Assert().Equal(tc.message, err.Error())
		})
	}

	s.Assert().Equal(1, s.reload("poor").Level)
	s.Assert().Equal(int64(499), s.reload("poor").CurrentLove)
}

func (s *OrchestratorTestSuite) TestLevelUpWrongOwner() {
	s.insert(testutils.NewCharacter("c1", "u1").Love(500).Build())

	_, err := s.svc.LevelUp(s.ctx, &progression.LevelUpInput{CharacterID: "c1", OwnerID: "u2"})
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Equal(1, s.reload("c1").Level)
}

func (s *OrchestratorTestSuite) TestLevelUpUsesLevelTable() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	mockLevels := levelsmock.NewMockRepository(ctrl)
	mockLevels.EXPECT().
		Get(gomock.Any(), levels.GetInput{Level: 3}).
		Return(&levels.GetOutput{Requirement: &entities.LevelRequirement{Level: 3, LoveRequired: 1200}}, nil)

	s.insert(testutils.NewCharacter("c1", "u1").Level(3).Love(1250).Build())

	out, err := s.newService(mockLevels).LevelUp(s.ctx, &progression.LevelUpInput{CharacterID: "c1"})
	s.Require().NoError(err)
	s.Assert().Equal(int64(50), out.RemainingLove)
}

func (s *OrchestratorTestSuite) TestAllocateStatPoints() {
	s.insert(testutils.NewCharacter("c1", "u1").Combat(10, 4, 2).Health(50, 140).StatPoints(10).Build())

	out, err := s.svc.AllocateStatPoints(s.ctx, &progression.AllocateStatPointsInput{
		CharacterID: "c1",
		OwnerID:     "u1",
		Points:      map[string]int{"attack": 3, "defense": 2, "magic": 0},
	})
	s.Require().NoError(err)
	s.Assert().Equal(13, out.Character.Attack)
	s.Assert().Equal(6, out.Character.Defense)
	s.Assert().Equal(5, out.Character.StatPoints)

	c := s.reload("c1")
	// 100 + 1*10 + 6*5
	s.Assert().Equal(140, c.MaxHealth)
	s.Assert().Equal(50, c.CurrentHealth)
	s.Assert().Equal(5, c.StatPoints)
}

func (s *OrchestratorTestSuite) TestAllocateWithoutVitalStatsKeepsMaxima() {
	s.insert(testutils.NewCharacter("c1", "u1").Health(999, 999).StatPoints(4).Build())

	_, err := s.svc.AllocateStatPoints(s.ctx, &progression.AllocateStatPointsInput{
		CharacterID: "c1",
		Points:      map[string]int{"speed": 2, "CRIT_PROBABILITY": 2},
	})
	s.Require().NoError(err)

	c := s.reload("c1")
	s.Assert().Equal(999, c.MaxHealth)
	s.Assert().Equal(3, c.Speed)
	s.Assert().Equal(3, c.CritProbability)
	s.Assert().Zero(c.StatPoints)
}

func (s *OrchestratorTestSuite) TestAllocateMagicRaisesMaxMagic() {
	s.insert(testutils.NewCharacter("c1", "u1").StatPoints(1).Build())

	_, err := s.svc.AllocateStatPoints(s.ctx, &progression.AllocateStatPointsInput{
		CharacterID: "c1",
		Points:      map[string]int{"magic": 1},
	})
	s.Require().NoError(err)
	// 50 + 1*5 + 2*10
	s.Assert().Equal(75, s.reload("c1").MaxMagic)
}

func (s *OrchestratorTestSuite) TestAllocateRejectionsApplyNothing() {
	s.insert(
		testutils.NewCharacter("c1", "u1").StatPoints(5).Build(),
		testutils.NewCharacter("lost", "u1").StatPoints(5).Lost().Build(),
	)

	testCases := []struct {
		name   string
		id     string
		points map[string]int
		check  func(error) bool
	}{
		{name: "unknown stat", id: "c1", points: map[string]int{"attack": 1, "charisma": 1}, check: errors.IsInvalidArgument},
		{name: "negative value", id: "c1", points: map[string]int{"attack": 3, "speed": -1}, check: errors.IsInvalidArgument},
		{name: "zero total", id: "c1", points: map[string]int{"attack": 0}, check: errors.IsInvalidArgument},
		{name: "empty", id: "c1", points: nil, check: errors.IsInvalidArgument},
		{name: "more than unspent", id: "c1", points: map[string]int{"attack": 4, "defense": 2}, check: errors.IsInvalidState},
		{name: "sum overflows", id: "c1", points: map[string]int{"attack": math.MaxInt, "speed": 1}, check: errors.IsInvalidArgument},
		{name: "single value beyond budget", id: "c1", points: map[string]int{"attack": math.MaxInt}, check: errors.IsInvalidState},
		{name: "lost", id: "lost", points: map[string]int{"attack": 1}, check: errors.IsInvalidState},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.svc.AllocateStatPoints(s.ctx, &progression.AllocateStatPointsInput{CharacterID: tc.id, Points: tc.points})
			s.Require().Error(err)
			s.Assert().True(tc.check(err), err.Error())
		})
	}

	c := s.reload("c1")
	s.Assert().Equal(5, c.StatPoints)
	s.Assert().Equal(1, c.Attack)
	s.Assert().Equal(1, c.Speed)
}

func (s *OrchestratorTestSuite) TestBindCharacter() {
	first, err := s.svc.BindCharacter(s.ctx, &progression.BindCharacterInput{
		OwnerID:    "u1",
		TemplateID: "tpl_sakura",
		Rarity:     entities.RarityGolden,
	})
	s.Require().NoError(err)

	c := first.Character
	s.Assert().Equal("chr_1", c.ID)
	s.Assert().Equal(1, c.Level)
	s.Assert().Equal(5, c.Attack)
	s.Assert().Equal(5, c.Magic)
	// 100 + 10 + 5*5 and 50 + 5 + 5*10
	s.Assert().Equal(135, c.MaxHealth)
	s.Assert().Equal(135, c.CurrentHealth)
	s.Assert().Equal(105, c.MaxMagic)
	s.Assert().True(c.IsActive)

	second, err := s.svc.BindCharacter(s.ctx, &progression.BindCharacterInput{
		OwnerID:    "u1",
		TemplateID: "tpl_hana",
		Rarity:     entities.RarityBlue,
	})
	s.Require().NoError(err)

	s.Assert().False(s.reload(first.Character.ID).IsActive)
	active, err := s.svc.GetActiveCharacter(s.ctx, &progression.GetActiveCharacterInput{OwnerID: "u1"})
	s.Require().NoError(err)
	s.Assert().Equal(second.Character.ID, active.Character.ID)

	_, err = s.svc.BindCharacter(s.ctx, &progression.BindCharacterInput{OwnerID: "u1", TemplateID: "t", Rarity: "silver"})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSetActive() {
	s.insert(
		testutils.NewCharacter("c1", "u1").Active().Build(),
		testutils.NewCharacter("c2", "u1").Build(),
		testutils.NewCharacter("c3", "u1").Lost().Build(),
	)

	_, err := s.svc.SetActive(s.ctx, &progression.SetActiveInput{OwnerID: "u1", CharacterID: "c2"})
	s.Require().NoError(err)
	s.Assert().False(s.reload("c1").IsActive)
	s.Assert().True(s.reload("c2").IsActive)

	_, err = s.svc.SetActive(s.ctx, &progression.SetActiveInput{OwnerID: "u1", CharacterID: "c3"})
	s.Assert().True(errors.IsInvalidState(err))
	s.Assert().True(s.reload("c2").IsActive)

	_, err = s.svc.SetActive(s.ctx, &progression.SetActiveInput{OwnerID: "u2", CharacterID: "c1"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestReads() {
	s.insert(
		testutils.NewCharacter("c1", "u1").Build(),
		testutils.NewCharacter("c2", "u1").Lost().Build(),
	)

	got, err := s.svc.GetCharacter(s.ctx, &progression.GetCharacterInput{CharacterID: "c1", OwnerID: "u1"})
	s.Require().NoError(err)
	s.Assert().Equal("c1", got.Character.ID)

	_, err = s.svc.GetCharacter(s.ctx, &progression.GetCharacterInput{CharacterID: "c1", OwnerID: "u2"})
	s.Assert().True(errors.IsNotFound(err))

	list, err := s.svc.ListCharacters(s.ctx, &progression.ListCharactersInput{OwnerID: "u1"})
	s.Require().NoError(err)
	s.Assert().Len(list.Characters, 1)

	list, err = s.svc.ListCharacters(s.ctx, &progression.ListCharactersInput{OwnerID: "u1", IncludeLost: true})
	s.Require().NoError(err)
	s.Assert().Len(list.Characters, 2)

	_, err = s.svc.GetActiveCharacter(s.ctx, &progression.GetActiveCharacterInput{OwnerID: "u1"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestFormulas() {
	rules := s.cfg.Game.Character
	s.Assert().Equal(115, progression.MaxHealth(rules, 1, 1))
	s.Assert().Equal(1100+5*40, progression.MaxHealth(rules, 100, 40))
	s.Assert().Equal(65, progression.MaxMagic(rules, 1, 1))
	s.Assert().Equal(550+10*7, progression.MaxMagic(rules, 100, 7))
}
