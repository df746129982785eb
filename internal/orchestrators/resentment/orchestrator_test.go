package resentment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/gamewaifu/waifu-api/internal/config"
	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/orchestrators/resentment"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
	charactermock "github.com/gamewaifu/waifu-api/internal/repositories/character/mock"
	"github.com/gamewaifu/waifu-api/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	db      *gorm.DB
	cleanup func()
	clock   *clock.Fixed
	cfg     *config.Config
	repo    character.Repository
	svc     resentment.Service
	ctx     context.Context
	now     time.Time
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.db, s.cleanup = testutils.CreateTestDB(s.T())
	s.now = time.Date(2026, 5, 10, 18, 30, 0, 0, time.UTC)
	s.clock = clock.NewFixed(s.now)
	s.cfg = config.Default()
	s.ctx = context.Background()

	repo, err := character.NewGorm(&character.GormConfig{DB: s.db, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
	s.svc = s.newService(s.cfg.Game.Battle)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *OrchestratorTestSuite) newService(defeat config.BattleRules) resentment.Service {
	svc, err := resentment.NewOrchestrator(&resentment.Config{
		CharacterRepo: s.repo,
		Clock:         s.clock,
		Rules:         s.cfg.Game.Resentment,
		Defeat:        defeat,
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

func (s *OrchestratorTestSuite) TestSweep() {
	s.insert(
		// exactly 24h, not recovered
		testutils.NewCharacter("expired", "u1").Level(3).Resentful(3, s.now.Add(-24*time.Hour)).Active().Build(),
		// recovered and expired at once
		testutils.NewCharacter("recovered", "u2").Level(8).Resentful(3, s.now.Add(-48*time.Hour)).Build(),
		// still inside the window
		testutils.NewCharacter("waiting", "u3").Level(4).Resentful(3, s.now.Add(-time.Hour)).Build(),
		testutils.NewCharacter("normal", "u4").Build(),
	)

	out, err := s.svc.Sweep(s.ctx, &resentment.SweepInput{})
	s.Require().NoError(err)
	s.Assert().Equal(int64(2), out.Transitioned)

	expired := s.reload("expired")
	s.Assert().True(expired.IsLost)
	s.Assert().False(expired.IsResentful)
	s.Assert().False(expired.IsActive)
	s.Assert().Nil(expired.ResentmentStart)

	recovered := s.reload("recovered")
	s.Assert().False(recovered.IsLost)
	s.Assert().False(recovered.IsResentful)
	s.Assert().Nil(recovered.ResentmentBaseLevel)
	s.Assert().Nil(recovered.ResentmentStart)

	waiting := s.reload("waiting")
	s.Assert().True(waiting.IsResentful)
	s.Assert().False(waiting.IsLost)

	s.Assert().False(s.reload("normal").IsResentful)

	// a second sweep has nothing to do
	out, err = s.svc.Sweep(s.ctx, &resentment.SweepInput{})
	s.Require().NoError(err)
	s.Assert().Zero(out.Transitioned)
}

func (s *OrchestratorTestSuite) TestSweepJustBeforeWindowEnds() {
	s.insert(testutils.NewCharacter("c1", "u1").Resentful(1, s.now.Add(-24*time.Hour+time.Second)).Build())

	out, err := s.svc.Sweep(s.ctx, &resentment.SweepInput{})
	s.Require().NoError(err)
	s.Assert().Zero(out.Transitioned)
	s.Assert().True(s.reload("c1").IsResentful)
}

func (s *OrchestratorTestSuite) TestEnterResentful() {
	s.insert(testutils.NewCharacter("c1", "u1").Level(7).Build())

	out, err := s.svc.EnterResentful(s.ctx, &resentment.EnterResentfulInput{CharacterID: "c1"})
	s.Require().NoError(err)
	s.Assert().True(out.Entered)

	c := s.reload("c1")
	s.Require().True(c.IsResentful)
	s.Assert().Equal(7, *c.ResentmentBaseLevel)
	s.Assert().True(s.now.Equal(*c.ResentmentStart))

	// re-entry keeps the original window
	s.clock.Advance(3 * time.Hour)
	out, err = s.svc.EnterResentful(s.ctx, &resentment.EnterResentfulInput{CharacterID: "c1"})
	s.Require().NoError(err)
	s.Assert().False(out.Entered)
	s.Assert().True(s.now.Equal(*s.reload("c1").ResentmentStart))
}

func (s *OrchestratorTestSuite) TestEnterResentfulRejections() {
	s.insert(testutils.NewCharacter("lost", "u1").Lost().Build())

	_, err := s.svc.EnterResentful(s.ctx, &resentment.EnterResentfulInput{CharacterID: "lost"})
	s.Assert().True(errors.IsInvalidState(err))

	_, err = s.svc.EnterResentful(s.ctx, &resentment.EnterResentfulInput{CharacterID: "ghost"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.svc.EnterResentful(s.ctx, &resentment.EnterResentfulInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) applyDefeat(svc resentment.Service, id string) *resentment.DefeatOutcome {
	var outcome *resentment.DefeatOutcome
	err := s.repo.WithExclusiveAccess(s.ctx, []string{id},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			var err error
			outcome, err = svc.ApplyDefeat(ctx, tx, locked[0])
			return err
		})
	s.Require().NoError(err)
	return outcome
}

func (s *OrchestratorTestSuite) TestApplyDefeat() {
	s.insert(
		testutils.NewCharacter("rich", "u1").Level(4).Love(350).Build(),
		testutils.NewCharacter("poor", "u1").Love(120).Build(),
	)

	outcome := s.applyDefeat(s.svc, "rich")
	s.Assert().Equal(int64(200), outcome.LoveLost)
	s.Assert().True(outcome.EnteredResentful)

	rich := s.reload("rich")
	s.Assert().Equal(int64(150), rich.CurrentLove)
	s.Assert().True(rich.IsResentful)
	s.Assert().Equal(4, *rich.ResentmentBaseLevel)

	outcome = s.applyDefeat(s.svc, "poor")
	s.Assert().Equal(int64(120), outcome.LoveLost)
	s.Assert().Zero(s.reload("poor").CurrentLove)
}

func (s *OrchestratorTestSuite) TestApplyDefeatWithoutResentment() {
	rules := s.cfg.Game.Battle
	rules.DefeatEntersResentment = false
	svc := s.newService(rules)

	s.insert(testutils.NewCharacter("c1", "u1").Love(500).Build())

	outcome := s.applyDefeat(svc, "c1")
	s.Assert().False(outcome.EnteredResentful)

	c := s.reload("c1")
	s.Assert().Equal(int64(300), c.CurrentLove)
	s.Assert().False(c.IsResentful)
}

func (s *OrchestratorTestSuite) TestSweepStorageFailure() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	mockRepo := charactermock.NewMockRepository(ctrl)
	mockRepo.EXPECT().
		SweepResentment(gomock.Any(), character.SweepResentmentInput{
			Now:            s.now,
			Cutoff:         s.now.Add(-24 * time.Hour),
			RecoveryLevels: 5,
		}).
		Return(nil, errors.Internal("failed to sweep resentment"))

	svc, err := resentment.NewOrchestrator(&resentment.Config{
		CharacterRepo: mockRepo,
		Clock:         s.clock,
		Rules:         s.cfg.Game.Resentment,
		Defeat:        s.cfg.Game.Battle,
	})
	s.Require().NoError(err)

	_, err = svc.Sweep(s.ctx, &resentment.SweepInput{})
	s.Assert().True(errors.IsInternal(err))
}
