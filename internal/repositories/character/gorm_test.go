package character_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/gamewaifu/waifu-api/internal/entities"
	"github.com/gamewaifu/waifu-api/internal/errors"
	"github.com/gamewaifu/waifu-api/internal/pkg/clock"
	"github.com/gamewaifu/waifu-api/internal/repositories/character"
	"github.com/gamewaifu/waifu-api/internal/testutils"
)

type GormRepositoryTestSuite struct {
	suite.Suite
	db      *gorm.DB
	cleanup func()
	clock   *clock.Fixed
	repo    character.Repository
	ctx     context.Context
	now     time.Time
}

func TestGormRepositorySuite(t *testing.T) {
	suite.Run(t, new(GormRepositoryTestSuite))
}

func (s *GormRepositoryTestSuite) SetupTest() {
	s.db, s.cleanup = testutils.CreateTestDB(s.T())
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.clock = clock.NewFixed(s.now)
	s.ctx = context.Background()

	repo, err := character.NewGorm(&character.GormConfig{DB: s.db, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *GormRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *GormRepositoryTestSuite) insert(chars ...*entities.Character) {
	for _, c := range chars {
		s.Require().NoError(s.db.Create(c).Error)
	}
}

func (s *GormRepositoryTestSuite) reload(id string) *entities.Character {
	out, err := s.repo.Get(s.ctx, character.GetInput{ID: id})
	s.Require().NoError(err)
	return out.Character
}

func (s *GormRepositoryTestSuite) TestNewGormRequiresDB() {
	_, err := character.NewGorm(&character.GormConfig{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *GormRepositoryTestSuite) TestCreateActivateKeepsOneActive() {
	s.insert(testutils.NewCharacter("chr_1", "owner_1").Active().Build())

	_, err := s.repo.Create(s.ctx, character.CreateInput{
		Character: testutils.NewCharacter("chr_2", "owner_1").Build(),
		Activate:  true,
	})
	s.Require().NoError(err)

	s.Assert().False(s.reload("chr_1").IsActive)
	s.Assert().True(s.reload("chr_2").IsActive)

	active, err := s.repo.GetActive(s.ctx, character.GetActiveInput{OwnerID: "owner_1"})
	s.Require().NoError(err)
	s.Assert().Equal("chr_2", active.Character.ID)

	_, err = s.repo.Create(s.ctx, character.CreateInput{Character: testutils.NewCharacter("chr_2", "owner_1").Build()})
	s.Assert().True(errors.IsAlreadyExists(err))
}

func (s *GormRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "nope"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.repo.GetActive(s.ctx, character.GetActiveInput{OwnerID: "owner_x"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *GormRepositoryTestSuite) TestWithExclusiveAccessOrdersAndCommits() {
	s.insert(
		testutils.NewCharacter("chr_b", "owner_1").Build(),
		testutils.NewCharacter("chr_a", "owner_2").Build(),
	)

	err := s.repo.WithExclusiveAccess(s.ctx, []string{"chr_b", "chr_a"},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			s.Require().Len(locked, 2)
			s.Assert().Equal("chr_b", locked[0].ID)
			s.Assert().Equal("chr_a", locked[1].ID)

			locked[0].CurrentLove = 42
			return tx.Save(ctx, locked[0])
		})
	s.Require().NoError(err)
	s.Assert().Equal(int64(42), s.reload("chr_b").CurrentLove)
}

func (s *GormRepositoryTestSuite) TestWithExclusiveAccessRollsBack() {
	s.insert(testutils.NewCharacter("chr_1", "owner_1").Build())

	err := s.repo.WithExclusiveAccess(s.ctx, []string{"chr_1"},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			locked[0].CurrentLove = 999
			if err := tx.Save(ctx, locked[0]); err != nil {
				return err
			}
			if err := tx.AppendClickSession(ctx, &entities.ClickSession{
				ID: "cs_1", OwnerID: "owner_1", CharacterID: "chr_1", ClickCount: 1,
			}); err != nil {
				return err
			}
			return errors.InvalidState("insufficient affection")
		})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidState(err))
	s.Assert().Equal("insufficient affection", errors.GetMessage(err))

	s.Assert().Equal(int64(0), s.reload("chr_1").CurrentLove)
	sessions, err := s.repo.ListClickSessions(s.ctx, character.ListClickSessionsInput{CharacterID: "chr_1"})
	s.Require().NoError(err)
	s.Assert().Empty(sessions.Sessions)
}

func (s *GormRepositoryTestSuite) TestWithExclusiveAccessValidation() {
	s.insert(testutils.NewCharacter("chr_1", "owner_1").Build())
	noop := func(context.Context, character.Tx, []*entities.Character) error { return nil }

	s.Assert().True(errors.IsInvalidArgument(s.repo.WithExclusiveAccess(s.ctx, nil, noop)))
	s.Assert().True(errors.IsInvalidArgument(s.repo.WithExclusiveAccess(s.ctx, []string{"chr_1", "chr_1"}, noop)))
	s.Assert().True(errors.IsNotFound(s.repo.WithExclusiveAccess(s.ctx, []string{"chr_1", "chr_2"}, noop)))
}

func (s *GormRepositoryTestSuite) TestSaveKeepsInvariants() {
	s.insert(testutils.NewCharacter("chr_1", "owner_1").Active().Resentful(1, s.now).Build())

	err := s.repo.WithExclusiveAccess(s.ctx, []string{"chr_1"},
		func(ctx context.Context, tx character.Tx, locked []*entities.Character) error {
			c := locked[0]
			c.CurrentHealth = c.MaxHealth + 50
			c.CurrentMagic = -3
			c.IsLost = true
			return tx.Save(ctx, c)
		})
	s.Require().NoError(err)

	c := s.reload("chr_1")
	s.Assert().Equal(c.MaxHealth, c.CurrentHealth)
	s.Assert().Equal(0, c.CurrentMagic)
	s.Assert().True(c.IsLost)
	s.Assert().False(c.IsResentful)
	s.Assert().False(c.IsActive)
	s.Assert().Nil(c.ResentmentBaseLevel)
	s.Assert().Nil(c.ResentmentStart)
}

func (s *GormRepositoryTestSuite) TestSweepResentment() {
	window := 24 * time.Hour
	cutoff := s.now.Add(-window)

	s.insert(
		// window expired exactly, not recovered: lost
		testutils.NewCharacter("chr_expired", "o1").Level(3).Active().Resentful(3, cutoff).Build(),
		// recovered and expired: recovery wins
		testutils.NewCharacter("chr_both", "o2").Level(8).Resentful(3, cutoff.Add(-time.Hour)).Build(),
		// recovered inside window
		testutils.NewCharacter("chr_recovered", "o3").Level(6).Resentful(1, s.now.Add(-time.Hour)).Build(),
		// still inside window and not recovered: untouched
		testutils.NewCharacter("chr_pending", "o4").Level(4).Resentful(1, s.now.Add(-time.Hour)).Build(),
		// normal: untouched
		testutils.NewCharacter("chr_normal", "o5").Level(2).Build(),
	)

	out, err := s.repo.SweepResentment(s.ctx, character.SweepResentmentInput{
		Now:            s.now,
		Cutoff:         cutoff,
		RecoveryLevels: 5,
	})
	s.Require().NoError(err)
	s.Assert().Equal(int64(3), out.Transitioned)

	expired := s.reload("chr_expired")
	s.Assert().True(expired.IsLost)
	s.Assert().False(expired.IsResentful)
	s.Assert().False(expired.IsActive)
	s.Assert().Nil(expired.ResentmentStart)

	for _, id := range []string{"chr_both", "chr_recovered"} {
		c := s.reload(id)
		s.Assert().False(c.IsLost, id)
		s.Assert().False(c.IsResentful, id)
		s.Assert().Nil(c.ResentmentBaseLevel, id)
		s.Assert().Nil(c.ResentmentStart, id)
	}

	pending := s.reload("chr_pending")
	s.Assert().True(pending.IsResentful)
	s.Require().NotNil(pending.ResentmentBaseLevel)
	s.Assert().Equal(1, *pending.ResentmentBaseLevel)

	s.Assert().False(s.reload("chr_normal").IsLost)
}

func (s *GormRepositoryTestSuite) TestRegenerateMagic() {
	s.insert(
		testutils.NewCharacter("chr_low", "o1").Magic(10, 100).Build(),   // +5
		testutils.NewCharacter("chr_tiny", "o2").Magic(0, 10).Build(),    // floor(0.5) -> minimum 1
		testutils.NewCharacter("chr_near", "o3").Magic(98, 100).Build(),  // capped at 100
		testutils.NewCharacter("chr_full", "o4").Magic(100, 100).Build(), // untouched
		testutils.NewCharacter("chr_lost", "o5").Magic(0, 100).Lost().Build(),
	)

	out, err := s.repo.RegenerateMagic(s.ctx, character.RegenerateMagicInput{Percent: 5, Minimum: 1, Now: s.now})
	s.Require().NoError(err)
	s.Assert().Equal(int64(3), out.Updated)

	s.Assert().Equal(15, s.reload("chr_low").CurrentMagic)
	s.Assert().Equal(1, s.reload("chr_tiny").CurrentMagic)
	s.Assert().Equal(100, s.reload("chr_near").CurrentMagic)
	s.Assert().Equal(100, s.reload("chr_full").CurrentMagic)
	s.Assert().Equal(0, s.reload("chr_lost").CurrentMagic)
}

func (s *GormRepositoryTestSuite) TestHealthRegenCandidatesAndRest() {
	s.insert(
		testutils.NewCharacter("chr_1", "o1").Health(50, 100).Build(),
		testutils.NewCharacter("chr_2", "o1").Health(100, 100).Build(),
		testutils.NewCharacter("chr_3", "o2").Health(10, 100).RestedAt(s.now.Add(-time.Hour)).Build(),
		testutils.NewCharacter("chr_4", "o2").Health(10, 100).Lost().Build(),
	)

	page, err := s.repo.ListHealthRegenCandidates(s.ctx, character.ListHealthRegenCandidatesInput{Limit: 1})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"chr_1"}, page.IDs)

	page, err = s.repo.ListHealthRegenCandidates(s.ctx, character.ListHealthRegenCandidatesInput{AfterID: "chr_1", Limit: 10})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"chr_3"}, page.IDs)

	rested, err := s.repo.MarkRested(s.ctx, character.MarkRestedInput{Now: s.now})
	s.Require().NoError(err)
	// chr_1 never rested, chr_2 at full health, lost chr_4 is left alone
	s.Assert().Equal(int64(2), rested.Updated)
	s.Assert().True(s.now.Add(-time.Hour).Equal(*s.reload("chr_3").LastRest))
	s.Assert().Nil(s.reload("chr_4").LastRest)
}

func (s *GormRepositoryTestSuite) TestFindOpponent() {
	s.insert(
		testutils.NewCharacter("chr_mine", "me").Level(10).Build(),
		testutils.NewCharacter("chr_far", "them").Level(20).Build(),
		testutils.NewCharacter("chr_lost", "them").Level(10).Lost().Build(),
		testutils.NewCharacter("chr_ko", "them").Level(10).Health(0, 100).Build(),
		testutils.NewCharacter("chr_ok", "them").Level(13).Build(),
	)

	out, err := s.repo.FindOpponent(s.ctx, character.FindOpponentInput{ExcludeOwnerID: "me", MinLevel: 5, MaxLevel: 15})
	s.Require().NoError(err)
	s.Assert().Equal("chr_ok", out.Character.ID)

	_, err = s.repo.FindOpponent(s.ctx, character.FindOpponentInput{ExcludeOwnerID: "me", MinLevel: 50, MaxLevel: 60})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *GormRepositoryTestSuite) TestListsNewestFirst() {
	s.insert(testutils.NewCharacter("chr_1", "o1").Build(), testutils.NewCharacter("chr_2", "o2").Build())

	err := s.repo.WithExclusiveAccess(s.ctx, []string{"chr_1", "chr_2"},
		func(ctx context.Context, tx character.Tx, _ []*entities.Character) error {
			for i := 1; i <= 3; i++ {
				err := tx.AppendClickSession(ctx, &entities.ClickSession{
					ID:          fmt.Sprintf("cs_%d", i),
					OwnerID:     "o1",
					CharacterID: "chr_1",
					ClickCount:  i,
					LoveGained:  int64(i),
					CreatedAt:   s.now.Add(time.Duration(i) * time.Minute),
				})
				if err != nil {
					return err
				}
			}
			return tx.CreateBattle(ctx, &entities.BattleRecord{
				ID: "bt_1", Mode: entities.BattleModeAuto, AttackerID: "chr_1", DefenderID: "chr_2", Turns: 3,
			})
		})
	s.Require().NoError(err)

	sessions, err := s.repo.ListClickSessions(s.ctx, character.ListClickSessionsInput{CharacterID: "chr_1", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(sessions.Sessions, 2)
	s.Assert().Equal("cs_3", sessions.Sessions[0].ID)
	s.Assert().Equal("cs_2", sessions.Sessions[1].ID)

	battles, err := s.repo.ListBattles(s.ctx, character.ListBattlesInput{CharacterID: "chr_2"})
	s.Require().NoError(err)
	s.Require().Len(battles.Battles, 1)
	s.Assert().Nil(battles.Battles[0].WinnerID)
	s.Assert().True(s.now.Equal(battles.Battles[0].CreatedAt))
}
