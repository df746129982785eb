package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/gamewaifu/waifu-api/internal/engine"
	enginemock "github.com/gamewaifu/waifu-api/internal/engine/mock"
	"github.com/gamewaifu/waifu-api/internal/errors"
)

type EngineTestSuite struct {
	suite.Suite
	a engine.Combatant
	b engine.Combatant
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.a = engine.Combatant{
		ID: "chr_a", Tier: engine.TierLow,
		Health: 100, MaxHealth: 100, Magic: 50, MaxMagic: 50,
		Attack: 20, Defense: 10, Speed: 10,
	}
	s.b = engine.Combatant{
		ID: "chr_b", Tier: engine.TierLow,
		Health: 100, MaxHealth: 100, Magic: 50, MaxMagic: 50,
		Attack: 16, Defense: 8, Speed: 10,
	}
}

func (s *EngineTestSuite) TestBasicAttackTrajectoryIsReproducible() {
	run := func() *engine.Summary {
		e := engine.New(engine.Options{}, engine.NewScripted(0))
		summary, err := e.Simulate(s.a, s.b, engine.BasicAttacks)
		s.Require().NoError(err)
		return summary
	}

	summary := run()

	s.Require().NotNil(summary.WinnerID)
	s.Assert().Equal("chr_a", *summary.WinnerID)
	s.Assert().Equal(7, summary.Turns)
	s.Assert().Len(summary.Log, 13)
	s.Assert().Equal(34, summary.Final[0].Health)
	s.Assert().Equal(0, summary.Final[1].Health)

	// challenger hits for 16, opponent answers for 11
	for i, ev := range summary.Log {
		if i%2 == 0 {
			s.Assert().Equal("chr_a", ev.ActorID)
			s.Assert().Equal(16, ev.Damage)
		} else {
			s.Assert().Equal("chr_b", ev.ActorID)
			s.Assert().Equal(11, ev.Damage)
		}
		s.Assert().Equal(i/2+1, ev.Turn)
		s.Assert().False(ev.WasCritical)
	}

	s.Assert().Equal(summary, run())
}

func (s *EngineTestSuite) TestDamageNeverBelowOne() {
	s.a.Attack = 1
	s.b.Defense = 500

	e := engine.New(engine.Options{}, engine.NewScripted(0))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)

	result, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionDefend)
	s.Require().NoError(err)
	s.Require().Len(result.Events, 1)
	s.Assert().Equal(1, result.Events[0].Damage)
	s.Assert().Equal(99, state.Combatants[1].Health)
}

func (s *EngineTestSuite) TestCriticalHit() {
	s.a.CritChance = 100
	s.a.CritDamage = 50

	e := engine.New(engine.Options{}, engine.NewScripted(0, 0.99))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)

	result, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionDefend)
	s.Require().NoError(err)
	s.Require().Len(result.Events, 1)
	// floor(16 * 1.5)
	s.Assert().Equal(24, result.Events[0].Damage)
	s.Assert().True(result.Events[0].WasCritical)
}

func (s *EngineTestSuite) TestMagicAttackCostsAndMultiplies() {
	s.a.Tier = engine.TierHigh

	e := engine.New(engine.Options{}, engine.NewScripted(0, 0.5))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)

	result, err := e.PlayTurn(state, engine.ActionMagicAttack, engine.ActionDefend)
	s.Require().NoError(err)
	s.Require().Len(result.Events, 1)
	// floor(16 * 1.20)
	s.Assert().Equal(19, result.Events[0].Damage)
	s.Assert().Equal(25, state.Combatants[0].Magic)
}

func (s *EngineTestSuite) TestInsufficientMagicRejectsWholeTurn() {
	s.b.Magic = 10

	e := engine.New(engine.Options{}, engine.NewScripted(0))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)

	_, err = e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionMagicAttack)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidState(err))
	s.Assert().Equal("insufficient magic", errors.GetMessage(err))

	s.Assert().Equal(0, state.Turn)
	s.Assert().Equal(100, state.Combatants[1].Health)
	s.Assert().Equal(50, state.Combatants[0].Magic)
	s.Assert().Empty(state.Log)
}

func (s *EngineTestSuite) TestMagicDefensePersistsAndDefendHalves() {
	// turn 1: opponent first, casts MAGIC_DEFENSE; turn 2: opponent first, defends;
	// turn 3: challenger first, both attack
	draws := []float64{0.99, 0.5, 0.99, 0.5, 0.0, 0.5, 0.5}
	e := engine.New(engine.Options{}, engine.NewScripted(draws...))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)

	r1, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionMagicDefense)
	s.Require().NoError(err)
	s.Assert().Equal("chr_b", r1.FirstID)
	s.Assert().Equal(14, r1.Events[0].Damage)
	s.Assert().Equal(25, state.Combatants[1].Magic)

	r2, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionDefend)
	s.Require().NoError(err)
	s.Assert().Equal(7, r2.Events[0].Damage)

	r3, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionBasicAttack)
	s.Require().NoError(err)
	s.Require().Len(r3.Events, 2)
	s.Assert().Equal(14, r3.Events[0].Damage)
	s.Assert().Equal(11, r3.Events[1].Damage)

	s.Assert().Equal(65, state.Combatants[1].Health)
	s.Assert().Equal(89, state.Combatants[0].Health)
	s.Assert().False(state.Buffs[1].Defending)
	s.Assert().InDelta(0.10, state.Buffs[1].DefensePercent, 1e-9)
}

func (s *EngineTestSuite) TestMagicDefenseTurnScoped() {
	draws := []float64{0.99, 0.5, 0.99, 0.5}
	e := engine.New(engine.Options{MagicDefenseTurnScoped: true}, engine.NewScripted(draws...))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)

	r1, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionMagicDefense)
	s.Require().NoError(err)
	s.Assert().Equal(14, r1.Events[0].Damage)

	r2, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionDefend)
	s.Require().NoError(err)
	s.Assert().Equal(8, r2.Events[0].Damage)
	s.Assert().Zero(state.Buffs[1].TurnMitigation)
}

func (s *EngineTestSuite) TestAttackBuffsStack() {
	s.a.Tier = engine.TierMid
	s.a.MaxMagic = 40
	s.a.Magic = 40

	e := engine.New(engine.Options{}, engine.NewScripted(0))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		_, err = e.PlayTurn(state, engine.ActionBuffAttack, engine.ActionDefend)
		s.Require().NoError(err)
	}
	s.Assert().Equal(20, state.Combatants[0].Magic)
	s.Assert().InDelta(0.10, state.Buffs[0].AttackPercent, 1e-9)

	r, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionBuffDefense)
	s.Require().NoError(err)
	// floor(16 * 1.1)
	s.Assert().Equal(17, r.Events[0].Damage)
}

func (s *EngineTestSuite) TestTurnCap() {
	s.Run("tie has no winner", func() {
		s.b.Attack, s.b.Defense = s.a.Attack, s.a.Defense
		s.a.Health, s.b.Health = 1000, 1000

		e := engine.New(engine.Options{}, engine.NewScripted(0))
		summary, err := e.Simulate(s.a, s.b, engine.BasicAttacks)
		s.Require().NoError(err)
		s.Assert().Nil(summary.WinnerID)
		s.Assert().Equal(engine.DefaultMaxTurns, summary.Turns)
	})

	s.Run("higher health wins", func() {
		s.SetupTest()
		s.a.Health, s.b.Health = 1000, 1000

		e := engine.New(engine.Options{MaxTurns: 3}, engine.NewScripted(0))
		summary, err := e.Simulate(s.a, s.b, engine.BasicAttacks)
		s.Require().NoError(err)
		s.Require().NotNil(summary.WinnerID)
		s.Assert().Equal("chr_a", *summary.WinnerID)
		s.Assert().Equal(3, summary.Turns)
	})
}

func (s *EngineTestSuite) TestKnockedOutSecondActorIsSkipped() {
	s.b.Health = 10

	e := engine.New(engine.Options{}, engine.NewScripted(0))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)

	result, err := e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionMagicAttack)
	s.Require().NoError(err)
	s.Assert().Len(result.Events, 1)
	s.Assert().True(result.Finished)
	s.Assert().Equal(50, state.Combatants[1].Magic)

	_, err = e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionBasicAttack)
	s.Assert().True(errors.IsInvalidState(err))
}

func (s *EngineTestSuite) TestInitiative() {
	ctrl := gomock.NewController(s.T())
	rng := enginemock.NewMockRandom(ctrl)

	testCases := []struct {
		name      string
		speedA    int
		speedB    int
		draw      float64
		wantFirst string
	}{
		{name: "even speed below half", speedA: 5, speedB: 5, draw: 0.49, wantFirst: "chr_a"},
		{name: "even speed at half", speedA: 5, speedB: 5, draw: 0.5, wantFirst: "chr_b"},
		{name: "bonus clamps at 0.4", speedA: 50, speedB: 0, draw: 0.89, wantFirst: "chr_a"},
		{name: "penalty clamps at -0.4", speedA: 0, speedB: 50, draw: 0.11, wantFirst: "chr_b"},
		{name: "small difference", speedA: 7, speedB: 5, draw: 0.69, wantFirst: "chr_a"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.a.Speed, s.b.Speed = tc.speedA, tc.speedB
			rng.EXPECT().Float64().Return(tc.draw)

			e := engine.New(engine.Options{}, rng)
			state, err := e.Start(s.a, s.b)
			s.Require().NoError(err)

			result, err := e.PlayTurn(state, engine.ActionDefend, engine.ActionDefend)
			s.Require().NoError(err)
			s.Assert().Equal(tc.wantFirst, result.FirstID)
		})
	}
}

func (s *EngineTestSuite) TestStartValidation() {
	e := engine.New(engine.Options{}, nil)

	_, err := e.Start(s.a, s.a)
	s.Assert().True(errors.IsInvalidArgument(err))

	s.b.Health = 0
	_, err = e.Start(s.a, s.b)
	s.Assert().True(errors.IsInvalidState(err))
}

func (s *EngineTestSuite) TestMagicTable() {
	testCases := []struct {
		tier   engine.Tier
		action engine.Action
		want   engine.Coefficients
	}{
		{engine.TierLow, engine.ActionMagicAttack, engine.Coefficients{DamageMultiplier: 1.07, CostPercent: 0.5}},
		{engine.TierLow, engine.ActionBuffAttack, engine.Coefficients{BuffPercent: 0.02, CostPercent: 0.25}},
		{engine.TierLow, engine.ActionMagicDefense, engine.Coefficients{MitigationPercent: 0.10, CostPercent: 0.5}},
		{engine.TierLow, engine.ActionBuffDefense, engine.Coefficients{MitigationPercent: 0.02, CostPercent: 0.25}},
		{engine.TierMid, engine.ActionMagicAttack, engine.Coefficients{DamageMultiplier: 1.12, CostPercent: 0.5}},
		{engine.TierMid, engine.ActionBuffAttack, engine.Coefficients{BuffPercent: 0.05, CostPercent: 0.25}},
		{engine.TierMid, engine.ActionMagicDefense, engine.Coefficients{MitigationPercent: 0.15, CostPercent: 0.5}},
		{engine.TierMid, engine.ActionBuffDefense, engine.Coefficients{MitigationPercent: 0.05, CostPercent: 0.25}},
		{engine.TierHigh, engine.ActionMagicAttack, engine.Coefficients{DamageMultiplier: 1.20, CostPercent: 0.5}},
		{engine.TierHigh, engine.ActionBuffAttack, engine.Coefficients{BuffPercent: 0.08, CostPercent: 0.25}},
		{engine.TierHigh, engine.ActionMagicDefense, engine.Coefficients{MitigationPercent: 0.20, CostPercent: 0.5}},
		{engine.TierHigh, engine.ActionBuffDefense, engine.Coefficients{MitigationPercent: 0.08, CostPercent: 0.25}},
	}

	for _, tc := range testCases {
		got, ok := engine.MagicCoefficients(tc.tier, tc.action)
		s.Require().True(ok)
		s.Assert().Equal(tc.want, got, "tier %d %s", tc.tier, tc.action)
	}

	_, ok := engine.MagicCoefficients(engine.TierLow, engine.ActionBasicAttack)
	s.Assert().False(ok)
	s.Assert().Equal(12, engine.MagicCost(engine.TierLow, 25, engine.ActionMagicAttack))
	s.Assert().Equal(0, engine.MagicCost(engine.TierLow, 25, engine.ActionDefend))
}

func (s *EngineTestSuite) TestStateSurvivesJSON() {
	e := engine.New(engine.Options{}, engine.NewScripted(0))
	state, err := e.Start(s.a, s.b)
	s.Require().NoError(err)
	_, err = e.PlayTurn(state, engine.ActionBasicAttack, engine.ActionBuffDefense)
	s.Require().NoError(err)

	raw, err := json.Marshal(state)
	s.Require().NoError(err)
	s.Assert().Contains(string(raw), `"action":"BASIC_ATTACK"`)

	var decoded engine.State
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	s.Assert().Equal(*state, decoded)
}
