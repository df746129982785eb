// Package engine is the turn-based battle simulator. It works on plain
// combatant snapshots and never touches storage; callers persist the outcome.
package engine

import (
	"math"

	"github.com/gamewaifu/waifu-api/internal/errors"
)

// DefaultMaxTurns caps a battle when no one is knocked out
const DefaultMaxTurns = 10

// Combatant is a snapshot of one fighter
type Combatant struct {
	ID         string `json:"id"`
	Tier       Tier   `json:"tier"`
	Health     int    `json:"health"`
	MaxHealth  int    `json:"max_health"`
	Magic      int    `json:"magic"`
	MaxMagic   int    `json:"max_magic"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	Speed      int    `json:"speed"`
	CritChance int    `json:"crit_chance"` // percent
	CritDamage int    `json:"crit_damage"` // percent bonus on a critical hit
}

// Buffs are the standing effects on one combatant during a battle
type Buffs struct {
	AttackPercent  float64 `json:"attack_percent"`
	DefensePercent float64 `json:"defense_percent"`
	TurnMitigation float64 `json:"turn_mitigation,omitempty"`
	Defending      bool    `json:"defending"`
}

func (b Buffs) mitigate(damage int) int {
	if p := b.DefensePercent + b.TurnMitigation; p != 0 {
		damage = int(math.Floor(float64(damage) * (1 - p)))
	}
	if b.Defending {
		damage /= 2
	}
	if damage < 0 {
		return 0
	}
	return damage
}

// Event is one damage-dealing action in the battle log
type Event struct {
	Turn        int    `json:"turn"`
	ActorID     string `json:"actor"`
	TargetID    string `json:"target"`
	Action      Action `json:"action"`
	Damage      int    `json:"damage"`
	WasCritical bool   `json:"was_critical"`
}

// State is the in-memory state of one battle. Index 0 is the challenger.
type State struct {
	Turn       int          `json:"turn"`
	Combatants [2]Combatant `json:"combatants"`
	Buffs      [2]Buffs     `json:"buffs"`
	Log        []Event      `json:"log"`
	Finished   bool         `json:"finished"`
	WinnerID   *string      `json:"winner_id,omitempty"`
}

// Summary is the outcome handed to the caller for persistence
type Summary struct {
	WinnerID *string
	Turns    int
	Log      []Event
	Final    [2]Combatant
}

// Summary returns the outcome of the battle so far
func (s *State) Summary() *Summary {
	log := make([]Event, len(s.Log))
	copy(log, s.Log)
	return &Summary{
		WinnerID: s.WinnerID,
		Turns:    s.Turn,
		Log:      log,
		Final:    s.Combatants,
	}
}

// TurnResult describes one resolved turn
type TurnResult struct {
	Turn     int
	FirstID  string
	Events   []Event
	Finished bool
}

// Options tune the simulator
type Options struct {
	MaxTurns int
	// MagicDefenseTurnScoped makes MAGIC_DEFENSE last only for the turn it was
	// cast. By default its mitigation stands until overwritten.
	MagicDefenseTurnScoped bool
}

// Chooser picks the action for side (0 or 1) given the current state
type Chooser func(state *State, side int) Action

// BasicAttacks always chooses BASIC_ATTACK
func BasicAttacks(*State, int) Action {
	return ActionBasicAttack
}

// Engine runs battles
type Engine struct {
	opts Options
	rng  Random
}

// New creates an engine. A nil rng uses the system source.
func New(opts Options, rng Random) *Engine {
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if rng == nil {
		rng = SystemRandom()
	}
	return &Engine{opts: opts, rng: rng}
}

// Start validates two combatants and opens a battle between them
func (e *Engine) Start(a, b Combatant) (*State, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("challenger.id", a.ID, vb)
	errors.ValidateRequired("opponent.id", b.ID, vb)
	if a.ID != "" && a.ID == b.ID {
		vb.Field("opponent.id", "must differ from challenger")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	for _, c := range []Combatant{a, b} {
		if c.Health <= 0 {
			return nil, errors.InvalidStatef("combatant %s has no health", c.ID).WithMeta("combatant_id", c.ID)
		}
	}

	return &State{Combatants: [2]Combatant{a, b}}, nil
}

// Simulate runs a whole battle with actions picked by choose
func (e *Engine) Simulate(a, b Combatant, choose Chooser) (*Summary, error) {
	state, err := e.Start(a, b)
	if err != nil {
		return nil, err
	}

	for !state.Finished {
		if _, err := e.PlayTurn(state, choose(state, 0), choose(state, 1)); err != nil {
			return nil, err
		}
	}

	return state.Summary(), nil
}

// PlayTurn resolves one turn. Both choices are validated before anything
// changes, so a rejected turn leaves state untouched.
func (e *Engine) PlayTurn(state *State, choices ...Action) (*TurnResult, error) {
	if state.Finished {
		return nil, errors.InvalidState("battle already finished")
	}
	if len(choices) != 2 {
		return nil, errors.InvalidArgumentf("expected 2 choices, got %d", len(choices))
	}
	for side, choice := range choices {
		c := state.Combatants[side]
		if !choice.Valid() {
			return nil, errors.InvalidArgumentf("invalid action %s for %s", choice, c.ID)
		}
		if cost := MagicCost(c.Tier, c.MaxMagic, choice); c.Magic < cost {
			return nil, errors.InvalidState("insufficient magic").
				WithMeta("combatant_id", c.ID).
				WithMeta("action", choice.String()).
				WithMeta("cost", cost)
		}
	}

	state.Turn++
	first, second := 0, 1
	if !e.challengerFirst(state) {
		first, second = 1, 0
	}

	result := &TurnResult{Turn: state.Turn, FirstID: state.Combatants[first].ID}

	if ev, ok := e.act(state, first, second, choices[first]); ok {
		result.Events = append(result.Events, ev)
	}
	if state.Combatants[second].Health > 0 {
		if ev, ok := e.act(state, second, first, choices[second]); ok {
			result.Events = append(result.Events, ev)
		}
	}

	for i := range state.Buffs {
		state.Buffs[i].Defending = false
		state.Buffs[i].TurnMitigation = 0
	}

	e.settle(state)
	result.Finished = state.Finished
	return result, nil
}

func (e *Engine) challengerFirst(state *State) bool {
	a, b := state.Combatants[0], state.Combatants[1]
	bonus := math.Min(math.Max(float64(a.Speed-b.Speed)*0.1, -0.4), 0.4)
	return e.rng.Float64() < 0.5+bonus
}

// act resolves one combatant's action and reports a log event when damage
// was dealt.
func (e *Engine) act(state *State, actor, target int, choice Action) (Event, bool) {
	self := &state.Combatants[actor]
	foe := &state.Combatants[target]
	buffs := &state.Buffs[actor]

	self.Magic -= MagicCost(self.Tier, self.MaxMagic, choice)

	var damage int
	var crit bool

	switch choice {
	case ActionBasicAttack:
		damage, crit = e.damage(self, foe)
		if buffs.AttackPercent != 0 {
			damage = int(math.Floor(float64(damage) * (1 + buffs.AttackPercent)))
		}
	case ActionMagicAttack:
		c, _ := MagicCoefficients(self.Tier, choice)
		damage, crit = e.damage(self, foe)
		damage = int(math.Floor(float64(damage) * c.DamageMultiplier))
	case ActionDefend:
		buffs.Defending = true
	case ActionBuffAttack:
		c, _ := MagicCoefficients(self.Tier, choice)
		buffs.AttackPercent += c.BuffPercent
	case ActionMagicDefense:
		c, _ := MagicCoefficients(self.Tier, choice)
		if e.opts.MagicDefenseTurnScoped {
			buffs.TurnMitigation = c.MitigationPercent
		} else {
			buffs.DefensePercent = c.MitigationPercent
		}
	case ActionBuffDefense:
		c, _ := MagicCoefficients(self.Tier, choice)
		buffs.DefensePercent += c.MitigationPercent
	case ActionUnspecified:
		return Event{}, false
	}

	if damage <= 0 {
		return Event{}, false
	}

	dealt := state.Buffs[target].mitigate(damage)
	foe.Health = max(0, foe.Health-dealt)

	ev := Event{
		Turn:        state.Turn,
		ActorID:     self.ID,
		TargetID:    foe.ID,
		Action:      choice,
		Damage:      dealt,
		WasCritical: crit,
	}
	state.Log = append(state.Log, ev)
	return ev, true
}

// damage is max(1, floor(base * critFactor)) with base = attack - defense/2
func (e *Engine) damage(attacker, defender *Combatant) (int, bool) {
	base := float64(attacker.Attack) - float64(defender.Defense)*0.5
	crit := e.rng.Float64() < float64(attacker.CritChance)/100
	if crit {
		base *= 1 + float64(attacker.CritDamage)/100
	}
	return max(1, int(math.Floor(base))), crit
}

func (e *Engine) settle(state *State) {
	a, b := state.Combatants[0], state.Combatants[1]

	switch {
	case a.Health <= 0:
		state.WinnerID = &b.ID
	case b.Health <= 0:
		state.WinnerID = &a.ID
	case state.Turn >= e.opts.MaxTurns:
		if a.Health > b.Health {
			state.WinnerID = &a.ID
		} else if b.Health > a.Health {
			state.WinnerID = &b.ID
		}
	default:
		return
	}

	state.Finished = true
}
