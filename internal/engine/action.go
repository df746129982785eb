package engine

import (
	"fmt"
	"strings"
)

// Action is one of the six moves a combatant can choose each turn
type Action int

// Actions
const (
	ActionUnspecified Action = iota
	ActionBasicAttack
	ActionDefend
	ActionMagicAttack
	ActionBuffAttack
	ActionMagicDefense
	ActionBuffDefense
)

var actionNames = map[Action]string{
	ActionBasicAttack:  "BASIC_ATTACK",
	ActionDefend:       "DEFEND",
	ActionMagicAttack:  "MAGIC_ATTACK",
	ActionBuffAttack:   "BUFF_ATTACK",
	ActionMagicDefense: "MAGIC_DEFENSE",
	ActionBuffDefense:  "BUFF_DEFENSE",
}

// String returns the wire name, e.g. BASIC_ATTACK
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Valid reports whether a is one of the six actions
func (a Action) Valid() bool {
	_, ok := actionNames[a]
	return ok
}

// IsMagic reports whether the action spends magic
func (a Action) IsMagic() bool {
	switch a {
	case ActionMagicAttack, ActionBuffAttack, ActionMagicDefense, ActionBuffDefense:
		return true
	default:
		return false
	}
}

// ParseAction accepts wire names in any case
func ParseAction(s string) (Action, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == want {
			return a, nil
		}
	}
	return ActionUnspecified, fmt.Errorf("unknown action %q", s)
}

// MarshalText encodes the wire name
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", a)
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes the wire name
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
