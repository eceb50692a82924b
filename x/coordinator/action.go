package coordinator

import (
	"strings"

	"github.com/artfi/suiops/errors"
)

// Action selects the authorization step.
type Action string

const (
	// ActionSign adds a partial signature to the bundle.
	ActionSign Action = "sign"
	// ActionCombine merges collected signatures and submits the
	// transaction.
	ActionCombine Action = "combine"
)

// ParseAction returns the action of given name.
func ParseAction(name string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(name))); a {
	case ActionSign, ActionCombine:
		return a, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidAction, "%q, expected %q or %q", name, ActionSign, ActionCombine)
	}
}

func (a Action) String() string {
	return string(a)
}
