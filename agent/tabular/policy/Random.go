package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smartcab/agent/tabular/state"
	env "github.com/samuelfneumann/smartcab/environment"
)

// Random selects actions uniformly at random and never consults a
// table of action values. It is used by agents that do not learn.
type Random struct {
	actions []env.Action
	seed    rand.Source
}

// NewRandom returns a new Random policy over actions
func NewRandom(seed uint64, actions []env.Action) (*Random, error) {
	if len(actions) == 0 {
		return nil, fmt.Errorf("newRandom: at least one action is required")
	}

	policyActions := make([]env.Action, len(actions))
	copy(policyActions, actions)

	return &Random{policyActions, rand.NewSource(seed)}, nil
}

// SelectAction selects a uniformly random action, ignoring the state
func (r *Random) SelectAction(state.State) env.Action {
	return sample(r.actions, r.seed)
}
