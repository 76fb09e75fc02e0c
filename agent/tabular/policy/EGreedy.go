// Package policy implements tabular policies over discrete states
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/samuelfneumann/smartcab/agent/tabular/state"
	env "github.com/samuelfneumann/smartcab/environment"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over a QTable. With
// probability ε a uniformly random action is selected. Otherwise an
// action is drawn uniformly from the actions tied for the highest value
// in the current state, so that no action is favoured by the order in
// which it was registered.
type EGreedy struct {
	table   *qtable.QTable
	actions []env.Action
	epsilon float64
	seed    rand.Source // Seed for random number generation
	rng     *rand.Rand
}

// NewEGreedy constructs a new EGreedy policy which selects actions
// based on the values in table. The argument e=epsilon is the
// probability with which a random action is selected.
func NewEGreedy(e float64, seed uint64, table *qtable.QTable) (*EGreedy,
	error) {
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon must be in [0, 1], "+
			"have %v", e)
	}
	if table == nil {
		return nil, fmt.Errorf("newEGreedy: nil table")
	}

	source := rand.NewSource(seed)
	return &EGreedy{
		table:   table,
		actions: table.Actions(),
		epsilon: e,
		seed:    source,
		rng:     rand.New(source),
	}, nil
}

// NewGreedy creates a new greedy policy, which is an EGreedy policy
// with ε = 0
func NewGreedy(seed uint64, table *qtable.QTable) (*EGreedy, error) {
	return NewEGreedy(0.0, seed, table)
}

// SelectAction selects an action in state s from an ε-greedy policy.
//
// When exploiting, s must already have a row in the policy's table.
// SelectAction panics otherwise, since this indicates that the caller
// did not create the row before acting.
func (p *EGreedy) SelectAction(s state.State) env.Action {
	if p.rng.Float64() < p.epsilon {
		return sample(p.actions, p.seed)
	}

	best := p.table.BestActions(s)
	if len(best) == 0 {
		panic(fmt.Sprintf("selectAction: no values for state %v", s))
	}
	return sample(best, p.seed)
}

// Epsilon returns the probability of selecting a random action
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the probability of selecting a random action
func (p *EGreedy) SetEpsilon(e float64) {
	if e < 0 || e > 1 {
		panic(fmt.Sprintf("setEpsilon: epsilon must be in [0, 1], have %v",
			e))
	}
	p.epsilon = e
}

// sample draws an action uniformly at random from actions
func sample(actions []env.Action, seed rand.Source) env.Action {
	if len(actions) == 1 {
		return actions[0]
	}

	// Construct a uniform categorical distribution over actions
	prob := 1.0 / float64(len(actions))
	actionProbabilities := make([]float64, len(actions))
	for i := range actionProbabilities {
		actionProbabilities[i] = prob
	}
	dist := distuv.NewCategorical(actionProbabilities, seed)

	return actions[int(dist.Rand())]
}
