package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/samuelfneumann/smartcab/agent/tabular/state"
	env "github.com/samuelfneumann/smartcab/environment"
)

// QLearner implements the update functionality for the myopic tabular
// Q-learning algorithm. The update target is the reward alone; no
// discounted value of the next state is used.
//
// A stored value of exactly 0.0 is taken to mean that the state-action
// pair has never been updated, and the first reward overwrites it
// without averaging. A value that was learned to be exactly 0.0 is
// therefore treated as fresh on its next update.
type QLearner struct {
	table        *qtable.QTable
	learningRate float64
}

// NewQLearner creates a new QLearner struct which updates the values in
// table
func NewQLearner(table *qtable.QTable, learningRate float64) (*QLearner,
	error) {
	if table == nil {
		return nil, fmt.Errorf("newQLearner: nil table")
	}
	if learningRate < 0 || learningRate > 1 {
		return nil, fmt.Errorf("newQLearner: learning rate must be in "+
			"[0, 1], have %v", learningRate)
	}
	return &QLearner{table, learningRate}, nil
}

// Learn updates the value of taking action a in state s:
//
//	Q(s, a) ← r                     if Q(s, a) = 0
//	Q(s, a) ← Q(s, a)(1 - α) + rα   otherwise
//
// Learn panics if s has no row in the table, since the row must be
// created before the agent acts in s.
func (q *QLearner) Learn(s state.State, a env.Action, reward float64) {
	value, err := q.table.Value(s, a)
	if err != nil {
		panic(fmt.Sprintf("learn: %v", err))
	}

	if value != 0 {
		value = value*(1-q.learningRate) + reward*q.learningRate
	} else {
		value = reward
	}

	if err := q.table.SetValue(s, a, value); err != nil {
		panic(fmt.Sprintf("learn: %v", err))
	}
}

// SetLearningRate sets the learning rate α
func (q *QLearner) SetLearningRate(α float64) {
	q.learningRate = α
}

// LearningRate returns the learning rate α
func (q *QLearner) LearningRate() float64 {
	return q.learningRate
}
