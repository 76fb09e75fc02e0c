// Package agent defines the interfaces of tabular driving agents
package agent

import (
	"github.com/samuelfneumann/smartcab/agent/tabular/state"
	env "github.com/samuelfneumann/smartcab/environment"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which updates action values, and a
// Policy which chooses actions in each state. The Policy chooses which
// actions are taken, and the Learner uses these actions to update the
// values the Policy acts on. An Agent is driven by a simulator, which
// resets it once per trial and updates it once per tick.
type Agent interface {
	env.Agent

	// Epsilon returns the current exploration rate
	Epsilon() float64

	// Alpha returns the current learning rate
	Alpha() float64

	// Learning returns whether the agent learns
	Learning() bool
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// Learn updates the value of taking action a in state s given the
	// reward received
	Learn(s state.State, a env.Action, reward float64)

	// SetLearningRate sets the learning rate
	SetLearningRate(float64)

	// LearningRate returns the learning rate
	LearningRate() float64
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should refer to the same table of action values so
// that any changes the learner makes are reflected in the actions the
// Policy chooses.
type Policy interface {
	SelectAction(s state.State) env.Action
}

// EGreedyPolicy implements an epsilon greedy policy whose epsilon can
// be set and retrieved.
type EGreedyPolicy interface {
	Policy
	SetEpsilon(float64)
	Epsilon() float64
}
