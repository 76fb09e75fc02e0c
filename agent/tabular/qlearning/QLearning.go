// Package qlearning implements a tabular Q-learning driving agent.
//
// The agent abstracts each intersection it visits into a discrete
// state.State, keeps a qtable.QTable of action values for every state
// it has visited while learning, and selects actions ε-greedily. Action
// values are updated towards the immediate reward only, so the agent
// learns which action is best at each intersection rather than a
// discounted return.
//
// Between trials the exploration rate ε (and optionally the learning
// rate α) is decayed as a function of the number of trials seen. In
// testing trials both ε and α are zero: the agent acts greedily and
// the table is left untouched.
package qlearning

import (
	"fmt"
	"log/slog"

	"github.com/samuelfneumann/smartcab/agent"
	"github.com/samuelfneumann/smartcab/agent/tabular/decay"
	"github.com/samuelfneumann/smartcab/agent/tabular/policy"
	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/samuelfneumann/smartcab/agent/tabular/state"
	env "github.com/samuelfneumann/smartcab/environment"
	"github.com/samuelfneumann/smartcab/utils/floatutils"
)

// QLearning implements the tabular Q-Learning agent
type QLearning struct {
	agent.Learner
	agent.Policy
	fallback agent.Policy // Used for unseen states in testing trials

	env     env.Environment
	id      env.AgentID
	planner env.Planner
	table   *qtable.QTable

	learning     bool
	epsilon      float64
	alpha        float64
	epsilonDecay decay.Schedule
	alphaDecay   decay.Schedule
	episode      int // Number of the next trial, starting at 1
	testing      bool

	state    state.State // State of the most recent Update
	waypoint env.Action  // Waypoint recorded on the most recent Update

	logger *slog.Logger
}

// New creates a new QLearning agent which acts as agent id in the
// environment e, following the route computed by planner p.
func New(e env.Environment, id env.AgentID, p env.Planner, c Config,
	seed uint64) (*QLearning, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: invalid config: %v", err)
	}
	if e == nil || p == nil {
		return nil, fmt.Errorf("new: environment and planner must be non-nil")
	}

	table, err := qtable.New(e.ValidActions())
	if err != nil {
		return nil, fmt.Errorf("new: could not create table: %v", err)
	}

	epsilonDecay, err := c.EpsilonDecay.Create()
	if err != nil {
		return nil, fmt.Errorf("new: epsilon decay: %v", err)
	}

	var alphaDecay decay.Schedule = decay.Constant{Initial: c.Alpha}
	if c.AlphaDecay.Type != "" {
		alphaDecay, err = c.AlphaDecay.Create()
		if err != nil {
			return nil, fmt.Errorf("new: alpha decay: %v", err)
		}
	}

	learner, err := NewQLearner(table, c.Alpha)
	if err != nil {
		return nil, fmt.Errorf("new: could not create learner: %v", err)
	}

	fallback, err := policy.NewRandom(seed, table.Actions())
	if err != nil {
		return nil, fmt.Errorf("new: could not create policy: %v", err)
	}

	// Agents that do not learn never touch the table
	var behaviour agent.Policy = fallback
	if c.Learning {
		behaviour, err = policy.NewEGreedy(c.Epsilon, seed+1, table)
		if err != nil {
			return nil, fmt.Errorf("new: could not create policy: %v", err)
		}
	}

	return &QLearning{
		Learner:      learner,
		Policy:       behaviour,
		fallback:     fallback,
		env:          e,
		id:           id,
		planner:      p,
		table:        table,
		learning:     c.Learning,
		epsilon:      c.Epsilon,
		alpha:        c.Alpha,
		epsilonDecay: epsilonDecay,
		alphaDecay:   alphaDecay,
		episode:      1,
		logger:       slog.Default().With("agent", int(id)),
	}, nil
}

// SetLogger sets the logger the agent reports to
func (q *QLearning) SetLogger(logger *slog.Logger) {
	q.logger = logger.With("agent", int(q.id))
}

// Reset prepares the agent for a new trial which ends at destination.
//
// The exploration and learning rates are recomputed from the number of
// trials seen so far, and the trial counter is incremented. If testing
// is true, both rates are zero for this trial only; the next training
// trial recomputes them from the trial counter as usual.
func (q *QLearning) Reset(destination env.Location, testing bool) {
	q.planner.RouteTo(destination)

	q.epsilon = floatutils.Clip(q.epsilonDecay.Value(q.episode),
		floatutils.Unit)
	q.alpha = floatutils.Clip(q.alphaDecay.Value(q.episode),
		floatutils.Unit)
	q.episode++

	q.testing = testing
	if testing {
		q.epsilon = 0
		q.alpha = 0
	}

	if p, ok := q.Policy.(agent.EGreedyPolicy); ok {
		p.SetEpsilon(q.epsilon)
	}
	q.Learner.SetLearningRate(q.alpha)

	q.logger.Info("reset", "trial", q.episode-1, "destination",
		destination.String(), "testing", testing, "epsilon", q.epsilon,
		"alpha", q.alpha, "states", q.table.Len())
}

// Update performs a single tick: the agent observes its state, acts in
// the environment, and learns from the reward it receives.
func (q *QLearning) Update() {
	s := q.buildState()
	q.createQ(s)
	action := q.chooseAction(s)
	reward := q.env.Act(q.id, action)
	q.learn(s, action, reward)

	q.logger.Debug("update", "state", s.String(), "action",
		action.String(), "reward", reward, "waypoint", q.waypoint.String())
}

// buildState encodes the agent's current observation as a State
func (q *QLearning) buildState() state.State {
	waypoint := q.planner.NextWaypoint()
	inputs := q.env.Sense(q.id)
	deadline := q.env.Deadline(q.id)

	s := state.New(waypoint, inputs)
	q.logger.Debug("sensed", "state", s.String(), "deadline", deadline)
	return s
}

// createQ adds a row for s to the table when the agent is learning.
// Testing trials leave the table untouched.
func (q *QLearning) createQ(s state.State) {
	if q.learning && !q.testing {
		q.table.Ensure(s)
	}
}

// chooseAction records s as the agent's current state and selects an
// action in s
func (q *QLearning) chooseAction(s state.State) env.Action {
	q.state = s
	q.waypoint = q.planner.NextWaypoint()
	if q.waypoint != s.Waypoint {
		q.logger.Warn("waypoint changed while choosing action", "state",
			s.String(), "waypoint", q.waypoint.String())
	}

	// A fresh row ties every action, so acting uniformly at random in an
	// unseen state during testing matches what an all-zero row would do
	if q.learning && q.testing && !q.table.Has(s) {
		return q.fallback.SelectAction(s)
	}
	return q.Policy.SelectAction(s)
}

// learn updates the value of taking action in s
func (q *QLearning) learn(s state.State, action env.Action, reward float64) {
	if q.learning && !q.testing {
		q.Learner.Learn(s, action, reward)
	}
}

// NextWaypoint returns the waypoint recorded on the most recent Update
func (q *QLearning) NextWaypoint() env.Action {
	return q.waypoint
}

// State returns the state recorded on the most recent Update
func (q *QLearning) State() state.State {
	return q.state
}

// Table returns the agent's table of action values
func (q *QLearning) Table() *qtable.QTable {
	return q.table
}

// SetTable replaces the agent's table of action values, for example
// with a table restored from a checkpoint. The table must store values
// for the same actions as the agent's environment.
func (q *QLearning) SetTable(table *qtable.QTable) error {
	actions := table.Actions()
	valid := q.env.ValidActions()
	if len(actions) != len(valid) {
		return fmt.Errorf("setTable: table has %d actions, want %d",
			len(actions), len(valid))
	}
	for i := range actions {
		if actions[i] != valid[i] {
			return fmt.Errorf("setTable: action %d is %v, want %v", i,
				actions[i], valid[i])
		}
	}

	learner, err := NewQLearner(table, q.alpha)
	if err != nil {
		return fmt.Errorf("setTable: %v", err)
	}

	q.table = table
	q.Learner = learner
	if q.learning {
		p, err := policy.NewEGreedy(q.epsilon, uint64(q.episode), table)
		if err != nil {
			return fmt.Errorf("setTable: %v", err)
		}
		q.Policy = p
	}
	return nil
}

// Epsilon returns the current exploration rate
func (q *QLearning) Epsilon() float64 {
	return q.epsilon
}

// EpsilonDecay returns the schedule which sets the exploration rate of
// each training trial
func (q *QLearning) EpsilonDecay() decay.Schedule {
	return q.epsilonDecay
}

// Alpha returns the current learning rate
func (q *QLearning) Alpha() float64 {
	return q.alpha
}

// Learning returns whether the agent learns
func (q *QLearning) Learning() bool {
	return q.learning
}

// Testing returns whether the current trial is a testing trial
func (q *QLearning) Testing() bool {
	return q.testing
}

// Episode returns the number of trials the agent has been reset for
func (q *QLearning) Episode() int {
	return q.episode - 1
}
