// Package environment outlines the interfaces and types that a driving
// agent uses to interact with a simulated traffic world and its route
// planner.
package environment

import (
	"github.com/samuelfneumann/smartcab/timestep"
)

// AgentID identifies an agent within an environment
type AgentID int

// Inputs is a single observation of an intersection as seen by an
// agent: the colour of the agent's traffic light and the intended
// actions of vehicles approaching from each other direction. A traffic
// field is None when no vehicle approaches from that direction.
type Inputs struct {
	Light    Light
	Oncoming Action
	Left     Action
	Right    Action
}

// Valid returns whether all fields of the Inputs are legal values
func (i Inputs) Valid() bool {
	return i.Light.Valid() && i.Oncoming.Valid() && i.Left.Valid() &&
		i.Right.Valid()
}

// Environment is the view that a learning agent has of the simulated
// world.
type Environment interface {
	// Sense returns what agent id observes at its current intersection
	Sense(id AgentID) Inputs

	// Deadline returns the number of ticks agent id has remaining
	Deadline(id AgentID) int

	// Act performs action a for agent id and returns the reward
	Act(id AgentID, a Action) float64

	// ValidActions returns the actions an agent may take. The returned
	// slice is fixed for the lifetime of the environment and should
	// not be modified.
	ValidActions() []Action
}

// Starter samples integer vectors, such as the starting locations and
// headings of agents
type Starter interface {
	Start() []int
}

// Ender determines when a trial ends. If a trial should end, End
// marks the TimeStep as the last in the trial and returns true.
type Ender interface {
	End(t *timestep.TimeStep) bool
}

// Locator reports the position and heading of agents in an environment
type Locator interface {
	Locate(id AgentID) (Location, Heading)
}

// Planner computes the heading an agent should take to reach its
// destination.
type Planner interface {
	// RouteTo sets the destination that the planner routes to
	RouteTo(destination Location)

	// NextWaypoint returns the next action that moves towards the
	// destination, or None when the destination has been reached.
	NextWaypoint() Action
}

// Agent is an agent that is driven by a Simulator. Once per trial the
// Simulator calls Reset, and once per tick it calls Update.
type Agent interface {
	Reset(destination Location, testing bool)
	Update()

	// NextWaypoint returns the waypoint the agent recorded on its most
	// recent Update
	NextWaypoint() Action
}

// Simulator implements a simulated world that drives a primary agent
// through trials.
type Simulator interface {
	Environment
	Locator

	// Reset begins a new trial and resets the primary agent
	Reset(testing bool) timestep.TimeStep

	// Step advances the world by a single tick
	Step() timestep.TimeStep

	// LastTimeStep returns the most recent TimeStep
	LastTimeStep() timestep.TimeStep
}
