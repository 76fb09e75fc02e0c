package agent

import (
	env "github.com/samuelfneumann/smartcab/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes. The
	// agent acts as agent id in e and follows the route computed by p.
	CreateAgent(e env.Environment, id env.AgentID, p env.Planner,
		seed uint64) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent the Config creates
	Type() Type
}

