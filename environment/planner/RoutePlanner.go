// Package planner implements a route planner which suggests the next
// turn an agent should take to reach its destination.
package planner

import (
	"fmt"

	env "github.com/samuelfneumann/smartcab/environment"
)

// RoutePlanner plans a route for a single agent. Routes resolve the
// east-west difference to the destination before the north-south
// difference and never use wrap-around edges of the grid.
type RoutePlanner struct {
	env         env.Locator
	id          env.AgentID
	destination env.Location
}

// New returns a new RoutePlanner for agent id in environment e
func New(e env.Locator, id env.AgentID) (*RoutePlanner, error) {
	if e == nil {
		return nil, fmt.Errorf("new: locator must be non-nil")
	}
	return &RoutePlanner{env: e, id: id}, nil
}

// RouteTo sets the destination of the planner
func (r *RoutePlanner) RouteTo(destination env.Location) {
	r.destination = destination
}

// Destination returns the destination of the planner
func (r *RoutePlanner) Destination() env.Location {
	return r.destination
}

// NextWaypoint returns the action that moves the agent towards its
// destination from its current location and heading
func (r *RoutePlanner) NextWaypoint() env.Action {
	location, heading := r.env.Locate(r.id)
	return Waypoint(location, heading, r.destination)
}

// Waypoint returns the action an agent at location facing heading
// should take towards destination. Facing directly away from the
// destination results in a right turn.
func Waypoint(location env.Location, heading env.Heading,
	destination env.Location) env.Action {
	dx := destination.X - location.X
	dy := destination.Y - location.Y

	switch {
	case dx != 0:
		switch {
		case dx*heading.DX > 0:
			return env.Forward
		case dx*heading.DX < 0:
			return env.Right
		case dx*heading.DY > 0:
			return env.Left
		default:
			return env.Right
		}

	case dy != 0:
		switch {
		case dy*heading.DY > 0:
			return env.Forward
		case dy*heading.DY < 0:
			return env.Right
		case dy*heading.DX > 0:
			return env.Right
		default:
			return env.Left
		}
	}

	return env.None
}
