// Package state implements the discrete state abstraction used by
// tabular agents in the smartcab world.
package state

import (
	"fmt"

	env "github.com/samuelfneumann/smartcab/environment"
)

// State is the discrete state of a driving agent. States are compared
// and hashed by value, so they may be used directly as map keys.
type State struct {
	Waypoint env.Action
	Light    env.Light
	Oncoming env.Action
	Left     env.Action
	Right    env.Action
}

// New encodes the next waypoint and the sensed inputs into a State.
//
// New panics if any of its arguments are not legal values. The
// environment and planner are trusted to produce legal values, so an
// illegal value is a bug in a collaborator and is not recovered from.
func New(waypoint env.Action, inputs env.Inputs) State {
	if !waypoint.Valid() {
		panic(fmt.Sprintf("new: illegal waypoint %v", waypoint))
	}
	if !inputs.Valid() {
		panic(fmt.Sprintf("new: illegal inputs %+v", inputs))
	}

	return State{
		Waypoint: waypoint,
		Light:    inputs.Light,
		Oncoming: inputs.Oncoming,
		Left:     inputs.Left,
		Right:    inputs.Right,
	}
}

// Inputs returns the sensed portion of the State
func (s State) Inputs() env.Inputs {
	return env.Inputs{
		Light:    s.Light,
		Oncoming: s.Oncoming,
		Left:     s.Left,
		Right:    s.Right,
	}
}

// Less orders States lexicographically by field
func (s State) Less(other State) bool {
	a := [5]uint8{uint8(s.Waypoint), uint8(s.Light), uint8(s.Oncoming),
		uint8(s.Left), uint8(s.Right)}
	b := [5]uint8{uint8(other.Waypoint), uint8(other.Light),
		uint8(other.Oncoming), uint8(other.Left), uint8(other.Right)}

	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (s State) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v, %v)", s.Waypoint, s.Light,
		s.Oncoming, s.Left, s.Right)
}
