package smartcab

import env "github.com/samuelfneumann/smartcab/environment"

// dummy is a traffic agent which drives at random, following its next
// waypoint only when doing so is legal
type dummy struct {
	id           env.AgentID
	nextWaypoint env.Action
}

// updateDummy performs a single tick for dummy d
func (s *Smartcab) updateDummy(d *dummy) {
	inputs := s.Sense(d.id)

	okay := true
	switch d.nextWaypoint {
	case env.Right:
		okay = inputs.Light == env.Green || inputs.Left != env.Forward

	case env.Forward:
		okay = inputs.Light == env.Green

	case env.Left:
		okay = inputs.Light == env.Green && inputs.Oncoming != env.Forward &&
			inputs.Oncoming != env.Right
	}

	action := env.None
	if okay {
		action = d.nextWaypoint
		d.nextWaypoint = s.randomWaypoint()
	}
	s.Act(d.id, action)
}
