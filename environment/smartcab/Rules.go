package smartcab

import (
	"math"

	env "github.com/samuelfneumann/smartcab/environment"
)

// Violation classes of an action, from least to most severe. Legal
// actions have class NoViolation.
const (
	NoViolation = iota
	MinorViolation
	MajorViolation
	MinorAccident
	MajorAccident
)

// NumViolationClasses is the number of violation classes, including
// NoViolation
const NumViolationClasses = 5

// violationRewards maps each violation class to its reward
var violationRewards = [NumViolationClasses]float64{0, -5, -10, -20, -40}

// DestinationReward is awarded to the primary agent for reaching its
// destination
const DestinationReward = 10.0

// penaltyGradient sets how quickly the penalty for slow driving grows
// as the deadline approaches
const penaltyGradient = 10.0

// Violation returns the violation class of taking action a given the
// inputs sensed at an intersection
func Violation(inputs env.Inputs, a env.Action) int {
	crossTraffic := inputs.Left == env.Forward || inputs.Right == env.Forward

	switch a {
	case env.Forward:
		if inputs.Light == env.Red {
			if crossTraffic {
				return MajorAccident
			}
			return MajorViolation
		}

	case env.Left:
		if inputs.Light == env.Red {
			if crossTraffic || inputs.Oncoming == env.Right {
				return MajorAccident
			}
			return MajorViolation
		}
		if inputs.Oncoming == env.Forward || inputs.Oncoming == env.Right {
			return MinorAccident
		}

	case env.Right:
		if inputs.Light == env.Red && inputs.Left == env.Forward {
			return MinorAccident
		}

	case env.None:
		if inputs.Light == env.Green && inputs.Oncoming != env.Left {
			return MinorViolation
		}
	}

	return NoViolation
}

// ViolationReward returns the reward for an action of the given
// violation class. Legal actions are rewarded by LegalReward instead.
func ViolationReward(class int) float64 {
	return violationRewards[class]
}

// LegalReward returns the reward for a legal action a, given the
// waypoint suggested by the route planner, the light sensed, and the
// penalty for slow driving
func LegalReward(a, waypoint env.Action, light env.Light,
	penalty float64) float64 {
	switch {
	case a == waypoint:
		return 2 - penalty

	case a == env.None && light == env.Red && waypoint == env.Right:
		// Idling at a red light when a right turn was possible
		return 1 - penalty

	case a == env.None && light == env.Red:
		return 2 - penalty
	}
	return 1 - penalty
}

// Penalty returns the penalty for slow driving after t ticks with
// deadline ticks remaining. The penalty grows from 0 at the start of
// a trial to 1 when the deadline is reached.
func Penalty(t, deadline int) float64 {
	if t+deadline <= 0 {
		return 0
	}
	f := float64(t) / float64(t+deadline)
	return (math.Pow(penaltyGradient, f) - 1) / (penaltyGradient - 1)
}

// turn returns the heading after taking action a facing h
func turn(h env.Heading, a env.Action) env.Heading {
	switch a {
	case env.Left:
		return h.TurnLeft()
	case env.Right:
		return h.TurnRight()
	}
	return h
}

// distance returns the Manhattan distance between two locations,
// ignoring the wrap-around edges of the grid
func distance(a, b env.Location) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
