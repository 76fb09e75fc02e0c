// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why a trial ended. Only TimeSteps with StepType
// Last carry a meaningful EndType.
type EndType int

const (
	// Unended is the EndType of a TimeStep that has not ended its trial
	Unended EndType = iota

	// Destination means the primary agent reached its destination
	Destination

	// DeadlineExpired means the deadline was enforced and reached zero
	DeadlineExpired

	// HardLimit means the deadline fell to the environment's hard time
	// limit, whether or not the deadline was enforced
	HardLimit

	// LateArrival means the destination was reached after the deadline
	LateArrival
)

func (e EndType) String() string {
	switch e {
	case Destination:
		return "Destination"
	case DeadlineExpired:
		return "DeadlineExpired"
	case HardLimit:
		return "HardLimit"
	case LateArrival:
		return "LateArrival"
	default:
		return "Unended"
	}
}

// TimeStep packages together a single tick of a trial
type TimeStep struct {
	StepType
	Reward   float64 // Reward the primary agent received this tick
	Number   int     // Tick number within the trial, starting at 0
	Deadline int     // Remaining deadline after the tick
	Testing  bool    // Whether the trial is an evaluation trial
	endType  EndType
}

// New returns a new TimeStep
func New(t StepType, r float64, n, deadline int, testing bool) TimeStep {
	return TimeStep{
		StepType: t,
		Reward:   r,
		Number:   n,
		Deadline: deadline,
		Testing:  testing,
	}
}

// First returns whether a TimeStep is the first in a trial
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in a trial
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in a trial
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd marks the TimeStep as the last in its trial with the given
// ending type
func (t *TimeStep) SetEnd(e EndType) {
	t.StepType = Last
	t.endType = e
}

// EndType returns the reason the trial ended
func (t *TimeStep) EndType() EndType {
	return t.endType
}

// Success returns whether the trial ended by reaching the destination
// within the deadline
func (t *TimeStep) Success() bool {
	return t.Last() && t.endType == Destination
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Deadline: %d  |  " +
		"Step Number:  %v  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Deadline, t.Number,
		t.endType)
}
