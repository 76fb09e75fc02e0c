package environment

import "github.com/samuelfneumann/smartcab/timestep"

// DeadlineLimit implements the Ender interface to end trials once the
// remaining deadline falls to a limit
type DeadlineLimit struct {
	limit   int
	endType timestep.EndType
}

// NewDeadlineLimit creates and returns a new deadline limit which marks
// ended trials with end type e
func NewDeadlineLimit(limit int, e timestep.EndType) DeadlineLimit {
	return DeadlineLimit{limit, e}
}

// End determines whether or not the current trial should be ended,
// returning a boolean to indicate trial termination. If the trial
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last
func (d DeadlineLimit) End(t *timestep.TimeStep) bool {
	if t.Deadline <= d.limit {
		t.SetEnd(d.endType)
		return true
	}
	return false
}

// Limit returns the deadline at which trials are ended
func (d DeadlineLimit) Limit() int {
	return d.limit
}
