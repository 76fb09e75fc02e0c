package tracker

import (
	"fmt"

	ts "github.com/samuelfneumann/smartcab/timestep"
)

// Return tracks and saves the net reward of the primary agent in each
// trial of an experiment.
//
// Note: A trial must finish for this Tracker to save its data. If the
// last trial in an experiment does not finish, that trial's return
// will not be saved.
type Return struct {
	lastTimeStep  int
	currentReturn float64
	trialReturns  []float64
	filename      string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	return &Return{lastTimeStep: -1, filename: filename}
}

// Track accumulates the reward seen on a timestep into the return of
// the current trial. The First TimeStep of a trial starts a new
// return.
//
// Track panics if it is called for non-sequential timesteps
func (r *Return) Track(step ts.TimeStep) {
	if r.lastTimeStep+1 != step.Number {
		panic(fmt.Sprintf("track: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number))
	}

	r.currentReturn += step.Reward
	r.lastTimeStep = step.Number

	if step.Last() {
		r.trialReturns = append(r.trialReturns, r.currentReturn)
		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Data returns the return of each finished trial
func (r *Return) Data() []float64 {
	return r.trialReturns
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	return save(r.filename, r.trialReturns)
}
