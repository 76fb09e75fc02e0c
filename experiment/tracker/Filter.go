package tracker

import (
	"github.com/samuelfneumann/smartcab/timestep"
)

// filteredTracker passes only training or only testing TimeSteps to
// the embedded Tracker. filteredTracker itself is a Tracker.
//
// The Save() method of a filteredTracker calls that of the embedded
// Tracker, and the logic of the embedded Tracker's Track() method
// remains unmodified.
//
// This is useful to save data from testing trials separately from
// data generated while the agent is still learning.
type filteredTracker struct {
	Tracker
	testing bool
}

// Training returns a copy of the argument Tracker which tracks data
// from training trials only.
//
// Note: the underlying concrete type of the returned Tracker is lost.
func Training(t Tracker) Tracker {
	return &filteredTracker{t, false}
}

// Testing returns a copy of the argument Tracker which tracks data
// from testing trials only.
//
// Note: the underlying concrete type of the returned Tracker is lost.
func Testing(t Tracker) Tracker {
	return &filteredTracker{t, true}
}

// Track calls Track() on the embedded Tracker if the TimeStep belongs
// to the filtered kind of trial
func (f *filteredTracker) Track(step timestep.TimeStep) {
	if step.Testing == f.testing {
		f.Tracker.Track(step)
	}
}
