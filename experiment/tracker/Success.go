package tracker

import (
	ts "github.com/samuelfneumann/smartcab/timestep"
)

// Success tracks whether each trial of an experiment ended with the
// primary agent reaching its destination within the deadline. A
// successful trial is saved as 1 and an unsuccessful one as 0, so that
// the mean of the data is the success rate.
type Success struct {
	outcomes []float64
	filename string
}

// NewSuccess returns a new Success Tracker which will save its data at
// the specified location filename
func NewSuccess(filename string) *Success {
	return &Success{filename: filename}
}

// Track records the outcome of a trial when t is the last timestep in
// the trial
func (s *Success) Track(t ts.TimeStep) {
	if !t.Last() {
		return
	}
	if t.Success() {
		s.outcomes = append(s.outcomes, 1.0)
	} else {
		s.outcomes = append(s.outcomes, 0.0)
	}
}

// Data returns the outcome of each finished trial
func (s *Success) Data() []float64 {
	return s.outcomes
}

// Save saves the data tracked by the Success Tracker to disk.
func (s *Success) Save() error {
	return save(s.filename, s.outcomes)
}
