package tracker

import (
	ts "github.com/samuelfneumann/smartcab/timestep"
)

// EpisodeLength tracks and saves the number of ticks in each trial of
// an experiment. A trial must finish for its length to be saved.
type EpisodeLength struct {
	lengths  []float64
	filename string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the trial length when the timestep passed to it is the
// last timestep in a trial
func (e *EpisodeLength) Track(t ts.TimeStep) {
	if t.Last() {
		e.lengths = append(e.lengths, float64(t.Number))
	}
}

// Data returns the length of each finished trial
func (e *EpisodeLength) Data() []float64 {
	return e.lengths
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() error {
	return save(e.filename, e.lengths)
}
