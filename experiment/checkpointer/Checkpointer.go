// Package checkpointer implements periodic saving of learned values
// during an experiment
package checkpointer

import (
	"encoding/gob"

	ts "github.com/samuelfneumann/smartcab/timestep"
)

// Serializable is an object that can be saved/serialized
type Serializable interface {
	gob.GobEncoder
	gob.GobDecoder

	// Save serializes the object to filename
	Save(filename string) error
}

// Checkpointer checkpoints/saves serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
