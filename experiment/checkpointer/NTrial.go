package checkpointer

import (
	"fmt"

	ts "github.com/samuelfneumann/smartcab/timestep"
)

// nTrial implements checkpointing every N finished training trials
type nTrial struct {
	interval int
	trials   int
	object   Serializable // Object to save

	// filename returns the filename of the file to save the object in.
	//
	// If each checkpoint should be saved in a separate file with an
	// incremented number as a suffix (e.g. table1.bin, table2.bin, ...),
	// use FilenameEnumerator. If the filename does not matter, use
	// FileTimer. For example:
	//
	// n := NewNTrial(10, table, FileTimer("table", ".bin"))
	filename func() string
}

// NewNTrial returns a checkpointer that saves object every n finished
// training trials. Testing trials do not change learned values and
// are not counted.
func NewNTrial(n int, object Serializable,
	filename func() string) (Checkpointer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newNTrial: interval must be positive, "+
			"have %d", n)
	}
	if object == nil || filename == nil {
		return nil, fmt.Errorf("newNTrial: object and filename must be " +
			"non-nil")
	}

	return &nTrial{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the Checkpointer's tracked object by calling its
// Save() method if t ends the Nth training trial
func (n *nTrial) Checkpoint(t ts.TimeStep) error {
	if !t.Last() || t.Testing {
		return nil
	}

	n.trials++
	if n.trials%n.interval == 0 {
		return n.object.Save(n.filename())
	}
	return nil
}
