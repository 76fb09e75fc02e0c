package qtable

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/samuelfneumann/smartcab/agent/tabular/state"
	env "github.com/samuelfneumann/smartcab/environment"
)

// snapshot is the gob representation of a QTable
type snapshot struct {
	Actions []env.Action
	States  []state.State
	Values  [][]float64
}

// GobEncode implements the gob.GobEncoder interface
func (q *QTable) GobEncode() ([]byte, error) {
	states := q.States()
	values := make([][]float64, len(states))
	for i, s := range states {
		values[i] = q.rows[s]
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	err := enc.Encode(snapshot{Actions: q.actions, States: states,
		Values: values})
	if err != nil {
		return nil, fmt.Errorf("gobEncode: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. Any rows already
// in the table are discarded.
func (q *QTable) GobDecode(data []byte) error {
	var snap snapshot
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&snap); err != nil {
		return fmt.Errorf("gobDecode: %v", err)
	}

	if len(snap.States) != len(snap.Values) {
		return fmt.Errorf("gobDecode: %d states but %d rows",
			len(snap.States), len(snap.Values))
	}

	table, err := New(snap.Actions)
	if err != nil {
		return fmt.Errorf("gobDecode: %v", err)
	}
	for i, s := range snap.States {
		if len(snap.Values[i]) != len(snap.Actions) {
			return fmt.Errorf("gobDecode: row %v has %d values, want %d", s,
				len(snap.Values[i]), len(snap.Actions))
		}
		table.rows[s] = snap.Values[i]
	}

	*q = *table
	return nil
}

// Save saves the QTable to a file
func (q *QTable) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}

	if err := gob.NewEncoder(file).Encode(q); err != nil {
		file.Close()
		return fmt.Errorf("save: could not encode table: %v", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	return nil
}

// Load loads a QTable previously saved with Save
func Load(filename string) (*QTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	q := &QTable{}
	if err := gob.NewDecoder(file).Decode(q); err != nil {
		return nil, fmt.Errorf("load: could not decode table: %v", err)
	}
	return q, nil
}

// WriteTo writes a human readable listing of the table, one block per
// state in deterministic order
func (q *QTable) WriteTo(w io.Writer) (int64, error) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	cw := &countWriter{w: tw}

	fmt.Fprintf(cw, "/-----------------------------------------\n")
	fmt.Fprintf(cw, "| State-action values (%d states)\n", q.Len())
	fmt.Fprintf(cw, "\\-----------------------------------------\n\n")

	for _, s := range q.States() {
		fmt.Fprintf(cw, "%v\n", s)
		for i, a := range q.actions {
			fmt.Fprintf(cw, " -- %v\t: %.2f\n", a, q.rows[s][i])
		}
		fmt.Fprintln(cw)
	}

	if cw.err != nil {
		return cw.n, cw.err
	}
	return cw.n, tw.Flush()
}

// countWriter counts bytes written and remembers the first error
type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
