// Package qtable implements a lazily populated table of action values
// keyed by discrete states.
package qtable

import (
	"fmt"
	"sort"

	"github.com/samuelfneumann/smartcab/agent/tabular/state"
	env "github.com/samuelfneumann/smartcab/environment"
	"github.com/samuelfneumann/smartcab/utils/floatutils"
)

// QTable maps states to the estimated value of each action in that
// state. Rows are created on demand by Ensure; a state that was never
// ensured has no row, which is distinct from a row whose values are
// all zero.
//
// A QTable is owned by a single agent and is not safe for concurrent
// use.
type QTable struct {
	actions []env.Action
	index   map[env.Action]int
	rows    map[state.State][]float64
}

// New returns a new, empty QTable over the argument actions. The order
// of actions is kept by every method that returns actions.
func New(actions []env.Action) (*QTable, error) {
	if len(actions) == 0 {
		return nil, fmt.Errorf("new: at least one action is required")
	}

	index := make(map[env.Action]int, len(actions))
	for i, a := range actions {
		if !a.Valid() {
			return nil, fmt.Errorf("new: illegal action %v", a)
		}
		if _, ok := index[a]; ok {
			return nil, fmt.Errorf("new: duplicate action %v", a)
		}
		index[a] = i
	}

	tableActions := make([]env.Action, len(actions))
	copy(tableActions, actions)

	return &QTable{
		actions: tableActions,
		index:   index,
		rows:    make(map[state.State][]float64),
	}, nil
}

// Actions returns the actions the table stores values for
func (q *QTable) Actions() []env.Action {
	actions := make([]env.Action, len(q.actions))
	copy(actions, q.actions)
	return actions
}

// Len returns the number of states in the table
func (q *QTable) Len() int {
	return len(q.rows)
}

// Has returns whether s has a row in the table
func (q *QTable) Has(s state.State) bool {
	_, ok := q.rows[s]
	return ok
}

// Ensure creates a row for s with every action valued at 0.0 if s has
// no row yet. Existing rows are left untouched. Ensure returns whether
// a row was created.
func (q *QTable) Ensure(s state.State) bool {
	if _, ok := q.rows[s]; ok {
		return false
	}
	q.rows[s] = make([]float64, len(q.actions))
	return true
}

// MaxValue returns the largest action value recorded for s. If s has
// no row, ok is false and the returned value should not be used.
func (q *QTable) MaxValue(s state.State) (value float64, ok bool) {
	row, ok := q.rows[s]
	if !ok {
		return 0, false
	}

	value, _ = floatutils.MaxSlice(row)
	return value, true
}

// BestActions returns every action whose value equals MaxValue(s), in
// table order. If s has no row, BestActions returns nil.
func (q *QTable) BestActions(s state.State) []env.Action {
	row, ok := q.rows[s]
	if !ok {
		return nil
	}

	_, indices := floatutils.MaxSlice(row)
	best := make([]env.Action, len(indices))
	for i, index := range indices {
		best[i] = q.actions[index]
	}
	return best
}

// Value returns the value of taking action a in state s
func (q *QTable) Value(s state.State, a env.Action) (float64, error) {
	row, i, err := q.cell("value", s, a)
	if err != nil {
		return 0, err
	}
	return row[i], nil
}

// SetValue sets the value of taking action a in state s. SetValue
// returns an error if s was never created with Ensure.
func (q *QTable) SetValue(s state.State, a env.Action, value float64) error {
	row, i, err := q.cell("setValue", s, a)
	if err != nil {
		return err
	}
	row[i] = value
	return nil
}

// Row returns a copy of the action values of s, ordered as Actions().
// If s has no row, ok is false.
func (q *QTable) Row(s state.State) (values []float64, ok bool) {
	row, ok := q.rows[s]
	if !ok {
		return nil, false
	}

	values = make([]float64, len(row))
	copy(values, row)
	return values, true
}

// States returns all states in the table in a deterministic order
func (q *QTable) States() []state.State {
	states := make([]state.State, 0, len(q.rows))
	for s := range q.rows {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Less(states[j])
	})
	return states
}

func (q *QTable) cell(op string, s state.State, a env.Action) ([]float64,
	int, error) {
	row, ok := q.rows[s]
	if !ok {
		return nil, 0, &Error{Op: op, Err: ErrUnknownState}
	}

	i, ok := q.index[a]
	if !ok {
		return nil, 0, &Error{Op: op, Err: ErrUnknownAction}
	}
	return row, i, nil
}
