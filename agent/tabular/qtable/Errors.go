package qtable

import "errors"

// Error implements errors unique to a QTable
type Error struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrUnknownState is reported when a state with no row is accessed
var ErrUnknownState = errors.New("unknown state")

// ErrUnknownAction is reported when an action that the table does not
// store values for is accessed
var ErrUnknownAction = errors.New("unknown action")

// IsUnknownState returns whether or not an error reports that a state
// has no row in a QTable.
func IsUnknownState(err error) bool {
	return errors.Is(err, ErrUnknownState)
}
