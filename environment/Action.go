package environment

import (
	"fmt"
)

// Action is a driving action. The zero Action is None, which means the
// agent stays at its intersection. Actions also describe the intentions
// of other vehicles and the heading suggested by a route planner.
type Action uint8

const (
	None Action = iota
	Forward
	Left
	Right
)

// NumActions is the number of distinct Actions
const NumActions = 4

// validActions is ordered as actions are enumerated by the environment
var validActions = []Action{None, Forward, Left, Right}

// ValidActions returns all legal actions in their canonical order
func ValidActions() []Action {
	actions := make([]Action, len(validActions))
	copy(actions, validActions)
	return actions
}

// Valid returns whether a is a legal Action
func (a Action) Valid() bool {
	return a <= Right
}

func (a Action) String() string {
	switch a {
	case None:
		return "None"
	case Forward:
		return "forward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// ParseAction returns the Action named by s
func ParseAction(s string) (Action, error) {
	switch s {
	case "None", "none", "":
		return None, nil
	case "forward":
		return Forward, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return None, fmt.Errorf("parseAction: no such action %q", s)
}

// MarshalText implements the encoding.TextMarshaler interface
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("marshalText: illegal action %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (a *Action) UnmarshalText(text []byte) error {
	action, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = action
	return nil
}

// Light is the colour of a traffic light as seen by an agent
type Light uint8

const (
	Red Light = iota
	Green
)

// Valid returns whether l is a legal Light
func (l Light) Valid() bool {
	return l <= Green
}

func (l Light) String() string {
	switch l {
	case Red:
		return "red"
	case Green:
		return "green"
	}
	return fmt.Sprintf("Light(%d)", uint8(l))
}

// Location is the position of an intersection in the grid
type Location struct {
	X, Y int
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.X, l.Y)
}

// Heading is a unit direction of travel. Y increases southwards, so
// East is (1, 0) and South is (0, 1).
type Heading struct {
	DX, DY int
}

var (
	East  = Heading{1, 0}
	South = Heading{0, 1}
	West  = Heading{-1, 0}
	North = Heading{0, -1}
)

// Headings returns every legal heading
func Headings() []Heading {
	return []Heading{East, South, West, North}
}

// TurnLeft returns the heading after a left turn
func (h Heading) TurnLeft() Heading {
	return Heading{h.DY, -h.DX}
}

// TurnRight returns the heading after a right turn
func (h Heading) TurnRight() Heading {
	return Heading{-h.DY, h.DX}
}

// Opposite returns whether h and other point in opposite directions
func (h Heading) Opposite(other Heading) bool {
	return h.DX*other.DX+h.DY*other.DY == -1
}

// Vertical returns whether h points north or south
func (h Heading) Vertical() bool {
	return h.DY != 0
}

func (h Heading) String() string {
	switch h {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case North:
		return "North"
	}
	return fmt.Sprintf("Heading(%d, %d)", h.DX, h.DY)
}
