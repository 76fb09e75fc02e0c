package state

import (
	"testing"

	env "github.com/samuelfneumann/smartcab/environment"
)

func TestNew(t *testing.T) {
	inputs := env.Inputs{
		Light:    env.Green,
		Oncoming: env.None,
		Left:     env.Forward,
		Right:    env.Right,
	}
	s := New(env.Left, inputs)

	want := State{env.Left, env.Green, env.None, env.Forward, env.Right}
	if s != want {
		t.Errorf("new: want %v, have %v", want, s)
	}
	if s.Inputs() != inputs {
		t.Errorf("inputs: want %+v, have %+v", inputs, s.Inputs())
	}
}

func TestStateIsComparableByValue(t *testing.T) {
	inputs := env.Inputs{Light: env.Red}
	a := New(env.Forward, inputs)
	b := New(env.Forward, inputs)

	m := map[State]int{a: 1}
	if _, ok := m[b]; !ok {
		t.Error("equal states should hash to the same key")
	}

	c := New(env.Right, inputs)
	if _, ok := m[c]; ok {
		t.Error("distinct states should not share a key")
	}
}

func TestNewPanicsOnIllegalValues(t *testing.T) {
	tests := []struct {
		name     string
		waypoint env.Action
		inputs   env.Inputs
	}{
		{"waypoint", env.Action(9), env.Inputs{}},
		{"light", env.None, env.Inputs{Light: env.Light(3)}},
		{"oncoming", env.None, env.Inputs{Oncoming: env.Action(4)}},
		{"left", env.None, env.Inputs{Left: env.Action(7)}},
		{"right", env.None, env.Inputs{Right: env.Action(200)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("new: expected panic on illegal %v", test.name)
				}
			}()
			New(test.waypoint, test.inputs)
		})
	}
}

func TestLess(t *testing.T) {
	a := State{Waypoint: env.None, Light: env.Green}
	b := State{Waypoint: env.Forward, Light: env.Red}

	if !a.Less(b) || b.Less(a) {
		t.Errorf("less: expected %v < %v", a, b)
	}
	if a.Less(a) {
		t.Error("less: a state should not be less than itself")
	}
}
