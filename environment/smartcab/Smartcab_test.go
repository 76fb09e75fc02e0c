package smartcab

import (
	"fmt"
	"math"
	"testing"

	env "github.com/samuelfneumann/smartcab/environment"
	"github.com/samuelfneumann/smartcab/timestep"
)

// scriptedAgent always takes the same action and reports the same
// waypoint
type scriptedAgent struct {
	s           *Smartcab
	action      env.Action
	waypoint    env.Action
	destination env.Location
	testing     bool
	resets      int
	updates     int
}

func (a *scriptedAgent) Reset(destination env.Location, testing bool) {
	a.destination = destination
	a.testing = testing
	a.resets++
}

func (a *scriptedAgent) Update() {
	a.updates++
	a.s.Act(Primary, a.action)
}

func (a *scriptedAgent) NextWaypoint() env.Action {
	return a.waypoint
}

func newTestEnv(t *testing.T, dummies int, enforce bool) (*Smartcab,
	*scriptedAgent) {
	t.Helper()
	s, err := New(DefaultColumns, DefaultRows, dummies, enforce,
		DefaultHardTimeLimit, 7)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	a := &scriptedAgent{s: s, action: env.None, waypoint: env.Forward}
	if err := s.SetPrimaryAgent(a); err != nil {
		t.Fatalf("setPrimaryAgent: %v", err)
	}
	return s, a
}

// place puts agent id at location l facing h
func (s *Smartcab) place(id env.AgentID, l env.Location, h env.Heading) {
	s.states[id].location = l
	s.states[id].heading = h
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		columns, rows, dummies, hardLimit int
	}{
		{0, 6, 0, -100},
		{8, -1, 0, -100},
		{2, 2, 0, -100},
		{8, 6, -1, -100},
		{8, 6, 0, 5},
	}

	for _, test := range tests {
		_, err := New(test.columns, test.rows, test.dummies, false,
			test.hardLimit, 0)
		if err == nil {
			t.Errorf("new: expected error for %+v", test)
		}
	}
}

func TestViolation(t *testing.T) {
	green := env.Inputs{Light: env.Green}
	red := env.Inputs{Light: env.Red}

	tests := []struct {
		inputs env.Inputs
		action env.Action
		want   int
	}{
		{green, env.Forward, NoViolation},
		{red, env.Forward, MajorViolation},
		{env.Inputs{Light: env.Red, Left: env.Forward}, env.Forward,
			MajorAccident},
		{env.Inputs{Light: env.Red, Right: env.Forward}, env.Forward,
			MajorAccident},
		{green, env.Left, NoViolation},
		{red, env.Left, MajorViolation},
		{env.Inputs{Light: env.Red, Oncoming: env.Right}, env.Left,
			MajorAccident},
		{env.Inputs{Light: env.Green, Oncoming: env.Forward}, env.Left,
			MinorAccident},
		{env.Inputs{Light: env.Green, Oncoming: env.Right}, env.Left,
			MinorAccident},
		{env.Inputs{Light: env.Green, Oncoming: env.Left}, env.Left,
			NoViolation},
		{red, env.Right, NoViolation},
		{env.Inputs{Light: env.Red, Left: env.Forward}, env.Right,
			MinorAccident},
		{env.Inputs{Light: env.Green, Left: env.Forward}, env.Right,
			NoViolation},
		{red, env.None, NoViolation},
		{green, env.None, MinorViolation},
		{env.Inputs{Light: env.Green, Oncoming: env.Left}, env.None,
			NoViolation},
	}

	for i, test := range tests {
		t.Run(fmt.Sprintf("%d_%v", i, test.action), func(t *testing.T) {
			if have := Violation(test.inputs, test.action); have != test.want {
				t.Errorf("violation: %+v %v want %d, have %d", test.inputs,
					test.action, test.want, have)
			}
		})
	}
}

func TestRewards(t *testing.T) {
	if p := Penalty(0, 20); p != 0 {
		t.Errorf("penalty: want 0 at start of trial, have %v", p)
	}
	if p := Penalty(20, 0); math.Abs(p-1) > 1e-12 {
		t.Errorf("penalty: want 1 at deadline, have %v", p)
	}
	want := (math.Sqrt(10) - 1) / 9
	if p := Penalty(10, 10); math.Abs(p-want) > 1e-12 {
		t.Errorf("penalty: want %v halfway, have %v", want, p)
	}

	tests := []struct {
		action, waypoint env.Action
		light            env.Light
		want             float64
	}{
		{env.Forward, env.Forward, env.Green, 2},
		{env.Left, env.Forward, env.Green, 1},
		{env.None, env.Forward, env.Red, 2},
		{env.None, env.Right, env.Red, 1},
		{env.None, env.None, env.Green, 2},
	}
	for _, test := range tests {
		have := LegalReward(test.action, test.waypoint, test.light, 0)
		if have != test.want {
			t.Errorf("legalReward: %v towards %v on %v want %v, have %v",
				test.action, test.waypoint, test.light, test.want, have)
		}
	}

	if ViolationReward(MajorAccident) != -40 {
		t.Errorf("violationReward: want -40, have %v",
			ViolationReward(MajorAccident))
	}
}

func TestReset(t *testing.T) {
	s, a := newTestEnv(t, 10, false)

	for trial := 1; trial <= 50; trial++ {
		evaluate := trial%5 == 0
		step := s.Reset(evaluate)

		data := s.TrialData()
		if data.InitialDistance < MinDistance {
			t.Errorf("reset: distance %d < %d", data.InitialDistance,
				MinDistance)
		}
		if data.InitialDeadline != DeadlineFactor*data.InitialDistance {
			t.Errorf("reset: deadline %d for distance %d",
				data.InitialDeadline, data.InitialDistance)
		}
		if !step.First() || step.Deadline != data.InitialDeadline {
			t.Errorf("reset: unexpected first step %v", step)
		}
		if a.destination != s.Destination() || a.testing != evaluate {
			t.Errorf("reset: agent reset with %v, %v", a.destination,
				a.testing)
		}
		if data.Trial != trial || s.Trial() != trial {
			t.Errorf("reset: want trial %d, have %d", trial, data.Trial)
		}

		start, _ := s.Locate(Primary)
		if distance(start, s.Destination()) != data.InitialDistance {
			t.Errorf("reset: start %v not %d from %v", start,
				data.InitialDistance, s.Destination())
		}
	}

	if a.resets != 50 {
		t.Errorf("reset: agent reset %d times, want 50", a.resets)
	}
}

func TestSense(t *testing.T) {
	s, _ := newTestEnv(t, 5, false)
	s.Reset(false)

	here := env.Location{X: 2, Y: 2}
	elsewhere := env.Location{X: 5, Y: 4}
	s.light(here).northSouth = false

	s.place(Primary, here, env.East)
	s.place(1, here, env.West) // Oncoming
	s.dummies[0].nextWaypoint = env.Left
	s.place(2, here, env.West) // Oncoming, must not override left
	s.dummies[1].nextWaypoint = env.Forward
	s.place(3, here, env.North) // From the right
	s.dummies[2].nextWaypoint = env.Forward
	s.place(4, here, env.East) // Same heading, ignored
	s.dummies[3].nextWaypoint = env.Left
	s.place(5, elsewhere, env.South) // Other intersection, ignored
	s.dummies[4].nextWaypoint = env.Forward

	want := env.Inputs{Light: env.Green, Oncoming: env.Left,
		Right: env.Forward}
	if have := s.Sense(Primary); have != want {
		t.Errorf("sense: want %+v, have %+v", want, have)
	}

	// From the left, and the light turns red when travelling north
	s.place(5, here, env.South)
	s.dummies[4].nextWaypoint = env.Right
	want.Left = env.Right
	if have := s.Sense(Primary); have != want {
		t.Errorf("sense: want %+v, have %+v", want, have)
	}

	if have := s.Sense(3).Light; have != env.Red {
		t.Errorf("sense: want red light heading north, have %v", have)
	}
}

func TestActMovesWithWrapAround(t *testing.T) {
	s, _ := newTestEnv(t, 0, false)
	s.Reset(false)
	s.states[Primary].destination = env.Location{X: 3, Y: 3}

	corner := env.Location{X: DefaultColumns - 1, Y: 0}
	s.light(corner).northSouth = false
	s.place(Primary, corner, env.East)

	if r := s.Act(Primary, env.Forward); r != 2 {
		t.Errorf("act: want reward 2, have %v", r)
	}
	location, heading := s.Locate(Primary)
	if want := (env.Location{X: 0, Y: 0}); location != want ||
		heading != env.East {
		t.Errorf("act: want %v East, have %v %v", want, location, heading)
	}

	// Right on red is legal without traffic from the left
	s.light(location).northSouth = false
	s.place(Primary, location, env.North)
	if r := s.Act(Primary, env.Right); r != 1 {
		t.Errorf("act: want reward 1, have %v", r)
	}
	location, heading = s.Locate(Primary)
	if want := (env.Location{X: 1, Y: 0}); location != want ||
		heading != env.East {
		t.Errorf("act: want %v East, have %v %v", want, location, heading)
	}

	data := s.TrialData()
	if data.Actions[NoViolation] != 2 || data.NetReward != 3 {
		t.Errorf("act: unexpected trial data %+v", data)
	}
}

func TestActViolationStaysPut(t *testing.T) {
	s, _ := newTestEnv(t, 0, false)
	s.Reset(false)

	here := env.Location{X: 4, Y: 4}
	s.light(here).northSouth = true
	s.place(Primary, here, env.West)
	s.states[Primary].destination = env.Location{X: 0, Y: 0}

	if r := s.Act(Primary, env.Forward); r != -10 {
		t.Errorf("act: want reward -10, have %v", r)
	}
	if location, heading := s.Locate(Primary); location != here ||
		heading != env.West {
		t.Errorf("act: agent moved to %v %v", location, heading)
	}
	if s.TrialData().Actions[MajorViolation] != 1 {
		t.Errorf("act: violation not counted: %+v", s.TrialData())
	}
}

func TestReachDestination(t *testing.T) {
	for _, deadline := range []int{10, -1} {
		t.Run(fmt.Sprintf("deadline=%d", deadline), func(t *testing.T) {
			s, a := newTestEnv(t, 0, false)
			a.action = env.Forward
			s.Reset(false)

			here := env.Location{X: 1, Y: 1}
			s.light(here).northSouth = false
			s.place(Primary, here, env.East)
			s.states[Primary].destination = env.Location{X: 2, Y: 1}
			s.states[Primary].deadline = deadline

			step := s.Step()
			if !step.Last() {
				t.Fatalf("step: trial should have ended, have %v", step)
			}
			if step.Reward != 2+DestinationReward-Penalty(0, deadline) {
				t.Errorf("step: want reward %v, have %v",
					2+DestinationReward, step.Reward)
			}

			success := deadline >= 0
			if step.Success() != success || s.TrialData().Success != success {
				t.Errorf("step: want success %v, have %v", success,
					step.Success())
			}
			if !success && step.EndType() != timestep.LateArrival {
				t.Errorf("step: want late arrival, have %v", step.EndType())
			}
		})
	}
}

func TestDeadline(t *testing.T) {
	tests := []struct {
		enforce bool
		extra   int
		end     timestep.EndType
	}{
		{true, 1, timestep.DeadlineExpired},
		{false, 1 - DefaultHardTimeLimit, timestep.HardLimit},
	}

	for _, test := range tests {
		t.Run(test.end.String(), func(t *testing.T) {
			s, a := newTestEnv(t, 0, test.enforce)
			first := s.Reset(false)

			var step timestep.TimeStep
			for !step.Last() {
				step = s.Step()
			}

			if want := first.Deadline + test.extra; step.Number != want {
				t.Errorf("step: want %d ticks, have %d", want, step.Number)
			}
			if step.EndType() != test.end {
				t.Errorf("step: want end %v, have %v", test.end,
					step.EndType())
			}
			if a.updates != step.Number {
				t.Errorf("step: agent updated %d times in %d ticks",
					a.updates, step.Number)
			}
			if s.LastTimeStep() != step {
				t.Errorf("lastTimeStep: want %v, have %v", step,
					s.LastTimeStep())
			}

			defer func() {
				if recover() == nil {
					t.Error("step: expected panic after trial ended")
				}
			}()
			s.Step()
		})
	}
}

func TestTrafficLight(t *testing.T) {
	l := trafficLight{northSouth: true, period: 3}

	for tick := 1; tick <= 6; tick++ {
		l.update(tick)
		wantNS := tick < 3 || tick >= 6
		if l.northSouth != wantNS {
			t.Errorf("update: tick %d want north-south %v", tick, wantNS)
		}
	}

	if l.colour(env.North) != env.Green || l.colour(env.East) != env.Red {
		t.Errorf("colour: north-south light shows wrong colours")
	}

	l.reset()
	if l.lastUpdated != 0 {
		t.Errorf("reset: lastUpdated should be 0, have %d", l.lastUpdated)
	}
}

func TestDummyObeysLight(t *testing.T) {
	s, _ := newTestEnv(t, 1, false)
	s.Reset(false)

	here := env.Location{X: 3, Y: 3}
	s.place(Primary, env.Location{X: 0, Y: 0}, env.East)
	s.place(1, here, env.East)
	d := &s.dummies[0]
	d.nextWaypoint = env.Forward

	// Red light, the dummy waits
	s.light(here).northSouth = true
	s.updateDummy(d)
	if location, _ := s.Locate(1); location != here ||
		d.nextWaypoint != env.Forward {
		t.Errorf("updateDummy: dummy ran red light to %v", location)
	}

	// Green light, the dummy drives and picks a new waypoint
	s.light(here).northSouth = false
	s.updateDummy(d)
	if location, _ := s.Locate(1); location != (env.Location{X: 4, Y: 3}) {
		t.Errorf("updateDummy: dummy should have moved, at %v", location)
	}
	if d.nextWaypoint == env.None {
		t.Error("updateDummy: dummy waypoint should never be None")
	}
}

func TestTrialsWithTraffic(t *testing.T) {
	s, a := newTestEnv(t, DefaultDummies, true)

	for trial := 0; trial < 10; trial++ {
		a.action = env.ValidActions()[trial%env.NumActions]
		s.Reset(false)
		for step := s.LastTimeStep(); !step.Last(); {
			step = s.Step()
		}

		for id := 0; id <= s.NumDummies(); id++ {
			l, _ := s.Locate(env.AgentID(id))
			if l.X < 0 || l.X >= DefaultColumns || l.Y < 0 ||
				l.Y >= DefaultRows {
				t.Fatalf("step: agent %d left the grid: %v", id, l)
			}
		}
	}
}
