// Package smartcab implements a grid world of intersections with
// traffic lights and traffic, through which a primary agent drives to
// a destination.
//
// The grid wraps around at its edges. Each intersection has a traffic
// light which periodically switches between allowing north-south and
// east-west traffic. Dummy agents wander the grid at random, obeying
// the rules of the road. Each trial the primary agent starts at a
// random intersection and is given a destination and a deadline; the
// trial ends when the agent reaches its destination or runs out of
// time.
package smartcab

import (
	"fmt"
	"log/slog"

	env "github.com/samuelfneumann/smartcab/environment"
	"github.com/samuelfneumann/smartcab/timestep"
)

// Default parameters of the environment
const (
	DefaultColumns       = 8
	DefaultRows          = 6
	DefaultDummies       = 100
	DefaultHardTimeLimit = -100
)

const (
	// Primary is the AgentID of the primary agent
	Primary env.AgentID = 0

	// MinDistance is the minimum distance between the start and
	// destination of the primary agent
	MinDistance = 4

	// DeadlineFactor is the number of ticks allowed per unit distance
	// between the start and destination
	DeadlineFactor = 5
)

// agentState is the position of an agent in the grid
type agentState struct {
	location    env.Location
	heading     env.Heading
	destination env.Location
	deadline    int
}

// TrialData summarizes the primary agent's performance in a trial
type TrialData struct {
	Trial           int
	Testing         bool
	InitialDistance int
	InitialDeadline int
	FinalDeadline   int
	NetReward       float64

	// Actions counts the actions taken in each violation class, with
	// legal actions counted at index NoViolation
	Actions [NumViolationClasses]int

	Success bool
}

// Smartcab implements the smartcab traffic world
type Smartcab struct {
	columns, rows int
	lights        []trafficLight
	states        []agentState // Indexed by AgentID
	dummies       []dummy
	primary       env.Agent
	actions       []env.Action

	locations *env.CategoricalStarter
	headings  *env.CategoricalStarter
	waypoints *env.CategoricalStarter

	enders   []env.Ender
	t        int
	trial    int
	testing  bool
	arrived  bool
	reward   float64 // Reward of the primary agent on the current tick
	data     TrialData
	lastStep timestep.TimeStep

	logger *slog.Logger
}

// New returns a new Smartcab environment with a grid of columns x rows
// intersections and the given number of dummy agents. Trials always end
// when the primary agent's deadline falls to hardTimeLimit. If
// enforceDeadline is true, trials end as soon as the deadline is
// reached instead.
//
// The primary agent must be set with SetPrimaryAgent before the first
// call to Reset.
func New(columns, rows, dummies int, enforceDeadline bool,
	hardTimeLimit int, seed uint64) (*Smartcab, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("new: grid dimensions must be positive, "+
			"have %d x %d", columns, rows)
	}
	if columns+rows-2 < MinDistance {
		return nil, fmt.Errorf("new: grid of %d x %d too small for a "+
			"route of length %d", columns, rows, MinDistance)
	}
	if dummies < 0 {
		return nil, fmt.Errorf("new: number of dummies must be "+
			"non-negative, have %d", dummies)
	}
	if hardTimeLimit > 0 {
		return nil, fmt.Errorf("new: hard time limit must be non-positive, "+
			"have %d", hardTimeLimit)
	}

	locations, err := env.NewCategoricalStarter([]int{columns, rows}, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	headings, err := env.NewCategoricalStarter([]int{len(env.Headings())},
		seed+1)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	waypoints, err := env.NewCategoricalStarter([]int{env.NumActions - 1},
		seed+2)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	// Each light samples its initial state and its period
	lightStarter, err := env.NewCategoricalStarter(
		[]int{2, maxPeriod - minPeriod + 1}, seed+3)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	lights := make([]trafficLight, columns*rows)
	for i := range lights {
		sample := lightStarter.Start()
		lights[i] = trafficLight{
			northSouth: sample[0] == 1,
			period:     minPeriod + sample[1],
		}
	}

	enders := []env.Ender{
		env.NewDeadlineLimit(hardTimeLimit, timestep.HardLimit),
	}
	if enforceDeadline {
		enders = append(enders, env.NewDeadlineLimit(0,
			timestep.DeadlineExpired))
	}

	s := &Smartcab{
		columns:   columns,
		rows:      rows,
		lights:    lights,
		states:    make([]agentState, dummies+1),
		dummies:   make([]dummy, dummies),
		actions:   env.ValidActions(),
		locations: locations,
		headings:  headings,
		waypoints: waypoints,
		enders:    enders,
		logger:    slog.Default(),
	}
	for i := range s.dummies {
		s.dummies[i] = dummy{id: env.AgentID(i + 1)}
	}

	return s, nil
}

// SetLogger sets the logger that the environment reports to
func (s *Smartcab) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// SetPrimaryAgent sets the agent which is driven to a destination each
// trial. The primary agent acts in the environment as AgentID Primary.
func (s *Smartcab) SetPrimaryAgent(a env.Agent) error {
	if a == nil {
		return fmt.Errorf("setPrimaryAgent: agent must be non-nil")
	}
	s.primary = a
	return nil
}

// Reset begins a new trial, placing every agent at a random
// intersection and resetting the primary agent
func (s *Smartcab) Reset(testing bool) timestep.TimeStep {
	if s.primary == nil {
		panic("reset: no primary agent set")
	}

	s.t = 0
	s.arrived = false
	s.testing = testing
	for i := range s.lights {
		s.lights[i].reset()
	}

	start := s.locations.Location()
	destination := s.locations.Location()
	for distance(start, destination) < MinDistance {
		start = s.locations.Location()
		destination = s.locations.Location()
	}
	dist := distance(start, destination)
	deadline := dist * DeadlineFactor

	s.states[Primary] = agentState{
		location:    start,
		heading:     s.randomHeading(),
		destination: destination,
		deadline:    deadline,
	}
	for i := range s.dummies {
		s.states[s.dummies[i].id] = agentState{
			location: s.locations.Location(),
			heading:  s.randomHeading(),
		}
		s.dummies[i].nextWaypoint = s.randomWaypoint()
	}

	s.trial++
	s.data = TrialData{
		Trial:           s.trial,
		Testing:         testing,
		InitialDistance: dist,
		InitialDeadline: deadline,
		FinalDeadline:   deadline,
	}

	s.primary.Reset(destination, testing)

	s.logger.Debug("trial started", "trial", s.trial, "start",
		start.String(), "destination", destination.String(), "deadline",
		deadline, "testing", testing)

	s.lastStep = timestep.New(timestep.First, 0, 0, deadline, testing)
	return s.lastStep
}

// Step advances the environment by a single tick. The primary agent is
// updated first, then each dummy agent, then the traffic lights.
func (s *Smartcab) Step() timestep.TimeStep {
	if s.primary == nil {
		panic("step: no primary agent set")
	}
	if s.lastStep.Last() {
		panic("step: trial has ended, Reset must be called")
	}

	s.reward = 0
	s.primary.Update()
	for i := range s.dummies {
		s.updateDummy(&s.dummies[i])
	}
	for i := range s.lights {
		s.lights[i].update(s.t)
	}

	primary := &s.states[Primary]
	step := timestep.New(timestep.Mid, s.reward, s.t+1, primary.deadline,
		s.testing)
	if s.arrived {
		if s.data.Success {
			step.SetEnd(timestep.Destination)
		} else {
			step.SetEnd(timestep.LateArrival)
		}
	} else {
		for _, ender := range s.enders {
			if ender.End(&step) {
				break
			}
		}
	}

	primary.deadline--
	step.Deadline = primary.deadline
	s.t++
	s.lastStep = step

	if step.Last() {
		s.logger.Debug("trial ended", "trial", s.trial, "end",
			step.EndType().String(), "ticks", s.t, "netReward",
			s.data.NetReward, "success", s.data.Success)
	}
	return step
}

// LastTimeStep returns the most recent TimeStep
func (s *Smartcab) LastTimeStep() timestep.TimeStep {
	return s.lastStep
}

// Sense returns what agent id observes at its current intersection:
// its traffic light and the next waypoints of other agents at the
// intersection, grouped by the direction they approach from
func (s *Smartcab) Sense(id env.AgentID) env.Inputs {
	self := s.state(id)
	light := s.light(self.location).colour(self.heading)
	inputs := env.Inputs{Light: light}

	for other := range s.states {
		otherID := env.AgentID(other)
		o := s.states[other]
		if otherID == id || o.location != self.location ||
			o.heading == self.heading {
			continue
		}

		waypoint := s.waypoint(otherID)
		switch {
		case self.heading.Opposite(o.heading):
			if inputs.Oncoming != env.Left {
				inputs.Oncoming = waypoint
			}

		case o.heading == self.heading.TurnLeft():
			// Traffic approaching from the right travels in the
			// direction of our left turn
			if inputs.Right != env.Forward && inputs.Right != env.Left {
				inputs.Right = waypoint
			}

		default:
			if inputs.Left != env.Forward {
				inputs.Left = waypoint
			}
		}
	}

	return inputs
}

// Deadline returns the number of ticks agent id has remaining. Only
// the primary agent has a deadline.
func (s *Smartcab) Deadline(id env.AgentID) int {
	return s.state(id).deadline
}

// Act performs action a for agent id and returns its reward. Illegal
// actions leave the agent where it is.
func (s *Smartcab) Act(id env.AgentID, a env.Action) float64 {
	if !a.Valid() {
		panic(fmt.Sprintf("act: illegal action %v", a))
	}
	state := s.state(id)
	inputs := s.Sense(id)
	waypoint := s.waypoint(id)

	var reward float64
	violation := Violation(inputs, a)
	if violation == NoViolation {
		var penalty float64
		if id == Primary {
			penalty = Penalty(s.t, state.deadline)
		}
		reward = LegalReward(a, waypoint, inputs.Light, penalty)

		if a != env.None {
			state.heading = turn(state.heading, a)
			state.location = s.move(state.location, state.heading)
		}
	} else {
		reward = ViolationReward(violation)
	}

	if id == Primary {
		if state.location == state.destination && !s.arrived {
			reward += DestinationReward
			s.arrived = true
			s.data.Success = state.deadline >= 0
		}
		s.data.FinalDeadline = state.deadline - 1
		s.data.NetReward += reward
		s.data.Actions[violation]++
		s.reward = reward
	}

	return reward
}

// ValidActions returns the actions an agent may take
func (s *Smartcab) ValidActions() []env.Action {
	return s.actions
}

// Locate returns the location and heading of agent id
func (s *Smartcab) Locate(id env.AgentID) (env.Location, env.Heading) {
	state := s.state(id)
	return state.location, state.heading
}

// Destination returns the destination of the primary agent
func (s *Smartcab) Destination() env.Location {
	return s.states[Primary].destination
}

// TrialData returns the summary of the current or most recent trial
func (s *Smartcab) TrialData() TrialData {
	return s.data
}

// Dims returns the number of columns and rows in the grid
func (s *Smartcab) Dims() (columns, rows int) {
	return s.columns, s.rows
}

// NumDummies returns the number of dummy agents
func (s *Smartcab) NumDummies() int {
	return len(s.dummies)
}

// Time returns the number of ticks taken in the current trial
func (s *Smartcab) Time() int {
	return s.t
}

// Trial returns the number of trials started
func (s *Smartcab) Trial() int {
	return s.trial
}

// state returns the state of agent id
func (s *Smartcab) state(id env.AgentID) *agentState {
	if id < 0 || int(id) >= len(s.states) {
		panic(fmt.Sprintf("state: no agent with id %d", id))
	}
	return &s.states[id]
}

// waypoint returns the next waypoint of agent id
func (s *Smartcab) waypoint(id env.AgentID) env.Action {
	if id == Primary {
		if s.primary == nil {
			return env.None
		}
		return s.primary.NextWaypoint()
	}
	return s.dummies[id-1].nextWaypoint
}

// light returns the traffic light at location l
func (s *Smartcab) light(l env.Location) *trafficLight {
	return &s.lights[l.Y*s.columns+l.X]
}

// move returns the location reached by moving one intersection from l
// in direction h, wrapping around the edges of the grid
func (s *Smartcab) move(l env.Location, h env.Heading) env.Location {
	return env.Location{
		X: ((l.X+h.DX)%s.columns + s.columns) % s.columns,
		Y: ((l.Y+h.DY)%s.rows + s.rows) % s.rows,
	}
}

func (s *Smartcab) randomHeading() env.Heading {
	return env.Headings()[s.headings.Start()[0]]
}

// randomWaypoint returns a random action other than None
func (s *Smartcab) randomWaypoint() env.Action {
	return s.actions[1+s.waypoints.Start()[0]]
}
