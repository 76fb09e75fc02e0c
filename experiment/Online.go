package experiment

import (
	"fmt"
	"log/slog"

	"github.com/samuelfneumann/smartcab/agent"
	"github.com/samuelfneumann/smartcab/agent/tabular/decay"
	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	env "github.com/samuelfneumann/smartcab/environment"
	"github.com/samuelfneumann/smartcab/environment/smartcab"
	"github.com/samuelfneumann/smartcab/experiment/checkpointer"
	"github.com/samuelfneumann/smartcab/experiment/tracker"
	ts "github.com/samuelfneumann/smartcab/timestep"
	"github.com/samuelfneumann/smartcab/utils/progressbar"
)

// maxExpectedTrials bounds the search for the number of training
// trials when no maximum is configured
const maxExpectedTrials = 1_000_000

// Simulator is an environment which drives a primary agent through
// trials and summarizes each trial
type Simulator interface {
	env.Simulator
	TrialData() smartcab.TrialData
}

// Tabular is an agent which stores its learned values in a table
type Tabular interface {
	Table() *qtable.QTable
	SetTable(*qtable.QTable) error
}

// Result summarizes a single trial
type Result struct {
	Trial           int
	Testing         bool
	Epsilon         float64
	Alpha           float64
	Success         bool
	End             ts.EndType
	NetReward       float64
	Ticks           int
	InitialDistance int
	InitialDeadline int
	FinalDeadline   int
	Actions         [smartcab.NumViolationClasses]int
}

// Online is an Experiment that trains an agent online until it stops
// exploring, and then evaluates the agent in testing trials during
// which it neither explores nor learns.
type Online struct {
	sim   Simulator
	agent agent.Agent

	tolerance  float64
	testTrials int
	maxTrials  int

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	results       []Result

	progress *progressbar.ManualProgressBar
	logger   *slog.Logger
}

// NewOnline creates and returns a new online experiment of agent a,
// the primary agent of simulator s. Training trials are run while the
// agent's exploration rate is at least tolerance, up to maxTrials
// trials if maxTrials is positive. Then testTrials testing trials are
// run. The trackers determine which data is saved, and the
// checkpointers save the agent's learned values as training proceeds.
func NewOnline(s Simulator, a agent.Agent, tolerance float64, testTrials,
	maxTrials int, t []tracker.Tracker,
	c []checkpointer.Checkpointer) (*Online, error) {
	if s == nil || a == nil {
		return nil, fmt.Errorf("newOnline: simulator and agent must be " +
			"non-nil")
	}
	if tolerance < 0 || testTrials < 0 || maxTrials < 0 {
		return nil, fmt.Errorf("newOnline: tolerance and trial counts " +
			"must be non-negative")
	}

	return &Online{
		sim:           s,
		agent:         a,
		tolerance:     tolerance,
		testTrials:    testTrials,
		maxTrials:     maxTrials,
		trackers:      t,
		checkpointers: c,
		logger:        slog.Default(),
	}, nil
}

// SetLogger sets the logger that the experiment reports to
func (o *Online) SetLogger(logger *slog.Logger) {
	o.logger = logger
}

// SetProgressBar sets a progress bar which is advanced after each
// trial
func (o *Online) SetProgressBar(p *progressbar.ManualProgressBar) {
	o.progress = p
}

// Register registers a tracker.Tracker with the Experiment so that
// data generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Agent returns the agent of the experiment
func (o *Online) Agent() agent.Agent {
	return o.agent
}

// ExpectedTrainingTrials returns the number of training trials that
// will be run. If the agent's exploration schedule is unknown, ok is
// false.
func (o *Online) ExpectedTrainingTrials() (n int, ok bool) {
	s, known := o.agent.(interface{ EpsilonDecay() decay.Schedule })
	if !known {
		return 0, false
	}
	if o.agent.Epsilon() < o.tolerance {
		return 0, true
	}

	max := o.maxTrials
	if max == 0 {
		max = maxExpectedTrials
	}
	n, ok = decay.EpisodesUntil(s.EpsilonDecay(), o.tolerance, max)
	return n, ok || o.maxTrials > 0
}

// RunTrial runs a single trial of the experiment
func (o *Online) RunTrial(testing bool) (Result, error) {
	step := o.sim.Reset(testing)
	o.track(step)

	for !step.Last() {
		step = o.sim.Step()
		o.track(step)
	}

	if err := o.checkpoint(step); err != nil {
		return Result{}, fmt.Errorf("runTrial: %v", err)
	}

	data := o.sim.TrialData()
	result := Result{
		Trial:           data.Trial,
		Testing:         testing,
		Epsilon:         o.agent.Epsilon(),
		Alpha:           o.agent.Alpha(),
		Success:         data.Success,
		End:             step.EndType(),
		NetReward:       data.NetReward,
		Ticks:           step.Number,
		InitialDistance: data.InitialDistance,
		InitialDeadline: data.InitialDeadline,
		FinalDeadline:   data.FinalDeadline,
		Actions:         data.Actions,
	}
	o.results = append(o.results, result)

	o.logger.Info("trial finished", "trial", result.Trial, "testing",
		testing, "end", result.End.String(), "success", result.Success,
		"netReward", result.NetReward, "ticks", result.Ticks, "epsilon",
		result.Epsilon, "alpha", result.Alpha)

	if o.progress != nil {
		o.progress.Increment()
		o.progress.Display()
	}
	return result, nil
}

// Run runs training trials until the agent's exploration rate falls
// below the tolerance, and then runs the testing trials
func (o *Online) Run() error {
	if o.progress != nil {
		if n, ok := o.ExpectedTrainingTrials(); ok {
			o.progress.SetMax(n + o.testTrials)
		}
		o.progress.SetLabel("training")
	}

	for o.training() {
		if _, err := o.RunTrial(false); err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}

	if o.progress != nil {
		o.progress.SetLabel("testing ")
	}
	for i := 0; i < o.testTrials; i++ {
		if _, err := o.RunTrial(true); err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}

	if o.progress != nil {
		o.progress.Finish()
	}

	summary := o.Summary()
	o.logger.Info("experiment finished", "trainingTrials",
		summary.TrainingTrials, "testingTrials", summary.TestingTrials,
		"trainingSuccess", summary.TrainingSuccessRate, "testingSuccess",
		summary.TestingSuccessRate, "safety", summary.Safety,
		"reliability", summary.Reliability)
	return nil
}

// training returns whether another training trial should be run
func (o *Online) training() bool {
	if o.maxTrials > 0 && o.count(false) >= o.maxTrials {
		return false
	}
	return o.agent.Epsilon() >= o.tolerance
}

// count returns the number of training or testing trials run
func (o *Online) count(testing bool) int {
	n := 0
	for _, r := range o.results {
		if r.Testing == testing {
			n++
		}
	}
	return n
}

// Results returns the result of each trial run so far
func (o *Online) Results() []Result {
	return o.results
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each
// Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// checkpoint passes the timestep to each Checkpointer
func (o *Online) checkpoint(t ts.TimeStep) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return err
		}
	}
	return nil
}
