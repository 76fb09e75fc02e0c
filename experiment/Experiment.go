// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/smartcab/agent"
	"github.com/samuelfneumann/smartcab/agent/tabular/decay"
	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/samuelfneumann/smartcab/environment/envconfig"
	"github.com/samuelfneumann/smartcab/environment/smartcab"
	"github.com/samuelfneumann/smartcab/experiment/checkpointer"
	"github.com/samuelfneumann/smartcab/experiment/tracker"
	ts "github.com/samuelfneumann/smartcab/timestep"
	"github.com/samuelfneumann/smartcab/utils/progressbar"
	"gopkg.in/yaml.v3"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each TimeStep to Trackers, which cache the data in
// RAM to be later saved to disk. The Save() function will then take all
// cached data and save it to disk. This is usually performed after an
// experiment has been run. The Run() method runs training trials until
// the agent has stopped exploring, followed by testing trials. The
// RunTrial() function runs a single trial.
type Experiment interface {
	Run() error
	RunTrial(testing bool) (Result, error)

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)

	// Saves the current state of the agent
	checkpoint(ts.TimeStep) error
}

// Type is a kind of Experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Defaults of an experiment
const (
	DefaultTolerance  = 0.008
	DefaultTestTrials = 20
	DefaultSeed       = 1

	progressWidth = 40
)

// SaveConfig determines which data an experiment saves. Empty
// filenames are not saved. Filenames are relative to Dir.
type SaveConfig struct {
	Dir string `yaml:"dir"`

	// QTable is the name of the text dump of the final table
	QTable string `yaml:"qtable"`

	// Table is the name of the gob encoded final table, which can be
	// loaded to continue an experiment
	Table string `yaml:"table"`

	// TrialLog is the name of the CSV file of per-trial results
	TrialLog string `yaml:"trialLog"`

	// Return, Success, and EpisodeLength name the gob encoded data of
	// the corresponding Trackers, which track testing trials only
	Return        string `yaml:"return"`
	Success       string `yaml:"success"`
	EpisodeLength string `yaml:"episodeLength"`

	// CheckpointEvery saves the table every this many training trials
	// if positive
	CheckpointEvery int `yaml:"checkpointEvery"`

	// TimestampCheckpoints names checkpoints by the time they were saved
	// rather than numbering them
	TimestampCheckpoints bool `yaml:"timestampCheckpoints"`
}

// path returns the path of filename in the save directory
func (s SaveConfig) path(filename string) string {
	return filepath.Join(s.Dir, filename)
}

// Config represents a configuration of an experiment.
type Config struct {
	Type       `yaml:"type"`
	Seed       uint64  `yaml:"seed"`
	Tolerance  float64 `yaml:"tolerance"`
	TestTrials int     `yaml:"testTrials"`

	// MaxTrials bounds the number of training trials if positive
	MaxTrials int `yaml:"maxTrials"`

	EnvConf   envconfig.Config      `yaml:"environment"`
	AgentConf agent.TypedConfigList `yaml:"agent"`
	Save      SaveConfig            `yaml:"save"`

	// Progress displays a progress bar on stderr while running
	Progress bool `yaml:"progress"`
}

// DefaultConfig returns the Config of an online experiment on the
// default Smartcab environment with an enforced deadline
func DefaultConfig(agentConf agent.TypedConfigList) Config {
	envConf := envconfig.DefaultConfig()
	envConf.EnforceDeadline = true

	return Config{
		Type:       OnlineExp,
		Seed:       DefaultSeed,
		Tolerance:  DefaultTolerance,
		TestTrials: DefaultTestTrials,
		EnvConf:    envConf,
		AgentConf:  agentConf,
		Save: SaveConfig{
			Dir:      ".",
			QTable:   "qtable.txt",
			TrialLog: "trials.csv",
		},
	}
}

// LoadConfig reads a Config from the YAML file at path. Fields missing
// from the file take the values of base.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}

	c := base
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not parse %v: %v",
			path, err)
	}
	return c, nil
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("validate: no such experiment type %v", c.Type)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("validate: tolerance must be non-negative, "+
			"have %v", c.Tolerance)
	}
	if c.TestTrials < 0 || c.MaxTrials < 0 {
		return fmt.Errorf("validate: trial counts must be non-negative")
	}
	if c.Tolerance == 0 && c.MaxTrials == 0 {
		return fmt.Errorf("validate: a tolerance of 0 requires a bound " +
			"on the number of training trials")
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: environment: %v", err)
	}
	if c.AgentConf.ConfigList == nil || c.AgentConf.Len() == 0 {
		return fmt.Errorf("validate: no agent configurations")
	}

	// Without a bound on training trials, every agent must stop
	// exploring or Run never reaches the testing trials
	if c.MaxTrials == 0 {
		for i := 0; i < c.AgentConf.Len(); i++ {
			if err := c.checkExploration(i); err != nil {
				return fmt.Errorf("validate: agent configuration %d: %v", i,
					err)
			}
		}
	}
	return nil
}

// explorer is an agent Config whose exploration rate decays on a
// known schedule
type explorer interface {
	Exploration() (float64, decay.Schedule, error)
}

// checkExploration returns an error if the exploration rate of the
// agent configuration at index i never falls below the tolerance
func (c Config) checkExploration(i int) error {
	e, ok := c.AgentConf.At(i).(explorer)
	if !ok {
		return fmt.Errorf("exploration schedule unknown, a bound on the " +
			"number of training trials is required")
	}

	epsilon, schedule, err := e.Exploration()
	if err != nil {
		return err
	}
	if epsilon < c.Tolerance {
		return nil
	}
	if _, ok := decay.EpisodesUntil(schedule, c.Tolerance,
		maxExpectedTrials); !ok {
		return fmt.Errorf("exploration rate does not fall below tolerance "+
			"%v within %d trials", c.Tolerance, maxExpectedTrials)
	}
	return nil
}

// CreateExp creates the experiment which runs the agent with the
// hyperparameter setting at index i of the Config's agent
// configurations. If table is non-nil, the agent starts with the
// learned values in table.
func (c Config) CreateExp(i int, table *qtable.QTable,
	logger *slog.Logger) (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}
	if i < 0 || i >= c.AgentConf.Len() {
		return nil, fmt.Errorf("createExp: no agent configuration %d, "+
			"have %d", i, c.AgentConf.Len())
	}
	if logger == nil {
		logger = slog.Default()
	}

	if c.Save.Dir != "" {
		if err := os.MkdirAll(c.Save.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("createExp: %v", err)
		}
	}

	e, p, err := c.EnvConf.Create(c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}
	e.SetLogger(logger)

	a, err := c.AgentConf.At(i).CreateAgent(e, smartcab.Primary, p, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %v", err)
	}
	if err := e.SetPrimaryAgent(a); err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}
	if l, ok := a.(interface{ SetLogger(*slog.Logger) }); ok {
		l.SetLogger(logger)
	}

	if table != nil {
		t, ok := a.(Tabular)
		if !ok {
			return nil, fmt.Errorf("createExp: agent %T has no table", a)
		}
		if err := t.SetTable(table); err != nil {
			return nil, fmt.Errorf("createExp: %v", err)
		}
	}

	var trackers []tracker.Tracker
	for _, t := range []struct {
		filename string
		create   func(string) tracker.Tracker
	}{
		{c.Save.Return, func(f string) tracker.Tracker {
			return tracker.NewReturn(f)
		}},
		{c.Save.Success, func(f string) tracker.Tracker {
			return tracker.NewSuccess(f)
		}},
		{c.Save.EpisodeLength, func(f string) tracker.Tracker {
			return tracker.NewEpisodeLength(f)
		}},
	} {
		if t.filename != "" {
			trackers = append(trackers,
				tracker.Testing(t.create(c.Save.path(t.filename))))
		}
	}

	var checkpointers []checkpointer.Checkpointer
	if c.Save.CheckpointEvery > 0 {
		t, ok := a.(Tabular)
		if !ok {
			return nil, fmt.Errorf("createExp: cannot checkpoint agent %T", a)
		}
		filename := checkpointer.FilenameEnumerator(0,
			c.Save.path("checkpoint"), ".bin")
		if c.Save.TimestampCheckpoints {
			filename = checkpointer.FileTimer(c.Save.path("checkpoint"), ".bin")
		}
		check, err := checkpointer.NewNTrial(c.Save.CheckpointEvery,
			t.Table(), filename)
		if err != nil {
			return nil, fmt.Errorf("createExp: %v", err)
		}
		checkpointers = append(checkpointers, check)
	}

	switch c.Type {
	case OnlineExp:
		o, err := NewOnline(e, a, c.Tolerance, c.TestTrials, c.MaxTrials,
			trackers, checkpointers)
		if err != nil {
			return nil, fmt.Errorf("createExp: %v", err)
		}
		o.SetLogger(logger)
		if c.Progress {
			o.SetProgressBar(progressbar.NewManualProgressBar(os.Stderr,
				progressWidth, c.TestTrials))
		}
		return o, nil
	}

	panic(fmt.Sprintf("createExp: no such experiment type %v", c.Type))
}

// SaveResults saves the data of a finished experiment as configured by
// the Config
func (c Config) SaveResults(o *Online) error {
	if err := o.Save(); err != nil {
		return fmt.Errorf("saveResults: %v", err)
	}

	if c.Save.TrialLog != "" {
		if err := o.WriteTrialLog(c.Save.path(c.Save.TrialLog)); err != nil {
			return fmt.Errorf("saveResults: %v", err)
		}
	}

	t, ok := o.Agent().(Tabular)
	if !ok {
		return nil
	}

	if c.Save.Table != "" {
		if err := t.Table().Save(c.Save.path(c.Save.Table)); err != nil {
			return fmt.Errorf("saveResults: %v", err)
		}
	}

	if c.Save.QTable != "" {
		err := writeFile(c.Save.path(c.Save.QTable), func(w io.Writer) error {
			_, err := t.Table().WriteTo(w)
			return err
		})
		if err != nil {
			return fmt.Errorf("saveResults: %v", err)
		}
	}
	return nil
}

// writeFile creates filename and fills it with write. Errors from
// closing the file are returned, since they may report a failed write.
func writeFile(filename string, write func(io.Writer) error) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
