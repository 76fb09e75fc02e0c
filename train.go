package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samuelfneumann/smartcab/agent/tabular/decay"
	"github.com/samuelfneumann/smartcab/agent/tabular/qlearning"
	"github.com/samuelfneumann/smartcab/agent/tabular/qtable"
	"github.com/samuelfneumann/smartcab/experiment"
	"github.com/spf13/cobra"
)

var (
	configFile string
	loadTable  string
	index      int
	sweep      bool

	flags struct {
		seed            uint64
		tolerance       float64
		testTrials      int
		maxTrials       int
		learning        bool
		epsilon         float64
		alpha           float64
		decayRate       float64
		dummies         int
		enforceDeadline bool
		out             string
		progress        bool
	}
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train an agent online, then evaluate it in testing trials",
	Long: `Train runs training trials until the agent's exploration rate falls
below the tolerance, and then runs testing trials in which the agent
neither explores nor learns.

Settings are read from the configuration file given with -f, and flags
override the file. The configuration file may list several values for
each agent hyperparameter; --index selects one combination and --all
runs every combination, each saved in its own directory.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	f := trainCmd.Flags()
	f.StringVarP(&configFile, "file", "f", "", "experiment configuration "+
		"file (YAML)")
	f.StringVar(&loadTable, "load-table", "", "start from a table saved "+
		"by a previous run")
	f.IntVar(&index, "index", 0, "index of the agent hyperparameter "+
		"combination to run")
	f.BoolVar(&sweep, "all", false, "run every agent hyperparameter "+
		"combination")

	f.Uint64Var(&flags.seed, "seed", experiment.DefaultSeed, "random seed")
	f.Float64Var(&flags.tolerance, "tolerance", experiment.DefaultTolerance,
		"exploration rate below which testing begins")
	f.IntVar(&flags.testTrials, "test-trials", experiment.DefaultTestTrials,
		"number of testing trials")
	f.IntVar(&flags.maxTrials, "max-trials", 0, "maximum number of "+
		"training trials, 0 for no maximum")
	f.BoolVar(&flags.learning, "learning", true, "whether the agent learns")
	f.Float64Var(&flags.epsilon, "epsilon", 1.0, "initial exploration rate")
	f.Float64Var(&flags.alpha, "alpha", 0.5, "learning rate")
	f.Float64Var(&flags.decayRate, "decay-rate",
		qlearning.DefaultEpsilonDecay.Rate, "rate of exponential "+
			"exploration decay")
	f.IntVar(&flags.dummies, "dummies", 100, "number of dummy agents")
	f.BoolVar(&flags.enforceDeadline, "enforce-deadline", true, "end "+
		"trials when the deadline is reached")
	f.StringVarP(&flags.out, "out", "o", ".", "output directory")
	f.BoolVar(&flags.progress, "progress", false, "display a progress bar")
}

// loadConfig builds the experiment configuration from the
// configuration file and the flags that were set
func loadConfig(cmd *cobra.Command) (experiment.Config, error) {
	c := experiment.DefaultConfig(qlearning.NewConfigList(
		[]bool{flags.learning},
		[]float64{flags.epsilon},
		[]float64{flags.alpha},
		[]decay.Config{qlearning.DefaultEpsilonDecay},
		[]decay.Config{{}},
	))

	if configFile != "" {
		var err error
		c, err = experiment.LoadConfig(configFile, c)
		if err != nil {
			return experiment.Config{}, err
		}
	}

	f := cmd.Flags()
	if f.Changed("seed") {
		c.Seed = flags.seed
	}
	if f.Changed("tolerance") {
		c.Tolerance = flags.tolerance
	}
	if f.Changed("test-trials") {
		c.TestTrials = flags.testTrials
	}
	if f.Changed("max-trials") {
		c.MaxTrials = flags.maxTrials
	}
	if f.Changed("dummies") {
		c.EnvConf.Dummies = flags.dummies
	}
	if f.Changed("enforce-deadline") {
		c.EnvConf.EnforceDeadline = flags.enforceDeadline
	}
	if f.Changed("out") {
		c.Save.Dir = flags.out
	}
	if f.Changed("progress") {
		c.Progress = flags.progress
	}

	if err := c.Validate(); err != nil {
		return experiment.Config{}, err
	}
	if index < 0 || index >= c.AgentConf.Len() {
		return experiment.Config{}, fmt.Errorf("no agent configuration %d, "+
			"have %d", index, c.AgentConf.Len())
	}

	// Agent flags replace the configured hyperparameters with the single
	// combination at the selected index
	if f.Changed("learning") || f.Changed("epsilon") ||
		f.Changed("alpha") || f.Changed("decay-rate") {
		agentConf, ok := c.AgentConf.At(index).(qlearning.Config)
		if !ok {
			return experiment.Config{}, fmt.Errorf("agent flags require a "+
				"%v agent", qlearning.DefaultConfig().Type())
		}
		if f.Changed("learning") {
			agentConf.Learning = flags.learning
		}
		if f.Changed("epsilon") {
			agentConf.Epsilon = flags.epsilon
		}
		if f.Changed("alpha") {
			agentConf.Alpha = flags.alpha
		}
		if f.Changed("decay-rate") {
			agentConf.EpsilonDecay = decay.Config{
				Type: decay.ExponentialType,
				Rate: flags.decayRate,
			}
		}

		c.AgentConf = qlearning.NewConfigList(
			[]bool{agentConf.Learning},
			[]float64{agentConf.Epsilon},
			[]float64{agentConf.Alpha},
			[]decay.Config{agentConf.EpsilonDecay},
			[]decay.Config{agentConf.AlphaDecay},
		)
		index = 0
	}

	return c, c.Validate()
}

func runTrain(cmd *cobra.Command, args []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("train: %v", err)
	}

	if loadTable != "" {
		if _, err := os.Stat(loadTable); err != nil {
			return fmt.Errorf("train: %v", err)
		}
	}

	indices := []int{index}
	if sweep {
		indices = indices[:0]
		for i := 0; i < c.AgentConf.Len(); i++ {
			indices = append(indices, i)
		}
	}

	for _, i := range indices {
		run := c
		if sweep {
			run.Save.Dir = filepath.Join(c.Save.Dir, strconv.Itoa(i))
		}
		logger := slog.Default().With("config", i)
		logger.Info("starting experiment", "agent",
			fmt.Sprintf("%+v", c.AgentConf.At(i)), "seed", c.Seed,
			"tolerance", c.Tolerance, "testTrials", c.TestTrials)

		// Every run starts from its own copy of a loaded table
		var start *qtable.QTable
		if loadTable != "" {
			start, err = qtable.Load(loadTable)
			if err != nil {
				return fmt.Errorf("train: %v", err)
			}
		}

		o, err := run.CreateExp(i, start, logger)
		if err != nil {
			return fmt.Errorf("train: %v", err)
		}
		if err := o.Run(); err != nil {
			return fmt.Errorf("train: %v", err)
		}
		if err := run.SaveResults(o); err != nil {
			return fmt.Errorf("train: %v", err)
		}

		printSummary(cmd.OutOrStdout(), i, o.Summary())
	}
	return nil
}

// printSummary prints the summary of a finished experiment
func printSummary(w io.Writer, i int, s experiment.Summary) {
	fmt.Fprintf(w, "Configuration %d\n", i)
	fmt.Fprintf(w, "  training trials:       %d\n", s.TrainingTrials)
	fmt.Fprintf(w, "  training success rate: %.2f\n", s.TrainingSuccessRate)
	fmt.Fprintf(w, "  testing trials:        %d\n", s.TestingTrials)
	fmt.Fprintf(w, "  testing success rate:  %.2f\n", s.TestingSuccessRate)
	fmt.Fprintf(w, "  testing net reward:    %.2f ± %.2f\n",
		s.MeanTestingReward, s.StdTestingReward)
	fmt.Fprintf(w, "  safety rating:         %v\n", s.Safety)
	fmt.Fprintf(w, "  reliability rating:    %v\n", s.Reliability)
}
