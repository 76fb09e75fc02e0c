package qlearning

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/smartcab/agent"
	"github.com/samuelfneumann/smartcab/agent/tabular/decay"
	env "github.com/samuelfneumann/smartcab/environment"
	"github.com/samuelfneumann/smartcab/utils/floatutils"
	"gopkg.in/yaml.v3"
)

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.EGreedyQLearningTabular, ConfigList{})
}

// DefaultEpsilonDecay is the default exploration schedule, ε = e^(-0.006 t)
var DefaultEpsilonDecay = decay.Config{Type: decay.ExponentialType,
	Rate: 0.006}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	Learning     []bool         `yaml:"learning"`
	Epsilon      []float64      `yaml:"epsilon"`
	Alpha        []float64      `yaml:"alpha"`
	EpsilonDecay []decay.Config `yaml:"epsilonDecay"`
	AlphaDecay   []decay.Config `yaml:"alphaDecay"`
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be JSON serialized/deserialized without
// knowing the underlying concrete type.
func NewConfigList(learning []bool, ɛ, α []float64, ɛDecay,
	αDecay []decay.Config) agent.TypedConfigList {
	config := ConfigList{
		Learning:     learning,
		Epsilon:      ɛ,
		Alpha:        α,
		EpsilonDecay: ɛDecay,
		AlphaDecay:   αDecay,
	}
	return agent.NewTypedConfigList(config)
}

// UnmarshalYAML implements the yaml.Unmarshaler interface. Fields
// that are omitted take a single default value: a learning agent, the
// default exploration schedule, and a fixed learning rate.
func (c *ConfigList) UnmarshalYAML(node *yaml.Node) error {
	type plain ConfigList
	var list plain
	if err := node.Decode(&list); err != nil {
		return err
	}

	if len(list.Learning) == 0 {
		list.Learning = []bool{true}
	}
	if len(list.EpsilonDecay) == 0 {
		list.EpsilonDecay = []decay.Config{DefaultEpsilonDecay}
	}
	if len(list.AlphaDecay) == 0 {
		list.AlphaDecay = []decay.Config{{}}
	}

	*c = ConfigList(list)
	return nil
}

// Config returns an empty Config that is of the type stored by
// ConfigList
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of agent that can be constructed by Config's
// stored by the list
func (c ConfigList) Type() agent.Type {
	return c.Config().Type()
}

// NumFields returns the number of settable fields for the ConfigList
func (c ConfigList) NumFields() int {
	rValue := reflect.ValueOf(c)
	return rValue.NumField()
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return len(c.Learning) * len(c.Epsilon) * len(c.Alpha) *
		len(c.EpsilonDecay) * len(c.AlphaDecay)
}

// Config represents a configuration for the QLearning agent
type Config struct {
	Learning bool    // Whether the agent learns or acts randomly
	Epsilon  float64 // Exploration rate before the first trial
	Alpha    float64 // Learning rate

	// EpsilonDecay determines the exploration rate of each trial
	EpsilonDecay decay.Config

	// AlphaDecay determines the learning rate of each trial. If its
	// Type is empty, the learning rate stays fixed at Alpha.
	AlphaDecay decay.Config
}

// DefaultConfig returns the Config of a learning agent that starts
// fully exploratory and decays ε exponentially
func DefaultConfig() Config {
	return Config{
		Learning:     true,
		Epsilon:      1.0,
		Alpha:        0.5,
		EpsilonDecay: DefaultEpsilonDecay,
	}
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(e env.Environment, id env.AgentID,
	p env.Planner, seed uint64) (agent.Agent, error) {
	return New(e, id, p, c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if !floatutils.InInterval(c.Epsilon, floatutils.Unit) {
		return fmt.Errorf("epsilon must be in [0, 1], have %v", c.Epsilon)
	}
	if !floatutils.InInterval(c.Alpha, floatutils.Unit) {
		return fmt.Errorf("alpha must be in [0, 1], have %v", c.Alpha)
	}
	if err := c.EpsilonDecay.Validate(); err != nil {
		return fmt.Errorf("epsilon decay: %v", err)
	}
	if c.AlphaDecay.Type != "" {
		if err := c.AlphaDecay.Validate(); err != nil {
			return fmt.Errorf("alpha decay: %v", err)
		}
	}
	return nil
}

// Exploration returns the exploration rate before the first trial and
// the schedule which sets the exploration rate of each later trial
func (c Config) Exploration() (float64, decay.Schedule, error) {
	s, err := c.EpsilonDecay.Create()
	if err != nil {
		return 0, nil, fmt.Errorf("exploration: %v", err)
	}
	return c.Epsilon, s, nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyQLearningTabular
}
