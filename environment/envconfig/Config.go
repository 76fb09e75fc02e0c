// Package envconfig provides configuration structs for configuring
// environments with default parameters. Environment configurations in
// this package are JSON and YAML serializable.
package envconfig

import (
	"fmt"

	"github.com/samuelfneumann/smartcab/environment/planner"
	"github.com/samuelfneumann/smartcab/environment/smartcab"
	ts "github.com/samuelfneumann/smartcab/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Smartcab EnvName = "Smartcab"
)

// Config implements a specific configuration of a specific environment
type Config struct {
	Environment     EnvName `json:"environment" yaml:"environment"`
	Columns         int     `json:"columns" yaml:"columns"`
	Rows            int     `json:"rows" yaml:"rows"`
	Dummies         int     `json:"dummies" yaml:"dummies"`
	EnforceDeadline bool    `json:"enforceDeadline" yaml:"enforceDeadline"`
	HardTimeLimit   int     `json:"hardTimeLimit" yaml:"hardTimeLimit"`
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, columns, rows, dummies int,
	enforceDeadline bool, hardTimeLimit int) Config {
	return Config{
		Environment:     envName,
		Columns:         columns,
		Rows:            rows,
		Dummies:         dummies,
		EnforceDeadline: enforceDeadline,
		HardTimeLimit:   hardTimeLimit,
	}
}

// DefaultConfig returns the Config of the default Smartcab environment
func DefaultConfig() Config {
	return NewConfig(Smartcab, smartcab.DefaultColumns,
		smartcab.DefaultRows, smartcab.DefaultDummies, false,
		smartcab.DefaultHardTimeLimit)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Environment != Smartcab {
		return fmt.Errorf("validate: no such environment %q", c.Environment)
	}
	if c.Columns <= 0 || c.Rows <= 0 {
		return fmt.Errorf("validate: grid dimensions must be positive, "+
			"have %d x %d", c.Columns, c.Rows)
	}
	if c.Dummies < 0 {
		return fmt.Errorf("validate: dummies must be non-negative, have %d",
			c.Dummies)
	}
	if c.HardTimeLimit > 0 {
		return fmt.Errorf("validate: hard time limit must be "+
			"non-positive, have %d", c.HardTimeLimit)
	}
	return nil
}

// Create returns the environment described by the Config together with
// a route planner for the environment's primary agent
func (c Config) Create(seed uint64) (*smartcab.Smartcab,
	*planner.RoutePlanner, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("create: %v", err)
	}

	switch c.Environment {
	case Smartcab:
		return CreateSmartcab(c.Columns, c.Rows, c.Dummies,
			c.EnforceDeadline, c.HardTimeLimit, seed)
	}

	panic(fmt.Sprintf("create: cannot create environment %v, no such "+
		"environment", c.Environment))
}

// CreateSmartcab is a factory for creating the Smartcab environment
// and its primary agent's route planner
func CreateSmartcab(columns, rows, dummies int, enforceDeadline bool,
	hardTimeLimit int, seed uint64) (*smartcab.Smartcab,
	*planner.RoutePlanner, error) {
	e, err := smartcab.New(columns, rows, dummies, enforceDeadline,
		hardTimeLimit, seed)
	if err != nil {
		return nil, nil, fmt.Errorf("createSmartcab: %v", err)
	}

	p, err := planner.New(e, smartcab.Primary)
	if err != nil {
		return nil, nil, fmt.Errorf("createSmartcab: %v", err)
	}

	return e, p, nil
}

// EndTypes returns the ways in which a trial of the configured
// environment may end
func (c Config) EndTypes() []ts.EndType {
	ends := []ts.EndType{ts.Destination, ts.LateArrival, ts.HardLimit}
	if c.EnforceDeadline {
		ends = append(ends, ts.DeadlineExpired)
	}
	return ends
}
