// Package decay implements schedules that decay a parameter, such as
// the exploration rate of a policy, over the trials of an experiment.
package decay

import (
	"fmt"
	"math"
)

// Schedule computes the value of a decaying parameter as a function of
// a trial counter. Value must be monotonically non-increasing in t for
// t >= 1 and never negative.
type Schedule interface {
	Value(t int) float64
}

// Type names a kind of Schedule
type Type string

const (
	ExponentialType   Type = "Exponential"
	LinearType        Type = "Linear"
	PowerType         Type = "Power"
	InverseSquareType Type = "InverseSquare"
	ConstantType      Type = "Constant"
)

// Exponential decays as exp(-Rate * t)
type Exponential struct {
	Rate float64
}

// Value returns the value of the schedule at trial t
func (e Exponential) Value(t int) float64 {
	return math.Exp(-e.Rate * float64(t))
}

// Linear decays as Initial - Rate * t, clipped below at 0
type Linear struct {
	Initial float64
	Rate    float64
}

// Value returns the value of the schedule at trial t
func (l Linear) Value(t int) float64 {
	return math.Max(l.Initial-l.Rate*float64(t), 0)
}

// Power decays as Base^t for a Base in (0, 1)
type Power struct {
	Base float64
}

// Value returns the value of the schedule at trial t
func (p Power) Value(t int) float64 {
	return math.Pow(p.Base, float64(t))
}

// InverseSquare decays as 1 / t^2
type InverseSquare struct{}

// Value returns the value of the schedule at trial t
func (InverseSquare) Value(t int) float64 {
	if t < 1 {
		return 1
	}
	return 1 / float64(t*t)
}

// Constant never decays
type Constant struct {
	Initial float64
}

// Value returns the constant value of the schedule
func (c Constant) Value(int) float64 {
	return c.Initial
}

// Config describes a Schedule so that it can be serialized. Each Type
// reads only the fields it needs:
//
//	Exponential    rate
//	Linear         initial, rate
//	Power          base
//	InverseSquare  (none)
//	Constant       initial
type Config struct {
	Type    Type    `json:"type" yaml:"type"`
	Rate    float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	Initial float64 `json:"initial,omitempty" yaml:"initial,omitempty"`
	Base    float64 `json:"base,omitempty" yaml:"base,omitempty"`
}

// Validate returns an error describing why the Config is invalid, if
// it is invalid
func (c Config) Validate() error {
	switch c.Type {
	case ExponentialType:
		if c.Rate <= 0 {
			return fmt.Errorf("validate: exponential rate must be positive")
		}
	case LinearType:
		if c.Rate <= 0 {
			return fmt.Errorf("validate: linear rate must be positive")
		}
		if c.Initial < 0 {
			return fmt.Errorf("validate: linear initial value must be " +
				"non-negative")
		}
	case PowerType:
		if c.Base <= 0 || c.Base >= 1 {
			return fmt.Errorf("validate: power base must be in (0, 1), "+
				"have %v", c.Base)
		}
	case InverseSquareType:
	case ConstantType:
		if c.Initial < 0 {
			return fmt.Errorf("validate: constant must be non-negative")
		}
	default:
		return fmt.Errorf("validate: no such schedule type %q", c.Type)
	}
	return nil
}

// Create returns the Schedule described by the Config
func (c Config) Create() (Schedule, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}

	switch c.Type {
	case ExponentialType:
		return Exponential{Rate: c.Rate}, nil
	case LinearType:
		return Linear{Initial: c.Initial, Rate: c.Rate}, nil
	case PowerType:
		return Power{Base: c.Base}, nil
	case InverseSquareType:
		return InverseSquare{}, nil
	default:
		return Constant{Initial: c.Initial}, nil
	}
}

// EpisodesUntil returns the first trial counter t >= 1 at which s falls
// below tolerance. If s does not fall below tolerance within max
// trials, ok is false.
func EpisodesUntil(s Schedule, tolerance float64, max int) (t int, ok bool) {
	for t = 1; t <= max; t++ {
		if s.Value(t) < tolerance {
			return t, true
		}
	}
	return max, false
}
