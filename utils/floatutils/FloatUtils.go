// Package floatutils provides utilities for working with rates and
// action values
package floatutils

import (
	"gonum.org/v1/gonum/spatial/r1"
)

// Unit is the closed interval [0, 1], the legal range of exploration
// and learning rates
var Unit = r1.Interval{Min: 0, Max: 1}

// Clip returns value limited to the closed interval
func Clip(value float64, interval r1.Interval) float64 {
	switch {
	case value < interval.Min:
		return interval.Min
	case value > interval.Max:
		return interval.Max
	}
	return value
}

// InInterval returns whether value lies in the closed interval
func InInterval(value float64, interval r1.Interval) bool {
	return value >= interval.Min && value <= interval.Max
}

// MaxSlice returns the maximum of values along with the index of every
// element equal to it, in increasing order. MaxSlice panics if values
// is empty.
func MaxSlice(values []float64) (float64, []int) {
	best := values[0]
	var ties []int
	for i, value := range values {
		switch {
		case value > best:
			best = value
			ties = append(ties[:0], i)
		case value == best:
			ties = append(ties, i)
		}
	}
	return best, ties
}
