package environment

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter samples vectors of integers from a
// multi-dimensional uniform categorical distribution. Dimension i is
// sampled from (0, 1, 2, ... bounds[i]-1).
type CategoricalStarter struct {
	features int
	seed     uint64
	rand     []distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter, sampling
// dimension i from (0, 1, 2, ... bounds[i]-1)
func NewCategoricalStarter(bounds []int, seed uint64) (*CategoricalStarter,
	error) {
	source := rand.NewSource(seed)

	rand := make([]distuv.Categorical, len(bounds))
	for i := range rand {
		if bounds[i] <= 0 {
			return nil, fmt.Errorf("newCategoricalStarter: bound %d must be "+
				"positive, have %d", i, bounds[i])
		}

		// Create the weights for the uniform categorical distribution
		weights := make([]float64, bounds[i])
		for j := range weights {
			weights[j] = 1.0 / float64(len(weights))
		}

		rand[i] = distuv.NewCategorical(weights, source)
	}

	return &CategoricalStarter{len(bounds), seed, rand}, nil
}

// Start returns a sampled vector
func (c *CategoricalStarter) Start() []int {
	start := make([]int, c.features)
	for i := range start {
		start[i] = int(c.rand[i].Rand())
	}
	return start
}

// Location samples a Location from a two-dimensional starter
func (c *CategoricalStarter) Location() Location {
	if c.features != 2 {
		panic(fmt.Sprintf("location: starter must have 2 dimensions, has %d",
			c.features))
	}
	start := c.Start()
	return Location{X: start[0], Y: start[1]}
}

// Seed returns the seed of the starter
func (c *CategoricalStarter) Seed() uint64 {
	return c.seed
}
