package floatutils

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestMaxSlice(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		max     float64
		indices []int
	}{
		{"single", []float64{-1}, -1, []int{0}},
		{"unique", []float64{0.1, 0.8, 0.2}, 0.8, []int{1}},
		{"ties", []float64{0.8, 0.8, 0.2, -1.0}, 0.8, []int{0, 1}},
		{"all zero", []float64{0, 0, 0, 0}, 0, []int{0, 1, 2, 3}},
		{"negative", []float64{-3, -2, -2}, -2, []int{1, 2}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			max, indices := MaxSlice(test.values)
			if max != test.max {
				t.Errorf("max: want %v, have %v", test.max, max)
			}
			if !reflect.DeepEqual(indices, test.indices) {
				t.Errorf("indices: want %v, have %v", test.indices, indices)
			}
		})
	}
}

func TestClip(t *testing.T) {
	for value, want := range map[float64]float64{-1: 0, 0.5: 0.5, 3: 1} {
		if have := Clip(value, Unit); have != want {
			t.Errorf("clip(%v): want %v, have %v", value, want, have)
		}
	}

	if !InInterval(1, Unit) || InInterval(1.01, Unit) {
		t.Error("inInterval: interval should be closed")
	}

	interval := r1.Interval{Min: -2, Max: -1}
	if have := Clip(0, interval); have != -1 {
		t.Errorf("clip(0): want -1, have %v", have)
	}
}
