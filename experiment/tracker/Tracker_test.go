package tracker

import (
	"path/filepath"
	"reflect"
	"testing"

	ts "github.com/samuelfneumann/smartcab/timestep"
)

// trial returns the TimeSteps of a trial with the given rewards, the
// last of which ends the trial with end type e
func trial(rewards []float64, e ts.EndType, testing bool) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 0, len(rewards), testing)}
	for i, r := range rewards {
		step := ts.New(ts.Mid, r, i+1, len(rewards)-i-1, testing)
		if i == len(rewards)-1 {
			step.SetEnd(e)
		}
		steps = append(steps, step)
	}
	return steps
}

func TestTrackers(t *testing.T) {
	dir := t.TempDir()
	ret := NewReturn(filepath.Join(dir, "return.bin"))
	length := NewEpisodeLength(filepath.Join(dir, "length.bin"))
	success := NewSuccess(filepath.Join(dir, "success.bin"))
	trackers := []Tracker{ret, length, success}

	var steps []ts.TimeStep
	steps = append(steps, trial([]float64{2, 1, 12}, ts.Destination,
		false)...)
	steps = append(steps, trial([]float64{-10, 2}, ts.HardLimit, false)...)
	steps = append(steps, trial([]float64{1, 1, 1, 1}, ts.LateArrival,
		false)...)
	for _, step := range steps {
		for _, tracker := range trackers {
			tracker.Track(step)
		}
	}

	tests := []struct {
		name string
		have []float64
		want []float64
	}{
		{"return", ret.Data(), []float64{15, -8, 4}},
		{"length", length.Data(), []float64{3, 2, 4}},
		{"success", success.Data(), []float64{1, 0, 0}},
	}
	for _, test := range tests {
		if !reflect.DeepEqual(test.have, test.want) {
			t.Errorf("%v: want %v, have %v", test.name, test.want, test.have)
		}
	}

	for _, tracker := range trackers {
		if err := tracker.Save(); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	data, err := LoadData(filepath.Join(dir, "return.bin"))
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if !reflect.DeepEqual(data, ret.Data()) {
		t.Errorf("loadData: want %v, have %v", ret.Data(), data)
	}

	if _, err := LoadData(filepath.Join(dir, "missing.bin")); err == nil {
		t.Error("loadData: expected error for missing file")
	}
}

func TestReturnPanicsOnSkippedTimeStep(t *testing.T) {
	ret := NewReturn("")
	ret.Track(ts.New(ts.First, 0, 0, 10, false))

	defer func() {
		if recover() == nil {
			t.Error("track: expected panic for non-sequential timesteps")
		}
	}()
	ret.Track(ts.New(ts.Mid, 0, 2, 8, false))
}

func TestFilter(t *testing.T) {
	train := NewSuccess("")
	test := NewSuccess("")
	trackers := []Tracker{Training(train), Testing(test)}

	var steps []ts.TimeStep
	steps = append(steps, trial([]float64{1}, ts.HardLimit, false)...)
	steps = append(steps, trial([]float64{1}, ts.Destination, true)...)
	steps = append(steps, trial([]float64{1}, ts.Destination, true)...)
	for _, step := range steps {
		for _, tracker := range trackers {
			tracker.Track(step)
		}
	}

	if !reflect.DeepEqual(train.Data(), []float64{0}) {
		t.Errorf("training: want [0], have %v", train.Data())
	}
	if !reflect.DeepEqual(test.Data(), []float64{1, 1}) {
		t.Errorf("testing: want [1 1], have %v", test.Data())
	}
}
