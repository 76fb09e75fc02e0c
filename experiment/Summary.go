package experiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/samuelfneumann/smartcab/environment/smartcab"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Rating grades the driving of an agent over its testing trials, from
// "A+" (best) to "F" (worst)
type Rating string

// Summary summarizes the results of an experiment
type Summary struct {
	TrainingTrials      int
	TestingTrials       int
	TrainingSuccessRate float64
	TestingSuccessRate  float64
	MeanTestingReward   float64
	StdTestingReward    float64

	// TestingActions counts the actions taken in testing trials in each
	// violation class
	TestingActions [smartcab.NumViolationClasses]int

	Safety      Rating
	Reliability Rating
}

// Summary summarizes the trials run so far
func (o *Online) Summary() Summary {
	var train, test []Result
	for _, r := range o.results {
		if r.Testing {
			test = append(test, r)
		} else {
			train = append(train, r)
		}
	}

	summary := Summary{
		TrainingTrials:      len(train),
		TestingTrials:       len(test),
		TrainingSuccessRate: successRate(train),
		TestingSuccessRate:  successRate(test),
		Safety:              SafetyRating(test),
		Reliability:         ReliabilityRating(test),
	}

	if len(test) > 0 {
		rewards := make([]float64, len(test))
		for i, r := range test {
			rewards[i] = r.NetReward
		}
		summary.MeanTestingReward, summary.StdTestingReward =
			stat.MeanStdDev(rewards, nil)
		if len(test) == 1 {
			summary.StdTestingReward = 0
		}
	}
	for _, r := range test {
		for class, n := range r.Actions {
			summary.TestingActions[class] += n
		}
	}

	return summary
}

// successRate returns the fraction of successful trials
func successRate(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	outcomes := make([]float64, len(results))
	for i, r := range results {
		if r.Success {
			outcomes[i] = 1
		}
	}
	return stat.Mean(outcomes, nil)
}

// ReliabilityRating grades how often the agent reached its destination
// in time
func ReliabilityRating(results []Result) Rating {
	if len(results) == 0 {
		return "N/A"
	}

	rate := successRate(results)
	switch {
	case rate == 1:
		return "A+"
	case rate >= 0.9:
		return "A"
	case rate >= 0.8:
		return "B"
	case rate >= 0.7:
		return "C"
	case rate >= 0.6:
		return "D"
	}
	return "F"
}

// SafetyRating grades the most severe violation the agent committed.
// Agents that only commit minor violations are graded A if they do so
// in fewer than half of the trials.
func SafetyRating(results []Result) Rating {
	if len(results) == 0 {
		return "N/A"
	}

	var counts [smartcab.NumViolationClasses]float64
	for _, r := range results {
		for class, n := range r.Actions {
			counts[class] += float64(n)
		}
	}

	if floats.Sum(counts[smartcab.MinorViolation:]) == 0 {
		return "A+"
	}
	switch {
	case counts[smartcab.MajorAccident] > 0:
		return "F"
	case counts[smartcab.MinorAccident] > 0:
		return "D"
	case counts[smartcab.MajorViolation] > 0:
		return "C"
	case counts[smartcab.MinorViolation] >= float64(len(results))/2:
		return "B"
	}
	return "A"
}

// trialLogHeader is the header of the trial log
var trialLogHeader = []string{
	"trial", "testing", "epsilon", "alpha", "success", "end", "net_reward",
	"ticks", "initial_distance", "initial_deadline", "final_deadline",
	"legal", "minor_violation", "major_violation", "minor_accident",
	"major_accident",
}

// WriteTrialLog writes the result of each trial to filename as CSV
func (o *Online) WriteTrialLog(filename string) error {
	if err := writeFile(filename, o.writeTrialLog); err != nil {
		return fmt.Errorf("writeTrialLog: %v", err)
	}
	return nil
}

// writeTrialLog writes the result of each trial to w as CSV
func (o *Online) writeTrialLog(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(trialLogHeader); err != nil {
		return err
	}

	for _, r := range o.results {
		record := []string{
			strconv.Itoa(r.Trial),
			strconv.FormatBool(r.Testing),
			strconv.FormatFloat(r.Epsilon, 'g', -1, 64),
			strconv.FormatFloat(r.Alpha, 'g', -1, 64),
			strconv.FormatBool(r.Success),
			r.End.String(),
			strconv.FormatFloat(r.NetReward, 'f', 4, 64),
			strconv.Itoa(r.Ticks),
			strconv.Itoa(r.InitialDistance),
			strconv.Itoa(r.InitialDeadline),
			strconv.Itoa(r.FinalDeadline),
		}
		for _, n := range r.Actions {
			record = append(record, strconv.Itoa(n))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
