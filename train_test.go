package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/smartcab/agent/tabular/qlearning"
)

func TestLoadConfig(t *testing.T) {
	doc := []byte(`
seed: 42
agent:
  type: EGreedyQLearning-Tabular
  configs:
    epsilon: [1.0]
    alpha: [0.25, 0.75]
`)
	configFile = filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, doc, 0o644); err != nil {
		t.Fatal(err)
	}
	defer func() { configFile = "" }()

	f := trainCmd.Flags()
	for name, value := range map[string]string{
		"tolerance": "0.1",
		"dummies":   "5",
		"index":     "1",
		"epsilon":   "0.9",
	} {
		if err := f.Set(name, value); err != nil {
			t.Fatalf("set %v: %v", name, err)
		}
	}

	c, err := loadConfig(trainCmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if c.Seed != 42 {
		t.Errorf("loadConfig: want seed from file 42, have %v", c.Seed)
	}
	if c.Tolerance != 0.1 || c.EnvConf.Dummies != 5 {
		t.Errorf("loadConfig: flags not applied: tolerance %v, dummies %v",
			c.Tolerance, c.EnvConf.Dummies)
	}

	// Agent flags select the combination at --index and override it
	if c.AgentConf.Len() != 1 || index != 0 {
		t.Fatalf("loadConfig: want a single agent config at index 0, "+
			"have %d at %d", c.AgentConf.Len(), index)
	}
	agentConf := c.AgentConf.At(0).(qlearning.Config)
	if agentConf.Alpha != 0.75 || agentConf.Epsilon != 0.9 {
		t.Errorf("loadConfig: unexpected agent config %+v", agentConf)
	}
}

func TestTrainIndexOutOfRange(t *testing.T) {
	configFile = ""
	defer func() { index = 0 }()

	for _, value := range []string{"7", "-1"} {
		if err := trainCmd.Flags().Set("index", value); err != nil {
			t.Fatalf("set index: %v", err)
		}

		if _, err := loadConfig(trainCmd); err == nil {
			t.Errorf("loadConfig: expected error for index %v", value)
		}

		// Runs must fail before any experiment is created
		err := runTrain(trainCmd, nil)
		if err == nil {
			t.Errorf("train: expected error for index %v", value)
		}
	}
}

func TestTrainMissingTable(t *testing.T) {
	configFile = ""
	index = 0
	loadTable = filepath.Join(t.TempDir(), "missing.bin")
	defer func() { loadTable = "" }()

	if err := runTrain(trainCmd, nil); err == nil {
		t.Error("train: expected error for missing table")
	}
}
