package qtable

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/samuelfneumann/smartcab/agent/tabular/state"
	env "github.com/samuelfneumann/smartcab/environment"
)

func newTable(t *testing.T) *QTable {
	t.Helper()
	q, err := New(env.ValidActions())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return q
}

func greenForward() state.State {
	return state.New(env.Forward, env.Inputs{Light: env.Green})
}

func TestNewRejectsBadActions(t *testing.T) {
	tests := map[string][]env.Action{
		"empty":     {},
		"duplicate": {env.None, env.Left, env.None},
		"illegal":   {env.None, env.Action(12)},
	}

	for name, actions := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := New(actions); err == nil {
				t.Errorf("new: expected error for actions %v", actions)
			}
		})
	}
}

func TestMaxValueUnknownState(t *testing.T) {
	q := newTable(t)
	s := greenForward()

	if _, ok := q.MaxValue(s); ok {
		t.Error("maxValue: unseen state should not report a value")
	}
	if best := q.BestActions(s); best != nil {
		t.Errorf("bestActions: want nil for unseen state, have %v", best)
	}
	if q.Len() != 0 {
		t.Errorf("len: querying should not populate table, have %d rows",
			q.Len())
	}
}

func TestEnsure(t *testing.T) {
	q := newTable(t)
	s := greenForward()

	if !q.Ensure(s) {
		t.Fatal("ensure: expected row to be created")
	}
	for _, a := range env.ValidActions() {
		v, err := q.Value(s, a)
		if err != nil {
			t.Fatalf("value: %v", err)
		}
		if v != 0.0 || math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("value(%v): want 0.0, have %v", a, v)
		}
	}
	if max, ok := q.MaxValue(s); !ok || max != 0.0 {
		t.Errorf("maxValue: want (0, true), have (%v, %v)", max, ok)
	}

	// Ensure is idempotent and does not reset learned values
	if err := q.SetValue(s, env.Left, 1.5); err != nil {
		t.Fatalf("setValue: %v", err)
	}
	if q.Ensure(s) {
		t.Error("ensure: row should not be created twice")
	}
	if v, _ := q.Value(s, env.Left); v != 1.5 {
		t.Errorf("ensure: existing value reset, have %v", v)
	}
	if q.Len() != 1 {
		t.Errorf("len: want 1, have %d", q.Len())
	}
}

func TestSetValueUnknownState(t *testing.T) {
	q := newTable(t)

	err := q.SetValue(greenForward(), env.Forward, 1.0)
	if !IsUnknownState(err) {
		t.Errorf("setValue: want unknown state error, have %v", err)
	}
	if _, err := q.Value(greenForward(), env.Forward); !IsUnknownState(err) {
		t.Errorf("value: want unknown state error, have %v", err)
	}
	if q.Len() != 0 {
		t.Error("setValue: failed set should not create a row")
	}
}

func TestSetValueUnknownAction(t *testing.T) {
	q, err := New([]env.Action{env.None, env.Forward})
	if err != nil {
		t.Fatal(err)
	}
	s := greenForward()
	q.Ensure(s)

	err = q.SetValue(s, env.Left, 1.0)
	if err == nil || IsUnknownState(err) {
		t.Errorf("setValue: want unknown action error, have %v", err)
	}
}

func TestBestActions(t *testing.T) {
	q := newTable(t)
	s := greenForward()
	q.Ensure(s)

	values := map[env.Action]float64{
		env.Forward: 0.8,
		env.Left:    0.8,
		env.Right:   0.2,
		env.None:    -1.0,
	}
	for a, v := range values {
		if err := q.SetValue(s, a, v); err != nil {
			t.Fatal(err)
		}
	}

	max, ok := q.MaxValue(s)
	if !ok || max != 0.8 {
		t.Errorf("maxValue: want (0.8, true), have (%v, %v)", max, ok)
	}

	best := q.BestActions(s)
	want := []env.Action{env.Forward, env.Left}
	if !reflect.DeepEqual(best, want) {
		t.Errorf("bestActions: want %v, have %v", want, best)
	}
	for _, a := range best {
		if v, _ := q.Value(s, a); v != max {
			t.Errorf("bestActions: %v has value %v != max %v", a, v, max)
		}
	}
}

func TestBestActionsAllTied(t *testing.T) {
	q := newTable(t)
	s := greenForward()
	q.Ensure(s)

	if best := q.BestActions(s); !reflect.DeepEqual(best, env.ValidActions()) {
		t.Errorf("bestActions: fresh row should tie all actions, have %v",
			best)
	}
}

func TestGobRoundTrip(t *testing.T) {
	q := newTable(t)
	s1 := greenForward()
	s2 := state.New(env.Right, env.Inputs{Light: env.Red, Left: env.Forward})
	q.Ensure(s1)
	q.Ensure(s2)
	q.SetValue(s1, env.Forward, 2.0)
	q.SetValue(s2, env.None, -10.0)

	filename := filepath.Join(t.TempDir(), "q.bin")
	if err := q.Save(filename); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(filename)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded.States(), q.States()) {
		t.Errorf("load: states differ: %v != %v", loaded.States(), q.States())
	}
	for _, s := range q.States() {
		want, _ := q.Row(s)
		have, _ := loaded.Row(s)
		if !reflect.DeepEqual(want, have) {
			t.Errorf("load: row %v: want %v, have %v", s, want, have)
		}
	}
}

func TestSaveReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}

	q := newTable(t)
	q.Ensure(greenForward())
	if err := q.Save("/dev/full"); err == nil {
		t.Error("save: expected error writing to a full device")
	}
	if err := q.Save(filepath.Join(t.TempDir(), "missing", "q.bin")); err == nil {
		t.Error("save: expected error for missing directory")
	}
}

func TestWriteTo(t *testing.T) {
	q := newTable(t)
	s := greenForward()
	q.Ensure(s)
	q.SetValue(s, env.Forward, 1.25)

	var buf bytes.Buffer
	n, err := q.WriteTo(&buf)
	if err != nil {
		t.Fatalf("writeTo: %v", err)
	}
	if n == 0 {
		t.Error("writeTo: no bytes reported")
	}

	out := buf.String()
	for _, want := range []string{s.String(), "forward", "1.25", "1 states"} {
		if !strings.Contains(out, want) {
			t.Errorf("writeTo: output missing %q:\n%v", want, out)
		}
	}
}
