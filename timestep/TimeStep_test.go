package timestep

import "testing"

func TestSuccess(t *testing.T) {
	tests := []struct {
		end     EndType
		success bool
	}{
		{Destination, true},
		{LateArrival, false},
		{DeadlineExpired, false},
		{HardLimit, false},
	}

	for _, test := range tests {
		step := New(Mid, 2, 5, 3, true)
		if step.Success() {
			t.Fatal("success: unended step reported as success")
		}

		step.SetEnd(test.end)
		if !step.Last() {
			t.Errorf("setEnd %v: step is not last", test.end)
		}
		if step.EndType() != test.end {
			t.Errorf("endType: want %v, have %v", test.end, step.EndType())
		}
		if step.Success() != test.success {
			t.Errorf("success %v: want %v, have %v", test.end, test.success,
				step.Success())
		}
	}
}
