package envexec

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		signal int
		exp    Verdict
	}{
		{
			name: "empty",
			exp:  Verdict{Status: StatusSuccess},
		},
		{
			name:   "time limit",
			stderr: "runguard: warning: timelimit exceeded (wall time): aborting command\n",
			exp:    Verdict{Status: StatusTimeLimitExceeded, Signal: SignalKilled},
		},
		{
			name:   "marker at start",
			stderr: "warning: timelimit exceeded",
			signal: 15,
			exp:    Verdict{Status: StatusTimeLimitExceeded, Signal: SignalKilled},
		},
		{
			name:   "crash",
			stderr: "ZeroDivisionError: integer division or modulo by zero\n",
			exp: Verdict{
				Status: StatusAbnormalTermination,
				Stderr: "ZeroDivisionError: integer division or modulo by zero\n",
			},
		},
		{
			name:   "warning only",
			stderr: "DeprecationWarning: something\n",
			exp: Verdict{
				Status: StatusAbnormalTermination,
				Stderr: "DeprecationWarning: something\n",
			},
		},
		{
			name:   "signalled",
			stderr: "Segmentation fault\n",
			signal: 11,
			exp: Verdict{
				Status: StatusAbnormalTermination,
				Signal: 11,
				Stderr: "Segmentation fault\n",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.stderr, tc.signal); got != tc.exp {
				t.Errorf("expected %+v, got %+v", tc.exp, got)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	for _, s := range []Status{
		StatusSuccess,
		StatusTimeLimitExceeded,
		StatusAbnormalTermination,
		StatusCompileError,
		StatusInternalError,
	} {
		v, err := StringToStatus(s.String())
		if err != nil {
			t.Fatal(err)
		}
		if v != s {
			t.Errorf("expected %v, got %v", s, v)
		}
	}
	if Status(100).String() != "Invalid" {
		t.Errorf("expected Invalid, got %s", Status(100))
	}
	if _, err := StringToStatus("Accepted"); err == nil {
		t.Error("expected error for unknown status")
	}
}
