package envexec

import (
	"strings"

	"github.com/criyle/coderunner/runguard"
)

// SignalKilled is reported as the terminating signal for time limit exceeded
const SignalKilled = 9

// Verdict is the classification of a finished run
type Verdict struct {
	Status Status
	Signal int
	Stderr string
}

// Classify maps the captured error stream to a Status. The limiter and
// toolchains are silent on success, so any non-empty stderr other than the
// time limit marker is an abnormal termination, even with a zero exit
// status. signal is the observed terminating signal, if any.
func Classify(stderr string, signal int) Verdict {
	switch {
	case stderr == "":
		return Verdict{Status: StatusSuccess, Signal: signal}

	case strings.Contains(stderr, runguard.TimeLimitMarker):
		// the marker itself must not leak into graded output
		return Verdict{Status: StatusTimeLimitExceeded, Signal: SignalKilled}

	default:
		return Verdict{Status: StatusAbnormalTermination, Signal: signal, Stderr: stderr}
	}
}
