// Package runguard builds the command prefix for the runguard resource
// limiter. Runguard drops privilege to the execution user, applies the
// budget below and kills the program on breach.
package runguard

import (
	"strconv"
	"time"

	"github.com/criyle/go-sandbox/runner"
)

// TimeLimitMarker is written by runguard on its error stream once the wall
// time budget is exceeded
const TimeLimitMarker = "warning: timelimit exceeded"

// Budget defines the resource ceiling for a single run
type Budget struct {
	Time       time.Duration // wall time, rounded up to seconds
	Memory     runner.Size
	FileSize   runner.Size
	ProcLimit  uint64
	StreamSize runner.Size // combined stdout / stderr size
	NoCore     bool
}

// Args renders the budget as runguard flags
func (b Budget) Args() []string {
	args := make([]string, 0, 6)
	args = append(args,
		"--time="+strconv.FormatUint(seconds(b.Time), 10),
		"--memsize="+strconv.FormatUint(kib(b.Memory), 10),
		"--filesize="+strconv.FormatUint(kib(b.FileSize), 10),
		"--nproc="+strconv.FormatUint(b.ProcLimit, 10),
	)
	if b.NoCore {
		args = append(args, "--no-core")
	}
	return append(args, "--streamsize="+strconv.FormatUint(kib(b.StreamSize), 10))
}

// Command prepends the limiter invocation and the budget flags to the
// program arguments. prefix is the limiter binary followed by its fixed
// flags (e.g. --user).
func Command(prefix []string, b Budget, args ...string) []string {
	flags := b.Args()
	rt := make([]string, 0, len(prefix)+len(flags)+len(args))
	rt = append(rt, prefix...)
	rt = append(rt, flags...)
	return append(rt, args...)
}

func seconds(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64((d + time.Second - 1) / time.Second)
}

func kib(s runner.Size) uint64 {
	return (s.Byte() + 1<<10 - 1) >> 10
}
