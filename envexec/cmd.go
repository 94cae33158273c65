package envexec

import (
	"time"

	"github.com/criyle/go-sandbox/runner"
)

// Size represent data size in bytes
type Size = runner.Size

// DefaultOutputLimit is used when Cmd.OutputLimit is zero
const DefaultOutputLimit Size = 10 << 20

// Cmd defines instruction to run a limiter wrapped program inside its work
// directory. File names are relative to Dir.
type Cmd struct {
	// exec argument
	Args []string
	Dir  string

	// Stdin is the input file name, empty for no input
	Stdin string
	// Stdout and Stderr are the files where the program output is redirected
	Stdout string
	Stderr string

	// OutputLimit is the maximum number of bytes retained from each stream
	OutputLimit Size
}

// Result defines the raw result of a finished process
type Result struct {
	ExitStatus int
	Signal     int
	Time       time.Duration // wall clock
	Memory     Size          // peak rss, zero if not measured

	Stdout string
	Stderr string
}
