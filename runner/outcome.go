package runner

import (
	"time"

	"github.com/criyle/coderunner/envexec"
)

// Outcome is the classified result of one submission
type Outcome struct {
	Status envexec.Status
	Output string // filtered stdout
	Stderr string

	// CompileInfo is set for compile error and internal error
	CompileInfo string

	Signal int
	Time   time.Duration
	Memory envexec.Size
}

// InternalError converts an infrastructure fault into an outcome
func InternalError(err error) Outcome {
	msg := err.Error()
	return Outcome{
		Status:      envexec.StatusInternalError,
		Stderr:      msg,
		CompileInfo: msg,
	}
}
