// Package runner drives a submission through its whole lifecycle: work
// directory, compile, limiter wrapped run and result classification.
package runner

import (
	"os"

	"go.uber.org/zap"

	"github.com/criyle/coderunner/envexec"
	"github.com/criyle/coderunner/language"
)

// file names inside the task work directory
const (
	sourceFileName = "prog"
	stdinFileName  = "prog.in"
	stdoutFileName = "prog.out"
	stderrFileName = "prog.err"
)

// Config defines runner configuration
type Config struct {
	Registry *language.Registry

	// Root is the parent of the per task work directories
	Root        string
	KeepWorkDir bool

	// OutputLimit is the maximum bytes retained from stdout / stderr
	OutputLimit envexec.Size

	Logger *zap.Logger
}

// Runner runs submissions. Tasks share no state so Run is safe for
// concurrent use.
type Runner struct {
	registry    *language.Registry
	root        string
	keepWorkDir bool
	outputLimit envexec.Size
	logger      *zap.Logger
}

// New creates new runner
func New(c Config) *Runner {
	root := c.Root
	if root == "" {
		root = os.TempDir()
	}
	limit := c.OutputLimit
	if limit == 0 {
		limit = envexec.DefaultOutputLimit
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		registry:    c.Registry,
		root:        root,
		keepWorkDir: c.KeepWorkDir,
		outputLimit: limit,
		logger:      logger,
	}
}

// Languages returns the supported languages
func (r *Runner) Languages() []language.Info {
	return r.registry.List()
}
