package language

import (
	"context"
	"time"

	"github.com/criyle/coderunner/runguard"
)

var pythonBudget = runguard.Budget{
	Time:       3 * time.Second,
	Memory:     100000 << 10,
	FileSize:   10000 << 10,
	ProcLimit:  2,
	StreamSize: 10000 << 10,
	NoCore:     true,
}

// pythonTask runs the source file directly with the interpreter
type pythonTask struct {
	base
	version     string
	interpreter func(Toolchain) string
}

func newPython2(tc Toolchain, p Params) Task {
	return &pythonTask{
		base:        newBase(tc, p),
		version:     "Python 2.7",
		interpreter: func(tc Toolchain) string { return tc.Python2 },
	}
}

func newPython3(tc Toolchain, p Params) Task {
	return &pythonTask{
		base:        newBase(tc, p),
		version:     "Python 3",
		interpreter: func(tc Toolchain) string { return tc.Python3 },
	}
}

func (t *pythonTask) Version() string {
	return t.version
}

func (t *pythonTask) Compile(context.Context) error {
	t.setExecutable(t.sourceFileName)
	return nil
}

func (t *pythonTask) RunCommand() []string {
	return runguard.Command(t.toolchain.Runguard, pythonBudget,
		t.interpreter(t.toolchain),
		t.executable(),
	)
}
