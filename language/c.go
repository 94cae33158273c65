package language

import (
	"context"
	"fmt"
	"time"

	"github.com/criyle/coderunner/runguard"
)

const cExecutableFileName = "program"

var cBudget = runguard.Budget{
	Time:       3 * time.Second,
	Memory:     100000 << 10,
	FileSize:   10000 << 10,
	ProcLimit:  2,
	StreamSize: 10000 << 10,
	NoCore:     true,
}

type cTask struct {
	base
}

func newC(tc Toolchain, p Params) Task {
	return &cTask{base: newBase(tc, p)}
}

func (t *cTask) Version() string {
	return "gcc-4.6.3"
}

func (t *cTask) Compile(ctx context.Context) error {
	info, err := runCompiler(ctx, t.workDir, t.toolchain.GCC,
		"-Wall", "-Werror", "-std=c99", "-x", "c",
		"-o", cExecutableFileName, t.sourceFileName, "-lm")
	if err != nil {
		return fmt.Errorf("c: %w", err)
	}
	if info != "" {
		t.setCompileError(info)
		return nil
	}
	t.setExecutable(cExecutableFileName)
	return nil
}

func (t *cTask) RunCommand() []string {
	return runguard.Command(t.toolchain.Runguard, cBudget, "./"+t.executable())
}
