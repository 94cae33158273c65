package language

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/criyle/coderunner/runguard"
)

const matlabHeaderEnd = "For product information, visit www.mathworks.com."

var matlabBudget = runguard.Budget{
	Time:       5 * time.Second,
	Memory:     2000000 << 10, // jvm-less matlab still maps ~2g
	FileSize:   10000 << 10,
	ProcLimit:  10,
	StreamSize: 10000 << 10,
	NoCore:     true,
}

type matlabTask struct {
	base
}

func newMatlab(tc Toolchain, p Params) Task {
	return &matlabTask{base: newBase(tc, p)}
}

func (t *matlabTask) Version() string {
	return "Matlab R2012"
}

// Compile copies the source to a .m file as matlab refuses other extensions
func (t *matlabTask) Compile(context.Context) error {
	name := t.sourceFileName + ".m"
	if err := copyFile(t.path(name), t.path(t.sourceFileName)); err != nil {
		return fmt.Errorf("matlab: copy source file: %w", err)
	}
	t.setExecutable(name)
	return nil
}

func (t *matlabTask) ReadableDirs() []string {
	return []string{"/"}
}

func (t *matlabTask) RunCommand() []string {
	t.executable()
	return runguard.Command(t.toolchain.Runguard, matlabBudget,
		t.toolchain.Matlab,
		"-nojvm",
		"-nodesktop",
		"-singleCompThread",
		"-r",
		filepath.Base(t.sourceFileName),
	)
}

// FilterOutput strips the matlab start up banner
func (t *matlabTask) FilterOutput(out string) string {
	return stripHeader(out, matlabHeaderEnd)
}
