package language

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

const compileLogFileName = "compile.out"

// runCompiler runs a toolchain inside dir with its error stream saved to
// compile.out. A non-zero exit returns the diagnostic as info with nil error.
func runCompiler(ctx context.Context, dir string, args ...string) (info string, err error) {
	logPath := filepath.Join(dir, compileLogFileName)
	f, err := os.Create(logPath)
	if err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stderr = f
	err = cmd.Run()
	f.Close()
	if err == nil {
		return "", nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return "", fmt.Errorf("%s: %w", args[0], err)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	b, err := os.ReadFile(logPath)
	if err != nil {
		return "", err
	}
	if info = string(b); info == "" {
		info = fmt.Sprintf("%s exited with status %d", filepath.Base(args[0]), exitErr.ExitCode())
	}
	return info, nil
}
