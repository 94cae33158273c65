package envexec

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Run executes the command synchronously and reads back its output files.
// There is no cancellation: the limiter enforces the time ceiling. A
// non-nil error means the process could not be run at all.
func Run(c *Cmd) (*Result, error) {
	if len(c.Args) == 0 {
		return nil, errors.New("run: no args provided")
	}

	stdin, stdout, stderr, err := prepareFiles(c)
	if err != nil {
		return nil, err
	}
	defer closeFiles(stdin, stdout, stderr)

	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	if stdin != nil {
		cmd.Stdin = stdin
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("run %s: %w", c.Args[0], err)
	}

	rt := &Result{
		ExitStatus: cmd.ProcessState.ExitCode(),
		Time:       elapsed,
	}
	rt.Signal, rt.Memory = processStats(cmd.ProcessState)

	limit := c.OutputLimit
	if limit == 0 {
		limit = DefaultOutputLimit
	}
	if rt.Stdout, err = collectFile(filepath.Join(c.Dir, c.Stdout), limit); err != nil {
		return nil, fmt.Errorf("collect stdout: %w", err)
	}
	if rt.Stderr, err = collectFile(filepath.Join(c.Dir, c.Stderr), limit); err != nil {
		return nil, fmt.Errorf("collect stderr: %w", err)
	}
	return rt, nil
}

func prepareFiles(c *Cmd) (stdin, stdout, stderr *os.File, err error) {
	defer func() {
		if err != nil {
			closeFiles(stdin, stdout, stderr)
		}
	}()
	if c.Stdin != "" {
		if stdin, err = os.Open(filepath.Join(c.Dir, c.Stdin)); err != nil {
			return
		}
	}
	if stdout, err = createFile(c.Dir, c.Stdout); err != nil {
		return
	}
	stderr, err = createFile(c.Dir, c.Stderr)
	return
}

func createFile(dir, name string) (*os.File, error) {
	if name == "" {
		return nil, errors.New("output file name not provided")
	}
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
}

func closeFiles(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			f.Close()
		}
	}
}
