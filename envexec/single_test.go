package envexec

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func shCmd(t *testing.T, script string) *Cmd {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return &Cmd{
		Args:   []string{sh, "-c", script},
		Dir:    t.TempDir(),
		Stdout: "prog.out",
		Stderr: "prog.err",
	}
}

func TestRunCapturesOutput(t *testing.T) {
	c := shCmd(t, "echo hello; echo oops >&2")
	rt, err := Run(c)
	if err != nil {
		t.Fatal(err)
	}
	if rt.Stdout != "hello\n" {
		t.Errorf("expected stdout %q, got %q", "hello\n", rt.Stdout)
	}
	if rt.Stderr != "oops\n" {
		t.Errorf("expected stderr %q, got %q", "oops\n", rt.Stderr)
	}
	if rt.ExitStatus != 0 {
		t.Errorf("expected exit status 0, got %d", rt.ExitStatus)
	}
	if _, err := os.Stat(filepath.Join(c.Dir, "prog.out")); err != nil {
		t.Errorf("expected stdout file in work dir: %v", err)
	}
}

func TestRunStdin(t *testing.T) {
	c := shCmd(t, "cat")
	c.Stdin = "prog.in"
	if err := os.WriteFile(filepath.Join(c.Dir, c.Stdin), []byte("1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rt, err := Run(c)
	if err != nil {
		t.Fatal(err)
	}
	if rt.Stdout != "1 2\n" {
		t.Errorf("expected stdout %q, got %q", "1 2\n", rt.Stdout)
	}
}

func TestRunOutputLimit(t *testing.T) {
	c := shCmd(t, "i=0; while [ $i -lt 1000 ]; do echo 0123456789; i=$((i+1)); done")
	c.OutputLimit = 100
	rt, err := Run(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(rt.Stdout) != 100 {
		t.Errorf("expected 100 bytes retained, got %d", len(rt.Stdout))
	}
	if !strings.HasPrefix(rt.Stdout, "0123456789\n") {
		t.Errorf("unexpected stdout prefix %q", rt.Stdout[:11])
	}
}

func TestRunExitStatus(t *testing.T) {
	rt, err := Run(shCmd(t, "exit 3"))
	if err != nil {
		t.Fatal(err)
	}
	if rt.ExitStatus != 3 {
		t.Errorf("expected exit status 3, got %d", rt.ExitStatus)
	}
	if rt.Stderr != "" {
		t.Errorf("expected empty stderr, got %q", rt.Stderr)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	c := &Cmd{
		Args:   []string{filepath.Join(t.TempDir(), "not-exists")},
		Dir:    t.TempDir(),
		Stdout: "prog.out",
		Stderr: "prog.err",
	}
	if _, err := Run(c); err == nil {
		t.Fatal("expected spawn error")
	}
}

func TestRunMissingStdin(t *testing.T) {
	c := shCmd(t, "cat")
	c.Stdin = "prog.in"
	if _, err := Run(c); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestCollect(t *testing.T) {
	r := strings.NewReader(strings.Repeat("a", 5000))
	s, err := collect(r, 4096)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 4096 {
		t.Errorf("expected 4096 bytes, got %d", len(s))
	}
	if r.Len() != 0 {
		t.Errorf("expected reader drained, %d bytes left", r.Len())
	}
}

func TestCollectFileMissing(t *testing.T) {
	s, err := collectFile(filepath.Join(t.TempDir(), "prog.err"), 10)
	if err != nil {
		t.Fatal(err)
	}
	if s != "" {
		t.Errorf("expected empty string, got %q", s)
	}
}
