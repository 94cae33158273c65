package language

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/criyle/coderunner/runguard"
)

const javaNoMainClass = "Error: no main class found, or multiple main classes. " +
	"[Did you write a public class when asked for a non-public one?]"

var javaBudget = runguard.Budget{
	Time:       5 * time.Second,
	Memory:     2000000 << 10, // the jvm reserves far beyond the heap
	FileSize:   10000 << 10,
	ProcLimit:  20, // jvm threads
	StreamSize: 10000 << 10,
	NoCore:     true,
}

// A public class followed, anywhere later, by a main method. This is a text
// scan, not a parse: a commented out or quoted class declaration counts too,
// and a main method in a later class is attributed to the first public
// class before it.
var javaMainClassPattern = regexp.MustCompile(`(?ms)(^|\W)public\s+class\s+(\w+)\s*\{.*?public\s+static\s+void\s+main\s*\(\s*String`)

type javaTask struct {
	base
}

func newJava(tc Toolchain, p Params) Task {
	return &javaTask{base: newBase(tc, p)}
}

func (t *javaTask) Version() string {
	return "Java 1.6"
}

func (t *javaTask) Compile(ctx context.Context) error {
	prog, err := os.ReadFile(t.path(t.sourceFileName))
	if err != nil {
		return fmt.Errorf("java: read source file: %w", err)
	}
	mainClass := findMainClass(string(prog))
	if mainClass == "" {
		t.setCompileError(javaNoMainClass)
		return nil
	}
	t.mainClassName = mainClass

	src := mainClass + ".java"
	if err := os.Rename(t.path(t.sourceFileName), t.path(src)); err != nil {
		return fmt.Errorf("java: rename source file: %w", err)
	}
	t.sourceFileName = src

	info, err := runCompiler(ctx, t.workDir, t.toolchain.Javac, src)
	if err != nil {
		return fmt.Errorf("java: %w", err)
	}
	if info != "" {
		t.setCompileError(info)
		return nil
	}
	t.setExecutable(src)
	return nil
}

func (t *javaTask) ReadableDirs() []string {
	return []string{"/"}
}

func (t *javaTask) RunCommand() []string {
	t.executable()
	return runguard.Command(t.toolchain.Runguard, javaBudget,
		t.toolchain.Java,
		"-Xrs", // fewer signal handlers, no thread dump on time limit kill
		"-Xss8m",
		"-Xmx200m",
		t.mainClassName,
	)
}

// findMainClass returns the name of the single public class declaring a
// main method, or empty if there is none or more than one
func findMainClass(prog string) string {
	m := javaMainClassPattern.FindAllStringSubmatch(prog, -1)
	if len(m) != 1 {
		return ""
	}
	return m[0][2]
}
