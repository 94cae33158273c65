package language

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"
)

func TestFindMainClass(t *testing.T) {
	tests := []struct {
		name string
		prog string
		exp  string
	}{
		{
			name: "single",
			prog: "import java.util.*;\npublic class Hello {\n    public static void main(String[] args) {\n        System.out.println(\"hi\");\n    }\n}\n",
			exp:  "Hello",
		},
		{
			name: "no public class",
			prog: "class Hello {\n  public static void main(String[] args) {}\n}\n",
		},
		{
			name: "no main",
			prog: "public class Hello {\n  public void run() {}\n}\n",
		},
		{
			name: "two main classes",
			prog: "public class A {\n  public static void main(String[] a) {}\n}\npublic class B {\n  public static void main(String[] a) {}\n}\n",
		},
		{
			// known limitation: comments are not skipped
			name: "commented out class counts",
			prog: "// public class Old { public static void main(String[] a) {} }\npublic class New {\n  public static void main(String[] a) {}\n}\n",
		},
		{
			// known limitation: main is attributed to the first public class
			name: "main in later class",
			prog: "public class A {\n}\npublic class B {\n  public static void main(String[] a) {}\n}\n",
			exp:  "A",
		},
		{
			name: "spacing",
			prog: "public   class\tSpaced{public static void main ( String args[]) {}}",
			exp:  "Spaced",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := findMainClass(tc.prog); got != tc.exp {
				t.Errorf("expected %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestJavaNoMainClass(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "class Hello {}\n")

	task := newJava(testToolchain(), Params{WorkDir: dir, SourceFileName: "prog"})
	if err := task.Compile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if task.CompileInfo() != javaNoMainClass {
		t.Errorf("expected compile info %q, got %q", javaNoMainClass, task.CompileInfo())
	}
	if _, err := os.Stat(filepath.Join(dir, "prog")); err != nil {
		t.Errorf("source should stay in place: %v", err)
	}
	assertPanics(t, func() { task.RunCommand() })
}

func TestJavaMissingSource(t *testing.T) {
	task := newJava(testToolchain(), Params{WorkDir: t.TempDir(), SourceFileName: "prog"})
	if err := task.Compile(context.Background()); err == nil {
		t.Fatal("expected infrastructure error for missing source")
	}
}

func TestJavaCompile(t *testing.T) {
	javac, err := exec.LookPath("javac")
	if err != nil {
		t.Skip("javac not available")
	}
	tc := testToolchain()
	tc.Javac = javac

	dir := t.TempDir()
	writeSource(t, dir, "public class Hello {\n  public static void main(String[] args) {\n    System.out.println(\"hi\");\n  }\n}\n")
	task := newJava(tc, Params{WorkDir: dir, SourceFileName: "prog"})
	if err := task.Compile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if task.CompileInfo() != "" {
		t.Fatalf("unexpected compile info %q", task.CompileInfo())
	}
	if _, err := os.Stat(filepath.Join(dir, "Hello.class")); err != nil {
		t.Errorf("expected class file: %v", err)
	}
	cmd := task.RunCommand()
	if !slices.Equal(cmd[len(cmd)-5:], []string{tc.Java, "-Xrs", "-Xss8m", "-Xmx200m", "Hello"}) {
		t.Errorf("unexpected run command %v", cmd)
	}
	if !slices.Contains(cmd, "--nproc=20") {
		t.Errorf("expected jvm process budget in %v", cmd)
	}
}

func TestJavaCompileError(t *testing.T) {
	javac, err := exec.LookPath("javac")
	if err != nil {
		t.Skip("javac not available")
	}
	tc := testToolchain()
	tc.Javac = javac

	dir := t.TempDir()
	writeSource(t, dir, "public class Broken {\n  public static void main(String[] args) {\n    int x = \n  }\n}\n")
	task := newJava(tc, Params{WorkDir: dir, SourceFileName: "prog"})
	if err := task.Compile(context.Background()); err != nil {
		t.Fatal(err)
	}
	if task.CompileInfo() == "" {
		t.Fatal("expected compile diagnostic")
	}
	assertPanics(t, func() { task.RunCommand() })
}
