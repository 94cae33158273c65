package language

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// base holds the state shared by every variant
type base struct {
	toolchain Toolchain
	workDir   string

	sourceFileName     string
	executableFileName string
	mainClassName      string
	compileInfo        string
	compiled           bool
}

func newBase(tc Toolchain, p Params) base {
	return base{
		toolchain:      tc,
		workDir:        p.WorkDir,
		sourceFileName: p.SourceFileName,
	}
}

func (b *base) CompileInfo() string {
	return b.compileInfo
}

func (b *base) ReadableDirs() []string {
	return nil
}

func (b *base) FilterOutput(out string) string {
	return out
}

func (b *base) setExecutable(name string) {
	b.executableFileName = name
	b.compileInfo = ""
	b.compiled = true
}

func (b *base) setCompileError(info string) {
	b.executableFileName = ""
	b.compileInfo = info
	b.compiled = false
}

// executable returns the artifact to run, it is a programming error to
// request it before a successful compile
func (b *base) executable() string {
	if !b.compiled || b.executableFileName == "" {
		panic(fmt.Sprintf("language: run command requested for %q before successful compile", b.sourceFileName))
	}
	return b.executableFileName
}

func (b *base) path(name string) string {
	return filepath.Join(b.workDir, name)
}

func copyFile(dst, src string) error {
	s, err := os.Open(src)
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(d, s); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}

// stripHeader drops every line up to and including the first line containing
// marker, then keeps the remaining non-blank lines trimmed. Output without
// the marker has no header to strip.
func stripHeader(out, marker string) string {
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		if strings.Contains(l, marker) {
			lines = lines[i+1:]
			break
		}
	}
	rt := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			rt = append(rt, l)
		}
	}
	return strings.Join(rt, "\n")
}
