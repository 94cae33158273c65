package language

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadToolchain(t *testing.T) {
	p := filepath.Join(t.TempDir(), "toolchain.yaml")
	conf := "python3: /opt/python/bin/python3\njava: /opt/jdk/bin/java\n"
	if err := os.WriteFile(p, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}
	tc, err := LoadToolchain(p)
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultToolchain()
	if tc.Python3 != "/opt/python/bin/python3" {
		t.Errorf("expected python3 override, got %q", tc.Python3)
	}
	if tc.Java != "/opt/jdk/bin/java" {
		t.Errorf("expected java override, got %q", tc.Java)
	}
	if tc.Javac != def.Javac || tc.Python2 != def.Python2 {
		t.Errorf("expected defaults for missing keys, got %+v", tc)
	}
}

func TestLoadToolchainMissing(t *testing.T) {
	tc, err := LoadToolchain(filepath.Join(t.TempDir(), "toolchain.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not exist error, got %v", err)
	}
	if tc.GCC != DefaultToolchain().GCC {
		t.Errorf("expected default toolchain, got %+v", tc)
	}
}
