package language

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Toolchain defines the fixed paths of the limiter and the language
// binaries. The core does not verify their presence.
type Toolchain struct {
	// Runguard is the limiter binary followed by its fixed flags
	Runguard []string `yaml:"-"`

	Matlab  string `yaml:"matlab"`
	Python2 string `yaml:"python2"`
	Python3 string `yaml:"python3"`
	Java    string `yaml:"java"`
	Javac   string `yaml:"javac"`
	GCC     string `yaml:"gcc"`
}

// DefaultToolchain returns the built-in toolchain paths
func DefaultToolchain() Toolchain {
	return Toolchain{
		Runguard: []string{"/usr/local/bin/runguard", "--user=coderunner"},
		Matlab:   "/usr/local/Matlab2012a/bin/glnxa64/MATLAB",
		Python2:  "/usr/bin/python2",
		Python3:  "/usr/bin/python3",
		Java:     "/usr/bin/java",
		Javac:    "/usr/bin/javac",
		GCC:      "/usr/bin/gcc",
	}
}

// LoadToolchain reads toolchain path overrides from a yaml file. Keys absent
// from the file keep the default path. If the file cannot be read, the
// defaults are returned together with the error.
func LoadToolchain(p string) (Toolchain, error) {
	tc := DefaultToolchain()
	d, err := os.ReadFile(p)
	if err != nil {
		return tc, err
	}
	if err := yaml.Unmarshal(d, &tc); err != nil {
		return DefaultToolchain(), err
	}
	return tc, nil
}
