package config

import (
	"os"
	"runtime"

	"github.com/criyle/coderunner/envexec"
	"github.com/koding/multiconfig"
)

// Config defines code runner server configuration
type Config struct {
	// runner
	Dir           string        `flagUsage:"specifies directory to create isolated task work directories (os temp dir by default)"`
	KeepWorkDir   bool          `flagUsage:"keep task work directories after execution"`
	Limiter       string        `flagUsage:"specifies the resource limiter command prefix" default:"/usr/local/bin/runguard --user=coderunner"`
	ToolchainConf string        `flagUsage:"specifies toolchain path configuration file" default:"toolchain.yaml"`
	OutputLimit   *envexec.Size `flagUsage:"specifies max bytes retained from stdout / stderr" default:"10m"`
	Parallelism   int           `flagUsage:"control the # of concurrency execution (default equal to number of cpu)"`

	// server config
	HTTPAddr      string `flagUsage:"specifies the http binding address" default:":5050"`
	MonitorAddr   string `flagUsage:"specifies the metrics binding address" default:":5052"`
	AuthToken     string `flagUsage:"bearer token auth for REST / WebSocket"`
	EnableDebug   bool   `flagUsage:"enable debug endpoint"`
	EnableMetrics bool   `flagUsage:"enable promethus metrics endpoint"`

	// logger config
	Release bool `flagUsage:"release level of logs"`
	Silent  bool `flagUsage:"do not print logs"`

	// show version and exit
	Version bool `flagUsage:"show version and exit"`
}

// Load loads config from flag & environment variables
func (c *Config) Load() error {
	cl := multiconfig.MultiLoader(
		&multiconfig.TagLoader{},
		&multiconfig.EnvironmentLoader{
			Prefix:    "CR",
			CamelCase: true,
		},
		&multiconfig.FlagLoader{
			CamelCase: true,
			EnvPrefix: "CR",
		},
	)
	if os.Getpid() == 1 {
		c.Release = true
	}
	if err := cl.Load(c); err != nil {
		return err
	}
	if c.Parallelism <= 0 {
		c.Parallelism = runtime.NumCPU()
	}
	return nil
}
