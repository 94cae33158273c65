package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/criyle/coderunner/envexec"
	"github.com/criyle/coderunner/language"
)

// Run compiles and runs source in the given language with stdin as input.
// Every failure is reported through the returned Outcome.
func (r *Runner) Run(ctx context.Context, lang, source, stdin string) (rt Outcome) {
	logger := r.logger.With(zap.String("language", lang))

	newTask, err := r.registry.Resolve(lang)
	if err != nil {
		logger.Debug("resolve language failed", zap.Error(err))
		return InternalError(err)
	}

	dir, err := os.MkdirTemp(r.root, "task-")
	if err != nil {
		logger.Error("create work dir failed", zap.Error(err))
		return InternalError(fmt.Errorf("create work dir: %w", err))
	}
	logger = logger.With(zap.String("dir", dir))
	if !r.keepWorkDir {
		defer func() {
			if err := os.RemoveAll(dir); err != nil {
				logger.Warn("remove work dir failed", zap.Error(err))
			}
		}()
	}
	defer func() {
		if p := recover(); p != nil {
			logger.Error("task panicked", zap.Any("panic", p))
			rt = InternalError(fmt.Errorf("task panicked: %v", p))
		}
	}()

	rt, err = r.run(ctx, logger, newTask, dir, source, stdin)
	if err != nil {
		logger.Error("task failed", zap.Error(err))
		return InternalError(err)
	}
	logger.Debug("task finished",
		zap.Stringer("status", rt.Status),
		zap.Duration("time", rt.Time),
		zap.Stringer("memory", rt.Memory))
	return rt
}

func (r *Runner) run(ctx context.Context, logger *zap.Logger, newTask language.NewFunc, dir, source, stdin string) (Outcome, error) {
	if err := writeFile(dir, sourceFileName, source); err != nil {
		return Outcome{}, fmt.Errorf("write source: %w", err)
	}
	task := newTask(language.Params{WorkDir: dir, SourceFileName: sourceFileName})

	// compile must finish before run
	if err := task.Compile(ctx); err != nil {
		return Outcome{}, fmt.Errorf("compile: %w", err)
	}
	if info := task.CompileInfo(); info != "" {
		logger.Debug("compile error", zap.String("compileInfo", info))
		return Outcome{Status: envexec.StatusCompileError, CompileInfo: info}, nil
	}

	c := &envexec.Cmd{
		Args:        task.RunCommand(),
		Dir:         dir,
		Stdout:      stdoutFileName,
		Stderr:      stderrFileName,
		OutputLimit: r.outputLimit,
	}
	if stdin != "" {
		if err := writeFile(dir, stdinFileName, stdin); err != nil {
			return Outcome{}, fmt.Errorf("write input: %w", err)
		}
		c.Stdin = stdinFileName
	}
	logger.Debug("run", zap.Strings("args", c.Args), zap.Strings("readableDirs", task.ReadableDirs()))

	res, err := envexec.Run(c)
	if err != nil {
		return Outcome{}, err
	}

	v := envexec.Classify(res.Stderr, res.Signal)
	rt := Outcome{
		Status: v.Status,
		Stderr: v.Stderr,
		Signal: v.Signal,
		Time:   res.Time,
		Memory: res.Memory,
	}
	// partial output before a crash is kept, output of a killed run is not
	if v.Status != envexec.StatusTimeLimitExceeded {
		rt.Output = task.FilterOutput(res.Stdout)
	}
	return rt, nil
}

func writeFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}
