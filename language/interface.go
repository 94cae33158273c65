// Package language defines how a submission in each supported language
// becomes a runnable, limiter wrapped command and how its output is cleaned.
package language

import "context"

// Task owns the lifecycle of one submission: source placement, optional
// compile, run command construction and output filtering. A task is never
// reused across submissions.
type Task interface {
	// Version returns the display name of the toolchain
	Version() string

	// Compile prepares the executable. A user compile failure is reported by
	// CompileInfo, the returned error is only for infrastructure faults.
	Compile(ctx context.Context) error

	// CompileInfo returns the compile diagnostic, empty if compiled cleanly
	CompileInfo() string

	// ReadableDirs returns directories the limiter should allow to read
	ReadableDirs() []string

	// RunCommand returns the full argv starting with the limiter invocation.
	// It panics if the task has not compiled successfully.
	RunCommand() []string

	// FilterOutput removes toolchain noise from captured stdout
	FilterOutput(out string) string
}

// Params defines where the source of a task lives
type Params struct {
	WorkDir        string
	SourceFileName string // relative to WorkDir
}

// NewFunc creates a fully initialized task for the given params
type NewFunc func(Params) Task

// Language defines a supported language variant
type Language struct {
	Name string
	New  func(Toolchain, Params) Task
}
