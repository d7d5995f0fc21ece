// Package robocopy drives one invocation of the external mirror-copy tool per
// source folder and interprets its exit-code contract. The tool itself is a
// black box: this package builds its argument vector, waits for it to exit,
// and leaves log-content interpretation to the transfer-log parser.
package robocopy

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/mirrorrc/mirrorrc/pkg/config"
	"github.com/mirrorrc/mirrorrc/pkg/executil"
)

// 🚫 ErrDirCreate marks a destination directory that could not be created.
// The invocation is skipped entirely; the copy tool is never started against
// a destination that does not exist.
var ErrDirCreate = errors.New("creating destination directory")

// 📦 InvocationResult captures one copy-tool run, verbatim. Exit-code meaning
// is Classify's job, not the invoker's.
type InvocationResult struct {
	SourcePath string
	DestPath   string
	ExitCode   int
	LogPath    string
}

// 🔧 Invoker launches the copy tool as a child process.
type Invoker struct {
	tool   string
	runner executil.Runner
}

// 🏭 NewInvoker creates an invoker for the given tool executable.
func NewInvoker(tool string, runner executil.Runner) *Invoker {
	return &Invoker{tool: tool, runner: runner}
}

// BuildArgs assembles the argument vector for one invocation: source,
// destination, thread count, mirror recursion, verbose per-file output with
// full timestamps and byte sizes, an append-mode log redirect, one exclusion
// flag per pattern, and the list-only flag when simulating. The vector is
// passed to the child process literally, never through a shell, so paths
// with embedded spaces stay intact.
func BuildArgs(sourcePath, destPath string, cfg config.RunConfig, logPath string) []string {
	args := []string{
		sourcePath,
		destPath,
		fmt.Sprintf("/MT:%d", cfg.Concurrency),
		"/MIR",
		"/V",
		"/TS",
		"/BYTES",
		"/NP",
		"/LOG+:" + logPath,
	}
	for _, pattern := range cfg.ExcludeFilePatterns {
		args = append(args, "/XF", pattern)
	}
	for _, dir := range cfg.ExcludeDirNames {
		args = append(args, "/XD", dir)
	}
	if cfg.SimulateOnly {
		args = append(args, "/L")
	}
	return args
}

// 🚀 Invoke mirrors one source folder onto destPath and returns the tool's
// exit status verbatim plus the per-invocation log it wrote. The destination
// directory is created first; if that fails the error wraps ErrDirCreate and
// the tool is never started.
func (inv *Invoker) Invoke(ctx context.Context, sourcePath, destPath string, cfg config.RunConfig, logPath string) (InvocationResult, error) {
	res := InvocationResult{SourcePath: sourcePath, DestPath: destPath, LogPath: logPath, ExitCode: -1}

	// Whitespace-containing paths are the classic failure mode here, so record
	// the exact path and its character length for diagnosis.
	zerolog.Ctx(ctx).Debug().
		Str("source", sourcePath).
		Int("chars", utf8.RuneCountInString(sourcePath)).
		Str("dest", destPath).
		Msg("invoking copy tool")

	if _, err := os.Stat(destPath); os.IsNotExist(err) {
		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return res, errors.Errorf("%w: %s: %v", ErrDirCreate, destPath, err)
		}
	}

	code, err := inv.runner.Run(ctx, inv.tool, BuildArgs(sourcePath, destPath, cfg, logPath))
	if err != nil {
		return res, errors.Errorf("starting copy tool: %w", err)
	}

	res.ExitCode = code
	return res, nil
}
