// Package executil runs external tools with an explicit argument vector and
// reports their exit status. Arguments are never passed through a shell, so
// paths with embedded whitespace reach the child process intact.
package executil

import (
	"context"
	"os/exec"

	"gitlab.com/tozd/go/errors"
)

// Runner executes one external command and returns its exit code. A non-nil
// error means the command could not be run at all (missing binary, bad working
// directory); a command that ran and exited non-zero returns that code with a
// nil error, because exit-code interpretation belongs to the caller.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (int, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, errors.Errorf("running %s: %w", name, err)
}
