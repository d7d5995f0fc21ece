package run

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// 🏃 Operation is one unit of executable work.
type Operation interface {
	Execute(ctx context.Context) error
}

// OperationFunc adapts a plain function to Operation.
type OperationFunc func(ctx context.Context) error

func (f OperationFunc) Execute(ctx context.Context) error { return f(ctx) }

// 🔄 Runner executes operations, optionally off the calling goroutine with
// context cancellation honored while waiting.
type Runner struct {
	async bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(async bool) *Runner {
	return &Runner{async: async}
}

// Run executes one operation.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	if !r.async {
		return op.Execute(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return op.Execute(gctx)
	})

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
