package run

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestRunnerSync(t *testing.T) {
	var ran bool
	err := NewRunner(false).Run(context.Background(), OperationFunc(func(ctx context.Context) error {
		ran = true
		return nil
	}))
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestRunnerAsyncPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := NewRunner(true).Run(context.Background(), OperationFunc(func(ctx context.Context) error {
		return boom
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
}

func TestRunnerAsyncCancelUnblocksWait(t *testing.T) {
	// Cancellation releases the waiting caller even while the operation is
	// still running; the operation itself is never interrupted mid-flight.
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRunner(true).Run(ctx, OperationFunc(func(ctx context.Context) error {
		<-release
		return nil
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunnerAsyncSuccess(t *testing.T) {
	done := make(chan struct{})
	err := NewRunner(true).Run(context.Background(), OperationFunc(func(ctx context.Context) error {
		close(done)
		return nil
	}))
	require.NoError(t, err)
	<-done
}
