package executil

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain lets the test binary stand in for an external tool so the runner
// can be exercised without depending on anything installed on the host.
func TestMain(m *testing.M) {
	if code := os.Getenv("EXECUTIL_TEST_EXIT"); code != "" {
		switch code {
		case "0":
			os.Exit(0)
		case "3":
			os.Exit(3)
		default:
			os.Exit(16)
		}
	}
	os.Exit(m.Run())
}

func TestExecRunnerExitCodes(t *testing.T) {
	self, err := os.Executable()
	require.NoError(t, err)

	tests := []struct {
		name string
		exit string
		want int
	}{
		{name: "zero_exit", exit: "0", want: 0},
		{name: "copy_style_exit", exit: "3", want: 3},
		{name: "failure_exit", exit: "16", want: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EXECUTIL_TEST_EXIT", tt.exit)
			code, err := ExecRunner{}.Run(context.Background(), self, nil)
			require.NoError(t, err, "a command that ran to completion is not a runner error")
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	code, err := ExecRunner{}.Run(context.Background(), "/definitely/not/a/binary", nil)
	require.Error(t, err)
	assert.Equal(t, -1, code)
}
