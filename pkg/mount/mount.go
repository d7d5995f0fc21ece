// Package mount acquires an authenticated mapping to the remote destination
// share for the duration of one run. The orchestrator treats the mapping as a
// scoped resource: acquired before the folder loop, released on every exit
// path.
package mount

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/mirrorrc/mirrorrc/pkg/creds"
	"github.com/mirrorrc/mirrorrc/pkg/executil"
)

// 🚫 ErrMount indicates the share could not be mapped: every candidate mount
// point is taken or authentication failed on all of them.
var ErrMount = errors.New("mounting destination share")

// 🔌 Mounter maps and unmaps the remote share.
type Mounter interface {
	// Acquire maps remote onto a free mount point and returns the mounted
	// root to use as the run's destination root.
	Acquire(ctx context.Context, cred creds.Credential, remote string) (string, error)
	// Release unmaps a root previously returned by Acquire.
	Release(ctx context.Context, root string) error
}

// 🌐 NetUse maps shares through the platform's `net use` tool.
type NetUse struct {
	candidates []string
	runner     executil.Runner
}

// 🏭 NewNetUse creates a mounter that tries the given mount points in order.
func NewNetUse(candidates []string, runner executil.Runner) *NetUse {
	return &NetUse{candidates: candidates, runner: runner}
}

// Acquire tries each candidate mount point in order and returns the first one
// the share maps onto. A candidate that already resolves on disk is in use
// and is skipped without being tried.
func (m *NetUse) Acquire(ctx context.Context, cred creds.Credential, remote string) (string, error) {
	logger := zerolog.Ctx(ctx)

	tried := 0
	for _, candidate := range m.candidates {
		if _, err := os.Stat(candidate + `\`); err == nil {
			logger.Debug().Str("mount_point", candidate).Msg("mount point already in use")
			continue
		}
		tried++

		args := []string{"use", candidate, remote, cred.Secret, "/user:" + cred.Username}
		code, err := m.runner.Run(ctx, "net", args)
		if err != nil {
			return "", errors.Errorf("%w: %v", ErrMount, err)
		}
		if code == 0 {
			logger.Info().Str("mount_point", candidate).Str("remote", remote).Msg("share mounted")
			return candidate, nil
		}
		logger.Warn().Str("mount_point", candidate).Int("exit_code", code).Msg("mount attempt failed")
	}

	if tried == 0 {
		return "", errors.Errorf("%w: no free mount point among %v", ErrMount, m.candidates)
	}
	return "", errors.Errorf("%w: all candidates failed for %s", ErrMount, remote)
}

// Release unmaps the root. Failures are reported but the run is already over
// by the time this runs, so callers typically just log them.
func (m *NetUse) Release(ctx context.Context, root string) error {
	code, err := m.runner.Run(ctx, "net", []string{"use", root, "/delete", "/y"})
	if err != nil {
		return errors.Errorf("releasing mount %s: %w", root, err)
	}
	if code != 0 {
		return errors.Errorf("releasing mount %s: net use exited %d", root, code)
	}
	zerolog.Ctx(ctx).Info().Str("mount_point", root).Msg("share released")
	return nil
}
