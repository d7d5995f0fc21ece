package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/mirrorrc/mirrorrc/pkg/config"
	"github.com/mirrorrc/mirrorrc/pkg/creds"
)

func testNotifyConfig() config.NotifyConfig {
	return config.NotifyConfig{
		Enabled:  true,
		SMTPHost: "mail.internal",
		SMTPPort: 25,
		From:     "mirror@internal.example",
		To:       []string{"ops@internal.example"},
	}
}

func TestSendMissingAttachment(t *testing.T) {
	d := NewSMTPDispatcher(testNotifyConfig(), nil)
	err := d.Send(context.Background(), Message{
		Subject:     "mirror run completed",
		Body:        "counts",
		Attachments: []string{"/does/not/exist.log"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotify))
}

func TestSendMissingCredentialSurfacesSentinel(t *testing.T) {
	// The caller decides what a missing credential means (skip + report), so
	// the sentinel must survive the dispatcher untranslated.
	d := NewSMTPDispatcher(testNotifyConfig(), &creds.Memory{})
	err := d.Send(context.Background(), Message{Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, creds.ErrCredentialMissing))
}

func TestSendInvalidSender(t *testing.T) {
	cfg := testNotifyConfig()
	cfg.From = "not an address"
	d := NewSMTPDispatcher(cfg, nil)
	err := d.Send(context.Background(), Message{Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotify))
}
