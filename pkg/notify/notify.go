// Package notify sends the end-of-run notification. Sending is strictly the
// last step of a run and purely informational: a transport failure is
// reported, never retried, and never re-runs the sync.
package notify

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
	"gitlab.com/tozd/go/errors"

	"github.com/mirrorrc/mirrorrc/pkg/config"
	"github.com/mirrorrc/mirrorrc/pkg/creds"
)

// 🚫 ErrNotify wraps transport failures.
var ErrNotify = errors.New("sending notification")

// ✉️ Message is one run notification.
type Message struct {
	Subject      string
	Body         string
	Attachments  []string
	HighPriority bool
}

// 🔌 Dispatcher delivers a run notification through some transport.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

// 📮 SMTPDispatcher delivers notifications over SMTP, authenticating with the
// stored credential when one is available.
type SMTPDispatcher struct {
	cfg      config.NotifyConfig
	provider creds.Provider
}

// 🏭 NewSMTPDispatcher creates a dispatcher for the configured transport.
// provider may be nil for unauthenticated relays.
func NewSMTPDispatcher(cfg config.NotifyConfig, provider creds.Provider) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg, provider: provider}
}

// Send builds and delivers the message. Attachment paths that do not exist
// are an error: the run log and transferred-items report are always written
// before this step runs.
func (d *SMTPDispatcher) Send(ctx context.Context, msg Message) error {
	for _, path := range msg.Attachments {
		if _, err := os.Stat(path); err != nil {
			return errors.Errorf("%w: attachment %s: %v", ErrNotify, path, err)
		}
	}

	m := mail.NewMsg()
	if err := m.From(d.cfg.From); err != nil {
		return errors.Errorf("%w: invalid sender: %v", ErrNotify, err)
	}
	if err := m.To(d.cfg.To...); err != nil {
		return errors.Errorf("%w: invalid recipients: %v", ErrNotify, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	if msg.HighPriority {
		m.SetImportance(mail.ImportanceHigh)
	}
	for _, path := range msg.Attachments {
		m.AttachFile(path)
	}

	opts := []mail.Option{
		mail.WithPort(d.cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if d.provider != nil {
		cred, err := d.provider.Get(ctx)
		if err != nil {
			if errors.Is(err, creds.ErrCredentialMissing) {
				return err
			}
			return errors.Errorf("%w: retrieving credential: %v", ErrNotify, err)
		}
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cred.Username),
			mail.WithPassword(cred.Secret),
		)
	}

	client, err := mail.NewClient(d.cfg.SMTPHost, opts...)
	if err != nil {
		return errors.Errorf("%w: %v", ErrNotify, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("host", d.cfg.SMTPHost).
		Strs("to", d.cfg.To).
		Int("attachments", len(msg.Attachments)).
		Msg("sending notification")

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Errorf("%w: %v", ErrNotify, err)
	}
	return nil
}
