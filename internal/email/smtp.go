package email

import (
	"context"
	"crypto/tls"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/shashiX07/email-service/internal/model"
)

// SMTPConfig holds the configuration for the SMTP transport.
type SMTPConfig struct {
	Host   string
	Port   int
	Secure bool
	User   string
	Pass   string
	// Timeout bounds both Verify and Send. Zero means no bound beyond the caller's context.
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// SMTPTransport implements Transport on top of a gomail dialer.
type SMTPTransport struct {
	dial    func() (gomail.SendCloser, error)
	timeout time.Duration
}

// NewSMTPTransport creates a new SMTPTransport. No connection is opened until
// Verify or Send is called.
func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.SSL = cfg.Secure
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.Host,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	return &SMTPTransport{
		dial:    d.Dial,
		timeout: cfg.Timeout,
	}
}

// Name returns the provider name
func (t *SMTPTransport) Name() string {
	return "smtp"
}

// Verify opens an authenticated session and closes it again
func (t *SMTPTransport) Verify(ctx context.Context) error {
	err := t.bounded(ctx, func() error {
		sc, err := t.dial()
		if err != nil {
			return err
		}
		return sc.Close()
	})
	return deliveryError(t.Name(), OpVerify, err)
}

// Send delivers msg over a fresh session. The message's generated Message-ID
// is the delivery identifier.
func (t *SMTPTransport) Send(ctx context.Context, msg *model.OutboundMessage) (string, error) {
	m := buildMessage(msg)

	err := t.bounded(ctx, func() error {
		sc, err := t.dial()
		if err != nil {
			return err
		}
		defer sc.Close()
		return gomail.Send(sc, m)
	})
	if err != nil {
		return "", deliveryError(t.Name(), OpSend, err)
	}

	return msg.MessageID, nil
}

// bounded runs fn until it returns or the timeout/context expires. gomail has
// no context support, so an abandoned fn finishes in the background.
func (t *SMTPTransport) bounded(ctx context.Context, fn func() error) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
