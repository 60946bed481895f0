package service

import (
	"context"
	"fmt"

	"github.com/shashiX07/email-service/internal/config"
	"github.com/shashiX07/email-service/internal/email"
	"github.com/shashiX07/email-service/internal/model"
)

// TransportFactory builds a transport from caller-supplied SMTP settings
type TransportFactory func(settings *model.SMTPSettings) email.Transport

// NewTransport builds the delivery transport selected by smtp.provider
func NewTransport(ctx context.Context, cfg *config.Config) (email.Transport, error) {
	switch cfg.SMTP.Provider {
	case "gmail":
		return email.NewGmailTransport(ctx, email.GmailConfig{
			CredentialsJSON: cfg.Gmail.CredentialsJSON,
			ClientID:        cfg.Gmail.ClientID,
			ClientSecret:    cfg.Gmail.ClientSecret,
			RefreshToken:    cfg.Gmail.RefreshToken,
			SenderAddress:   cfg.Mail.DefaultFrom,
		})
	case "ses":
		return email.NewSESTransport(ctx, email.SESConfig{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
		})
	case "smtp", "":
		return email.NewSMTPTransport(email.SMTPConfig{
			Host:               cfg.SMTP.Host,
			Port:               cfg.SMTP.Port,
			Secure:             cfg.SMTP.Secure,
			User:               cfg.SMTP.User,
			Pass:               cfg.SMTP.Pass,
			Timeout:            cfg.SMTP.Timeout,
			InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
		}), nil
	default:
		return nil, fmt.Errorf("unknown smtp provider %q", cfg.SMTP.Provider)
	}
}

// SMTPTransportFactory returns a factory for ad-hoc SMTP transports that
// share the configured timeout and TLS policy
func SMTPTransportFactory(cfg *config.Config) TransportFactory {
	return func(s *model.SMTPSettings) email.Transport {
		return email.NewSMTPTransport(email.SMTPConfig{
			Host:               s.Host,
			Port:               int(s.Port),
			Secure:             s.Secure,
			User:               s.User,
			Pass:               s.Pass,
			Timeout:            cfg.SMTP.Timeout,
			InsecureSkipVerify: cfg.SMTP.InsecureSkipVerify,
		})
	}
}
