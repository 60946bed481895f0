package email

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/shashiX07/email-service/internal/model"
)

// GmailConfig holds the configuration for the Gmail transport.
type GmailConfig struct {
	// CredentialsJSON is the OAuth2 service account credentials JSON.
	CredentialsJSON string
	// ClientID, ClientSecret and RefreshToken are used instead of
	// CredentialsJSON for personal accounts without domain-wide delegation.
	ClientID     string
	ClientSecret string
	RefreshToken string
	// SenderAddress is the mailbox messages are sent as.
	SenderAddress string
}

// GmailTransport implements Transport using the Gmail API.
type GmailTransport struct {
	service *gmail.Service
}

// NewGmailTransport creates a new GmailTransport.
// A service account JSON is used with domain-wide delegation impersonating
// the sender; otherwise client credentials plus a refresh token are required.
func NewGmailTransport(ctx context.Context, cfg GmailConfig) (*GmailTransport, error) {
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("gmail: sender address is required")
	}

	var opt option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		jwtConfig, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), gmail.GmailSendScope, gmail.GmailReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("gmail: failed to parse credentials: %w", err)
		}
		jwtConfig.Subject = cfg.SenderAddress
		opt = option.WithHTTPClient(jwtConfig.Client(ctx))

	case cfg.RefreshToken != "":
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope, gmail.GmailReadonlyScope},
		}
		opt = option.WithHTTPClient(oauthCfg.Client(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken}))

	default:
		return nil, fmt.Errorf("gmail: credentials JSON or refresh token is required")
	}

	svc, err := gmail.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("gmail: failed to create service: %w", err)
	}

	return &GmailTransport{service: svc}, nil
}

// Name returns the provider name
func (g *GmailTransport) Name() string {
	return "gmail"
}

// Verify fetches the mailbox profile, which exercises token exchange and auth
func (g *GmailTransport) Verify(ctx context.Context) error {
	_, err := g.service.Users.GetProfile("me").Context(ctx).Do()
	return deliveryError(g.Name(), OpVerify, err)
}

// Send sends an email via the Gmail API and returns the Gmail message ID.
func (g *GmailTransport) Send(ctx context.Context, msg *model.OutboundMessage) (string, error) {
	raw, err := rawMessage(msg)
	if err != nil {
		return "", deliveryError(g.Name(), OpSend, err)
	}

	sent, err := g.service.Users.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}).Context(ctx).Do()
	if err != nil {
		return "", deliveryError(g.Name(), OpSend, err)
	}

	if sent.Id != "" {
		return sent.Id, nil
	}
	return msg.MessageID, nil
}
