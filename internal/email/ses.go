package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/shashiX07/email-service/internal/model"
)

// SESConfig holds the configuration for the SES transport.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// SESAPI is the subset of the SES v2 client used by SESTransport.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
	GetAccount(ctx context.Context, params *sesv2.GetAccountInput, optFns ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error)
}

// SESTransport implements Transport using AWS SES v2.
type SESTransport struct {
	client SESAPI
}

// NewSESTransport creates a new SESTransport. Static credentials are used
// when both keys are set; otherwise the default AWS credential chain applies.
func NewSESTransport(ctx context.Context, cfg SESConfig) (*SESTransport, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ses: failed to load AWS config: %w", err)
	}

	return NewSESTransportWithClient(sesv2.NewFromConfig(awsCfg)), nil
}

// NewSESTransportWithClient creates an SESTransport around an existing client
func NewSESTransportWithClient(client SESAPI) *SESTransport {
	return &SESTransport{client: client}
}

// Name returns the provider name
func (s *SESTransport) Name() string {
	return "ses"
}

// Verify reads the account sending status
func (s *SESTransport) Verify(ctx context.Context) error {
	_, err := s.client.GetAccount(ctx, &sesv2.GetAccountInput{})
	return deliveryError(s.Name(), OpVerify, err)
}

// Send delivers the message as a raw MIME document so Reply-To and
// Message-ID survive, returning the SES message ID.
func (s *SESTransport) Send(ctx context.Context, msg *model.OutboundMessage) (string, error) {
	raw, err := rawMessage(msg)
	if err != nil {
		return "", deliveryError(s.Name(), OpSend, err)
	}

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(formatAddress(msg.From, msg.FromName)),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return "", deliveryError(s.Name(), OpSend, err)
	}

	if out.MessageId != nil && *out.MessageId != "" {
		return *out.MessageId, nil
	}
	return msg.MessageID, nil
}
