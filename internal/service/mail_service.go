package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shashiX07/email-service/internal/config"
	"github.com/shashiX07/email-service/internal/email"
	"github.com/shashiX07/email-service/internal/logger"
	"github.com/shashiX07/email-service/internal/metrics"
	"github.com/shashiX07/email-service/internal/model"
	"github.com/shashiX07/email-service/internal/validation"
)

// Endpoints advertised in the startup notification and the service info
var Endpoints = []string{
	"GET / - Service information",
	"GET /health - Health check",
	"POST /api/contact-form - Contact form submission",
	"POST /api/send-email - Generic email sending",
	"POST /api/test-smtp - SMTP credential check",
	"POST /api/test-email - Startup notification on demand",
}

// DeliveryRecorder persists delivery attempts
type DeliveryRecorder interface {
	Create(ctx context.Context, d *model.Delivery) error
}

// Result describes a successful delivery
type Result struct {
	MessageID string
	SentAt    time.Time
}

// MailService validates, composes and delivers messages
type MailService struct {
	cfg          *config.Config
	transport    email.Transport
	composer     *email.Composer
	recorder     DeliveryRecorder
	newTransport TransportFactory
	version      string
	log          *logger.Logger
	now          func() time.Time
}

// NewMailService creates a new MailService. recorder may be nil when the
// delivery log is disabled.
func NewMailService(
	cfg *config.Config,
	transport email.Transport,
	recorder DeliveryRecorder,
	version string,
	log *logger.Logger,
) *MailService {
	return &MailService{
		cfg:       cfg,
		transport: transport,
		composer: email.NewComposer(email.Identity{
			DefaultFrom:          cfg.Mail.DefaultFrom,
			DefaultFromName:      cfg.Mail.DefaultFromName,
			DefaultTo:            cfg.Mail.DefaultTo,
			ContactSubjectPrefix: cfg.Mail.ContactSubjectPrefix,
		}),
		recorder:     recorder,
		newTransport: SMTPTransportFactory(cfg),
		version:      version,
		log:          log.WithComponent("mail"),
		now:          time.Now,
	}
}

// WithTransportFactory replaces the factory used by TestSMTP
func (s *MailService) WithTransportFactory(f TransportFactory) *MailService {
	s.newTransport = f
	return s
}

// Provider returns the name of the configured transport
func (s *MailService) Provider() string {
	return s.transport.Name()
}

// SubmitContact relays a contact-form submission to the configured inbox
func (s *MailService) SubmitContact(ctx context.Context, sub *model.ContactSubmission, clientIP string) (*Result, error) {
	if err := validation.ContactSubmission(*sub); err != nil {
		return nil, err
	}

	msg, err := s.composer.Contact(sub)
	if err != nil {
		return nil, err
	}

	return s.deliver(ctx, model.EndpointContactForm, msg, clientIP)
}

// SendEmail relays a caller-addressed message
func (s *MailService) SendEmail(ctx context.Context, req *model.SendRequest, clientIP string) (*Result, error) {
	if err := validation.SendRequest(*req); err != nil {
		return nil, err
	}

	return s.deliver(ctx, model.EndpointSendEmail, s.composer.Generic(req), clientIP)
}

// TestSMTP verifies caller-supplied credentials without sending anything
func (s *MailService) TestSMTP(ctx context.Context, settings *model.SMTPSettings) error {
	if err := validation.SMTPSettings(*settings); err != nil {
		return err
	}

	t := s.newTransport(settings)
	err := t.Verify(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("host", settings.Host).Int("port", int(settings.Port)).Msg("SMTP verification failed")
		return err
	}

	s.log.Info().Str("host", settings.Host).Int("port", int(settings.Port)).Msg("SMTP verification succeeded")
	return nil
}

// SendStartupNotification sends the operational notification to the
// configured inbox
func (s *MailService) SendStartupNotification(ctx context.Context, endpoint string) (*Result, error) {
	msg, err := s.composer.Startup(email.StartupData{
		StartedAt:   s.now(),
		Environment: s.cfg.Environment,
		SMTPHost:    s.cfg.SMTP.Host,
		SMTPPort:    s.cfg.SMTP.Port,
		Provider:    s.transport.Name(),
		From:        s.cfg.Mail.DefaultFrom,
		To:          s.cfg.Mail.DefaultTo,
		Version:     s.version,
		Endpoints:   Endpoints,
	})
	if err != nil {
		return nil, err
	}

	return s.deliver(ctx, endpoint, msg, "")
}

// deliver runs the optional verification handshake and one send attempt,
// then records the outcome
func (s *MailService) deliver(ctx context.Context, endpoint string, msg *model.OutboundMessage, clientIP string) (*Result, error) {
	provider := s.transport.Name()
	start := time.Now()

	messageID, err := s.attempt(ctx, msg)

	metrics.DeliveryDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	outcome := metrics.OutcomeSent
	if err != nil {
		outcome = metrics.OutcomeFailed
	}
	metrics.Deliveries.WithLabelValues(endpoint, provider, outcome).Inc()

	s.log.Delivery(endpoint, provider, msg.To, messageID, err)
	s.record(ctx, endpoint, provider, msg, messageID, clientIP, err)

	if err != nil {
		return nil, err
	}
	return &Result{MessageID: messageID, SentAt: s.now().UTC()}, nil
}

// attempt bounds the verify handshake and the send together by smtp.timeout.
// A transport that ignores its context is abandoned once the deadline passes.
func (s *MailService) attempt(ctx context.Context, msg *model.OutboundMessage) (string, error) {
	if timeout := s.cfg.SMTP.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		id  string
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		id, err := s.verifyAndSend(ctx, msg)
		done <- outcome{id: id, err: err}
	}()

	select {
	case o := <-done:
		return o.id, o.err
	case <-ctx.Done():
		return "", &email.DeliveryError{Provider: s.transport.Name(), Op: email.OpSend, Err: ctx.Err()}
	}
}

func (s *MailService) verifyAndSend(ctx context.Context, msg *model.OutboundMessage) (string, error) {
	if s.cfg.SMTP.VerifyBeforeSend {
		if err := s.transport.Verify(ctx); err != nil {
			return "", err
		}
	}
	return s.transport.Send(ctx, msg)
}

func (s *MailService) record(ctx context.Context, endpoint, provider string, msg *model.OutboundMessage, messageID, clientIP string, sendErr error) {
	if s.recorder == nil {
		return
	}

	d := &model.Delivery{
		ID:        uuid.New().String(),
		Endpoint:  endpoint,
		Provider:  provider,
		Recipient: msg.To,
		Subject:   msg.Subject,
		Status:    model.DeliveryStatusSent,
		CreatedAt: s.now().UTC(),
	}
	if messageID != "" {
		d.MessageID = &messageID
	}
	if clientIP != "" {
		d.ClientIP = &clientIP
	}
	if sendErr != nil {
		d.Status = model.DeliveryStatusFailed
		errText := sendErr.Error()
		d.Error = &errText
	}

	// Recorded even when the caller has already gone away
	recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.recorder.Create(recCtx, d); err != nil {
		s.log.Error().Err(err).Str("delivery_id", d.ID).Msg("failed to record delivery")
	}
}
