package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shashiX07/email-service/internal/model"
)

// Identity holds the configured defaults used when composing messages
type Identity struct {
	DefaultFrom          string
	DefaultFromName      string
	DefaultTo            string
	ContactSubjectPrefix string
}

// Composer turns validated submissions into outbound messages
type Composer struct {
	id  Identity
	now func() time.Time
}

// NewComposer creates a new Composer
func NewComposer(id Identity) *Composer {
	return &Composer{id: id, now: time.Now}
}

// Contact composes the notification for a contact-form submission. The
// message goes to the configured inbox and replies go to the submitter.
func (c *Composer) Contact(sub *model.ContactSubmission) (*model.OutboundMessage, error) {
	data := ContactData{
		Name:       sub.Name,
		Email:      sub.Email,
		Subject:    sub.Subject,
		Message:    sub.Message,
		ReceivedAt: c.now(),
	}

	html, err := ContactEmailHTML(data)
	if err != nil {
		return nil, err
	}
	text, err := ContactEmailText(data)
	if err != nil {
		return nil, err
	}

	return &model.OutboundMessage{
		To:        c.id.DefaultTo,
		Subject:   c.id.ContactSubjectPrefix + sub.Subject,
		HTMLBody:  html,
		TextBody:  text,
		From:      c.id.DefaultFrom,
		FromName:  c.id.DefaultFromName,
		ReplyTo:   sub.Email,
		IsHTML:    true,
		MessageID: newMessageID(c.id.DefaultFrom),
	}, nil
}

// Generic composes a caller-addressed message. Sender fields fall back to
// the configured identity; HTML content gets a tag-stripped text fallback.
func (c *Composer) Generic(req *model.SendRequest) *model.OutboundMessage {
	msg := &model.OutboundMessage{
		To:       req.To,
		Subject:  req.Subject,
		From:     req.From,
		FromName: req.FromName,
		ReplyTo:  req.ReplyTo,
		IsHTML:   req.HTML(),
	}

	if msg.From == "" {
		msg.From = c.id.DefaultFrom
		if msg.FromName == "" {
			msg.FromName = c.id.DefaultFromName
		}
	}
	if msg.ReplyTo == "" {
		msg.ReplyTo = msg.From
	}

	if msg.IsHTML {
		msg.HTMLBody = req.Content
		msg.TextBody = StripTags(req.Content)
	} else {
		msg.TextBody = req.Content
	}

	msg.MessageID = newMessageID(msg.From)
	return msg
}

// Startup composes the operational notification sent when the server starts
func (c *Composer) Startup(data StartupData) (*model.OutboundMessage, error) {
	if data.StartedAt.IsZero() {
		data.StartedAt = c.now()
	}

	html, err := StartupEmailHTML(data)
	if err != nil {
		return nil, err
	}
	text, err := StartupEmailText(data)
	if err != nil {
		return nil, err
	}

	fromName := "API Server"
	if c.id.DefaultFromName != "" {
		fromName = c.id.DefaultFromName + " - API Server"
	}

	return &model.OutboundMessage{
		To: c.id.DefaultTo,
		Subject: fmt.Sprintf("Email API Server Started - %s (%s)",
			strings.ToUpper(data.Environment), data.StartedAt.Format(time.RFC3339)),
		HTMLBody:  html,
		TextBody:  text,
		From:      c.id.DefaultFrom,
		FromName:  fromName,
		IsHTML:    true,
		MessageID: newMessageID(c.id.DefaultFrom),
	}, nil
}

// newMessageID returns an RFC 5322 Message-ID scoped to the sender's domain
func newMessageID(from string) string {
	domain := "localhost"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = from[i+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
