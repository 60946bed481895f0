package email

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/shashiX07/email-service/internal/model"
)

// buildMessage converts an OutboundMessage to a gomail message. HTML messages
// carrying a text rendering become multipart/alternative.
func buildMessage(msg *model.OutboundMessage) *gomail.Message {
	m := gomail.NewMessage()

	if msg.FromName != "" {
		m.SetAddressHeader("From", msg.From, msg.FromName)
	} else {
		m.SetHeader("From", msg.From)
	}
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	if msg.MessageID != "" {
		m.SetHeader("Message-ID", msg.MessageID)
	}
	m.SetDateHeader("Date", time.Now())

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}

	return m
}

// rawMessage renders the full RFC 5322 message
func rawMessage(msg *model.OutboundMessage) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buildMessage(msg).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render message: %w", err)
	}
	return buf.Bytes(), nil
}

// formatAddress renders an RFC 5322 mailbox, quoting the display name
func formatAddress(address, name string) string {
	if name == "" {
		return address
	}
	return gomail.NewMessage().FormatAddress(address, name)
}
