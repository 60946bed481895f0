package mailgateway

import "time"

// ContactForm is a contact-form submission.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Email is a caller-addressed message.
type Email struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Content  string `json:"content"`
	From     string `json:"from,omitempty"`
	FromName string `json:"fromName,omitempty"`
	ReplyTo  string `json:"replyTo,omitempty"`
	// IsHTML defaults to true on the gateway when nil
	IsHTML *bool `json:"isHtml,omitempty"`
}

// SMTPSettings are credentials to verify with TestSMTP.
type SMTPSettings struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Secure bool   `json:"secure"`
	User   string `json:"user"`
	Pass   string `json:"pass"`
}

// SendResult is returned by successful sends.
type SendResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	MessageID string    `json:"messageId"`
	Timestamp time.Time `json:"timestamp"`
}

// Health is the gateway health report.
type Health struct {
	Success        bool      `json:"success"`
	Message        string    `json:"message"`
	SMTPConfigured bool      `json:"smtp_configured"`
	Timestamp      time.Time `json:"timestamp"`
}
