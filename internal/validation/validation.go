package validation

import (
	"regexp"
	"strings"

	"github.com/shashiX07/email-service/internal/model"
)

// emailPattern accepts local@domain.tld with no whitespace and at least one
// dot after the @.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s matches the accepted address syntax
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Error describes every field that failed validation
type Error struct {
	Missing    []string
	Invalid    []string
	OutOfRange []string
}

func (e *Error) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "Invalid email address: "+strings.Join(e.Invalid, ", "))
	}
	if len(e.OutOfRange) > 0 {
		parts = append(parts, "Value out of range: "+strings.Join(e.OutOfRange, ", "))
	}
	return strings.Join(parts, "; ")
}

// Fields returns a field -> reason map suitable for an error response
func (e *Error) Fields() map[string]string {
	fields := make(map[string]string, len(e.Missing)+len(e.Invalid)+len(e.OutOfRange))
	for _, f := range e.Missing {
		fields[f] = "required"
	}
	for _, f := range e.Invalid {
		fields[f] = "invalid email address"
	}
	for _, f := range e.OutOfRange {
		fields[f] = "out of range"
	}
	return fields
}

// checker accumulates field failures in declaration order
type checker struct {
	err Error
}

func (c *checker) required(name, value string) {
	if strings.TrimSpace(value) == "" {
		c.err.Missing = append(c.err.Missing, name)
	}
}

// email validates a required or optional address field. Blank values are
// left to required().
func (c *checker) email(name, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	if !IsEmail(v) {
		c.err.Invalid = append(c.err.Invalid, name)
	}
}

func (c *checker) result() error {
	if len(c.err.Missing) == 0 && len(c.err.Invalid) == 0 && len(c.err.OutOfRange) == 0 {
		return nil
	}
	return &c.err
}

// ContactSubmission validates a contact-form payload
func ContactSubmission(s model.ContactSubmission) error {
	var c checker
	c.required("name", s.Name)
	c.required("email", s.Email)
	c.required("subject", s.Subject)
	c.required("message", s.Message)
	c.email("email", s.Email)
	return c.result()
}

// SendRequest validates a generic send payload
func SendRequest(r model.SendRequest) error {
	var c checker
	c.required("to", r.To)
	c.required("subject", r.Subject)
	c.required("content", r.Content)
	c.email("to", r.To)
	c.email("from", r.From)
	c.email("replyTo", r.ReplyTo)
	return c.result()
}

// SMTPSettings validates a transport test payload
func SMTPSettings(s model.SMTPSettings) error {
	var c checker
	c.required("host", s.Host)
	switch {
	case s.Port == 0:
		c.err.Missing = append(c.err.Missing, "port")
	case s.Port < 0 || s.Port > 65535:
		c.err.OutOfRange = append(c.err.OutOfRange, "port")
	}
	c.required("user", s.User)
	c.required("pass", s.Pass)
	return c.result()
}
