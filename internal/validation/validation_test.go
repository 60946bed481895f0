package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiX07/email-service/internal/model"
)

func TestIsEmail(t *testing.T) {
	valid := []string{"a@b.com", "first.last@sub.example.org", "x+tag@d.io"}
	for _, v := range valid {
		assert.True(t, IsEmail(v), v)
	}

	invalid := []string{"", "bad-address", "a@b", "a b@c.com", "a@b .com", "@b.com", "a@.com.", "a@@b.com"}
	for _, v := range invalid {
		assert.False(t, IsEmail(v), v)
	}
}

func TestContactSubmission(t *testing.T) {
	t.Run("accepts complete submission", func(t *testing.T) {
		err := ContactSubmission(model.ContactSubmission{
			Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello",
		})
		assert.NoError(t, err)
	})

	t.Run("reports every missing field", func(t *testing.T) {
		err := ContactSubmission(model.ContactSubmission{Email: "ada@example.com", Subject: "  "})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"name", "subject", "message"}, verr.Missing)
		assert.Empty(t, verr.Invalid)
		assert.Contains(t, err.Error(), "Missing required fields: name, subject, message")
	})

	t.Run("rejects malformed submitter address", func(t *testing.T) {
		err := ContactSubmission(model.ContactSubmission{
			Name: "Ada", Email: "ada-at-example", Subject: "Hi", Message: "Hello",
		})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"email"}, verr.Invalid)
		assert.Equal(t, map[string]string{"email": "invalid email address"}, verr.Fields())
	})
}

func TestSendRequest(t *testing.T) {
	t.Run("optional addresses are checked when present", func(t *testing.T) {
		err := SendRequest(model.SendRequest{
			To: "a@b.com", Subject: "s", Content: "c", From: "nope", ReplyTo: "also nope",
		})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"from", "replyTo"}, verr.Invalid)
	})

	t.Run("missing recipient is not also reported as invalid", func(t *testing.T) {
		err := SendRequest(model.SendRequest{Subject: "s", Content: "c"})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"to"}, verr.Missing)
		assert.Empty(t, verr.Invalid)
	})
}

func TestSMTPSettings(t *testing.T) {
	assert.NoError(t, SMTPSettings(model.SMTPSettings{Host: "smtp.example.com", Port: 587, User: "u", Pass: "p"}))

	err := SMTPSettings(model.SMTPSettings{Host: "smtp.example.com"})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"port", "user", "pass"}, verr.Missing)

	for _, port := range []model.Port{70000, -1} {
		err = SMTPSettings(model.SMTPSettings{Host: "smtp.example.com", Port: port, User: "u", Pass: "p"})
		require.True(t, errors.As(err, &verr))
		assert.Empty(t, verr.Missing)
		assert.Equal(t, []string{"port"}, verr.OutOfRange)
		assert.Equal(t, "Value out of range: port", err.Error())
		assert.Equal(t, map[string]string{"port": "out of range"}, verr.Fields())
	}
}
