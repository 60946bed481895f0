package client

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewNotifier(&buf)

	n.Success("All Emails Sent!", "Successfully sent 3 emails")
	n.Warning("Partially Complete", "Sent: 2, Failed: 1")
	n.Info("Signature Cleared", "")

	assert.Equal(t,
		"✔ All Emails Sent!: Successfully sent 3 emails\n"+
			"! Partially Complete: Sent: 2, Failed: 1\n"+
			"i Signature Cleared\n",
		buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}
