package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecipients(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"dedupes and drops invalid", "a@b.com, a@b.com\nbad-address\nc@d.com", []string{"a@b.com", "c@d.com"}},
		{"empty", "", nil},
		{"only separators", ",,\n\n , ", nil},
		{"keeps first-seen order", "z@y.com\na@b.com,z@y.com", []string{"z@y.com", "a@b.com"}},
		{"windows line endings", "a@b.com\r\nc@d.com\r\n", []string{"a@b.com", "c@d.com"}},
		{"spaces inside an entry are invalid", "a b@c.com, ok@c.com", []string{"ok@c.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRecipients(tt.in))
		})
	}
}
