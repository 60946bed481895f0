package client

import (
	"regexp"
	"strings"

	"github.com/shashiX07/email-service/internal/validation"
)

var recipientSeparators = regexp.MustCompile(`[\n,]+`)

// ParseRecipients splits text on newlines and commas, drops blank and
// syntactically invalid entries, and removes duplicates keeping the first
// occurrence.
func ParseRecipients(text string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, part := range recipientSeparators.Split(text, -1) {
		addr := strings.TrimSpace(part)
		if addr == "" || !validation.IsEmail(addr) {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}
