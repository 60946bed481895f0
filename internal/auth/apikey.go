package auth

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// API key verification errors
var (
	// ErrMissingKey is returned when the caller presented no key at all
	ErrMissingKey = errors.New("API key is required")
	// ErrInvalidKey is returned when the presented key does not match
	ErrInvalidKey = errors.New("Invalid API key")
)

// KeySource names where a presented key was found
type KeySource string

// Key sources in precedence order
const (
	KeySourceHeader KeySource = "header"
	KeySourceBody   KeySource = "body"
	KeySourceQuery  KeySource = "query"
	KeySourceNone   KeySource = ""
)

// KeyVerifier checks presented API keys against the configured secret
type KeyVerifier struct {
	secret []byte
}

// NewKeyVerifier creates a KeyVerifier for the given secret
func NewKeyVerifier(secret string) *KeyVerifier {
	return &KeyVerifier{secret: []byte(secret)}
}

// Verify distinguishes a missing key from a wrong one
func (v *KeyVerifier) Verify(presented string) error {
	if presented == "" {
		return ErrMissingKey
	}
	if len(v.secret) == 0 || subtle.ConstantTimeCompare([]byte(presented), v.secret) != 1 {
		return ErrInvalidKey
	}
	return nil
}

// Fingerprint returns a short, non-reversible identifier for a key that is
// safe to write to logs.
func Fingerprint(key string) string {
	if key == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:4])
}
