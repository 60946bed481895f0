package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyVerifier(t *testing.T) {
	v := NewKeyVerifier("s3cret-key")

	assert.NoError(t, v.Verify("s3cret-key"))
	assert.ErrorIs(t, v.Verify(""), ErrMissingKey)
	assert.ErrorIs(t, v.Verify("s3cret-kez"), ErrInvalidKey)
	assert.ErrorIs(t, v.Verify("s3cret-key-longer"), ErrInvalidKey)
}

func TestKeyVerifierWithoutSecretRejectsEverything(t *testing.T) {
	v := NewKeyVerifier("")

	assert.ErrorIs(t, v.Verify("anything"), ErrInvalidKey)
	assert.ErrorIs(t, v.Verify(""), ErrMissingKey)
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("s3cret-key")

	assert.Len(t, fp, 8)
	assert.Equal(t, fp, Fingerprint("s3cret-key"))
	assert.NotEqual(t, fp, Fingerprint("other-key"))
	assert.NotContains(t, "s3cret-key", fp)
	assert.Empty(t, Fingerprint(""))
}
