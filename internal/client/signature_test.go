package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureHTML(t *testing.T) {
	t.Run("renders only set fields", func(t *testing.T) {
		html := Signature{Name: "A", Email: "a@b.com"}.HTML()

		assert.Contains(t, html, ">A<")
		assert.Contains(t, html, "mailto:a@b.com")
		assert.Contains(t, html, ">a@b.com<")
		assert.NotContains(t, html, "Phone:")
		assert.NotContains(t, html, "Web:")
		assert.NotContains(t, html, "<strong>")
	})

	t.Run("custom override wins", func(t *testing.T) {
		sig := Signature{Name: "A", Email: "a@b.com", Phone: "123", Custom: "<p>Cheers, <b>Team</b></p>"}
		html := sig.HTML()

		assert.Equal(t, signatureContainer+"<p>Cheers, <b>Team</b></p></div>", html)
		assert.NotContains(t, html, "a@b.com")
		assert.NotContains(t, html, "123")
	})

	t.Run("blank custom falls back to fields", func(t *testing.T) {
		html := Signature{Phone: "555-0100", Custom: "   "}.HTML()
		assert.Contains(t, html, "Phone: 555-0100")
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.Equal(t, "", Signature{}.HTML())
		assert.Equal(t, "", Signature{Name: "  "}.HTML())
		assert.True(t, Signature{Title: "\t"}.IsEmpty())
	})

	t.Run("field values are escaped", func(t *testing.T) {
		html := Signature{Company: "<script>x</script>"}.HTML()
		assert.False(t, strings.Contains(html, "<script>"))
	})
}

func TestSignaturePersistence(t *testing.T) {
	s := NewFileStore(t.TempDir())

	sig, err := LoadSignature(s)
	require.NoError(t, err)
	assert.True(t, sig.IsEmpty())

	require.NoError(t, SaveSignature(s, Signature{Name: " Ada ", Website: "https://ada.dev"}))
	sig, err = LoadSignature(s)
	require.NoError(t, err)
	assert.Equal(t, Signature{Name: "Ada", Website: "https://ada.dev"}, sig)
	assert.Equal(t, "<p>Hi</p>"+sig.HTML(), sig.Append("<p>Hi</p>"))

	require.NoError(t, ClearSignature(s))
	sig, err = LoadSignature(s)
	require.NoError(t, err)
	assert.True(t, sig.IsEmpty())
}
