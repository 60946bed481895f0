package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	keyring.MockInit()
	return map[string]Store{
		"file":    NewFileStore(t.TempDir()),
		"keyring": NewKeyringStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var sig Signature
			found, err := s.Load(SignatureKey, &sig)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, s.Save(SignatureKey, Signature{Name: "A"}))
			found, err = s.Load(SignatureKey, &sig)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "A", sig.Name)

			require.NoError(t, s.Delete(SignatureKey))
			require.NoError(t, s.Delete(SignatureKey))

			found, err = s.Load(SignatureKey, &sig)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestFileStorePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewFileStore(dir)

	require.NoError(t, s.Save(ConfigKey, DefaultConfig()))

	info, err := os.Stat(filepath.Join(dir, ConfigKey+".json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigKey+".json"), []byte("{not json"), 0o600))

	_, err := LoadConfig(NewFileStore(dir))
	assert.Error(t, err)
}
