package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(NewFileStore(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.APIEndpoint)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "custom", cfg.SMTP.Provider)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.Secure)
}

func TestSaveConfig(t *testing.T) {
	s := NewFileStore(t.TempDir())

	assert.ErrorIs(t, SaveConfig(s, DefaultConfig()), ErrAPIKeyRequired)

	cfg := DefaultConfig()
	cfg.APIKey = "key"
	cfg.APIEndpoint = "https://mail.example.com"
	cfg.DefaultFromEmail = "me@example.com"
	require.NoError(t, SaveConfig(s, cfg))

	loaded, err := LoadConfig(s)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	// Saving replaces the record wholesale
	require.NoError(t, SaveConfig(s, &Config{APIKey: "other"}))
	loaded, err = LoadConfig(s)
	require.NoError(t, err)
	assert.Equal(t, "other", loaded.APIKey)
	assert.Empty(t, loaded.DefaultFromEmail)
	assert.Equal(t, DefaultEndpoint, loaded.APIEndpoint)

	require.NoError(t, ClearConfig(s))
	loaded, err = LoadConfig(s)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()

	hint, err := cfg.ApplyPreset("gmail")
	require.NoError(t, err)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, "gmail", cfg.SMTP.Provider)
	assert.Contains(t, hint, "App Password")

	hint, err = cfg.ApplyPreset("custom")
	require.NoError(t, err)
	assert.Empty(t, cfg.SMTP.Host)
	assert.Empty(t, hint)

	_, err = cfg.ApplyPreset("aol")
	assert.Error(t, err)

	assert.Equal(t, []string{"custom", "gmail", "outlook", "yahoo", "zoho"}, PresetNames())
}
