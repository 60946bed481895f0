package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "api:\n  key: secret\n"))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.API.Key)
	assert.Equal(t, "smtp", cfg.SMTP.Provider)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 30*time.Second, cfg.SMTP.Timeout)
	assert.True(t, cfg.SMTP.VerifyBeforeSend)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Limit)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "memory", cfg.RateLimit.Store)
	assert.Equal(t, "Portfolio Contact: ", cfg.Mail.ContactSubjectPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFileValues(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `
environment: production
smtp:
  host: smtp.example.com
  port: 465
  secure: true
  user: mailer
  pass: hunter2
rate_limit:
  limit: 3
  window: 1m
`))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.Secure)
	assert.Equal(t, 3, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.SMTPConfigured())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MAILGW_API_KEY", "from-env")
	t.Setenv("MAILGW_SMTP_PORT", "2525")
	t.Setenv("MAILGW_RATE_LIMIT_ENABLED", "false")

	cfg, err := LoadFile(writeConfig(t, "api:\n  key: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.API.Key)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestSMTPConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"smtp without credentials", Config{SMTP: SMTPConfig{Provider: "smtp"}}, false},
		{"smtp with credentials", Config{SMTP: SMTPConfig{Provider: "smtp", User: "u", Pass: "p"}}, true},
		{"gmail refresh token", Config{SMTP: SMTPConfig{Provider: "gmail"}, Gmail: GmailConfig{RefreshToken: "t"}}, true},
		{"gmail nothing", Config{SMTP: SMTPConfig{Provider: "gmail"}}, false},
		{"ses region", Config{SMTP: SMTPConfig{Provider: "ses"}, SES: SESConfig{Region: "eu-west-1"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.SMTPConfigured())
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			API:       APIConfig{Key: "k"},
			Mail:      MailConfig{DefaultFrom: "gw@example.com", DefaultTo: "inbox@example.com"},
			SMTP:      SMTPConfig{Provider: "smtp"},
			RateLimit: RateLimitConfig{Enabled: true, Limit: 10, Window: time.Minute, Store: "memory"},
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api key", func(c *Config) { c.API.Key = "" }},
		{"missing default from", func(c *Config) { c.Mail.DefaultFrom = "" }},
		{"missing default to", func(c *Config) { c.Mail.DefaultTo = "" }},
		{"bad trusted proxy", func(c *Config) { c.Server.TrustedProxies = []string{"10.0.0.0/99"} }},
		{"unknown provider", func(c *Config) { c.SMTP.Provider = "pigeon" }},
		{"unknown store", func(c *Config) { c.RateLimit.Store = "disk" }},
		{"zero limit", func(c *Config) { c.RateLimit.Limit = 0 }},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg = valid()
	cfg.RateLimit = RateLimitConfig{Enabled: false, Store: "memory"}
	assert.NoError(t, cfg.Validate(), "limits are ignored while disabled")
}

func TestTrustedPrefixes(t *testing.T) {
	c := ServerConfig{TrustedProxies: []string{"10.1.2.3/8", " 127.0.0.1 ", "", "::1"}}
	prefixes, err := c.TrustedPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "10.0.0.0/8", prefixes[0].String())
	assert.Equal(t, "127.0.0.1/32", prefixes[1].String())
	assert.Equal(t, "::1/128", prefixes[2].String())

	_, err = ServerConfig{TrustedProxies: []string{"proxy.local"}}.TrustedPrefixes()
	assert.Error(t, err)
}
