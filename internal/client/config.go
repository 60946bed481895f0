package client

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultEndpoint is used until an endpoint is saved
const DefaultEndpoint = "http://localhost:3001"

// ErrAPIKeyRequired is returned when saving a configuration without a key
var ErrAPIKeyRequired = errors.New("API key is required")

// SMTPSettings mirrors the gateway transport settings for local testing.
// They are not authoritative; the gateway uses its own configuration.
type SMTPSettings struct {
	Provider string `json:"provider"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	Secure   bool   `json:"secure"`
	User     string `json:"user"`
	Pass     string `json:"pass"`
}

// Config is the operator's persisted client configuration
type Config struct {
	APIKey           string       `json:"apiKey"`
	APIEndpoint      string       `json:"apiEndpoint"`
	DefaultFromEmail string       `json:"defaultFromEmail"`
	DefaultFromName  string       `json:"defaultFromName"`
	DefaultToEmail   string       `json:"defaultToEmail"`
	SMTP             SMTPSettings `json:"smtp"`
}

// DefaultConfig returns the configuration used before anything is saved
func DefaultConfig() *Config {
	return &Config{
		APIEndpoint: DefaultEndpoint,
		SMTP: SMTPSettings{
			Provider: "custom",
			Port:     "587",
		},
	}
}

// LoadConfig returns the saved configuration or the defaults
func LoadConfig(s Store) (*Config, error) {
	cfg := DefaultConfig()
	found, err := s.Load(ConfigKey, cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		return DefaultConfig(), nil
	}
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = DefaultEndpoint
	}
	return cfg, nil
}

// SaveConfig overwrites the saved configuration
func SaveConfig(s Store, cfg *Config) error {
	if cfg.APIKey == "" {
		return ErrAPIKeyRequired
	}
	return s.Save(ConfigKey, cfg)
}

// ClearConfig deletes the saved configuration
func ClearConfig(s Store) error {
	return s.Delete(ConfigKey)
}

// Preset is a well-known SMTP provider
type Preset struct {
	Host   string
	Port   string
	Secure bool
	// Hint is shown to the operator when the preset is applied
	Hint string
}

// Presets lists the SMTP providers the client knows
var Presets = map[string]Preset{
	"gmail": {
		Host: "smtp.gmail.com",
		Port: "587",
		Hint: "Remember to use an App Password, not your regular Gmail password",
	},
	"outlook": {
		Host: "smtp-mail.outlook.com",
		Port: "587",
		Hint: "Use your Outlook/Hotmail email and password",
	},
	"yahoo":  {Host: "smtp.mail.yahoo.com", Port: "587"},
	"zoho":   {Host: "smtp.zoho.com", Port: "587"},
	"custom": {Port: "587"},
}

// PresetNames returns the preset names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset fills host, port and TLS mode from the named preset and
// returns the preset's hint
func (c *Config) ApplyPreset(name string) (string, error) {
	p, ok := Presets[name]
	if !ok {
		return "", fmt.Errorf("unknown SMTP provider %q", name)
	}
	c.SMTP.Provider = name
	c.SMTP.Host = p.Host
	c.SMTP.Port = p.Port
	c.SMTP.Secure = p.Secure
	return p.Hint, nil
}
