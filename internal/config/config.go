package config

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment names recognised by the gateway
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all configuration for the gateway. It is loaded once at
// startup and treated as read-only afterwards.
type Config struct {
	Environment   string              `mapstructure:"environment"`
	Server        ServerConfig        `mapstructure:"server"`
	Log           LogConfig           `mapstructure:"log"`
	API           APIConfig           `mapstructure:"api"`
	SMTP          SMTPConfig          `mapstructure:"smtp"`
	Gmail         GmailConfig         `mapstructure:"gmail"`
	SES           SESConfig           `mapstructure:"ses"`
	Mail          MailConfig          `mapstructure:"mail"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	CORS          CORSConfig          `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// TrustedProxies lists IPs or CIDR ranges whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means the peer address is used.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// TrustedPrefixes parses TrustedProxies. A bare IP becomes a single-address
// prefix.
func (c ServerConfig) TrustedPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, e := range c.TrustedProxies {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", e, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", e, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// APIConfig holds the shared secret callers must present
type APIConfig struct {
	Key string `mapstructure:"key"`
}

// SMTPConfig holds the delivery transport configuration
type SMTPConfig struct {
	// Provider selects the transport: "smtp", "gmail" or "ses"
	Provider           string        `mapstructure:"provider"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Secure             bool          `mapstructure:"secure"`
	User               string        `mapstructure:"user"`
	Pass               string        `mapstructure:"pass"`
	Timeout            time.Duration `mapstructure:"timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	// VerifyBeforeSend runs the connectivity+auth handshake before every send
	VerifyBeforeSend bool `mapstructure:"verify_before_send"`
}

// GmailConfig holds Gmail API configuration
type GmailConfig struct {
	// CredentialsJSON is the service account credentials JSON content
	CredentialsJSON string `mapstructure:"credentials_json"`
	// ClientID for OAuth2 token-based auth (alternative to service account)
	ClientID string `mapstructure:"client_id"`
	// ClientSecret for OAuth2 token-based auth
	ClientSecret string `mapstructure:"client_secret"`
	// RefreshToken for OAuth2 token-based auth
	RefreshToken string `mapstructure:"refresh_token"`
}

// SESConfig holds AWS SES v2 configuration
type SESConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// MailConfig holds the default identities used when composing messages
type MailConfig struct {
	DefaultFrom          string `mapstructure:"default_from"`
	DefaultFromName      string `mapstructure:"default_from_name"`
	DefaultTo            string `mapstructure:"default_to"`
	ContactSubjectPrefix string `mapstructure:"contact_subject_prefix"`
}

// RateLimitConfig holds the per-address limit for email-sending routes
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
	// Store is "memory" or "redis"
	Store string `mapstructure:"store"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds PostgreSQL configuration for the delivery log
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// DSN returns the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// NotificationsConfig controls operational emails sent by the gateway itself
type NotificationsConfig struct {
	StartupEmail bool `mapstructure:"startup_email"`
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IsProduction reports whether the gateway runs in production mode.
// Upstream transport diagnostics are hidden from callers in production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// SMTPConfigured reports whether transport credentials are present
func (c *Config) SMTPConfigured() bool {
	switch c.SMTP.Provider {
	case "gmail":
		return c.Gmail.CredentialsJSON != "" || c.Gmail.RefreshToken != ""
	case "ses":
		return c.SES.Region != ""
	default:
		return c.SMTP.User != "" && c.SMTP.Pass != ""
	}
}

// Validate checks the settings the gateway cannot start without
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required")
	}
	if c.Mail.DefaultFrom == "" {
		return fmt.Errorf("mail.default_from is required")
	}
	if c.Mail.DefaultTo == "" {
		return fmt.Errorf("mail.default_to is required")
	}
	if _, err := c.Server.TrustedPrefixes(); err != nil {
		return fmt.Errorf("server.trusted_proxies: %w", err)
	}
	switch c.SMTP.Provider {
	case "smtp", "gmail", "ses":
	default:
		return fmt.Errorf("unknown smtp.provider %q", c.SMTP.Provider)
	}
	switch c.RateLimit.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown rate_limit.store %q", c.RateLimit.Store)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate_limit.limit and rate_limit.window must be positive")
	}
	return nil
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/email-service")

	return load(v)
}

// LoadFile reads configuration from an explicit file path
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("MAILGW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvDevelopment)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.max_body_bytes", 10<<20)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.trusted_proxies", []string{})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")

	v.SetDefault("api.key", "")

	// Transport defaults
	v.SetDefault("smtp.provider", "smtp")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.secure", false)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.timeout", "30s")
	v.SetDefault("smtp.insecure_skip_verify", false)
	v.SetDefault("smtp.verify_before_send", true)

	v.SetDefault("gmail.credentials_json", "")
	v.SetDefault("gmail.client_id", "")
	v.SetDefault("gmail.client_secret", "")
	v.SetDefault("gmail.refresh_token", "")

	v.SetDefault("ses.region", "")
	v.SetDefault("ses.access_key_id", "")
	v.SetDefault("ses.secret_access_key", "")

	// Mail defaults
	v.SetDefault("mail.default_from", "")
	v.SetDefault("mail.default_from_name", "Email API")
	v.SetDefault("mail.default_to", "")
	v.SetDefault("mail.contact_subject_prefix", "Portfolio Contact: ")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 10)
	v.SetDefault("rate_limit.window", "10m")
	v.SetDefault("rate_limit.store", "memory")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "email_service")
	v.SetDefault("database.user", "email_service")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)

	v.SetDefault("notifications.startup_email", false)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}
