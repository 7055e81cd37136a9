// Package config loads server settings from defaults, an optional YAML file
// and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Zachkp/portfolio/internal/contact"
)

const envPrefix = "PORTFOLIO_"

// DefaultPath is read when no --config flag is given.
const DefaultPath = "portfolio.yml"

// MaxGlobeCount bounds globe.count; edge generation is quadratic in it.
const MaxGlobeCount = 5000

const (
	TransportRelay = "relay"
	TransportSMTP  = "smtp"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Content   ContentConfig   `koanf:"content"`
	Listing   ListingConfig   `koanf:"listing"`
	Globe     GlobeConfig     `koanf:"globe"`
	Contact   ContactConfig   `koanf:"contact"`
	Analytics AnalyticsConfig `koanf:"analytics"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	Env             string        `koanf:"env"` // "production" picks the production logger and gin release mode
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ContentConfig points at a YAML document replacing the embedded content.
// Empty means embedded.
type ContentConfig struct {
	Path string `koanf:"path"`
}

// ListingConfig holds items per page for each paginated section.
type ListingConfig struct {
	Projects       int `koanf:"projects"`
	Certifications int `koanf:"certifications"`
	Posts          int `koanf:"posts"`
}

type GlobeConfig struct {
	Count  int     `koanf:"count"`
	Radius float64 `koanf:"radius"`
}

type ContactConfig struct {
	Transport string             `koanf:"transport"`
	Endpoint  string             `koanf:"endpoint"`
	Timeout   time.Duration      `koanf:"timeout"`
	SMTP      contact.SMTPConfig `koanf:"smtp"`
}

type AnalyticsConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Path            string        `koanf:"path"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// DefaultConfig returns a Config with the values the site ships with.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Env:             "development",
			ShutdownTimeout: 10 * time.Second,
		},
		Listing: ListingConfig{Projects: 3, Certifications: 4, Posts: 3},
		Globe:   GlobeConfig{Count: 180, Radius: 3.5},
		Contact: ContactConfig{
			Transport: TransportRelay,
			Endpoint:  "https://portfolio-i92o.onrender.com/api/v1/contact/send-message",
			Timeout:   15 * time.Second,
			SMTP:      contact.SMTPConfig{Host: "smtp.gmail.com", Port: "587"},
		},
		Analytics: AnalyticsConfig{
			Enabled:         true,
			Path:            "data/analytics.db",
			CleanupInterval: 24 * time.Hour,
		},
	}
}

// Older deployments configure the server with these bare variables.
var legacyEnv = map[string]string{
	"PORT":      "server.port",
	"SMTP_HOST": "contact.smtp.host",
	"SMTP_PORT": "contact.smtp.port",
	"SMTP_USER": "contact.smtp.user",
	"SMTP_PASS": "contact.smtp.pass",
	"TO_EMAIL":  "contact.smtp.to",
}

// Load reads configuration from the given YAML file, then overlays the
// legacy variables and finally PORTFOLIO_* overrides, where a double
// underscore separates levels: PORTFOLIO_SERVER__PORT sets server.port.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	for name, key := range legacyEnv {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			if err := k.Set(key, v); err != nil {
				return nil, fmt.Errorf("applying %s: %w", name, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Production reports whether the server runs with production logging.
func (c *Config) Production() bool { return c.Server.Env == "production" }

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	sizes := map[string]int{
		"listing.projects":       c.Listing.Projects,
		"listing.certifications": c.Listing.Certifications,
		"listing.posts":          c.Listing.Posts,
	}
	for key, n := range sizes {
		if n < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", key, n)
		}
	}

	if c.Globe.Count < 0 || c.Globe.Count > MaxGlobeCount {
		return fmt.Errorf("globe.count must be between 0 and %d, got %d", MaxGlobeCount, c.Globe.Count)
	}
	if c.Globe.Radius <= 0 {
		return fmt.Errorf("globe.radius must be positive")
	}

	if c.Contact.Timeout <= 0 {
		return fmt.Errorf("contact.timeout must be positive")
	}

	switch c.Contact.Transport {
	case TransportRelay:
		if c.Contact.Endpoint == "" {
			return fmt.Errorf("contact.endpoint is required for the relay transport")
		}
	case TransportSMTP:
	default:
		return fmt.Errorf("invalid contact.transport %q: must be one of relay, smtp", c.Contact.Transport)
	}

	if c.Analytics.Enabled && c.Analytics.Path == "" {
		return fmt.Errorf("analytics.path is required when analytics is enabled")
	}
	return nil
}
