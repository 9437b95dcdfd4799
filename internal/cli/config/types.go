// Package config loads the contacts CLI configuration.
//
// Values are layered from defaults, a contacts.yaml file, CONTACTS_*
// environment variables and explicitly set flags, in increasing order of
// precedence.
package config

import (
	"log/slog"
	"time"
)

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port     int  `koanf:"port"`
	AutoOpen bool `koanf:"auto_open"`
	Watch    bool `koanf:"watch"`
	Dev      bool `koanf:"dev"`
}

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Port:     DefaultPort,
		AutoOpen: true,
		Watch:    false,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := c.UI
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	return ui
}

// Config holds all CLI configuration options.
type Config struct {
	Backend       string        `koanf:"backend"`
	Database      string        `koanf:"database"`
	LogLevel      slog.Level    `koanf:"log_level"`
	LogFormat     string        `koanf:"log_format"`
	Verbose       bool          `koanf:"verbose"`
	SessionSecret string        `koanf:"session_secret"`
	LoadTimeout   time.Duration `koanf:"load_timeout"`
	ViewTTL       time.Duration `koanf:"view_ttl"`
	UI            *UIConfig     `koanf:"ui"`
}

// Default configuration values.
const (
	DefaultBackend     = "sqlite"
	DefaultDatabase    = ".contacts/contacts.db"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultPort        = 8765
	DefaultLoadTimeout = 10 * time.Second
	DefaultViewTTL     = 30 * time.Minute

	// DefaultSessionSecret signs the session cookie when nothing else is
	// configured. Only suitable for local use.
	DefaultSessionSecret = "contacts-dev-secret-change-in-production" //nolint:gosec
)
