package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/contacts/internal/state"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case state.BackendMemory, state.BackendSQLite:
	case state.BackendPostgres:
		if c.Database == "" {
			return fmt.Errorf("database is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want memory, sqlite or postgres)", c.Backend)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (want text or json)", c.LogFormat)
	}

	if c.LoadTimeout <= 0 {
		return fmt.Errorf("load_timeout must be positive, got %s", c.LoadTimeout)
	}
	if c.ViewTTL <= 0 {
		return fmt.Errorf("view_ttl must be positive, got %s", c.ViewTTL)
	}

	if ui := c.GetUIConfig(); ui.Port < 1 || ui.Port > 65535 {
		return fmt.Errorf("ui.port must be between 1 and 65535, got %d", ui.Port)
	}
	return nil
}
