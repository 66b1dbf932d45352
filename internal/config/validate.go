package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateHTTP(); err != nil {
		return err
	}
	if err := c.validateCompanion(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateHTTP() error {
	if c.HTTP.TimeoutSeconds > 120 {
		return errors.New("http.timeout_seconds must not exceed 120")
	}
	return nil
}

func (c *Config) validateCompanion() error {
	if !c.Companion.Enabled {
		return nil
	}
	if c.Companion.BaseURL == "" {
		return errors.New("companion.base_url must be set when companion.enabled is true")
	}
	return nil
}

// RequireCompanionCredentials reports whether the aggregator session can be
// opened. Enforced where the session is built, not at load time, so commands
// that never touch the aggregator work without credentials.
func (c *Config) RequireCompanionCredentials() error {
	if !c.Companion.Enabled {
		return nil
	}
	if c.Companion.Username == "" || c.Companion.Password == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/albumlink/config.toml"
		}
		return fmt.Errorf("companion credentials are required when companion.enabled is true. Set ALBUMLINK_COMPANION_USERNAME/ALBUMLINK_COMPANION_PASSWORD or edit %s (create with 'albumlink config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
