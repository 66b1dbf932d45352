// Package config loads, defaults, and validates the TOML configuration for
// albumlink. Path fields are expanded and normalized before use; companion
// credentials may come from the environment instead of the file so they never
// land in version control.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// HTTP contains settings shared by the direct platform resolvers.
type HTTP struct {
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	RequestDelayMilli int    `toml:"request_delay_ms"`
	UserAgent         string `toml:"user_agent"`
}

// Companion contains configuration for the aggregator session resolver.
type Companion struct {
	Enabled     bool   `toml:"enabled"`
	BaseURL     string `toml:"base_url"`
	DevToolsURL string `toml:"devtools_url"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`

	// Wait budgets, in seconds. Zero values take defaults.
	LoadingAppearTimeout    int `toml:"loading_appear_timeout"`
	LoadingDisappearTimeout int `toml:"loading_disappear_timeout"`
	ResultsSettleSeconds    int `toml:"results_settle_seconds"`
	DetailSettleSeconds     int `toml:"detail_settle_seconds"`
}

// Resolvers contains orchestration settings for the direct resolvers.
type Resolvers struct {
	MaxConcurrent int `toml:"max_concurrent"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for albumlink.
type Config struct {
	Paths     Paths     `toml:"paths"`
	HTTP      HTTP      `toml:"http"`
	Companion Companion `toml:"companion"`
	Resolvers Resolvers `toml:"resolvers"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/albumlink/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. A missing file yields
// defaults so read-only commands work without prior setup.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// WriteSample writes the embedded sample configuration to the given path.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o600)
}

// EnsureDirectories creates the data and log directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// RequestTimeout returns the direct resolver HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// RequestDelay returns the pause applied after every direct platform request.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.HTTP.RequestDelayMilli) * time.Millisecond
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("albumlink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}
