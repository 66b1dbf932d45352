package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeHTTP()
	c.normalizeCompanion()
	c.normalizeResolvers()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeHTTP() {
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = defaultHTTPTimeoutSeconds
	}
	if c.HTTP.RequestDelayMilli < 0 {
		c.HTTP.RequestDelayMilli = defaultRequestDelayMilli
	}
	if strings.TrimSpace(c.HTTP.UserAgent) == "" {
		c.HTTP.UserAgent = defaultUserAgent
	}
}

func (c *Config) normalizeCompanion() {
	c.Companion.BaseURL = strings.TrimRight(strings.TrimSpace(c.Companion.BaseURL), "/")
	if c.Companion.BaseURL == "" {
		c.Companion.BaseURL = defaultCompanionBaseURL
	}
	if strings.TrimSpace(c.Companion.DevToolsURL) == "" {
		c.Companion.DevToolsURL = defaultDevToolsURL
	}
	if c.Companion.Username == "" {
		if value, ok := os.LookupEnv("ALBUMLINK_COMPANION_USERNAME"); ok {
			c.Companion.Username = value
		}
	}
	if c.Companion.Password == "" {
		if value, ok := os.LookupEnv("ALBUMLINK_COMPANION_PASSWORD"); ok {
			c.Companion.Password = value
		}
	}
	if c.Companion.LoadingAppearTimeout <= 0 {
		c.Companion.LoadingAppearTimeout = defaultLoadingAppearTimeout
	}
	if c.Companion.LoadingDisappearTimeout <= 0 {
		c.Companion.LoadingDisappearTimeout = defaultLoadingDisappear
	}
	if c.Companion.ResultsSettleSeconds <= 0 {
		c.Companion.ResultsSettleSeconds = defaultResultsSettle
	}
	if c.Companion.DetailSettleSeconds <= 0 {
		c.Companion.DetailSettleSeconds = defaultDetailSettle
	}
}

func (c *Config) normalizeResolvers() {
	if c.Resolvers.MaxConcurrent <= 0 {
		c.Resolvers.MaxConcurrent = defaultMaxConcurrent
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// ExpandPath resolves ~ prefixes and relative paths to absolute form.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return filepath.Abs(path)
}
