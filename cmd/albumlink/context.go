package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"albumlink/internal/companion"
	"albumlink/internal/config"
	"albumlink/internal/links"
	"albumlink/internal/logging"
	"albumlink/internal/orchestrator"
	"albumlink/internal/resolver/direct"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	session *companion.Session
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) openStore() (*links.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return links.Open(cfg)
}

// newOrchestrator assembles the resolver fleet from configuration. The
// companion session is created lazily and shared across batch items.
func (c *commandContext) newOrchestrator() (*orchestrator.Orchestrator, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	client := direct.NewClient(cfg.HTTP.UserAgent, cfg.RequestTimeout(), cfg.RequestDelay())

	var aggregator orchestrator.Aggregator
	cleanup := func() {}
	if cfg.Companion.Enabled {
		if err := cfg.RequireCompanionCredentials(); err != nil {
			return nil, nil, err
		}
		c.session = companion.NewSession(companion.Options{
			BaseURL:          cfg.Companion.BaseURL,
			DevToolsURL:      cfg.Companion.DevToolsURL,
			Username:         cfg.Companion.Username,
			Password:         cfg.Companion.Password,
			LoadingAppear:    time.Duration(cfg.Companion.LoadingAppearTimeout) * time.Second,
			LoadingDisappear: time.Duration(cfg.Companion.LoadingDisappearTimeout) * time.Second,
			ResultsSettle:    time.Duration(cfg.Companion.ResultsSettleSeconds) * time.Second,
			DetailSettle:     time.Duration(cfg.Companion.DetailSettleSeconds) * time.Second,
			Logger:           logger,
		})
		aggregator = c.session
		cleanup = c.session.Close
	}

	orch := orchestrator.New(orchestrator.Options{
		Direct:        direct.Registry(client),
		Aggregator:    aggregator,
		Client:        client,
		MaxConcurrent: cfg.Resolvers.MaxConcurrent,
		Logger:        logger,
	})
	return orch, cleanup, nil
}
