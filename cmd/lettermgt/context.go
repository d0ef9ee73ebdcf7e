package main

import (
	"log/slog"

	"github.com/sputnik57/letter-mgt/internal/config"
	"github.com/sputnik57/letter-mgt/internal/letters"
	"github.com/sputnik57/letter-mgt/internal/logging"
)

// commandContext lazily resolves configuration, logging, and the store so
// commands share one wiring path.
type commandContext struct {
	configFlag *string
	cfg        *config.Config
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

// openStore opens the letters database; callers own Close.
func (c *commandContext) openStore() (*letters.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return letters.Open(cfg, logger)
}
