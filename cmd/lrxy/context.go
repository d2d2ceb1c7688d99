package main

import (
	"log/slog"
	"strings"
	"sync"

	"lrxy/internal/config"
	"lrxy/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	once     sync.Once
	config   *config.Config
	logger   *slog.Logger
	setupErr error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensure loads configuration and builds the logger exactly once. The
// --log-level flag overrides the configured level.
func (c *commandContext) ensure() (*config.Config, *slog.Logger, error) {
	c.once.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.setupErr = err
			c.logger = logging.NewNop()
			return
		}
		c.config = cfg

		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		logger, err := logging.New(logging.Options{Level: level, Format: cfg.Logging.Format})
		if err != nil {
			c.setupErr = err
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.config, c.logger, c.setupErr
}
