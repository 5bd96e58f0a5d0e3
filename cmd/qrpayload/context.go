package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"qrpayload/internal/config"
	"qrpayload/internal/history"
	"qrpayload/internal/logging"
	"qrpayload/internal/services"
)

type commandContext struct {
	configFlag *string
	verbose    *bool
	maxDepth   *int

	configOnce sync.Once
	config     *config.Config
	configErr  error

	history *history.Store
}

func newCommandContext(configFlag *string, verbose *bool, maxDepth *int) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbose:    verbose,
		maxDepth:   maxDepth,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.maxDepth != nil && *c.maxDepth != 0 {
			cfg.Decode.MaxDepth = *c.maxDepth
			if err := cfg.Validate(); err != nil {
				c.configErr = services.Wrap(services.ErrConfiguration, "config", "validate", "--max-depth", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) verboseEnabled() bool {
	return c.verbose != nil && *c.verbose
}

func (c *commandContext) logger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, c.verboseEnabled())
}

func (c *commandContext) openHistory() (*history.Store, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	c.history = store
	return store, func() {
		_ = store.Close()
		c.history = nil
	}, nil
}

// pruneHistory trims old runs when a store is open and retention is set.
func (c *commandContext) pruneHistory(ctx context.Context, logger *slog.Logger) {
	if c.history == nil || c.config == nil || c.config.History.Retention <= 0 {
		return
	}
	removed, err := c.history.Prune(ctx, c.config.History.Retention)
	if err != nil {
		logger.Warn("history prune failed", logging.Error(err))
		return
	}
	if removed > 0 {
		logger.Debug("history pruned", logging.Int("removed", int(removed)))
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
