package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"clipscout/internal/acquisition"
	"clipscout/internal/api"
	"clipscout/internal/config"
	"clipscout/internal/deps"
	"clipscout/internal/lifecycle"
	"clipscout/internal/logging"
	"clipscout/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
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

// runtime bundles the components a command needs. close releases the store.
type runtime struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *store.Store
	locator    *deps.Locator
	controller *lifecycle.Controller
	service    *api.CandidateService
}

func (r *runtime) close() {
	if r.store != nil {
		_ = r.store.Close()
	}
}

// openRuntime wires config, logging, storage and acquisition. consoleLogs
// mirrors log records to stderr.
func (c *commandContext) openRuntime(consoleLogs bool) (*runtime, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.NewFromConfig(cfg, consoleLogs)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	locator := deps.NewLocator(cfg.Fetcher.BinaryCandidates, cfg.VersionTimeout())
	engine := acquisition.NewEngine(locator, acquisition.OptionsFromConfig(cfg), logger)
	ctrl := lifecycle.NewController(st, engine, logger)

	return &runtime{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		locator:    locator,
		controller: ctrl,
		service:    api.NewCandidateService(ctrl, cfg.Location()),
	}, nil
}

func (c *commandContext) withRuntime(fn func(*runtime) error) error {
	rt, err := c.openRuntime(false)
	if err != nil {
		return err
	}
	defer rt.close()
	return fn(rt)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
