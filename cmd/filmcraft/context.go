package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"filmcraft/internal/config"
	"filmcraft/internal/director"
	"filmcraft/internal/store"
)

const (
	defaultConfigPath = "filmcraft.yaml"
	userEnv           = "FILMCRAFT_USER"
	defaultUser       = "local"
)

type commandContext struct {
	configPath string
	envPath    string
	verbose    bool

	config    *config.ProjectConfig
	configErr error
	loaded    bool

	logger *zap.Logger
}

func newCommandContext() *commandContext {
	return &commandContext{logger: zap.NewNop()}
}

// setup loads the env file and builds the logger. A missing config file only
// matters to commands that need it, so the level falls back to the default.
func (c *commandContext) setup() error {
	if err := config.LoadEnv(c.envPath); err != nil {
		return err
	}
	level := config.DefaultLogLevel
	if cfg, err := c.ensureConfig(); err == nil {
		level = cfg.Log.Level
	}
	if c.verbose {
		level = "debug"
	}
	logger, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger
	return nil
}

func (c *commandContext) sync() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func (c *commandContext) ensureConfig() (*config.ProjectConfig, error) {
	if !c.loaded {
		c.loaded = true
		c.config, c.configErr = config.LoadProjectConfig(c.configPath)
		if errors.Is(c.configErr, fs.ErrNotExist) {
			c.configErr = fmt.Errorf("%s not found; run `filmcraft init` first", c.configPath)
		}
	}
	return c.config, c.configErr
}

// withStore opens the configured store for the duration of fn.
func (c *commandContext) withStore(ctx context.Context, fn func(store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close(ctx)
	return fn(st)
}

func (c *commandContext) newDirector(ctx context.Context, st store.Store) (*director.Director, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	invoker, err := openInvoker(ctx, cfg.LLM, c.logger)
	if err != nil {
		return nil, err
	}
	return director.New(st, invoker,
		director.WithLogger(c.logger),
		director.WithModel(cfg.LLM.Model),
		director.WithMaxIterations(cfg.Director.MaxIterations),
		director.WithHistoryWindow(cfg.Director.HistoryWindow),
		director.WithDirectorBatchSize(cfg.Director.BatchSize),
	)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func currentUser(flag string) string {
	if u := strings.TrimSpace(flag); u != "" {
		return u
	}
	if u := strings.TrimSpace(os.Getenv(userEnv)); u != "" {
		return u
	}
	return defaultUser
}
