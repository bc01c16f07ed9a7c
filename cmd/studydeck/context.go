package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"studydeck/internal/app"
	"studydeck/internal/config"
	"studydeck/internal/extraction"
	"studydeck/internal/library"
	"studydeck/internal/logging"
	"studydeck/internal/services/llm"
	"studydeck/internal/storage"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// withRepository opens the persistent store for the duration of fn. The
// store holds the single-instance lock, so it is opened per command rather
// than per process startup; commands that never touch the library do not
// contend for it.
func (c *commandContext) withRepository(ctx context.Context, fn func(*library.Repository) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Paths.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	repo, err := library.OpenRepository(ctx, library.NewStore(store, logger), logger)
	if err != nil {
		return err
	}
	return fn(repo)
}

// withController wires the full pipeline (repository, extractor, generator)
// behind an application controller for the commands that ingest or quiz.
func (c *commandContext) withController(ctx context.Context, fn func(*app.Controller, *library.Repository) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	return c.withRepository(ctx, func(repo *library.Repository) error {
		llmCfg := cfg.GetLLM()
		generator := llm.NewClient(llm.Config{
			APIKey:         llmCfg.APIKey,
			BaseURL:        llmCfg.BaseURL,
			Model:          llmCfg.Model,
			TimeoutSeconds: llmCfg.TimeoutSeconds,
		})
		extractor := extraction.NewPdftotext(cfg.PdftotextBinary())
		ctrl := app.NewController(repo, extractor, generator, logger,
			app.WithGenerationOptions(llm.GenerationOptions{
				MinQuestions: cfg.Generation.MinQuestions,
				MaxQuestions: cfg.Generation.MaxQuestions,
			}))
		return fn(ctrl, repo)
	})
}
