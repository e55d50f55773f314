// Package di wires the application from configuration.
package di

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/babacardot/suparaise-sub001/internal/adapter/tool"
	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/application/service"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/browser/rod"
	rediscache "github.com/babacardot/suparaise-sub001/internal/infrastructure/cache/redis"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/engine/browseruse"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/env"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/llm/openrouter"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/logger"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/metrics"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/storage/postgres"
	"github.com/babacardot/suparaise-sub001/internal/usecase/evaluator"
	"github.com/babacardot/suparaise-sub001/internal/usecase/executor"
	"github.com/babacardot/suparaise-sub001/internal/usecase/specialists"
	"github.com/babacardot/suparaise-sub001/internal/usecase/submission"
)

type Container struct {
	Config   *env.Config
	Logger   *logger.LoggerAdapter
	Metrics  *metrics.Metrics
	Registry *service.SpecialistRegistryImpl

	// Planner is always available. Submissions is nil until ConnectStorage
	// succeeds.
	Planner     *submission.UseCase
	Submissions *submission.UseCase
	Engine      output.AutomationEngine

	db    *sqlx.DB
	redis *goredis.Client
}

// New builds everything that needs no network: logging, metrics and the
// specialist registry.
func New(cfg *env.Config, name string) (*Container, error) {
	log, err := logger.New(cfg.Log, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	m := metrics.New("suparaise")
	registry := service.NewSpecialistRegistry(specialists.Default(log)...)
	if v := registry.Validate(); !v.IsValid {
		log.Warn("Specialist registry has issues", "issues", v.Issues)
	}

	return &Container{
		Config:   cfg,
		Logger:   log,
		Metrics:  m,
		Registry: registry,
		Planner:  submission.New(registry, nil, nil, nil, nil, m, log),
	}, nil
}

// ConnectStorage opens Postgres (and Redis when enabled), builds the
// configured engine and the full submission use case.
func (c *Container) ConnectStorage(ctx context.Context) error {
	if c.Submissions != nil {
		return nil
	}
	if err := c.Config.RequireEngineCredentials(); err != nil {
		return err
	}

	db, err := postgres.New(ctx, c.Config.Database)
	if err != nil {
		return err
	}
	c.db = db
	repos := postgres.NewRepositories(db, c.Config.Database.QueryTimeout)

	var startups output.StartupDataPort = repos.Startups
	if c.Config.Redis.Enabled {
		client, err := rediscache.NewClient(ctx, c.Config.Redis)
		if err != nil {
			c.Logger.Warn("Redis unavailable, reading startup data from Postgres only", "error", err)
		} else {
			c.redis = client
			startups = rediscache.NewStartupCache(client, repos.Startups, c.Config.Redis.CacheTTL, c.Metrics, c.Logger)
		}
	}

	engine, err := c.buildEngine()
	if err != nil {
		return err
	}
	c.Engine = engine

	c.Submissions = submission.New(c.Registry, startups, repos.Targets, repos.Submissions, engine, c.Metrics, c.Logger)
	c.Planner = c.Submissions

	c.Logger.Info("Storage connected", "engine", engine.Name(), "redis", c.redis != nil)
	return nil
}

func (c *Container) buildEngine() (output.AutomationEngine, error) {
	var llm output.LLMPort
	if c.Config.OpenRouter.APIKey != "" {
		llm = openrouter.NewOpenRouterAdapter(openrouter.Config{
			APIKey:  c.Config.OpenRouter.APIKey,
			Model:   c.Config.OpenRouter.Model,
			BaseURL: c.Config.OpenRouter.BaseURL,
			Logger:  c.Logger.WithField("component", "llm"),
		})
	}
	judge := evaluator.New(llm, c.Logger.WithField("component", "evaluator"))

	switch c.Config.Engine.Kind {
	case env.EngineBrowserUse:
		bu := c.Config.BrowserUse
		client := browseruse.NewClient(bu.BaseURL, bu.APIKey, nil)
		return browseruse.NewEngine(client, browseruse.Config{
			LLMModel:     bu.LLMModel,
			PollInterval: bu.PollInterval,
			Timeout:      c.Config.Engine.Timeout,
		}, judge, c.Logger.WithField("engine", browseruse.Name)), nil

	case env.EngineLocal:
		if llm == nil {
			return nil, fmt.Errorf("engine %q needs an LLM", env.EngineLocal)
		}
		bc := c.Config.Browser
		if !rod.Available(bc.Bin) {
			c.Logger.Warn("No Chromium found, rod will try to download one")
		}
		browserCfg := rod.DefaultConfig()
		browserCfg.Headless = bc.Headless
		browserCfg.Bin = bc.Bin
		browserCfg.Timeout = bc.ActionTimeout
		browserCfg.NoSandbox = bc.NoSandbox

		engineLog := c.Logger.WithField("engine", executor.Name)
		browsers := func(ctx context.Context) (output.BrowserPort, error) {
			b, err := rod.NewBrowserAdapter(ctx, browserCfg)
			if err != nil {
				return nil, err
			}
			return b, nil
		}
		tools := func(b output.BrowserPort) output.ToolRegistry {
			return service.NewToolRegistry(tool.BrowserTools(b, engineLog)...)
		}
		return executor.New(llm, browsers, tools, judge, engineLog, "", bc.ScreenshotDir), nil

	default:
		return nil, fmt.Errorf("unknown engine %q", c.Config.Engine.Kind)
	}
}

func (c *Container) Close() {
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.db != nil {
		_ = c.db.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}
