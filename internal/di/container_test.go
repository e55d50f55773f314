package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babacardot/suparaise-sub001/internal/infrastructure/engine/browseruse"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/env"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/logger"
	"github.com/babacardot/suparaise-sub001/internal/usecase/executor"
)

func testConfig() *env.Config {
	return &env.Config{
		Log:    logger.Config{Level: "error", Format: "console"},
		Engine: env.EngineConfig{Kind: env.EngineBrowserUse},
		BrowserUse: env.BrowserUseConfig{
			APIKey:  "bu_test",
			BaseURL: "http://127.0.0.1:1/api/v1",
		},
	}
}

func TestNew_BuildsOfflineParts(t *testing.T) {
	c, err := New(testConfig(), "test")
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.NotNil(t, c.Planner)
	assert.Nil(t, c.Submissions)
	assert.True(t, c.Registry.Validate().IsValid)
	assert.Len(t, c.Registry.All(), 5)
}

func TestBuildEngine(t *testing.T) {
	t.Run("browser use", func(t *testing.T) {
		c, err := New(testConfig(), "test")
		require.NoError(t, err)
		t.Cleanup(c.Close)

		engine, err := c.buildEngine()
		require.NoError(t, err)
		assert.Equal(t, browseruse.Name, engine.Name())
	})

	t.Run("local", func(t *testing.T) {
		cfg := testConfig()
		cfg.Engine.Kind = env.EngineLocal
		cfg.OpenRouter = env.OpenRouterConfig{APIKey: "or_test", Model: "openai/gpt-4.1-mini"}
		cfg.Browser.Bin = "/usr/bin/chromium"
		c, err := New(cfg, "test")
		require.NoError(t, err)
		t.Cleanup(c.Close)

		engine, err := c.buildEngine()
		require.NoError(t, err)
		assert.Equal(t, executor.Name, engine.Name())
	})

	t.Run("local without llm", func(t *testing.T) {
		cfg := testConfig()
		cfg.Engine.Kind = env.EngineLocal
		c, err := New(cfg, "test")
		require.NoError(t, err)
		t.Cleanup(c.Close)

		_, err = c.buildEngine()
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := testConfig()
		cfg.Engine.Kind = "selenium"
		c, err := New(cfg, "test")
		require.NoError(t, err)
		t.Cleanup(c.Close)

		_, err = c.buildEngine()
		assert.ErrorContains(t, err, "selenium")
	})
}
