package env

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/babacardot/suparaise-sub001/internal/infrastructure/logger"
)

const (
	EngineBrowserUse = "browseruse"
	EngineLocal      = "local"
)

type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`

	Log        logger.Config
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Engine     EngineConfig
	BrowserUse BrowserUseConfig
	OpenRouter OpenRouterConfig
	Browser    BrowserConfig
}

type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"20m"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	MaxRequestSize  int64         `envconfig:"SERVER_MAX_REQUEST_SIZE" default:"1048576"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	URL             string        `envconfig:"DATABASE_URL"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Database        string        `envconfig:"DB_NAME" default:"postgres"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"require"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	QueryTimeout    time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"10s"`
}

// DSN prefers DATABASE_URL over the discrete fields.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int           `envconfig:"REDIS_PORT" default:"6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"10m"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type EngineConfig struct {
	Kind    string        `envconfig:"ENGINE" default:"browseruse"`
	Timeout time.Duration `envconfig:"ENGINE_TIMEOUT" default:"15m"`
}

type BrowserUseConfig struct {
	APIKey       string        `envconfig:"BROWSER_USE_API_KEY"`
	BaseURL      string        `envconfig:"BROWSER_USE_BASE_URL" default:"https://api.browser-use.com/api/v1"`
	LLMModel     string        `envconfig:"BROWSER_USE_LLM_MODEL" default:"gpt-4.1"`
	PollInterval time.Duration `envconfig:"BROWSER_USE_POLL_INTERVAL" default:"5s"`
}

type OpenRouterConfig struct {
	APIKey  string `envconfig:"OPENROUTER_API_KEY"`
	Model   string `envconfig:"OPENROUTER_MODEL_NAME" default:"openai/gpt-4.1-mini"`
	BaseURL string `envconfig:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1"`
}

type BrowserConfig struct {
	Headless      bool          `envconfig:"BROWSER_HEADLESS" default:"true"`
	Bin           string        `envconfig:"BROWSER_BIN"`
	ActionTimeout time.Duration `envconfig:"BROWSER_ACTION_TIMEOUT" default:"10s"`
	ScreenshotDir string        `envconfig:"BROWSER_SCREENSHOT_DIR"`
	NoSandbox     bool          `envconfig:"BROWSER_NO_SANDBOX" default:"false"`
}

// LoadConfig applies the .env files from dir and decodes the environment.
func LoadConfig(dir string) (*Config, error) {
	Load(dir)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	switch c.Engine.Kind {
	case EngineBrowserUse, EngineLocal:
	default:
		errs = append(errs, fmt.Sprintf("ENGINE must be %q or %q, got %q", EngineBrowserUse, EngineLocal, c.Engine.Kind))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or console, got %q", c.Log.Format))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT out of range: %d", c.Server.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RequireEngineCredentials reports a missing API key for the selected engine.
// Commands that never reach an engine skip this check.
func (c *Config) RequireEngineCredentials() error {
	switch c.Engine.Kind {
	case EngineBrowserUse:
		if c.BrowserUse.APIKey == "" {
			return fmt.Errorf("BROWSER_USE_API_KEY is required for engine %q", c.Engine.Kind)
		}
	case EngineLocal:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for engine %q", c.Engine.Kind)
		}
	}
	return nil
}
