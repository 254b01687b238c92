package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Supported generation providers.
const (
	ProviderDashScope = "dashscope" // native DashScope API
	ProviderOpenAI    = "openai"    // any OpenAI-compatible endpoint
)

type Config struct {
	DebugMode       bool          `env:"DEBUG_MODE"`       // gin debug mode and development logging
	HTTPAddr        string        `env:"HTTP_ADDR"`        // listen address
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"` // graceful shutdown budget
	Generation      GenerationConfig
}

// GenerationConfig selects and configures the upstream model API.
type GenerationConfig struct {
	Provider string `env:"GENERATION_PROVIDER"`
	BaseURL  string `env:"GENERATION_BASE_URL"` // empty means the provider default
	APIKey   string `env:"DASHSCOPE_API_KEY"`   // may be empty; requests then fail as misconfigured
	Model    string `env:"DASHSCOPE_MODEL"`
}

// Defaults returns the configuration used before .env and the environment
// are applied.
func Defaults() *Config {
	return &Config{
		DebugMode:       false,
		HTTPAddr:        ":8080",
		ShutdownTimeout: 5 * time.Second,
		Generation: GenerationConfig{
			Provider: ProviderDashScope,
			Model:    "qwen-turbo",
		},
	}
}

// Load reads .env (if present) and the environment over Defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would make the service unusable. A missing
// API key is reported per request instead.
func (c *Config) Validate() error {
	c.Generation.Provider = strings.ToLower(strings.TrimSpace(c.Generation.Provider))
	switch c.Generation.Provider {
	case ProviderDashScope, ProviderOpenAI:
	default:
		return fmt.Errorf("GENERATION_PROVIDER must be %q or %q, got %q", ProviderDashScope, ProviderOpenAI, c.Generation.Provider)
	}
	if strings.TrimSpace(c.Generation.Model) == "" {
		return fmt.Errorf("DASHSCOPE_MODEL must not be empty")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
