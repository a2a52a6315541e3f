// Package config loads and validates the assistant configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mentora-ai/mentora/pkg/models"
	"github.com/mentora-ai/mentora/pkg/pricing"
)

// ErrInvalidBudget is returned when the configured daily budget is not
// positive.
var ErrInvalidBudget = errors.New("daily_budget must be greater than zero")

// Config holds all assistant configuration. The core packages receive
// values from here explicitly; nothing reads ambient state at runtime.
type Config struct {
	DefaultModel     string                `yaml:"default_model"`
	DailyBudget      float64               `yaml:"daily_budget"`
	MaxHistoryTokens int                   `yaml:"max_history_tokens"`
	Provider         ProviderConfig        `yaml:"provider"`
	Pricing          []models.ModelPricing `yaml:"pricing"`
	SessionsPath     string                `yaml:"sessions_path"`
	Retry            RetryConfig           `yaml:"retry"`
}

// ProviderConfig defines the upstream OpenAI-compatible provider.
type ProviderConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// RetryConfig bounds the client's exponential backoff.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Backoff     time.Duration `yaml:"backoff"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		DefaultModel:     pricing.DefaultModel,
		DailyBudget:      5.0,
		MaxHistoryTokens: 4000,
		Provider: ProviderConfig{
			URL: "https://api.openai.com",
		},
		SessionsPath: "mentora_sessions.jsonl",
		Retry: RetryConfig{
			MaxAttempts: 3,
			Backoff:     time.Second,
		},
	}
}

// Load reads a YAML config file, expands environment variables, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the core packages rely on. It runs
// before any tracker or price table is built from this config.
func (c *Config) Validate() error {
	if c.DailyBudget <= 0 {
		return ErrInvalidBudget
	}
	if c.DefaultModel == "" {
		return errors.New("default_model must be set")
	}
	return nil
}

// PriceTable builds the price table for this config: the built-in price
// list overlaid with any configured entries, with unknown-model fallback
// resolving to the configured default model.
func (c *Config) PriceTable() (*pricing.Table, error) {
	prices := pricing.DefaultPrices()
	for _, p := range c.Pricing {
		prices[p.Model] = models.ModelPrice{
			InputPerMillion:  p.InputPerMillion,
			OutputPerMillion: p.OutputPerMillion,
		}
	}
	return pricing.NewTable(prices, c.DefaultModel)
}
