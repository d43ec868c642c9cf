package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxIterations = 5
	DefaultHistoryWindow = 20
	DefaultBatchSize     = 4
	DefaultLogLevel      = "info"
	DefaultDriver        = "sqlite"
	DefaultDSN           = "sqlite://filmcraft.db"
	DefaultProvider      = "openai"
	DefaultModel         = "gpt-4o"
	DefaultAPIKeyEnv     = "OPENAI_API_KEY"
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultGeminiKeyEnv  = "GEMINI_API_KEY"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Director DirectorConfig `yaml:"director"`
	Log      LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LLMConfig struct {
	Provider       string `yaml:"provider"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	Referer        string `yaml:"referer"`
	Title          string `yaml:"title"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// APIKey reads the key from the environment variable named by APIKeyEnv.
func (c LLMConfig) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.APIKeyEnv))
}

type DirectorConfig struct {
	MaxIterations int `yaml:"max_iterations"`
	HistoryWindow int `yaml:"history_window"`
	BatchSize     int `yaml:"batch_size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DefaultDriver
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = DefaultDSN
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
		if cfg.LLM.Provider == "gemini" {
			cfg.LLM.Model = DefaultGeminiModel
		}
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = DefaultAPIKeyEnv
		if cfg.LLM.Provider == "gemini" {
			cfg.LLM.APIKeyEnv = DefaultGeminiKeyEnv
		}
	}
	if cfg.Director.MaxIterations == 0 {
		cfg.Director.MaxIterations = DefaultMaxIterations
	}
	if cfg.Director.HistoryWindow == 0 {
		cfg.Director.HistoryWindow = DefaultHistoryWindow
	}
	if cfg.Director.BatchSize == 0 {
		cfg.Director.BatchSize = DefaultBatchSize
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}

	switch cfg.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
	if cfg.LLM.TimeoutSeconds < 0 {
		return fmt.Errorf("llm timeout_seconds must not be negative")
	}

	if cfg.Director.MaxIterations < 1 {
		return fmt.Errorf("director max_iterations must be at least 1")
	}
	if cfg.Director.HistoryWindow < 0 {
		return fmt.Errorf("director history_window must not be negative")
	}
	if cfg.Director.BatchSize < 1 {
		return fmt.Errorf("director batch_size must be at least 1")
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", cfg.Log.Level)
	}

	return nil
}
