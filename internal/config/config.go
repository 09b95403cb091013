// Package config loads process configuration from the environment with an
// optional YAML override file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider names for the AI service backend.
const (
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderOllama  = "ollama"
	ProviderBedrock = "bedrock"
)

// Config holds all configuration values.
type Config struct {
	// AI service
	Provider     string `yaml:"provider"`
	APIKey       string `yaml:"api_key"`
	SearchModel  string `yaml:"search_model"`
	CompareModel string `yaml:"compare_model"`
	OllamaHost   string `yaml:"ollama_host"`
	BedrockRegion string `yaml:"bedrock_region"`

	// Server
	ServerPort string `yaml:"server_port"`
	ServerURL  string `yaml:"server_url"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`

	rawLogLevel string
}

// Load reads configuration from environment variables. When SHOPAI_CONFIG
// points at a YAML file, values from the file are applied first and the
// environment overrides them.
func Load() Config {
	cfg := Config{
		Provider:      ProviderGemini,
		SearchModel:   "gemini-3-flash-preview",
		CompareModel:  "gemini-3-pro-preview",
		OllamaHost:    "http://localhost:11434",
		BedrockRegion: "us-east-1",
		ServerPort:    "8486",
		ServerURL:     "http://localhost:8486",
		LogFile:       "/tmp/shopai.log",
		rawLogLevel:   "INFO",
	}

	if path := os.Getenv("SHOPAI_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			slog.Warn("failed to load config file, using environment only", "file", path, "error", err)
		}
	}

	cfg.Provider = getEnv("SHOPAI_PROVIDER", cfg.Provider)
	cfg.APIKey = getEnv("SHOPAI_API_KEY", cfg.APIKey)
	cfg.SearchModel = getEnv("SHOPAI_SEARCH_MODEL", cfg.SearchModel)
	cfg.CompareModel = getEnv("SHOPAI_COMPARE_MODEL", cfg.CompareModel)
	cfg.OllamaHost = getEnv("OLLAMA_HOST", cfg.OllamaHost)
	cfg.BedrockRegion = getEnv("SHOPAI_BEDROCK_REGION", cfg.BedrockRegion)
	cfg.ServerPort = getEnv("SHOPAI_SERVER_PORT", cfg.ServerPort)
	cfg.ServerURL = getEnv("SHOPAI_SERVER_URL", cfg.ServerURL)
	cfg.LogFile = getEnv("SHOPAI_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = parseLogLevel(getEnv("SHOPAI_LOG_LEVEL", cfg.rawLogLevel))

	return cfg
}

// applyFile overlays values from a YAML config file.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var file struct {
		Config   `yaml:",inline"`
		LogLevel string `yaml:"log_level"`
	}
	file.Config = *c
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	*c = file.Config
	if file.LogLevel != "" {
		c.rawLogLevel = file.LogLevel
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
