// Package config provides configuration loading and structs for the Kotae server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	FAQ     FAQConfig     `yaml:"faq"`
	Watch   WatchConfig   `yaml:"watch"`
	LLM     LLMConfig     `yaml:"llm"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the path for the FAQ database.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// FAQConfig holds FAQ source files and matching settings.
type FAQConfig struct {
	// Sources are FAQ files loaded at startup in addition to the database.
	// Supported formats: .txt/.faq (question|answer lines), .xlsx, .docx, .odt, .pdf.
	Sources []string `yaml:"sources"`
	// Threshold is the minimum confidence for a match; 0 means the default.
	Threshold float64 `yaml:"threshold"`
}

// WatchConfig holds FAQ source file watch settings.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LLMConfig holds settings for the optional text-generation fallback.
type LLMConfig struct {
	Enabled bool `yaml:"enabled"`
	// Model is the chat model name (e.g. "gemini-2.5-flash").
	Model string `yaml:"model"`
	// APIKeyEnv is the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`
	// Persona is an optional system prompt prefix for generated answers.
	Persona string `yaml:"persona"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	for i := range cfg.FAQ.Sources {
		cfg.FAQ.Sources[i] = expandPath(cfg.FAQ.Sources[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
