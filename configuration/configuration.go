package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var defaultConfig = Config{
	Address:             "127.0.0.1:3030",
	DatabasePath:        "~/.chatd/chatd.db",
	RequestTimeout:      60,
	DefaultModel:        "claude-3-5-sonnet-20241022",
	SystemPrompt:        "You are a helpful assistant.",
	DailyMessageLimit:   1000,
	DailyProModelLimit:  500,
	Providers: []*Provider{
		{
			Name:      "openai",
			APIHost:   "https://api.openai.com/v1",
			APIKeyEnv: "OPENAI_API_KEY",
			Models:    []string{"gpt-4o", "gpt-4o-mini"},
		},
		{
			Name:      "anthropic",
			APIHost:   "https://api.anthropic.com/v1",
			APIKeyEnv: "ANTHROPIC_API_KEY",
			Models:    []string{"claude-3-5-sonnet-20241022"},
		},
		{
			Name:      "ollama",
			APIHost:   "http://localhost:11434/v1",
			APIKeyEnv: "",
			Models:    []string{"llama3.2"},
		},
	},
}

// Config holds configuration for the chatd server.
type Config struct {
	// Address the webserver binds to.
	Address string `json:"address"`
	// Path to the SQLite file backing the local object store.
	DatabasePath string `json:"database_path"`
	// Timeout, in seconds, applied to completion requests.
	RequestTimeout int `json:"request_timeout"`
	// Model used when a chat does not specify one.
	DefaultModel string `json:"default_model"`
	// System prompt used when a completion request does not carry one.
	SystemPrompt string `json:"system_prompt"`
	// Daily message allowances reported by the rate-limits endpoint.
	DailyMessageLimit  int `json:"daily_message_limit"`
	DailyProModelLimit int `json:"daily_pro_model_limit"`

	Providers []*Provider `json:"providers"`
}

// Provider describes an OpenAI-compatible completion provider.
type Provider struct {
	Name      string   `json:"name"`
	APIHost   string   `json:"api_host"`
	APIKeyEnv string   `json:"api_key_env"`
	Models    []string `json:"models"`
}

// APIKey resolves the provider's key from the environment.
func (p *Provider) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// ProviderForModel returns the provider serving the given model, or nil.
func (c *Config) ProviderForModel(model string) *Provider {
	for _, provider := range c.Providers {
		for _, m := range provider.Models {
			if m == model {
				return provider
			}
		}
	}
	return nil
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := expandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedDatabasePath, err := expandPath(config.DatabasePath)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.DatabasePath = expandedDatabasePath
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}

func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
