// Package config loads and validates jurix configuration. Configuration
// lives in a YAML file under the data directory; missing files yield
// defaults so the CLI works out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all jurix configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Generation providers
	Providers ProvidersConfig `yaml:"providers"`

	// Simulation protocol knobs
	Simulation SimulationConfig `yaml:"simulation"`

	// Static response library
	Responses ResponsesConfig `yaml:"responses"`

	// Store layout
	Store StoreConfig `yaml:"store"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GeminiConfig configures the remote per-response provider.
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// OllamaConfig configures the local provider.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"` // alias (fast/reasoning/vision) or a raw model name
}

// OpenAIConfig configures the whole-simulation remote fallback.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// ProvidersConfig configures the generation tiers.
type ProvidersConfig struct {
	Gemini GeminiConfig `yaml:"gemini"`
	Ollama OllamaConfig `yaml:"ollama"`
	OpenAI OpenAIConfig `yaml:"openai"`

	// RequestTimeout bounds one remote generation call.
	RequestTimeout string `yaml:"request_timeout"`
	// LocalTimeout bounds one local-model generation call. Local models are
	// slow to first token, so this is much larger than RequestTimeout.
	LocalTimeout string `yaml:"local_timeout"`
	// ProbeTimeout bounds the local liveness probe.
	ProbeTimeout string `yaml:"probe_timeout"`
}

// SimulationConfig configures the courtroom protocol.
type SimulationConfig struct {
	// MaxEvidencePresentations caps the evidence loop for prompt-size control.
	MaxEvidencePresentations int `yaml:"max_evidence_presentations"`
	// EvidenceContentLimit truncates extracted evidence text per item.
	EvidenceContentLimit int `yaml:"evidence_content_limit"`
	// PersistAttempts bounds the save-with-verification retry loop.
	PersistAttempts int `yaml:"persist_attempts"`
}

// ResponsesConfig configures the static response library.
type ResponsesConfig struct {
	// Dir holds per-role YAML override files. Empty means built-ins only.
	Dir string `yaml:"dir"`
	// HotReload watches Dir and reloads overrides on change.
	HotReload bool `yaml:"hot_reload"`
}

// StoreConfig configures the file store layout.
type StoreConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Debug      bool            `yaml:"debug"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "jurix",
		Version: "1.0.0",

		Providers: ProvidersConfig{
			Gemini: GeminiConfig{
				Model:   "gemini-1.5-flash",
				BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			},
			Ollama: OllamaConfig{
				BaseURL: "http://localhost:11434",
				Model:   "reasoning",
			},
			OpenAI: OpenAIConfig{
				Model:   "gpt-4o",
				BaseURL: "https://api.openai.com/v1",
			},
			RequestTimeout: "30s",
			LocalTimeout:   "120s",
			ProbeTimeout:   "5s",
		},

		Simulation: SimulationConfig{
			MaxEvidencePresentations: 5,
			EvidenceContentLimit:     4000,
			PersistAttempts:          3,
		},

		Responses: ResponsesConfig{
			HotReload: false,
		},

		Store: StoreConfig{
			Dir: "data",
		},

		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Providers.Gemini.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.Providers.OpenAI.APIKey = key
	}
	if url := os.Getenv("OLLAMA_BASE_URL"); url != "" {
		c.Providers.Ollama.BaseURL = url
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		c.Providers.Ollama.Model = model
	}
	if dir := os.Getenv("JURIX_STORE_DIR"); dir != "" {
		c.Store.Dir = dir
	}
	if dir := os.Getenv("JURIX_RESPONSES_DIR"); dir != "" {
		c.Responses.Dir = dir
	}
}

// GetRequestTimeout returns the remote request timeout as a duration.
func (c *Config) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Providers.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetLocalTimeout returns the local generation timeout as a duration.
func (c *Config) GetLocalTimeout() time.Duration {
	d, err := time.ParseDuration(c.Providers.LocalTimeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// GetProbeTimeout returns the local liveness probe timeout as a duration.
func (c *Config) GetProbeTimeout() time.Duration {
	d, err := time.ParseDuration(c.Providers.ProbeTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// Validate checks values that have fixed ranges. Missing API keys are not
// an error here: the provider chain degrades to lower tiers without them.
func (c *Config) Validate() error {
	if c.Simulation.MaxEvidencePresentations < 0 {
		return fmt.Errorf("max_evidence_presentations must be >= 0")
	}
	if c.Simulation.EvidenceContentLimit <= 0 {
		return fmt.Errorf("evidence_content_limit must be > 0")
	}
	if c.Simulation.PersistAttempts <= 0 {
		return fmt.Errorf("persist_attempts must be > 0")
	}
	return nil
}
