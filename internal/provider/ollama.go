package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jurix/internal/logging"
)

// =============================================================================
// OLLAMA LOCAL CLIENT
// =============================================================================

// Named model aliases. Callers pick a profile; the alias resolves to
// whatever is pulled locally.
var ollamaModels = map[string]string{
	"fast":      "gemma:2b",
	"reasoning": "mistral:7b",
	"vision":    "llava:7b",
}

// ResolveOllamaModel maps an alias to a concrete model name. Unknown names
// pass through unchanged so raw model names keep working.
func ResolveOllamaModel(name string) string {
	if model, ok := ollamaModels[name]; ok {
		return model
	}
	if name == "" {
		return ollamaModels["reasoning"]
	}
	return name
}

// OllamaClient is the local tier. It talks to a locally hosted Ollama
// server. Generation calls are slow (models load on first use), so the
// generation timeout is much larger than the liveness probe timeout.
type OllamaClient struct {
	baseURL      string
	model        string
	httpClient   *http.Client
	probeTimeout time.Duration
}

// OllamaConfig configures an OllamaClient.
type OllamaConfig struct {
	BaseURL      string
	Model        string // alias or raw model name
	Timeout      time.Duration
	ProbeTimeout time.Duration
}

// DefaultOllamaConfig returns sensible defaults.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL:      "http://localhost:11434",
		Model:        "reasoning",
		Timeout:      120 * time.Second,
		ProbeTimeout: 5 * time.Second,
	}
}

// NewOllamaClient creates a client with default config.
func NewOllamaClient() *OllamaClient {
	return NewOllamaClientWithConfig(DefaultOllamaConfig())
}

// NewOllamaClientWithConfig creates a client with custom config.
func NewOllamaClientWithConfig(config OllamaConfig) *OllamaClient {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	probeTimeout := config.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &OllamaClient{
		baseURL:      baseURL,
		model:        ResolveOllamaModel(config.Model),
		httpClient:   &http.Client{Timeout: timeout},
		probeTimeout: probeTimeout,
	}
}

// Name identifies this tier in attempts and logs.
func (c *OllamaClient) Name() string {
	return "ollama"
}

// IsAvailable probes the server's tag listing. A server that does not
// answer within the probe budget is treated as down.
func (c *OllamaClient) IsAvailable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, "GET", c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.ProviderDebug("[Ollama] IsAvailable: probe failed: %v", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Generate sends one completion request. The system prompt is folded into
// the prompt text since /api/generate takes a single prompt.
func (c *OllamaClient) Generate(ctx context.Context, genReq Request) (string, error) {
	// Auto-apply timeout if context has no deadline
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	logging.ProviderDebug("[Ollama] Generate: model=%s prompt_len=%d", c.model, len(genReq.Prompt))

	prompt := genReq.Prompt
	if strings.TrimSpace(genReq.SystemPrompt) != "" {
		prompt = fmt.Sprintf("System: %s\n\nUser: %s", genReq.SystemPrompt, genReq.Prompt)
	}

	maxTokens := genReq.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 400
	}
	temperature := genReq.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}

	reqBody := ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
			TopP:        0.9,
			TopK:        40,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	response := strings.TrimSpace(result.Response)
	if response == "" {
		return "", fmt.Errorf("ollama returned an empty response")
	}

	logging.Provider("[Ollama] Generate: completed in %v response_len=%d", time.Since(startTime), len(response))
	return response, nil
}

// SetModel changes the model, resolving aliases.
func (c *OllamaClient) SetModel(name string) {
	c.model = ResolveOllamaModel(name)
}

// GetModel returns the resolved model name.
func (c *OllamaClient) GetModel() string {
	return c.model
}

// =============================================================================
// OLLAMA API TYPES
// =============================================================================

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}
