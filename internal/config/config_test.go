package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "jurix", cfg.Name)
	assert.Equal(t, "http://localhost:11434", cfg.Providers.Ollama.BaseURL)
	assert.Equal(t, 5, cfg.Simulation.MaxEvidencePresentations)
	assert.Equal(t, 3, cfg.Simulation.PersistAttempts)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
providers:
  ollama:
    base_url: http://ollama:11434
  request_timeout: 45s
simulation:
  max_evidence_presentations: 2
store:
  dir: /tmp/jurix-data
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://ollama:11434", cfg.Providers.Ollama.BaseURL)
	assert.Equal(t, 2, cfg.Simulation.MaxEvidencePresentations)
	assert.Equal(t, "/tmp/jurix-data", cfg.Store.Dir)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 4000, cfg.Simulation.EvidenceContentLimit)
	assert.Equal(t, 45*time.Second, cfg.GetRequestTimeout())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gk-test")
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("JURIX_STORE_DIR", "/var/lib/jurix")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gk-test", cfg.Providers.Gemini.APIKey)
	assert.Equal(t, "llama3", cfg.Providers.Ollama.Model)
	assert.Equal(t, "/var/lib/jurix", cfg.Store.Dir)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Providers.Ollama.Model = "fast"
	cfg.Simulation.PersistAttempts = 5
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fast", loaded.Providers.Ollama.Model)
	assert.Equal(t, 5, loaded.Simulation.PersistAttempts)
}

func TestTimeoutFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Providers.RequestTimeout = "not-a-duration"
	cfg.Providers.LocalTimeout = ""
	cfg.Providers.ProbeTimeout = "bogus"

	assert.Equal(t, 30*time.Second, cfg.GetRequestTimeout())
	assert.Equal(t, 120*time.Second, cfg.GetLocalTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetProbeTimeout())
}

func TestValidateRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative evidence cap", func(c *Config) { c.Simulation.MaxEvidencePresentations = -1 }},
		{"zero content limit", func(c *Config) { c.Simulation.EvidenceContentLimit = 0 }},
		{"zero persist attempts", func(c *Config) { c.Simulation.PersistAttempts = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
