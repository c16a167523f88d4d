package main

import (
	"context"
	"fmt"

	"jurix/internal/courtroom"
	"jurix/internal/docparse"
	"jurix/internal/provider"
	"jurix/internal/store"
)

// stack holds everything a command needs, wired once per invocation.
// Provider clients are constructed here and injected downward; nothing in
// the simulation core reaches for globals.
type stack struct {
	store   *store.File
	chain   *provider.Chain
	oneShot provider.Generator
	orch    *courtroom.Orchestrator
	watcher *provider.ResponseWatcher
}

// buildStack wires the provider chain, stores, and orchestrator from the
// loaded config. Tiers without credentials are left out of the chain; the
// static tier is always present, so the stack never fails to generate.
func buildStack(ctx context.Context) (*stack, error) {
	fileStore, err := store.NewFile(cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	var remote provider.Generator
	if cfg.Providers.Gemini.APIKey != "" {
		remote = provider.NewGeminiClientWithConfig(provider.GeminiConfig{
			APIKey:  cfg.Providers.Gemini.APIKey,
			BaseURL: cfg.Providers.Gemini.BaseURL,
			Model:   cfg.Providers.Gemini.Model,
			Timeout: cfg.GetRequestTimeout(),
		})
	}

	local := provider.NewOllamaClientWithConfig(provider.OllamaConfig{
		BaseURL:      cfg.Providers.Ollama.BaseURL,
		Model:        cfg.Providers.Ollama.Model,
		Timeout:      cfg.GetLocalTimeout(),
		ProbeTimeout: cfg.GetProbeTimeout(),
	})

	lib := provider.DefaultLibrary()
	if cfg.Responses.Dir != "" {
		if err := lib.LoadDir(cfg.Responses.Dir); err != nil {
			return nil, fmt.Errorf("failed to load response overrides: %w", err)
		}
	}
	static := provider.NewStatic(lib)

	chain := provider.NewChain(remote, local, static)

	var oneShot provider.Generator
	if cfg.Providers.OpenAI.APIKey != "" {
		oneShot = provider.NewOpenAIClientWithConfig(provider.OpenAIConfig{
			APIKey:  cfg.Providers.OpenAI.APIKey,
			BaseURL: cfg.Providers.OpenAI.BaseURL,
			Model:   cfg.Providers.OpenAI.Model,
			Timeout: cfg.GetRequestTimeout(),
		})
	}

	s := &stack{
		store:   fileStore,
		chain:   chain,
		oneShot: oneShot,
		orch: courtroom.New(fileStore, docparse.New(), chain, oneShot, courtroom.Config{
			MaxEvidencePresentations: cfg.Simulation.MaxEvidencePresentations,
			EvidenceContentLimit:     cfg.Simulation.EvidenceContentLimit,
			PersistAttempts:          cfg.Simulation.PersistAttempts,
		}),
	}

	if cfg.Responses.Dir != "" && cfg.Responses.HotReload {
		watcher, err := provider.NewResponseWatcher(cfg.Responses.Dir, lib)
		if err != nil {
			return nil, fmt.Errorf("failed to create response watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return nil, fmt.Errorf("failed to start response watcher: %w", err)
		}
		s.watcher = watcher
	}

	return s, nil
}

// close stops background pieces of the stack.
func (s *stack) close() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
}
