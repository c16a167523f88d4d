// Package provider implements the tiered text-generation backends behind
// every agent response: a remote Gemini client, a local Ollama client, and a
// deterministic static generator. The Chain tries them in strict priority
// order and short-circuits on the first usable response. Each tier is more
// available and lower quality than the one above it; the static tier never
// fails, so the chain as a whole never fails.
package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"jurix/internal/logging"
)

// minUsableResponse is the pragmatic floor against empty or garbage
// generations: a trimmed response must be longer than this to count as
// success.
const minUsableResponse = 10

// Tier identifies one ranked backend in the chain.
type Tier string

const (
	TierGemini Tier = "gemini"
	TierOllama Tier = "ollama"
	TierStatic Tier = "static"
)

// Request carries one generation call through the chain. Role and Context
// only matter to the static tier, which keys its canned responses on them.
type Request struct {
	Role         string
	Context      string
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// Generator is one network-backed tier.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// LocalGenerator adds a cheap liveness probe so the chain can skip a
// known-down local model without paying a generation timeout.
type LocalGenerator interface {
	Generator
	IsAvailable(ctx context.Context) bool
}

// Attempt records one tier try, failed or not. The agent layer turns these
// into thought-log entries.
type Attempt struct {
	Tier Tier
	Err  error
}

// ChainResult is the outcome of walking the chain for one request. Text is
// always non-empty because the static tier cannot fail.
type ChainResult struct {
	Text     string
	Tier     Tier
	Attempts []Attempt
}

// ErrNotConfigured marks a tier that is absent rather than failing, e.g. a
// remote client with no API key.
var ErrNotConfigured = errors.New("provider not configured")

// ErrUnavailable marks a tier whose liveness probe failed.
var ErrUnavailable = errors.New("provider not available")

// Chain walks the tiers for each request. It holds no simulation state and
// is a pure function of its inputs plus provider state.
type Chain struct {
	remote Generator
	local  LocalGenerator
	static *Static
}

// NewChain builds a chain. remote and local may be nil; the static tier is
// required and is the guaranteed bottom of the chain.
func NewChain(remote Generator, local LocalGenerator, static *Static) *Chain {
	if static == nil {
		static = NewStatic(DefaultLibrary())
	}
	return &Chain{remote: remote, local: local, static: static}
}

func usable(text string) bool {
	return len(strings.TrimSpace(text)) > minUsableResponse
}

// Generate tries each tier in priority order and returns the first usable
// response. A tier that errors, times out, or returns below-threshold text
// is treated identically: recorded and skipped.
func (c *Chain) Generate(ctx context.Context, req Request) ChainResult {
	timer := logging.StartTimer(logging.CategoryProvider, "chain generate")
	defer timer.Stop()

	var attempts []Attempt

	if c.remote == nil {
		attempts = append(attempts, Attempt{Tier: TierGemini, Err: ErrNotConfigured})
	} else {
		text, err := c.remote.Generate(ctx, req)
		if err == nil && usable(text) {
			logging.ProviderDebug("chain: %s satisfied request (len=%d)", c.remote.Name(), len(text))
			return ChainResult{Text: strings.TrimSpace(text), Tier: TierGemini, Attempts: attempts}
		}
		if err == nil {
			err = errors.New("response below usable length")
		}
		logging.ProviderWarn("chain: %s failed: %v", c.remote.Name(), err)
		attempts = append(attempts, Attempt{Tier: TierGemini, Err: err})
	}

	if c.local == nil {
		attempts = append(attempts, Attempt{Tier: TierOllama, Err: ErrNotConfigured})
	} else if !c.local.IsAvailable(ctx) {
		logging.ProviderDebug("chain: %s liveness probe failed, skipping", c.local.Name())
		attempts = append(attempts, Attempt{Tier: TierOllama, Err: ErrUnavailable})
	} else {
		text, err := c.local.Generate(ctx, req)
		if err == nil && usable(text) {
			logging.ProviderDebug("chain: %s satisfied request (len=%d)", c.local.Name(), len(text))
			return ChainResult{Text: strings.TrimSpace(text), Tier: TierOllama, Attempts: attempts}
		}
		if err == nil {
			err = errors.New("response below usable length")
		}
		logging.ProviderWarn("chain: %s failed: %v", c.local.Name(), err)
		attempts = append(attempts, Attempt{Tier: TierOllama, Err: err})
	}

	// Bottom of the chain. Callers must label the result low-fidelity.
	text := c.static.Respond(req.Role, req.Context)
	logging.ProviderDebug("chain: static tier satisfied request for role=%s", req.Role)
	return ChainResult{Text: text, Tier: TierStatic, Attempts: attempts}
}

// TierHealth reports readiness of one tier.
type TierHealth struct {
	Tier   Tier   `json:"tier"`
	Ready  bool   `json:"ready"`
	Detail string `json:"detail"`
}

// Health probes each tier without generating anything. The local probe is
// bounded by the given timeout.
func (c *Chain) Health(ctx context.Context, probeTimeout time.Duration) []TierHealth {
	report := make([]TierHealth, 0, 3)

	if c.remote == nil {
		report = append(report, TierHealth{Tier: TierGemini, Ready: false, Detail: "api key not configured"})
	} else {
		report = append(report, TierHealth{Tier: TierGemini, Ready: true, Detail: "configured"})
	}

	if c.local == nil {
		report = append(report, TierHealth{Tier: TierOllama, Ready: false, Detail: "not configured"})
	} else {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		ready := c.local.IsAvailable(probeCtx)
		cancel()
		detail := "reachable"
		if !ready {
			detail = "not reachable"
		}
		report = append(report, TierHealth{Tier: TierOllama, Ready: ready, Detail: detail})
	}

	report = append(report, TierHealth{Tier: TierStatic, Ready: true, Detail: "always available"})
	return report
}
