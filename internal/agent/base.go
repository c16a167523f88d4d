// Package agent implements the three courtroom role agents (prosecutor,
// defense, judge) on top of a shared base. Every response an agent produces
// goes through the provider chain; agents therefore never fail to answer,
// they only degrade. Agents accumulate per-run state (case analysis, thought
// log, evidence notes) and are meant to be created fresh for each simulation
// run, then discarded. They are not safe for concurrent use.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jurix/internal/logging"
	"jurix/internal/provider"
	"jurix/internal/types"
)

// Role-specific thought categories beyond the fallback-machinery set in
// types. These never cross package boundaries unvalidated; they only tag
// entries in the reasoning log.
const (
	thoughtStrategy       types.ThoughtCategory = "strategy"
	thoughtEvidence       types.ThoughtCategory = "evidence"
	thoughtCross          types.ThoughtCategory = "cross_examination"
	thoughtClosing        types.ThoughtCategory = "closing"
	thoughtObjection      types.ThoughtCategory = "objection"
	thoughtRuling         types.ThoughtCategory = "ruling"
	thoughtJudgment       types.ThoughtCategory = "final_judgment"
	thoughtCourtroom      types.ThoughtCategory = "court_management"
	thoughtRebuttal       types.ThoughtCategory = "rebuttal"
	thoughtEvidenceNote   types.ThoughtCategory = "evidence_analysis"
	thoughtJuryDirections types.ThoughtCategory = "jury_instructions"
)

// enhancedPromptTemplate frames every request with the agent's professional
// identity before the situation and request.
const enhancedPromptTemplate = `You are an %s %s with a %s personality in a legal simulation.

Role Context: %s
Personality: %s
Expertise Level: %s

Current Situation: %s
Request: %s
`

// caseKnowledgeTemplate is appended when the agent has analyzed the case.
const caseKnowledgeTemplate = `
Case Knowledge:
- Case Type: %s
- Complexity: %s
- Key Issues: %s
- Applicable Law: %s
`

// promptInstructions bound every response regardless of which tier answers.
const promptInstructions = `
Instructions:
1. Respond authentically as this legal professional would
2. Use appropriate legal terminology
3. Be educational and realistic
4. Keep response under 300 words
5. Show legal reasoning where appropriate
`

// BaseAgent carries the state and behavior shared by all roles. Concrete
// roles embed it and register a strategy hook for role-specific notes.
type BaseAgent struct {
	role        string
	personality string
	expertise   string
	chain       *provider.Chain

	analysis      *types.CaseAnalysis
	thoughts      []types.ThoughtEntry
	evidenceNotes map[string]string

	// strategy is set by the embedding role to contribute strategy notes
	// during AnalyzeCase. May be nil.
	strategy func(c types.Case) []string
}

// NewBaseAgent builds the shared agent core. The chain is required.
func NewBaseAgent(role, personality, expertise string, chain *provider.Chain) *BaseAgent {
	return &BaseAgent{
		role:          role,
		personality:   personality,
		expertise:     expertise,
		chain:         chain,
		evidenceNotes: make(map[string]string),
	}
}

// Role returns the agent's role label as used in transcripts and thoughts.
func (b *BaseAgent) Role() string {
	return b.role
}

// think appends one entry to the reasoning log.
func (b *BaseAgent) think(category types.ThoughtCategory, format string, args ...interface{}) {
	note := fmt.Sprintf(format, args...)
	b.thoughts = append(b.thoughts, types.ThoughtEntry{
		Timestamp: time.Now(),
		Category:  category,
		Note:      note,
		Role:      b.role,
	})
	logging.AgentDebug("[%s - %s] %s", strings.ToUpper(b.role), strings.ToUpper(string(category)), note)
}

// AnalyzeCase derives and stores the agent's view of the case. Deterministic
// and local; any prior analysis is overwritten.
func (b *BaseAgent) AnalyzeCase(c types.Case) *types.CaseAnalysis {
	b.think(types.ThoughtAnalysis, "Analyzing case: %s", c.Title)

	analysis := Analyze(c)
	if b.strategy != nil {
		analysis.StrategyNotes = b.strategy(c)
	} else {
		analysis.StrategyNotes = []string{fmt.Sprintf("Develop %s strategy for %s case", b.role, c.Type)}
	}

	b.analysis = analysis
	return analysis
}

// Analysis returns the stored case analysis, nil before AnalyzeCase.
func (b *BaseAgent) Analysis() *types.CaseAnalysis {
	return b.analysis
}

// Respond generates one in-character response. It never returns an error:
// the chain bottoms out at the static tier, and every tier outcome is
// recorded in the thought log instead.
func (b *BaseAgent) Respond(ctx context.Context, prompt, situation string) string {
	preview := situation
	if len(preview) > 50 {
		preview = preview[:50]
	}
	b.think(types.ThoughtResponse, "Generating response for: %s...", preview)

	systemPrompt := fmt.Sprintf(
		"You are an %s %s with a %s personality. Provide a professional legal response in under 300 words.",
		b.expertise, b.role, b.personality)

	result := b.chain.Generate(ctx, provider.Request{
		Role:         b.role,
		Context:      situation,
		Prompt:       b.enhancePrompt(prompt, situation),
		SystemPrompt: systemPrompt,
		MaxTokens:    400,
		Temperature:  0.7,
	})

	b.recordAttempts(result.Attempts)

	switch result.Tier {
	case provider.TierGemini:
		b.think(types.ThoughtGeminiSuccess, "Generated Gemini response: %d characters", len(result.Text))
	case provider.TierOllama:
		b.think(types.ThoughtOllamaAttempt, "Attempting Ollama fallback")
		b.think(types.ThoughtOllamaSuccess, "Generated Ollama response: %d characters", len(result.Text))
	case provider.TierStatic:
		b.think(types.ThoughtStaticFallback, "Used static fallback response")
		return result.Text
	}

	return b.postProcess(result.Text)
}

// recordAttempts turns failed chain attempts into thought-log breadcrumbs.
// Absent tiers (not configured, probe failed) leave no trace, matching an
// agent that never tried them.
func (b *BaseAgent) recordAttempts(attempts []provider.Attempt) {
	for _, a := range attempts {
		if errors.Is(a.Err, provider.ErrNotConfigured) || errors.Is(a.Err, provider.ErrUnavailable) {
			continue
		}
		switch a.Tier {
		case provider.TierGemini:
			b.think(types.ThoughtGeminiError, "Gemini response failed: %v", a.Err)
		case provider.TierOllama:
			b.think(types.ThoughtOllamaAttempt, "Attempting Ollama fallback")
			b.think(types.ThoughtOllamaError, "Ollama response failed: %v", a.Err)
		}
	}
}

// enhancePrompt wraps the raw prompt with professional identity, case
// knowledge when present, and the fixed response instructions.
func (b *BaseAgent) enhancePrompt(prompt, situation string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, enhancedPromptTemplate,
		b.expertise, b.role, b.personality,
		b.role, b.personality, b.expertise,
		situation, prompt)

	if b.analysis != nil {
		fmt.Fprintf(&sb, caseKnowledgeTemplate,
			b.analysis.CaseType,
			b.analysis.Complexity,
			strings.Join(b.analysis.KeyIssues, ", "),
			strings.Join(b.analysis.LegalStandards, ", "))
	}

	sb.WriteString(promptInstructions)
	return sb.String()
}

// postProcess strips redundant self-identification prefixes. Only a short
// standalone lead sentence is dropped; a longer sentence that happens to
// start the same way is kept.
func (b *BaseAgent) postProcess(response string) string {
	response = strings.TrimSpace(response)

	prefixes := []string{
		"As a " + b.role,
		"As the " + b.role,
		"I am a " + b.role,
	}
	for _, prefix := range prefixes {
		if !strings.HasPrefix(response, prefix) {
			continue
		}
		first, rest, found := strings.Cut(response, ".")
		if found && len(first) < 50 {
			response = strings.TrimSpace(rest)
		}
		break
	}

	return response
}

// NoteEvidence stores an analysis note for one evidence item.
func (b *BaseAgent) NoteEvidence(evidenceID, note string) {
	b.evidenceNotes[evidenceID] = note
	b.think(thoughtEvidenceNote, "Added analysis for evidence: %s", evidenceID)
}

// Thoughts returns a copy of the reasoning log.
func (b *BaseAgent) Thoughts() []types.ThoughtEntry {
	out := make([]types.ThoughtEntry, len(b.thoughts))
	copy(out, b.thoughts)
	return out
}

// ClearMemory resets analysis, thoughts, and evidence notes. Required
// between runs when an agent outlives a simulation.
func (b *BaseAgent) ClearMemory() {
	b.analysis = nil
	b.thoughts = nil
	b.evidenceNotes = make(map[string]string)
}

// Status reports a diagnostic snapshot of accumulated state.
func (b *BaseAgent) Status() types.AgentStatus {
	return types.AgentStatus{
		Role:          b.role,
		HasAnalysis:   b.analysis != nil,
		ThoughtCount:  len(b.thoughts),
		EvidenceNotes: len(b.evidenceNotes),
	}
}
