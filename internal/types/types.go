// Package types provides shared type definitions used across jurix packages.
// This package exists to break import cycles between agent, courtroom, and
// store. Types in this package are foundational data structures with no
// complex dependencies.
package types

import (
	"strings"
	"time"
)

// =============================================================================
// CASE MODEL
// =============================================================================

// CaseType classifies a case for analysis and legal-standard selection.
type CaseType string

const (
	CaseCriminal       CaseType = "criminal"
	CaseCivil          CaseType = "civil"
	CaseCorporate      CaseType = "corporate"
	CaseConstitutional CaseType = "constitutional"
	CaseFamily         CaseType = "family"
	CaseOther          CaseType = "other"
)

// ParseCaseType normalizes a free-form case type label. Unknown labels map
// to CaseOther rather than failing, since case records originate upstream.
func ParseCaseType(s string) CaseType {
	switch CaseType(strings.ToLower(strings.TrimSpace(s))) {
	case CaseCriminal:
		return CaseCriminal
	case CaseCivil:
		return CaseCivil
	case CaseCorporate:
		return CaseCorporate
	case CaseConstitutional:
		return CaseConstitutional
	case CaseFamily:
		return CaseFamily
	default:
		return CaseOther
	}
}

// Parties names the participants of a case as they appear in prompts and
// transcripts.
type Parties struct {
	Plaintiff       string `json:"plaintiff" yaml:"plaintiff"`
	Defendant       string `json:"defendant" yaml:"defendant"`
	Judge           string `json:"judge" yaml:"judge"`
	MultipleParties bool   `json:"multiple_parties" yaml:"multiple_parties"`
}

// Case is the read-only case record consumed by a simulation run. It is
// immutable for the duration of one run.
type Case struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Type        CaseType `json:"case_type" yaml:"case_type"`
	Parties     Parties  `json:"parties" yaml:"parties"`
	HasEvidence bool     `json:"has_evidence" yaml:"has_evidence"`
}

// EvidenceItem is one piece of evidence attached to a case. Content holds
// extracted text when a source document has already been processed upstream;
// FilePath points at the raw document otherwise.
type EvidenceItem struct {
	ID          string `json:"id" yaml:"id"`
	CaseID      string `json:"case_id" yaml:"case_id"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"evidence_type" yaml:"evidence_type"`
	Description string `json:"description" yaml:"description"`
	Content     string `json:"content,omitempty" yaml:"content,omitempty"`
	FilePath    string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
}

// EvidenceAnalysis is the per-item record produced by the evidence-analysis
// stage and fed into agent prompts.
type EvidenceAnalysis struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// =============================================================================
// AGENT STATE
// =============================================================================

// ComplexityLevel grades a case by the analysis heuristics.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// CaseAnalysis is an agent's derived view of a case. Recomputed per run,
// never persisted.
type CaseAnalysis struct {
	CaseType       CaseType        `json:"case_type"`
	Complexity     ComplexityLevel `json:"complexity"`
	KeyIssues      []string        `json:"key_issues"`
	LegalStandards []string        `json:"legal_standards"`
	StrategyNotes  []string        `json:"strategy_notes"`
}

// ThoughtCategory tags an entry in an agent's reasoning log.
type ThoughtCategory string

const (
	ThoughtAnalysis       ThoughtCategory = "analysis"
	ThoughtResponse       ThoughtCategory = "response"
	ThoughtGeminiSuccess  ThoughtCategory = "gemini_success"
	ThoughtGeminiError    ThoughtCategory = "gemini_error"
	ThoughtOllamaAttempt  ThoughtCategory = "ollama_attempt"
	ThoughtOllamaSuccess  ThoughtCategory = "ollama_success"
	ThoughtOllamaError    ThoughtCategory = "ollama_error"
	ThoughtStaticFallback ThoughtCategory = "static_fallback"
)

// ThoughtEntry is one record in an agent's append-only reasoning log.
type ThoughtEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Category  ThoughtCategory `json:"category"`
	Note      string          `json:"note"`
	Role      string          `json:"role"`
}

// AgentStatus is a diagnostic snapshot of one agent's accumulated state.
type AgentStatus struct {
	Role          string `json:"role"`
	HasAnalysis   bool   `json:"has_analysis"`
	ThoughtCount  int    `json:"thought_count"`
	EvidenceNotes int    `json:"evidence_notes"`
}

// =============================================================================
// SIMULATION RESULT
// =============================================================================

// SimulationTier labels which generation path produced a whole simulation.
// This is one level above the per-response provider tiers recorded in agent
// thought logs.
type SimulationTier string

const (
	TierLocalAgents    SimulationTier = "local_agents"
	TierRemoteLLM      SimulationTier = "remote_llm"
	TierStaticFallback SimulationTier = "static_fallback"
)

// Valid reports whether the tier label is one of the fixed set.
func (t SimulationTier) Valid() bool {
	switch t {
	case TierLocalAgents, TierRemoteLLM, TierStaticFallback:
		return true
	}
	return false
}

// SimulationStatus is the terminal state of a simulation run.
type SimulationStatus string

const (
	StatusCompleted SimulationStatus = "completed"
	StatusFailed    SimulationStatus = "failed"
	StatusPartial   SimulationStatus = "partial"
)

// Valid reports whether the status is one of the fixed set.
func (s SimulationStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusPartial:
		return true
	}
	return false
}

// Turn is one structured, role-attributed utterance extracted from a
// transcript. Number is zero-based and dense. Timestamp and Duration are
// synthetic presentation hints derived from the turn index and message
// length, not wall-clock measurements.
type Turn struct {
	Number    int    `json:"turn_number"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Duration  int    `json:"duration"`
}

// SimulationResult is the validated output of one simulation run. Immutable
// after validation succeeds; persisted all-or-nothing.
type SimulationResult struct {
	SimulationID     string                    `json:"simulation_id"`
	Text             string                    `json:"simulation_text"`
	Turns            []Turn                    `json:"turns"`
	Thinking         map[string][]ThoughtEntry `json:"thinking_processes"`
	EvidenceAnalyzed int                       `json:"evidence_analyzed"`
	Tier             SimulationTier            `json:"simulation_type"`
	GeneratedAt      time.Time                 `json:"generated_at"`
	Status           SimulationStatus          `json:"status"`
}
