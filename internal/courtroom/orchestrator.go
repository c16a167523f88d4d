// Package courtroom drives the fixed simulation protocol end to end: analyze
// evidence, run the three role agents through the session script, fall back
// to a one-shot remote narrative and then to a static script if the agent
// path fails, parse the transcript into turns, validate, and persist with
// read-back verification. Callers get a fully validated result or one named
// fatal error, never a partial.
package courtroom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jurix/internal/agent"
	"jurix/internal/docparse"
	"jurix/internal/logging"
	"jurix/internal/provider"
	"jurix/internal/store"
	"jurix/internal/transcript"
	"jurix/internal/types"
)

// sessionBanner frames the agent-produced transcript. The parser skips
// "="-prefixed lines, so banners never become turns.
const sessionBanner = "============================================================"

// DocumentParser is the evidence-extraction seam. Satisfied by
// docparse.Parser.
type DocumentParser interface {
	Parse(path string) (docparse.Document, error)
	ParseContent(content string) docparse.Document
}

// Config holds the protocol knobs.
type Config struct {
	// MaxEvidencePresentations caps the evidence loop for prompt-size
	// control. Evidence beyond the cap is still analyzed and counted.
	MaxEvidencePresentations int
	// EvidenceContentLimit truncates extracted evidence text per item.
	EvidenceContentLimit int
	// PersistAttempts bounds the save-with-verification retry loop.
	PersistAttempts int
}

// DefaultConfig matches the production protocol limits.
func DefaultConfig() Config {
	return Config{
		MaxEvidencePresentations: 5,
		EvidenceContentLimit:     4000,
		PersistAttempts:          3,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxEvidencePresentations <= 0 {
		c.MaxEvidencePresentations = d.MaxEvidencePresentations
	}
	if c.EvidenceContentLimit <= 0 {
		c.EvidenceContentLimit = d.EvidenceContentLimit
	}
	if c.PersistAttempts <= 0 {
		c.PersistAttempts = d.PersistAttempts
	}
	return c
}

// Orchestrator runs simulations. It is safe for sequential reuse; runs are
// not concurrent, and every run constructs its own agent set.
type Orchestrator struct {
	store   store.Store
	parser  DocumentParser
	chain   *provider.Chain
	oneShot provider.Generator // whole-simulation remote fallback, may be nil
	cfg     Config

	// now is swappable for deterministic tests.
	now func() time.Time
}

// New wires an orchestrator. The chain is required; oneShot may be nil, in
// which case a failed agent simulation drops straight to the static script.
func New(st store.Store, parser DocumentParser, chain *provider.Chain, oneShot provider.Generator, cfg Config) *Orchestrator {
	if parser == nil {
		parser = docparse.New()
	}
	return &Orchestrator{
		store:   st,
		parser:  parser,
		chain:   chain,
		oneShot: oneShot,
		cfg:     cfg.withDefaults(),
		now:     time.Now,
	}
}

// Run executes one full simulation for the case. The returned result has
// passed validation and been persisted with read-back verification.
func (o *Orchestrator) Run(ctx context.Context, caseID string) (*types.SimulationResult, error) {
	timer := logging.StartTimer(logging.CategoryCourtroom, "simulation run")
	defer timer.Stop()

	c, ok, err := o.store.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load case %s: %w", caseID, err)
	}
	if !ok {
		return nil, &CaseNotFoundError{CaseID: caseID}
	}

	logging.Courtroom("Starting simulation for case %s (%s)", caseID, c.Type)

	// Stage 1: evidence analysis. Absent evidence is an empty list, not an
	// error; a parse failure is fatal.
	evidence, err := o.analyzeEvidence(ctx, c)
	if err != nil {
		return nil, &EvidenceAnalysisError{CaseID: caseID, Err: err}
	}
	logging.Courtroom("Analyzed %d evidence items", len(evidence))

	// Stages 2-4: agent protocol, then the whole-simulation fallbacks.
	text, thinking, tier := o.generateTranscript(ctx, c, evidence)
	logging.Courtroom("Transcript produced by %s (%d chars)", tier, len(text))

	// Stage 5: turn parsing. Independent of which path produced the text.
	turns := transcript.Parse(text)

	result := &types.SimulationResult{
		SimulationID:     fmt.Sprintf("SIM_%s_%d", caseID, o.now().Unix()),
		Text:             text,
		Turns:            turns,
		Thinking:         thinking,
		EvidenceAnalyzed: len(evidence),
		Tier:             tier,
		GeneratedAt:      o.now().UTC(),
		Status:           types.StatusCompleted,
	}

	// Stage 6: schema validation. Fatal; invalid results are never saved.
	if err := Validate(result); err != nil {
		logging.CourtroomError("Result validation failed: %v", err)
		return nil, err
	}

	// Stage 7: persist with read-back verification.
	if err := o.persist(ctx, result); err != nil {
		return nil, err
	}

	logging.Courtroom("Simulation %s completed (%d turns)", result.SimulationID, len(result.Turns))
	return result, nil
}

// analyzeEvidence parses every evidence item into a bounded analysis record,
// preserving store order. Cases without the evidence flag skip the stage.
func (o *Orchestrator) analyzeEvidence(ctx context.Context, c types.Case) ([]types.EvidenceAnalysis, error) {
	if !c.HasEvidence {
		logging.CourtroomDebug("Case %s marked as no evidence required", c.ID)
		return []types.EvidenceAnalysis{}, nil
	}

	items, err := o.store.ListEvidence(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	if len(items) == 0 {
		logging.CourtroomDebug("No evidence files found for case %s", c.ID)
		return []types.EvidenceAnalysis{}, nil
	}

	analyzed := make([]types.EvidenceAnalysis, 0, len(items))
	for _, item := range items {
		var doc docparse.Document
		if item.FilePath != "" {
			doc, err = o.parser.Parse(item.FilePath)
			if err != nil {
				return nil, fmt.Errorf("failed to parse evidence %q: %w", item.Title, err)
			}
		} else {
			doc = o.parser.ParseContent(item.Content)
		}

		content := doc.Text
		if len(content) > o.cfg.EvidenceContentLimit {
			content = content[:o.cfg.EvidenceContentLimit]
		}

		analyzed = append(analyzed, types.EvidenceAnalysis{
			Title:   titleOrDefault(item.Title),
			Type:    evidenceType(item.Type),
			Summary: fmt.Sprintf("%s - %s", titleOrDefault(item.Title), item.Description),
			Content: content,
		})
	}
	return analyzed, nil
}

func evidenceType(t string) string {
	if strings.TrimSpace(t) == "" {
		return "unknown"
	}
	return t
}

// generateTranscript walks the whole-simulation fallback chain: local
// agents, then one remote one-shot call, then the static script. The static
// bottom cannot fail, so this always returns a transcript.
func (o *Orchestrator) generateTranscript(ctx context.Context, c types.Case, evidence []types.EvidenceAnalysis) (string, map[string][]types.ThoughtEntry, types.SimulationTier) {
	text, thinking, err := o.runAgentSimulation(ctx, c, evidence)
	if err == nil {
		return text, thinking, types.TierLocalAgents
	}
	logging.CourtroomWarn("Agent simulation failed, falling back to one-shot remote: %v", err)

	text, err = o.generateOneShot(ctx, c, evidence)
	if err == nil {
		return text, map[string][]types.ThoughtEntry{}, types.TierRemoteLLM
	}
	logging.CourtroomWarn("One-shot remote fallback failed, using static script: %v", err)

	return generateStaticTranscript(c, evidence, o.now()), map[string][]types.ThoughtEntry{}, types.TierStaticFallback
}

// runAgentSimulation drives fresh Prosecutor/Defense/Judge agents through
// the fixed session protocol and assembles the transcript with the literal
// section headers the parser keys on. Individual response failures are
// absorbed inside the agents; only an error or panic escaping the whole
// stage aborts it.
func (o *Orchestrator) runAgentSimulation(ctx context.Context, c types.Case, evidence []types.EvidenceAnalysis) (text string, thinking map[string][]types.ThoughtEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent simulation panicked: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	prosecutor := agent.NewProsecutor(o.chain)
	defense := agent.NewDefense(o.chain)
	judge := agent.NewJudge(o.chain)

	prosecutor.AnalyzeCase(c)
	defense.AnalyzeCase(c)
	judge.AnalyzeCase(c)

	var lines []string
	lines = append(lines, sessionBanner, "COURT SESSION BEGINS", sessionBanner)

	lines = append(lines, fmt.Sprintf("JUDGE: %s\n", judge.OpenCourt(ctx, c)))

	lines = append(lines, "PROSECUTOR'S OPENING:")
	lines = append(lines, prosecutor.MakeOpeningStatement(ctx, c, evidence), "")

	lines = append(lines, "DEFENSE'S OPENING:")
	lines = append(lines, defense.MakeOpeningStatement(ctx, c, evidence), "")

	lines = append(lines, "EVIDENCE PRESENTATION:")
	presented := evidence
	if len(presented) > o.cfg.MaxEvidencePresentations {
		presented = presented[:o.cfg.MaxEvidencePresentations]
	}
	for i, ev := range presented {
		pres := prosecutor.PresentEvidence(ctx, ev)
		cross := defense.CrossExamine(ctx, ev.Summary)
		lines = append(lines, fmt.Sprintf("PROSECUTOR (Evidence %d): %s", i+1, pres))
		lines = append(lines, fmt.Sprintf("DEFENSE (Cross-exam): %s\n", cross))
	}

	summaryLine := fmt.Sprintf("Case summary: %s - evidence items: %d", c.Title, len(evidence))

	lines = append(lines, "CLOSING ARGUMENTS:")
	lines = append(lines, "PROSECUTOR: "+prosecutor.MakeClosingArgument(ctx, summaryLine))
	lines = append(lines, "DEFENSE: "+defense.MakeClosingArgument(ctx, summaryLine), "")

	if len(presented) > 0 {
		ruling := judge.RuleOnEvidence(ctx, presented[0].Summary, "foundation")
		lines = append(lines, fmt.Sprintf("JUDGE: %s\n", ruling))
	}

	judgment := judge.FinalJudgment(ctx, summaryLine, evidenceSummary(evidence))
	lines = append(lines, "COURT'S DECISION:", judgment)

	lines = append(lines, sessionBanner, "COURT SESSION ENDS", sessionBanner)

	thinking = map[string][]types.ThoughtEntry{
		"prosecutor_thoughts": prosecutor.Thoughts(),
		"defense_thoughts":    defense.Thoughts(),
		"judge_thoughts":      judge.Thoughts(),
	}

	return strings.Join(lines, "\n"), thinking, nil
}

// evidenceSummary flattens the analyzed evidence for the final-judgment
// prompt. Full content stays out; the judgment only needs the summaries.
func evidenceSummary(evidence []types.EvidenceAnalysis) string {
	if len(evidence) == 0 {
		return "No evidence was submitted."
	}
	parts := make([]string, len(evidence))
	for i, ev := range evidence {
		parts[i] = ev.Summary
	}
	return strings.Join(parts, "; ")
}

// persist saves the result and verifies the write by reading it back,
// retrying up to the configured attempt budget. A best-effort case update
// links the case record to its latest simulation.
func (o *Orchestrator) persist(ctx context.Context, result *types.SimulationResult) error {
	var lastErr error
	for attempt := 1; attempt <= o.cfg.PersistAttempts; attempt++ {
		if err := o.store.SaveSimulation(ctx, result); err != nil {
			lastErr = err
			logging.StoreWarn("Save attempt %d/%d failed: %v", attempt, o.cfg.PersistAttempts, err)
			continue
		}

		saved, ok, err := o.store.GetSimulation(ctx, result.SimulationID)
		if err != nil {
			lastErr = err
			logging.StoreWarn("Read-back attempt %d/%d failed: %v", attempt, o.cfg.PersistAttempts, err)
			continue
		}
		if !ok {
			lastErr = fmt.Errorf("simulation not found after save")
			continue
		}
		if err := verifySaved(result, saved); err != nil {
			lastErr = err
			logging.StoreWarn("Verification attempt %d/%d failed: %v", attempt, o.cfg.PersistAttempts, err)
			continue
		}

		logging.Store("Simulation %s verified after %d attempt(s)", result.SimulationID, attempt)

		if err := o.store.UpdateCase(ctx, caseIDFromSimulation(result.SimulationID), map[string]interface{}{
			"simulation_id": result.SimulationID,
			"status":        "simulated",
		}); err != nil {
			// The simulation record is already safe; a stale case link is
			// not worth failing the run.
			logging.StoreWarn("Case link update failed: %v", err)
		}
		return nil
	}
	return &PersistenceError{SimulationID: result.SimulationID, Attempts: o.cfg.PersistAttempts, Err: lastErr}
}

// verifySaved re-checks the required fields on the read-back copy.
func verifySaved(want, got *types.SimulationResult) error {
	if got.SimulationID != want.SimulationID {
		return fmt.Errorf("saved record has wrong simulation_id")
	}
	if strings.TrimSpace(got.Text) == "" {
		return fmt.Errorf("saved record missing simulation_text")
	}
	if got.Turns == nil || len(got.Turns) != len(want.Turns) {
		return fmt.Errorf("saved record missing turns")
	}
	if got.Status != want.Status {
		return fmt.Errorf("saved record missing status")
	}
	return nil
}

// caseIDFromSimulation recovers the case ID embedded in SIM_{caseID}_{ts}.
func caseIDFromSimulation(simulationID string) string {
	trimmed := strings.TrimPrefix(simulationID, "SIM_")
	if idx := strings.LastIndex(trimmed, "_"); idx > 0 {
		return trimmed[:idx]
	}
	return trimmed
}
