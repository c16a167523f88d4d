package courtroom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jurix/internal/provider"
	"jurix/internal/types"
)

// oneShotSystemPrompt frames the whole-simulation remote fallback.
const oneShotSystemPrompt = "You are an experienced judge conducting a fair and educational courtroom simulation."

// oneShotPromptTemplate asks for the complete narrative in a single call.
// Numbered sections keep the output parseable by the same role markers the
// agent path produces.
const oneShotPromptTemplate = `You are an AI judge conducting a courtroom simulation.

Case Details:
Title: %s
Type: %s
Description: %s
Plaintiff: %s
Defendant: %s

Evidence Summary:
%s

Please deliver a realistic courtroom simulation with:
1) Opening statements (plaintiff & defendant)
2) Evidence presentations (refer to the evidence bullets above)
3) Legal arguments
4) Final judgment with reasoning and any relevant precedents

Prefix each speaker's lines with JUDGE:, PROSECUTOR: or DEFENSE:.
Be structured and professional. Keep it educational.`

// generateOneShot produces a full transcript from a single remote call. Used
// only when the agent-driven protocol failed. An unusable response is an
// error so the caller can drop to the static script.
func (o *Orchestrator) generateOneShot(ctx context.Context, c types.Case, evidence []types.EvidenceAnalysis) (string, error) {
	if o.oneShot == nil {
		return "", provider.ErrNotConfigured
	}

	var bullets strings.Builder
	for _, ev := range evidence {
		fmt.Fprintf(&bullets, "- %s\n", ev.Summary)
	}
	if bullets.Len() == 0 {
		bullets.WriteString("- No evidence submitted.\n")
	}

	prompt := fmt.Sprintf(oneShotPromptTemplate,
		c.Title, c.Type, c.Description,
		partyLabel(c.Parties.Plaintiff, "Plaintiff"),
		partyLabel(c.Parties.Defendant, "Defendant"),
		strings.TrimRight(bullets.String(), "\n"))

	text, err := o.oneShot.Generate(ctx, provider.Request{
		Prompt:       prompt,
		SystemPrompt: oneShotSystemPrompt,
		MaxTokens:    2000,
		Temperature:  0.7,
	})
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(text)) <= 10 {
		return "", fmt.Errorf("one-shot response below usable length")
	}
	return strings.TrimSpace(text), nil
}

func partyLabel(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}

// generateStaticTranscript is the bottom of the whole-simulation fallback
// chain: a fixed educational script with the case and evidence interpolated.
// It never fails.
func generateStaticTranscript(c types.Case, evidence []types.EvidenceAnalysis, now time.Time) string {
	lines := []string{
		fmt.Sprintf("COURTROOM SIMULATION - %s", titleOrDefault(c.Title)),
		fmt.Sprintf("CASE DESCRIPTION: %s", c.Description),
		"",
		"COURT IN SESSION",
		fmt.Sprintf("JUDGE: Court is now in session for %s vs %s.",
			partyLabel(c.Parties.Plaintiff, "Plaintiff"),
			partyLabel(c.Parties.Defendant, "Defendant")),
		"",
		"OPENING STATEMENTS:",
		`PROSECUTOR: "We will show the evidence supports our claim."`,
		`DEFENSE: "We disagree and will challenge the evidence."`,
		"",
		"EVIDENCE SUMMARY:",
	}

	for i, ev := range evidence {
		lines = append(lines, fmt.Sprintf("Evidence %d: %s (%s)", i+1, ev.Title, ev.Type))
	}
	if len(evidence) == 0 {
		lines = append(lines, "No evidence was submitted for this case.")
	}

	lines = append(lines,
		"",
		"LEGAL ARGUMENTS: Both sides present their points based on evidence.",
		"",
		"COURT'S DECISION: This is a simulated decision - further analysis may be required.",
		"",
		fmt.Sprintf("Simulation generated at: %s", now.UTC().Format(time.RFC3339)),
	)

	return strings.Join(lines, "\n")
}

func titleOrDefault(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled Case"
	}
	return title
}
