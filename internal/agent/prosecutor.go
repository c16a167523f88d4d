package agent

import (
	"context"
	"fmt"
	"strings"

	"jurix/internal/provider"
	"jurix/internal/types"
)

// Prosecutor presses the state's case: opening statement, evidence
// presentation in strength-assessed order, closing argument, and responses
// to defense objections.
type Prosecutor struct {
	*BaseAgent

	theory        string
	evidenceOrder []string
	keyArguments  []string

	// presentation order and strength of each evidence item, by title
	presented        []string
	evidenceStrength map[string]string
}

// NewProsecutor builds a prosecutor on the given chain.
func NewProsecutor(chain *provider.Chain) *Prosecutor {
	p := &Prosecutor{
		BaseAgent:        NewBaseAgent("prosecutor", "assertive but fair", "experienced", chain),
		evidenceStrength: make(map[string]string),
	}
	p.BaseAgent.strategy = p.developStrategy
	return p
}

// developStrategy fills the prosecution strategy during case analysis and
// returns the strategy notes recorded in the analysis.
func (p *Prosecutor) developStrategy(c types.Case) []string {
	var notes []string
	switch c.Type {
	case types.CaseCriminal:
		notes = []string{
			"Establish elements of the crime beyond reasonable doubt",
			"Present evidence in logical sequence",
			"Anticipate defense arguments and prepare rebuttals",
			"Emphasize victim impact and public safety",
		}
	case types.CaseCivil:
		notes = []string{
			"Prove liability by preponderance of evidence",
			"Establish damages and causation",
			"Present compelling narrative of events",
		}
	}

	p.theory = p.developCaseTheory(c)
	p.evidenceOrder = planEvidencePresentation()
	p.keyArguments = notes
	return notes
}

// developCaseTheory picks the prosecution's main theory from the case
// description. Only criminal cases get a specific theory.
func (p *Prosecutor) developCaseTheory(c types.Case) string {
	description := strings.ToLower(c.Description)

	if c.Type == types.CaseCriminal {
		switch {
		case strings.Contains(description, "theft"), strings.Contains(description, "steal"):
			return "Defendant intentionally and unlawfully took property belonging to another"
		case strings.Contains(description, "assault"), strings.Contains(description, "violence"):
			return "Defendant intentionally caused harm or threatened imminent harm to the victim"
		case strings.Contains(description, "fraud"):
			return "Defendant knowingly made false representations to deceive the victim"
		}
	}

	return "Defendant is liable for the alleged wrongdoing based on the evidence"
}

// planEvidencePresentation is the fixed presentation order template.
func planEvidencePresentation() []string {
	return []string{
		"Foundation evidence (scene, timeline)",
		"Direct evidence (eyewitness, physical)",
		"Circumstantial evidence (supporting facts)",
		"Expert testimony (if applicable)",
		"Character evidence (if admissible)",
	}
}

// MakeOpeningStatement analyzes the case and delivers the prosecution
// opening.
func (p *Prosecutor) MakeOpeningStatement(ctx context.Context, c types.Case, evidence []types.EvidenceAnalysis) string {
	p.AnalyzeCase(c)
	p.think(thoughtStrategy, "Crafting opening statement to establish prosecution theory")

	defendant := c.Parties.Defendant
	if defendant == "" {
		defendant = "the defendant"
	}
	plaintiff := c.Parties.Plaintiff
	if plaintiff == "" {
		plaintiff = "the people"
	}

	prompt := fmt.Sprintf(`Case: %s
Type: %s
Defendant: %s
Plaintiff: %s

Case Theory: %s

Evidence Available: %d pieces including:
%s

`, c.Title, c.Type, defendant, plaintiff, p.theory, len(evidence), summarizeEvidence(evidence)) + prosecutorOpeningPrompt

	return p.Respond(ctx, prompt, "prosecution opening statement")
}

// summarizeEvidence lists at most five items for an opening or closing
// prompt.
func summarizeEvidence(evidence []types.EvidenceAnalysis) string {
	if len(evidence) == 0 {
		return "- Case facts and circumstances"
	}

	var lines []string
	for i, item := range evidence {
		if i == 5 {
			break
		}
		title := item.Title
		if title == "" {
			title = fmt.Sprintf("Evidence %d", i+1)
		}
		evidenceType := item.Type
		if evidenceType == "" {
			evidenceType = "evidence"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", title, evidenceType))
	}
	if len(evidence) > 5 {
		lines = append(lines, fmt.Sprintf("- And %d additional pieces of evidence", len(evidence)-5))
	}
	return strings.Join(lines, "\n")
}

// PresentEvidence presents one item with foundation and persuasive framing.
func (p *Prosecutor) PresentEvidence(ctx context.Context, item types.EvidenceAnalysis) string {
	title := item.Title
	if title == "" {
		title = "Evidence"
	}
	evidenceType := item.Type
	if evidenceType == "" {
		evidenceType = "document"
	}

	p.think(thoughtEvidence, "Presenting %s evidence: %s", evidenceType, title)

	strength := assessEvidenceStrength(evidenceType)
	if _, seen := p.evidenceStrength[title]; !seen {
		p.presented = append(p.presented, title)
	}
	p.evidenceStrength[title] = strength

	summary := item.Summary
	if summary == "" {
		summary = item.Content
		if len(summary) > 200 {
			summary = summary[:200]
		}
	}

	prompt := fmt.Sprintf(`Present this evidence to the court as a prosecutor:

Evidence: %s
Type: %s
Summary: %s

Evidence Strength Assessment: %s

Your presentation should:
1. Establish proper foundation for admissibility
2. Explain the evidence clearly to the jury
3. Connect it to your case theory
4. Highlight its significance and reliability
5. Address potential weaknesses proactively

Use phrases like "This evidence shows..." or "The facts demonstrate...".
Be confident but not overstated.
`, title, evidenceType, summary, strength)

	return p.Respond(ctx, prompt, "evidence presentation")
}

// assessEvidenceStrength grades an evidence type for strategic framing.
func assessEvidenceStrength(evidenceType string) string {
	switch strings.ToLower(evidenceType) {
	case "dna":
		return "very strong"
	case "video", "forensic", "fingerprint":
		return "strong"
	case "document", "testimony", "witness":
		return "moderate"
	case "circumstantial":
		return "weak to moderate"
	default:
		return "moderate"
	}
}

// MakeClosingArgument delivers the closing, citing the strongest evidence
// presented so far.
func (p *Prosecutor) MakeClosingArgument(ctx context.Context, caseSummary string) string {
	p.think(thoughtClosing, "Preparing closing argument to secure conviction")

	var strong []string
	for _, title := range p.presented {
		if s := p.evidenceStrength[title]; s == "strong" || s == "very strong" {
			strong = append(strong, title)
		}
	}
	strongLine := "Multiple pieces of evidence"
	if len(strong) > 0 {
		strongLine = strings.Join(strong, ", ")
	}

	standard := "burden of proof"
	if p.analysis != nil && len(p.analysis.LegalStandards) > 0 {
		standard = strings.Join(p.analysis.LegalStandards, ", ")
	}

	prompt := fmt.Sprintf(`Deliver a compelling closing argument as a prosecutor:

Case Summary: %s

Prosecution Theory: %s

Strong Evidence Presented: %s

Key Legal Standard: %s

Your closing should:
1. Remind jury of your opening promises and how you delivered
2. Walk through evidence systematically
3. Address defense arguments and create rebuttals
4. Emphasize meeting burden of proof
5. Appeal to justice and community safety
6. End with clear call for guilty verdict

Be passionate but professional. Use "The evidence shows..." frequently.
Connect all evidence to your theory of the case.
`, caseSummary, p.closingTheory(), strongLine, standard)

	return p.Respond(ctx, prompt, "prosecution closing argument")
}

func (p *Prosecutor) closingTheory() string {
	if p.theory != "" {
		return p.theory
	}
	return "Defendant is guilty as charged"
}

// MakeRebuttal answers the defense's closing.
func (p *Prosecutor) MakeRebuttal(ctx context.Context, caseSummary string) string {
	p.think(thoughtRebuttal, "Preparing rebuttal argument to counter defense claims")

	prompt := fmt.Sprintf(`Deliver a rebuttal argument as a prosecutor addressing the defense's closing argument:

Case Summary: %s

Prosecution Theory: %s

Your rebuttal should:
1. Address specific defense arguments and weaknesses
2. Re-emphasize strong evidence that counters defense claims
3. Reinforce the prosecution's case theory
4. Remind the jury of the burden of proof
5. End with a final call for conviction

Be confident and address any reasonable doubt. Contrast "The defense wants you to believe..." with "the evidence shows...".
Keep it focused and impactful.
`, caseSummary, p.closingTheory())

	return p.Respond(ctx, prompt, "prosecution rebuttal argument")
}

// CrossExamineWitness challenges a defense witness's testimony.
func (p *Prosecutor) CrossExamineWitness(ctx context.Context, testimony string) string {
	p.think(thoughtCross, "Preparing cross-examination to challenge defense witness")

	prompt := fmt.Sprintf(`Cross-examine this defense witness testimony as a prosecutor:

Witness Testimony: %s

Your cross-examination should:
1. Challenge inconsistencies or contradictions
2. Question the witness's ability to observe and remember
3. Explore potential bias or motive to lie
4. Limit harmful testimony through focused questions
5. Reinforce prosecution theory where possible

Use leading questions and maintain control.
Be respectful but firm in challenging the testimony.
`, testimony)

	return p.Respond(ctx, prompt, "cross-examination of defense witness")
}

// RespondToObjection answers a defense objection. Deterministic, no
// provider call.
func (p *Prosecutor) RespondToObjection(objectionType, situation string) string {
	p.think(thoughtObjection, "Responding to %s objection", objectionType)

	switch strings.ToLower(objectionType) {
	case "relevance":
		return "Your Honor, this evidence is directly relevant to proving the defendant's guilt and goes to the heart of our case."
	case "hearsay":
		return "Your Honor, this testimony falls under the present sense impression exception to the hearsay rule."
	case "foundation":
		return "Your Honor, we have established proper foundation through the witness's personal knowledge and experience."
	case "leading":
		return "Your Honor, I will rephrase the question to be non-leading."
	case "speculation":
		return "Your Honor, the witness is testifying based on their direct observations, not speculation."
	default:
		return fmt.Sprintf("Your Honor, I believe this %s is proper and admissible under the rules of evidence.", situation)
	}
}
