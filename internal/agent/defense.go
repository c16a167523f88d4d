package agent

import (
	"context"
	"fmt"
	"strings"

	"jurix/internal/provider"
	"jurix/internal/types"
)

// Defense protects the accused: opening statement, cross-examination of
// prosecution evidence, closing argument, and objections. Each
// cross-examination accumulates a reasonable-doubt point that feeds the
// closing.
type Defense struct {
	*BaseAgent

	theory       string
	doubtPlan    []string
	keyArguments []string

	doubtPoints []string
}

// NewDefense builds a defense attorney on the given chain.
func NewDefense(chain *provider.Chain) *Defense {
	d := &Defense{
		BaseAgent: NewBaseAgent("defense attorney", "protective and thorough", "experienced", chain),
	}
	d.BaseAgent.strategy = d.developStrategy
	return d
}

func (d *Defense) developStrategy(c types.Case) []string {
	var notes []string
	switch c.Type {
	case types.CaseCriminal:
		notes = []string{
			"Challenge prosecution's burden of proof",
			"Create reasonable doubt at every opportunity",
			"Protect client's constitutional rights",
			"Present alternative theories of the case",
			"Humanize the defendant",
		}
	case types.CaseCivil:
		notes = []string{
			"Challenge causation and damages",
			"Present comparative fault arguments",
			"Dispute liability through alternative explanations",
		}
	}

	d.theory = d.developDefenseTheory(c)
	d.doubtPlan = planReasonableDoubt()
	d.keyArguments = notes
	return notes
}

// developDefenseTheory picks the main defense theory from the case
// description.
func (d *Defense) developDefenseTheory(c types.Case) string {
	description := strings.ToLower(c.Description)

	if c.Type == types.CaseCriminal {
		switch {
		case strings.Contains(description, "theft"):
			return "My client had no intent to steal and believed they had permission to take the item"
		case strings.Contains(description, "assault"):
			return "My client acted in self-defense when faced with imminent threat"
		case strings.Contains(description, "fraud"):
			return "My client made no intentional misrepresentations and acted in good faith"
		}
	}

	return "The evidence does not support the allegations against my client"
}

func planReasonableDoubt() []string {
	return []string{
		"Challenge evidence reliability and chain of custody",
		"Question witness credibility and memory",
		"Present alternative explanations for events",
		"Highlight gaps in prosecution's case",
		"Emphasize presumption of innocence",
	}
}

// MakeOpeningStatement analyzes the case and delivers the defense opening.
func (d *Defense) MakeOpeningStatement(ctx context.Context, c types.Case, evidence []types.EvidenceAnalysis) string {
	d.AnalyzeCase(c)
	d.think(thoughtStrategy, "Crafting opening to establish reasonable doubt and protect client")

	client := c.Parties.Defendant
	if client == "" {
		client = "my client"
	}
	description := c.Description
	if description == "" {
		description = "the allegations"
	}

	prompt := fmt.Sprintf(`Case: %s
Type: %s
Client: %s
Charges/Claims: Based on %s

Defense Theory: %s

Prosecution Evidence to Challenge: %d pieces

`, c.Title, c.Type, client, description, d.openingTheory(), len(evidence)) + defenseOpeningPrompt

	return d.Respond(ctx, prompt, "defense opening statement")
}

func (d *Defense) openingTheory() string {
	if d.theory != "" {
		return d.theory
	}
	return "The evidence does not support guilt"
}

// CrossExamine challenges one piece of prosecution evidence and records a
// reasonable-doubt point for the closing.
func (d *Defense) CrossExamine(ctx context.Context, prosecutionEvidence string) string {
	d.think(thoughtCross, "Cross-examining prosecution evidence to create reasonable doubt")

	preview := prosecutionEvidence
	if len(preview) > 50 {
		preview = preview[:50]
	}
	d.doubtPoints = append(d.doubtPoints, fmt.Sprintf("Questioned reliability of: %s...", preview))

	prompt := fmt.Sprintf(`Prosecution Evidence: %s

`, prosecutionEvidence) + defenseCrossPrompt

	return d.Respond(ctx, prompt, "cross-examination of prosecution evidence")
}

// PresentDefenseEvidence presents an item supporting the defense theory.
func (d *Defense) PresentDefenseEvidence(ctx context.Context, item types.EvidenceItem) string {
	title := item.Title
	if title == "" {
		title = "Defense Evidence"
	}
	evidenceType := item.Type
	if evidenceType == "" {
		evidenceType = "evidence"
	}
	description := item.Description
	if description == "" {
		description = "Evidence supporting defense"
	}

	d.think(thoughtEvidence, "Presenting defense evidence: %s", title)

	prompt := fmt.Sprintf(`Present this defense evidence to support your client's case:

Evidence: %s
Type: %s
Description: %s

Defense Theory: %s

Your presentation should:
1. Establish foundation for admissibility
2. Clearly explain how it supports your defense
3. Connect it to reasonable doubt creation
4. Highlight its credibility and reliability
5. Show how it contradicts prosecution theory

Be confident and emphasize how this evidence proves your client's innocence.
`, title, evidenceType, description, d.openingTheory())

	return d.Respond(ctx, prompt, "defense evidence presentation")
}

// ChallengeWitness questions a prosecution witness's credibility.
func (d *Defense) ChallengeWitness(ctx context.Context, witnessInfo string) string {
	d.think(thoughtCross, "Challenging witness credibility to protect client")

	prompt := fmt.Sprintf(`Challenge this prosecution witness's credibility as a defense attorney:

Witness Information: %s

Your challenge should explore:
1. Potential bias or motive to lie
2. Ability to observe and remember accurately
3. Inconsistencies in their testimony
4. Prior inconsistent statements
5. Character for truthfulness
6. External factors affecting perception

Be thorough but respectful in questioning their reliability.
Focus on creating reasonable doubt about their testimony.
`, witnessInfo)

	return d.Respond(ctx, prompt, "witness credibility challenge")
}

// MakeClosingArgument delivers the closing, recalling the most recent doubt
// points raised during cross-examination.
func (d *Defense) MakeClosingArgument(ctx context.Context, caseSummary string) string {
	d.think(thoughtClosing, "Preparing closing argument to secure client's freedom")

	doubtSummary := "Multiple points of reasonable doubt raised"
	if n := len(d.doubtPoints); n > 0 {
		recent := d.doubtPoints
		if n > 3 {
			recent = recent[n-3:]
		}
		doubtSummary = strings.Join(recent, "; ")
	}

	standard := "reasonable doubt, presumption of innocence"
	if d.analysis != nil && len(d.analysis.LegalStandards) > 0 {
		standard = strings.Join(d.analysis.LegalStandards, ", ")
	}

	prompt := fmt.Sprintf(`Deliver a passionate closing argument as a defense attorney:

Case Summary: %s

Defense Theory: %s

Reasonable Doubt Created: %s

Legal Standard: %s

Your closing should:
1. Remind jury of presumption of innocence
2. Emphasize prosecution's burden of proof
3. Systematically create reasonable doubt
4. Challenge prosecution's evidence and witnesses
5. Present your defense theory compellingly
6. Humanize your client and their situation
7. End with passionate plea for not guilty verdict

Be emotional but professional. Use "reasonable doubt" frequently.
Protect your client's freedom and rights.
`, caseSummary, d.openingTheory(), doubtSummary, standard)

	return d.Respond(ctx, prompt, "defense closing argument")
}

// ObjectToEvidence raises an objection with the stated reasoning.
// Deterministic, no provider call.
func (d *Defense) ObjectToEvidence(objectionType, reasoning string) string {
	d.think(thoughtObjection, "Objecting on %s grounds to protect client", objectionType)

	switch strings.ToLower(objectionType) {
	case "relevance":
		return fmt.Sprintf("Objection, Your Honor. %s This evidence is not relevant to the charges against my client.", reasoning)
	case "hearsay":
		return fmt.Sprintf("Objection, hearsay. %s This statement is being offered for the truth of the matter asserted.", reasoning)
	case "foundation":
		return fmt.Sprintf("Objection, lack of foundation. %s The prosecution has not established proper foundation for this evidence.", reasoning)
	case "prejudicial":
		return "Objection, Your Honor. The prejudicial effect of this evidence substantially outweighs its probative value."
	case "leading":
		return fmt.Sprintf("Objection, leading the witness. %s Counsel is putting words in the witness's mouth.", reasoning)
	default:
		return fmt.Sprintf("Objection, Your Honor. %s This is improper and prejudicial to my client.", reasoning)
	}
}

// RespondToArgument answers a prosecution argument mid-trial.
func (d *Defense) RespondToArgument(ctx context.Context, prosecutionArgument string) string {
	d.think(thoughtRebuttal, "Responding to prosecution argument to protect client")

	prompt := fmt.Sprintf(`Respond to this prosecution argument as a defense attorney:

Prosecution Argument: %s

Your response should:
1. Challenge the logic and evidence cited
2. Present alternative interpretations
3. Emphasize reasonable doubt
4. Protect your client's interests
5. Cite relevant legal standards

Be firm in defending your client while remaining professional.
`, prosecutionArgument)

	return d.Respond(ctx, prompt, "response to prosecution argument")
}
