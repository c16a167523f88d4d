package agent

import (
	"context"
	"fmt"
	"strings"

	"jurix/internal/provider"
	"jurix/internal/types"
)

// EvidenceRuling is one admissibility ruling in the judge's evidence ledger.
type EvidenceRuling struct {
	Ruling    string            `json:"ruling"`
	Objection string            `json:"objection,omitempty"`
	Factors   map[string]string `json:"factors"`
}

// JudicialDecision is one entry in the judge's decision record. Objection
// rulings and the final judgment share the shape; unused fields stay empty.
type JudicialDecision struct {
	Type               string `json:"type"`
	Objection          string `json:"objection,omitempty"`
	Ruling             string `json:"ruling,omitempty"`
	Context            string `json:"context,omitempty"`
	Judgment           string `json:"judgment,omitempty"`
	LegalStandard      string `json:"legal_standard,omitempty"`
	EvidenceConsidered int    `json:"evidence_considered,omitempty"`
}

// JudicialRecord is the complete record of a judge's rulings for one run.
type JudicialRecord struct {
	Decisions       []JudicialDecision        `json:"decisions"`
	EvidenceRulings map[string]EvidenceRuling `json:"evidence_rulings"`
	CaseManagement  []string                  `json:"case_management"`
	TotalRulings    int                       `json:"total_rulings"`
}

// objectionRulings holds three canned rulings per objection type. The
// variant is picked by len(situation) % 3 so identical inputs always draw
// the same ruling.
var objectionRulings = map[string][]string{
	"hearsay": {
		"Sustained. The statement is hearsay and no exception has been established.",
		"Overruled. This falls under the present sense impression exception to hearsay.",
		"Sustained. Counsel, please establish foundation or find another way to present this evidence.",
	},
	"relevance": {
		"Sustained. I fail to see the relevance of this line of questioning.",
		"Overruled. The evidence appears relevant to the issues in this case.",
		"Counsel, please establish the relevance of this evidence before proceeding.",
	},
	"leading": {
		"Sustained. Please rephrase your question in a non-leading manner.",
		"Overruled. Leading questions are permitted on cross-examination.",
		"Sustained. Let the witness answer in their own words.",
	},
	"foundation": {
		"Sustained. Please establish proper foundation before presenting this evidence.",
		"Overruled. Sufficient foundation has been laid.",
		"Counsel, please establish how this witness has knowledge of these facts.",
	},
	"speculation": {
		"Sustained. The witness should testify only to facts within their personal knowledge.",
		"Overruled. The witness may give their opinion based on their observations.",
		"Sustained. Please limit your testimony to what you actually observed.",
	},
	"argumentative": {
		"Sustained. Counsel, please ask questions rather than argue with the witness.",
		"Overruled. The question is proper cross-examination.",
		"Sustained. Save your arguments for closing, counsel.",
	},
}

// orderAdmonitions keys courtroom disruptions to the judge's response.
var orderAdmonitions = map[string]string{
	"outburst":            "Order in the court! The gallery will remain silent during proceedings or be removed.",
	"attorney_misconduct": "Counsel, your behavior is inappropriate. Please conduct yourself professionally or face sanctions.",
	"witness_evasion":     "The witness will answer the question directly or be held in contempt.",
	"disruption":          "This court will maintain proper decorum. Any further disruptions will result in removal from the courtroom.",
}

const defaultAdmonition = "Order in the court! All parties will conduct themselves with appropriate respect for these proceedings."

// Judge presides over the simulation: opens court, rules on evidence and
// objections, instructs the jury, and renders the final judgment. Every
// ruling is recorded in the judicial record.
type Judge struct {
	*BaseAgent

	courtCase types.Case
	hasCase   bool

	decisions       []JudicialDecision
	evidenceRulings map[string]EvidenceRuling
	caseManagement  []string
}

// NewJudge builds a judge on the given chain.
func NewJudge(chain *provider.Chain) *Judge {
	j := &Judge{
		BaseAgent:       NewBaseAgent("judge", "fair and impartial", "highly experienced", chain),
		evidenceRulings: make(map[string]EvidenceRuling),
	}
	j.BaseAgent.strategy = j.developStrategy
	return j
}

// developStrategy records case-management notes and keeps the case for the
// final judgment.
func (j *Judge) developStrategy(c types.Case) []string {
	j.courtCase = c
	j.hasCase = true

	j.caseManagement = []string{
		fmt.Sprintf("Case type: %s - applying appropriate legal standards", c.Type),
		fmt.Sprintf("Parties: %s v. %s", partyOrDefault(c.Parties.Plaintiff, "Plaintiff"), partyOrDefault(c.Parties.Defendant, "Defendant")),
		"Ensuring due process and fair trial rights",
	}

	return []string{
		"Ensure fair proceedings for all parties",
		"Apply law impartially and consistently",
		"Manage courtroom with dignity and respect",
		"Protect constitutional rights of all parties",
		"Make evidence rulings based on legal standards",
	}
}

func partyOrDefault(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// OpenCourt analyzes the case and formally opens the session.
func (j *Judge) OpenCourt(ctx context.Context, c types.Case) string {
	j.AnalyzeCase(c)
	j.think(thoughtCourtroom, "Opening court session with proper judicial authority")

	prompt := fmt.Sprintf(`Case: %s
Type: %s
Parties: %s v. %s

`, c.Title, c.Type, partyOrDefault(c.Parties.Plaintiff, "Plaintiff"), partyOrDefault(c.Parties.Defendant, "Defendant")) + judgeOpeningPrompt

	return j.Respond(ctx, prompt, "opening court session")
}

// RuleOnEvidence rules on admissibility of one piece of evidence. An empty
// objection means no objection was raised. The ruling is recorded in the
// evidence ledger keyed by the first 50 chars of the description.
func (j *Judge) RuleOnEvidence(ctx context.Context, evidenceDescription, objection string) string {
	objectionLabel := objection
	if objectionLabel == "" {
		objectionLabel = "No objection"
	}
	j.think(thoughtRuling, "Ruling on evidence admissibility: %s", objectionLabel)

	factors := admissibilityFactors(objection)

	objectionLine := objection
	if objectionLine == "" {
		objectionLine = "No objection raised"
	}
	prompt := fmt.Sprintf(`Rule on this evidence as a judge:

Evidence: %s
Objection: %s

Legal Considerations:
- Relevance to the case
- Potential prejudicial effect
- Reliability and authenticity
- Compliance with rules of evidence

Your ruling should:
1. State your decision clearly (Sustained/Overruled/Admitted/Excluded)
2. Provide brief legal reasoning
3. Cite relevant rule or precedent if applicable
4. Give any limiting instructions if needed
5. Maintain judicial authority and fairness

Be decisive and explain your legal reasoning briefly.
`, evidenceDescription, objectionLine)

	ruling := j.Respond(ctx, prompt, "evidence ruling")

	key := evidenceDescription
	if len(key) > 50 {
		key = key[:50]
	}
	j.evidenceRulings[key] = EvidenceRuling{
		Ruling:    ruling,
		Objection: objection,
		Factors:   factors,
	}

	return ruling
}

// admissibilityFactors lists the considerations behind an evidence ruling.
func admissibilityFactors(objection string) map[string]string {
	factors := map[string]string{
		"relevance":          "presumed relevant unless shown otherwise",
		"prejudicial_effect": "minimal unless inflammatory",
		"reliability":        "presumed reliable unless challenged",
		"legal_basis":        "follows standard evidence rules",
	}

	lower := strings.ToLower(objection)
	switch {
	case strings.Contains(lower, "hearsay"):
		factors["hearsay_analysis"] = "must determine if exception applies"
	case strings.Contains(lower, "relevance"):
		factors["relevance"] = "must establish connection to case"
	case strings.Contains(lower, "prejudicial"):
		factors["prejudicial_effect"] = "must weigh probative value vs prejudice"
	}

	return factors
}

// ManageObjection rules on an attorney objection. Deterministic, no
// provider call. The variant is selected by the length of the situation so
// the same objection in the same situation always draws the same ruling.
func (j *Judge) ManageObjection(objectionType, situation string) string {
	j.think(thoughtRuling, "Ruling on %s objection", objectionType)

	var ruling string
	if variants, ok := objectionRulings[strings.ToLower(objectionType)]; ok {
		ruling = variants[len(situation)%len(variants)]
	} else {
		ruling = fmt.Sprintf("I'll allow it, but counsel, please be mindful of the %s concern raised.", objectionType)
	}

	j.decisions = append(j.decisions, JudicialDecision{
		Type:      "objection_ruling",
		Objection: objectionType,
		Ruling:    ruling,
		Context:   situation,
	})

	return ruling
}

// FinalJudgment renders the verdict after closings. The legal standard for
// the analyzed case type is injected into the prompt verbatim.
func (j *Judge) FinalJudgment(ctx context.Context, caseSummary, evidenceSummary string) string {
	j.think(thoughtJudgment, "Deliberating on final judgment based on all evidence and law")

	caseType := types.CaseOther
	title, description := "N/A", "N/A"
	plaintiff, defendant := "N/A", "N/A"
	if j.hasCase {
		caseType = j.courtCase.Type
		title = j.courtCase.Title
		description = j.courtCase.Description
		plaintiff = partyOrDefault(j.courtCase.Parties.Plaintiff, "N/A")
		defendant = partyOrDefault(j.courtCase.Parties.Defendant, "N/A")
	}
	standard := LegalStandard(caseType)

	applicableLaw := "general legal principles"
	if j.analysis != nil && len(j.analysis.LegalStandards) > 0 {
		applicableLaw = strings.Join(j.analysis.LegalStandards, ", ")
	}

	prompt := fmt.Sprintf(`Render final judgment as a judge in this case:

Case Title: %s
Case Type: %s
Case Description: %s
Plaintiff: %s
Defendant: %s

Legal Standard: %s
Applicable Law: %s

Evidence Summary:
%s

Case Summary:
%s

Evidence Rulings Made: %d rulings on admissibility

Your judgment should:
1. Summarize the key facts established by the evidence.
2. Apply the appropriate legal standard (%s) to the facts.
3. Analyze how the evidence presented meets or fails to meet the burden of proof.
4. Address the key legal arguments from both the prosecution and defense.
5. Explain your legal reasoning clearly and logically.
6. Render a specific verdict or judgment (e.g., "guilty," "not guilty," "liable," "not liable").
7. If applicable, include any appropriate sentencing, remedies, or orders.
8. Maintain judicial dignity and impartiality throughout.

Be thorough in your legal analysis and fair to all parties. Your decision must be based solely on the law and the evidence presented in this simulation.
`, title, caseType, description, plaintiff, defendant,
		standard, applicableLaw, evidenceSummary, caseSummary,
		len(j.evidenceRulings), standard)

	judgment := j.Respond(ctx, prompt, "final judgment")

	j.decisions = append(j.decisions, JudicialDecision{
		Type:               "final_judgment",
		Judgment:           judgment,
		LegalStandard:      standard,
		EvidenceConsidered: len(j.evidenceRulings),
	})

	return judgment
}

// ProvideJuryInstructions explains the law and deliberation process for the
// given case type.
func (j *Judge) ProvideJuryInstructions(ctx context.Context, caseType types.CaseType) string {
	j.think(thoughtJuryDirections, "Providing jury instructions on law and procedure")

	prompt := fmt.Sprintf(`Provide jury instructions as a judge for a %s case:

Case Type: %s
Legal Standard: %s

Your instructions should cover:
1. Jury's role and responsibilities
2. Burden of proof and legal standard
3. How to evaluate evidence and witness credibility
4. Presumption of innocence (if criminal)
5. Definition of key legal terms
6. Deliberation process
7. Verdict requirements

Be clear, educational, and impartial in explaining the law.
`, caseType, caseType, LegalStandard(caseType))

	return j.Respond(ctx, prompt, "jury instructions")
}

// MaintainOrder addresses a courtroom disruption. Deterministic, no
// provider call.
func (j *Judge) MaintainOrder(situation string) string {
	j.think(thoughtCourtroom, "Addressing courtroom disruption: %s", situation)

	if admonition, ok := orderAdmonitions[strings.ToLower(situation)]; ok {
		return admonition
	}
	return defaultAdmonition
}

// Record returns the complete judicial record for the run.
func (j *Judge) Record() JudicialRecord {
	rulings := make(map[string]EvidenceRuling, len(j.evidenceRulings))
	for k, v := range j.evidenceRulings {
		rulings[k] = v
	}
	decisions := make([]JudicialDecision, len(j.decisions))
	copy(decisions, j.decisions)
	management := make([]string, len(j.caseManagement))
	copy(management, j.caseManagement)

	return JudicialRecord{
		Decisions:       decisions,
		EvidenceRulings: rulings,
		CaseManagement:  management,
		TotalRulings:    len(j.decisions),
	}
}
