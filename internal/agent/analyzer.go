package agent

import (
	"strings"

	"jurix/internal/types"
)

// caseKnowledge is the fixed legal-knowledge table behind case analysis:
// burden of proof and the elements a party must establish, per case type.
var caseKnowledge = map[types.CaseType]struct {
	Standard string
	Elements []string
}{
	types.CaseCriminal: {
		Standard: "beyond a reasonable doubt",
		Elements: []string{"mens rea", "actus reus", "causation"},
	},
	types.CaseCivil: {
		Standard: "preponderance of evidence",
		Elements: []string{"duty", "breach", "causation", "damages"},
	},
	types.CaseConstitutional: {
		Standard: "strict scrutiny",
		Elements: []string{"fundamental rights", "equal protection", "due process"},
	},
}

// issueKeywords maps description keywords to the legal issues they raise,
// grouped per case type. First column is the keyword set, second the issues
// appended when any keyword matches.
var issueKeywords = map[types.CaseType][]struct {
	Words  []string
	Issues []string
}{
	types.CaseCriminal: {
		{Words: []string{"theft", "steal", "robbery"}, Issues: []string{"intent to steal", "ownership of property", "value of stolen goods"}},
		{Words: []string{"assault", "battery", "violence"}, Issues: []string{"intent to harm", "self-defense", "provocation"}},
		{Words: []string{"fraud", "deception"}, Issues: []string{"intent to defraud", "materiality of misrepresentation"}},
	},
	types.CaseCivil: {
		{Words: []string{"contract", "agreement", "breach"}, Issues: []string{"contract formation", "performance", "damages"}},
		{Words: []string{"negligence", "accident", "injury"}, Issues: []string{"duty of care", "breach of duty", "causation", "damages"}},
	},
}

// Analyze derives a case analysis from the case record alone. Pure function:
// no side effects, no external calls, safe to call repeatedly. Strategy
// notes are role-specific and filled in by the agent that runs the analysis.
func Analyze(c types.Case) *types.CaseAnalysis {
	return &types.CaseAnalysis{
		CaseType:       c.Type,
		Complexity:     assessComplexity(c),
		KeyIssues:      identifyKeyIssues(c.Description, c.Type),
		LegalStandards: applicableLaw(c.Type),
	}
}

// assessComplexity scores the case by three additive factors and maps the
// score to a level: >=2 high, ==1 medium, else low.
func assessComplexity(c types.Case) types.ComplexityLevel {
	factors := 0
	if len(c.Description) > 500 {
		factors++
	}
	if c.Parties.MultipleParties {
		factors++
	}
	if c.Type == types.CaseConstitutional || c.Type == types.CaseCorporate {
		factors++
	}

	switch {
	case factors >= 2:
		return types.ComplexityHigh
	case factors == 1:
		return types.ComplexityMedium
	default:
		return types.ComplexityLow
	}
}

// identifyKeyIssues matches description keywords against the per-type issue
// table. No match falls back to the generic liability triple.
func identifyKeyIssues(description string, caseType types.CaseType) []string {
	lower := strings.ToLower(description)
	var issues []string

	for _, group := range issueKeywords[caseType] {
		for _, word := range group.Words {
			if strings.Contains(lower, word) {
				issues = append(issues, group.Issues...)
				break
			}
		}
	}

	if len(issues) == 0 {
		return []string{"liability", "damages", "causation"}
	}
	return issues
}

// applicableLaw returns the key legal elements for a case type.
func applicableLaw(caseType types.CaseType) []string {
	if k, ok := caseKnowledge[caseType]; ok {
		return k.Elements
	}
	return []string{"general legal principles"}
}

// LegalStandard returns the burden of proof the judge applies at final
// judgment. Administrative matters keep their entry even though case records
// normally fold unknown labels into other.
func LegalStandard(caseType types.CaseType) string {
	switch caseType {
	case types.CaseCriminal:
		return "beyond a reasonable doubt"
	case types.CaseCivil:
		return "preponderance of the evidence"
	case types.CaseConstitutional:
		return "strict scrutiny"
	case "administrative":
		return "substantial evidence"
	default:
		return "applicable legal standard"
	}
}
