package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jurix/internal/types"
)

func TestProsecutor_CaseTheory(t *testing.T) {
	tests := []struct {
		name        string
		caseType    types.CaseType
		description string
		want        string
	}{
		{
			name:        "theft",
			caseType:    types.CaseCriminal,
			description: "Defendant accused of theft of a laptop",
			want:        "Defendant intentionally and unlawfully took property belonging to another",
		},
		{
			name:        "steal matches the theft theory",
			caseType:    types.CaseCriminal,
			description: "Defendant planned to steal the painting",
			want:        "Defendant intentionally and unlawfully took property belonging to another",
		},
		{
			name:        "assault",
			caseType:    types.CaseCriminal,
			description: "An assault outside the bar",
			want:        "Defendant intentionally caused harm or threatened imminent harm to the victim",
		},
		{
			name:        "violence matches the assault theory",
			caseType:    types.CaseCriminal,
			description: "An act of violence at the rally",
			want:        "Defendant intentionally caused harm or threatened imminent harm to the victim",
		},
		{
			name:        "fraud",
			caseType:    types.CaseCriminal,
			description: "A fraud perpetrated on investors",
			want:        "Defendant knowingly made false representations to deceive the victim",
		},
		{
			name:        "unmatched criminal description",
			caseType:    types.CaseCriminal,
			description: "Arson of a warehouse",
			want:        "Defendant is liable for the alleged wrongdoing based on the evidence",
		},
		{
			name:        "civil cases get the generic theory",
			caseType:    types.CaseCivil,
			description: "Theft of trade secrets",
			want:        "Defendant is liable for the alleged wrongdoing based on the evidence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProsecutor(staticChain())
			c := types.Case{Type: tt.caseType, Description: tt.description}
			if got := p.developCaseTheory(c); got != tt.want {
				t.Errorf("developCaseTheory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssessEvidenceStrength(t *testing.T) {
	tests := []struct {
		evidenceType string
		want         string
	}{
		{"dna", "very strong"},
		{"DNA", "very strong"},
		{"video", "strong"},
		{"forensic", "strong"},
		{"fingerprint", "strong"},
		{"document", "moderate"},
		{"testimony", "moderate"},
		{"witness", "moderate"},
		{"circumstantial", "weak to moderate"},
		{"ledger", "moderate"},
	}

	for _, tt := range tests {
		if got := assessEvidenceStrength(tt.evidenceType); got != tt.want {
			t.Errorf("assessEvidenceStrength(%q) = %q, want %q", tt.evidenceType, got, tt.want)
		}
	}
}

func TestSummarizeEvidence(t *testing.T) {
	t.Run("no evidence", func(t *testing.T) {
		if got := summarizeEvidence(nil); got != "- Case facts and circumstances" {
			t.Errorf("summarizeEvidence(nil) = %q", got)
		}
	})

	t.Run("few items listed verbatim", func(t *testing.T) {
		evidence := []types.EvidenceAnalysis{
			{Title: "Security Footage", Type: "video"},
			{Type: "document"},
		}
		want := "- Security Footage (video)\n- Evidence 2 (document)"
		if got := summarizeEvidence(evidence); got != want {
			t.Errorf("summarizeEvidence() = %q, want %q", got, want)
		}
	})

	t.Run("overflow collapses past five", func(t *testing.T) {
		evidence := make([]types.EvidenceAnalysis, 7)
		for i := range evidence {
			evidence[i] = types.EvidenceAnalysis{Title: "Item", Type: "document"}
		}
		got := summarizeEvidence(evidence)
		if !strings.Contains(got, "- And 2 additional pieces of evidence") {
			t.Errorf("Missing overflow line in %q", got)
		}
		if lines := strings.Split(got, "\n"); len(lines) != 6 {
			t.Errorf("Expected 5 items plus overflow line, got %d lines", len(lines))
		}
	})
}

func TestProsecutor_MakeOpeningStatement(t *testing.T) {
	remote := &scriptedRemote{text: "Members of the jury, we will prove each element of this offense."}
	p := NewProsecutor(remoteChain(remote))

	c := types.Case{
		Title:       "State v. Smith",
		Description: "Defendant accused of theft of a delivery van",
		Type:        types.CaseCriminal,
		Parties:     types.Parties{Plaintiff: "The State", Defendant: "Jordan Smith"},
	}
	evidence := []types.EvidenceAnalysis{
		{Title: "Security Footage", Type: "video"},
		{Title: "Keys", Type: "fingerprint"},
	}

	got := p.MakeOpeningStatement(context.Background(), c, evidence)
	if got != remote.text {
		t.Errorf("MakeOpeningStatement() = %q", got)
	}

	analysis := p.Analysis()
	if analysis == nil {
		t.Fatal("Opening statement must analyze the case first")
	}
	if analysis.StrategyNotes[0] != "Establish elements of the crime beyond reasonable doubt" {
		t.Errorf("Unexpected first strategy note: %q", analysis.StrategyNotes[0])
	}
	if len(p.evidenceOrder) != 5 {
		t.Errorf("Evidence presentation plan has %d entries, want 5", len(p.evidenceOrder))
	}

	prompt := remote.last.Prompt
	for _, fragment := range []string{
		"Case: State v. Smith",
		"Defendant: Jordan Smith",
		"Plaintiff: The State",
		"Case Theory: Defendant intentionally and unlawfully took property belonging to another",
		"Evidence Available: 2 pieces",
		"- Security Footage (video)",
		"PROSECUTION STATEMENT:",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("Opening prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestProsecutor_PresentEvidence(t *testing.T) {
	p := NewProsecutor(staticChain())

	first := types.EvidenceAnalysis{Title: "Security Footage", Type: "video", Summary: "Footage of the lot"}
	second := types.EvidenceAnalysis{Title: "Invoice", Type: "document", Content: strings.Repeat("x", 300)}

	if got := p.PresentEvidence(context.Background(), first); got == "" {
		t.Fatal("PresentEvidence returned empty text")
	}
	p.PresentEvidence(context.Background(), second)
	p.PresentEvidence(context.Background(), first)

	if p.evidenceStrength["Security Footage"] != "strong" {
		t.Errorf("Footage strength = %q, want strong", p.evidenceStrength["Security Footage"])
	}
	if p.evidenceStrength["Invoice"] != "moderate" {
		t.Errorf("Invoice strength = %q, want moderate", p.evidenceStrength["Invoice"])
	}

	// Re-presenting an item must not duplicate it in the order.
	want := []string{"Security Footage", "Invoice"}
	if diff := cmp.Diff(want, p.presented); diff != "" {
		t.Errorf("Presentation order mismatch (-want +got):\n%s", diff)
	}
}

func TestProsecutor_ClosingCitesStrongEvidence(t *testing.T) {
	remote := &scriptedRemote{text: "The evidence shows guilt beyond any reasonable doubt, and justice demands a conviction."}
	p := NewProsecutor(remoteChain(remote))

	p.AnalyzeCase(types.Case{
		Title:       "State v. Smith",
		Description: "Defendant accused of theft",
		Type:        types.CaseCriminal,
	})
	p.PresentEvidence(context.Background(), types.EvidenceAnalysis{Title: "DNA Swab", Type: "dna"})
	p.PresentEvidence(context.Background(), types.EvidenceAnalysis{Title: "Ledger", Type: "document"})

	p.MakeClosingArgument(context.Background(), "The case concerns a stolen delivery van.")

	prompt := remote.last.Prompt
	if !strings.Contains(prompt, "Strong Evidence Presented: DNA Swab") {
		t.Errorf("Closing prompt should cite the strong item:\n%s", prompt)
	}
	if strings.Contains(prompt, "Strong Evidence Presented: DNA Swab, Ledger") {
		t.Errorf("Moderate evidence should not be cited as strong:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Key Legal Standard: mens rea, actus reus, causation") {
		t.Errorf("Closing prompt missing legal standard:\n%s", prompt)
	}
}

func TestProsecutor_ClosingWithoutEvidence(t *testing.T) {
	remote := &scriptedRemote{text: "The evidence shows the defendant alone had motive, means, and opportunity."}
	p := NewProsecutor(remoteChain(remote))

	p.MakeClosingArgument(context.Background(), "Summary.")

	prompt := remote.last.Prompt
	if !strings.Contains(prompt, "Strong Evidence Presented: Multiple pieces of evidence") {
		t.Errorf("Closing prompt missing fallback evidence line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Key Legal Standard: burden of proof") {
		t.Errorf("Closing prompt missing fallback standard:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Prosecution Theory: Defendant is guilty as charged") {
		t.Errorf("Closing prompt missing fallback theory:\n%s", prompt)
	}
}

func TestProsecutor_RespondToObjection(t *testing.T) {
	tests := []struct {
		objectionType string
		wantFragment  string
	}{
		{"relevance", "directly relevant to proving the defendant's guilt"},
		{"hearsay", "present sense impression exception"},
		{"foundation", "established proper foundation"},
		{"leading", "rephrase the question"},
		{"speculation", "direct observations"},
	}

	p := NewProsecutor(staticChain())
	for _, tt := range tests {
		t.Run(tt.objectionType, func(t *testing.T) {
			got := p.RespondToObjection(tt.objectionType, "question")
			if !strings.Contains(got, tt.wantFragment) {
				t.Errorf("RespondToObjection(%q) = %q, want fragment %q", tt.objectionType, got, tt.wantFragment)
			}
		})
	}

	t.Run("unknown objection interpolates the situation", func(t *testing.T) {
		got := p.RespondToObjection("badgering", "line of questioning")
		want := "Your Honor, I believe this line of questioning is proper and admissible under the rules of evidence."
		if got != want {
			t.Errorf("RespondToObjection() = %q, want %q", got, want)
		}
	})
}

func TestProsecutor_MakeRebuttal(t *testing.T) {
	remote := &scriptedRemote{text: "The defense wants you to believe otherwise, but the evidence shows what happened."}
	p := NewProsecutor(remoteChain(remote))

	got := p.MakeRebuttal(context.Background(), "Defense claims mistaken identity.")
	if got != remote.text {
		t.Errorf("MakeRebuttal() = %q", got)
	}
	if !strings.Contains(remote.last.Prompt, "addressing the defense's closing argument") {
		t.Errorf("Rebuttal prompt missing framing:\n%s", remote.last.Prompt)
	}
	if remote.last.Context != "prosecution rebuttal argument" {
		t.Errorf("Rebuttal context = %q", remote.last.Context)
	}
}
