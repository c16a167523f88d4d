package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"jurix/internal/types"
)

func TestJudge_ManageObjection_Deterministic(t *testing.T) {
	tests := []struct {
		name          string
		objectionType string
		situation     string
		want          string
	}{
		{
			name:          "hearsay first variant",
			objectionType: "hearsay",
			situation:     "recounting a rumor",
			want:          "Sustained. The statement is hearsay and no exception has been established.",
		},
		{
			name:          "hearsay second variant",
			objectionType: "hearsay",
			situation:     "quoting the officer",
			want:          "Overruled. This falls under the present sense impression exception to hearsay.",
		},
		{
			name:          "hearsay third variant",
			objectionType: "hearsay",
			situation:     "describing the overheard call",
			want:          "Sustained. Counsel, please establish foundation or find another way to present this evidence.",
		},
		{
			name:          "objection type is case-insensitive",
			objectionType: "HEARSAY",
			situation:     "recounting a rumor",
			want:          "Sustained. The statement is hearsay and no exception has been established.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewJudge(staticChain())
			got := j.ManageObjection(tt.objectionType, tt.situation)
			if got != tt.want {
				t.Errorf("ManageObjection() = %q, want %q", got, tt.want)
			}
			if again := j.ManageObjection(tt.objectionType, tt.situation); again != got {
				t.Errorf("Same objection drew a different ruling: %q then %q", got, again)
			}
		})
	}
}

func TestJudge_ManageObjection_AllTypesRecognized(t *testing.T) {
	j := NewJudge(staticChain())

	for objectionType, variants := range objectionRulings {
		ruling := j.ManageObjection(objectionType, "during direct examination")
		found := false
		for _, v := range variants {
			if ruling == v {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ManageObjection(%q) = %q, not in the %s variant table", objectionType, ruling, objectionType)
		}
	}
}

func TestJudge_ManageObjection_UnknownType(t *testing.T) {
	j := NewJudge(staticChain())

	got := j.ManageObjection("badgering", "during cross")
	want := "I'll allow it, but counsel, please be mindful of the badgering concern raised."
	if got != want {
		t.Errorf("ManageObjection() = %q, want %q", got, want)
	}
}

func TestJudge_ManageObjection_RecordsDecision(t *testing.T) {
	j := NewJudge(staticChain())

	ruling := j.ManageObjection("leading", "questioning the clerk")

	record := j.Record()
	if record.TotalRulings != 1 {
		t.Fatalf("TotalRulings = %d, want 1", record.TotalRulings)
	}
	want := JudicialDecision{
		Type:      "objection_ruling",
		Objection: "leading",
		Ruling:    ruling,
		Context:   "questioning the clerk",
	}
	if diff := cmp.Diff(want, record.Decisions[0]); diff != "" {
		t.Errorf("Recorded decision mismatch (-want +got):\n%s", diff)
	}
}

func TestJudge_MaintainOrder(t *testing.T) {
	tests := []struct {
		situation string
		want      string
	}{
		{"outburst", "Order in the court! The gallery will remain silent during proceedings or be removed."},
		{"attorney_misconduct", "Counsel, your behavior is inappropriate. Please conduct yourself professionally or face sanctions."},
		{"witness_evasion", "The witness will answer the question directly or be held in contempt."},
		{"disruption", "This court will maintain proper decorum. Any further disruptions will result in removal from the courtroom."},
		{"OUTBURST", "Order in the court! The gallery will remain silent during proceedings or be removed."},
		{"juror sleeping", defaultAdmonition},
	}

	j := NewJudge(staticChain())
	for _, tt := range tests {
		if got := j.MaintainOrder(tt.situation); got != tt.want {
			t.Errorf("MaintainOrder(%q) = %q, want %q", tt.situation, got, tt.want)
		}
	}
}

func TestJudge_RuleOnEvidence_RecordsLedger(t *testing.T) {
	j := NewJudge(staticChain())

	description := strings.Repeat("d", 60)
	ruling := j.RuleOnEvidence(context.Background(), description, "hearsay within the statement")
	if ruling == "" {
		t.Fatal("RuleOnEvidence returned empty text")
	}

	key := strings.Repeat("d", 50)
	entry, ok := j.evidenceRulings[key]
	if !ok {
		t.Fatalf("Ledger missing truncated key; have %v", mapKeys(j.evidenceRulings))
	}
	if entry.Ruling != ruling {
		t.Errorf("Ledger ruling = %q, want the returned ruling", entry.Ruling)
	}
	if entry.Objection != "hearsay within the statement" {
		t.Errorf("Ledger objection = %q", entry.Objection)
	}
	if entry.Factors["hearsay_analysis"] != "must determine if exception applies" {
		t.Errorf("Ledger factors missing hearsay analysis: %v", entry.Factors)
	}
}

func mapKeys(m map[string]EvidenceRuling) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestJudge_RuleOnEvidence_NoObjection(t *testing.T) {
	remote := &scriptedRemote{text: "Admitted. The exhibit bears directly on the disputed timeline of events."}
	j := NewJudge(remoteChain(remote))

	j.RuleOnEvidence(context.Background(), "Exhibit A, a delivery manifest", "")

	if !strings.Contains(remote.last.Prompt, "Objection: No objection raised") {
		t.Errorf("Prompt missing no-objection line:\n%s", remote.last.Prompt)
	}
	entry := j.evidenceRulings["Exhibit A, a delivery manifest"]
	if _, ok := entry.Factors["hearsay_analysis"]; ok {
		t.Error("No objection should not add hearsay analysis factor")
	}
}

func TestAdmissibilityFactors(t *testing.T) {
	base := admissibilityFactors("")
	for _, key := range []string{"relevance", "prejudicial_effect", "reliability", "legal_basis"} {
		if _, ok := base[key]; !ok {
			t.Errorf("Base factors missing %q: %v", key, base)
		}
	}

	prejudicial := admissibilityFactors("That photograph is prejudicial")
	if prejudicial["prejudicial_effect"] != "must weigh probative value vs prejudice" {
		t.Errorf("Prejudicial objection not weighed: %v", prejudicial)
	}

	// Hearsay takes precedence when an objection raises several grounds.
	mixed := admissibilityFactors("hearsay and relevance both")
	if _, ok := mixed["hearsay_analysis"]; !ok {
		t.Errorf("Mixed objection should get hearsay analysis: %v", mixed)
	}
	if mixed["relevance"] != "presumed relevant unless shown otherwise" {
		t.Errorf("Mixed objection should leave relevance factor alone: %v", mixed)
	}
}

func TestJudge_OpenCourt(t *testing.T) {
	remote := &scriptedRemote{text: "Court is now in session and counsel may be seated for the record."}
	j := NewJudge(remoteChain(remote))

	c := types.Case{
		Title:       "State v. Smith",
		Description: "Defendant accused of theft of a delivery van",
		Type:        types.CaseCriminal,
		Parties:     types.Parties{Plaintiff: "The State", Defendant: "Dana Smith"},
	}

	got := j.OpenCourt(context.Background(), c)
	if got != remote.text {
		t.Errorf("OpenCourt() = %q", got)
	}

	wantManagement := []string{
		"Case type: criminal - applying appropriate legal standards",
		"Parties: The State v. Dana Smith",
		"Ensuring due process and fair trial rights",
	}
	if diff := cmp.Diff(wantManagement, j.caseManagement); diff != "" {
		t.Errorf("Case management notes mismatch (-want +got):\n%s", diff)
	}
	if len(j.Analysis().StrategyNotes) != 5 {
		t.Errorf("Judicial strategy has %d notes, want 5", len(j.Analysis().StrategyNotes))
	}
	if !strings.Contains(remote.last.Prompt, "COURT STATEMENT:") {
		t.Errorf("Opening prompt missing court statement header:\n%s", remote.last.Prompt)
	}
	if !strings.Contains(remote.last.Prompt, "Parties: The State v. Dana Smith") {
		t.Errorf("Opening prompt missing parties line:\n%s", remote.last.Prompt)
	}
}

func TestJudge_FinalJudgment(t *testing.T) {
	remote := &scriptedRemote{text: "The court finds the defendant not guilty on all counts presented here."}
	j := NewJudge(remoteChain(remote))

	c := types.Case{
		Title:       "State v. Smith",
		Description: "Defendant accused of theft of a delivery van",
		Type:        types.CaseCriminal,
		Parties:     types.Parties{Plaintiff: "The State", Defendant: "Dana Smith"},
	}
	j.OpenCourt(context.Background(), c)
	j.RuleOnEvidence(context.Background(), "Exhibit A", "")

	judgment := j.FinalJudgment(context.Background(), "The case summary.", "One exhibit was admitted.")
	if judgment != remote.text {
		t.Errorf("FinalJudgment() = %q", judgment)
	}

	prompt := remote.last.Prompt
	for _, fragment := range []string{
		"Case Title: State v. Smith",
		"Legal Standard: beyond a reasonable doubt",
		"Applicable Law: mens rea, actus reus, causation",
		"Evidence Rulings Made: 1 rulings on admissibility",
		"(beyond a reasonable doubt)",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("Judgment prompt missing %q:\n%s", fragment, prompt)
		}
	}

	record := j.Record()
	last := record.Decisions[len(record.Decisions)-1]
	if last.Type != "final_judgment" {
		t.Errorf("Last decision type = %q, want final_judgment", last.Type)
	}
	if last.Judgment != judgment {
		t.Errorf("Recorded judgment = %q", last.Judgment)
	}
	if last.LegalStandard != "beyond a reasonable doubt" {
		t.Errorf("Recorded standard = %q", last.LegalStandard)
	}
	if last.EvidenceConsidered != 1 {
		t.Errorf("EvidenceConsidered = %d, want 1", last.EvidenceConsidered)
	}
}

func TestJudge_FinalJudgment_WithoutCase(t *testing.T) {
	remote := &scriptedRemote{text: "Judgment is entered on the record as stated from the bench."}
	j := NewJudge(remoteChain(remote))

	j.FinalJudgment(context.Background(), "Summary.", "No evidence.")

	prompt := remote.last.Prompt
	if !strings.Contains(prompt, "Case Title: N/A") {
		t.Errorf("Prompt missing placeholder title:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Legal Standard: applicable legal standard") {
		t.Errorf("Prompt missing fallback standard:\n%s", prompt)
	}
}

func TestJudge_ProvideJuryInstructions(t *testing.T) {
	remote := &scriptedRemote{text: "Members of the jury, you alone judge the facts of this dispute."}
	j := NewJudge(remoteChain(remote))

	j.ProvideJuryInstructions(context.Background(), types.CaseCivil)

	if remote.last.Context != "jury instructions" {
		t.Errorf("Context = %q", remote.last.Context)
	}
	if !strings.Contains(remote.last.Prompt, "Legal Standard: preponderance of the evidence") {
		t.Errorf("Instructions prompt missing standard:\n%s", remote.last.Prompt)
	}
}

func TestJudge_RecordReturnsCopies(t *testing.T) {
	j := NewJudge(staticChain())
	j.ManageObjection("leading", "questioning")

	record := j.Record()
	record.Decisions[0].Ruling = "tampered"
	record.EvidenceRulings["bogus"] = EvidenceRuling{Ruling: "tampered"}
	record.CaseManagement = append(record.CaseManagement, "tampered")

	fresh := j.Record()
	if fresh.Decisions[0].Ruling == "tampered" {
		t.Error("Record decisions must be a copy")
	}
	if _, ok := fresh.EvidenceRulings["bogus"]; ok {
		t.Error("Record rulings must be a copy")
	}
	if len(fresh.CaseManagement) != 0 {
		t.Error("Record management notes must be a copy")
	}
}
