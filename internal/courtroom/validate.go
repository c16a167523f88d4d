package courtroom

import (
	"strconv"
	"strings"

	"jurix/internal/types"
)

// maxEvidenceAnalyzed is a sanity ceiling on the evidence count, not a
// protocol limit. A count above it means the pipeline miscounted.
const maxEvidenceAnalyzed = 100

// Validate checks a simulation result against the persistence schema. The
// first offense is returned as a ValidationError naming the field; a result
// that fails here must not be saved.
func Validate(result *types.SimulationResult) error {
	if result == nil {
		return &ValidationError{Field: "result", Reason: "missing"}
	}
	if result.SimulationID == "" {
		return &ValidationError{Field: "simulation_id", Reason: "missing"}
	}
	if strings.TrimSpace(result.Text) == "" {
		return &ValidationError{Field: "simulation_text", Reason: "simulation text cannot be empty"}
	}
	if result.Turns == nil {
		return &ValidationError{Field: "turns", Reason: "missing"}
	}
	for i, turn := range result.Turns {
		switch {
		case turn.Role == "":
			return &ValidationError{Field: "turns", Reason: turnFieldMissing(i, "role")}
		case turn.Message == "":
			return &ValidationError{Field: "turns", Reason: turnFieldMissing(i, "message")}
		case turn.Timestamp == "":
			return &ValidationError{Field: "turns", Reason: turnFieldMissing(i, "timestamp")}
		case turn.Duration <= 0:
			return &ValidationError{Field: "turns", Reason: turnFieldMissing(i, "duration")}
		case turn.Number != i:
			return &ValidationError{Field: "turns", Reason: "turn numbers must be dense from 0"}
		}
	}
	if result.Thinking == nil {
		return &ValidationError{Field: "thinking_processes", Reason: "missing"}
	}
	if result.EvidenceAnalyzed < 0 || result.EvidenceAnalyzed > maxEvidenceAnalyzed {
		return &ValidationError{Field: "evidence_analyzed", Reason: "invalid evidence count"}
	}
	if !result.Tier.Valid() {
		return &ValidationError{Field: "simulation_type", Reason: "invalid simulation type: " + string(result.Tier)}
	}
	if result.GeneratedAt.IsZero() {
		return &ValidationError{Field: "generated_at", Reason: "missing"}
	}
	if !result.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "invalid status: " + string(result.Status)}
	}
	return nil
}

func turnFieldMissing(index int, field string) string {
	return "turn " + strconv.Itoa(index) + " missing required field: " + field
}
