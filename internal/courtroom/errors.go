package courtroom

import "fmt"

// The four fatal error kinds a simulation run can surface. Everything else
// that goes wrong inside a run degrades through the fallback tiers instead
// of reaching the caller. Callers always get either a validated result or
// exactly one of these.

// CaseNotFoundError means the case ID does not exist in the case store.
type CaseNotFoundError struct {
	CaseID string
}

func (e *CaseNotFoundError) Error() string {
	return fmt.Sprintf("case %s not found", e.CaseID)
}

// EvidenceAnalysisError means the evidence-analysis stage failed outright.
// Fatal before any transcript work begins: downstream prompts assume
// evidence context is either present and correct or explicitly absent.
type EvidenceAnalysisError struct {
	CaseID string
	Err    error
}

func (e *EvidenceAnalysisError) Error() string {
	return fmt.Sprintf("failed to analyze evidence for case %s: %v", e.CaseID, e.Err)
}

func (e *EvidenceAnalysisError) Unwrap() error {
	return e.Err
}

// ValidationError names the field that made a simulation result invalid.
// Fatal: an invalid result is never persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid simulation result: %s: %s", e.Field, e.Reason)
}

// PersistenceError means the simulation itself succeeded but saving it could
// not be verified within the retry budget.
type PersistenceError struct {
	SimulationID string
	Attempts     int
	Err          error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist simulation %s after %d attempts: %v", e.SimulationID, e.Attempts, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
