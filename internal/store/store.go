// Package store defines the persistence seams the simulation depends on and
// two implementations: an in-memory store for tests and a JSON-file store
// used by the CLI. The orchestrator only sees the interfaces; heavyweight
// database backends live behind the same seams out of tree.
package store

import (
	"context"
	"errors"

	"jurix/internal/types"
)

// ErrNotFound is returned by lookups for records that do not exist.
var ErrNotFound = errors.New("record not found")

// CaseStore is the read side of the case collection.
type CaseStore interface {
	// GetCaseByID returns the case and whether it exists. The error is
	// reserved for store failures, not absence.
	GetCaseByID(ctx context.Context, id string) (types.Case, bool, error)

	// UpdateCase merges partial fields into a stored case record.
	UpdateCase(ctx context.Context, id string, fields map[string]interface{}) error
}

// EvidenceStore lists the evidence attached to a case in insertion order.
type EvidenceStore interface {
	ListEvidence(ctx context.Context, caseID string) ([]types.EvidenceItem, error)
}

// SimulationStore persists validated simulation results. Saves must be
// readable back immediately; the orchestrator verifies every save.
type SimulationStore interface {
	SaveSimulation(ctx context.Context, result *types.SimulationResult) error
	GetSimulation(ctx context.Context, id string) (*types.SimulationResult, bool, error)
}

// Store bundles the three collections for callers that need all of them.
type Store interface {
	CaseStore
	EvidenceStore
	SimulationStore
}
