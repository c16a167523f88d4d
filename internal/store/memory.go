package store

import (
	"context"
	"sync"

	"jurix/internal/types"
)

// Memory is an in-memory Store. It backs tests and fakes; evidence order is
// insertion order, matching what a real collection returns.
type Memory struct {
	mu          sync.Mutex
	cases       map[string]types.Case
	evidence    map[string][]types.EvidenceItem
	simulations map[string]*types.SimulationResult

	// FailSaves makes the next N SaveSimulation calls drop the write while
	// reporting success, to exercise read-back verification.
	FailSaves int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		cases:       make(map[string]types.Case),
		evidence:    make(map[string][]types.EvidenceItem),
		simulations: make(map[string]*types.SimulationResult),
	}
}

// PutCase inserts or replaces a case record.
func (m *Memory) PutCase(c types.Case) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cases[c.ID] = c
}

// PutEvidence appends one evidence item to its case.
func (m *Memory) PutEvidence(item types.EvidenceItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evidence[item.CaseID] = append(m.evidence[item.CaseID], item)
}

// GetCaseByID implements CaseStore.
func (m *Memory) GetCaseByID(ctx context.Context, id string) (types.Case, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cases[id]
	if ok {
		c.Type = types.ParseCaseType(string(c.Type))
	}
	return c, ok, nil
}

// UpdateCase implements CaseStore. Only the fields the simulation writes are
// recognized; unknown fields are ignored the way a schemaless update is.
func (m *Memory) UpdateCase(ctx context.Context, id string, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cases[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := fields["title"].(string); ok {
		c.Title = v
	}
	if v, ok := fields["description"].(string); ok {
		c.Description = v
	}
	m.cases[id] = c
	return nil
}

// ListEvidence implements EvidenceStore.
func (m *Memory) ListEvidence(ctx context.Context, caseID string) ([]types.EvidenceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.evidence[caseID]
	out := make([]types.EvidenceItem, len(items))
	copy(out, items)
	return out, nil
}

// SaveSimulation implements SimulationStore.
func (m *Memory) SaveSimulation(ctx context.Context, result *types.SimulationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves > 0 {
		m.FailSaves--
		return nil
	}
	clone := *result
	m.simulations[result.SimulationID] = &clone
	return nil
}

// GetSimulation implements SimulationStore.
func (m *Memory) GetSimulation(ctx context.Context, id string) (*types.SimulationResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.simulations[id]
	if !ok {
		return nil, false, nil
	}
	clone := *r
	return &clone, true, nil
}
