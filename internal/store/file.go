package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jurix/internal/logging"
	"jurix/internal/types"
)

// File is a JSON-file-per-record Store rooted at a data directory:
//
//	{dir}/cases/{id}.json
//	{dir}/evidence/{caseID}/{id}.json
//	{dir}/simulations/{id}.json
//
// It exists so the CLI works against plain files; it is not a database
// replacement. Evidence order is file-name order, so callers that care about
// insertion order should name files with a sortable prefix.
type File struct {
	dir string
}

// NewFile creates the directory layout if needed.
func NewFile(dir string) (*File, error) {
	for _, sub := range []string{"cases", "evidence", "simulations"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &File{dir: dir}, nil
}

func (f *File) casePath(id string) string {
	return filepath.Join(f.dir, "cases", sanitize(id)+".json")
}

func (f *File) simulationPath(id string) string {
	return filepath.Join(f.dir, "simulations", sanitize(id)+".json")
}

// sanitize keeps record IDs usable as file names.
func sanitize(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, id)
}

// GetCaseByID implements CaseStore.
func (f *File) GetCaseByID(ctx context.Context, id string) (types.Case, bool, error) {
	data, err := os.ReadFile(f.casePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return types.Case{}, false, nil
		}
		return types.Case{}, false, fmt.Errorf("failed to read case: %w", err)
	}
	var c types.Case
	if err := json.Unmarshal(data, &c); err != nil {
		return types.Case{}, false, fmt.Errorf("failed to decode case %s: %w", id, err)
	}
	if c.ID == "" {
		c.ID = id
	}
	// Case records are written by upstream tools, so the type label is
	// free-form until it passes through here.
	c.Type = types.ParseCaseType(string(c.Type))
	return c, true, nil
}

// PutCase writes a case record. Used by fixtures and the CLI seed path.
func (f *File) PutCase(c types.Case) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode case: %w", err)
	}
	if err := os.WriteFile(f.casePath(c.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write case: %w", err)
	}
	return nil
}

// UpdateCase implements CaseStore via read-modify-write on the JSON record.
func (f *File) UpdateCase(ctx context.Context, id string, fields map[string]interface{}) error {
	data, err := os.ReadFile(f.casePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read case: %w", err)
	}
	var record map[string]interface{}
	if err := json.Unmarshal(data, &record); err != nil {
		return fmt.Errorf("failed to decode case %s: %w", id, err)
	}
	for k, v := range fields {
		record[k] = v
	}
	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode case: %w", err)
	}
	if err := os.WriteFile(f.casePath(id), out, 0644); err != nil {
		return fmt.Errorf("failed to write case: %w", err)
	}
	return nil
}

// ListEvidence implements EvidenceStore.
func (f *File) ListEvidence(ctx context.Context, caseID string) ([]types.EvidenceItem, error) {
	dir := filepath.Join(f.dir, "evidence", sanitize(caseID))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	items := make([]types.EvidenceItem, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read evidence %s: %w", name, err)
		}
		var item types.EvidenceItem
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to decode evidence %s: %w", name, err)
		}
		if item.CaseID == "" {
			item.CaseID = caseID
		}
		items = append(items, item)
	}
	return items, nil
}

// PutEvidence writes one evidence record under its case directory.
func (f *File) PutEvidence(item types.EvidenceItem) error {
	dir := filepath.Join(f.dir, "evidence", sanitize(item.CaseID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create evidence directory: %w", err)
	}
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode evidence: %w", err)
	}
	path := filepath.Join(dir, sanitize(item.ID)+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write evidence: %w", err)
	}
	return nil
}

// SaveSimulation implements SimulationStore. The write goes to a temp file
// first so a crashed save never leaves a half-written record behind.
func (f *File) SaveSimulation(ctx context.Context, result *types.SimulationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode simulation: %w", err)
	}

	path := f.simulationPath(result.SimulationID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write simulation: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to finalize simulation write: %w", err)
	}

	logging.Store("Saved simulation %s (%d turns)", result.SimulationID, len(result.Turns))
	return nil
}

// GetSimulation implements SimulationStore.
func (f *File) GetSimulation(ctx context.Context, id string) (*types.SimulationResult, bool, error) {
	data, err := os.ReadFile(f.simulationPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read simulation: %w", err)
	}
	var result types.SimulationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode simulation %s: %w", id, err)
	}
	return &result, true, nil
}

// ListSimulations returns the stored simulation IDs, newest file name last.
func (f *File) ListSimulations() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.dir, "simulations"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list simulations: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}
