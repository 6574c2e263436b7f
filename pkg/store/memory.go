package store

import (
	"sync"

	"github.com/praetorian-inc/calclex/pkg/types"
)

type scanKey struct {
	id       types.SourceID
	filename string
}

// MemoryStore implements Store using in-memory data structures.
// It backs ":memory:" paths and WASM builds.
type MemoryStore struct {
	mu    sync.RWMutex
	scans []*types.ScanResult
	seen  map[scanKey]struct{}
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		scans: make([]*types.ScanResult, 0),
		seen:  make(map[scanKey]struct{}),
	}
}

// AddScan stores a scan result.
func (m *MemoryStore) AddScan(r *types.ScanResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := scanKey{id: r.ID, filename: r.Filename}
	if _, exists := m.seen[key]; exists {
		// Idempotent - already exists
		return nil
	}

	m.seen[key] = struct{}{}
	m.scans = append(m.scans, r)
	return nil
}

// GetScans retrieves all scans of a source.
func (m *MemoryStore) GetScans(id types.SourceID) ([]*types.ScanResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*types.ScanResult{}
	for _, r := range m.scans {
		if r.ID == id {
			result = append(result, r)
		}
	}
	return result, nil
}

// GetAllScans retrieves every stored scan in insertion order.
func (m *MemoryStore) GetAllScans() ([]*types.ScanResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to avoid external modifications
	result := make([]*types.ScanResult, len(m.scans))
	copy(result, m.scans)
	return result, nil
}

// ScanExists checks if a source has already been scanned.
func (m *MemoryStore) ScanExists(id types.SourceID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for key := range m.seen {
		if key.id == id {
			return true, nil
		}
	}
	return false, nil
}

// HasScan checks if a source has already been scanned under filename.
func (m *MemoryStore) HasScan(id types.SourceID, filename string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.seen[scanKey{id: id, filename: filename}]
	return exists, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
