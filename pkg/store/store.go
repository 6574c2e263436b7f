package store

import (
	"github.com/praetorian-inc/calclex/pkg/types"
)

// MemoryPath selects the in-memory store.
const MemoryPath = ":memory:"

// Store provides persistence for scan results.
// This interface abstracts the underlying storage implementation,
// allowing for different backends.
type Store interface {
	// AddScan stores a scan result. A scan of the same source under the
	// same filename is stored once.
	AddScan(r *types.ScanResult) error

	// GetScans retrieves all scans of a source.
	GetScans(id types.SourceID) ([]*types.ScanResult, error)

	// GetAllScans retrieves every stored scan in insertion order.
	GetAllScans() ([]*types.ScanResult, error)

	// ScanExists checks if a source has already been scanned.
	ScanExists(id types.SourceID) (bool, error)

	// HasScan checks if a source has already been scanned under filename.
	HasScan(id types.SourceID, filename string) (bool, error)

	// Close releases the underlying resources.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}
