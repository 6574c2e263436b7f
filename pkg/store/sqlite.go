//go:build !wasm

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/praetorian-inc/calclex/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
// Use ":memory:" for in-memory database (useful for testing).
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases from splitting per
	// connection and serialises writers.
	db.SetMaxOpenConns(1)

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddScan stores a scan result.
func (s *SQLiteStore) AddScan(r *types.ScanResult) error {
	tokensJSON, err := json.Marshal(r.Tokens)
	if err != nil {
		return fmt.Errorf("marshaling tokens: %w", err)
	}

	var kind, details *string
	var start, end *int
	if r.Error != nil {
		k := r.Error.Kind.String()
		kind = &k
		details = &r.Error.Details
		start = &r.Error.Start.Index
		end = &r.Error.End.Index
	}

	_, err = s.db.Exec(`
		INSERT OR IGNORE INTO scans (source_id, filename, source, tokens_json, error_kind, error_details, error_start, error_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.Filename,
		r.Source,
		string(tokensJSON),
		kind,
		details,
		start,
		end,
	)
	if err != nil {
		return fmt.Errorf("inserting scan: %w", err)
	}

	return nil
}

// GetScans retrieves all scans of a source.
func (s *SQLiteStore) GetScans(id types.SourceID) ([]*types.ScanResult, error) {
	rows, err := s.db.Query(`
		SELECT source_id, filename, source, tokens_json, error_kind, error_details, error_start, error_end
		FROM scans
		WHERE source_id = ?
		ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// GetAllScans retrieves every stored scan in insertion order.
func (s *SQLiteStore) GetAllScans() ([]*types.ScanResult, error) {
	rows, err := s.db.Query(`
		SELECT source_id, filename, source, tokens_json, error_kind, error_details, error_start, error_end
		FROM scans
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// ScanExists checks if a source has already been scanned.
func (s *SQLiteStore) ScanExists(id types.SourceID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scans WHERE source_id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking scan: %w", err)
	}
	return count > 0, nil
}

// HasScan checks if a source has already been scanned under filename.
func (s *SQLiteStore) HasScan(id types.SourceID, filename string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scans WHERE source_id = ? AND filename = ?", id, filename).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking scan: %w", err)
	}
	return count > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRows(rows *sql.Rows) ([]*types.ScanResult, error) {
	results := []*types.ScanResult{}
	for rows.Next() {
		var (
			r          types.ScanResult
			tokensJSON string
			kind       sql.NullString
			details    sql.NullString
			start      sql.NullInt64
			end        sql.NullInt64
		)

		if err := rows.Scan(&r.ID, &r.Filename, &r.Source, &tokensJSON, &kind, &details, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if err := json.Unmarshal([]byte(tokensJSON), &r.Tokens); err != nil {
			return nil, fmt.Errorf("unmarshaling tokens: %w", err)
		}

		if kind.Valid {
			k, err := types.ParseErrorKind(kind.String)
			if err != nil {
				return nil, err
			}
			r.Error = &types.Error{
				Kind:    k,
				Details: details.String,
				Start:   types.PositionAt(r.Filename, r.Source, int(start.Int64)),
				End:     types.PositionAt(r.Filename, r.Source, int(end.Int64)),
			}
		}

		results = append(results, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return results, nil
}
