package store

import (
	"fmt"
)

// MergeStats tracks merge operation statistics.
type MergeStats struct {
	ScansRead        int
	ScansCopied      int
	ScansSkipped     int
	SourcesProcessed int
}

// Merge copies every scan from srcs into dst. A scan already recorded in
// dst under the same source and filename is counted as skipped.
func Merge(dst Store, srcs ...Store) (*MergeStats, error) {
	if len(srcs) == 0 {
		return nil, fmt.Errorf("no source stores specified")
	}

	stats := &MergeStats{}
	for i, src := range srcs {
		scans, err := src.GetAllScans()
		if err != nil {
			return stats, fmt.Errorf("reading source %d: %w", i, err)
		}
		for _, r := range scans {
			stats.ScansRead++

			exists, err := dst.HasScan(r.ID, r.Filename)
			if err != nil {
				return stats, err
			}
			if exists {
				stats.ScansSkipped++
				continue
			}

			if err := dst.AddScan(r); err != nil {
				return stats, fmt.Errorf("copying scan %s: %w", r.ID, err)
			}
			stats.ScansCopied++
		}
		stats.SourcesProcessed++
	}

	return stats, nil
}

// MergeFiles opens the datastores at srcPaths and merges them into the
// datastore at destPath, creating it if needed.
func MergeFiles(destPath string, srcPaths ...string) (*MergeStats, error) {
	if destPath == "" {
		return nil, fmt.Errorf("destination path is required")
	}

	dst, err := New(Config{Path: destPath})
	if err != nil {
		return nil, fmt.Errorf("opening destination: %w", err)
	}
	defer dst.Close()

	srcs := make([]Store, 0, len(srcPaths))
	defer func() {
		for _, s := range srcs {
			s.Close()
		}
	}()
	for _, p := range srcPaths {
		s, err := New(Config{Path: p})
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", p, err)
		}
		srcs = append(srcs, s)
	}

	return Merge(dst, srcs...)
}
