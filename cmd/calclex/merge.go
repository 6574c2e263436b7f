package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/praetorian-inc/calclex/pkg/store"
)

var (
	mergeOutput string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <source1.db> <source2.db> [source3.db...]",
	Short: "Merge multiple calclex datastores",
	Long: `Merge multiple calclex datastores into a single output datastore.

This is useful for combining results from separate lex runs.

Deduplication is automatic - a source lexed under the same filename is
only stored once in the merged datastore.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.db", "Output datastore path")
}

func runMerge(cmd *cobra.Command, args []string) error {
	for _, src := range args {
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("merge failed: datastore not found: %s", src)
		}
	}

	stats, err := store.MergeFiles(mergeOutput, args...)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	total, err := countScans(mergeOutput)
	if err != nil {
		return err
	}

	currentLogger().Debug("merge complete",
		zap.Strings("sources", args),
		zap.Int("scans_read", stats.ScansRead),
		zap.Int("scans_copied", stats.ScansCopied),
		zap.Int("scans_skipped", stats.ScansSkipped),
		zap.Int("scans_stored", total),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Merge complete:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Sources processed: %d\n", stats.SourcesProcessed)
	fmt.Fprintf(cmd.OutOrStdout(), "  Scans read: %d\n", stats.ScansRead)
	fmt.Fprintf(cmd.OutOrStdout(), "  Scans copied: %d\n", stats.ScansCopied)
	fmt.Fprintf(cmd.OutOrStdout(), "  Duplicates skipped: %d\n", stats.ScansSkipped)
	fmt.Fprintf(cmd.OutOrStdout(), "  Scans stored: %d\n", total)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", mergeOutput)

	return nil
}

func countScans(path string) (int, error) {
	s, err := store.New(store.Config{Path: path})
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer s.Close()

	scans, err := s.GetAllScans()
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return len(scans), nil
}
