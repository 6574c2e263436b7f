package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/calclex/pkg/config"
	"github.com/praetorian-inc/calclex/pkg/store"
	"github.com/praetorian-inc/calclex/pkg/types"
)

var (
	reportDatastore string
	reportFormat    string
	reportColor     string
	reportFailed    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report from recorded scans",
	Long:  "Read scans from a datastore and print their tokens or errors",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDatastore, "datastore", "", "Path to datastore file (default from config)")
	reportCmd.Flags().StringVar(&reportFormat, "format", config.FormatHuman, "Output format: human, json, sarif")
	reportCmd.Flags().StringVar(&reportColor, "color", config.ColorAuto, "Color output: auto, always, never")
	reportCmd.Flags().BoolVar(&reportFailed, "failed", false, "Only report scans that ended in a lexical error")
}

func runReport(cmd *cobra.Command, args []string) error {
	storePath := reportDatastore
	if storePath == "" {
		storePath = currentSettings().Datastore
	}
	if storePath == "" {
		return fmt.Errorf("no datastore given (use --datastore or set datastore in config)")
	}

	if storePath == store.MemoryPath {
		return fmt.Errorf("cannot report from in-memory store")
	}
	if _, err := os.Stat(storePath); err != nil {
		return fmt.Errorf("datastore not found: %s", storePath)
	}

	s, err := store.New(store.Config{Path: storePath})
	if err != nil {
		return fmt.Errorf("opening datastore: %w", err)
	}
	defer s.Close()

	scans, err := s.GetAllScans()
	if err != nil {
		return fmt.Errorf("retrieving scans: %w", err)
	}

	if reportFailed {
		failed := scans[:0]
		for _, r := range scans {
			if !r.OK() {
				failed = append(failed, r)
			}
		}
		scans = failed
	}

	out := cmd.OutOrStdout()
	if reportFormat == config.FormatHuman {
		if len(scans) == 0 {
			fmt.Fprintf(out, "No scans.\n")
			return nil
		}
		writeReportSummary(out, scans)
	}

	return writeResults(out, reportFormat, reportColor, scans)
}

func writeReportSummary(out io.Writer, scans []*types.ScanResult) {
	failed := 0
	tokens := 0
	byKind := make(map[types.ErrorKind]int)
	for _, r := range scans {
		if r.OK() {
			tokens += len(r.Tokens)
			continue
		}
		failed++
		byKind[r.Error.Kind]++
	}

	fmt.Fprintf(out, "%d scans: %d ok (%d tokens), %d failed\n", len(scans), len(scans)-failed, tokens, failed)
	for _, kind := range []types.ErrorKind{types.IllegalCharacter, types.IllegalNumber} {
		if n := byKind[kind]; n > 0 {
			fmt.Fprintf(out, "  %s: %d\n", kind.Title(), n)
		}
	}
	fmt.Fprintln(out)
}
