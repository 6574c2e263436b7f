package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/praetorian-inc/calclex/pkg/config"
	"github.com/praetorian-inc/calclex/pkg/enum"
	"github.com/praetorian-inc/calclex/pkg/scanner"
	"github.com/praetorian-inc/calclex/pkg/store"
	"github.com/praetorian-inc/calclex/pkg/types"
)

// errLexical is returned when at least one input failed to lex, so the
// process exits non-zero.
var errLexical = errors.New("lexical errors found")

var (
	lexExpr          string
	lexFilename      string
	lexOutputPath    string
	lexOutputFormat  string
	lexColor         string
	lexGit           bool
	lexMaxFileSize   int64
	lexIncludeHidden bool
	lexExtensions    []string
	lexIncremental   bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [paths...]",
	Short: "Lex expressions from files, directories, git repositories or stdin",
	Long: `Lex each input and print its tokens, or the first lexical error.

With no paths, the expression is read from stdin (or taken from -e).
Directories are walked honoring .gitignore; with --git each path is read
as a git repository at HEAD. The exit status is non-zero when any input
contains a lexical error.`,
	RunE: runLex,
}

func init() {
	addLexFlags(lexCmd)
}

func addLexFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&lexExpr, "expr", "e", "", "Lex this expression instead of reading input")
	cmd.Flags().StringVar(&lexFilename, "filename", types.DefaultFilename, "Name reported for -e and stdin input")
	cmd.Flags().StringVar(&lexOutputPath, "output", "", "Datastore path to record scans in (empty for none)")
	cmd.Flags().StringVar(&lexOutputFormat, "format", config.FormatHuman, "Output format: human, json, sarif")
	cmd.Flags().StringVar(&lexColor, "color", config.ColorAuto, "Color output: auto, always, never")
	cmd.Flags().BoolVar(&lexGit, "git", false, "Treat paths as git repositories (lex files at HEAD)")
	cmd.Flags().Int64Var(&lexMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to lex (bytes)")
	cmd.Flags().BoolVar(&lexIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	cmd.Flags().StringSliceVar(&lexExtensions, "ext", nil, "Only lex files with these extensions (e.g. .calc)")
	cmd.Flags().BoolVar(&lexIncremental, "incremental", false, "Skip sources already recorded in the datastore")
}

// lexOptions is the merged view of config file and flags.
type lexOptions struct {
	filename      string
	output        string
	format        string
	color         string
	maxFileSize   int64
	includeHidden bool
	extensions    []string
}

// resolveLexOptions starts from the loaded config and applies every flag
// the user set explicitly.
func resolveLexOptions(cmd *cobra.Command) lexOptions {
	cfg := currentSettings()
	opts := lexOptions{
		filename:      cfg.Filename,
		output:        cfg.Datastore,
		format:        cfg.Format,
		color:         cfg.Color,
		maxFileSize:   cfg.MaxFileSize,
		includeHidden: cfg.IncludeHidden,
		extensions:    cfg.Extensions,
	}

	flags := cmd.Flags()
	if flags.Changed("filename") || opts.filename == "" {
		opts.filename = lexFilename
	}
	if flags.Changed("output") {
		opts.output = lexOutputPath
	}
	if flags.Changed("format") || opts.format == "" {
		opts.format = lexOutputFormat
	}
	if flags.Changed("color") || opts.color == "" {
		opts.color = lexColor
	}
	if flags.Changed("max-file-size") {
		opts.maxFileSize = lexMaxFileSize
	}
	if flags.Changed("include-hidden") {
		opts.includeHidden = lexIncludeHidden
	}
	if flags.Changed("ext") {
		opts.extensions = lexExtensions
	}
	return opts
}

func runLex(cmd *cobra.Command, args []string) error {
	opts := resolveLexOptions(cmd)
	log := currentLogger()

	switch opts.format {
	case config.FormatHuman, config.FormatJSON, config.FormatSARIF:
	default:
		return fmt.Errorf("unknown output format: %s", opts.format)
	}

	if lexIncremental && opts.output == "" {
		return fmt.Errorf("--incremental requires --output")
	}

	storePath := opts.output
	if storePath == "" {
		storePath = store.MemoryPath
	}
	s, err := store.New(store.Config{Path: storePath})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	core, err := scanner.NewCore(s, log)
	if err != nil {
		return fmt.Errorf("creating scanner: %w", err)
	}
	defer core.Close()

	var results []*types.ScanResult
	skipped := 0

	switch {
	case lexExpr != "":
		r, err := core.Scan(lexExpr, opts.filename)
		if err != nil {
			return err
		}
		results = append(results, r)

	case len(args) == 0:
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		r, err := core.Scan(string(content), opts.filename)
		if err != nil {
			return err
		}
		results = append(results, r)

	default:
		enumerator, err := createEnumerator(args, lexGit, opts)
		if err != nil {
			return fmt.Errorf("creating enumerator: %w", err)
		}

		var mu sync.Mutex
		err = enumerator.Enumerate(lexContext(cmd), func(content []byte, id types.SourceID, prov types.Provenance) error {
			if lexIncremental {
				exists, err := s.HasScan(id, prov.Path())
				if err != nil {
					return fmt.Errorf("checking scan: %w", err)
				}
				if exists {
					mu.Lock()
					skipped++
					mu.Unlock()
					log.Debug("skipping recorded source", zap.String("path", prov.Path()))
					return nil
				}
			}

			r, err := core.Scan(string(content), prov.Path())
			if err != nil {
				return err
			}

			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
		if err != nil {
			return fmt.Errorf("lexing: %w", err)
		}

		slices.SortStableFunc(results, func(a, b *types.ScanResult) int {
			return strings.Compare(a.Filename, b.Filename)
		})
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}

	// Summary goes to stderr for json/sarif to keep stdout machine-readable
	summaryOut := cmd.OutOrStdout()
	if opts.format != config.FormatHuman {
		summaryOut = cmd.ErrOrStderr()
	}

	if err := writeResults(cmd.OutOrStdout(), opts.format, opts.color, results); err != nil {
		return err
	}

	if len(args) > 0 {
		if lexIncremental {
			fmt.Fprintf(summaryOut, "Lexed %d sources: %d failed (%d skipped)\n", len(results), failed, skipped)
		} else {
			fmt.Fprintf(summaryOut, "Lexed %d sources: %d failed\n", len(results), failed)
		}
		if opts.output != "" {
			fmt.Fprintf(summaryOut, "Results stored in: %s\n", opts.output)
		}
	}

	log.Info("lex complete",
		zap.Int("sources", len(results)),
		zap.Int("failed", failed),
		zap.Int("skipped", skipped),
	)

	if failed > 0 {
		return errLexical
	}
	return nil
}

func createEnumerator(targets []string, useGit bool, opts lexOptions) (enum.Enumerator, error) {
	var enumerators []enum.Enumerator
	for _, target := range targets {
		if _, err := os.Stat(target); err != nil {
			return nil, fmt.Errorf("target does not exist: %s", target)
		}

		cfg := enum.Config{
			Root:          target,
			IncludeHidden: opts.includeHidden,
			MaxFileSize:   opts.maxFileSize,
			Extensions:    opts.extensions,
		}

		if useGit {
			enumerators = append(enumerators, enum.NewGitEnumerator(cfg))
		} else {
			enumerators = append(enumerators, enum.NewFilesystemEnumerator(cfg))
		}
	}

	if len(enumerators) == 1 {
		return enumerators[0], nil
	}
	return enum.NewCombinedEnumerator(enumerators...), nil
}

// lexContext returns the command context, or Background for commands run
// directly in tests.
func lexContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
