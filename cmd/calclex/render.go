package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/praetorian-inc/calclex/pkg/config"
	"github.com/praetorian-inc/calclex/pkg/sarif"
	"github.com/praetorian-inc/calclex/pkg/types"
)

// styles holds color formatters for human output
type styles struct {
	heading  *color.Color
	source   *color.Color
	number   *color.Color
	operator *color.Color
	errTitle *color.Color
	location *color.Color
	caret    *color.Color
}

// newStyles creates color formatters for human output. The enabled flag
// overrides color's own terminal detection.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:  color.New(color.Bold),
		source:   color.New(color.Bold, color.FgHiBlue),
		number:   color.New(color.FgYellow),
		operator: color.New(color.FgHiCyan),
		errTitle: color.New(color.Bold, color.FgHiRed),
		location: color.New(color.FgHiBlue),
		caret:    color.New(color.Bold, color.FgHiRed),
	}

	for _, c := range []*color.Color{s.heading, s.source, s.number, s.operator, s.errTitle, s.location, s.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// colorEnabled resolves a --color mode. auto enables color only when out is
// a terminal and NO_COLOR is unset.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatTokens renders tokens as a bracketed list, coloring numbers and
// operators.
func (s *styles) formatTokens(tokens []types.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		c := s.operator
		if tok.Kind == types.KindInt || tok.Kind == types.KindFloat {
			c = s.number
		}
		parts[i] = c.Sprint(tok.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatError renders the four-line diagnostic with the title and caret
// highlighted.
func (s *styles) formatError(e *types.Error) string {
	snip := e.Snippet()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.errTitle.Sprintf("%s: %s", e.Kind.Title(), e.Details))
	fmt.Fprintf(&b, "%s\n", s.location.Sprintf("File %s, line %d", e.Start.Filename, e.Start.Line+1))
	fmt.Fprintf(&b, "%s\n", snip.Line)
	b.WriteString(strings.Repeat(" ", len(snip.Caret)-1))
	b.WriteString(s.caret.Sprint("^"))
	return b.String()
}

// writeHuman prints each scan: a heading with the source name, then the
// token list or the diagnostic.
func writeHuman(out io.Writer, s *styles, results []*types.ScanResult) {
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(out, "%s %s\n", s.source.Sprint(r.Filename), s.heading.Sprintf("(%d tokens)", len(r.Tokens)))
			fmt.Fprintf(out, "%s\n", s.formatTokens(r.Tokens))
			continue
		}
		fmt.Fprintf(out, "%s %s\n", s.source.Sprint(r.Filename), s.heading.Sprint("(error)"))
		fmt.Fprintf(out, "%s\n", s.formatError(r.Error))
	}
}

func writeJSON(out io.Writer, results []*types.ScanResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func writeSARIF(out io.Writer, results []*types.ScanResult) error {
	report := sarif.NewReport()
	for _, r := range results {
		report.AddScan(r)
	}

	jsonBytes, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}
	if _, err := out.Write(append(jsonBytes, '\n')); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	return nil
}

// writeResults renders results in the given format.
func writeResults(out io.Writer, format string, colorMode string, results []*types.ScanResult) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(out, results)
	case config.FormatSARIF:
		return writeSARIF(out, results)
	case config.FormatHuman:
		writeHuman(out, newStyles(colorEnabled(colorMode, out)), results)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
