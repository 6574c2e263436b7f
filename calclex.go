// Package calclex lexes a small arithmetic expression language.
//
// The language has integers, floats, the operators + - * / and
// parentheses. Lexing either yields the full token sequence or stops at the
// first illegal character or malformed number with a positioned error.
//
// # Basic Usage
//
//	tokens, err := calclex.RunText("(1 + 2.5) * 3")
//	if err != nil {
//	    fmt.Println(err) // four-line diagnostic with a caret
//	    return
//	}
//	for _, tok := range tokens {
//	    fmt.Println(tok) // Token(LPAREN, '('), Token(INT, 1), ...
//	}
//
// # Recording Scans
//
// A Scanner records every scan in a datastore, in memory by default:
//
//	s, err := calclex.NewScanner(calclex.WithDatastore("calclex.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	result, err := s.ScanString("12 + 23.3 + g")
//	if err == nil && !result.OK() {
//	    fmt.Println(result.Error)
//	}
package calclex

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/praetorian-inc/calclex/pkg/lexer"
	"github.com/praetorian-inc/calclex/pkg/scanner"
	"github.com/praetorian-inc/calclex/pkg/store"
	"github.com/praetorian-inc/calclex/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/calclex" without subpackages.
type (
	// Token is a classified lexical unit.
	Token = types.Token

	// Kind identifies the class of a token.
	Kind = types.Kind

	// Error is a positioned lexical error.
	Error = types.Error

	// ErrorKind distinguishes illegal characters from malformed numbers.
	ErrorKind = types.ErrorKind

	// Position is a cursor into source text.
	Position = types.Position

	// ScanResult records one scan.
	ScanResult = types.ScanResult
)

// Re-export token and error kinds.
const (
	KindInt    = types.KindInt
	KindFloat  = types.KindFloat
	KindPlus   = types.KindPlus
	KindMinus  = types.KindMinus
	KindMul    = types.KindMul
	KindDiv    = types.KindDiv
	KindLParen = types.KindLParen
	KindRParen = types.KindRParen

	IllegalCharacter = types.IllegalCharacter
	IllegalNumber    = types.IllegalNumber
)

// Run lexes text reported under filename. On failure the tokens are nil and
// the error is a *Error.
func Run(filename, text string) ([]Token, error) {
	return lexer.Run(filename, text)
}

// RunText lexes text under the filename "<stdin>".
func RunText(text string) ([]Token, error) {
	return lexer.RunText(text)
}

// AsError extracts the lexical error from err, if it is one.
func AsError(err error) (*Error, bool) {
	var lexErr *Error
	if errors.As(err, &lexErr) {
		return lexErr, true
	}
	return nil, false
}

// Scanner lexes content and records every scan in a datastore.
type Scanner struct {
	core   *scanner.Core
	store  store.Store
	config *scannerConfig
	mu     sync.RWMutex
}

type scannerConfig struct {
	filename  string
	datastore string
	logger    *zap.Logger
}

// Option configures a Scanner.
type Option func(*scannerConfig)

// WithFilename sets the filename reported by ScanString and ScanBytes.
// Default is "<stdin>".
func WithFilename(name string) Option {
	return func(c *scannerConfig) {
		c.filename = name
	}
}

// WithDatastore records scans in a SQLite database at path instead of
// memory.
func WithDatastore(path string) Option {
	return func(c *scannerConfig) {
		c.datastore = path
	}
}

// WithLogger sets the logger. Default discards logs.
func WithLogger(l *zap.Logger) Option {
	return func(c *scannerConfig) {
		c.logger = l
	}
}

// NewScanner creates a Scanner with the given options.
func NewScanner(opts ...Option) (*Scanner, error) {
	config := &scannerConfig{
		filename:  types.DefaultFilename,
		datastore: store.MemoryPath,
	}
	for _, opt := range opts {
		opt(config)
	}

	st, err := store.New(store.Config{Path: config.datastore})
	if err != nil {
		return nil, fmt.Errorf("opening datastore: %w", err)
	}

	core, err := scanner.NewCore(st, config.logger)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating scanner: %w", err)
	}

	return &Scanner{
		core:   core,
		store:  st,
		config: config,
	}, nil
}

// ScanString lexes content under the configured filename.
func (s *Scanner) ScanString(content string) (*ScanResult, error) {
	return s.scan(content, s.config.filename)
}

// ScanBytes lexes raw bytes under the configured filename.
func (s *Scanner) ScanBytes(content []byte) (*ScanResult, error) {
	return s.scan(string(content), s.config.filename)
}

// ScanFile reads and lexes a file, reporting it under its path.
func (s *Scanner) ScanFile(path string) (*ScanResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return s.scan(string(content), path)
}

func (s *Scanner) scan(content, filename string) (*ScanResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.core == nil {
		return nil, fmt.Errorf("scanner is closed")
	}
	return s.core.Scan(content, filename)
}

// Scans returns every scan recorded so far.
func (s *Scanner) Scans() ([]*ScanResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.core == nil {
		return nil, fmt.Errorf("scanner is closed")
	}
	return s.store.GetAllScans()
}

// Close releases the datastore. Always call Close when done with the
// scanner.
func (s *Scanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.core == nil {
		return nil
	}
	s.core.Close()
	s.core = nil
	return s.store.Close()
}
