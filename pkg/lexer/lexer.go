// Package lexer turns arithmetic expression source into tokens.
//
// The accepted alphabet is ASCII whitespace, the digits 0-9, '.', and the
// symbols + - * / ( ). Scanning stops at the first character it cannot
// classify; there is no error recovery.
package lexer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/praetorian-inc/calclex/pkg/types"
)

const (
	detailsMultipleDots = "Number having two or more decimal points"
	detailsNoDigits     = "Number having no digits"
	detailsIntRange     = "Integer literal out of range"
)

var symbols = map[rune]types.Kind{
	'+': types.KindPlus,
	'-': types.KindMinus,
	'*': types.KindMul,
	'/': types.KindDiv,
	'(': types.KindLParen,
	')': types.KindRParen,
}

// Lexer scans a single source text.
type Lexer struct {
	start State
}

// New creates a Lexer over text. filename is only used in diagnostics.
func New(filename, text string) *Lexer {
	return &Lexer{start: NewState(filename, text)}
}

// MakeTokens scans the whole text. On success it returns the tokens and a
// nil error; otherwise it returns nil tokens and a *types.Error. Calling it
// again rescans from the beginning.
func (l *Lexer) MakeTokens() ([]types.Token, error) {
	return Scan(l.start)
}

// Run lexes text reported under filename.
func Run(filename, text string) ([]types.Token, error) {
	return New(filename, text).MakeTokens()
}

// RunText lexes text that has no file identity.
func RunText(text string) ([]types.Token, error) {
	return Run(types.DefaultFilename, text)
}

// Scan lexes from s to the end of input.
func Scan(s State) ([]types.Token, error) {
	tokens := []types.Token{}

	for !s.AtEOF() {
		ch := s.Current()

		if isSpace(ch) {
			s = s.Advance()
			continue
		}

		if kind, ok := symbols[ch]; ok {
			tokens = append(tokens, types.NewSymbol(kind))
			s = s.Advance()
			continue
		}

		if isDigit(ch) || ch == '.' {
			var (
				tok    types.Token
				lexErr *types.Error
			)
			s, tok, lexErr = scanNumber(s)
			if lexErr != nil {
				return nil, lexErr
			}
			tokens = append(tokens, tok)
			continue
		}

		start := s.Position()
		s = s.Advance()
		return nil, types.NewError(types.IllegalCharacter, string(ch), start, s.Position())
	}

	return tokens, nil
}

// scanNumber consumes a run of digits and dots. A second dot is an error
// as soon as it is read; everything consumed up to and including it stays
// consumed. A lone "." is an IllegalNumber spanning the dot.
func scanNumber(s State) (State, types.Token, *types.Error) {
	begin := s.Position()

	var b strings.Builder
	dots := 0
	for !s.AtEOF() && (isDigit(s.Current()) || s.Current() == '.') {
		if s.Current() == '.' {
			dots++
			if dots > 1 {
				start := s.Position()
				s = s.Advance()
				return s, types.Token{}, types.NewError(types.IllegalNumber, detailsMultipleDots, start, s.Position())
			}
		}
		b.WriteRune(s.Current())
		s = s.Advance()
	}

	literal := b.String()
	if dots == 0 {
		v, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return s, types.Token{}, types.NewError(types.IllegalNumber, detailsIntRange, begin, s.Position())
		}
		return s, types.NewInt(v), nil
	}

	if literal == "." {
		return s, types.Token{}, types.NewError(types.IllegalNumber, detailsNoDigits, begin, s.Position())
	}

	// ParseFloat accepts both ".5" and "5."; overflow saturates to +Inf.
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return s, types.Token{}, types.NewError(types.IllegalNumber, err.Error(), begin, s.Position())
	}
	return s, types.NewFloat(v), nil
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
