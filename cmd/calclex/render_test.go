package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/calclex/pkg/types"
)

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, colorEnabled("always", &buf))
	assert.False(t, colorEnabled("never", &buf))
	// A buffer is never a terminal.
	assert.False(t, colorEnabled("auto", &buf))
}

func TestFormatTokens(t *testing.T) {
	s := newStyles(false)
	tokens := []types.Token{types.NewInt(5), types.NewSymbol(types.KindDiv), types.NewFloat(2)}

	assert.Equal(t, "[Token(INT, 5), Token(DIV, '/'), Token(FLOAT, 2.0)]", s.formatTokens(tokens))
	assert.Equal(t, "[]", s.formatTokens(nil))
}

func TestFormatError_MatchesPlainRendering(t *testing.T) {
	_, err := lexRun(t, "1 +\n 2 # 3")

	s := newStyles(false)
	assert.Equal(t, err.Error(), s.formatError(err))
}

func TestFormatError_Colored(t *testing.T) {
	_, err := lexRun(t, "1 ? 2")

	s := newStyles(true)
	out := s.formatError(err)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "Illegal Character: ?")
}

func TestWriteResults_UnknownFormat(t *testing.T) {
	err := writeResults(&bytes.Buffer{}, "yaml", "never", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestWriteHuman(t *testing.T) {
	var buf bytes.Buffer
	results := []*types.ScanResult{
		scanResult("a.calc", "1-2"),
		scanResult("b.calc", "(x"),
	}
	writeHuman(&buf, newStyles(false), results)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "a.calc (3 tokens)", lines[0])
	assert.Equal(t, "[Token(INT, 1), Token(MINUS, '-'), Token(INT, 2)]", lines[1])
	assert.Equal(t, "b.calc (error)", lines[2])
	assert.Equal(t, "Illegal Character: x", lines[3])
	assert.Equal(t, " ^", lines[6])
}

// lexRun lexes text that is expected to fail and returns the lexical error.
func lexRun(t *testing.T, text string) ([]types.Token, *types.Error) {
	t.Helper()
	r := scanResult(types.DefaultFilename, text)
	require.NotNil(t, r.Error, "expected %q to fail", text)
	return r.Tokens, r.Error
}
