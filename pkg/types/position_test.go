package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPosition_Priming(t *testing.T) {
	pos := NewPosition("<stdin>", "12")
	assert.Equal(t, -1, pos.Index)
	assert.Equal(t, 0, pos.Line)
	assert.Equal(t, -1, pos.Column)

	pos.Advance(EOF)
	assert.Equal(t, 0, pos.Index)
	assert.Equal(t, 0, pos.Line)
	assert.Equal(t, 0, pos.Column)
}

func TestPosition_AdvanceAcrossNewline(t *testing.T) {
	pos := NewPosition("f", "1\n2")
	pos.Advance(EOF) // on '1'
	pos.Advance('1') // on '\n'
	assert.Equal(t, 1, pos.Index)
	assert.Equal(t, 0, pos.Line)
	assert.Equal(t, 1, pos.Column)

	// Leaving the newline behind moves onto the next line.
	pos.Advance('\n') // on '2'
	assert.Equal(t, 2, pos.Index)
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 0, pos.Column)
}

func TestPosition_CopyIsIndependent(t *testing.T) {
	pos := NewPosition("f", "abc")
	pos.Advance(EOF)

	snap := pos.Copy()
	pos.Advance('a')
	pos.Advance('b')

	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 0, snap.Column)
	assert.Equal(t, 2, pos.Index)
	assert.Equal(t, "abc", snap.Text)
}

func TestPosition_Point(t *testing.T) {
	pos := Position{Index: 7, Line: 2, Column: 4}
	assert.Equal(t, SourcePoint{Line: 3, Column: 5}, pos.Point())
	assert.Equal(t, "(2,4)", pos.String())
}

func TestPositionAt(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		index      int
		wantLine   int
		wantColumn int
	}{
		{name: "first character", text: "hello", index: 0, wantLine: 0, wantColumn: 0},
		{name: "single line", text: "hello", index: 2, wantLine: 0, wantColumn: 2},
		{name: "at newline", text: "hello\nworld", index: 5, wantLine: 0, wantColumn: 5},
		{name: "start of second line", text: "hello\nworld", index: 6, wantLine: 1, wantColumn: 0},
		{name: "second line", text: "hello\nworld", index: 7, wantLine: 1, wantColumn: 1},
		{name: "multiple newlines", text: "line1\nline2\nline3", index: 12, wantLine: 2, wantColumn: 0},
		{name: "beyond end", text: "hello", index: 8, wantLine: 0, wantColumn: 8},
		{name: "runes not bytes", text: "é+1", index: 2, wantLine: 0, wantColumn: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := PositionAt("f", tt.text, tt.index)
			assert.Equal(t, tt.index, pos.Index)
			assert.Equal(t, tt.wantLine, pos.Line)
			assert.Equal(t, tt.wantColumn, pos.Column)
			assert.Equal(t, "f", pos.Filename)
		})
	}
}
