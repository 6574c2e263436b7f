package types

import "fmt"

// EOF marks the end of input. It is passed to Advance once the cursor has
// moved past the last character of the text.
const EOF rune = -1

// Position tracks a cursor in source text as a flat index plus 0-based
// line and column.
type Position struct {
	Index    int    `json:"index"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Filename string `json:"-"`
	Text     string `json:"-"`
}

// NewPosition returns the pre-first-character position (index -1).
// Call Advance(EOF) once to move onto the first character.
func NewPosition(filename, text string) Position {
	return Position{
		Index:    -1,
		Line:     0,
		Column:   -1,
		Filename: filename,
		Text:     text,
	}
}

// Advance moves the position forward by one character. current is the
// character being left behind, not the one being moved onto.
func (p *Position) Advance(current rune) {
	p.Index++
	p.Column++

	if current == '\n' {
		p.Line++
		p.Column = 0
	}
}

// Copy returns an independent snapshot of the position.
func (p Position) Copy() Position {
	return p
}

// String returns "(line,column)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Column)
}

// Point converts the position into a 1-based SourcePoint.
func (p Position) Point() SourcePoint {
	return SourcePoint{Line: p.Line + 1, Column: p.Column + 1}
}

// DefaultFilename names sources that have no file identity.
const DefaultFilename = "<stdin>"
