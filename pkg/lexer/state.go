package lexer

import "github.com/praetorian-inc/calclex/pkg/types"

// State is the scan cursor: a position in the text plus the character
// under it. It has value semantics; Advance returns a new State and leaves
// the receiver untouched, so a State can be saved and resumed freely.
type State struct {
	pos  types.Position
	text []rune
	ch   rune
}

// NewState returns a State positioned on the first character of text (or
// at EOF for empty text).
func NewState(filename, text string) State {
	s := State{
		pos:  types.NewPosition(filename, text),
		text: []rune(text),
		ch:   types.EOF,
	}
	return s.Advance()
}

// Advance moves one character forward.
func (s State) Advance() State {
	s.pos.Advance(s.ch)
	if s.pos.Index < len(s.text) {
		s.ch = s.text[s.pos.Index]
	} else {
		s.ch = types.EOF
	}
	return s
}

// Current returns the character under the cursor, or types.EOF.
func (s State) Current() rune {
	return s.ch
}

// AtEOF reports whether the cursor has moved past the last character.
func (s State) AtEOF() bool {
	return s.ch == types.EOF
}

// Position returns a snapshot of the cursor position.
func (s State) Position() types.Position {
	return s.pos.Copy()
}

// Remaining returns the unread input, starting at the current character.
func (s State) Remaining() string {
	if s.pos.Index >= len(s.text) {
		return ""
	}
	return string(s.text[s.pos.Index:])
}
