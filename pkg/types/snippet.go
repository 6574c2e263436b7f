package types

import "strings"

// Snippet is the source excerpt shown under a rendered error.
type Snippet struct {
	Line  string // text from the start of the source up to the offending column
	Caret string // spaces followed by "^" under the offending column
}

// Snippet slices the source from its very first character through the
// start column. The slice is not line-aware: on multi-line input it still
// begins at the start of the whole text.
func (e *Error) Snippet() Snippet {
	runes := []rune(e.Start.Text)
	col := e.Start.Column
	if col < 0 {
		col = 0
	}

	end := col + 1
	if end > len(runes) {
		end = len(runes)
	}

	return Snippet{
		Line:  string(runes[:end]),
		Caret: strings.Repeat(" ", col) + "^",
	}
}
