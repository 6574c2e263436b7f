package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorKind classifies a lexical error.
type ErrorKind uint8

const (
	// IllegalCharacter reports a character outside the input alphabet.
	IllegalCharacter ErrorKind = iota
	// IllegalNumber reports a malformed numeric literal.
	IllegalNumber
)

var errorKindNames = [...]string{
	IllegalCharacter: "IllegalCharacter",
	IllegalNumber:    "IllegalNumber",
}

var errorKindTitles = [...]string{
	IllegalCharacter: "Illegal Character",
	IllegalNumber:    "Illegal number",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Title is the human-readable name used on the first line of a rendered
// error.
func (k ErrorKind) Title() string {
	if int(k) < len(errorKindTitles) {
		return errorKindTitles[k]
	}
	return k.String()
}

// ParseErrorKind is the inverse of ErrorKind.String.
func ParseErrorKind(s string) (ErrorKind, error) {
	for i, name := range errorKindNames {
		if name == s {
			return ErrorKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown error kind: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ErrorKind) UnmarshalText(data []byte) error {
	parsed, err := ParseErrorKind(string(data))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Error is a terminal lexical error. Start is the offending character and
// End is the position one character later.
type Error struct {
	Kind    ErrorKind
	Details string
	Start   Position
	End     Position
}

// NewError builds an Error from copies of the boundary positions.
func NewError(kind ErrorKind, details string, start, end Position) *Error {
	return &Error{
		Kind:    kind,
		Details: details,
		Start:   start.Copy(),
		End:     end.Copy(),
	}
}

// Error renders the four-line diagnostic:
//
//	Illegal Character: g
//	File <stdin>, line 1
//	12+23.3+g
//	        ^
func (e *Error) Error() string {
	snip := e.Snippet()

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.Kind.Title(), e.Details)
	fmt.Fprintf(&b, "File %s, line %d\n", e.Start.Filename, e.Start.Line+1)
	b.WriteString(snip.Line)
	b.WriteByte('\n')
	b.WriteString(snip.Caret)
	return b.String()
}

// Span returns the 1-based source range of the error.
func (e *Error) Span() SourceSpan {
	return SourceSpan{
		Start: e.Start.Point(),
		End:   e.End.Point(),
	}
}

type errorJSON struct {
	Kind     ErrorKind `json:"kind"`
	Details  string    `json:"details"`
	Filename string    `json:"filename"`
	Start    Position  `json:"start"`
	End      Position  `json:"end"`
	Message  string    `json:"message"`
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(errorJSON{
		Kind:     e.Kind,
		Details:  e.Details,
		Filename: e.Start.Filename,
		Start:    e.Start,
		End:      e.End,
		Message:  e.Error(),
	})
}
