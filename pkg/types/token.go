package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the class of a token.
type Kind uint8

const (
	KindInt    Kind = iota // INT
	KindFloat              // FLOAT
	KindPlus               // +
	KindMinus              // -
	KindMul                // *
	KindDiv                // /
	KindLParen             // (
	KindRParen             // )
)

var kindNames = [...]string{
	KindInt:    "INT",
	KindFloat:  "FLOAT",
	KindPlus:   "PLUS",
	KindMinus:  "MINUS",
	KindMul:    "MUL",
	KindDiv:    "DIV",
	KindLParen: "LPAREN",
	KindRParen: "RPAREN",
}

var kindSymbols = [...]string{
	KindPlus:   "+",
	KindMinus:  "-",
	KindMul:    "*",
	KindDiv:    "/",
	KindLParen: "(",
	KindRParen: ")",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Symbol returns the literal text of an operator or parenthesis kind, or ""
// for numeric kinds.
func (k Kind) Symbol() string {
	if int(k) < len(kindSymbols) {
		return kindSymbols[k]
	}
	return ""
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown token kind: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(data []byte) error {
	parsed, err := ParseKind(string(data))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Token is a classified lexical unit. Int is set for KindInt and Float for
// KindFloat; the other kinds carry no payload beyond their Symbol.
type Token struct {
	Kind  Kind
	Int   int64
	Float float64
}

// NewInt returns an INT token.
func NewInt(v int64) Token {
	return Token{Kind: KindInt, Int: v}
}

// NewFloat returns a FLOAT token.
func NewFloat(v float64) Token {
	return Token{Kind: KindFloat, Float: v}
}

// NewSymbol returns a payload-free token of the given operator or paren kind.
func NewSymbol(kind Kind) Token {
	return Token{Kind: kind}
}

// Value returns the token payload: int64 for INT, float64 for FLOAT and the
// symbol string otherwise.
func (t Token) Value() any {
	switch t.Kind {
	case KindInt:
		return t.Int
	case KindFloat:
		return t.Float
	default:
		return t.Kind.Symbol()
	}
}

// String renders the token as Token(<KIND>, <value>).
func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %s)", t.Kind, t.valueRepr())
}

func (t Token) valueRepr() string {
	switch t.Kind {
	case KindInt:
		return strconv.FormatInt(t.Int, 10)
	case KindFloat:
		return FormatFloat(t.Float)
	default:
		return "'" + t.Kind.Symbol() + "'"
	}
}

// FormatFloat renders f with the shortest digits that round-trip. Decimal
// exponents from -4 up to 15 use fixed notation, always keeping a decimal
// point (5 renders as "5.0"); anything outside that uses exponent notation
// ("1e+16", "1e-05").
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type tokenJSON struct {
	Kind  Kind            `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes the token as {"kind": ..., "value": ...}. Infinite
// floats, which JSON numbers cannot carry, are encoded as strings.
func (t Token) MarshalJSON() ([]byte, error) {
	var value any
	switch {
	case t.Kind == KindFloat && (math.IsInf(t.Float, 0) || math.IsNaN(t.Float)):
		value = FormatFloat(t.Float)
	default:
		value = t.Value()
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tokenJSON{Kind: t.Kind, Value: raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Token) UnmarshalJSON(data []byte) error {
	var aux tokenJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	tok := Token{Kind: aux.Kind}
	switch aux.Kind {
	case KindInt:
		if err := json.Unmarshal(aux.Value, &tok.Int); err != nil {
			return fmt.Errorf("decoding INT value: %w", err)
		}
	case KindFloat:
		var s string
		if err := json.Unmarshal(aux.Value, &s); err == nil {
			f, err := parseSpecialFloat(s)
			if err != nil {
				return err
			}
			tok.Float = f
		} else if err := json.Unmarshal(aux.Value, &tok.Float); err != nil {
			return fmt.Errorf("decoding FLOAT value: %w", err)
		}
	}

	*t = tok
	return nil
}

func parseSpecialFloat(s string) (float64, error) {
	switch s {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}
	return 0, fmt.Errorf("invalid FLOAT value: %q", s)
}
