package data

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the type tag of a Value and of the column that holds it
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindDouble
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText renders the kind by name in JSON and logs
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind accepts the protocol's column type names (string, int, double,
// bool). Like the protocol, only the leading letter is significant.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return 0, fmt.Errorf("empty column type")
	}
	switch s[0] {
	case 's':
		return KindString, nil
	case 'i':
		return KindInt, nil
	case 'd':
		return KindDouble, nil
	case 'b':
		return KindBool, nil
	}
	return 0, fmt.Errorf("unknown column type %q", s)
}

// Value is a single table cell: exactly one of string, int64, float64 or
// bool, selected by its kind. Values are comparable with == and can be used
// directly as map keys.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func String(s string) Value  { return Value{kind: KindString, s: s} }
func Int(i int64) Value      { return Value{kind: KindInt, i: i} }
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload; only meaningful for KindString.
func (v Value) Str() string { return v.s }

// Int64 returns the integer payload; only meaningful for KindInt.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the double payload; only meaningful for KindDouble.
func (v Value) Float64() float64 { return v.f }

// Boolean returns the bool payload; only meaningful for KindBool.
func (v Value) Boolean() bool { return v.b }

// Compare orders v against o. Values of the same kind use their natural
// order (false < true for booleans). Values of different kinds are ordered
// by kind tag so the order stays total; a table never stores two kinds in
// one column.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		return cmp.Compare(v.kind, o.kind)
	}
	switch v.kind {
	case KindString:
		return strings.Compare(v.s, o.s)
	case KindInt:
		return cmp.Compare(v.i, o.i)
	case KindDouble:
		return cmp.Compare(v.f, o.f)
	case KindBool:
		switch {
		case v.b == o.b:
			return 0
		case !v.b:
			return -1
		default:
			return 1
		}
	}
	return 0
}

// IsNaN reports whether v is a double holding NaN. NaN is never stored or
// compared: it would match itself in a scan but never in a hash lookup.
func (v Value) IsNaN() bool { return v.kind == KindDouble && math.IsNaN(v.f) }

func (v Value) Less(o Value) bool  { return v.Compare(o) < 0 }
func (v Value) Equal(o Value) bool { return v.Compare(o) == 0 }

// Interface returns the payload as a plain Go value, used for logging and
// JSON encoding.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInt:
		return v.i
	case KindDouble:
		return v.f
	case KindBool:
		return v.b
	default:
		return v.s
	}
}

// String renders the value the way the command processor prints cells.
// Doubles use six significant digits.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', 6, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

// ParseValue converts a protocol token into a Value of the given kind
func ParseValue(kind Kind, token string) (Value, error) {
	switch kind {
	case KindString:
		return String(token), nil
	case KindInt:
		i, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid int %q: %w", token, err)
		}
		return Int(i), nil
	case KindDouble:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid double %q: %w", token, err)
		}
		if math.IsNaN(f) {
			return Value{}, fmt.Errorf("invalid double %q: NaN is not a value", token)
		}
		return Double(f), nil
	case KindBool:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return Value{}, fmt.Errorf("invalid bool %q: %w", token, err)
		}
		return Bool(b), nil
	}
	return Value{}, fmt.Errorf("unknown kind %v", kind)
}
