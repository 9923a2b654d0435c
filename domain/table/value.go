package table

import (
	"strconv"
)

// Kind is the scalar type of a cell or of a whole column.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "null"
	}
}

// Numeric reports whether values of this kind can be aggregated.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Value is a single immutable cell.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
}

// Null returns the missing value.
func Null() Value { return Value{} }

// String returns a string cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer cell.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point cell.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Number returns the numeric value of an int or float cell.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Text renders the cell the way it is used as a group label.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return ""
	}
}

// Interface converts the cell for JSON encoding; null becomes nil.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return nil
	}
}
