package csv

import (
	"strconv"

	"github.com/mcncl/parson/internal/errors"
)

// Kind is the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single cell. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  Number
	b    bool
}

// Constructors, one per variant.
func NewNull() Value           { return Value{} }
func NewString(s string) Value { return Value{kind: KindString, str: s} }
func NewNumber(n Number) Value { return Value{kind: KindNumber, num: n} }
func NewInt(i int64) Value     { return NewNumber(Int(i)) }
func NewFloat(f float64) Value { return NewNumber(Float(f)) }
func NewBool(b bool) Value     { return Value{kind: KindBoolean, b: b} }

// valueFromToken maps a record token onto the matching Value variant.
func valueFromToken(tok Token) Value {
	switch tok.Kind {
	case TokenString:
		return NewString(tok.Text)
	case TokenNumber:
		return NewNumber(tok.Number)
	case TokenBoolean:
		return NewBool(tok.Bool)
	}
	return NewNull()
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", errors.NewConversionError(v.kind.String(), "string")
	}
	return v.str, nil
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBoolean {
		return false, errors.NewConversionError(v.kind.String(), "boolean")
	}
	return v.b, nil
}

// AsNumber returns the number held by v with its integer/float subtype.
func (v Value) AsNumber() (Number, error) {
	if v.kind != KindNumber {
		return Number{}, errors.NewConversionError(v.kind.String(), "number")
	}
	return v.num, nil
}

// AsInt64 returns the number held by v if it is of the integer subtype.
func (v Value) AsInt64() (int64, error) {
	if v.kind != KindNumber {
		return 0, errors.NewConversionError(v.kind.String(), "int64")
	}
	if v.num.Kind != NumberInt {
		return 0, errors.NewConversionError("float number", "int64")
	}
	return v.num.Int, nil
}

// AsFloat64 returns the number held by v if it is of the float subtype.
// Integer numbers are not widened; use AsNumber to accept both.
func (v Value) AsFloat64() (float64, error) {
	if v.kind != KindNumber {
		return 0, errors.NewConversionError(v.kind.String(), "float64")
	}
	if v.num.Kind != NumberFloat {
		return 0, errors.NewConversionError("integer number", "float64")
	}
	return v.num.Float, nil
}

// Native converts v into nil, string, int64, float64 or bool.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.num.Kind == NumberInt {
			return v.num.Int
		}
		return v.num.Float
	case KindBoolean:
		return v.b
	}
	return nil
}
