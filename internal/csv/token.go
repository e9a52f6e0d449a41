// Package csv tokenizes comma-delimited text into typed records and zips
// them against the header row into row mappings.
package csv

import (
	"math"
	"strconv"
)

// TokenKind identifies the inferred type of a field.
type TokenKind uint8

const (
	TokenString TokenKind = iota
	TokenNumber
	TokenBoolean
	TokenNull
)

func (k TokenKind) String() string {
	switch k {
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenBoolean:
		return "boolean"
	case TokenNull:
		return "null"
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// NumberKind separates integral numbers from fractional ones.
type NumberKind uint8

const (
	NumberInt NumberKind = iota
	NumberFloat
)

// Number is a numeric field. Int is set for NumberInt, Float for NumberFloat.
type Number struct {
	Kind  NumberKind
	Int   int64
	Float float64
}

// Int returns an integral Number.
func Int(i int64) Number { return Number{Kind: NumberInt, Int: i} }

// Float returns a fractional Number.
func Float(f float64) Number { return Number{Kind: NumberFloat, Float: f} }

// numberFromFloat picks the integer subtype when f has no fractional part
// and fits in an int64.
func numberFromFloat(f float64) Number {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return Int(int64(f))
	}
	return Float(f)
}

// Float64 returns the number as a float64 regardless of subtype.
func (n Number) Float64() float64 {
	if n.Kind == NumberInt {
		return float64(n.Int)
	}
	return n.Float
}

func (n Number) String() string {
	if n.Kind == NumberInt {
		return strconv.FormatInt(n.Int, 10)
	}
	return strconv.FormatFloat(n.Float, 'g', -1, 64)
}

// Token is one field of a record.
type Token struct {
	Kind   TokenKind
	Text   string
	Number Number
	Bool   bool
}

// Record is the ordered field tokens of one line.
type Record []Token
