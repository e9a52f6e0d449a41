package json

import (
	"fmt"
	"maps"
	"math"
	"slices"
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
	KindObject
	KindArray
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
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a node of a parsed JSON tree. The zero Value is null.
// Objects and arrays own their children; a tree never shares nodes.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	obj  map[string]Value
	arr  []Value
}

// Constructors, one per variant.
func NewNull() Value               { return Value{} }
func NewString(s string) Value     { return Value{kind: KindString, str: s} }
func NewNumber(f float64) Value    { return Value{kind: KindNumber, num: f} }
func NewBool(b bool) Value         { return Value{kind: KindBoolean, b: b} }
func NewArray(items []Value) Value { return Value{kind: KindArray, arr: items} }

// NewObject wraps m; a nil map becomes an empty object.
func NewObject(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{kind: KindObject, obj: m}
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

// AsFloat64 returns the number held by v.
func (v Value) AsFloat64() (float64, error) {
	if v.kind != KindNumber {
		return 0, errors.NewConversionError(v.kind.String(), "float64")
	}
	return v.num, nil
}

// AsInt64 returns the number held by v when it is integral and fits in an
// int64. Fractional numbers are not truncated.
func (v Value) AsInt64() (int64, error) {
	if v.kind != KindNumber {
		return 0, errors.NewConversionError(v.kind.String(), "int64")
	}
	if v.num != math.Trunc(v.num) || v.num < math.MinInt64 || v.num >= math.MaxInt64 {
		return 0, errors.NewConversionError(fmt.Sprintf("number %v", v.num), "int64")
	}
	return int64(v.num), nil
}

// AsObject returns a copy of the mapping held by v. Changing the copy
// leaves the tree untouched.
func (v Value) AsObject() (map[string]Value, error) {
	if v.kind != KindObject {
		return nil, errors.NewConversionError(v.kind.String(), "object")
	}
	return maps.Clone(v.obj), nil
}

// AsArray returns a copy of the sequence held by v.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, errors.NewConversionError(v.kind.String(), "array")
	}
	return slices.Clone(v.arr), nil
}

// Len returns the number of children of an object or array, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.obj)
	case KindArray:
		return len(v.arr)
	}
	return 0
}

// Field returns the member named key of an object.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	child, ok := v.obj[key]
	return child, ok
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Lookup walks a path of object keys (string) and array indices (int).
func (v Value) Lookup(path ...any) (Value, error) {
	cur := v
	for _, step := range path {
		var next Value
		var ok bool
		switch s := step.(type) {
		case string:
			if cur.kind != KindObject {
				return Value{}, errors.NewConversionError(cur.kind.String(), "object")
			}
			next, ok = cur.Field(s)
		case int:
			if cur.kind != KindArray {
				return Value{}, errors.NewConversionError(cur.kind.String(), "array")
			}
			next, ok = cur.Index(s)
		default:
			return Value{}, errors.NewInputError(fmt.Sprintf("unsupported path element %v of type %T", step, step), nil)
		}
		if !ok {
			return Value{}, errors.NewInputError(fmt.Sprintf("path element %v not found", step), nil)
		}
		cur = next
	}
	return cur, nil
}

// Native converts v into plain Go values: nil, string, float64, bool,
// map[string]any and []any.
func (v Value) Native() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBoolean:
		return v.b
	case KindObject:
		m := make(map[string]any, len(v.obj))
		for k, child := range v.obj {
			m[k] = child.Native()
		}
		return m
	case KindArray:
		a := make([]any, len(v.arr))
		for i, child := range v.arr {
			a[i] = child.Native()
		}
		return a
	}
	return nil
}
