package properties

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the shape held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a JSON-shaped dynamic value. The zero Value is null.
//
// Numbers keep their decimal text, so integers beyond 2^53 and floats keep
// their exact wire representation until they are read as a Go type.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  *Properties
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns a number value holding a signed integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatInt(i, 10))}
}

// Uint returns a number value holding an unsigned integer.
func Uint(u uint64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatUint(u, 10))}
}

// Float returns a number value. NaN and infinities have no JSON form and
// become null.
func Float(f float64) Value {
	return floatValue(f, 64)
}

func floatValue(f float64, bits int) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'g', -1, bits))}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns an array value holding items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: slices.Clone(items)}
}

// Object returns an object value backed by p. A nil p yields an empty object.
// The store is not copied; use ValueOf to store a snapshot.
func Object(p *Properties) Value {
	if p == nil {
		p = New()
	}
	return Value{kind: KindObject, obj: p}
}

// Kind returns the shape of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean held by v.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the decimal text of the number held by v.
func (v Value) AsNumber() (json.Number, bool) {
	return v.num, v.kind == KindNumber
}

// AsString returns the string held by v.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsArray returns the items held by v. The slice must not be modified.
func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

// AsObject returns the store held by v. The store must not be modified.
func (v Value) AsObject() (*Properties, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	if v.obj == nil {
		return New(), true
	}
	return v.obj, true
}

// Interface returns v as plain Go data: nil, bool, int64, float64, string,
// []any or map[string]any. Integral numbers that fit become int64, all
// others float64. Use AsNumber or Get[json.Number] for the lexical form.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return plainNumber(v.num)
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for key, item := range v.obj.All() {
			out[key] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

func plainNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n
}

// String returns the JSON text of v.
func (v Value) String() string {
	var sb strings.Builder
	v.encode(&sb)
	return sb.String()
}

// Equal reports whether v and other are structurally equal. Numbers compare
// by value, objects compare by their key/value pairs regardless of order.
func (v Value) Equal(other Value) bool {
	return Compare(v, other) == 0
}

func (v Value) clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.clone()
		}
		return Value{kind: KindArray, arr: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Compare orders two values. Kinds order as null < bool < number < string <
// array < object. Arrays compare element-wise; objects compare their pairs in
// sorted key order. The result is 0 exactly when a.Equal(b).
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case KindNumber:
		return compareNumbers(a.num, b.num)
	case KindString:
		return strings.Compare(a.str, b.str)
	case KindArray:
		for i := range min(len(a.arr), len(b.arr)) {
			if c := Compare(a.arr[i], b.arr[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.arr), len(b.arr))
	case KindObject:
		return compareObjects(a.obj, b.obj)
	default:
		return 0
	}
}

func compareNumbers(a, b json.Number) int {
	if a == b {
		return 0
	}
	ra, okA := new(big.Rat).SetString(string(a))
	rb, okB := new(big.Rat).SetString(string(b))
	if !okA || !okB {
		return strings.Compare(string(a), string(b))
	}
	return ra.Cmp(rb)
}

func compareObjects(a, b *Properties) int {
	ka, kb := a.Keys(), b.Keys()
	slices.Sort(ka)
	slices.Sort(kb)
	for i := range min(len(ka), len(kb)) {
		if c := strings.Compare(ka[i], kb[i]); c != 0 {
			return c
		}
		va, _ := a.Raw(ka[i])
		vb, _ := b.Raw(kb[i])
		if c := Compare(va, vb); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ka), len(kb))
}
