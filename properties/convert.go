package properties

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"time"
)

// Marshaler is implemented by types that know their Value form.
type Marshaler interface {
	PropertyValue() Value
}

// Unmarshaler is implemented by types that can be read from a Value.
type Unmarshaler interface {
	SetPropertyValue(v Value) error
}

// ValueOf converts a Go value into a Value. It never fails: types without a
// built-in conversion use their JSON encoding, and a value that cannot be
// encoded at all becomes null.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x.clone()
	case *Value:
		if x == nil {
			return Null()
		}
		return x.clone()
	case *Properties:
		if x == nil {
			return Null()
		}
		return Object(x.Clone())
	case Marshaler:
		return x.PropertyValue()
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Uint(uint64(x))
	case uint8:
		return Uint(uint64(x))
	case uint16:
		return Uint(uint64(x))
	case uint32:
		return Uint(uint64(x))
	case uint64:
		return Uint(x)
	case float32:
		return floatValue(float64(x), 32)
	case float64:
		return Float(x)
	case json.Number:
		if validNumber(x) {
			return Value{kind: KindNumber, num: x}
		}
		return String(string(x))
	case time.Time:
		return String(x.Format(time.RFC3339Nano))
	case []Value:
		return Array(x...)
	case []any:
		return sliceOf(x)
	case []string:
		return sliceOf(x)
	case []bool:
		return sliceOf(x)
	case []int:
		return sliceOf(x)
	case []int64:
		return sliceOf(x)
	case []float64:
		return sliceOf(x)
	case map[string]any:
		return mapOf(x)
	case map[string]string:
		return mapOf(x)
	case map[string]Value:
		return mapOf(x)
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return Null()
		}
		return String(string(text))
	default:
		return viaJSON(v)
	}
}

func sliceOf[T any](items []T) Value {
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = ValueOf(item)
	}
	return Value{kind: KindArray, arr: out}
}

// mapOf sorts keys since Go maps carry no order.
func mapOf[T any](m map[string]T) Value {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	obj := New()
	for _, key := range keys {
		obj.SetValue(key, ValueOf(m[key]))
	}
	return Object(obj)
}

func viaJSON(v any) Value {
	data, err := json.Marshal(v)
	if err != nil {
		return Null()
	}
	out, err := parse(data)
	if err != nil {
		return Null()
	}
	return out
}

func validNumber(n json.Number) bool {
	if n == "" || !(n[0] == '-' || (n[0] >= '0' && n[0] <= '9')) {
		return false
	}
	return json.Valid([]byte(n))
}

// Decode reads v into target, which must be a non-nil pointer. Shape
// mismatches and lossy numeric conversions return a *ConversionError.
func Decode(v Value, target any) error {
	switch t := target.(type) {
	case *Value:
		*t = v.clone()
	case Unmarshaler:
		return t.SetPropertyValue(v)
	case *Properties:
		obj, ok := v.AsObject()
		if !ok {
			return mismatch(v, "object")
		}
		*t = *obj.Clone()
	case **Properties:
		obj, ok := v.AsObject()
		if !ok {
			return mismatch(v, "object")
		}
		*t = obj.Clone()
	case *bool:
		b, ok := v.AsBool()
		if !ok {
			return mismatch(v, "bool")
		}
		*t = b
	case *string:
		s, ok := v.AsString()
		if !ok {
			return mismatch(v, "string")
		}
		*t = s
	case *int:
		n, err := toInt(v, strconv.IntSize, "int")
		*t = int(n)
		return err
	case *int8:
		n, err := toInt(v, 8, "int8")
		*t = int8(n)
		return err
	case *int16:
		n, err := toInt(v, 16, "int16")
		*t = int16(n)
		return err
	case *int32:
		n, err := toInt(v, 32, "int32")
		*t = int32(n)
		return err
	case *int64:
		n, err := toInt(v, 64, "int64")
		*t = n
		return err
	case *uint:
		n, err := toUint(v, strconv.IntSize, "uint")
		*t = uint(n)
		return err
	case *uint8:
		n, err := toUint(v, 8, "uint8")
		*t = uint8(n)
		return err
	case *uint16:
		n, err := toUint(v, 16, "uint16")
		*t = uint16(n)
		return err
	case *uint32:
		n, err := toUint(v, 32, "uint32")
		*t = uint32(n)
		return err
	case *uint64:
		n, err := toUint(v, 64, "uint64")
		*t = n
		return err
	case *float32:
		f, err := toFloat(v, 32, "float32")
		*t = float32(f)
		return err
	case *float64:
		f, err := toFloat(v, 64, "float64")
		*t = f
		return err
	case *json.Number:
		n, ok := v.AsNumber()
		if !ok {
			return mismatch(v, "json.Number")
		}
		*t = n
	case *time.Time:
		s, ok := v.AsString()
		if !ok {
			return mismatch(v, "time.Time")
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return &ConversionError{Want: "time.Time", Got: v.Kind(), Err: err}
		}
		*t = ts
	case *[]Value:
		items, ok := v.AsArray()
		if !ok {
			return mismatch(v, "[]properties.Value")
		}
		*t = Array(items...).arr
	case *[]any:
		return decodeSlice(v, t, "[]interface {}")
	case *[]string:
		return decodeSlice(v, t, "[]string")
	case *[]bool:
		return decodeSlice(v, t, "[]bool")
	case *[]int:
		return decodeSlice(v, t, "[]int")
	case *[]int64:
		return decodeSlice(v, t, "[]int64")
	case *[]float64:
		return decodeSlice(v, t, "[]float64")
	case *any:
		*t = v.Interface()
	case *map[string]any:
		return decodeMap(v, t, "map[string]interface {}")
	case *map[string]string:
		return decodeMap(v, t, "map[string]string")
	case *map[string]Value:
		return decodeMap(v, t, "map[string]properties.Value")
	case encoding.TextUnmarshaler:
		s, ok := v.AsString()
		if !ok {
			return mismatch(v, fmt.Sprintf("%T", target))
		}
		if err := t.UnmarshalText([]byte(s)); err != nil {
			return &ConversionError{Want: fmt.Sprintf("%T", target), Got: v.Kind(), Err: err}
		}
	default:
		return decodeViaJSON(v, target)
	}
	return nil
}

func decodeSlice[T any](v Value, target *[]T, want string) error {
	items, ok := v.AsArray()
	if !ok {
		return mismatch(v, want)
	}
	out := make([]T, len(items))
	for i, item := range items {
		if err := Decode(item, &out[i]); err != nil {
			return at(err, "["+strconv.Itoa(i)+"]")
		}
	}
	*target = out
	return nil
}

func decodeMap[T any](v Value, target *map[string]T, want string) error {
	obj, ok := v.AsObject()
	if !ok {
		return mismatch(v, want)
	}
	out := make(map[string]T, obj.Len())
	for key, item := range obj.All() {
		var elem T
		if err := Decode(item, &elem); err != nil {
			return at(err, key)
		}
		out[key] = elem
	}
	*target = out
	return nil
}

func decodeViaJSON(v Value, target any) error {
	want := fmt.Sprintf("%T", target)
	if len(want) > 1 && want[0] == '*' {
		want = want[1:]
	}
	if err := json.Unmarshal([]byte(v.String()), target); err != nil {
		return &ConversionError{Want: want, Got: v.Kind(), Err: err}
	}
	return nil
}

func toInt(v Value, bits int, want string) (int64, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, mismatch(v, want)
	}
	if i, err := strconv.ParseInt(string(n), 10, bits); err == nil {
		return i, nil
	}
	// Exponent forms such as 1e3 are accepted when they are whole numbers.
	r, ok := new(big.Rat).SetString(string(n))
	if !ok || !r.IsInt() || !r.Num().IsInt64() {
		return 0, lossy(v, want)
	}
	i := r.Num().Int64()
	if bits < 64 {
		lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
		if i < lo || i > hi {
			return 0, lossy(v, want)
		}
	}
	return i, nil
}

func toUint(v Value, bits int, want string) (uint64, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, mismatch(v, want)
	}
	if u, err := strconv.ParseUint(string(n), 10, bits); err == nil {
		return u, nil
	}
	r, ok := new(big.Rat).SetString(string(n))
	if !ok || !r.IsInt() || r.Sign() < 0 || !r.Num().IsUint64() {
		return 0, lossy(v, want)
	}
	u := r.Num().Uint64()
	if bits < 64 && u > uint64(1)<<bits-1 {
		return 0, lossy(v, want)
	}
	return u, nil
}

func toFloat(v Value, bits int, want string) (float64, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, mismatch(v, want)
	}
	f, err := strconv.ParseFloat(string(n), bits)
	if err != nil {
		return 0, lossy(v, want)
	}
	return f, nil
}
