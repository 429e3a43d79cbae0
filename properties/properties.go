package properties

import (
	"iter"
	"slices"
)

// Properties is an ordered mapping from keys to values. Keys are unique and
// keep the order in which they were first set. The zero value is an empty,
// ready to use store.
type Properties struct {
	keys   []string
	values map[string]Value
}

// New returns an empty store.
func New() *Properties {
	return &Properties{}
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return slices.Clone(p.keys)
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.Raw(key)
	return ok
}

// Raw returns the stored value for key without any conversion.
func (p *Properties) Raw(key string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Set converts value with ValueOf and stores it under key, replacing any
// previous value. It returns p for chaining.
func (p *Properties) Set(key string, value any) *Properties {
	return p.SetValue(key, ValueOf(value))
}

// SetValue stores v under key, replacing any previous value. A replaced key
// keeps its original position.
func (p *Properties) SetValue(key string, v Value) *Properties {
	if p.values == nil {
		p.values = make(map[string]Value)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
	return p
}

// Delete removes key and reports whether it was present.
func (p *Properties) Delete(key string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.values[key]; !ok {
		return false
	}
	delete(p.values, key)
	if i := slices.Index(p.keys, key); i >= 0 {
		p.keys = slices.Delete(p.keys, i, i+1)
	}
	return true
}

// All iterates over the entries in insertion order.
func (p *Properties) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if p == nil {
			return
		}
		for _, key := range p.keys {
			if !yield(key, p.values[key]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of p.
func (p *Properties) Clone() *Properties {
	out := New()
	for key, v := range p.All() {
		out.SetValue(key, v.clone())
	}
	return out
}

// Equal reports whether p and other hold equal values under the same keys.
// Key order is not significant.
func (p *Properties) Equal(other *Properties) bool {
	return compareObjects(p, other) == 0
}

// Get reads key as a T. An absent key returns ok == false and a nil error. A
// value that cannot be represented as T returns a *ConversionError.
func Get[T any](p *Properties, key string) (value T, ok bool, err error) {
	raw, found := p.Raw(key)
	if !found {
		return value, false, nil
	}
	var out T
	if err := Decode(raw, &out); err != nil {
		return value, false, at(err, key)
	}
	return out, true, nil
}

