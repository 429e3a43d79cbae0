package jsonld

import (
	"bytes"
	"encoding/json"
)

// OneOrMany is a list that JSON-LD may compact to a single value. It decodes
// from either a lone value or an array and always encodes as an array.
type OneOrMany[T any] []T

// MarshalJSON implements json.Marshaler.
func (m OneOrMany[T]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(m))
}

// UnmarshalJSON implements json.Unmarshaler. JSON null decodes to an empty list.
func (m *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*m = nil
		return nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*m = items
		return nil
	default:
		var item T
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return err
		}
		*m = OneOrMany[T]{item}
		return nil
	}
}
