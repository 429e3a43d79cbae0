package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a term that may be written either as a bare string or as a node
// reference {"@id": "..."}. Actions, targets, left operands and operators all
// use it. The written form is kept so a decoded Ref encodes back unchanged.
type Ref struct {
	ID string

	// Node is true when the reference is written as {"@id": ID}.
	Node bool
}

// Term returns a Ref written as a bare string.
func Term(id string) Ref {
	return Ref{ID: id}
}

// IRI returns a Ref written as a node reference.
func IRI(id string) Ref {
	return Ref{ID: id, Node: true}
}

func (r Ref) String() string {
	return r.ID
}

// MarshalJSON implements json.Marshaler.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Node {
		return json.Marshal(struct {
			ID string `json:"@id"`
		}{r.ID})
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var node struct {
			ID *string `json:"@id"`
		}
		if err := json.Unmarshal(trimmed, &node); err != nil {
			return err
		}
		if node.ID == nil {
			return fmt.Errorf("%w: object has no @id", ErrInvalidRef)
		}
		*r = IRI(*node.ID)
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRef, trimmed)
	}
	*r = Term(s)
	return nil
}
