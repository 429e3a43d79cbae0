package jsonld

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/edcclient/properties"
)

// Envelope pairs a payload with the context it travels under. The payload
// must encode to a JSON object.
type Envelope[T any] struct {
	// Context is written as the "@context" member. A nil Context encodes as
	// DefaultContext. On decode it holds the received table when that table
	// is a plain prefix map, and is nil otherwise.
	Context Context

	Inner T
}

// Wrap returns v enveloped under ctx.
func Wrap[T any](ctx Context, v T) Envelope[T] {
	return Envelope[T]{Context: ctx, Inner: v}
}

// WithDefaultContext returns v enveloped under DefaultContext.
func WithDefaultContext[T any](v T) Envelope[T] {
	return Wrap(DefaultContext(), v)
}

// WithPolicyContext returns v enveloped under PolicyContext.
func WithPolicyContext[T any](v T) Envelope[T] {
	return Wrap(PolicyContext(), v)
}

// MarshalJSON writes {"@context": ..., <members of Inner>}. An "@context"
// member produced by Inner itself is dropped.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(e.Inner)
	if err != nil {
		return nil, err
	}
	var inner properties.Value
	if err := json.Unmarshal(data, &inner); err != nil {
		return nil, err
	}
	obj, ok := inner.AsObject()
	if !ok {
		return nil, fmt.Errorf("%w: payload encodes as %s", ErrNotObject, inner.Kind())
	}

	ctx := e.Context
	if ctx == nil {
		ctx = DefaultContext()
	}
	out := properties.New().Set(KeyContext, map[string]string(ctx))
	for key, v := range obj.All() {
		if key == KeyContext {
			continue
		}
		out.SetValue(key, v)
	}
	return json.Marshal(out)
}

// UnmarshalJSON removes the "@context" member and decodes the remaining
// members into Inner.
func (e *Envelope[T]) UnmarshalJSON(data []byte) error {
	var doc properties.Value
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	obj, ok := doc.AsObject()
	if !ok {
		return fmt.Errorf("%w: got %s", ErrNotObject, doc.Kind())
	}

	e.Context = nil
	if raw, found := obj.Raw(KeyContext); found {
		var table map[string]string
		if properties.Decode(raw, &table) == nil {
			e.Context = table
		}
		obj.Delete(KeyContext)
	}

	var inner T
	if err := json.Unmarshal([]byte(doc.String()), &inner); err != nil {
		return err
	}
	e.Inner = inner
	return nil
}

// Unwrap decodes an enveloped document and returns its payload.
func Unwrap[T any](data []byte) (T, error) {
	var env Envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Inner, nil
}

// UnwrapAll decodes a JSON array of enveloped documents.
func UnwrapAll[T any](data []byte) ([]T, error) {
	var envs []Envelope[T]
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, err
	}
	out := make([]T, len(envs))
	for i, env := range envs {
		out[i] = env.Inner
	}
	return out, nil
}
