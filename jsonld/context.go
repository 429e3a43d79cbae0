package jsonld

import (
	"maps"

	"github.com/c360studio/edcclient/vocabulary/dataspace"
)

// KeyContext is the JSON-LD context member.
const KeyContext = "@context"

// Context is a namespace prefix table. It encodes as a JSON object with keys
// in sorted order.
type Context map[string]string

// DefaultContext returns the table used by most payloads: the connector
// vocabulary as @vocab.
func DefaultContext() Context {
	return Context{"@vocab": dataspace.EDC}
}

// PolicyContext returns the table used by payloads that embed ODRL policies.
func PolicyContext() Context {
	return Context{
		"@vocab": dataspace.EDC,
		"odrl":   dataspace.ODRL,
	}
}

// With returns a copy of c with prefix bound to iri.
func (c Context) With(prefix, iri string) Context {
	out := maps.Clone(c)
	if out == nil {
		out = Context{}
	}
	out[prefix] = iri
	return out
}

// Document returns c as a standalone {"@context": ...} document for the
// json-gold processor.
func (c Context) Document() map[string]any {
	inner := make(map[string]any, len(c))
	for k, v := range c {
		inner[k] = v
	}
	return map[string]any{KeyContext: inner}
}
