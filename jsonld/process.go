package jsonld

import (
	"encoding/json"
	"fmt"

	"github.com/piprate/json-gold/ld"
)

// Expand runs JSON-LD expansion over a document, resolving every compact
// term against its context into a full IRI.
func Expand(data []byte) ([]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	proc := ld.NewJsonLdProcessor()
	expanded, err := proc.Expand(doc, ld.NewJsonLdOptions(""))
	if err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	return expanded, nil
}

// Compact re-compacts a document against ctx. Documents from other
// connectors may use different prefixes for the same IRIs; compacting them
// against a known table normalizes their terms.
func Compact(data []byte, ctx Context) (map[string]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	proc := ld.NewJsonLdProcessor()
	compacted, err := proc.Compact(doc, ctx.Document(), ld.NewJsonLdOptions(""))
	if err != nil {
		return nil, fmt.Errorf("compact: %w", err)
	}
	return compacted, nil
}
