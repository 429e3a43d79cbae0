package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/vocabulary/dataspace"
	ssexport "github.com/c360studio/semstreams/vocabulary/export"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string

	serializer ssexport.Format
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
		serializer:  ssexport.Turtle,
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
		serializer:  ssexport.NTriples,
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".jsonld",
		Description: "JSON-LD - JSON for Linked Data",
		serializer:  ssexport.JSONLD,
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat accepts a format name or its file extension, with or without
// the leading dot.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for name, info := range FormatRegistry {
		if s == string(name) || "."+s == info.Extension || s == info.Extension {
			return name, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// IRI marks a triple object as a resource reference rather than a literal.
type IRI string

const xsdNS = "http://www.w3.org/2001/XMLSchema#"

// termKeyPrefix starts the entity keys handed to the serializer in place of
// IRIs. The serializer writes a string object as a resource only when it is
// an entity key, and maps keys back through the subject function.
const termKeyPrefix = "edc.dataspace.export.rdf.term.t"

// terms interns the subject and resource IRIs of one export.
type terms struct {
	keys map[string]string
	iris map[string]string
}

func newTerms() *terms {
	return &terms{
		keys: make(map[string]string),
		iris: make(map[string]string),
	}
}

// key returns the entity key standing for iri.
func (t *terms) key(iri string) string {
	iri = escapeIRI(iri)
	if k, ok := t.keys[iri]; ok {
		return k
	}
	k := termKeyPrefix + strconv.Itoa(len(t.keys))
	t.keys[iri] = k
	t.iris[k] = iri
	return k
}

// iri resolves a key produced by key.
func (t *terms) iri(key string) string {
	if iri, ok := t.iris[key]; ok {
		return iri
	}
	return escapeIRI(key)
}

// escapeIRI percent-encodes the bytes an IRIREF may not contain.
func escapeIRI(s string) string {
	const forbidden = "<>\"{}|^`\\"
	if !strings.ContainsFunc(s, func(r rune) bool {
		return r <= 0x20 || strings.ContainsRune(forbidden, r)
	}) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || strings.IndexByte(forbidden, c) >= 0 {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// objectTerm prepares a triple object for the serializer. Resource
// references become entity keys; strings carry an explicit xsd:string so an
// id-shaped literal is never read as a reference.
func objectTerm(obj any, datatype string, t *terms) (any, string) {
	if datatype != "" {
		return obj, datatype
	}
	switch v := obj.(type) {
	case IRI:
		return t.key(string(v)), ""
	case string:
		return v, "xsd:string"
	case json.Number:
		return numberTerm(v)
	default:
		return obj, ""
	}
}

// numberTerm keeps the lexical form of decimals and of integers too large
// for int64.
func numberTerm(n json.Number) (any, string) {
	s := n.String()
	switch {
	case strings.ContainsAny(s, "eE"):
		if f, err := n.Float64(); err == nil {
			return f, ""
		}
		return s, "xsd:double"
	case strings.Contains(s, "."):
		return s, "xsd:decimal"
	default:
		if i, err := n.Int64(); err == nil {
			return i, ""
		}
		return s, "xsd:integer"
	}
}

// compactJSONLD re-compacts serializer output against the dataspace
// prefixes.
func compactJSONLD(doc string) (string, error) {
	ctx := jsonld.Context(dataspace.Prefixes).With("xsd", xsdNS)
	compacted, err := jsonld.Compact([]byte(doc), ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(compacted, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode JSON-LD: %w", err)
	}
	return string(data) + "\n", nil
}
