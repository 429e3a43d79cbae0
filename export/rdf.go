// Package export serializes flattened catalog records as RDF in Turtle,
// N-Triples or JSON-LD.
package export

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/c360studio/edcclient/catalog"
	"github.com/c360studio/edcclient/properties"
	"github.com/c360studio/edcclient/vocabulary/dataspace"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"
	ssexport "github.com/c360studio/semstreams/vocabulary/export"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// DefaultBase is prepended to record ids that are not already IRIs.
const DefaultBase = "urn:edc:"

// source tags every triple the exporter produces.
const source = "edcclient.export"

// Entity represents an exportable resource with its type IRIs and triples.
// Triple subjects are ignored: every triple is asserted about ID. Predicates
// are registered vocabulary predicates, prefixed names or full IRIs; an
// IRI object marks a resource reference.
type Entity struct {
	ID      string
	Types   []string
	Triples []message.Triple
}

// RDFExporter collects catalog records and serializes them.
type RDFExporter struct {
	profile  ProfileConfig
	base     string
	entities []Entity
	prefixes map[string]string
}

// Option configures an RDFExporter.
type Option func(*RDFExporter)

// WithBase sets the namespace for record ids that are not IRIs.
func WithBase(base string) Option {
	return func(e *RDFExporter) {
		e.base = base
	}
}

// NewRDFExporter creates a new RDF exporter with the specified profile.
// Unknown profiles export as ProfileMinimal.
func NewRDFExporter(profile Profile, opts ...Option) *RDFExporter {
	config, ok := GetProfileConfig(profile)
	if !ok {
		config = Profiles[ProfileMinimal]
	}
	e := &RDFExporter{
		profile:  config,
		base:     DefaultBase,
		entities: make([]Entity, 0),
		prefixes: defaultPrefixes(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// defaultPrefixes returns the dataspace namespaces plus XSD.
func defaultPrefixes() map[string]string {
	prefixes := maps.Clone(dataspace.Prefixes)
	prefixes["xsd"] = xsdNS
	return prefixes
}

// Profile returns the active profile configuration.
func (e *RDFExporter) Profile() ProfileConfig {
	return e.profile
}

// Len returns the number of collected entities.
func (e *RDFExporter) Len() int {
	return len(e.entities)
}

// AddEntity adds an entity to be exported. Its id and types are resolved to
// IRIs at export time.
func (e *RDFExporter) AddEntity(entity Entity) {
	e.entities = append(e.entities, entity)
}

// AddDataset adds a flattened dataset record.
func (e *RDFExporter) AddDataset(ds catalog.Dataset) {
	triples := e.commonTriples(ds.CommonProperties)
	if e.profile.IncludeTypeTags {
		for _, tag := range ds.DCTermsTypes {
			triples = append(triples, triple(dataspace.ResourceType, tag))
		}
	}
	if e.profile.IncludePolicies {
		for _, p := range ds.Policies {
			if p.ID != "" {
				triples = append(triples, triple(dataspace.DatasetPolicy, IRI(e.subjectIRI(p.ID))))
			}
		}
	}
	triples = append(triples, e.extensionTriples(&ds.Extensions)...)

	e.entities = append(e.entities, Entity{
		ID:      ds.ID,
		Types:   withClass(ds.Types, dataspace.ClassDataset),
		Triples: triples,
	})
}

// AddService adds a data service record.
func (e *RDFExporter) AddService(svc catalog.Service) {
	triples := e.commonTriples(svc.CommonProperties)
	if svc.EndpointURL != nil {
		triples = append(triples, triple(dataspace.ServiceEndpointURL, IRI(*svc.EndpointURL)))
	}
	if svc.EndpointDescription != nil {
		triples = append(triples, triple(dataspace.ServiceEndpointDescription, *svc.EndpointDescription))
	}
	triples = append(triples, e.extensionTriples(&svc.Extensions)...)

	e.entities = append(e.entities, Entity{
		ID:      svc.ID,
		Types:   withClass(svc.Types, dataspace.ClassDataService),
		Triples: triples,
	})
}

// AddEntries adds the records of a combined projection.
func (e *RDFExporter) AddEntries(entries []catalog.Entry) {
	for _, entry := range entries {
		switch {
		case entry.Dataset != nil:
			e.AddDataset(*entry.Dataset)
		case entry.Service != nil:
			e.AddService(*entry.Service)
		}
	}
}

// AddCatalog adds the catalog itself, its own services, and the combined
// projection of its children. The catalog entity links every exported
// dataset and service.
func (e *RDFExporter) AddCatalog(c *catalog.Catalog) {
	entries := c.FlattenDatasetsAndServices()

	var triples []message.Triple
	if c.ParticipantID != "" {
		triples = append(triples, triple(dataspace.CatalogParticipant, c.ParticipantID))
	}
	for _, svc := range c.Services {
		triples = append(triples, triple(dataspace.CatalogService, IRI(e.subjectIRI(svc.ID))))
	}
	for _, entry := range entries {
		predicate := dataspace.CatalogDataset
		if entry.Service != nil {
			predicate = dataspace.CatalogService
		}
		triples = append(triples, triple(predicate, IRI(e.subjectIRI(entry.ID()))))
	}

	e.entities = append(e.entities, Entity{
		ID:      c.ID,
		Types:   []string{dataspace.ClassCatalog},
		Triples: triples,
	})
	for _, svc := range c.Services {
		e.AddService(svc)
	}
	e.AddEntries(entries)
}

func (e *RDFExporter) commonTriples(c catalog.CommonProperties) []message.Triple {
	var triples []message.Triple
	if c.Title != nil {
		triples = append(triples, triple(dataspace.ResourceTitle, *c.Title))
	}
	if c.Comment != nil {
		triples = append(triples, triple(dataspace.ResourceComment, *c.Comment))
	}
	for _, kw := range c.Keywords {
		triples = append(triples, triple(dataspace.ResourceKeyword, kw))
	}
	if c.Version != nil {
		triples = append(triples, triple(dataspace.ResourceVersion, c.Version.String()))
	}
	if c.Creator != nil && c.Creator.Name != nil {
		triples = append(triples, triple(dataspace.ResourceCreator, *c.Creator.Name))
	}
	if c.Thumbnail != nil && c.Thumbnail.Resource != "" {
		triples = append(triples, triple(dataspace.ResourceThumbnail, IRI(c.Thumbnail.Resource)))
	}
	return triples
}

// extensionTriples turns scalar extension members into literals. Arrays
// yield one triple per scalar item; objects are written as JSON text.
func (e *RDFExporter) extensionTriples(ext *properties.Properties) []message.Triple {
	if !e.profile.IncludeExtensions {
		return nil
	}
	var triples []message.Triple
	for key, v := range ext.All() {
		items := []properties.Value{v}
		if arr, ok := v.AsArray(); ok {
			items = arr
		}
		for _, item := range items {
			if obj, ok := literal(item); ok {
				triples = append(triples, triple(key, obj))
			}
		}
	}
	return triples
}

func literal(v properties.Value) (any, bool) {
	switch v.Kind() {
	case properties.KindString:
		s, _ := v.AsString()
		return s, true
	case properties.KindNumber:
		n, _ := v.AsNumber()
		return n, true
	case properties.KindBool:
		b, _ := v.AsBool()
		return b, true
	case properties.KindObject, properties.KindArray:
		return v.String(), true
	default:
		return nil, false
	}
}

// withClass returns types with class appended when no tag already names it.
func withClass(types []string, class string) []string {
	out := slices.Clone(types)
	for _, t := range types {
		if expandTerm(t, dataspace.Prefixes) == class {
			return out
		}
	}
	return append(out, class)
}

// Export serializes all entities to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	info, ok := GetFormatInfo(format)
	if !ok {
		return "", fmt.Errorf("unsupported format: %s", format)
	}

	t := newTerms()
	out, err := ssexport.SerializeToString(e.resolve(t), info.serializer,
		ssexport.WithBaseIRI(e.base),
		ssexport.WithSubjectIRIFunc(t.iri))
	if err != nil {
		return "", fmt.Errorf("serialize %s: %w", format, err)
	}
	if format == FormatJSONLD {
		return compactJSONLD(out)
	}
	return out, nil
}

// resolve turns the collected entities into serializer triples, interning
// subjects and resource objects in t.
func (e *RDFExporter) resolve(t *terms) []message.Triple {
	var out []message.Triple
	for _, entity := range e.entities {
		subject := t.key(e.subjectIRI(entity.ID))
		for _, class := range e.typeIRIs(entity) {
			tr := triple(dataspace.ResourceClass, t.key(class))
			tr.Subject = subject
			out = append(out, tr)
		}
		for _, tr := range entity.Triples {
			tr.Subject = subject
			tr.Predicate = e.predicate(tr.Predicate)
			tr.Object, tr.Datatype = objectTerm(tr.Object, tr.Datatype, t)
			out = append(out, tr)
		}
	}
	return out
}

func triple(predicate string, object any) message.Triple {
	return message.Triple{
		Predicate:  predicate,
		Object:     object,
		Source:     source,
		Confidence: 1.0,
	}
}

func (e *RDFExporter) typeIRIs(entity Entity) []string {
	types := make([]string, 0, len(entity.Types))
	for _, t := range entity.Types {
		iri := expandTerm(t, e.prefixes)
		if !slices.Contains(types, iri) {
			types = append(types, iri)
		}
	}
	return types
}

// predicate returns a registered predicate name for p. Prefixed names and
// IRIs are registered under their expanded IRI on first use.
func (e *RDFExporter) predicate(p string) string {
	if meta := vocabulary.GetPredicateMetadata(p); meta != nil && meta.StandardIRI != "" {
		return p
	}
	iri := escapeIRI(expandTerm(p, e.prefixes))
	if vocabulary.GetPredicateMetadata(iri) == nil {
		vocabulary.Register(iri,
			vocabulary.WithDescription("Catalog member "+p),
			vocabulary.WithIRI(iri))
	}
	return iri
}

// subjectIRI keeps absolute ids and places the rest under the base.
func (e *RDFExporter) subjectIRI(id string) string {
	if isAbsolute(id) {
		return id
	}
	return e.base + url.PathEscape(id)
}

// expandTerm resolves a prefixed name against prefixes. Full IRIs are kept
// and bare terms fall into the connector vocabulary.
func expandTerm(term string, prefixes map[string]string) string {
	if isAbsolute(term) {
		return term
	}
	if prefix, local, ok := strings.Cut(term, ":"); ok {
		if ns, known := prefixes[prefix]; known {
			return ns + local
		}
	}
	return dataspace.EDC + term
}

// isAbsolute reports whether s is an http(s) or urn IRI. Connector ids
// routinely contain colons, so a scheme alone is not enough.
func isAbsolute(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "urn:")
}
