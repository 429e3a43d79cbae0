package catalog

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/policy"
	"github.com/c360studio/edcclient/properties"
	"github.com/c360studio/edcclient/vocabulary/dataspace"
)

// Node is an entry of a catalog's "dataset" list: a dataset, a nested
// catalog, or a node that is neither and only groups children.
type Node struct {
	ID           string          `json:"@id"`
	Types        []string        `json:"@type"`
	Policies     []policy.Policy `json:"odrl:hasPolicy,omitempty"`
	Children     []Node          `json:"dcat:dataset,omitempty"`
	Services     []Service       `json:"dcat:service,omitempty"`
	DCTermsTypes []string        `json:"dct:type,omitempty"`

	CommonProperties

	// Extensions holds members with no dedicated field, in document order.
	Extensions properties.Properties `json:"-"`
}

// Service is a data service through which datasets are served.
type Service struct {
	ID                  string   `json:"@id"`
	Types               []string `json:"@type"`
	EndpointURL         *string  `json:"dcat:endpointURL,omitempty"`
	EndpointDescription *string  `json:"dcat:endpointDescription,omitempty"`

	CommonProperties

	// Extensions holds members with no dedicated field, in document order.
	Extensions properties.Properties `json:"-"`
}

// Dataset is a dataset record produced by flattening.
type Dataset struct {
	ID           string          `json:"@id"`
	Types        []string        `json:"@type"`
	DCTermsTypes []string        `json:"dct:type,omitempty"`
	Policies     []policy.Policy `json:"odrl:hasPolicy,omitempty"`

	CommonProperties

	// Extensions holds members with no dedicated field, in document order.
	Extensions properties.Properties `json:"-"`
}

// Entry is one element of the combined projection. Exactly one of Dataset
// and Service is set.
type Entry struct {
	Dataset *Dataset `json:"dataset,omitempty"`
	Service *Service `json:"service,omitempty"`
}

// ID returns the id of whichever record the entry holds.
func (e Entry) ID() string {
	if e.Dataset != nil {
		return e.Dataset.ID
	}
	if e.Service != nil {
		return e.Service.ID
	}
	return ""
}

// Type tags that mark a node as a catalog or a dataset.
var (
	catalogTags = []string{dataspace.TagCatalog, dataspace.ClassCatalog, "Catalog"}
	datasetTags = []string{dataspace.TagDataset, dataspace.ClassDataset, "Dataset"}
)

// IsCatalog reports whether the node is tagged as a catalog.
func (n *Node) IsCatalog() bool {
	return hasAny(n.Types, catalogTags)
}

// IsDataset reports whether the node is tagged as a dataset. A node may be
// both a catalog and a dataset.
func (n *Node) IsDataset() bool {
	return hasAny(n.Types, datasetTags)
}

func hasAny(types, tags []string) bool {
	for _, t := range types {
		if slices.Contains(tags, t) {
			return true
		}
	}
	return false
}

// dataset materializes the node as a dataset record.
func (n *Node) dataset() Dataset {
	return Dataset{
		ID:               n.ID,
		Types:            n.Types,
		DCTermsTypes:     n.DCTermsTypes,
		Policies:         n.Policies,
		CommonProperties: n.CommonProperties,
		Extensions:       *n.Extensions.Clone(),
	}
}

// MarshalJSON writes the dedicated fields followed by the extensions.
func (n Node) MarshalJSON() ([]byte, error) {
	type plain Node
	return withExtensions(plain(n), &n.Extensions)
}

// MarshalJSON writes the dedicated fields followed by the extensions.
func (s Service) MarshalJSON() ([]byte, error) {
	type plain Service
	return withExtensions(plain(s), &s.Extensions)
}

// MarshalJSON writes the dedicated fields followed by the extensions.
func (d Dataset) MarshalJSON() ([]byte, error) {
	type plain Dataset
	return withExtensions(plain(d), &d.Extensions)
}

// withExtensions appends the members of ext to the encoding of record. A
// member already written by a dedicated field wins.
func withExtensions(record any, ext *properties.Properties) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil || ext.Len() == 0 {
		return data, err
	}
	var out properties.Properties
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	for key, v := range ext.All() {
		if _, ok := out.Raw(key); !ok {
			out.SetValue(key, v)
		}
	}
	return json.Marshal(out)
}

type nodeJSON struct {
	ID            *string                         `json:"@id"`
	Type          jsonld.OneOrMany[string]        `json:"type"`
	AtType        jsonld.OneOrMany[string]        `json:"@type"`
	HasPolicy     jsonld.OneOrMany[policy.Policy] `json:"hasPolicy"`
	ODRLHasPolicy jsonld.OneOrMany[policy.Policy] `json:"odrl:hasPolicy"`
	ODRLPolicy    jsonld.OneOrMany[policy.Policy] `json:"odrl:policy"`
	Dataset       jsonld.OneOrMany[Node]          `json:"dataset"`
	DCATDataset   jsonld.OneOrMany[Node]          `json:"dcat:dataset"`
	Service       jsonld.OneOrMany[Service]       `json:"service"`
	DCATService   jsonld.OneOrMany[Service]       `json:"dcat:service"`
	DCTermsType   jsonld.OneOrMany[string]        `json:"dcterms_type"`
	DCTType       jsonld.OneOrMany[string]        `json:"dct:type"`
	commonJSON
}

// UnmarshalJSON decodes a node and its subtree. Members are accepted under
// their plain and prefixed names. A node must have an @id and type tags.
func (n *Node) UnmarshalJSON(data []byte) error {
	var aux nodeJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == nil {
		return ErrMissingID
	}
	types := either(aux.Type, aux.AtType)
	if types == nil {
		return fmt.Errorf("%w: node %q", ErrMissingType, *aux.ID)
	}
	common, err := aux.common()
	if err != nil {
		return fmt.Errorf("node %q: %w", *aux.ID, err)
	}
	policies := either(aux.HasPolicy, aux.ODRLHasPolicy)
	if policies == nil {
		policies = aux.ODRLPolicy
	}
	*n = Node{
		ID:               *aux.ID,
		Types:            types,
		Policies:         policies,
		Children:         either(aux.Dataset, aux.DCATDataset),
		Services:         either(aux.Service, aux.DCATService),
		DCTermsTypes:     either(aux.DCTermsType, aux.DCTType),
		CommonProperties: common,
	}
	return extensions(data, nodeKeys, &n.Extensions)
}

type serviceJSON struct {
	ID                      *string                  `json:"@id"`
	Type                    jsonld.OneOrMany[string] `json:"type"`
	AtType                  jsonld.OneOrMany[string] `json:"@type"`
	EndpointURL             *string                  `json:"endpointURL"`
	DCATEndpointURL         *string                  `json:"dcat:endpointURL"`
	EndpointDescription     *string                  `json:"endpointDescription"`
	DCATEndpointDescription *string                  `json:"dcat:endpointDescription"`
	commonJSON
}

// UnmarshalJSON decodes a service. A service must have an @id and type tags.
func (s *Service) UnmarshalJSON(data []byte) error {
	var aux serviceJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == nil {
		return fmt.Errorf("service: %w", ErrMissingID)
	}
	types := either(aux.Type, aux.AtType)
	if types == nil {
		return fmt.Errorf("%w: service %q", ErrMissingType, *aux.ID)
	}
	common, err := aux.common()
	if err != nil {
		return fmt.Errorf("service %q: %w", *aux.ID, err)
	}
	*s = Service{
		ID:                  *aux.ID,
		Types:               types,
		EndpointURL:         pick(aux.EndpointURL, aux.DCATEndpointURL),
		EndpointDescription: pick(aux.EndpointDescription, aux.DCATEndpointDescription),
		CommonProperties:    common,
	}
	return extensions(data, serviceKeys, &s.Extensions)
}

// Members consumed by dedicated fields. Everything else is an extension.
var (
	commonKeys = []string{
		"@context",
		"title", "dct:title",
		"comment", "rdfs:comment",
		"keyword", "dcat:keyword",
		"thumbnail", "foaf:thumbnail", "http://xmlns.com/foaf/0.1/thumbnail",
		"creator", "dct:creator",
		"version", "dcat:version",
	}
	nodeKeys = append([]string{
		"@id", "type", "@type",
		"hasPolicy", "odrl:hasPolicy", "odrl:policy",
		"dataset", "dcat:dataset",
		"service", "dcat:service",
		"dcterms_type", "dct:type",
	}, commonKeys...)
	serviceKeys = append([]string{
		"@id", "type", "@type",
		"endpointURL", "dcat:endpointURL",
		"endpointDescription", "dcat:endpointDescription",
	}, commonKeys...)
)

// extensions stores the members of data not named in known into dst.
func extensions(data []byte, known []string, dst *properties.Properties) error {
	var all properties.Properties
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, key := range known {
		all.Delete(key)
	}
	*dst = all
	return nil
}
