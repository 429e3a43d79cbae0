package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/c360studio/edcclient/jsonld"
)

// CommonProperties are the descriptive members shared by catalogs, datasets
// and services. Absent members are nil.
type CommonProperties struct {
	Title     *string         `json:"dct:title,omitempty"`
	Comment   *string         `json:"rdfs:comment,omitempty"`
	Keywords  []string        `json:"dcat:keyword,omitempty"`
	Thumbnail *Thumbnail      `json:"foaf:thumbnail,omitempty"`
	Creator   *Creator        `json:"dct:creator,omitempty"`
	Version   *semver.Version `json:"dcat:version,omitempty"`
}

// HasTitle reports whether a title is present.
func (c CommonProperties) HasTitle() bool {
	return c.Title != nil
}

// TitleOr returns the title, or fallback when there is none.
func (c CommonProperties) TitleOr(fallback string) string {
	if c.Title == nil {
		return fallback
	}
	return *c.Title
}

// Creator names the publisher of a resource.
type Creator struct {
	Name      *string    `json:"foaf:name,omitempty"`
	Thumbnail *Thumbnail `json:"foaf:thumbnail,omitempty"`
}

// Thumbnail points at an image.
type Thumbnail struct {
	Resource string `json:"rdf:resource"`
}

// commonJSON is embedded into the decoding structs of every catalog entity.
// Each member is accepted under its plain name and its prefixed name.
type commonJSON struct {
	Title         *string                  `json:"title"`
	DCTTitle      *string                  `json:"dct:title"`
	Comment       *string                  `json:"comment"`
	RDFSComment   *string                  `json:"rdfs:comment"`
	Keyword       jsonld.OneOrMany[string] `json:"keyword"`
	DCATKeyword   jsonld.OneOrMany[string] `json:"dcat:keyword"`
	Thumbnail     *Thumbnail               `json:"thumbnail"`
	FOAFThumbnail *Thumbnail               `json:"foaf:thumbnail"`
	IRIThumbnail  *Thumbnail               `json:"http://xmlns.com/foaf/0.1/thumbnail"`
	Creator       *Creator                 `json:"creator"`
	DCTCreator    *Creator                 `json:"dct:creator"`
	Version       *string                  `json:"version"`
	DCATVersion   *string                  `json:"dcat:version"`
}

func (c commonJSON) common() (CommonProperties, error) {
	out := CommonProperties{
		Title:     pick(c.Title, c.DCTTitle),
		Comment:   pick(c.Comment, c.RDFSComment),
		Keywords:  either(c.Keyword, c.DCATKeyword),
		Thumbnail: pick(c.Thumbnail, c.FOAFThumbnail, c.IRIThumbnail),
		Creator:   pick(c.Creator, c.DCTCreator),
	}
	if raw := pick(c.Version, c.DCATVersion); raw != nil {
		v, err := semver.StrictNewVersion(*raw)
		if err != nil {
			return CommonProperties{}, fmt.Errorf("%w %q: %v", ErrInvalidVersion, *raw, err)
		}
		out.Version = v
	}
	return out, nil
}

// UnmarshalJSON accepts "name", "foaf:name" and the full FOAF IRI.
func (c *Creator) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name          *string    `json:"name"`
		FOAFName      *string    `json:"foaf:name"`
		IRIName       *string    `json:"http://xmlns.com/foaf/0.1/name"`
		Thumbnail     *Thumbnail `json:"thumbnail"`
		FOAFThumbnail *Thumbnail `json:"foaf:thumbnail"`
		IRIThumbnail  *Thumbnail `json:"http://xmlns.com/foaf/0.1/thumbnail"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Creator{
		Name:      pick(aux.Name, aux.FOAFName, aux.IRIName),
		Thumbnail: pick(aux.Thumbnail, aux.FOAFThumbnail, aux.IRIThumbnail),
	}
	return nil
}

// UnmarshalJSON accepts "resource", "rdf:resource" and the full RDF IRI, or a
// bare IRI string.
func (t *Thumbnail) UnmarshalJSON(data []byte) error {
	var aux struct {
		Resource    *string `json:"resource"`
		RDFResource *string `json:"rdf:resource"`
		IRIResource *string `json:"http://www.w3.org/1999/02/22-rdf-syntax-ns#resource"`
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &t.Resource)
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r := pick(aux.Resource, aux.RDFResource, aux.IRIResource); r != nil {
		t.Resource = *r
	}
	return nil
}

// pick returns the first non-nil pointer.
func pick[T any](candidates ...*T) *T {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// either returns primary when the member was present, else alias.
func either[T any](primary, alias jsonld.OneOrMany[T]) []T {
	if primary != nil {
		return primary
	}
	return alias
}
