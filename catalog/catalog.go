package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/query"
)

// Catalog is the root of a catalog response.
type Catalog struct {
	ID            string `json:"@id"`
	ParticipantID string `json:"dspace:participantId,omitempty"`

	// Children are the datasets and nested catalogs.
	Children []Node `json:"dcat:dataset"`

	// Services are the catalog's own data services.
	Services []Service `json:"dcat:service,omitempty"`
}

// FlattenDatasets concatenates the dataset projections of the children.
func (c *Catalog) FlattenDatasets() []Dataset {
	var out []Dataset
	for i := range c.Children {
		out = c.Children[i].appendDatasets(out)
	}
	return out
}

// FlattenServices concatenates the service projections of the children. The
// catalog's own Services are not included.
func (c *Catalog) FlattenServices() []Service {
	var out []Service
	for i := range c.Children {
		out = append(out, c.Children[i].FlattenServices()...)
	}
	return out
}

// FlattenDatasetsAndServices concatenates the combined projections of the
// children.
func (c *Catalog) FlattenDatasetsAndServices() []Entry {
	var out []Entry
	for i := range c.Children {
		out = c.Children[i].appendEntries(out)
	}
	return out
}

// UnmarshalJSON decodes a catalog. The @id is required; an absent dataset
// list decodes as empty.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID                  *string                   `json:"@id"`
		Dataset             jsonld.OneOrMany[Node]    `json:"dataset"`
		DCATDataset         jsonld.OneOrMany[Node]    `json:"dcat:dataset"`
		Service             jsonld.OneOrMany[Service] `json:"service"`
		DCATService         jsonld.OneOrMany[Service] `json:"dcat:service"`
		ParticipantID       *string                   `json:"participantId"`
		DSpaceParticipantID *string                   `json:"dspace:participantId"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.ID == nil {
		return fmt.Errorf("catalog: %w", ErrMissingID)
	}
	out := Catalog{
		ID:       *aux.ID,
		Children: either(aux.Dataset, aux.DCATDataset),
		Services: either(aux.Service, aux.DCATService),
	}
	if p := pick(aux.ParticipantID, aux.DSpaceParticipantID); p != nil {
		out.ParticipantID = *p
	}
	*c = out
	return nil
}

// Request asks a connector for the catalog of a counter-party.
type Request struct {
	CounterPartyAddress string       `json:"counterPartyAddress"`
	CounterPartyID      string       `json:"counterPartyId,omitempty"`
	Protocol            edc.Protocol `json:"protocol"`
	QuerySpec           query.Query  `json:"querySpec"`
}

// NewRequest returns a request for the first page of the catalog at address
// over the default protocol.
func NewRequest(address string) *Request {
	return &Request{CounterPartyAddress: address, QuerySpec: query.All()}
}

// WithCounterParty sets the participant id of the counter-party and returns r.
func (r *Request) WithCounterParty(id string) *Request {
	r.CounterPartyID = id
	return r
}

// WithQuery replaces the query and returns r.
func (r *Request) WithQuery(q query.Query) *Request {
	r.QuerySpec = q
	return r
}

// DatasetRequest asks a connector for a single dataset of a counter-party.
type DatasetRequest struct {
	ID                  string       `json:"@id"`
	CounterPartyAddress string       `json:"counterPartyAddress"`
	CounterPartyID      string       `json:"counterPartyId,omitempty"`
	Protocol            edc.Protocol `json:"protocol"`
}

// NewDatasetRequest returns a request for dataset id at address over the
// default protocol.
func NewDatasetRequest(id, address string) *DatasetRequest {
	return &DatasetRequest{ID: id, CounterPartyAddress: address}
}
