package contract

import (
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/properties"
	"github.com/c360studio/edcclient/query"
)

// Definition is a contract definition stored by a connector.
type Definition struct {
	ID                string                            `json:"@id"`
	AccessPolicyID    string                            `json:"accessPolicyId"`
	ContractPolicyID  string                            `json:"contractPolicyId"`
	AssetsSelector    jsonld.OneOrMany[query.Criterion] `json:"assetsSelector"`
	PrivateProperties properties.Properties             `json:"privateProperties"`
}

// NewDefinition is the create payload for a Definition. An empty ID lets
// the connector assign one. An empty selector matches every asset.
type NewDefinition struct {
	ID                string                `json:"@id,omitempty"`
	AccessPolicyID    string                `json:"accessPolicyId"`
	ContractPolicyID  string                `json:"contractPolicyId"`
	AssetsSelector    []query.Criterion     `json:"assetsSelector"`
	PrivateProperties properties.Properties `json:"privateProperties"`
}

// Define returns a create payload offering assets under the two policies.
func Define(id, accessPolicyID, contractPolicyID string) *NewDefinition {
	return &NewDefinition{
		ID:               id,
		AccessPolicyID:   accessPolicyID,
		ContractPolicyID: contractPolicyID,
		AssetsSelector:   []query.Criterion{},
	}
}

// Select appends an asset selector criterion and returns d.
func (d *NewDefinition) Select(left, operator string, right any) *NewDefinition {
	d.AssetsSelector = append(d.AssetsSelector, query.NewCriterion(left, operator, right))
	return d
}

// WithPrivateProperty stores a private property and returns d.
func (d *NewDefinition) WithPrivateProperty(key string, value any) *NewDefinition {
	d.PrivateProperties.Set(key, value)
	return d
}
