package contract

import "github.com/c360studio/edcclient/policy"

// Agreement is the outcome of a finalized negotiation.
type Agreement struct {
	ID                  string        `json:"@id"`
	AssetID             string        `json:"assetId"`
	ConsumerID          string        `json:"consumerId"`
	ProviderID          string        `json:"providerId"`
	ContractSigningDate int64         `json:"contractSigningDate"`
	Policy              policy.Policy `json:"policy"`
}
