package policy

import "github.com/c360studio/edcclient/properties"

// Definition is a policy stored by a connector under an id, referenced by
// contract definitions.
type Definition struct {
	ID                string                `json:"@id"`
	Policy            Policy                `json:"policy"`
	PrivateProperties properties.Properties `json:"privateProperties"`
}

// NewDefinition is the create payload for a Definition. An empty ID lets the
// connector assign one.
type NewDefinition struct {
	ID                string                `json:"@id,omitempty"`
	Policy            Policy                `json:"policy"`
	PrivateProperties properties.Properties `json:"privateProperties"`
}

// Define returns a create payload for p.
func Define(id string, p *Policy) *NewDefinition {
	return &NewDefinition{ID: id, Policy: *p}
}

// WithPrivateProperty stores a private property and returns d.
func (d *NewDefinition) WithPrivateProperty(key string, value any) *NewDefinition {
	d.PrivateProperties.Set(key, value)
	return d
}
