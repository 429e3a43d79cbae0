// Package secret models entries in a connector's vault.
package secret

// Secret is a stored secret.
type Secret struct {
	ID    string `json:"@id"`
	Value string `json:"value"`
}

// NewSecret is the create payload for a Secret. An empty ID lets the
// connector assign one.
type NewSecret struct {
	ID    string `json:"@id,omitempty"`
	Value string `json:"value"`
}

// New returns a create payload storing value under id.
func New(id, value string) *NewSecret {
	return &NewSecret{ID: id, Value: value}
}
