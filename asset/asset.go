// Package asset models the assets a connector offers and the data addresses
// that locate their content.
package asset

import (
	"github.com/c360studio/edcclient/properties"
)

// Asset is an asset stored by a connector.
type Asset struct {
	ID                string                `json:"@id"`
	Properties        properties.Properties `json:"properties"`
	PrivateProperties properties.Properties `json:"privateProperties"`
	DataAddress       DataAddress           `json:"dataAddress"`
}

// NewAsset is the create payload for an Asset. An empty ID lets the
// connector assign one.
type NewAsset struct {
	ID                string                `json:"@id,omitempty"`
	Properties        properties.Properties `json:"properties"`
	PrivateProperties properties.Properties `json:"privateProperties"`
	DataAddress       DataAddress           `json:"dataAddress"`
}

// New returns a create payload for an asset served from addr.
func New(id string, addr DataAddress) *NewAsset {
	return &NewAsset{ID: id, DataAddress: addr}
}

// WithProperty stores a public property and returns a.
func (a *NewAsset) WithProperty(key string, value any) *NewAsset {
	a.Properties.Set(key, value)
	return a
}

// WithPrivateProperty stores a private property and returns a.
func (a *NewAsset) WithPrivateProperty(key string, value any) *NewAsset {
	a.PrivateProperties.Set(key, value)
	return a
}

// WithProperty stores a public property and returns a. Use it to modify a
// fetched asset before an update.
func (a *Asset) WithProperty(key string, value any) *Asset {
	a.Properties.Set(key, value)
	return a
}

// WithPrivateProperty stores a private property and returns a.
func (a *Asset) WithPrivateProperty(key string, value any) *Asset {
	a.PrivateProperties.Set(key, value)
	return a
}

// Property reads a public property of a as a T.
func Property[T any](a *Asset, key string) (T, bool, error) {
	return properties.Get[T](&a.Properties, key)
}

// PrivateProperty reads a private property of a as a T.
func PrivateProperty[T any](a *Asset, key string) (T, bool, error) {
	return properties.Get[T](&a.PrivateProperties, key)
}
