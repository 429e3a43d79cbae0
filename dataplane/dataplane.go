// Package dataplane models the data planes registered with a connector.
package dataplane

import (
	"slices"

	"github.com/c360studio/edcclient/properties"
)

// State is the registration state of a data plane.
type State string

const (
	StateRegistered   State = "REGISTERED"
	StateAvailable    State = "AVAILABLE"
	StateUnavailable  State = "UNAVAILABLE"
	StateUnregistered State = "UNREGISTERED"
)

// Instance is a data plane known to the control plane.
type Instance struct {
	ID                   string                `json:"@id"`
	URL                  string                `json:"url"`
	AllowedSourceTypes   []string              `json:"allowedSourceTypes"`
	AllowedTransferTypes []string              `json:"allowedTransferTypes"`
	State                State                 `json:"state,omitempty"`
	StateTimestamp       int64                 `json:"stateTimestamp,omitempty"`
	Properties           properties.Properties `json:"properties"`
}

// Supports reports whether the instance can serve transferType from
// sourceType.
func (i *Instance) Supports(sourceType, transferType string) bool {
	return slices.Contains(i.AllowedSourceTypes, sourceType) &&
		slices.Contains(i.AllowedTransferTypes, transferType)
}
