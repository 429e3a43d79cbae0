// Package edc holds the small value types shared by management API payloads.
package edc

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/properties"
)

// Protocol names the wire protocol a connector uses to reach its counter-party.
type Protocol string

// ProtocolDSP is the dataspace protocol over HTTP, the default.
const ProtocolDSP Protocol = "dataspace-protocol-http"

// OrDefault returns p, or ProtocolDSP when p is empty.
func (p Protocol) OrDefault() Protocol {
	if p == "" {
		return ProtocolDSP
	}
	return p
}

// MarshalJSON writes the protocol, substituting ProtocolDSP for an empty value.
func (p Protocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p.OrDefault()))
}

// CallbackAuth carries credentials the connector presents to a callback.
type CallbackAuth struct {
	AuthKey    string `json:"authKey"`
	AuthCodeID string `json:"authCodeId"`
}

// CallbackAddress is an endpoint notified on negotiation and transfer events.
// Auth members, when set, are written inline next to the address fields.
type CallbackAddress struct {
	*CallbackAuth

	Transactional bool                     `json:"transactional"`
	URI           string                   `json:"uri"`
	Events        jsonld.OneOrMany[string] `json:"events"`
}

// NewCallbackAddress returns a non-transactional callback for events.
func NewCallbackAddress(uri string, events ...string) CallbackAddress {
	return CallbackAddress{URI: uri, Events: events}
}

// WithAuth returns a copy of c that authenticates with key and the secret
// stored under codeID.
func (c CallbackAddress) WithAuth(key, codeID string) CallbackAddress {
	c.CallbackAuth = &CallbackAuth{AuthKey: key, AuthCodeID: codeID}
	return c
}

// IDResponse is returned by create operations.
type IDResponse struct {
	ID        string `json:"@id"`
	CreatedAt int64  `json:"createdAt"`
}

// Role is the side a connector plays in a negotiation or transfer.
type Role string

const (
	RoleConsumer Role = "CONSUMER"
	RoleProvider Role = "PROVIDER"
)

// UnmarshalJSON rejects roles other than CONSUMER and PROVIDER.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role, err := parseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// PropertyValue implements properties.Marshaler.
func (r Role) PropertyValue() properties.Value {
	return properties.String(string(r))
}

// SetPropertyValue implements properties.Unmarshaler with the same check as
// UnmarshalJSON.
func (r *Role) SetPropertyValue(v properties.Value) error {
	s, ok := v.AsString()
	if !ok {
		return &properties.ConversionError{Want: "edc.Role", Got: v.Kind()}
	}
	role, err := parseRole(s)
	if err != nil {
		return &properties.ConversionError{Want: "edc.Role", Got: v.Kind(), Err: err}
	}
	*r = role
	return nil
}

func parseRole(s string) (Role, error) {
	switch role := Role(s); role {
	case RoleConsumer, RoleProvider:
		return role, nil
	}
	return "", fmt.Errorf("edc: unknown role %q", s)
}
