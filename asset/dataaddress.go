package asset

import (
	"encoding/json"

	"github.com/c360studio/edcclient/properties"
)

// KeyType is the data address member naming its transport.
const KeyType = "type"

// Common data address types.
const (
	TypeHTTPData = "HttpData"
	TypeS3       = "AmazonS3"
)

// DataAddress locates the content of an asset. It is an open set of
// properties; only "type" is common to every address.
type DataAddress struct {
	props properties.Properties
}

// NewDataAddress returns an address of the given transport type.
func NewDataAddress(kind string) DataAddress {
	var d DataAddress
	d.props.Set(KeyType, kind)
	return d
}

// HTTPData returns an HttpData address pointing at baseURL.
func HTTPData(baseURL string) DataAddress {
	return NewDataAddress(TypeHTTPData).With("baseUrl", baseURL)
}

// Type returns the transport type, or "" if none is set.
func (d DataAddress) Type() string {
	kind, _, _ := properties.Get[string](&d.props, KeyType)
	return kind
}

// With returns a copy of d with key set to value.
func (d DataAddress) With(key string, value any) DataAddress {
	out := DataAddress{props: *d.props.Clone()}
	out.props.Set(key, value)
	return out
}

// Properties returns the underlying store.
func (d *DataAddress) Properties() *properties.Properties {
	return &d.props
}

// MarshalJSON implements json.Marshaler.
func (d DataAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.props)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *DataAddress) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &d.props)
}
