// Package transfer models transfer processes started from a contract
// agreement.
package transfer

import (
	"github.com/c360studio/edcclient/asset"
	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/properties"
)

// Common transfer types.
const (
	TypeHTTPPull = "HttpData-PULL"
	TypeHTTPPush = "HttpData-PUSH"
)

// Request starts a transfer under an agreed contract.
type Request struct {
	CounterPartyAddress string                `json:"counterPartyAddress"`
	ContractID          string                `json:"contractId"`
	TransferType        string                `json:"transferType"`
	Protocol            edc.Protocol          `json:"protocol"`
	DataDestination     *asset.DataAddress    `json:"dataDestination,omitempty"`
	CallbackAddresses   []edc.CallbackAddress `json:"callbackAddresses"`
}

// NewRequest returns a transfer request for contractID with the provider at
// address.
func NewRequest(address, contractID, transferType string) *Request {
	return &Request{
		CounterPartyAddress: address,
		ContractID:          contractID,
		TransferType:        transferType,
		CallbackAddresses:   []edc.CallbackAddress{},
	}
}

// WithDestination sets the data destination and returns r. Pull transfers
// leave it unset.
func (r *Request) WithDestination(dest asset.DataAddress) *Request {
	r.DataDestination = &dest
	return r
}

// WithCallback appends a callback address and returns r.
func (r *Request) WithCallback(cb edc.CallbackAddress) *Request {
	r.CallbackAddresses = append(r.CallbackAddresses, cb)
	return r
}

// State is the state of a transfer process. Unrecognized states decode
// unchanged.
type State string

const (
	StateInitial                 State = "INITIAL"
	StateProvisioning            State = "PROVISIONING"
	StateProvisioningRequested   State = "PROVISIONING_REQUESTED"
	StateProvisioned             State = "PROVISIONED"
	StateRequesting              State = "REQUESTING"
	StateRequested               State = "REQUESTED"
	StateStarting                State = "STARTING"
	StateStarted                 State = "STARTED"
	StateSuspending              State = "SUSPENDING"
	StateSuspended               State = "SUSPENDED"
	StateResuming                State = "RESUMING"
	StateResumed                 State = "RESUMED"
	StateCompleting              State = "COMPLETING"
	StateCompleted               State = "COMPLETED"
	StateTerminating             State = "TERMINATING"
	StateTerminated              State = "TERMINATED"
	StateDeprovisioning          State = "DEPROVISIONING"
	StateDeprovisioningRequested State = "DEPROVISIONING_REQUESTED"
	StateDeprovisioned           State = "DEPROVISIONED"
)

// Done reports whether the process has reached an end state.
func (s State) Done() bool {
	switch s {
	case StateCompleted, StateTerminated, StateDeprovisioned:
		return true
	}
	return false
}

// PropertyValue implements properties.Marshaler.
func (s State) PropertyValue() properties.Value {
	return properties.String(string(s))
}

// SetPropertyValue implements properties.Unmarshaler.
func (s *State) SetPropertyValue(v properties.Value) error {
	str, ok := v.AsString()
	if !ok || str == "" {
		return &properties.ConversionError{Want: "transfer.State", Got: v.Kind()}
	}
	*s = State(str)
	return nil
}

// Process is a transfer process as reported by a connector.
type Process struct {
	ID                string                                `json:"@id"`
	State             State                                 `json:"state"`
	StateTimestamp    int64                                 `json:"stateTimestamp"`
	AssetID           string                                `json:"assetId"`
	ContractID        string                                `json:"contractId"`
	CorrelationID     string                                `json:"correlationId,omitempty"`
	TransferType      string                                `json:"transferType"`
	DataDestination   *asset.DataAddress                    `json:"dataDestination,omitempty"`
	CallbackAddresses jsonld.OneOrMany[edc.CallbackAddress] `json:"callbackAddresses"`
	Role              edc.Role                              `json:"type"`
	ErrorDetail       string                                `json:"errorDetail,omitempty"`
	PrivateProperties properties.Properties                 `json:"privateProperties"`
}

// PrivateProperty reads a private property of p.
func PrivateProperty[T any](p *Process, key string) (T, bool, error) {
	return properties.Get[T](&p.PrivateProperties, key)
}

// StateResponse is the body of the transfer state endpoint.
type StateResponse struct {
	State State `json:"state"`
}

// Terminate asks a connector to end a transfer.
type Terminate struct {
	ID     string `json:"@id"`
	Reason string `json:"reason"`
}

// Suspend asks a connector to pause a transfer.
type Suspend struct {
	ID     string `json:"@id"`
	Reason string `json:"reason"`
}
