package contract

import (
	"github.com/c360studio/edcclient/edc"
	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/policy"
	"github.com/c360studio/edcclient/properties"
)

// Request starts a negotiation for the offer in Policy. It embeds an ODRL
// policy and is sent under jsonld.PolicyContext.
type Request struct {
	CounterPartyAddress string                `json:"counterPartyAddress"`
	CounterPartyID      string                `json:"counterPartyId"`
	Protocol            edc.Protocol          `json:"protocol"`
	Policy              policy.Policy         `json:"policy"`
	CallbackAddresses   []edc.CallbackAddress `json:"callbackAddresses"`
}

// NewRequest returns a request to negotiate offer with the provider at
// address over the default protocol.
func NewRequest(address, providerID string, offer policy.Policy) *Request {
	return &Request{
		CounterPartyAddress: address,
		CounterPartyID:      providerID,
		Policy:              offer,
		CallbackAddresses:   []edc.CallbackAddress{},
	}
}

// WithCallback appends a callback address and returns r.
func (r *Request) WithCallback(cb edc.CallbackAddress) *Request {
	r.CallbackAddresses = append(r.CallbackAddresses, cb)
	return r
}

// NegotiationState is the state of a contract negotiation. States added by
// newer connectors decode unchanged.
type NegotiationState string

const (
	NegotiationInitial     NegotiationState = "INITIAL"
	NegotiationRequesting  NegotiationState = "REQUESTING"
	NegotiationRequested   NegotiationState = "REQUESTED"
	NegotiationOffering    NegotiationState = "OFFERING"
	NegotiationOffered     NegotiationState = "OFFERED"
	NegotiationAccepting   NegotiationState = "ACCEPTING"
	NegotiationAccepted    NegotiationState = "ACCEPTED"
	NegotiationAgreeing    NegotiationState = "AGREEING"
	NegotiationAgreed      NegotiationState = "AGREED"
	NegotiationVerifying   NegotiationState = "VERIFYING"
	NegotiationVerified    NegotiationState = "VERIFIED"
	NegotiationFinalizing  NegotiationState = "FINALIZING"
	NegotiationFinalized   NegotiationState = "FINALIZED"
	NegotiationTerminating NegotiationState = "TERMINATING"
	NegotiationTerminated  NegotiationState = "TERMINATED"
)

var negotiationStates = map[NegotiationState]bool{
	NegotiationInitial: true, NegotiationRequesting: true, NegotiationRequested: true,
	NegotiationOffering: true, NegotiationOffered: true, NegotiationAccepting: true,
	NegotiationAccepted: true, NegotiationAgreeing: true, NegotiationAgreed: true,
	NegotiationVerifying: true, NegotiationVerified: true, NegotiationFinalizing: true,
	NegotiationFinalized: true, NegotiationTerminating: true, NegotiationTerminated: true,
}

// Known reports whether s is one of the states defined above.
func (s NegotiationState) Known() bool {
	return negotiationStates[s]
}

// Done reports whether the negotiation can make no further progress.
func (s NegotiationState) Done() bool {
	return s == NegotiationFinalized || s == NegotiationTerminated
}

// PropertyValue implements properties.Marshaler.
func (s NegotiationState) PropertyValue() properties.Value {
	return properties.String(string(s))
}

// SetPropertyValue implements properties.Unmarshaler. Unknown states are
// kept as read.
func (s *NegotiationState) SetPropertyValue(v properties.Value) error {
	str, ok := v.AsString()
	if !ok || str == "" {
		return &properties.ConversionError{Want: "contract.NegotiationState", Got: v.Kind()}
	}
	*s = NegotiationState(str)
	return nil
}

// Negotiation is a contract negotiation as reported by a connector.
type Negotiation struct {
	ID                  string                                `json:"@id"`
	State               NegotiationState                      `json:"state"`
	ContractAgreementID string                                `json:"contractAgreementId,omitempty"`
	CounterPartyID      string                                `json:"counterPartyId"`
	CounterPartyAddress string                                `json:"counterPartyAddress"`
	Protocol            string                                `json:"protocol"`
	CreatedAt           int64                                 `json:"createdAt"`
	CallbackAddresses   jsonld.OneOrMany[edc.CallbackAddress] `json:"callbackAddresses"`
	Role                edc.Role                              `json:"type"`
	ErrorDetail         string                                `json:"errorDetail,omitempty"`
	PrivateProperties   properties.Properties                 `json:"privateProperties"`
}

// StateResponse is the body of the negotiation state endpoint.
type StateResponse struct {
	State NegotiationState `json:"state"`
}

// Terminate asks a connector to end a negotiation.
type Terminate struct {
	ID     string `json:"@id"`
	Reason string `json:"reason"`
}
