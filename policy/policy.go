package policy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/properties"
	"github.com/c360studio/edcclient/vocabulary/dataspace"
)

// Kind is the ODRL policy subclass.
type Kind string

const (
	KindSet       Kind = "Set"
	KindOffer     Kind = "Offer"
	KindAgreement Kind = "Agreement"
)

// ParseKind accepts the bare, "odrl:" prefixed and full IRI forms.
func ParseKind(s string) (Kind, error) {
	name := strings.TrimPrefix(strings.TrimPrefix(s, dataspace.ODRL), "odrl:")
	switch k := Kind(name); k {
	case KindSet, KindOffer, KindAgreement:
		return k, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
}

// MarshalJSON writes the bare form. The zero Kind encodes as Set.
func (k Kind) MarshalJSON() ([]byte, error) {
	if k == "" {
		k = KindSet
	}
	return json.Marshal(string(k))
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// PropertyValue implements properties.Marshaler with the bare form.
func (k Kind) PropertyValue() properties.Value {
	if k == "" {
		k = KindSet
	}
	return properties.String(string(k))
}

// SetPropertyValue implements properties.Unmarshaler. Any form ParseKind
// accepts is read.
func (k *Kind) SetPropertyValue(v properties.Value) error {
	s, ok := v.AsString()
	if !ok {
		return &properties.ConversionError{Want: "policy.Kind", Got: v.Kind()}
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return &properties.ConversionError{Want: "policy.Kind", Got: v.Kind(), Err: err}
	}
	*k = parsed
	return nil
}

// Policy is an ODRL policy.
type Policy struct {
	// ID is optional; connectors assign one to offers.
	ID   string
	Kind Kind

	Permissions  []Rule
	Obligations  []Rule
	Prohibitions []Rule

	Assignee string
	Assigner string
	Target   *Ref
}

// New returns an empty policy of kind.
func New(kind Kind) *Policy {
	return &Policy{Kind: kind}
}

// Permit appends permissions and returns p.
func (p *Policy) Permit(rules ...Rule) *Policy {
	p.Permissions = append(p.Permissions, rules...)
	return p
}

// Oblige appends obligations and returns p.
func (p *Policy) Oblige(rules ...Rule) *Policy {
	p.Obligations = append(p.Obligations, rules...)
	return p
}

// Prohibit appends prohibitions and returns p.
func (p *Policy) Prohibit(rules ...Rule) *Policy {
	p.Prohibitions = append(p.Prohibitions, rules...)
	return p
}

// WithTarget sets the asset the policy applies to and returns p.
func (p *Policy) WithTarget(target Ref) *Policy {
	p.Target = &target
	return p
}

// WithParties sets assigner and assignee and returns p.
func (p *Policy) WithParties(assigner, assignee string) *Policy {
	p.Assigner = assigner
	p.Assignee = assignee
	return p
}

type policyJSON struct {
	ID   string `json:"@id,omitempty"`
	Kind *Kind  `json:"@type,omitempty"`

	Permission      jsonld.OneOrMany[Rule] `json:"permission"`
	ODRLPermission  jsonld.OneOrMany[Rule] `json:"odrl:permission,omitempty"`
	Obligation      jsonld.OneOrMany[Rule] `json:"obligation"`
	ODRLObligation  jsonld.OneOrMany[Rule] `json:"odrl:obligation,omitempty"`
	Prohibition     jsonld.OneOrMany[Rule] `json:"prohibition"`
	ODRLProhibition jsonld.OneOrMany[Rule] `json:"odrl:prohibition,omitempty"`

	Assignee     *string `json:"assignee,omitempty"`
	ODRLAssignee *string `json:"odrl:assignee,omitempty"`
	Assigner     *string `json:"assigner,omitempty"`
	ODRLAssigner *string `json:"odrl:assigner,omitempty"`
	Target       *Ref    `json:"target,omitempty"`
	ODRLTarget   *Ref    `json:"odrl:target,omitempty"`
}

// MarshalJSON writes the policy in the plain vocabulary form. The three rule
// lists are always present.
func (p Policy) MarshalJSON() ([]byte, error) {
	aux := policyJSON{
		ID:          p.ID,
		Kind:        &p.Kind,
		Permission:  p.Permissions,
		Obligation:  p.Obligations,
		Prohibition: p.Prohibitions,
		Target:      p.Target,
	}
	if p.Assignee != "" {
		aux.Assignee = &p.Assignee
	}
	if p.Assigner != "" {
		aux.Assigner = &p.Assigner
	}
	return json.Marshal(aux)
}

// UnmarshalJSON accepts both plain and "odrl:" prefixed members. A missing
// @type decodes as Set.
func (p *Policy) UnmarshalJSON(data []byte) error {
	var aux policyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	out := Policy{
		ID:           aux.ID,
		Kind:         KindSet,
		Permissions:  either(aux.Permission, aux.ODRLPermission),
		Obligations:  either(aux.Obligation, aux.ODRLObligation),
		Prohibitions: either(aux.Prohibition, aux.ODRLProhibition),
		Target:       pick(aux.Target, aux.ODRLTarget),
	}
	if aux.Kind != nil {
		out.Kind = *aux.Kind
	}
	if s := pick(aux.Assignee, aux.ODRLAssignee); s != nil {
		out.Assignee = *s
	}
	if s := pick(aux.Assigner, aux.ODRLAssigner); s != nil {
		out.Assigner = *s
	}
	*p = out
	return nil
}

func either[T any](primary, alias jsonld.OneOrMany[T]) []T {
	if primary != nil {
		return primary
	}
	return alias
}
