package policy

import (
	"encoding/json"

	"github.com/c360studio/edcclient/jsonld"
	"github.com/c360studio/edcclient/vocabulary/dataspace"
)

// Rule is a permission, obligation or prohibition: an action restricted by
// constraints.
type Rule struct {
	Action      Ref
	Constraints []Constraint
}

// DefaultAction is the ODRL "use" action.
func DefaultAction() Ref {
	return IRI(dataspace.ActionUse)
}

// NewPermission returns a rule permitting use under constraints.
func NewPermission(constraints ...Constraint) Rule {
	return Rule{Action: DefaultAction(), Constraints: constraints}
}

// NewRule returns a rule for action under constraints.
func NewRule(action Ref, constraints ...Constraint) Rule {
	return Rule{Action: action, Constraints: constraints}
}

type ruleJSON struct {
	Action         *Ref                         `json:"action,omitempty"`
	ODRLAction     *Ref                         `json:"odrl:action,omitempty"`
	Constraint     jsonld.OneOrMany[Constraint] `json:"constraint"`
	ODRLConstraint jsonld.OneOrMany[Constraint] `json:"odrl:constraint,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(ruleJSON{
		Action:     &r.Action,
		Constraint: r.Constraints,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var aux ruleJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	action := pick(aux.Action, aux.ODRLAction)
	if action == nil {
		return ErrMissingAction
	}
	constraints := aux.Constraint
	if constraints == nil {
		constraints = aux.ODRLConstraint
	}
	*r = Rule{Action: *action, Constraints: constraints}
	return nil
}
