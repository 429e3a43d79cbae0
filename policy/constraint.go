package policy

import (
	"encoding/json"
	"fmt"

	"github.com/c360studio/edcclient/properties"
)

// Logic combines the operands of a logical constraint.
type Logic string

const (
	LogicOr   Logic = "or"
	LogicAnd  Logic = "and"
	LogicXone Logic = "xone"
)

// Constraint restricts a rule. Exactly one of Atomic and Logical is set.
type Constraint struct {
	Atomic  *AtomicConstraint
	Logical *LogicalConstraint
}

// AtomicConstraint compares a left operand with a right operand, for example
// "purpose eq research". The right operand may be any JSON value.
type AtomicConstraint struct {
	LeftOperand  Ref
	Operator     Ref
	RightOperand properties.Value
}

// LogicalConstraint combines constraints, written as {"or": [...]}.
type LogicalConstraint struct {
	Logic       Logic
	Constraints []Constraint
}

// Atomic returns the constraint "left operator right" with both terms
// written as bare strings.
func Atomic(left, operator string, right any) Constraint {
	return AtomicWith(Term(left), Term(operator), right)
}

// AtomicWith returns an atomic constraint with explicit references.
func AtomicWith(left, operator Ref, right any) Constraint {
	return Constraint{Atomic: &AtomicConstraint{
		LeftOperand:  left,
		Operator:     operator,
		RightOperand: properties.ValueOf(right),
	}}
}

// Or is satisfied when at least one operand is.
func Or(constraints ...Constraint) Constraint {
	return logical(LogicOr, constraints)
}

// And is satisfied when every operand is.
func And(constraints ...Constraint) Constraint {
	return logical(LogicAnd, constraints)
}

// Xone is satisfied when exactly one operand is.
func Xone(constraints ...Constraint) Constraint {
	return logical(LogicXone, constraints)
}

func logical(logic Logic, constraints []Constraint) Constraint {
	return Constraint{Logical: &LogicalConstraint{Logic: logic, Constraints: constraints}}
}

type atomicJSON struct {
	LeftOperand      *Ref              `json:"leftOperand,omitempty"`
	ODRLLeftOperand  *Ref              `json:"odrl:leftOperand,omitempty"`
	Operator         *Ref              `json:"operator,omitempty"`
	ODRLOperator     *Ref              `json:"odrl:operator,omitempty"`
	RightOperand     *properties.Value `json:"rightOperand,omitempty"`
	ODRLRightOperand *properties.Value `json:"odrl:rightOperand,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c Constraint) MarshalJSON() ([]byte, error) {
	switch {
	case c.Atomic != nil:
		return json.Marshal(atomicJSON{
			LeftOperand:  &c.Atomic.LeftOperand,
			Operator:     &c.Atomic.Operator,
			RightOperand: &c.Atomic.RightOperand,
		})
	case c.Logical != nil:
		operands := c.Logical.Constraints
		if operands == nil {
			operands = []Constraint{}
		}
		return json.Marshal(map[Logic][]Constraint{c.Logical.Logic: operands})
	default:
		return nil, ErrInvalidConstraint
	}
}

// UnmarshalJSON implements json.Unmarshaler. An object with left operand,
// operator and right operand is atomic; an object with a single "or", "and"
// or "xone" member is logical.
func (c *Constraint) UnmarshalJSON(data []byte) error {
	var aux atomicJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	left := pick(aux.LeftOperand, aux.ODRLLeftOperand)
	op := pick(aux.Operator, aux.ODRLOperator)
	right := pick(aux.RightOperand, aux.ODRLRightOperand)
	if left != nil && op != nil && right != nil {
		*c = Constraint{Atomic: &AtomicConstraint{
			LeftOperand:  *left,
			Operator:     *op,
			RightOperand: *right,
		}}
		return nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	for _, logic := range []Logic{LogicOr, LogicAnd, LogicXone} {
		raw, ok := members[string(logic)]
		if !ok {
			raw, ok = members["odrl:"+string(logic)]
		}
		if !ok {
			continue
		}
		var operands []Constraint
		if err := json.Unmarshal(raw, &operands); err != nil {
			return fmt.Errorf("%s constraint: %w", logic, err)
		}
		*c = logical(logic, operands)
		return nil
	}
	return ErrInvalidConstraint
}

// pick returns primary when set, else alias.
func pick[T any](primary, alias *T) *T {
	if primary != nil {
		return primary
	}
	return alias
}
