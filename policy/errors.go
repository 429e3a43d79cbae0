package policy

import "errors"

var (
	// ErrMissingAction is returned when a rule has no action.
	ErrMissingAction = errors.New("policy: rule has no action")

	// ErrUnknownKind is returned for a policy @type that is not Set, Offer or Agreement.
	ErrUnknownKind = errors.New("policy: unknown policy type")

	// ErrInvalidConstraint is returned when a constraint is neither atomic nor logical.
	ErrInvalidConstraint = errors.New("policy: constraint is neither atomic nor logical")

	// ErrInvalidRef is returned when a reference is neither a string nor an {"@id"} node.
	ErrInvalidRef = errors.New("policy: reference must be a string or an @id node")
)
