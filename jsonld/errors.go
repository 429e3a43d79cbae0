package jsonld

import "errors"

// ErrNotObject is returned when a payload to wrap or unwrap is not a JSON object.
var ErrNotObject = errors.New("jsonld: payload is not a JSON object")
