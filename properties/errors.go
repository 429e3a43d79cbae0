package properties

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLossyNumber is wrapped by a ConversionError when a number does not fit
// the requested type without losing information.
var ErrLossyNumber = errors.New("numeric conversion would lose information")

// ConversionError reports a Value that could not be read as the requested Go type.
type ConversionError struct {
	// Key is the path to the offending value, such as "tags[1]" or
	// "owner.name". It is empty when a bare scalar Value fails.
	Key string

	// Want is the Go type that was requested.
	Want string

	// Got is the kind of the stored value.
	Got Kind

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConversionError) Error() string {
	var sb strings.Builder
	sb.WriteString("cannot convert ")
	sb.WriteString(e.Got.String())
	if e.Key != "" {
		fmt.Fprintf(&sb, " property %q", e.Key)
	}
	sb.WriteString(" to ")
	sb.WriteString(e.Want)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// IsConversionError returns true if err is or wraps a *ConversionError.
func IsConversionError(err error) bool {
	var conv *ConversionError
	return errors.As(err, &conv)
}

// at prefixes the path of a conversion error in err with seg, an object key
// or an "[i]" index. Other errors are returned unchanged.
func at(err error, seg string) error {
	var conv *ConversionError
	if !errors.As(err, &conv) {
		return err
	}
	keyed := *conv
	switch {
	case conv.Key == "":
		keyed.Key = seg
	case strings.HasPrefix(conv.Key, "["):
		keyed.Key = seg + conv.Key
	default:
		keyed.Key = seg + "." + conv.Key
	}
	return &keyed
}

func mismatch(v Value, want string) error {
	return &ConversionError{Want: want, Got: v.Kind()}
}

func lossy(v Value, want string) error {
	return &ConversionError{Want: want, Got: v.Kind(), Err: ErrLossyNumber}
}
