package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/c360studio/edcclient/properties"
)

// ErrorDetail is one entry of the error array a connector returns.
type ErrorDetail struct {
	Message      string           `json:"message"`
	Type         string           `json:"type"`
	Path         string           `json:"path,omitempty"`
	InvalidValue properties.Value `json:"invalidValue,omitempty"`
}

// ManagementAPIError is returned for non-2xx responses. Details holds the
// parsed error array; Raw holds the body when it could not be parsed.
type ManagementAPIError struct {
	StatusCode int
	Details    []ErrorDetail
	Raw        string
}

// maxRawMessage bounds how much of an unparsed body Error repeats.
const maxRawMessage = 200

func (e *ManagementAPIError) Error() string {
	var msg string
	switch {
	case len(e.Details) > 0:
		parts := make([]string, len(e.Details))
		for i, d := range e.Details {
			parts[i] = d.Message
		}
		msg = strings.Join(parts, "; ")
	default:
		msg = truncate(e.Raw, maxRawMessage)
	}
	return fmt.Sprintf("management API error (status %d): %s", e.StatusCode, msg)
}

// NotFound reports whether the connector answered 404.
func (e *ManagementAPIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Conflict reports whether the connector answered 409.
func (e *ManagementAPIError) Conflict() bool {
	return e.StatusCode == http.StatusConflict
}

func parseAPIError(status int, body []byte) *ManagementAPIError {
	apiErr := &ManagementAPIError{StatusCode: status}
	var details []ErrorDetail
	if err := json.Unmarshal(body, &details); err == nil && len(details) > 0 {
		apiErr.Details = details
	} else {
		apiErr.Raw = string(body)
	}
	return apiErr
}

// TransientError represents a temporary error that may succeed on retry.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string {
	return e.err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.err
}

// FatalError represents a permanent error that should not be retried.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string {
	return e.err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.err
}

// IsTransient returns true if the error is transient and should be retried.
func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// IsFatal returns true if the error is fatal and should not be retried.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// AsAPIError extracts the ManagementAPIError from err, if any.
func AsAPIError(err error) (*ManagementAPIError, bool) {
	var apiErr *ManagementAPIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsNotFound reports whether err is a 404 from the connector.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.NotFound()
}

// classify wraps an API error as transient or fatal by status code.
func classify(apiErr *ManagementAPIError) error {
	switch {
	case apiErr.StatusCode == http.StatusTooManyRequests,
		apiErr.StatusCode >= 500:
		return &TransientError{err: apiErr}
	default:
		return &FatalError{err: apiErr}
	}
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
