package opaquekeys

import (
	"fmt"
)

// NotRecognizedError reports that a string matched none of the formats
// registered for the requested kind. Callers may treat it as "not this kind
// of key" and try another kind.
type NotRecognizedError struct {
	Kind  KeyKind
	Input string
}

func (e *NotRecognizedError) Error() string {
	return fmt.Sprintf("opaquekeys: %q is not a recognized %s", e.Input, e.Kind)
}

// MalformedKeyError reports that a string committed to a format (by namespace
// token or legacy shape) but violated one of its strict grammar rules. It is
// never downgraded to NotRecognizedError, so callers can distinguish "clearly
// not a key" from "almost a key".
type MalformedKeyError struct {
	Namespace string // format namespace, or a legacy tag such as "i4x"
	Input     string
	Reason    string
	Err       error // underlying cause, if any
}

func (e *MalformedKeyError) Error() string {
	msg := fmt.Sprintf("opaquekeys: malformed %s key %q", e.Namespace, e.Input)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedKeyError) Unwrap() error {
	return e.Err
}

// InvalidFieldError reports a field value that violates its character-class
// or required-ness rule during explicit construction.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("opaquekeys: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// AmbiguousEncodingError reports aside-key text whose escape structure cannot
// be reversed unambiguously. Decoding fails closed rather than guessing.
type AmbiguousEncodingError struct {
	Input  string
	Offset int
}

func (e *AmbiguousEncodingError) Error() string {
	return fmt.Sprintf("opaquekeys: ambiguous escape sequence at offset %d in %q", e.Offset, e.Input)
}

func invalidField(field, value, format string, args ...any) *InvalidFieldError {
	return &InvalidFieldError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}
