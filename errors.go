package sdjwt

import "fmt"

// ErrorKind identifies which of the core's closed set of failure modes an
// Error represents. Callers should compare with errors.Is against the
// package's sentinel values rather than switching on Kind directly.
type ErrorKind string

const (
	KindInvalidPath          ErrorKind = "invalid_path"
	KindDataTypeMismatch     ErrorKind = "data_type_mismatch"
	KindDeserializationError ErrorKind = "deserialization_error"
	KindIndexOutOfBounds     ErrorKind = "index_out_of_bounds"
	KindInvalidHasher        ErrorKind = "invalid_hasher"
	KindMissingKeyBindingJwt ErrorKind = "missing_key_binding_jwt"
	KindUnspecified          ErrorKind = "unspecified"
)

// Error is the single error type returned by this package. Its Kind is
// always one of the constants above.
type Error struct {
	Kind ErrorKind
	Msg  string
	// Index carries the offending array index for KindIndexOutOfBounds.
	Index int
	cause error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is a sentinel for the same Kind, so callers can
// write errors.Is(err, sdjwt.ErrInvalidPath).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel values for errors.Is comparisons. They carry no message of their
// own; construct errors with the unexported helpers below instead.
var (
	ErrInvalidPath          = &Error{Kind: KindInvalidPath}
	ErrDataTypeMismatch     = &Error{Kind: KindDataTypeMismatch}
	ErrDeserializationError = &Error{Kind: KindDeserializationError}
	ErrIndexOutOfBounds     = &Error{Kind: KindIndexOutOfBounds}
	ErrInvalidHasher        = &Error{Kind: KindInvalidHasher}
	ErrMissingKeyBindingJwt = &Error{Kind: KindMissingKeyBindingJwt}
	ErrUnspecified          = &Error{Kind: KindUnspecified}
)

func invalidPath(msg string) error {
	return &Error{Kind: KindInvalidPath, Msg: msg}
}

func dataTypeMismatch(msg string) error {
	return &Error{Kind: KindDataTypeMismatch, Msg: msg}
}

func deserializationError(msg string) error {
	return &Error{Kind: KindDeserializationError, Msg: msg}
}

func wrapDeserializationError(cause error, msg string) error {
	return &Error{Kind: KindDeserializationError, Msg: msg, cause: cause}
}

func indexOutOfBounds(index int, msg string) error {
	return &Error{Kind: KindIndexOutOfBounds, Msg: msg, Index: index}
}

func invalidHasher(msg string) error {
	return &Error{Kind: KindInvalidHasher, Msg: msg}
}

func missingKeyBindingJwt(msg string) error {
	return &Error{Kind: KindMissingKeyBindingJwt, Msg: msg}
}

func unspecified(msg string) error {
	return &Error{Kind: KindUnspecified, Msg: msg}
}

func wrapUnspecified(cause error, msg string) error {
	return &Error{Kind: KindUnspecified, Msg: msg, cause: cause}
}
