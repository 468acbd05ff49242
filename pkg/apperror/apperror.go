// Package apperror provides the typed error taxonomy shared by the query and
// similarity engines and the HTTP layer. Every failure crossing a handler
// boundary is classified into one of the kinds below; the handler maps the
// kind to a status code and serves the public message, never the wrapped
// cause.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for HTTP mapping and logging.
type Kind int

const (
	// KindInternal represents an unexpected failure. The public message is
	// generic; the cause is logged server-side only.
	KindInternal Kind = iota
	// KindValidation represents malformed or out-of-range request input.
	KindValidation
	// KindInvalidURI represents a concept or relation reference that cannot
	// be canonicalized.
	KindInvalidURI
	// KindEmbeddingNotFound represents a concept absent from the vector set.
	KindEmbeddingNotFound
	// KindNotFound represents a concept, relation, or assertion that does
	// not exist at all.
	KindNotFound
	// KindUnavailable represents an unreachable store or an exhausted
	// connection pool.
	KindUnavailable
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidURI:
		return "invalid_uri"
	case KindEmbeddingNotFound:
		return "embedding_not_found"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error carries a kind, a client-safe message, and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with a client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted client-safe message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and client-safe message to an underlying cause.
// Returns nil when err is nil.
func Wrap(kind Kind, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation creates a KindValidation error.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Validationf creates a KindValidation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return Newf(KindValidation, format, args...)
}

// InvalidURI creates a KindInvalidURI error for the given input.
func InvalidURI(input string) *Error {
	return Newf(KindInvalidURI, "invalid URI: %q", input)
}

// EmbeddingNotFound creates a KindEmbeddingNotFound error naming every
// concept URI missing from the vector set.
func EmbeddingNotFound(uris ...string) *Error {
	return Newf(KindEmbeddingNotFound, "no embedding found for %s", strings.Join(uris, ", "))
}

// NotFound creates a KindNotFound error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// NotFoundf creates a KindNotFound error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return Newf(KindNotFound, format, args...)
}

// Unavailable wraps a cause as KindUnavailable.
func Unavailable(message string, err error) error {
	if err == nil {
		return New(KindUnavailable, message)
	}
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

// Internal wraps an unexpected cause. The client-safe message is fixed so
// raw store errors never reach a response body.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the kind of an error, unwrapping as needed.
// Unclassified non-nil errors report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the client-safe message for an error. Unclassified
// errors yield a generic message so internal detail cannot leak.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error kind to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInvalidURI:
		return http.StatusBadRequest
	case KindEmbeddingNotFound, KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
