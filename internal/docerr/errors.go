// Package docerr defines the error taxonomy shared by every document
// operation. Handlers map a Kind to an HTTP status; services attach the
// underlying cause for the logs without leaking it to the client.
package docerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes a failure.
type Kind string

const (
	KindSchema              Kind = "schema"
	KindBadRequest          Kind = "bad_request"
	KindNotFound            Kind = "not_found"
	KindMissingIdentifier   Kind = "missing_identifier"
	KindMissingAttachment   Kind = "missing_attachment"
	KindDuplicateIdentifier Kind = "duplicate_identifier"
	KindUnparsableLink      Kind = "unparsable_link"
	KindEncryptedDocument   Kind = "encrypted_document"
	KindNoUpdatableFields   Kind = "no_updatable_fields"
	KindRemoteTable         Kind = "remote_table"
	KindRemoteBlob          Kind = "remote_blob"
	KindInternal            Kind = "internal"
)

// Error carries a kind, a user-presentable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with no cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around a cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the Kind of err, or KindInternal if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the presentable message of err, without the cause chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps a Kind to the status code the HTTP layer returns.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindSchema, KindBadRequest, KindMissingIdentifier,
		KindNoUpdatableFields, KindEncryptedDocument:
		return http.StatusBadRequest
	case KindNotFound, KindMissingAttachment:
		return http.StatusNotFound
	case KindDuplicateIdentifier:
		return http.StatusConflict
	case KindUnparsableLink, KindRemoteTable, KindRemoteBlob, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
