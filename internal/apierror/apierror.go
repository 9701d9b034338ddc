// Package apierror defines the coarse error kinds surfaced to API callers.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
)

// Kind classifies an APIError.
type Kind int

const (
	// KindInternal covers every downstream, transport or filesystem failure.
	KindInternal Kind = iota
	// KindConflict is a uniqueness violation.
	KindConflict
	// KindNotFound means the referenced entity is absent.
	KindNotFound
	// KindInvalidArgument is a malformed request.
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "internal"
	}
}

// APIError is an error safe to show to the caller.
// Message never contains the underlying cause.
type APIError struct {
	Kind    Kind
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// GRPCCode returns the gRPC status code for the error kind.
func (e *APIError) GRPCCode() codes.Code {
	switch e.Kind {
	case KindConflict:
		return codes.AlreadyExists
	case KindNotFound:
		return codes.NotFound
	case KindInvalidArgument:
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

// HTTPStatus returns the HTTP status code for the error kind.
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the kind of err. Errors that are not APIErrors are internal.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindInternal
}

// NewErrEmailIsTaken reports a duplicate email on user creation.
// The message is fixed and never echoes the submitted address.
func NewErrEmailIsTaken() *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: "user with this email already exists",
	}
}

// NewErrUserNotFound reports a missing user record.
func NewErrUserNotFound(id int64) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("user with ID: %d not found", id),
	}
}

// NewErrCreateUser reports a failed provisioning attempt.
func NewErrCreateUser() *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: "failed to create user, try again later",
	}
}

// NewErrFetchUser reports a failed remote profile lookup.
func NewErrFetchUser(id int64) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: fmt.Sprintf("failed to fetch user with ID: %d, try again later", id),
	}
}

// NewErrFetchAvatar reports a failed avatar resolution.
func NewErrFetchAvatar(id int64) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: fmt.Sprintf("failed to fetch avatar for user ID: %d, try again later", id),
	}
}

// NewErrDeleteAvatar reports a failed avatar deletion.
func NewErrDeleteAvatar(id int64) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: fmt.Sprintf("failed to delete avatar for user ID: %d, try again later", id),
	}
}

// NewErrInvalidArgument reports a malformed request.
func NewErrInvalidArgument(msg string) *APIError {
	return &APIError{
		Kind:    KindInvalidArgument,
		Message: msg,
	}
}
