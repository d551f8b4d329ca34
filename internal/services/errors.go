package services

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned on a login password mismatch. The
// message deliberately does not reveal whether the email exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// NotFoundError reports a missing user, card, or block request.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// OperationError reports a business-rule violation: insufficient funds,
// wrong owner, invalid status transition, duplicate block request and
// the like. The boundary layer maps it to a 400 response.
type OperationError struct {
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}

func notFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

func operationErr(format string, args ...any) error {
	return &OperationError{Message: fmt.Sprintf(format, args...)}
}
