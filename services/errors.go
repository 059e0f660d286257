package services

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing caller input. Handlers map
// it to 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError reports a lookup that matched nothing. Handlers map it
// to 404.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError reports a request that contradicts current state, like an
// identifier collision that survived retries or a blocked status change.
// Handlers map it to 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PersistenceError wraps an unexpected database failure. Handlers map it
// to 500 and log the wrapped cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func notFoundErr(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

func conflictErr(message string) error {
	return &ConflictError{Message: message}
}

func persistenceErr(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
