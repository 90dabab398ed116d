package services

import (
	"errors"
	"fmt"

	"invoice-service/internal/repository"
)

// ErrorKind classifies a failure for the transport layer.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	}
	return "internal"
}

// ServiceError wraps a failure with the operation that produced it and a
// message safe to show to API callers.
type ServiceError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op, message string, err error) error {
	return &ServiceError{Kind: kind, Op: op, Message: message, Err: err}
}

func validationError(op, message string) error {
	return newError(KindValidation, op, message, nil)
}

func notFoundError(op, message string) error {
	return newError(KindNotFound, op, message, nil)
}

func internalError(op, message string, err error) error {
	return newError(KindInternal, op, message, err)
}

// KindOf reports the kind of err; anything unclassified is internal.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-facing message for err.
func MessageOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return "Internal server error"
}

// repoError classifies a repository failure for entity.
func repoError(op, entity string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFoundError(op, entity+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return newError(KindConflict, op, fmt.Sprintf("Failed to save %s: a record with the same unique value exists", entity), err)
	case errors.Is(err, repository.ErrReferenced):
		return newError(KindValidation, op, fmt.Sprintf("%s is referenced by another record", entity), err)
	}
	return internalError(op, fmt.Sprintf("Failed to access %s", entity), err)
}
