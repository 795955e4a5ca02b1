package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a business-rule violation. Infrastructure failures are
// plain wrapped errors and never carry a kind.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "not_found"
	KindInvalidReference  ErrorKind = "invalid_reference"
	KindInvalidArgument   ErrorKind = "invalid_argument"
	KindInvalidPrice      ErrorKind = "invalid_price"
	KindInvalidStatus     ErrorKind = "invalid_status"
	KindInvalidGuestCount ErrorKind = "invalid_guest_count"
)

// DomainError is a synchronous, non-retryable business-rule violation carrying
// enough detail to render a user-facing message.
type DomainError struct {
	Kind    ErrorKind
	Entity  string
	Message string
}

func (e *DomainError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// KindOf returns the kind of a domain error, or "" for any other error.
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// NotFound signals an unresolved identifier.
func NotFound(entity string, id int64) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("id %d does not exist", id),
	}
}

// InvalidReference signals an incomplete or mismatched set of referenced entities.
func InvalidReference(entity, format string, args ...interface{}) *DomainError {
	return &DomainError{
		Kind:    KindInvalidReference,
		Entity:  entity,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidArgument signals malformed input shape.
func InvalidArgument(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Kind:    KindInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidPrice signals a missing, negative, or too-high price.
func InvalidPrice(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Kind:    KindInvalidPrice,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidStatus signals an operation forbidden by current entity state.
func InvalidStatus(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Kind:    KindInvalidStatus,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidGuestCount signals a negative guest count.
func InvalidGuestCount(count int) *DomainError {
	return &DomainError{
		Kind:    KindInvalidGuestCount,
		Message: fmt.Sprintf("number of guests must not be negative, got %d", count),
	}
}

// AlreadyGrouped signals an occupancy change on a table that belongs to a group.
func AlreadyGrouped(tableID int64) *DomainError {
	return &DomainError{
		Kind:    KindInvalidStatus,
		Entity:  "order table",
		Message: fmt.Sprintf("table %d belongs to a table group", tableID),
	}
}
