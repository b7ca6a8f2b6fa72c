package domain

import (
	"errors"
	"strings"
)

// ErrorKind classifies failures returned by the workflows
type ErrorKind int

const (
	KindInternal     ErrorKind = iota // Unexpected or store-layer failure
	KindValidation                    // Malformed input
	KindNotFound                      // Referenced entity does not exist
	KindConflict                      // Unique key already taken or entity still referenced
	KindUnauthorized                  // Credential mismatch
	KindOutOfStock                    // Product has no stock left
)

// Entity names used in error messages
const (
	EntityAccount  = "account"
	EntityCategory = "category"
	EntityProduct  = "product"
	EntityOrder    = "order"
)

// Error is a typed workflow failure
type Error struct {
	Kind    ErrorKind // Failure class
	Entity  string    // Entity kind the failure is about, if any
	Field   string    // Offending field, if any
	Message string    // Client-facing message
	Err     error     // Underlying cause, never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports a missing entity of the given kind
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Message: title(entity) + " not found"}
}

// Conflict reports a unique key that is already taken
func Conflict(entity, field string) *Error {
	return &Error{
		Kind:    KindConflict,
		Entity:  entity,
		Field:   field,
		Message: title(entity) + " with this " + field + " already exists",
	}
}

// InUse reports an entity that cannot be removed while others still reference it
func InUse(entity, by string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Message: title(entity) + " is still referenced by " + by}
}

// Invalid reports a field value the workflow cannot accept
func Invalid(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Unauthorized reports a credential mismatch
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Entity: EntityAccount, Message: message}
}

// OutOfStock reports a product without stock
func OutOfStock() *Error {
	return &Error{Kind: KindOutOfStock, Entity: EntityProduct, Message: "Product is out of stock"}
}

// Internal wraps an unexpected failure
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal for untyped errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
