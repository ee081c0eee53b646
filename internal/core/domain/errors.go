package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUpstreamUnavailable means the product-catalog service could not be
	// reached or answered with a server-side failure.
	ErrUpstreamUnavailable = errors.New("product catalog unavailable")

	// ErrStorageUnavailable wraps persistence-layer faults.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInconsistentProductData signals a price lookup miss after a
	// successful validation. This is a contract violation, not user input.
	ErrInconsistentProductData = errors.New("inconsistent product data")

	// ErrDuplicateRequest means the idempotency key was already claimed.
	ErrDuplicateRequest = errors.New("duplicate request")
)

// ValidationError rejects malformed input before any side effect.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError carries the offending order id.
type NotFoundError struct {
	OrderID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderID)
}

// ProductNotFoundError carries the product ids the catalog did not return.
type ProductNotFoundError struct {
	IDs []string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("products not found: %s", strings.Join(e.IDs, ", "))
}

// PageOutOfRangeError is returned when a pagination request points beyond
// the last available page.
type PageOutOfRangeError struct {
	RequestedPage int
	LastPage      int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d is out of range, last page is %d", e.RequestedPage, e.LastPage)
}

// ForbiddenTransitionError rejects a status change the state machine does
// not allow.
type ForbiddenTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *ForbiddenTransitionError) Error() string {
	return fmt.Sprintf("status transition %s -> %s is not allowed", e.From, e.To)
}
