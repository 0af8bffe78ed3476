package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")
var ErrAlreadyExpired = errors.New("stock is already expired")
var ErrDuplicateBatch = errors.New("batch id already used in this warehouse")
var ErrInsufficientStock = errors.New("insufficient stock to fulfill order")
var ErrPartialFulfillment = errors.New("allocation ran short despite passing the feasibility check")

// InsufficientStockError reports a product whose fleet-wide availability was
// below the requested quantity during the pre-check. The order is rejected
// before any stock has been removed.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PartialFulfillmentError reports an allocation that ran out mid-product even
// though the pre-check passed. The pre-check and the allocation observed
// different ledger states, so this signals a consistency violation rather
// than a normal shortage. Removals already performed for earlier products in
// the same order are not compensated.
type PartialFulfillmentError struct {
	OrderID   string
	ProductID string
	Shortfall int
}

func (e *PartialFulfillmentError) Error() string {
	return fmt.Sprintf("partial fulfillment for order %s: product %s short by %d units",
		e.OrderID, e.ProductID, e.Shortfall)
}

func (e *PartialFulfillmentError) Is(target error) bool { return target == ErrPartialFulfillment }
