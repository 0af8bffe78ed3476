package domain

import "fmt"

// Order is a customer request for product quantities, delivered to a grid
// location within an [start, end) hour window. The route fields are populated
// once, after allocation; an order is never re-entered into allocation.
type Order struct {
	ID          string
	Items       map[string]int
	Customer    Point
	WindowStart int
	WindowEnd   int

	Route *Route
}

func NewOrder(id string, items map[string]int, customer Point, windowStart, windowEnd int) (*Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("new order %s: no items requested", id)
	}
	for productID, qty := range items {
		if qty <= 0 {
			return nil, fmt.Errorf("new order %s: product %s: %w", id, productID, ErrInvalidQuantity)
		}
	}
	if windowStart >= windowEnd {
		return nil, fmt.Errorf("new order %s: time window [%d, %d) is empty", id, windowStart, windowEnd)
	}
	return &Order{
		ID:          id,
		Items:       items,
		Customer:    customer,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	}, nil
}

// A single visit on a planned route.
type RouteStop struct {
	Label    string
	Location Point
}

// Route is the planned closed tour for one order: depot, the warehouses the
// allocation touched, the customer, and back to the depot. WithinTimeWindow
// is a warning flag, not a hard failure; an order carrying false still
// completed.
type Route struct {
	Sequence         []int
	Stops            []RouteStop
	TotalDistance    float64
	WithinTimeWindow bool
}

// WarehouseAllocation is the stock one warehouse supplied toward an order,
// broken down per batch in the order the batches were drained.
type WarehouseAllocation struct {
	WarehouseID string
	Batches     []BatchAllocation
}

// FulfillmentResult is the complete outcome of processing one order: which
// batches were drawn from which warehouses for each product, and the planned
// delivery route.
type FulfillmentResult struct {
	OrderID     string
	Allocations map[string][]WarehouseAllocation
	Warehouses  []string
	Route       Route
}
