package ports

import (
	"context"

	"fulfillment-route-service/internal/domain"
)

// Port: a boundary for recording completed orders for downstream reporting.
type OrderRepository interface {
	// Store a processed order, route attached.
	InsertOrder(ctx context.Context, order *domain.Order) error
	// Retrieve all completed orders.
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}
