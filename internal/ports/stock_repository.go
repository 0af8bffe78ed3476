package ports

import (
	"context"

	"fulfillment-route-service/internal/domain"
)

// Port: a boundary for loading the warehouse catalog from a data source.
type StockRepository interface {
	// Rebuild the warehouse fleet, ledgers included, from stored seed data.
	ListWarehouses(ctx context.Context) ([]*domain.Warehouse, error)
	// Return the configured unit price per product id.
	PriceTable(ctx context.Context) (map[string]float64, error)
}
