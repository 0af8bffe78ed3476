package domain

import "time"

// Warehouse is a stock-holding location on the grid. It exclusively owns its
// batch ledger; other components only ever receive allocation copies.
type Warehouse struct {
	ID       string
	Location Point

	ledger *BatchLedger
}

func NewWarehouse(id string, x, y int) *Warehouse {
	return &Warehouse{
		ID:       id,
		Location: Point{X: x, Y: y},
		ledger:   NewBatchLedger(),
	}
}

// AddStock receives a new batch into this warehouse's ledger.
func (w *Warehouse) AddStock(productID string, quantity int, batchID string, expiry time.Time, asOf time.Time) error {
	return w.ledger.AddBatch(productID, quantity, batchID, expiry, asOf)
}

// AvailableStock reports the non-expired quantity of a product on hand.
func (w *Warehouse) AvailableStock(productID string, asOf time.Time) int {
	return w.ledger.AvailableStock(productID, asOf)
}

// RemoveStock draws stock under FEFO; see BatchLedger.RemoveStock.
func (w *Warehouse) RemoveStock(productID string, quantity int, asOf time.Time) ([]BatchAllocation, error) {
	return w.ledger.RemoveStock(productID, quantity, asOf)
}

// PurgeExpired drops every expired batch in this warehouse.
func (w *Warehouse) PurgeExpired(asOf time.Time) {
	w.ledger.PurgeExpired(asOf)
}

// NextExpiring returns the earliest non-expired batch of a product.
func (w *Warehouse) NextExpiring(productID string, asOf time.Time) (ProductBatch, bool) {
	return w.ledger.NextExpiring(productID, asOf)
}

// AllAvailableStock snapshots this warehouse's purged availability per product.
func (w *Warehouse) AllAvailableStock(asOf time.Time) map[string]int {
	return w.ledger.AllAvailableStock(asOf)
}
