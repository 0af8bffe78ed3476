package domain

import (
	"fmt"
	"time"
)

// A single received lot of one product.
// The batch id is immutable and unique within its warehouse; quantity is
// decremented in place as stock is drawn down.
type ProductBatch struct {
	ProductID string
	Quantity  int
	BatchID   string
	Expiry    time.Time
}

// A batch is expired once its expiry date is on or before the evaluation date.
func (b *ProductBatch) ExpiredAt(asOf time.Time) bool {
	return !b.Expiry.After(asOf)
}

func (b *ProductBatch) String() string {
	return fmt.Sprintf("batch %s [product=%s, qty=%d, exp=%s]",
		b.BatchID, b.ProductID, b.Quantity, b.Expiry.Format("2006-01-02"))
}

// BatchAllocation records stock taken from a single batch during removal.
// It is a copy: callers never hold references into a warehouse's ledger.
type BatchAllocation struct {
	ProductID     string
	BatchID       string
	QuantityTaken int
}
