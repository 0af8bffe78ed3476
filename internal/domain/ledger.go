package domain

import (
	"container/heap"
	"fmt"
	"time"
)

// batchHeap is a min-heap of batches ordered by expiry date, with batch id as
// a deterministic tie-break. The front of the heap is always the next batch
// FEFO removal will draw from.
type batchHeap []*ProductBatch

func (h batchHeap) Len() int { return len(h) }

func (h batchHeap) Less(i, j int) bool {
	if !h[i].Expiry.Equal(h[j].Expiry) {
		return h[i].Expiry.Before(h[j].Expiry)
	}
	return h[i].BatchID < h[j].BatchID
}

func (h batchHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *batchHeap) Push(x any) { *h = append(*h, x.(*ProductBatch)) }

func (h *batchHeap) Pop() any {
	old := *h
	n := len(old)
	b := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return b
}

// BatchLedger tracks the stock batches of a single warehouse, one expiry
// ordered heap per product. Expiry is evaluated lazily: every read or
// mutation purges expired batches from the front of the touched heap first,
// so expired quantity is never visible or allocatable. There is no background
// sweep.
//
// The ledger is not safe for concurrent use; RemoveStock is a read-then-mutate
// sequence that assumes a single caller.
type BatchLedger struct {
	byProduct    map[string]*batchHeap
	usedBatchIDs map[string]struct{}
}

func NewBatchLedger() *BatchLedger {
	return &BatchLedger{
		byProduct:    make(map[string]*batchHeap),
		usedBatchIDs: make(map[string]struct{}),
	}
}

// AddBatch records a newly received lot. Batch ids are unique per warehouse
// across all products. Rejected batches leave the ledger untouched.
func (l *BatchLedger) AddBatch(productID string, quantity int, batchID string, expiry time.Time, asOf time.Time) error {
	if quantity <= 0 {
		return fmt.Errorf("add batch %s: %w", batchID, ErrInvalidQuantity)
	}
	if !expiry.After(asOf) {
		return fmt.Errorf("add batch %s: expiry %s: %w", batchID, expiry.Format("2006-01-02"), ErrAlreadyExpired)
	}
	if _, ok := l.usedBatchIDs[batchID]; ok {
		return fmt.Errorf("add batch %s: %w", batchID, ErrDuplicateBatch)
	}

	h := l.byProduct[productID]
	if h == nil {
		h = &batchHeap{}
		l.byProduct[productID] = h
	}
	heap.Push(h, &ProductBatch{
		ProductID: productID,
		Quantity:  quantity,
		BatchID:   batchID,
		Expiry:    expiry,
	})
	l.usedBatchIDs[batchID] = struct{}{}
	return nil
}

// purge pops expired batches from the front of a product's heap. The loop is
// bounded by heap size; once a non-expired batch surfaces, everything behind
// it expires later and the heap is clean.
func (l *BatchLedger) purge(productID string, asOf time.Time) {
	h := l.byProduct[productID]
	if h == nil {
		return
	}
	for h.Len() > 0 && (*h)[0].ExpiredAt(asOf) {
		heap.Pop(h)
	}
	if h.Len() == 0 {
		delete(l.byProduct, productID)
	}
}

// AvailableStock returns the non-expired quantity on hand for a product.
// Idempotent with respect to non-expired state.
func (l *BatchLedger) AvailableStock(productID string, asOf time.Time) int {
	l.purge(productID, asOf)

	h := l.byProduct[productID]
	if h == nil {
		return 0
	}
	total := 0
	for _, b := range *h {
		total += b.Quantity
	}
	return total
}

// RemoveStock draws up to quantity units of a product under FEFO, always
// consuming the earliest-expiring batch first. It returns the per-batch
// allocations actually performed; their total may be less than requested if
// stock ran out, which is a signal for the caller, not an error. A fully
// consumed batch is removed, a partially consumed one is decremented in place.
func (l *BatchLedger) RemoveStock(productID string, quantity int, asOf time.Time) ([]BatchAllocation, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("remove stock %s: %w", productID, ErrInvalidQuantity)
	}

	l.purge(productID, asOf)

	h := l.byProduct[productID]
	if h == nil {
		return []BatchAllocation{}, nil
	}

	allocations := []BatchAllocation{}
	remaining := quantity
	for remaining > 0 && h.Len() > 0 {
		front := (*h)[0]
		take := front.Quantity
		if take > remaining {
			take = remaining
		}
		allocations = append(allocations, BatchAllocation{
			ProductID:     productID,
			BatchID:       front.BatchID,
			QuantityTaken: take,
		})

		if front.Quantity > take {
			front.Quantity -= take
		} else {
			heap.Pop(h)
		}
		remaining -= take
	}

	if h.Len() == 0 {
		delete(l.byProduct, productID)
	}
	return allocations, nil
}

// PurgeExpired removes every expired batch across all products. Housekeeping
// entry point; the read paths purge lazily on their own.
func (l *BatchLedger) PurgeExpired(asOf time.Time) {
	for productID := range l.byProduct {
		l.purge(productID, asOf)
	}
}

// NextExpiring returns a copy of the earliest non-expired batch for a product,
// or ok=false when no non-expired stock exists.
func (l *BatchLedger) NextExpiring(productID string, asOf time.Time) (ProductBatch, bool) {
	l.purge(productID, asOf)

	h := l.byProduct[productID]
	if h == nil || h.Len() == 0 {
		return ProductBatch{}, false
	}
	return *(*h)[0], true
}

// AllAvailableStock snapshots per-product availability after purging.
// Consumed by the low-stock report.
func (l *BatchLedger) AllAvailableStock(asOf time.Time) map[string]int {
	snapshot := make(map[string]int, len(l.byProduct))
	for productID := range l.byProduct {
		if qty := l.AvailableStock(productID, asOf); qty > 0 {
			snapshot[productID] = qty
		}
	}
	return snapshot
}
