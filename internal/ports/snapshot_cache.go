package ports

import "context"

// Optional cache for fleet-wide stock snapshots so report polling does not
// re-walk every ledger on each request. A miss is not an error.
type StockSnapshotCache interface {
	// Return the cached product->units totals, with ok=false on a miss.
	Get(ctx context.Context) (map[string]int, bool, error)
	// Store the totals until the cache's TTL elapses.
	Put(ctx context.Context, totals map[string]int) error
}
