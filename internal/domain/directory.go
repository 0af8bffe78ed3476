package domain

import (
	"fmt"
	"slices"
	"time"
)

// Directory is a flat registry of warehouses plus the depot coordinate the
// route planner starts and ends at. The depot holds no stock; it is
// configuration, not a constant baked into callers.
type Directory struct {
	depot      Point
	warehouses map[string]*Warehouse
}

func NewDirectory(depot Point) *Directory {
	return &Directory{
		depot:      depot,
		warehouses: make(map[string]*Warehouse),
	}
}

func (d *Directory) Depot() Point { return d.depot }

// Add registers a warehouse. Duplicate ids are rejected.
func (d *Directory) Add(w *Warehouse) error {
	if _, ok := d.warehouses[w.ID]; ok {
		return fmt.Errorf("add warehouse: duplicate id %q", w.ID)
	}
	d.warehouses[w.ID] = w
	return nil
}

// Find returns the warehouse with the given id, or ok=false.
func (d *Directory) Find(id string) (*Warehouse, bool) {
	w, ok := d.warehouses[id]
	return w, ok
}

// List returns all warehouses sorted by id. Every caller that iterates the
// fleet goes through here so orderings stay deterministic.
func (d *Directory) List() []*Warehouse {
	out := make([]*Warehouse, 0, len(d.warehouses))
	for _, w := range d.warehouses {
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b *Warehouse) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

// TotalAvailable sums a product's non-expired availability across the fleet.
// Used by the allocator's up-front feasibility check.
func (d *Directory) TotalAvailable(productID string, asOf time.Time) int {
	total := 0
	for _, w := range d.List() {
		total += w.AvailableStock(productID, asOf)
	}
	return total
}
