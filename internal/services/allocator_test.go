package services

import (
	"errors"
	"testing"
	"time"

	"fulfillment-route-service/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Two-warehouse fixture from the assignment example: W1 (5,5) holds 100 units
// of P001 expiring late, W2 (15,15) holds 50 expiring early.
func buildFleet(t *testing.T, asOf time.Time) *domain.Directory {
	t.Helper()

	dir := domain.NewDirectory(domain.Point{X: 0, Y: 0})
	w1 := domain.NewWarehouse("W1", 5, 5)
	w2 := domain.NewWarehouse("W2", 15, 15)
	for _, w := range []*domain.Warehouse{w1, w2} {
		if err := dir.Add(w); err != nil {
			t.Fatalf("add %s: %v", w.ID, err)
		}
	}

	if err := w1.AddStock("P001", 100, "B001", date("2025-12-31"), asOf); err != nil {
		t.Fatalf("stock W1: %v", err)
	}
	if err := w2.AddStock("P001", 50, "B002", date("2025-06-30"), asOf); err != nil {
		t.Fatalf("stock W2: %v", err)
	}
	return dir
}

func newOrder(t *testing.T, items map[string]int) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("O001", items, domain.Point{X: 10, Y: 20}, 9, 17)
	if err != nil {
		t.Fatalf("new order: %v", err)
	}
	return order
}

func TestProcessOrderSplitsAcrossWarehouses(t *testing.T) {
	asOf := date("2025-01-15")
	dir := buildFleet(t, asOf)
	order := newOrder(t, map[string]int{"P001": 70})

	result, err := ProcessOrder(dir, order, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// W2 is nearer to (10,20) and is drained first; its 50 units fall short,
	// so the remaining 20 come from W1.
	allocs := result.Allocations["P001"]
	if len(allocs) != 2 {
		t.Fatalf("warehouse allocations = %+v, want 2", allocs)
	}
	if allocs[0].WarehouseID != "W2" || allocs[0].Batches[0].QuantityTaken != 50 || allocs[0].Batches[0].BatchID != "B002" {
		t.Fatalf("first allocation = %+v, want 50 from W2/B002", allocs[0])
	}
	if allocs[1].WarehouseID != "W1" || allocs[1].Batches[0].QuantityTaken != 20 || allocs[1].Batches[0].BatchID != "B001" {
		t.Fatalf("second allocation = %+v, want 20 from W1/B001", allocs[1])
	}

	if len(result.Warehouses) != 2 || result.Warehouses[0] != "W1" || result.Warehouses[1] != "W2" {
		t.Fatalf("used warehouses = %v, want [W1 W2]", result.Warehouses)
	}

	// Ledgers reflect the draw-down.
	w1, _ := dir.Find("W1")
	w2, _ := dir.Find("W2")
	if got := w1.AvailableStock("P001", asOf); got != 80 {
		t.Fatalf("W1 stock = %d, want 80", got)
	}
	if got := w2.AvailableStock("P001", asOf); got != 0 {
		t.Fatalf("W2 stock = %d, want 0", got)
	}

	// Route: depot -> W1 (nearer to depot) -> W2 -> customer -> depot.
	if order.Route == nil {
		t.Fatal("route not attached to order")
	}
	labels := make([]string, 0, len(order.Route.Stops))
	for _, s := range order.Route.Stops {
		labels = append(labels, s.Label)
	}
	want := []string{"W0", "W1", "W2", "CUSTOMER", "W0"}
	if len(labels) != len(want) {
		t.Fatalf("stops = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("stops = %v, want %v", labels, want)
		}
	}
	if !order.Route.WithinTimeWindow {
		t.Fatal("short tour must fit the [9,17) window")
	}
}

func TestProcessOrderInsufficientStockNoMutation(t *testing.T) {
	asOf := date("2025-01-15")
	dir := buildFleet(t, asOf)
	order := newOrder(t, map[string]int{"P001": 70, "P999": 5})

	_, err := ProcessOrder(dir, order, asOf)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("got %v, want ErrInsufficientStock", err)
	}
	var short *domain.InsufficientStockError
	if !errors.As(err, &short) {
		t.Fatalf("error %v does not carry shortage details", err)
	}
	if short.ProductID != "P999" || short.Requested != 5 || short.Available != 0 {
		t.Fatalf("shortage details = %+v", short)
	}

	// The pre-check rejects before any removal.
	w1, _ := dir.Find("W1")
	w2, _ := dir.Find("W2")
	if got := w1.AvailableStock("P001", asOf); got != 100 {
		t.Fatalf("W1 stock = %d, want 100 (no mutation)", got)
	}
	if got := w2.AvailableStock("P001", asOf); got != 50 {
		t.Fatalf("W2 stock = %d, want 50 (no mutation)", got)
	}
	if order.Route != nil {
		t.Fatal("rejected order must not carry a route")
	}
}

func TestProcessOrderDeterministicWarehouseSelection(t *testing.T) {
	asOf := date("2025-01-15")

	run := func() []string {
		dir := buildFleet(t, asOf)
		order := newOrder(t, map[string]int{"P001": 70})
		result, err := ProcessOrder(dir, order, asOf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids := []string{}
		for _, wa := range result.Allocations["P001"] {
			ids = append(ids, wa.WarehouseID)
		}
		return ids
	}

	first := run()
	for i := 0; i < 10; i++ {
		again := run()
		if len(again) != len(first) {
			t.Fatalf("run %d: %v, want %v", i, again, first)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: %v, want %v", i, again, first)
			}
		}
	}
}

func TestProcessOrderEquidistantTieBreakByID(t *testing.T) {
	asOf := date("2025-01-15")
	dir := domain.NewDirectory(domain.Point{})

	// Both warehouses sit at the same distance from the customer at (0,0).
	wa := domain.NewWarehouse("WA", 10, 0)
	wb := domain.NewWarehouse("WB", 0, 10)
	for _, w := range []*domain.Warehouse{wb, wa} {
		if err := dir.Add(w); err != nil {
			t.Fatalf("add %s: %v", w.ID, err)
		}
	}
	if err := wa.AddStock("P001", 10, "BA", date("2025-12-31"), asOf); err != nil {
		t.Fatalf("stock WA: %v", err)
	}
	if err := wb.AddStock("P001", 10, "BB", date("2025-12-31"), asOf); err != nil {
		t.Fatalf("stock WB: %v", err)
	}

	order, err := domain.NewOrder("O002", map[string]int{"P001": 5}, domain.Point{X: 0, Y: 0}, 9, 17)
	if err != nil {
		t.Fatalf("new order: %v", err)
	}
	result, err := ProcessOrder(dir, order, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warehouses) != 1 || result.Warehouses[0] != "WA" {
		t.Fatalf("used = %v, want [WA] (lexicographic tie-break)", result.Warehouses)
	}
}

func TestProcessOrderMultipleProducts(t *testing.T) {
	asOf := date("2025-01-15")
	dir := buildFleet(t, asOf)
	w1, _ := dir.Find("W1")
	if err := w1.AddStock("P002", 200, "B003", date("2025-12-31"), asOf); err != nil {
		t.Fatalf("stock P002: %v", err)
	}

	order := newOrder(t, map[string]int{"P001": 70, "P002": 100})
	result, err := ProcessOrder(dir, order, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := w1.AvailableStock("P002", asOf); got != 100 {
		t.Fatalf("W1 P002 stock = %d, want 100", got)
	}
	p2 := result.Allocations["P002"]
	if len(p2) != 1 || p2[0].WarehouseID != "W1" || p2[0].Batches[0].QuantityTaken != 100 {
		t.Fatalf("P002 allocation = %+v, want 100 from W1", p2)
	}
}
