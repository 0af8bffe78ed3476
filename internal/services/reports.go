package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"fulfillment-route-service/internal/domain"
	"fulfillment-route-service/internal/ports"
)

type DailyReport struct {
	TotalOrders  int
	TotalRevenue float64
	UnitsSold    map[string]int
}

type LowStockItem struct {
	ProductID string
	Units     int
}

type LowStockReport struct {
	Threshold int
	Items     []LowStockItem
}

type OrderDistance struct {
	OrderID  string
	Distance float64
}

type RouteReport struct {
	Orders        []OrderDistance
	TotalDistance float64
}

// Reporter computes aggregate statistics over completed orders and warehouse
// snapshots. Prices and the low-stock threshold are configuration, not code.
// Snapshots is optional; when nil (or failing) the low-stock report walks the
// ledgers directly.
type Reporter struct {
	Directory *domain.Directory
	Orders    ports.OrderRepository
	Prices    map[string]float64
	Snapshots ports.StockSnapshotCache
	Threshold int
}

// DailyReport totals order count, revenue, and per-product units sold across
// all completed orders. Products missing from the price table contribute zero
// revenue.
func (r *Reporter) DailyReport(ctx context.Context) (DailyReport, error) {
	orders, err := r.Orders.ListOrders(ctx)
	if err != nil {
		return DailyReport{}, fmt.Errorf("daily report: list orders: %w", err)
	}

	report := DailyReport{
		TotalOrders: len(orders),
		UnitsSold:   map[string]int{},
	}
	for _, order := range orders {
		for productID, qty := range order.Items {
			report.UnitsSold[productID] += qty
			report.TotalRevenue += r.Prices[productID] * float64(qty)
		}
	}
	return report, nil
}

// LowStockReport lists every product whose fleet-wide availability is under
// the threshold, sorted by product id.
func (r *Reporter) LowStockReport(ctx context.Context, asOf time.Time) (LowStockReport, error) {
	totals := r.fleetTotals(ctx, asOf)

	report := LowStockReport{Threshold: r.Threshold}
	for productID, units := range totals {
		if units < r.Threshold {
			report.Items = append(report.Items, LowStockItem{ProductID: productID, Units: units})
		}
	}
	slices.SortFunc(report.Items, func(a, b LowStockItem) int {
		if a.ProductID < b.ProductID {
			return -1
		}
		if a.ProductID > b.ProductID {
			return 1
		}
		return 0
	})
	return report, nil
}

// fleetTotals returns product->units across all warehouses, going through the
// snapshot cache when one is wired. Cache failures degrade to a direct walk.
func (r *Reporter) fleetTotals(ctx context.Context, asOf time.Time) map[string]int {
	if r.Snapshots != nil {
		cached, ok, err := r.Snapshots.Get(ctx)
		if err != nil {
			log.Printf("stock snapshot cache get failed: %v", err)
		} else if ok {
			return cached
		}
	}

	totals := map[string]int{}
	for _, w := range r.Directory.List() {
		for productID, units := range w.AllAvailableStock(asOf) {
			totals[productID] += units
		}
	}

	if r.Snapshots != nil {
		if err := r.Snapshots.Put(ctx, totals); err != nil {
			log.Printf("stock snapshot cache put failed: %v", err)
		}
	}
	return totals
}

// RouteReport lists the planned route distance per completed order and the
// fleet total. Orders without an attached route count as distance zero.
func (r *Reporter) RouteReport(ctx context.Context) (RouteReport, error) {
	orders, err := r.Orders.ListOrders(ctx)
	if err != nil {
		return RouteReport{}, fmt.Errorf("route report: list orders: %w", err)
	}

	report := RouteReport{Orders: make([]OrderDistance, 0, len(orders))}
	for _, order := range orders {
		dist := 0.0
		if order.Route != nil {
			dist = order.Route.TotalDistance
		}
		report.Orders = append(report.Orders, OrderDistance{OrderID: order.ID, Distance: dist})
		report.TotalDistance += dist
	}
	return report, nil
}
