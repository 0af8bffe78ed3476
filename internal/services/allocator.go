package services

import (
	"fmt"
	"log"
	"slices"
	"time"

	"fulfillment-route-service/internal/domain"
)

// ProcessOrder fulfills an order against the fleet and plans its delivery
// route.
//
// The order is checked for feasibility across every requested product before
// any stock is removed; a short product rejects the whole order with zero
// mutation. Allocation then walks each product's candidate warehouses in
// ascending distance from the customer (warehouse id breaks ties), drawing
// FEFO stock from each until the need is met. The warehouses that supplied
// stock become the route's intermediate stops.
//
// All orderings are total with explicit tie-breaks: identical inputs allocate
// identical batches and produce an identical route.
func ProcessOrder(dir *domain.Directory, order *domain.Order, asOf time.Time) (*domain.FulfillmentResult, error) {
	// Sorted product ids keep the per-product pass deterministic.
	productIDs := make([]string, 0, len(order.Items))
	for productID := range order.Items {
		productIDs = append(productIDs, productID)
	}
	slices.Sort(productIDs)

	// Feasibility pre-check: runs fully before any removal.
	for _, productID := range productIDs {
		requested := order.Items[productID]
		available := dir.TotalAvailable(productID, asOf)
		if available < requested {
			return nil, fmt.Errorf("process order %s: %w", order.ID, &domain.InsufficientStockError{
				ProductID: productID,
				Requested: requested,
				Available: available,
			})
		}
	}

	allocations := make(map[string][]domain.WarehouseAllocation, len(productIDs))
	usedWarehouses := map[string]struct{}{}

	for _, productID := range productIDs {
		remaining := order.Items[productID]

		candidates := stockedCandidates(dir, productID, order.Customer, asOf)
		for _, w := range candidates {
			if remaining <= 0 {
				break
			}
			available := w.AvailableStock(productID, asOf)
			need := remaining
			if available < need {
				need = available
			}
			batches, err := w.RemoveStock(productID, need, asOf)
			if err != nil {
				return nil, fmt.Errorf("process order %s: warehouse %s: %w", order.ID, w.ID, err)
			}
			taken := 0
			for _, b := range batches {
				taken += b.QuantityTaken
			}
			if taken == 0 {
				continue
			}

			allocations[productID] = append(allocations[productID], domain.WarehouseAllocation{
				WarehouseID: w.ID,
				Batches:     batches,
			})
			usedWarehouses[w.ID] = struct{}{}
			remaining -= taken
		}

		// Only reachable when the pre-check and the allocation observed
		// different ledger states. Surface it loudly: stock already removed
		// for earlier products is not restored.
		if remaining > 0 {
			err := &domain.PartialFulfillmentError{
				OrderID:   order.ID,
				ProductID: productID,
				Shortfall: remaining,
			}
			log.Printf("consistency violation: order=%s product=%s shortfall=%d", order.ID, productID, remaining)
			return nil, fmt.Errorf("process order %s: %w", order.ID, err)
		}
	}

	used := make([]string, 0, len(usedWarehouses))
	for id := range usedWarehouses {
		used = append(used, id)
	}
	slices.Sort(used)

	route, err := planOrderRoute(dir, order, used)
	if err != nil {
		return nil, fmt.Errorf("process order %s: %w", order.ID, err)
	}
	order.Route = &route

	return &domain.FulfillmentResult{
		OrderID:     order.ID,
		Allocations: allocations,
		Warehouses:  used,
		Route:       route,
	}, nil
}

// stockedCandidates returns the warehouses holding any non-expired stock of a
// product, sorted by distance to the customer with warehouse id as tie-break.
func stockedCandidates(dir *domain.Directory, productID string, customer domain.Point, asOf time.Time) []*domain.Warehouse {
	candidates := []*domain.Warehouse{}
	for _, w := range dir.List() {
		if w.AvailableStock(productID, asOf) > 0 {
			candidates = append(candidates, w)
		}
	}

	slices.SortFunc(candidates, func(a, b *domain.Warehouse) int {
		da := a.Location.DistanceTo(customer)
		db := b.Location.DistanceTo(customer)
		if da < db {
			return -1
		}
		if da > db {
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return candidates
}

// planOrderRoute assembles the point list the planner expects (depot, used
// warehouses sorted by id, customer) and resolves the returned index sequence
// into labeled stops.
func planOrderRoute(dir *domain.Directory, order *domain.Order, used []string) (domain.Route, error) {
	points := make([]domain.Point, 0, len(used)+2)
	labels := make([]string, 0, len(used)+2)

	points = append(points, dir.Depot())
	labels = append(labels, "W0")

	for _, id := range used {
		w, ok := dir.Find(id)
		if !ok {
			return domain.Route{}, fmt.Errorf("plan order route: unknown warehouse %q", id)
		}
		points = append(points, w.Location)
		labels = append(labels, w.ID)
	}

	customerIndex := len(points)
	points = append(points, order.Customer)
	labels = append(labels, "CUSTOMER")

	route, err := ComputeRoute(points, len(used), customerIndex, order.WindowStart, order.WindowEnd)
	if err != nil {
		return domain.Route{}, err
	}

	route.Stops = make([]domain.RouteStop, 0, len(route.Sequence))
	for _, idx := range route.Sequence {
		route.Stops = append(route.Stops, domain.RouteStop{
			Label:    labels[idx],
			Location: points[idx],
		})
	}
	return route, nil
}
