package services

import (
	"math"
	"testing"

	"fulfillment-route-service/internal/domain"
)

func TestComputeRouteVisitsNearestWarehouseFirst(t *testing.T) {
	depot := domain.Point{X: 0, Y: 0}
	w1 := domain.Point{X: 5, Y: 5}
	w2 := domain.Point{X: 15, Y: 15}
	customer := domain.Point{X: 10, Y: 20}

	points := []domain.Point{depot, w1, w2, customer}
	route, err := ComputeRoute(points, 2, 3, 9, 17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantSeq := []int{0, 1, 2, 3, 0}
	if len(route.Sequence) != len(wantSeq) {
		t.Fatalf("sequence = %v, want %v", route.Sequence, wantSeq)
	}
	for i := range wantSeq {
		if route.Sequence[i] != wantSeq[i] {
			t.Fatalf("sequence = %v, want %v", route.Sequence, wantSeq)
		}
	}

	wantDist := depot.DistanceTo(w1) + w1.DistanceTo(w2) + w2.DistanceTo(customer) + customer.DistanceTo(depot)
	if math.Abs(route.TotalDistance-wantDist) > 1e-9 {
		t.Fatalf("distance = %f, want %f", route.TotalDistance, wantDist)
	}
	if !route.WithinTimeWindow {
		t.Fatal("short tour must fit a [9,17) window")
	}
}

func TestComputeRouteCustomerOnly(t *testing.T) {
	depot := domain.Point{X: 0, Y: 0}
	customer := domain.Point{X: 3, Y: 4}

	route, err := ComputeRoute([]domain.Point{depot, customer}, 0, 1, 9, 17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.Sequence) != 3 || route.Sequence[0] != 0 || route.Sequence[1] != 1 || route.Sequence[2] != 0 {
		t.Fatalf("sequence = %v, want [0 1 0]", route.Sequence)
	}
	if math.Abs(route.TotalDistance-10) > 1e-9 {
		t.Fatalf("distance = %f, want 10", route.TotalDistance)
	}
}

func TestComputeRouteTimeWindowBudget(t *testing.T) {
	depot := domain.Point{X: 0, Y: 0}

	// [9,17) yields a budget of 480 distance units. A round trip to a
	// customer 240 units out consumes exactly the budget.
	onBudget := domain.Point{X: 240, Y: 0}
	route, err := ComputeRoute([]domain.Point{depot, onBudget}, 0, 1, 9, 17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(route.TotalDistance-480) > 1e-9 {
		t.Fatalf("distance = %f, want 480", route.TotalDistance)
	}
	if !route.WithinTimeWindow {
		t.Fatal("distance of exactly 480 must be within a [9,17) window")
	}

	// A slightly longer round trip exceeds the budget; the route is still returned.
	routeOver, err := ComputeRoute([]domain.Point{depot, {X: 240, Y: 11}}, 0, 1, 9, 17)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if routeOver.TotalDistance <= 480 {
		t.Fatalf("test setup: distance = %f, want > 480", routeOver.TotalDistance)
	}
	if routeOver.WithinTimeWindow {
		t.Fatal("distance over 480 must flag the window as infeasible")
	}
	if len(routeOver.Sequence) == 0 {
		t.Fatal("infeasible window must still return the route")
	}
}

func TestComputeRouteInvalidWindowClampedToZero(t *testing.T) {
	depot := domain.Point{X: 0, Y: 0}
	customer := domain.Point{X: 1, Y: 0}

	route, err := ComputeRoute([]domain.Point{depot, customer}, 0, 1, 17, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.WithinTimeWindow {
		t.Fatal("a reversed window clamps to a zero budget; any travel must flag it")
	}
}

func TestComputeRouteRejectsBadIndices(t *testing.T) {
	points := []domain.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}

	if _, err := ComputeRoute(nil, 0, 0, 9, 17); err == nil {
		t.Fatal("expected error for empty points")
	}
	if _, err := ComputeRoute(points, 0, 5, 9, 17); err == nil {
		t.Fatal("expected error for customer index out of range")
	}
	if _, err := ComputeRoute(points, 2, 1, 9, 17); err == nil {
		t.Fatal("expected error for warehouse count out of range")
	}
}
