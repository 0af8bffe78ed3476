package services

import (
	"fmt"

	"fulfillment-route-service/internal/domain"
)

// One distance unit costs one minute of the delivery window.
const minutesPerDistanceUnit = 1.0

// Plan a closed delivery tour using a greedy nearest-neighbor algorithm.
//
// points is [depot, warehouse_1..warehouse_k, customer] and warehouseCount is
// k. The algorithm minimizes immediate travel distance at each step; it does
// not attempt global route optimization (e.g., TSP solvers). The design
// prioritizes determinism and simplicity over optimality.
//
// The [windowStart, windowEnd) hour window is converted to a distance budget
// (one unit per minute); exceeding it flips WithinTimeWindow to false but the
// route is still returned. The caller decides what to do with the warning.
func ComputeRoute(
	points []domain.Point,
	warehouseCount int,
	customerIndex int,
	windowStart int,
	windowEnd int,
) (domain.Route, error) {
	if len(points) == 0 {
		return domain.Route{}, fmt.Errorf("compute route: points must not be empty")
	}
	if customerIndex < 0 || customerIndex >= len(points) {
		return domain.Route{}, fmt.Errorf("compute route: customer index %d out of range", customerIndex)
	}
	if warehouseCount < 0 || warehouseCount >= len(points) {
		return domain.Route{}, fmt.Errorf("compute route: warehouse count %d out of range", warehouseCount)
	}

	visited := make([]bool, len(points))
	sequence := []int{0}
	visited[0] = true

	current := 0
	total := 0.0

	for step := 0; step < warehouseCount; step++ {
		best := -1
		bestDist := 0.0

		// Select the next stop by minimum distance (greedy step). The lowest
		// index wins ties so repeated runs produce identical routes.
		for i := 1; i <= warehouseCount; i++ {
			if visited[i] {
				continue
			}
			d := points[current].DistanceTo(points[i])
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}

		// No unvisited warehouse remains; should not occur within the step
		// count, but stop rather than loop on a stale index.
		if best == -1 {
			break
		}

		sequence = append(sequence, best)
		visited[best] = true
		total += bestDist
		current = best
	}

	if !visited[customerIndex] {
		total += points[current].DistanceTo(points[customerIndex])
		sequence = append(sequence, customerIndex)
		visited[customerIndex] = true
		current = customerIndex
	}

	// Close the loop back to the depot for total route metrics.
	if current != 0 {
		total += points[current].DistanceTo(points[0])
		sequence = append(sequence, 0)
	}

	windowHours := windowEnd - windowStart
	if windowHours < 0 {
		windowHours = 0
	}
	budget := float64(windowHours) * 60 * minutesPerDistanceUnit

	return domain.Route{
		Sequence:         sequence,
		TotalDistance:    total,
		WithinTimeWindow: total <= budget,
	}, nil
}
