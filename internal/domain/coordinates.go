package domain

import "math"

// Immutable planar coordinates on the delivery grid.
// Euclidean distance is used as a proxy for road distance.
type Point struct {
	X int
	Y int
}

// Euclidean distance to another point, in grid units.
func (p Point) DistanceTo(q Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
