package astargrid

// Heuristic returns the estimated cost from one point to another.
type Heuristic func(from, to Point) int

// Manhattan is the sum of absolute coordinate differences. It is the
// default heuristic.
func Manhattan(from, to Point) int {
	return abs(from.X-to.X) + abs(from.Y-to.Y)
}

// Chebyshev is the larger of the absolute coordinate differences, which is
// the exact move count on an open grid with unit-cost diagonals.
func Chebyshev(from, to Point) int {
	return max(abs(from.X-to.X), abs(from.Y-to.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
