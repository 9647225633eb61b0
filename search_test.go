package astargrid

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
)

var (
	gridSimple = []string{
		".X.",
		".X.",
		"...",
	}
	gridDiagonalWall = []string{
		".X....",
		".X....",
		"..XX..",
		"...XX.",
		"....X.",
		"......",
	}
	gridHorizontalWall = []string{
		"......",
		"......",
		".XXXX.",
		"......",
		"......",
		"......",
	}
	gridEnclosed = []string{
		".....",
		".XXX.",
		".X.X.",
		".XXX.",
		".....",
	}
)

func TestSearch(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		rows          []string
		start, end    Point
		heuristic     Heuristic
		expectedPath  []Point
		expectedCost  int
		expectedFound bool
	}{
		"simple": {
			rows:          gridSimple,
			start:         Point{2, 1},
			end:           Point{0, 2},
			expectedPath:  []Point{{2, 1}, {1, 2}, {0, 2}},
			expectedCost:  2,
			expectedFound: true,
		},
		"diagonal-wall": {
			// Manhattan ranking reaches (1,5) through (2,5); (2,4) is an
			// equally short alternative that this engine does not pick.
			rows:          gridDiagonalWall,
			start:         Point{5, 2},
			end:           Point{1, 5},
			expectedPath:  []Point{{5, 2}, {4, 3}, {5, 4}, {4, 5}, {3, 5}, {2, 5}, {1, 5}},
			expectedCost:  6,
			expectedFound: true,
		},
		"horizontal-wall": {
			rows:          gridHorizontalWall,
			start:         Point{4, 3},
			end:           Point{0, 3},
			expectedPath:  []Point{{4, 3}, {3, 4}, {2, 5}, {1, 4}, {0, 3}},
			expectedCost:  4,
			expectedFound: true,
		},
		"open-diagonal": {
			rows:          []string{".....", ".....", ".....", ".....", "....."},
			start:         Point{0, 0},
			end:           Point{4, 4},
			expectedPath:  []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}},
			expectedCost:  4,
			expectedFound: true,
		},
		"start-is-end": {
			rows:          gridSimple,
			start:         Point{0, 0},
			end:           Point{0, 0},
			expectedPath:  []Point{{0, 0}},
			expectedFound: true,
		},
		"ragged-rows": {
			rows:          []string{"...", ".", ".....", "..."},
			start:         Point{0, 2},
			end:           Point{2, 4},
			expectedPath:  []Point{{0, 2}, {0, 1}, {1, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}},
			expectedCost:  6,
			expectedFound: true,
		},
		"end-blocked": {
			rows:         gridSimple,
			start:        Point{0, 0},
			end:          Point{0, 1},
			expectedPath: []Point{},
		},
		"start-blocked": {
			rows:         gridSimple,
			start:        Point{1, 1},
			end:          Point{2, 2},
			expectedPath: []Point{},
		},
		"end-enclosed": {
			rows:         gridEnclosed,
			start:        Point{0, 0},
			end:          Point{2, 2},
			expectedPath: []Point{},
		},
		"closed-cells-not-reopened": {
			// (2,2) is closed with g=2 before the cheaper route through
			// (1,1) is known, so the result costs one move more than the
			// shortest path.
			rows:          []string{"....", "X.X.", ".X.."},
			start:         Point{2, 3},
			end:           Point{0, 0},
			expectedPath:  []Point{{2, 3}, {1, 3}, {0, 2}, {0, 1}, {0, 0}},
			expectedCost:  4,
			expectedFound: true,
		},
		"closed-cells-not-reopened-chebyshev": {
			rows:          []string{"....", "X.X.", ".X.."},
			start:         Point{2, 3},
			end:           Point{0, 0},
			heuristic:     Chebyshev,
			expectedPath:  []Point{{2, 3}, {2, 2}, {1, 1}, {0, 0}},
			expectedCost:  3,
			expectedFound: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var options []Option
			if tc.heuristic != nil {
				options = append(options, WithHeuristic(tc.heuristic))
			}

			result, err := Search(NewGrid(tc.rows), tc.start, tc.end, options...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result.Path, tc.expectedPath) {
				t.Errorf("expected path %v, got %v", tc.expectedPath, result.Path)
			}
			if result.Cost != tc.expectedCost {
				t.Errorf("expected cost %d, got %d", tc.expectedCost, result.Cost)
			}
			if result.Found != tc.expectedFound {
				t.Errorf("expected found=%v, got %v", tc.expectedFound, result.Found)
			}
		})
	}
}

func TestSearchExpandedNodes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		rows     []string
		start    Point
		end      Point
		expanded int
	}{
		{"simple", gridSimple, Point{2, 1}, Point{0, 2}, 2},
		{"diagonal-wall", gridDiagonalWall, Point{5, 2}, Point{1, 5}, 9},
		{"enclosed", gridEnclosed, Point{0, 0}, Point{2, 2}, 16},
		{"end-blocked", gridSimple, Point{0, 0}, Point{1, 1}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Search(NewGrid(tc.rows), tc.start, tc.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ExpandedNodes != tc.expanded {
				t.Errorf("expected %d expanded nodes, got %d", tc.expanded, result.ExpandedNodes)
			}
		})
	}
}

func TestSearchOutOfBounds(t *testing.T) {
	t.Parallel()

	grid := NewGrid([]string{"...", ".", "..."})
	testCases := map[string]struct {
		start, end Point
	}{
		"negative-row":       {start: Point{-1, 0}, end: Point{0, 0}},
		"row-past-end":       {start: Point{0, 0}, end: Point{3, 0}},
		"column-past-row":    {start: Point{1, 1}, end: Point{0, 0}},
		"negative-column":    {start: Point{0, 0}, end: Point{2, -1}},
		"column-past-length": {start: Point{0, 3}, end: Point{2, 2}},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			result, err := Search(grid, tc.start, tc.end)
			if !errors.Is(err, ErrCoordinateOutOfBounds) {
				t.Fatalf("expected ErrCoordinateOutOfBounds, got %v", err)
			}
			if result.Found || len(result.Path) != 0 {
				t.Errorf("expected empty result, got %+v", result)
			}
		})
	}
}

// TestSearchProperties checks path shape on random grids against a
// breadth-first reference.
func TestSearchProperties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 1024))
	for i := 0; i < 300; i++ {
		rows := randomRows(rng, 2+rng.IntN(9), 2+rng.IntN(9), 0.3)
		grid := NewGrid(rows)
		start := Point{rng.IntN(grid.Rows()), 0}
		start.Y = rng.IntN(grid.RowLength(start.X))
		end := Point{rng.IntN(grid.Rows()), 0}
		end.Y = rng.IntN(grid.RowLength(end.X))

		result, err := Search(grid, start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		shortest, reachable := bfsDistance(grid, start, end)

		if !reachable {
			if result.Found || len(result.Path) != 0 {
				t.Fatalf("grid\n%s\nexpected no path from %v to %v, got %v", grid, start, end, result.Path)
			}
			continue
		}
		if !result.Found {
			t.Fatalf("grid\n%s\nexpected a path from %v to %v", grid, start, end)
		}

		path := result.Path
		if path[0] != start || path[len(path)-1] != end {
			t.Fatalf("path %v does not run from %v to %v", path, start, end)
		}
		if len(path)-1 != result.Cost {
			t.Errorf("cost %d does not match path %v", result.Cost, path)
		}
		if result.Cost < shortest {
			t.Errorf("cost %d below breadth-first distance %d", result.Cost, shortest)
		}
		for j, p := range path {
			if grid.Blocked(p.X, p.Y) {
				t.Fatalf("path %v crosses blocked cell %v", path, p)
			}
			if j == 0 {
				continue
			}
			q := path[j-1]
			if p == q || abs(p.X-q.X) > 1 || abs(p.Y-q.Y) > 1 {
				t.Fatalf("path %v has non-adjacent step %v -> %v", path, q, p)
			}
		}
	}
}

func randomRows(rng *rand.Rand, rows, cols int, density float64) []string {
	out := make([]string, rows)
	for i := range out {
		var b strings.Builder
		for range cols {
			if rng.Float64() < density {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
		out[i] = b.String()
	}
	return out
}

func bfsDistance(grid *Grid, start, end Point) (int, bool) {
	if grid.Blocked(start.X, start.Y) || grid.Blocked(end.X, end.Y) {
		return 0, false
	}
	dist := map[Point]int{start: 0}
	queue := []Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == end {
			return dist[current], true
		}
		for _, offset := range neighborOffsets {
			next := current.add(offset)
			if !grid.Contains(next) || grid.Blocked(next.X, next.Y) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}
	return 0, false
}

func BenchmarkSearch(b *testing.B) {
	rng := rand.New(rand.NewPCG(42, 1024))
	b.ReportAllocs()

	for _, tc := range []struct {
		name string
		size int
	}{
		{name: "16x16", size: 16},
		{name: "64x64", size: 64},
		{name: "256x256", size: 256},
	} {
		b.Run(tc.name, func(b *testing.B) {
			rows := randomRows(rng, tc.size, tc.size, 0.2)
			rows[0] = strings.Repeat(".", tc.size)
			rows[tc.size-1] = strings.Repeat(".", tc.size)
			grid := NewGrid(rows)
			for b.Loop() {
				if _, err := Search(grid, Point{0, 0}, Point{tc.size - 1, tc.size - 1}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
