package astargrid

import (
	"strings"

	"github.com/zeebo/xxh3"
)

// DefaultBlockedMarker is the cell marker treated as impassable unless
// WithBlockedMarker says otherwise.
const DefaultBlockedMarker = 'X'

// Grid is an immutable lookup of blocked cells.
//
// Rows may have different lengths; a coordinate is valid only within its
// own row.
type Grid struct {
	rows    []string
	blocked [][]bool
	marker  rune
}

type gridOptions struct {
	blockedMarker rune
}

// GridOption configures grid construction.
type GridOption func(*gridOptions)

// WithBlockedMarker sets the marker denoting a blocked cell.
func WithBlockedMarker(marker rune) GridOption {
	return func(options *gridOptions) { options.blockedMarker = marker }
}

// NewGrid builds a grid from rows of cell markers. Any marker other than the
// blocked one is passable.
func NewGrid(rows []string, options ...GridOption) *Grid {
	gridOpts := gridOptions{blockedMarker: DefaultBlockedMarker}
	for _, option := range options {
		option(&gridOpts)
	}

	grid := &Grid{
		rows:    make([]string, len(rows)),
		blocked: make([][]bool, len(rows)),
		marker:  gridOpts.blockedMarker,
	}
	copy(grid.rows, rows)

	for i, rowText := range rows {
		cells := []rune(rowText)
		row := make([]bool, len(cells))
		for j, cell := range cells {
			row[j] = cell == gridOpts.blockedMarker
		}
		grid.blocked[i] = row
	}

	return grid
}

// Blocked reports whether the cell at (x, y) is impassable. The coordinate
// must be in bounds; see Contains.
func (g *Grid) Blocked(x, y int) bool {
	return g.blocked[x][y]
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return len(g.blocked)
}

// RowLength returns the number of cells in row x.
func (g *Grid) RowLength(x int) int {
	return len(g.blocked[x])
}

// Contains reports whether p addresses a cell of the grid.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < len(g.blocked) && p.Y >= 0 && p.Y < len(g.blocked[p.X])
}

// BlockedMarker returns the marker this grid was built with.
func (g *Grid) BlockedMarker() rune {
	return g.marker
}

// Fingerprint hashes the blocked marker and the rows. Grids built from the
// same input share a fingerprint.
func (g *Grid) Fingerprint() uint64 {
	hasher := xxh3.New()
	hasher.WriteString(string(g.marker))
	for _, row := range g.rows {
		hasher.WriteString("\n")
		hasher.WriteString(row)
	}
	return hasher.Sum64()
}

func (g *Grid) String() string {
	return strings.Join(g.rows, "\n")
}
