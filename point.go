package astargrid

import "fmt"

// Point is a grid coordinate. X indexes the row and Y the column within it.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// neighborOffsets lists the 8 adjacent cells in expansion order:
// orthogonal first, then diagonal.
var neighborOffsets = [8]Point{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

func (p Point) add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}
