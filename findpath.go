package astargrid

// FindPath builds a grid from rows and returns the path from
// (startX, startY) to (endX, endY), start and end inclusive. X indexes rows
// and Y indexes characters within a row.
//
// The path is empty when the destination is blocked or unreachable. An
// error is returned only for coordinates outside the grid.
func FindPath(rows []string, startX, startY, endX, endY int, options ...Option) ([]Point, error) {
	searchOptions := newOptions(options)
	grid := NewGrid(rows, searchOptions.GridOptions...)

	result, err := Search(grid, Point{X: startX, Y: startY}, Point{X: endX, Y: endY}, options...)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}
