// Package render draws grids and paths as PNG images.
package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/pdrpinto/astargrid"
)

var (
	colorOutside = color.RGBA{0x60, 0x60, 0x60, 0xff}
	colorOpen    = color.White
	colorBlocked = color.Black
	colorPath    = color.RGBA{0xd0, 0x20, 0x20, 0xff}
	colorStart   = color.RGBA{0, 0xc0, 0, 0xff}
	colorEnd     = color.RGBA{0, 0, 0xff, 0xff}
)

// Image draws grid with one cellSize square per cell. Rows run top to
// bottom; cells past the end of a short row are grey. The path, if any, is
// drawn as a line through cell centres with start and end markers.
func Image(grid *astargrid.Grid, path []astargrid.Point, cellSize int) image.Image {
	return draw(grid, path, cellSize).Image()
}

// PNG encodes the image produced by Image to w.
func PNG(w io.Writer, grid *astargrid.Grid, path []astargrid.Point, cellSize int) error {
	return draw(grid, path, cellSize).EncodePNG(w)
}

// SavePNG writes the image produced by Image to filename.
func SavePNG(filename string, grid *astargrid.Grid, path []astargrid.Point, cellSize int) error {
	return draw(grid, path, cellSize).SavePNG(filename)
}

func draw(grid *astargrid.Grid, path []astargrid.Point, cellSize int) *gg.Context {
	cellSize = max(cellSize, 1)
	columns := 1
	for x := range grid.Rows() {
		columns = max(columns, grid.RowLength(x))
	}
	rows := max(grid.Rows(), 1)

	scale := float64(cellSize)
	dc := gg.NewContext(columns*cellSize, rows*cellSize)
	dc.SetColor(colorOutside)
	dc.Clear()

	for x := range grid.Rows() {
		for y := range grid.RowLength(x) {
			if grid.Blocked(x, y) {
				dc.SetColor(colorBlocked)
			} else {
				dc.SetColor(colorOpen)
			}
			dc.DrawRectangle(float64(y)*scale, float64(x)*scale, scale, scale)
			dc.Fill()
		}
	}

	if len(path) == 0 {
		return dc
	}

	center := func(p astargrid.Point) (float64, float64) {
		return float64(p.Y)*scale + scale/2, float64(p.X)*scale + scale/2
	}

	dc.SetColor(colorPath)
	dc.SetLineWidth(max(scale/4, 1))
	dc.MoveTo(center(path[0]))
	for _, p := range path[1:] {
		dc.LineTo(center(p))
	}
	dc.Stroke()

	radius := scale / 3
	startX, startY := center(path[0])
	dc.SetColor(colorStart)
	dc.DrawCircle(startX, startY, radius)
	dc.Fill()

	endX, endY := center(path[len(path)-1])
	dc.SetColor(colorEnd)
	dc.DrawCircle(endX, endY, radius)
	dc.Fill()

	return dc
}
