package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdrpinto/astargrid"
)

// readRows reads one grid row per line from path, or from stdin when path
// is "-".
func readRows(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var rows []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16<<20)
	for scanner.Scan() {
		rows = append(rows, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid %s is empty", path)
	}
	return rows, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (astargrid.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return astargrid.Point{}, fmt.Errorf("point %q must look like x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return astargrid.Point{}, fmt.Errorf("point %q: bad x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return astargrid.Point{}, fmt.Errorf("point %q: bad y: %w", s, err)
	}
	return astargrid.Point{X: x, Y: y}, nil
}

// endpointFlags are the --grid, --start and --end flags shared by find and
// render.
type endpointFlags struct {
	grid  string
	start string
	end   string
}

func (f *endpointFlags) load(stdin io.Reader, marker rune) (*astargrid.Grid, astargrid.Point, astargrid.Point, error) {
	var start, end astargrid.Point
	rows, err := readRows(f.grid, stdin)
	if err != nil {
		return nil, start, end, err
	}
	if start, err = parsePoint(f.start); err != nil {
		return nil, start, end, fmt.Errorf("--start: %w", err)
	}
	if end, err = parsePoint(f.end); err != nil {
		return nil, start, end, fmt.Errorf("--end: %w", err)
	}
	return astargrid.NewGrid(rows, astargrid.WithBlockedMarker(marker)), start, end, nil
}
