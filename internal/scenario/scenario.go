// Package scenario loads grids and search queries from YAML files and checks
// search results against recorded expectations.
package scenario

import (
	"fmt"
	"os"
	"reflect"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/astargrid"
)

// File is one grid with the queries to run on it.
type File struct {
	Name          string   `yaml:"name"`
	BlockedMarker string   `yaml:"blocked_marker"`
	Grid          []string `yaml:"grid"`
	Queries       []Query  `yaml:"queries"`
}

// Query is a start/end pair. Expect is nil when the query has no recorded
// answer; an empty list expects no path.
type Query struct {
	ID     string             `yaml:"id"`
	Start  astargrid.Point    `yaml:"start"`
	End    astargrid.Point    `yaml:"end"`
	Expect *[]astargrid.Point `yaml:"expect"`
}

// Mismatch describes a result that differs from its expectation.
type Mismatch struct {
	ID       string
	Expected []astargrid.Point
	Got      []astargrid.Point
	Err      error
}

func (m Mismatch) String() string {
	if m.Err != nil {
		return fmt.Sprintf("%s: %v", m.ID, m.Err)
	}
	return fmt.Sprintf("%s: expected %v, got %v", m.ID, m.Expected, m.Got)
}

// Load reads and validates a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &file, nil
}

func (f *File) Validate() error {
	if len(f.Grid) == 0 {
		return fmt.Errorf("grid must have at least one row")
	}
	if f.BlockedMarker != "" && utf8.RuneCountInString(f.BlockedMarker) != 1 {
		return fmt.Errorf("blocked_marker must be a single character, got %q", f.BlockedMarker)
	}
	if len(f.Queries) == 0 {
		return fmt.Errorf("at least one query is required")
	}
	seen := make(map[string]bool, len(f.Queries))
	for i, q := range f.Queries {
		if q.ID == "" {
			continue
		}
		if seen[q.ID] {
			return fmt.Errorf("query %d: duplicate id %q", i, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

// Marker returns the blocked marker, falling back to fallback when the file
// does not set one.
func (f *File) Marker(fallback rune) rune {
	if f.BlockedMarker == "" {
		return fallback
	}
	marker, _ := utf8.DecodeRuneInString(f.BlockedMarker)
	return marker
}

// NewGrid builds the scenario grid.
func (f *File) NewGrid(fallbackMarker rune) *astargrid.Grid {
	return astargrid.NewGrid(f.Grid, astargrid.WithBlockedMarker(f.Marker(fallbackMarker)))
}

// SearchQueries converts the scenario queries for astargrid.SearchAll.
// Unnamed queries are named after their position.
func (f *File) SearchQueries() []astargrid.Query {
	queries := make([]astargrid.Query, len(f.Queries))
	for i, q := range f.Queries {
		id := q.ID
		if id == "" {
			id = fmt.Sprintf("query-%d", i)
		}
		queries[i] = astargrid.Query{ID: id, Start: q.Start, End: q.End}
	}
	return queries
}

// Check compares results, in query order, against the recorded expectations.
func (f *File) Check(results []astargrid.QueryResult) []Mismatch {
	var mismatches []Mismatch
	for i, result := range results {
		if i >= len(f.Queries) {
			break
		}
		if result.Err != nil {
			mismatches = append(mismatches, Mismatch{ID: result.Query.ID, Err: result.Err})
			continue
		}
		expect := f.Queries[i].Expect
		if expect == nil {
			continue
		}
		expected := *expect
		if expected == nil {
			expected = []astargrid.Point{}
		}
		if !reflect.DeepEqual(result.Result.Path, expected) {
			mismatches = append(mismatches, Mismatch{
				ID:       result.Query.ID,
				Expected: expected,
				Got:      result.Result.Path,
			})
		}
	}
	return mismatches
}
