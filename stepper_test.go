package astargrid

import (
	"errors"
	"reflect"
	"testing"
)

func TestStepper(t *testing.T) {
	t.Parallel()

	grid := NewGrid(gridSimple)
	stepper, err := NewStepper(grid, Point{2, 1}, Point{0, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := stepper.Step()
	if first.Done {
		t.Fatal("search finished after the first step")
	}
	if first.Current != (Point{2, 1}) {
		t.Errorf("expected to expand the start first, got %v", first.Current)
	}
	if !first.Closed[Point{2, 1}] || len(first.Closed) != 1 {
		t.Errorf("expected only the start to be closed, got %v", first.Closed)
	}
	// (2,1) has neighbours (1,0), (2,0), (2,2), (1,2); (1,1) is blocked.
	expectedOpen := map[Point]bool{{1, 0}: true, {2, 0}: true, {2, 2}: true, {1, 2}: true}
	if !reflect.DeepEqual(first.Open, expectedOpen) {
		t.Errorf("expected open set %v, got %v", expectedOpen, first.Open)
	}

	var last StepSnapshot
	for !stepper.Done() {
		last = stepper.Step()
	}
	if !last.Found || last.StepIndex != 3 {
		t.Errorf("expected found at step 3, got found=%v step=%d", last.Found, last.StepIndex)
	}
	expectedPath := []Point{{2, 1}, {1, 2}, {0, 2}}
	if !reflect.DeepEqual(last.Path, expectedPath) {
		t.Errorf("expected path %v, got %v", expectedPath, last.Path)
	}

	again := stepper.Step()
	if again.StepIndex != last.StepIndex || !reflect.DeepEqual(again.Path, last.Path) {
		t.Errorf("stepping a finished search changed its snapshot: %+v", again)
	}
}

func TestStepperMatchesSearch(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		rows       []string
		start, end Point
		steps      int
	}{
		"diagonal-wall":   {rows: gridDiagonalWall, start: Point{5, 2}, end: Point{1, 5}, steps: 10},
		"horizontal-wall": {rows: gridHorizontalWall, start: Point{4, 3}, end: Point{0, 3}, steps: 10},
		"enclosed":        {rows: gridEnclosed, start: Point{0, 0}, end: Point{2, 2}, steps: 17},
		"end-blocked":     {rows: gridSimple, start: Point{0, 0}, end: Point{0, 1}, steps: 0},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			grid := NewGrid(tc.rows)
			want, err := Search(grid, tc.start, tc.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			stepper, err := NewStepper(grid, tc.start, tc.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var snap StepSnapshot
			for i := 0; i < 1000 && !snap.Done; i++ {
				snap = stepper.Step()
			}

			if snap.StepIndex != tc.steps {
				t.Errorf("expected %d steps, got %d", tc.steps, snap.StepIndex)
			}
			if !reflect.DeepEqual(stepper.Result(), want) {
				t.Errorf("stepper result %+v differs from search result %+v", stepper.Result(), want)
			}
			if snap.Found != want.Found {
				t.Errorf("expected found=%v, got %v", want.Found, snap.Found)
			}
		})
	}
}

func TestNewStepperOutOfBounds(t *testing.T) {
	_, err := NewStepper(NewGrid(gridSimple), Point{0, 0}, Point{0, 9})
	if !errors.Is(err, ErrCoordinateOutOfBounds) {
		t.Errorf("expected ErrCoordinateOutOfBounds, got %v", err)
	}
}
