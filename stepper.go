package astargrid

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Point
	Open      map[Point]bool
	Closed    map[Point]bool
	Done      bool
	Found     bool
	Path      []Point
	StepIndex int
}

// Stepper advances a search one node selection at a time. It runs the same
// engine as Search, so stepping to completion yields the same path.
type Stepper struct {
	state     *searchState
	stepCount int
}

// NewStepper prepares a search without running it.
func NewStepper(grid *Grid, start, end Point, options ...Option) (*Stepper, error) {
	state, err := newSearchState(grid, start, end, newOptions(options))
	if err != nil {
		return nil, err
	}
	return &Stepper{state: state}, nil
}

// Step advances the search by one node selection and returns a snapshot.
// Once the search is done every call returns the final snapshot.
func (s *Stepper) Step() StepSnapshot {
	if !s.state.done {
		s.stepCount++
		s.state.step()
	}
	return s.snapshot()
}

// Done reports whether the search has finished.
func (s *Stepper) Done() bool {
	return s.state.done
}

// Result returns the outcome so far. It is final once Done reports true.
func (s *Stepper) Result() Result {
	return s.state.result()
}

func (s *Stepper) snapshot() StepSnapshot {
	snap := StepSnapshot{
		Open:      s.openSetToBoolMap(),
		Closed:    s.closedSetToBoolMap(),
		Done:      s.state.done,
		Found:     s.state.found,
		StepIndex: s.stepCount,
	}
	if s.state.current != noParent {
		snap.Current = s.state.arena.get(s.state.current).point
	}
	if s.state.found {
		snap.Path = s.state.path()
	}
	return snap
}

func (s *Stepper) openSetToBoolMap() map[Point]bool {
	m := make(map[Point]bool, s.state.openSet.Len())
	for _, p := range s.state.openSet.members() {
		m[p] = true
	}
	return m
}

func (s *Stepper) closedSetToBoolMap() map[Point]bool {
	m := make(map[Point]bool, s.state.closedSet.Size())
	s.state.closedSet.Each(func(p Point) {
		m[p] = true
	})
	return m
}
