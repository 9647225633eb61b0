package astargrid

import (
	"container/heap"
	"errors"
	"fmt"
	"runtime"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/pdrpinto/astargrid/internal"
)

// ErrCoordinateOutOfBounds is returned when a start or end point does not
// address a cell of the grid.
var ErrCoordinateOutOfBounds = errors.New("coordinate out of bounds")

// Result contains the outcome of a search
type Result struct {
	Path          []Point
	Cost          int
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers int
	Heuristic       Heuristic
	Logger          *zap.Logger
	GridOptions     []GridOption
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many searches SearchAll runs at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithHeuristic replaces the default Manhattan heuristic.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithLogger sets the logger used for debug output. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithGridOptions passes grid construction options to FindPath.
func WithGridOptions(gridOptions ...GridOption) Option {
	return func(options *Options) { options.GridOptions = append(options.GridOptions, gridOptions...) }
}

func newOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
		Heuristic:       Manhattan,
		Logger:          zap.NewNop(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = zap.NewNop()
	}
	return searchOptions
}

// Search runs A* from start to end over grid with 8-directional unit-cost
// moves.
//
// A blocked or unreachable destination is not an error: the Result has
// Found == false and an empty Path. Closed cells are never reopened, so with
// the default heuristic the path is not guaranteed to be globally shortest.
// The only error is ErrCoordinateOutOfBounds.
func Search(grid *Grid, start, end Point, options ...Option) (Result, error) {
	state, err := newSearchState(grid, start, end, newOptions(options))
	if err != nil {
		return Result{Path: []Point{}}, err
	}
	for !state.done {
		state.step()
	}
	return state.result(), nil
}

// searchState is the engine shared by Search and Stepper.
type searchState struct {
	grid      *Grid
	start     Point
	goal      Point
	heuristic Heuristic
	logger    *zap.Logger

	arena     *nodeArena
	openSet   *PriorityQueue
	closedSet mapset.Set[Point]
	nextSeq   int

	expandedNodes int
	current       int
	terminal      int
	done          bool
	found         bool
}

func newSearchState(grid *Grid, start, goal Point, options Options) (*searchState, error) {
	for _, p := range []Point{start, goal} {
		if !grid.Contains(p) {
			return nil, fmt.Errorf("%w: %v", ErrCoordinateOutOfBounds, p)
		}
	}

	arena := newNodeArena()
	s := &searchState{
		grid:      grid,
		start:     start,
		goal:      goal,
		heuristic: options.Heuristic,
		logger:    options.Logger,
		arena:     arena,
		openSet:   newPriorityQueue(arena),
		closedSet: mapset.New[Point](),
		current:   noParent,
		terminal:  noParent,
	}

	if grid.Blocked(goal.X, goal.Y) || grid.Blocked(start.X, start.Y) {
		s.logger.Debug("endpoint blocked, skipping search",
			zap.Stringer("start", start),
			zap.Stringer("end", goal),
		)
		s.done = true
		return s, nil
	}

	s.open(start, noParent, 0)
	return s, nil
}

func (s *searchState) open(p Point, parent, g int) {
	id := s.arena.add(searchNode{
		point:  p,
		g:      g,
		h:      s.heuristic(p, s.goal),
		parent: parent,
		seq:    s.nextSeq,
	})
	s.nextSeq++
	heap.Push(s.openSet, id)
}

// step selects the best open node and either finishes on it or expands it.
func (s *searchState) step() {
	if s.done {
		return
	}
	if s.openSet.Len() == 0 {
		s.done = true
		s.logger.Debug("open set exhausted",
			zap.Stringer("start", s.start),
			zap.Stringer("end", s.goal),
			zap.Int("expanded", s.expandedNodes),
		)
		return
	}

	currentID := s.openSet.ids[0]
	current := s.arena.get(currentID)
	s.current = currentID

	if current.point == s.goal {
		s.done = true
		s.found = true
		s.terminal = currentID
		s.logger.Debug("path found",
			zap.Stringer("start", s.start),
			zap.Stringer("end", s.goal),
			zap.Int("cost", current.g),
			zap.Int("expanded", s.expandedNodes),
		)
		return
	}

	heap.Pop(s.openSet)
	s.closedSet.Put(current.point)
	s.expandedNodes++

	// current is not used past this point: opening neighbours may grow the arena.
	currentPoint, tentativeG := current.point, current.g+1
	for _, offset := range neighborOffsets {
		neighbor := currentPoint.add(offset)
		if !s.grid.Contains(neighbor) || s.grid.Blocked(neighbor.X, neighbor.Y) || s.closedSet.Has(neighbor) {
			continue
		}

		id, discovered := s.arena.lookup(neighbor)
		if !discovered {
			s.open(neighbor, currentID, tentativeG)
			continue
		}

		node := s.arena.get(id)
		if tentativeG < node.g {
			node.g = tentativeG
			node.parent = currentID
			heap.Fix(s.openSet, node.index)
		}
	}
}

func (s *searchState) result() Result {
	if !s.found {
		return Result{
			Path:          []Point{},
			ExpandedNodes: s.expandedNodes,
		}
	}
	return Result{
		Path:          s.path(),
		Cost:          s.arena.get(s.terminal).g,
		ExpandedNodes: s.expandedNodes,
		Found:         true,
	}
}

func (s *searchState) path() []Point {
	ids := internal.ReconstructPath(s.terminal, s.arena.parentOf)
	path := make([]Point, len(ids))
	for i, id := range ids {
		path[i] = s.arena.get(id).point
	}
	return path
}
