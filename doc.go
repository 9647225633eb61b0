// Package astargrid provides A* pathfinding over character grids.
//
// A grid is built from rows of cell markers; one marker (by default 'X')
// denotes a blocked cell. Movement is 8-directional with unit cost and the
// default heuristic is Manhattan distance.
//
// It exposes these entry points:
//
//   - FindPath: build a grid from rows and search it in one call.
//   - Search: run the algorithm to completion over a Grid and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - SearchAll: run many independent searches over one shared Grid using a worker pool.
//
// A Grid is read-only after construction and safe to share between
// goroutines. All search state is local to a single call.
package astargrid
