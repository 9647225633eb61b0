package astargrid

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Query is one start/end pair for SearchAll.
type Query struct {
	ID    string `json:"id" yaml:"id"`
	Start Point  `json:"start" yaml:"start"`
	End   Point  `json:"end" yaml:"end"`
}

// QueryResult pairs a query with its outcome. Err holds per-query
// precondition failures such as ErrCoordinateOutOfBounds.
type QueryResult struct {
	Query  Query
	Result Result
	Err    error
}

// SearchAll runs independent searches over a shared grid using a pool of
// WithWorkers goroutines. Each search owns its own node arena; only the
// read-only grid is shared. Results are returned in query order.
//
// Queries without an ID are assigned a random one.
func SearchAll(ctx context.Context, grid *Grid, queries []Query, options ...Option) ([]QueryResult, error) {
	searchOptions := newOptions(options)

	results := make([]QueryResult, len(queries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, searchOptions.NumberOfWorkers))

	for i, query := range queries {
		if groupCtx.Err() != nil {
			break
		}
		if query.ID == "" {
			query.ID = uuid.NewString()
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			result, err := Search(grid, query.Start, query.End, options...)
			results[i] = QueryResult{Query: query, Result: result, Err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	searchOptions.Logger.Debug("batch finished",
		zap.Int("queries", len(queries)),
		zap.Int("workers", searchOptions.NumberOfWorkers),
	)
	return results, nil
}
