package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/astargrid"
	"github.com/pdrpinto/astargrid/internal/cache"
)

func newFindCommand(a *app) *cobra.Command {
	var flags endpointFlags

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a path and print it as JSON",
		Example: `  astargrid find --grid maze.txt --start 0,0 --end 9,9
  cat maze.txt | astargrid find --grid - --start 0,0 --end 9,9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, start, end, err := flags.load(cmd.InOrStdin(), a.cfg.BlockedMarker())
			if err != nil {
				return err
			}

			pathCache, err := a.openCache()
			if err != nil {
				return err
			}
			if pathCache != nil {
				defer pathCache.Close()
			}

			path, err := a.find(pathCache, grid, start, end)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(path)
		},
	}
	cmd.Flags().StringVar(&flags.grid, "grid", "-", "grid file, one row per line, or - for stdin")
	cmd.Flags().StringVar(&flags.start, "start", "", "start cell as x,y")
	cmd.Flags().StringVar(&flags.end, "end", "", "end cell as x,y")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

// find consults pathCache, when non-nil, before searching.
func (a *app) find(pathCache *cache.Cache, grid *astargrid.Grid, start, end astargrid.Point) ([]astargrid.Point, error) {
	var key []byte
	if pathCache != nil {
		key = cache.Key(grid, a.cfg.Search.Heuristic, start, end)
		if path, ok := pathCache.Get(key); ok {
			a.logger.Debug("cache hit", zap.Stringer("start", start), zap.Stringer("end", end))
			return path, nil
		}
	}

	result, err := astargrid.Search(grid, start, end, a.cfg.SearchOptions(a.logger)...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("search finished",
		zap.Bool("found", result.Found),
		zap.Int("cost", result.Cost),
		zap.Int("expanded", result.ExpandedNodes),
	)

	if pathCache != nil {
		if err := pathCache.Put(key, result.Path); err != nil {
			a.logger.Warn("cache write failed", zap.Error(err))
		}
	}
	return result.Path, nil
}
