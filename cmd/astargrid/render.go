package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/astargrid"
	"github.com/pdrpinto/astargrid/internal/render"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		flags    endpointFlags
		out      string
		cellSize int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Search and draw the grid and path to a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, start, end, err := flags.load(cmd.InOrStdin(), a.cfg.BlockedMarker())
			if err != nil {
				return err
			}

			result, err := astargrid.Search(grid, start, end, a.cfg.SearchOptions(a.logger)...)
			if err != nil {
				return err
			}
			if !result.Found {
				a.logger.Warn("no path found, rendering grid only",
					zap.Stringer("start", start), zap.Stringer("end", end))
			}

			if cellSize <= 0 {
				cellSize = a.cfg.Render.CellSize
			}
			if err := render.SavePNG(out, grid, result.Path, cellSize); err != nil {
				return err
			}
			a.logger.Info("image written", zap.String("file", out), zap.Int("path_length", len(result.Path)))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.grid, "grid", "-", "grid file, one row per line, or - for stdin")
	cmd.Flags().StringVar(&flags.start, "start", "", "start cell as x,y")
	cmd.Flags().StringVar(&flags.end, "end", "", "end cell as x,y")
	cmd.Flags().StringVarP(&out, "out", "o", "path.png", "output PNG file")
	cmd.Flags().IntVar(&cellSize, "cell-size", 0, "pixels per cell, defaults to render.cell_size")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
