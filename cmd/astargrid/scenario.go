package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/astargrid"
	"github.com/pdrpinto/astargrid/internal/scenario"
)

func newScenarioCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scenario FILE...",
		Short: "Run the queries in scenario files and check their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, path := range args {
				file, err := scenario.Load(path)
				if err != nil {
					return err
				}

				grid := file.NewGrid(a.cfg.BlockedMarker())
				results, err := astargrid.SearchAll(cmd.Context(), grid, file.SearchQueries(), a.cfg.SearchOptions(a.logger)...)
				if err != nil {
					return err
				}

				for _, r := range results {
					if r.Err != nil {
						fmt.Fprintf(out, "%s\t%s\terror: %v\n", file.Name, r.Query.ID, r.Err)
						continue
					}
					fmt.Fprintf(out, "%s\t%s\t%v\n", file.Name, r.Query.ID, r.Result.Path)
				}

				mismatches := file.Check(results)
				for _, m := range mismatches {
					a.logger.Error("scenario mismatch", zap.String("file", path), zap.String("detail", m.String()))
				}
				failed += len(mismatches)
			}

			if failed > 0 {
				return fmt.Errorf("%d queries did not match their expectation", failed)
			}
			return nil
		},
	}
}
