package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/astargrid/internal/cache"
	"github.com/pdrpinto/astargrid/internal/config"
	"github.com/pdrpinto/astargrid/internal/logging"
)

// app carries state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "astargrid",
		Short:         "A* pathfinding over character grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides log.level")

	root.AddCommand(
		newFindCommand(a),
		newScenarioCommand(a),
		newRenderCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// openCache returns nil when caching is disabled.
func (a *app) openCache() (*cache.Cache, error) {
	if !a.cfg.Cache.Enabled {
		return nil, nil
	}
	c, err := cache.Open(a.cfg.Cache.Dir, a.cfg.Cache.TTL, a.logger)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("path cache opened", zap.String("dir", a.cfg.Cache.Dir))
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
