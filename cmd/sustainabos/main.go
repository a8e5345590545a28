// Package main provides the CLI entry point for sustainabos.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/config"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/logging"
)

// app holds the state shared by all commands.
type app struct {
	configPath string
	workbook   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "sustainabos",
		Short: "Query the fleet sustainability tracker",
		Long: `sustainabos reads the fleet sustainability tracker workbook and answers
vessel and device summary queries, from the command line or over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "sustainabos.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&a.workbook, "workbook", "", "Workbook path or s3://bucket/key (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(a),
		newVesselCmd(a),
		newDeviceCmd(a),
		newListsCmd(a),
		newTopCmd(a),
		newExportCmd(a),
		newInspectCmd(a),
		newInitCmd(a),
	)
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.workbook != "" {
		cfg.Workbook = a.workbook
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		logger = logging.NewDefault()
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) options() sustainabos.Options {
	opts := a.cfg.Options()
	opts.Logger = a.logger
	return opts
}

// loadStore loads the workbook for a one-shot command. Unlike the server,
// load failures are reported instead of degrading to no data.
func (a *app) loadStore(ctx context.Context) (*sustainabos.Store, error) {
	opts := a.options()
	wb, err := sustainabos.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return sustainabos.NewStoreWith(wb, opts), nil
}
