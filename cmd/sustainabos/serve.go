package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/metrics"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve vessel and device summaries over HTTP",
		Long: `serve loads the workbook once and answers queries over HTTP.
Send SIGHUP to reload the workbook without restarting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := a.options()
	opts.Metrics = metrics.New(reg)
	store := sustainabos.NewStore(ctx, opts)

	srv := server.New(store, server.Options{
		Logger:   a.logger,
		Metrics:  opts.Metrics,
		Gatherer: reg,
	})
	httpCfg := server.HTTPConfig{
		Addr:            a.cfg.Server.Addr,
		ReadTimeout:     a.cfg.GetReadTimeout(),
		WriteTimeout:    a.cfg.GetWriteTimeout(),
		ShutdownTimeout: a.cfg.GetShutdownTimeout(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, httpCfg, srv, a.logger)
	})
	g.Go(func() error {
		reloadOnHangup(ctx, store, a.logger)
		return nil
	})
	return g.Wait()
}

// reloadOnHangup reloads the store on every SIGHUP until ctx is done.
func reloadOnHangup(ctx context.Context, store *sustainabos.Store, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logger.Info("reloading workbook")
			if err := store.Reload(ctx); err != nil {
				logger.Error("reload failed, keeping current data", zap.Error(err))
			}
		}
	}
}
