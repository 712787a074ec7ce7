package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/internal/server"
	"github.com/matzehuels/dutyflow/pkg/cache"
	"github.com/matzehuels/dutyflow/pkg/observability"
	"github.com/matzehuels/dutyflow/pkg/session"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes solving, what-if comparison and workspace storage over HTTP.
The cache and workspace store backends come from the config file; with the
default settings plans are cached on disk and workspaces are saved under
~/.config/dutyflow/workspaces.`,
		Example: `  dutyflow serve --addr :8080 --log-file /var/log/dutyflow/api.log`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if logFile != "" {
				cfg.Log.File = logFile
			}

			logger, closer, err := rotatingLogger(c.Logger, cfg.Log)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			prom := observability.NewPrometheus(reg, appName)
			observability.SetSolverHooks(prom)
			observability.SetCacheHooks(prom)
			observability.SetHTTPHooks(prom)
			defer observability.Reset()

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			runner.Logger = logger
			defer runner.Close()

			sweepCtx, stopSweep := context.WithCancel(ctx)
			defer stopSweep()
			if s, ok := runner.Cache.(cache.Sweeper); ok && cfg.Cache.SweepInterval > 0 {
				go cache.SweepEvery(sweepCtx, s, cfg.Cache.SweepInterval, func(n int) {
					logger.Debug("swept plan cache", "removed", n)
				})
			}

			store, err := session.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Cleanup(ctx); err != nil {
				logger.Warn("workspace cleanup failed", "err", err)
			}

			srv := &server.Server{
				Runner:         runner,
				Store:          store,
				Logger:         logger,
				Defaults:       c.solveOptions(),
				Gatherer:       reg,
				WorkspaceTTL:   cfg.Store.TTL,
				RequestTimeout: cfg.Server.RequestTimeout,
				MaxWhatIfDates: cfg.Server.MaxWhatIfDates,
			}
			logger.Info("starting api",
				"cache", cfg.Cache.Backend,
				"store", cfg.Store.Backend,
				"log_file", cfg.Log.File)
			return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "also write logs to this rotating file")

	return cmd
}
