// Package cli implements the dutyflow command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/pkg/buildinfo"
	"github.com/matzehuels/dutyflow/pkg/cache"
	"github.com/matzehuels/dutyflow/pkg/config"
	"github.com/matzehuels/dutyflow/pkg/pipeline"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dutyflow"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Dutyflow assigns qualified people to team positions",
		Long: `Dutyflow builds duty rosters. It reads team requirements and personnel
qualifications, then fills every position it can at the lowest total cost
using a min-cost max-flow solve.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the plan cache")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.whatIfCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.networkCommand())
	root.AddCommand(c.stateCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default file in the working directory.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	var (
		cfg config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.LoadDefaultFile()
	}
	if err != nil {
		return err
	}
	c.Config = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	// A Redis instance may be shared with other applications.
	var keyer cache.Keyer
	if !c.noCache && c.Config.Cache.Backend == config.CacheRedis {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}
	r := pipeline.NewRunner(cc, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL
	r.Parallelism = c.Config.Solver.Parallelism
	return r, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, c.Config.Cache)
}

// solveOptions returns pipeline options carrying the configured weights.
func (c *CLI) solveOptions() pipeline.Options {
	w := c.Config.Weights
	return pipeline.Options{
		Weights:       &w,
		MaxIterations: c.Config.Solver.MaxIterations,
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseDates parses a comma-separated list of YYYY-MM-DD dates.
func parseDates(s string) ([]roster.Date, error) {
	var dates []roster.Date
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := roster.ParseDate(part)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
