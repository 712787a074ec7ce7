package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/pipeline"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// whatIfCommand creates the whatif command, which compares solves across
// analysis dates.
func (c *CLI) whatIfCommand() *cobra.Command {
	var (
		inputs  inputOpts
		dates   string
		asJSON  bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Compare plans across analysis dates",
		Long: `Whatif solves the same input once per analysis date, concurrently, and
compares coverage and cost. Rotation penalties depend on the date, so later
dates show the effect of upcoming PRDs.`,
		Example: `  dutyflow whatif --state roster.json --dates 2025-01-01,2025-04-01,2025-07-01`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, err := parseDates(dates)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --dates")
			}
			if len(ds) == 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--dates needs at least one date")
			}

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			in, _, err := inputs.load(ctx, runner)
			if err != nil {
				return err
			}
			opts := c.solveOptions()
			opts.Input = in
			opts.Refresh = refresh

			prog := newProgress(loggerFromContext(ctx))
			scenarios, err := runner.WhatIf(ctx, opts, ds)
			if err != nil {
				return err
			}
			prog.done("compared", "dates", len(scenarios))

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(scenarios)
			}
			printScenarios(ctx, scenarios)
			return nil
		},
	}

	inputs.register(cmd)
	cmd.Flags().StringVar(&dates, "dates", "", "comma-separated analysis dates, YYYY-MM-DD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the scenarios as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached plans")
	_ = cmd.MarkFlagRequired("dates")

	return cmd
}

func printScenarios(ctx context.Context, scenarios []pipeline.Scenario) {
	best := 0
	for i, s := range scenarios {
		if s.Plan.TotalCost < scenarios[best].Plan.TotalCost {
			best = i
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Date", "Filled", "Vacant", "Cost", "SELRES", "<6 months", "").
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if r == best {
				return styleCell.Foreground(colorGreen)
			}
			return styleCell
		})
	for _, s := range scenarios {
		st := s.Plan.Stats
		status := styleComputed.Render(iconFresh)
		if s.CacheHit {
			status = styleCached.Render(iconCached)
		}
		t.Row(
			s.AnalysisDate.String(),
			strconv.Itoa(st.Assigned),
			strconv.Itoa(st.Unfilled),
			strconv.Itoa(s.Plan.TotalCost),
			strconv.Itoa(st.SelresUsed),
			strconv.Itoa(st.Urgency[roster.UrgencyHigh]),
			status,
		)
	}
	loggerFromContext(ctx).Debug("rendered scenarios", "rows", len(scenarios))
	fmt.Println(t.Render())
}
