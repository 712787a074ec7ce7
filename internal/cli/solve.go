package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/pkg/errors"
	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/pipeline"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

const formatTable = "table"

type solveOpts struct {
	inputs    inputOpts
	format    string // table, csv, json or yaml
	output    string // output file; stdout when empty
	refresh   bool   // bypass cached plans
	saveState string // also write the input as a save state
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{format: formatTable}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Assign people to team positions",
		Long: `Solve reads the team requirements and personnel, then fills as many
positions as possible at the lowest total cost.

Inputs come either from a save state (--state) or from the source files:
a requirements CSV plus either a roster CSV or the ASM workbook with its
qualification definitions and, optionally, the FLTMPS workbook.`,
		Example: `  dutyflow solve -r requirements.csv --roster people.csv
  dutyflow solve -r requirements.csv -q quals.csv --asm asm.xlsx --fltmps fltmps.xlsx
  dutyflow solve --state roster.json -f csv -o plan.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), &opts)
		},
	}

	opts.inputs.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table, "+strings.Join(pkgio.Formats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached plans")
	cmd.Flags().StringVar(&opts.saveState, "save-state", "", "write the solved input as a save state")
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues(append([]string{formatTable}, pkgio.Formats...)...))

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, opts *solveOpts) error {
	if opts.format == formatTable && opts.output != "" {
		return errors.New(errors.ErrCodeInvalidInput, "the table format prints to the terminal; pick csv, json or yaml with --output")
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	in, quals, err := opts.inputs.load(ctx, runner)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	so := c.solveOptions()
	so.Input = in
	so.Refresh = opts.refresh
	result, err := runner.Solve(ctx, so)
	if err != nil {
		return err
	}
	prog.done("solved", "filled", result.Plan.Flow+result.Plan.Stats.Manual,
		"vacant", len(result.Plan.Unfilled), "cached", result.CacheInfo.PlanHit)

	if opts.saveState != "" {
		if err := pkgio.ExportState(pkgio.NewSaveState(in, quals), opts.saveState); err != nil {
			return err
		}
	}

	switch {
	case opts.format == formatTable:
		printPlan(result, in.Teams)
	case opts.output == "":
		if err := pkgio.WritePlan(result.Plan, os.Stdout, opts.format); err != nil {
			return err
		}
	default:
		if err := pkgio.ExportPlan(result.Plan, opts.output, opts.format); err != nil {
			return err
		}
		printSuccess("Plan written")
		printFile(opts.output)
	}
	if opts.saveState != "" && opts.format == formatTable {
		printFile(opts.saveState)
	}
	return nil
}

func printPlan(result *pipeline.Result, teams []roster.Team) {
	plan := result.Plan
	fmt.Println(StyleTitle.Render("Assignment plan") + " " + StyleDim.Render(plan.AnalysisDate.String()))
	fmt.Println(planTable(plan))
	if len(plan.Unassigned) > 0 {
		fmt.Println(unassignedTable(plan.Unassigned))
	}
	printPlanStats(plan, result.CacheInfo.PlanHit)
	if len(teams) > 0 {
		fmt.Println("  " + coverageLine(plan, teams))
	}
	if plan.Stats.Unfilled > 0 {
		printWarning("%d positions could not be filled", plan.Stats.Unfilled)
	}
}
