package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/pkg/cost"
	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/render/network"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// networkCommand creates the network command, which draws the flow network
// the solver builds for an input.
func (c *CLI) networkCommand() *cobra.Command {
	var (
		inputs  inputOpts
		format  = formatDOT
		output  string
		opts    network.Options
		noSolve bool
	)

	cmd := &cobra.Command{
		Use:   "network",
		Short: "Draw the assignment flow network",
		Long: `Network writes the source, person, role, team and sink layers of the
flow network after locks are applied. Unless --no-solve is given, the
network is solved first and edges carrying flow are drawn bold.`,
		Example: `  dutyflow network --state roster.json -f svg -o network.svg --costs`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return errors.New(errors.ErrCodeUnsupported, "unsupported network format %q (want dot or svg)", format)
			}
			if opts.FlowOnly && noSolve {
				return errors.New(errors.ErrCodeInvalidInput, "--flow-only needs a solved network")
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			in, _, err := inputs.load(ctx, runner)
			if err != nil {
				return err
			}
			model, err := cost.NewModel(c.Config.Weights)
			if err != nil {
				return err
			}
			eff, err := solver.Prefilter(in, model)
			if err != nil {
				return err
			}

			s := solver.New(eff.People, eff.Teams, in.AnalysisDate,
				solver.WithModel(model),
				solver.WithLogger(loggerFromContext(ctx)),
				solver.WithMaxIterations(c.Config.Solver.MaxIterations),
			)
			if !noSolve {
				res, err := s.Solve()
				if err != nil {
					return err
				}
				loggerFromContext(ctx).Debug("network solved", "flow", res.Flow, "cost", res.Cost)
			}

			data := []byte(network.ToDOT(s, opts))
			if format == formatSVG {
				if data, err = network.RenderSVG(string(data)); err != nil {
					return err
				}
			}
			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Network written")
			printFile(output)
			return nil
		},
	}

	inputs.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: dot, svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.Costs, "costs", false, "label person edges with their cost")
	cmd.Flags().BoolVar(&opts.FlowOnly, "flow-only", false, "draw only edges that carry flow")
	cmd.Flags().BoolVar(&noSolve, "no-solve", false, "draw the network before solving")
	_ = cmd.RegisterFlagCompletionFunc("format", completeValues("dot", "svg"))

	return cmd
}
