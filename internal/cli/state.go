package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/pkg/errors"
	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// stateCommand creates the save state management command.
func (c *CLI) stateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Create, inspect and edit save states",
		Long: `A save state bundles people, teams, qualification definitions and locks
into one JSON file. Commands that edit a state rewrite it in place unless
--output is given.`,
	}

	cmd.AddCommand(c.stateExportCommand())
	cmd.AddCommand(c.stateValidateCommand())
	cmd.AddCommand(c.stateLockCommand())
	cmd.AddCommand(c.stateSwapCommand())
	cmd.AddCommand(c.stateClearLocksCommand())

	return cmd
}

// stateExportCommand creates the "state export" subcommand.
func (c *CLI) stateExportCommand() *cobra.Command {
	var (
		inputs  inputOpts
		output  string
		compact bool
	)
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Write the source files as a save state",
		Example: `  dutyflow state export -r requirements.csv -q quals.csv --asm asm.xlsx --fltmps fltmps.xlsx -o roster.json`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			in, quals, err := inputs.load(ctx, runner)
			if err != nil {
				return err
			}
			st := pkgio.NewSaveState(in, quals)
			if err := writeState(st, output, !compact); err != nil {
				return err
			}
			printSuccess("Exported %d people and %d teams", len(st.People), len(st.Teams))
			printFile(output)
			return nil
		},
	}
	inputs.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "save state file")
	cmd.Flags().BoolVar(&compact, "compact", false, "write compact JSON")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// stateValidateCommand creates the "state validate" subcommand.
func (c *CLI) stateValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a save state and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := pkgio.ImportState(args[0])
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}
			positions := 0
			for _, t := range st.Teams {
				positions += len(t.Positions)
			}
			printSuccess("Save state is valid")
			printKeyValue("Version", st.Version)
			printKeyValue("Exported", st.ExportTimestamp.Format("2006-01-02 15:04:05 MST"))
			printKeyValue("Analysis date", st.AnalysisDate.String())
			printKeyValue("People", strconv.Itoa(len(st.People)))
			printKeyValue("Teams", fmt.Sprintf("%d (%d positions)", len(st.Teams), positions))
			printKeyValue("Locks", strconv.Itoa(len(st.Locks)))
			return nil
		},
	}
}

// stateLockCommand creates the "state lock" subcommand.
func (c *CLI) stateLockCommand() *cobra.Command {
	var (
		output   string
		person   string
		team     string
		qual     string
		instance int
		exclude  bool
		unlock   bool
		solved   bool
	)
	cmd := &cobra.Command{
		Use:   "lock <file>",
		Short: "Pin, exclude or unlock people",
		Long: `Lock edits the locks of a save state.

  --person P --team T --qual Q   pin P to the position
  --person P --exclude           keep P out of the solve
  --person P --unlock            drop P's lock
  --solved [--team T]            solve, then pin every resulting assignment
                                 (only those of T when --team is set)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := pkgio.ImportState(args[0])
			if err != nil {
				return err
			}

			locks := st.Locks
			switch {
			case solved:
				plan, err := c.solveState(cmd.Context(), st)
				if err != nil {
					return err
				}
				locks = roster.LockAssignments(locks, plan, func(a roster.Assignment) bool {
					return team == "" || a.Team == team
				})
			case person == "":
				return errors.New(errors.ErrCodeInvalidInput, "--person is required unless --solved is set")
			case unlock:
				locks = roster.Unlock(locks, person)
			case exclude:
				locks = roster.SetLock(locks, roster.Exclude(person))
			case team != "" && qual != "":
				role := roster.RoleID{Team: team, Qualification: qual, Instance: instance}
				locks = roster.SetLock(locks, roster.Pin(person, role))
			default:
				return errors.New(errors.ErrCodeInvalidInput, "pin needs --team and --qual, or use --exclude or --unlock")
			}
			return c.rewriteState(st, locks, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of rewriting the input")
	cmd.Flags().StringVarP(&person, "person", "p", "", "person name")
	cmd.Flags().StringVarP(&team, "team", "t", "", "team name")
	cmd.Flags().StringVar(&qual, "qual", "", "qualification of the position")
	cmd.Flags().IntVar(&instance, "instance", 0, "position instance, starting at 0")
	cmd.Flags().BoolVar(&exclude, "exclude", false, "exclude the person from the solve")
	cmd.Flags().BoolVar(&unlock, "unlock", false, "remove the person's lock")
	cmd.Flags().BoolVar(&solved, "solved", false, "pin the solved assignments")
	return cmd
}

// stateSwapCommand creates the "state swap" subcommand.
func (c *CLI) stateSwapCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "swap <file> <person> <person>",
		Short: "Exchange the roles of two people",
		Long: `Swap solves the state, then pins each person into the role the other
holds. Either person may be unassigned, in which case the assigned one is
freed and the other takes the role.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := pkgio.ImportState(args[0])
			if err != nil {
				return err
			}
			plan, err := c.solveState(cmd.Context(), st)
			if err != nil {
				return err
			}
			locks, err := roster.Swap(st.Locks, roster.SlotOf(plan, args[1]), roster.SlotOf(plan, args[2]))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidLock, err, "swap failed")
			}
			return c.rewriteState(st, locks, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of rewriting the input")
	return cmd
}

// stateClearLocksCommand creates the "state clear-locks" subcommand.
func (c *CLI) stateClearLocksCommand() *cobra.Command {
	var output, team string
	cmd := &cobra.Command{
		Use:   "clear-locks <file>",
		Short: "Remove locks, optionally only a team's pins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := pkgio.ImportState(args[0])
			if err != nil {
				return err
			}
			return c.rewriteState(st, roster.ClearLocks(st.Locks, team), args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of rewriting the input")
	cmd.Flags().StringVarP(&team, "team", "t", "", "only clear pins on this team")
	return cmd
}

// solveState solves st with the configured weights.
func (c *CLI) solveState(ctx context.Context, st *pkgio.SaveState) (*roster.Plan, error) {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	opts := c.solveOptions()
	opts.Input = st.Input()
	result, err := runner.Solve(ctx, opts)
	if err != nil {
		return nil, err
	}
	return result.Plan, nil
}

// rewriteState replaces the locks of st, validates the result and writes it
// to output, or back to path when output is empty.
func (c *CLI) rewriteState(st *pkgio.SaveState, locks []roster.AssignmentLock, path, output string) error {
	in := st.Input()
	in.Locks = locks
	next := pkgio.NewSaveState(in, st.QualDefs)
	if err := next.Validate(); err != nil {
		return err
	}
	if output == "" {
		output = path
	}
	if err := writeState(next, output, true); err != nil {
		return err
	}
	printSuccess("Saved %d locks", len(locks))
	printFile(output)
	return nil
}

func writeState(st *pkgio.SaveState, path string, pretty bool) error {
	if pretty {
		return pkgio.ExportState(st, path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pkgio.WriteState(st, f, false); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
