package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/pkg/cost"
	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// explainCommand creates the explain command, which breaks a pairing's cost
// down by factor.
func (c *CLI) explainCommand() *cobra.Command {
	var (
		inputs   inputOpts
		person   string
		team     string
		qual     string
		instance int
	)

	cmd := &cobra.Command{
		Use:     "explain",
		Short:   "Show the cost breakdown of a person in a role",
		Example: `  dutyflow explain --state roster.json --person "ADAMS, ROY" --team Alpha --qual "220 QAR"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			p, ok := findPerson(in.People, person)
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "person %q is not in the roster", person)
			}
			model, err := cost.NewModel(c.Config.Weights)
			if err != nil {
				return err
			}

			role := roster.RoleID{Team: team, Qualification: qual, Instance: instance}
			fmt.Println(StyleTitle.Render(p.DisplayName()) + " " + StyleDim.Render(iconArrow+" "+role.String()))
			if !p.HasQualification(qual) {
				printWarning("%s does not hold %s; the solver will never place them there", p.Name, qual)
			}

			factors := model.Explain(p, role, in.AnalysisDate)
			if len(factors) == 0 {
				printSuccess("No penalties as of %s", in.AnalysisDate)
				return nil
			}
			for _, f := range factors {
				label := f.Name
				if f.Detail != "" {
					label += " (" + f.Detail + ")"
				}
				printKeyValue(strconv.Itoa(f.Points), label)
			}
			printKeyValue(strconv.Itoa(model.Score(p, role, in.AnalysisDate)), StyleHighlight.Render("total"))
			return nil
		},
	}

	inputs.register(cmd)
	cmd.Flags().StringVarP(&person, "person", "p", "", "person name as it appears in the roster")
	cmd.Flags().StringVarP(&team, "team", "t", "", "team name")
	cmd.Flags().StringVar(&qual, "qual", "", "qualification of the position")
	cmd.Flags().IntVar(&instance, "instance", 0, "position instance, starting at 0")
	_ = cmd.MarkFlagRequired("person")
	_ = cmd.MarkFlagRequired("qual")

	return cmd
}

func findPerson(people []roster.Person, name string) (roster.Person, bool) {
	for _, p := range people {
		if p.Name == name {
			return p, true
		}
	}
	return roster.Person{}, false
}
