package solver_test

import (
	"fmt"

	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

func ExampleRun() {
	prd := roster.MustParseDate("2025-02-15")
	people := []roster.Person{
		{Name: "ADAMS, ROY", RateRank: "AM1", DutyStatus: roster.StatusTAR, Qualifications: []string{"220 QAR"}, PRD: &prd},
		{Name: "BAKER, SUE", RateRank: "AD2", DutyStatus: roster.StatusTAR, Qualifications: []string{"220 QAR", "210 CDI"}},
		{Name: "CRUZ, ANA", RateRank: "AE1", DutyStatus: roster.StatusSELRES, Qualifications: []string{"210 CDI"}},
	}
	alpha := roster.Team{Name: "Alpha"}
	alpha.AddRequirement("220 QAR", 1)
	alpha.AddRequirement("210 CDI", 1)

	plan, err := solver.Run(solver.Input{
		People:       people,
		Teams:        []roster.Team{alpha},
		AnalysisDate: roster.MustParseDate("2025-01-01"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, a := range plan.Assignments {
		fmt.Printf("%s: %s (%d)\n", a.Role(), a.Person.Name, a.Score)
	}
	for _, p := range plan.Unassigned {
		fmt.Println("unassigned:", p.Name)
	}
	fmt.Println("total:", plan.TotalCost)
	// Output:
	// Alpha/220 QAR#0: ADAMS, ROY (11000)
	// Alpha/210 CDI#0: BAKER, SUE (0)
	// unassigned: CRUZ, ANA
	// total: 11000
}
