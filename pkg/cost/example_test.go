package cost_test

import (
	"fmt"

	"github.com/matzehuels/dutyflow/pkg/cost"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

func ExampleModel_Explain() {
	at := roster.MustParseDate("2025-01-01")
	prd := roster.MustParseDate("2025-03-01")
	p := roster.Person{
		Name:       "DOE, JOHN",
		RateRank:   "AMC",
		DutyStatus: roster.StatusTAR,
		PRD:        &prd,
	}
	role := roster.RoleID{Team: "Alpha", Qualification: "Chief"}

	m := cost.Default()
	for _, f := range m.Explain(p, role, at) {
		fmt.Printf("%-14s %6d\n", f.Name, f.Points)
	}
	fmt.Println("total", m.Score(p, role, at))
	// Output:
	// rotation        11000
	// chief            5000
	// priority role   -1000
	// total 15000
}
