package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/ingest"
	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/pipeline"
	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

// inputOpts holds the flags that select where people and teams come from.
// A save state replaces every other source.
type inputOpts struct {
	state        string // save state JSON
	requirements string // requirements CSV
	quals        string // qualification definitions CSV
	asm          string // ASM workbook
	fltmps       string // FLTMPS workbook
	roster       string // roster CSV
	date         string // analysis date, YYYY-MM-DD
}

func (o *inputOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.state, "state", "s", "", "save state file (replaces the other inputs)")
	f.StringVarP(&o.requirements, "requirements", "r", "", "team requirements CSV")
	f.StringVarP(&o.quals, "quals", "q", "", "qualification definitions CSV")
	f.StringVar(&o.asm, "asm", "", "ASM qualification workbook (.xlsx)")
	f.StringVar(&o.fltmps, "fltmps", "", "FLTMPS rotation workbook (.xlsx)")
	f.StringVar(&o.roster, "roster", "", "roster CSV (replaces --asm and --fltmps)")
	f.StringVarP(&o.date, "date", "d", "", "analysis date, YYYY-MM-DD (default today, or the state's date)")
}

func (o *inputOpts) sources() ingest.Sources {
	return ingest.Sources{
		Requirements: o.requirements,
		QualDefs:     o.quals,
		ASM:          o.asm,
		FLTMPS:       o.fltmps,
		Roster:       o.roster,
	}
}

// load returns the solver input and the qualification table the flags name.
func (o *inputOpts) load(ctx context.Context, r *pipeline.Runner) (solver.Input, ingest.QualTable, error) {
	var (
		in    solver.Input
		quals ingest.QualTable
	)
	if o.state != "" {
		st, err := pkgio.ImportState(o.state)
		if err != nil {
			return in, nil, err
		}
		in, quals = st.Input(), st.QualDefs
	} else {
		ds, err := r.Ingest(ctx, o.sources())
		if err != nil {
			return in, nil, err
		}
		in = solver.Input{People: ds.People, Teams: ds.Teams}
		quals = ds.QualDefs
	}

	if o.date != "" {
		d, err := roster.ParseDate(o.date)
		if err != nil {
			return in, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --date")
		}
		in.AnalysisDate = d
	}
	if in.AnalysisDate.IsZero() {
		in.AnalysisDate = roster.Today()
	}
	return in, quals, nil
}
