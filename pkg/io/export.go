package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// Plan report formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported plan report formats.
var Formats = []string{FormatCSV, FormatJSON, FormatYAML}

// WriteState writes s as JSON to w. Pretty output is indented by two spaces.
func WriteState(s *SaveState, w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode save state: %w", err)
	}
	return nil
}

// ExportState writes s as indented JSON to path.
func ExportState(s *SaveState, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteState(s, w, true) })
}

// WritePlan renders plan to w in the named format.
func WritePlan(plan *roster.Plan, w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WritePlanCSV(plan, w)
	case FormatJSON:
		return WritePlanJSON(plan, w)
	case FormatYAML, "yml":
		return WritePlanYAML(plan, w)
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported plan format %q (use %s)", format, strings.Join(Formats, ", "))
}

// ExportPlan renders plan to path in the named format.
func ExportPlan(plan *roster.Plan, path, format string) error {
	return writeFile(path, func(w io.Writer) error { return WritePlan(plan, w, format) })
}

var csvHeader = []string{"Person", "Team", "Qualification"}

// WritePlanCSV writes the assigned, vacant and unassigned sections of plan.
func WritePlanCSV(plan *roster.Plan, w io.Writer) error {
	cw := csv.NewWriter(w)

	section := func(title string, rows [][]string) {
		cw.Write([]string{title, "", ""})
		cw.Write(csvHeader)
		for _, r := range rows {
			cw.Write(r)
		}
	}

	assigned := make([][]string, 0, len(plan.Assignments))
	for _, a := range plan.Assignments {
		assigned = append(assigned, []string{a.Person.Name, a.Team, a.Position.Qualification})
	}
	section("Assigned People", assigned)

	vacant := make([][]string, 0, len(plan.Unfilled))
	for _, u := range plan.Unfilled {
		vacant = append(vacant, []string{"", u.Team, u.Qualification})
	}
	section("Vacant Positions", vacant)

	unassigned := make([][]string, 0, len(plan.Unassigned))
	for _, p := range plan.Unassigned {
		unassigned = append(unassigned, []string{p.Name, "", ""})
	}
	section("Unassigned People", unassigned)

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write plan csv: %w", err)
	}
	return nil
}

// WritePlanJSON writes plan as indented JSON.
func WritePlanJSON(plan *roster.Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("encode plan json: %w", err)
	}
	return nil
}

// WritePlanYAML writes plan as YAML.
func WritePlanYAML(plan *roster.Plan, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("encode plan yaml: %w", err)
	}
	return enc.Close()
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
