package ingest

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// readAll returns the header and data rows of a CSV document.
func readAll(r io.Reader, what string) ([]string, [][]string, error) {
	rows, err := newCSVReader(r).ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", what)
	}
	if len(rows) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "%s is empty", what)
	}
	header := rows[0]
	// Spreadsheet exports often start with a UTF-8 byte order mark.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, rows[1:], nil
}

func column(header []string, name, what string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "%s has no %q column", what, name)
}

func field(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// ParseRequirements reads a requirements CSV into teams.
func ParseRequirements(r io.Reader) ([]roster.Team, error) {
	const what = "requirements"
	header, rows, err := readAll(r, what)
	if err != nil {
		return nil, err
	}
	nameCol, err := column(header, "Name", what)
	if err != nil {
		return nil, err
	}
	qualCol, err := column(header, "Qual", what)
	if err != nil {
		return nil, err
	}
	countCol, err := column(header, "Num Required", what)
	if err != nil {
		return nil, err
	}

	var teams []roster.Team
	index := make(map[string]int)
	for line, row := range rows {
		name, qual := field(row, nameCol), field(row, qualCol)
		if name == "" && qual == "" {
			continue
		}
		if err := errors.ValidateName("team", name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "requirements row %d", line+2)
		}
		if err := errors.ValidateQualification(qual); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "requirements row %d", line+2)
		}
		n, err := strconv.Atoi(field(row, countCol))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "requirements row %d: invalid count", line+2)
		}
		if err := errors.ValidateCount(name, qual, n); err != nil {
			return nil, err
		}

		i, ok := index[name]
		if !ok {
			i = len(teams)
			index[name] = i
			teams = append(teams, roster.Team{Name: name})
		}
		teams[i].AddRequirement(qual, n)
	}
	return teams, nil
}

// ParseQualDefs reads a two-column CSV of ASM name and local name.
func ParseQualDefs(r io.Reader) (QualTable, error) {
	_, rows, err := readAll(r, "qualification definitions")
	if err != nil {
		return nil, err
	}
	table := make(QualTable)
	for line, row := range rows {
		if len(row) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"qualification definitions row %d: want ASM name and local name", line+2)
		}
		asm, local := field(row, 0), field(row, 1)
		if asm == "" || local == "" {
			continue
		}
		if !slices.Contains(table[local], asm) {
			table[local] = append(table[local], asm)
		}
	}
	return table, nil
}

// ParseRoster reads a roster CSV with Name, RateRank, Status, PRD and
// Qualifications columns in that order. Qualifications are comma separated
// local names. A PRD that is not YYYY-MM-DD is logged and ignored.
func ParseRoster(r io.Reader, logger *log.Logger) ([]roster.Person, error) {
	_, rows, err := readAll(r, "roster")
	if err != nil {
		return nil, err
	}
	var people []roster.Person
	for line, row := range rows {
		name := field(row, 0)
		if name == "" {
			continue
		}
		if err := errors.ValidateName("person", name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "roster row %d", line+2)
		}
		p := roster.Person{
			Name:       name,
			RateRank:   field(row, 1),
			DutyStatus: roster.ParseDutyStatus(field(row, 2)),
		}
		if s := field(row, 3); s != "" {
			d, err := roster.ParseDate(s)
			if err != nil {
				logger.Warn("ignoring invalid PRD", "person", name, "prd", s)
			} else {
				p.PRD = &d
			}
		}
		for _, q := range strings.Split(field(row, 4), ",") {
			if q = strings.TrimSpace(q); q != "" && !slices.Contains(p.Qualifications, q) {
				p.Qualifications = append(p.Qualifications, q)
			}
		}
		p.Qualifications = append(p.Qualifications, DerivedQualifications(p.DisplayName(), p.Qualifications)...)
		people = append(people, p)
	}
	return people, nil
}
