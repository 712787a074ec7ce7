package ingest

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// Header markers of the FLTMPS report. The PRD header is padded with
// non-breaking spaces.
const (
	fltmpsPRDHeader  = "\u00a0PRD\u00a0"
	fltmpsNameHeader = "Name"
)

// firstSheetRows returns every row of the workbook's first sheet.
func firstSheetRows(r io.Reader, what string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open %s workbook", what)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s workbook has no sheets", what)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s sheet %q", what, sheets[0])
	}
	return rows, nil
}

// ParseASM reads an ASM qualification report. People are returned in the
// order they first appear, as SELRES with their ASM qualification names.
func ParseASM(r io.Reader) ([]roster.Person, error) {
	rows, err := firstSheetRows(r, "ASM")
	if err != nil {
		return nil, err
	}

	var people []roster.Person
	index := make(map[string]int)
	for _, row := range rows[min(1, len(rows)):] {
		if len(row) < 4 {
			continue
		}
		qual := strings.TrimSpace(row[1])
		label := strings.TrimSpace(row[3])
		if qual == "" || label == "" {
			continue
		}
		name, rate := splitLabel(label)

		i, ok := index[name]
		if !ok {
			i = len(people)
			index[name] = i
			people = append(people, roster.Person{
				Name:       name,
				RateRank:   rate,
				DutyStatus: roster.StatusSELRES,
			})
		}
		people[i].Qualifications = append(people[i].Qualifications, qual)
	}
	return people, nil
}

// splitLabel splits "NAME, FIRST  RATE" into name and rate. The rate is
// the last double-space separated part; a label without one has no rate.
func splitLabel(label string) (name, rate string) {
	parts := strings.Split(label, "  ")
	name = parts[0]
	if len(parts) > 1 {
		rate = strings.TrimSpace(parts[len(parts)-1])
	}
	return name, rate
}

// ParseFLTMPS reads a FLTMPS personnel report into a PRD list. Rows whose
// PRD is missing or not MM/YYYY are logged and kept without a date.
func ParseFLTMPS(r io.Reader, logger *log.Logger) (PRDList, error) {
	rows, err := firstSheetRows(r, "FLTMPS")
	if err != nil {
		return nil, err
	}

	prds := make(PRDList)
	nameCol, prdCol := 0, 0
	for _, row := range rows {
		header := false
		for i, cell := range row {
			if strings.Contains(cell, fltmpsPRDHeader) {
				prdCol, header = i, true
			}
			if strings.Contains(cell, fltmpsNameHeader) {
				nameCol, header = i, true
			}
		}
		if header {
			continue
		}

		name := cellAt(row, nameCol)
		if name == "" {
			continue
		}
		raw := cellAt(row, prdCol)
		prd, err := parseMonthYear(raw)
		if err != nil {
			logger.Warn("invalid PRD date", "person", name, "prd", raw)
			prds[name] = nil
			continue
		}
		prds[name] = &prd
	}
	return prds, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// parseMonthYear parses MM/YYYY as the first day of that month.
func parseMonthYear(s string) (roster.Date, error) {
	t, err := time.Parse("01/2006", s)
	if err != nil {
		// Single-digit months are written without padding in some exports.
		if t, err = time.Parse("1/2006", s); err != nil {
			return roster.Date{}, err
		}
	}
	return roster.DateOf(t), nil
}
