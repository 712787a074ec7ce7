package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dutyflow/pkg/roster"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(colorDim)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
	styleVacant  = styleCell.Foreground(colorRed)
	styleManual  = styleCell.Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
	iconLocked  = "●"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Plan Output
// =============================================================================

// printPlanStats prints plan counts on a single line.
func printPlanStats(plan *roster.Plan, cached bool) {
	s := plan.Stats
	parts := []string{
		fmt.Sprintf("%d assigned", s.Assigned),
		fmt.Sprintf("%d vacant", s.Unfilled),
		fmt.Sprintf("%d unassigned", s.Unassigned),
		fmt.Sprintf("cost %d", plan.TotalCost),
	}
	if s.Manual > 0 {
		parts = append(parts, fmt.Sprintf("%d locked", s.Manual))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line + StyleDim.Render(" · ") + statusStyle.Render(status))
}

// coverageLine lists filled/required positions per team, dimming teams
// that are fully staffed.
func coverageLine(plan *roster.Plan, teams []roster.Team) string {
	parts := make([]string, 0, len(teams))
	for _, t := range teams {
		filled, required := plan.Coverage(t)
		part := fmt.Sprintf("%s %d/%d", t.Name, filled, required)
		if filled < required {
			parts = append(parts, StyleWarning.Render(part))
		} else {
			parts = append(parts, StyleDim.Render(part))
		}
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// planTable renders the assignments and vacancies of plan, grouped by team in
// plan order.
func planTable(plan *roster.Plan) string {
	type row struct {
		cells  []string
		vacant bool
		manual bool
	}
	var rows []row
	for _, a := range plan.Assignments {
		lock := ""
		if a.Manual {
			lock = iconLocked
		}
		rows = append(rows, row{
			cells:  []string{a.Team, a.Position.String(), a.Person.DisplayName(), string(a.Person.DutyStatus), prdCell(a.Person), strconv.Itoa(a.Score), lock},
			manual: a.Manual,
		})
	}
	for _, u := range plan.Unfilled {
		rows = append(rows, row{
			cells:  []string{u.Team, u.Qualification, "vacant", "", "", "", ""},
			vacant: true,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Team", "Position", "Person", "Status", "PRD", "Cost", "").
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if r < 0 || r >= len(rows) {
				return styleCell
			}
			switch {
			case rows[r].vacant:
				return styleVacant
			case rows[r].manual:
				return styleManual
			}
			return styleCell
		})
	for _, r := range rows {
		t.Row(r.cells...)
	}
	return t.Render()
}

// unassignedTable renders the people left without a role.
func unassignedTable(people []roster.Person) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Unassigned", "Status", "PRD", "Qualifications").
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		})
	for _, p := range people {
		t.Row(p.DisplayName(), string(p.DutyStatus), prdCell(p), fmt.Sprint(len(p.Qualifications)))
	}
	return t.Render()
}

func prdCell(p roster.Person) string {
	if p.PRD == nil {
		return ""
	}
	return p.PRD.String()
}
