package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dutyflow/pkg/errors"
	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// browseCommand creates the browse command, an interactive plan editor.
func (c *CLI) browseCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "browse <state>",
		Short: "Review a plan and edit its locks interactively",
		Long: `Browse solves a save state and shows the plan. Locks and swaps made in
the browser re-solve immediately; press w to write the updated state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := pkgio.ImportState(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0]
			}

			solve := c.contextSolve(ctx, st)
			plan, err := solve(st.Locks)
			if err != nil {
				return err
			}

			m := newBrowseModel(st, plan, solve)
			m.save = func(locks []roster.AssignmentLock) error {
				in := st.Input()
				in.Locks = locks
				return writeState(pkgio.NewSaveState(in, st.QualDefs), output, true)
			}
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(browseModel); ok && fm.dirty {
				printWarning("Quit with unsaved lock changes")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of rewriting the input")
	return cmd
}

// =============================================================================
// Key Bindings
// =============================================================================

type browseKeys struct {
	Up      key.Binding
	Down    key.Binding
	Lock    key.Binding
	Exclude key.Binding
	Swap    key.Binding
	Clear   key.Binding
	Write   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Lock, k.Swap, k.Write, k.Help, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Lock, k.Exclude, k.Swap, k.Clear},
		{k.Write, k.Help, k.Quit},
	}
}

var defaultBrowseKeys = browseKeys{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Lock:    key.NewBinding(key.WithKeys("l", " "), key.WithHelp("l", "toggle lock")),
	Exclude: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle exclude")),
	Swap:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "mark / swap")),
	Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear locks")),
	Write:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write state")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// =============================================================================
// Model
// =============================================================================

// browseRow is one line of the browser: an assignment, a vacancy or an
// unassigned person.
type browseRow struct {
	person string
	role   *roster.RoleID
	label  string
	score  int
	manual bool
}

type planMsg struct {
	plan  *roster.Plan
	locks []roster.AssignmentLock
	err   error
}

type savedMsg struct{ err error }

type browseModel struct {
	plan  *roster.Plan
	locks []roster.AssignmentLock
	rows  []browseRow

	solve func([]roster.AssignmentLock) (*roster.Plan, error)
	save  func([]roster.AssignmentLock) error

	keys   browseKeys
	help   help.Model
	cursor int
	offset int
	height int
	marked *browseRow
	status string
	busy   bool
	dirty  bool
}

func newBrowseModel(st *pkgio.SaveState, plan *roster.Plan, solve func([]roster.AssignmentLock) (*roster.Plan, error)) browseModel {
	m := browseModel{
		locks:  st.Locks,
		solve:  solve,
		keys:   defaultBrowseKeys,
		help:   help.New(),
		height: 20,
	}
	m.setPlan(plan)
	return m
}

func (m *browseModel) setPlan(plan *roster.Plan) {
	m.plan = plan
	m.rows = nil
	for _, a := range plan.Assignments {
		role := a.Role()
		m.rows = append(m.rows, browseRow{
			person: a.Person.Name,
			role:   &role,
			label:  fmt.Sprintf("%-12s %-16s %s", a.Team, a.Position, a.Person.DisplayName()),
			score:  a.Score,
			manual: a.Manual,
		})
	}
	for _, u := range plan.Unfilled {
		m.rows = append(m.rows, browseRow{label: fmt.Sprintf("%-12s %-16s %s", u.Team, u.Qualification, "vacant")})
	}
	for _, p := range plan.Unassigned {
		m.rows = append(m.rows, browseRow{person: p.Name, label: fmt.Sprintf("%-12s %-16s %s", "", "unassigned", p.DisplayName())})
	}
	for _, p := range plan.Excluded {
		m.rows = append(m.rows, browseRow{person: p.Name, label: fmt.Sprintf("%-12s %-16s %s", "", "excluded", p.DisplayName()), manual: true})
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		m.help.Width = msg.Width
	case planMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "solve failed: " + errors.UserMessage(msg.err)
			return m, nil
		}
		m.locks = msg.locks
		m.dirty = true
		m.setPlan(msg.plan)
		m.status = fmt.Sprintf("re-solved: cost %d", msg.plan.TotalCost)
	case savedMsg:
		if msg.err != nil {
			m.status = "write failed: " + msg.err.Error()
		} else {
			m.dirty = false
			m.status = "state written"
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case key.Matches(msg, m.keys.Write):
		if m.save == nil {
			return m, nil
		}
		save, locks := m.save, m.locks
		return m, func() tea.Msg { return savedMsg{err: save(locks)} }
	case m.busy || len(m.rows) == 0:
		// Edits wait for the running solve.
	case key.Matches(msg, m.keys.Lock):
		row := m.rows[m.cursor]
		switch {
		case row.person == "":
			m.status = "vacancies cannot be locked"
		case row.manual:
			return m.resolve(roster.Unlock(m.locks, row.person))
		case row.role != nil:
			return m.resolve(roster.SetLock(m.locks, roster.Pin(row.person, *row.role)))
		default:
			m.status = "only assigned people can be pinned; use x to exclude"
		}
	case key.Matches(msg, m.keys.Exclude):
		row := m.rows[m.cursor]
		if row.person == "" {
			return m, nil
		}
		if row.manual && row.role == nil {
			return m.resolve(roster.Unlock(m.locks, row.person))
		}
		return m.resolve(roster.SetLock(m.locks, roster.Exclude(row.person)))
	case key.Matches(msg, m.keys.Swap):
		row := m.rows[m.cursor]
		if row.person == "" {
			m.status = "pick a person to swap"
			return m, nil
		}
		if m.marked == nil {
			m.marked = &row
			m.status = "swap " + row.person + " with..."
			return m, nil
		}
		a := roster.Slot{Person: m.marked.person, Role: m.marked.role}
		b := roster.Slot{Person: row.person, Role: row.role}
		m.marked = nil
		locks, err := roster.Swap(m.locks, a, b)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m.resolve(locks)
	case key.Matches(msg, m.keys.Clear):
		return m.resolve(nil)
	}
	return m, nil
}

// resolve starts a solve with locks and reports the outcome as a planMsg.
func (m browseModel) resolve(locks []roster.AssignmentLock) (tea.Model, tea.Cmd) {
	m.busy = true
	m.status = "solving..."
	solve := m.solve
	return m, func() tea.Msg {
		plan, err := solve(locks)
		return planMsg{plan: plan, locks: locks, err: err}
	}
}

var (
	browseCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseMarkedStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	browseVacantStyle = lipgloss.NewStyle().Foreground(colorRed)
	browseNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
)

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Assignment plan"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · cost %d · %d locks", m.plan.AnalysisDate, m.plan.TotalCost, len(m.locks))))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		lock := " "
		if row.manual {
			lock = iconLocked
		}
		line := fmt.Sprintf("%s%s %s", cursor, lock, row.label)
		if row.role != nil {
			line += StyleDim.Render(fmt.Sprintf("  %d", row.score))
		}

		switch {
		case m.marked != nil && m.marked.person == row.person:
			b.WriteString(browseMarkedStyle.Render(line))
		case i == m.cursor:
			b.WriteString(browseCursorStyle.Render(line))
		case row.person == "":
			b.WriteString(browseVacantStyle.Render(line))
		default:
			b.WriteString(browseNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(StyleDim.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

var _ tea.Model = browseModel{}

// contextSolve returns a solve of st under replacement locks.
func (c *CLI) contextSolve(ctx context.Context, st *pkgio.SaveState) func([]roster.AssignmentLock) (*roster.Plan, error) {
	return func(locks []roster.AssignmentLock) (*roster.Plan, error) {
		next := *st
		next.Locks = locks
		return c.solveState(ctx, &next)
	}
}
