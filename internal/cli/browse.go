package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mspreport/internal/cli/formatter"
	"github.com/alexanderramin/mspreport/internal/domain"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	browseMinColWidth = 6
	browseMaxColWidth = 40
	// rows used by the title, status line and filter prompt
	browseChromeHeight = 6
)

// browseModel is a scrollable view of a flattened task table with a live
// text filter.
type browseModel struct {
	title     string
	tasks     domain.Table
	rows      []table.Row
	visible   []int
	table     table.Model
	filter    textinput.Model
	filtering bool
	detail    bool
	height    int
}

func newBrowseModel(title string, tasks domain.Table) browseModel {
	rows := make([]table.Row, tasks.Len())
	widths := make([]int, len(tasks.Columns))
	for i, c := range tasks.Columns {
		widths[i] = lipgloss.Width(c)
	}
	for r, rec := range tasks.Rows {
		row := make(table.Row, len(tasks.Columns))
		for i, c := range tasks.Columns {
			if f, ok := domain.LookupField(c); ok {
				row[i] = f.Text(rec)
			}
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
		rows[r] = row
	}

	cols := make([]table.Column, len(tasks.Columns))
	for i, c := range tasks.Columns {
		cols[i] = table.Column{Title: c, Width: min(max(widths[i], browseMinColWidth), browseMaxColWidth)}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(formatter.ColorHeader).Bold(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorPurple)

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(20),
		table.WithStyles(styles),
	)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter tasks"

	m := browseModel{
		title:  title,
		tasks:  tasks,
		rows:   rows,
		table:  t,
		filter: ti,
		height: 20,
	}
	m.applyFilter()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-browseChromeHeight, 3)
		m.table.SetHeight(m.height)
		m.table.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "/":
			m.filtering = true
			m.detail = false
			m.table.Blur()
			return m, m.filter.Focus()
		case "enter":
			m.detail = !m.detail
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		m.table.Focus()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		m.table.Focus()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter keeps rows where any cell contains the filter text, ignoring case.
func (m *browseModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	shown := make([]table.Row, 0, len(m.rows))
	for i, row := range m.rows {
		if needle == "" || rowContains(row, needle) {
			m.visible = append(m.visible, i)
			shown = append(shown, row)
		}
	}
	m.table.SetRows(shown)
	if len(shown) > 0 && m.table.Cursor() < 0 {
		m.table.SetCursor(0)
	}
}

func rowContains(row table.Row, needle string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), needle) {
			return true
		}
	}
	return false
}

// selected returns the task under the cursor.
func (m browseModel) selected() (domain.TaskRecord, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.visible) {
		return domain.TaskRecord{}, false
	}
	return m.tasks.Rows[m.visible[c]], true
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(m.title))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.detail {
		if rec, ok := m.selected(); ok {
			b.WriteString(formatter.KeyValue([][2]string{
				{"Path", rec.SummaryPath},
				{"Task", formatter.Bold(rec.Name)},
				{"Dates", formatter.DayMonthYear(rec.Start) + " - " + formatter.DayMonthYear(rec.Finish)},
				{"Notes", rec.Notes},
			}))
			b.WriteString("\n")
		}
	}

	status := fmt.Sprintf("%d of %s", len(m.visible), formatter.Plural(len(m.rows), "task"))
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View() + "  " + formatter.Dim(status))
	} else {
		b.WriteString(formatter.Dim(status + "  ↑/↓ move  / filter  enter details  q quit"))
	}
	return b.String()
}
