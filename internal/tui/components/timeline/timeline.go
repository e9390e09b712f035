package timeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/projector"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(7)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	importantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236"))
)

// Line is one rendered row. Header lines (day titles in the weekly view and
// their "No entries" placeholders) cannot be selected.
type Line struct {
	DayKey string
	Label  string
	Entry  models.TimeSlotEntry
	Header string
}

func (l Line) selectable() bool {
	return l.Header == ""
}

type Model struct {
	viewport viewport.Model
	lines    []Line
	cursor   int
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.lines) == 0 {
		return emptyStyle.Render("No time slots. Check the start and end hours in settings.")
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetDaily shows every time slot of one day.
func (m *Model) SetDaily(v projector.DailyView) {
	lines := make([]Line, 0, len(v.Rows))
	for _, row := range v.Rows {
		lines = append(lines, Line{DayKey: v.DayKey, Label: row.Label, Entry: row.Entry})
	}
	m.setLines(lines)
}

// SetWeekly shows the visible slots of each day of the week under a day
// header.
func (m *Model) SetWeekly(v projector.WeeklyView) {
	var lines []Line
	for _, day := range v.Days {
		lines = append(lines, Line{DayKey: day.DayKey, Header: day.Date.Format("Monday, January 2")})
		if day.Empty {
			lines = append(lines, Line{DayKey: day.DayKey, Header: "No entries"})
			continue
		}
		for _, row := range day.Rows {
			lines = append(lines, Line{DayKey: day.DayKey, Label: row.Label, Entry: row.Entry})
		}
	}
	m.setLines(lines)
}

// setLines replaces the content, keeping the cursor on the same day and
// label when that line still exists.
func (m *Model) setLines(lines []Line) {
	prev, hadPrev := m.Selected()
	m.lines = lines
	m.cursor = -1
	if hadPrev {
		for i, l := range lines {
			if l.selectable() && l.DayKey == prev.DayKey && l.Label == prev.Label {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor < 0 {
		m.cursor = m.next(-1, 1)
	}
	m.Render()
}

// Selected returns the line under the cursor.
func (m Model) Selected() (Line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return Line{}, false
	}
	return m.lines[m.cursor], true
}

// Select moves the cursor to label on dayKey.
func (m *Model) Select(dayKey, label string) bool {
	for i, l := range m.lines {
		if l.selectable() && l.DayKey == dayKey && l.Label == label {
			m.cursor = i
			m.Render()
			return true
		}
	}
	return false
}

func (m *Model) MoveUp() {
	if i := m.next(m.cursor, -1); i >= 0 {
		m.cursor = i
		m.Render()
	}
}

func (m *Model) MoveDown() {
	if i := m.next(m.cursor, 1); i >= 0 {
		m.cursor = i
		m.Render()
	}
}

// next returns the first selectable index after from in direction dir, or
// -1 when there is none.
func (m Model) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.lines); i += dir {
		if m.lines[i].selectable() {
			return i
		}
	}
	return -1
}

func (m *Model) Render() {
	var b strings.Builder
	for i, l := range m.lines {
		var line string
		switch {
		case l.Header == "No entries":
			line = "  " + emptyStyle.Render(l.Header)
		case l.Header != "":
			line = headerStyle.Render(l.Header)
		default:
			line = renderEntry(l)
			if i == m.cursor {
				line = cursorStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.scrollToCursor()
}

func (m *Model) scrollToCursor() {
	if m.cursor < 0 || m.viewport.Height <= 0 {
		return
	}
	// header lines render with a top margin, so count them twice
	row := 0
	for i := 0; i < m.cursor; i++ {
		row++
		if m.lines[i].Header != "" && m.lines[i].Header != "No entries" {
			row++
		}
	}
	switch {
	case row < m.viewport.YOffset:
		m.viewport.SetYOffset(row)
	case row >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

func renderEntry(l Line) string {
	box := "[ ]"
	if l.Entry.Completed {
		box = "[x]"
	}
	star := " "
	if l.Entry.Important {
		star = importantStyle.Render("★")
	}

	text := l.Entry.Text
	switch {
	case text == "":
		text = emptyStyle.Render("·")
	case l.Entry.Completed:
		text = completedStyle.Render(text)
	case l.Entry.Important:
		text = importantStyle.Render(text)
	default:
		text = textStyle.Render(text)
	}
	return fmt.Sprintf("%s %s %s %s", labelStyle.Render(l.Label), box, star, text)
}
