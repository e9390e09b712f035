package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/agenda/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateEditNotes:
		content = lipgloss.JoinVertical(lipgloss.Left,
			sectionStyle.Render(m.notesTitle()),
			m.notes.View(),
		)
	default:
		content = m.viewBody()
	}

	parts := []string{m.viewHeader(), content}
	if m.inputActive() {
		parts = append(parts, m.input.View())
	}
	parts = append(parts, m.viewStatus(), m.help.View(m))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) inputActive() bool {
	switch m.state {
	case StateEditSlot, StateQuickAdd, StateTaskInput, StateMealInput:
		return true
	}
	return false
}

func (m Model) viewHeader() string {
	var tabs []string
	for _, mode := range []string{constants.ViewModeDay, constants.ViewModeWeek} {
		title := strings.ToUpper(mode[:1]) + mode[1:]
		if m.view.Settings.ViewMode == mode {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tabs, titleStyle.Render(m.title()))...)
}

func (m Model) title() string {
	switch {
	case m.view.Weekly != nil:
		w := m.view.Weekly
		first, last := w.Days[0].Date, w.Days[6].Date
		return fmt.Sprintf("Week %s  %s - %s", w.WeekKey, first.Format("Jan 2"), last.Format("Jan 2 2006"))
	case m.view.Daily != nil:
		return m.view.Daily.Date.Format("Monday, January 2 2006")
	}
	return ""
}

func (m Model) notesTitle() string {
	if m.weekMode() {
		return "Week notes"
	}
	return "Notes"
}

func (m Model) viewBody() string {
	left, right := paneStyle, paneStyle
	if m.focus == FocusTimeline {
		left = focusedPaneStyle
	} else {
		right = focusedPaneStyle
	}

	var side []string
	side = append(side, sectionStyle.Render(m.taskList.Title()), m.taskList.View())
	if m.view.Daily != nil {
		side = append(side, "", sectionStyle.Render("Meals"))
		for _, label := range constants.MealLabels {
			text := m.view.Daily.Meals.Get(label)
			if text == "" {
				text = mutedStyle.Render("·")
			}
			side = append(side, fmt.Sprintf("%-10s %s", label, text))
		}
	}
	side = append(side, "", sectionStyle.Render(m.notesTitle()), m.viewNotes())

	return lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(m.timeline.View()),
		right.Render(lipgloss.JoinVertical(lipgloss.Left, side...)),
	)
}

func (m Model) viewNotes() string {
	notes := ""
	switch {
	case m.view.Weekly != nil:
		notes = m.view.Weekly.Notes
	case m.view.Daily != nil:
		notes = m.view.Daily.Notes
	}
	if strings.TrimSpace(notes) == "" {
		return mutedStyle.Render("Press 'n' to add notes.")
	}
	return notes
}

func (m Model) viewStatus() string {
	switch {
	case m.statusErr:
		return dangerStyle.Render("✗ " + m.status)
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.warning != "":
		return warningStyle.Render(m.warning)
	}
	return ""
}

func (m Model) viewConfirmDelete() string {
	label := ""
	if m.pendingDelete != nil {
		label = m.pendingDelete.Label
	}
	return lipgloss.Place(m.width, max(m.height-6, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Slot %s is already empty. Remove it?", label)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
