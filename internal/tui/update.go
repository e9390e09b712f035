package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/router"
	"github.com/julianstephens/agenda/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tasklist.AddTaskMsg:
		// the placeholder always sits right after the real tasks
		m.taskIndex = m.taskList.Len()
		m.taskIsNew = true
		return m, m.beginInput(StateTaskInput, "New task: ", "")

	case tasklist.EditTaskMsg:
		m.taskIndex = msg.Index
		m.taskIsNew = false
		return m, m.beginInput(StateTaskInput, "Task: ", msg.Value)

	case tasklist.DeleteTaskMsg:
		m.dispatch(router.EditTask{Week: m.weekMode(), Index: msg.Index}, "Task removed")
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateBrowse:
			return m.updateBrowse(msg)
		case StateConfirmDelete:
			return m.updateConfirm(msg)
		case StateEditNotes:
			return m.updateNotes(msg)
		default:
			return m.updateInput(msg)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateBrowse, StateConfirmDelete:
	case StateEditNotes:
		m.notes, cmd = m.notes.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.focus == FocusTimeline {
			m.focus = FocusTasks
		} else {
			m.focus = FocusTimeline
		}
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.dispatch(router.Navigate{Delta: -1}, "")
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.dispatch(router.Navigate{Delta: 1}, "")
		return m, nil
	case key.Matches(msg, m.keys.Today):
		m.dispatch(router.GoTo{Date: time.Now()}, "")
		return m, nil
	case key.Matches(msg, m.keys.ToggleView):
		m.dispatch(router.ToggleViewMode{}, "")
		return m, nil
	case key.Matches(msg, m.keys.Notes):
		return m, m.beginNotes()
	case key.Matches(msg, m.keys.Meals):
		if m.weekMode() {
			m.setStatus("Meals are edited in the day view")
			return m, nil
		}
		m.mealIndex = 0
		return m, m.beginMeal()
	}

	if m.focus == FocusTasks {
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd
	}
	return m.updateTimeline(msg)
}

func (m Model) updateTimeline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.QuickAdd) {
		m.editDay = m.selectedDay()
		m.moveFrom = ""
		return m, m.beginInput(StateQuickAdd, "Add (HH:MM text): ", "")
	}

	line, ok := m.timeline.Selected()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.timeline.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.timeline.MoveDown()
	case !ok:
	case key.Matches(msg, m.keys.Edit):
		m.editDay = m.selectedDay()
		m.editLabel = line.Label
		return m, m.beginInput(StateEditSlot, line.Label+" ", line.Entry.Text)
	case key.Matches(msg, m.keys.Move):
		if !line.Entry.HasText() {
			m.setStatus("Nothing to move")
			return m, nil
		}
		m.editDay = m.selectedDay()
		m.moveFrom = line.Label
		return m, m.beginInput(StateQuickAdd, "Move to (HH:MM text): ", line.Label+" "+line.Entry.Text)
	case key.Matches(msg, m.keys.Star):
		m.dispatch(router.ToggleImportant{Day: m.selectedDay(), Label: line.Label}, "")
	case key.Matches(msg, m.keys.Done):
		m.dispatch(router.ToggleCompleted{Day: m.selectedDay(), Label: line.Label}, "")
	case key.Matches(msg, m.keys.Delete):
		m.deleteSlot(line.Label)
	}
	return m, nil
}

// deleteSlot clears the slot, or asks before removing a slot that is
// already empty.
func (m *Model) deleteSlot(label string) {
	cmd := router.DeleteSlot{Day: m.selectedDay(), Label: label}
	v, err := m.router.Dispatch(cmd)
	if errors.Is(err, apperrors.ErrConfirmationRequired) {
		cmd.Confirm = true
		m.pendingDelete = &cmd
		m.state = StateConfirmDelete
		return
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.apply(v)
	m.setStatus("Cleared " + label)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		cmd := *m.pendingDelete
		m.pendingDelete = nil
		m.state = StateBrowse
		m.dispatch(cmd, "Removed "+cmd.Label)
	case key.Matches(msg, m.keys.Deny):
		m.pendingDelete = nil
		m.state = StateBrowse
		m.setStatus("Delete cancelled")
	}
	return m, nil
}

func (m *Model) beginInput(state SessionState, prompt, value string) tea.Cmd {
	m.state = state
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.input.Blur()
	m.input.Reset()
	m.state = StateBrowse
	m.editDay = ""
	m.editLabel = ""
	m.moveFrom = ""
}

func (m *Model) beginMeal() tea.Cmd {
	label := constants.MealLabels[m.mealIndex]
	return m.beginInput(StateMealInput, label+": ", m.view.Daily.Meals.Get(label))
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endInput()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput applies the input. On error the input stays open so the
// value can be corrected.
func (m *Model) submitInput() tea.Cmd {
	value := m.input.Value()

	switch m.state {
	case StateEditSlot:
		if !m.dispatch(router.EditText{Day: m.editDay, Label: m.editLabel, Text: value}, "Saved "+m.editLabel) {
			return nil
		}

	case StateQuickAdd:
		at, text := splitQuickAdd(value)
		if !m.dispatch(router.QuickAdd{Day: m.editDay, Time: at, Text: text, From: m.moveFrom}, "") {
			return nil
		}
		if at == "" {
			at = constants.DefaultQuickAddTime
		}
		day := m.editDay
		if day == "" && m.view.Daily != nil {
			day = m.view.Daily.DayKey
		}
		m.timeline.Select(day, at)
		m.setStatus("Saved " + at)

	case StateTaskInput:
		var cmd router.Command = router.EditTask{Week: m.weekMode(), Index: m.taskIndex, Value: value}
		if m.taskIsNew {
			cmd = router.CommitTask{Week: m.weekMode(), Index: m.taskIndex, Value: value}
		}
		if !m.dispatch(cmd, "Tasks saved") {
			return nil
		}

	case StateMealInput:
		label := constants.MealLabels[m.mealIndex]
		if !m.dispatch(router.SetMeal{Label: label, Value: value}, label+" saved") {
			return nil
		}
		if m.mealIndex+1 < len(constants.MealLabels) {
			m.mealIndex++
			return m.beginMeal()
		}
	}

	m.endInput()
	return nil
}

// splitQuickAdd splits "HH:MM text" into a time and text. Input that does
// not start with something time-like is all text at the default time.
func splitQuickAdd(value string) (string, string) {
	value = strings.TrimSpace(value)
	fields := strings.Fields(value)
	if len(fields) == 0 || !looksLikeTime(fields[0]) {
		return "", value
	}
	return fields[0], strings.TrimSpace(strings.TrimPrefix(value, fields[0]))
}

func looksLikeTime(s string) bool {
	if !strings.Contains(s, ":") {
		return false
	}
	for _, r := range s {
		if r != ':' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func (m *Model) beginNotes() tea.Cmd {
	notes := ""
	switch {
	case m.view.Weekly != nil:
		notes = m.view.Weekly.Notes
	case m.view.Daily != nil:
		notes = m.view.Daily.Notes
	}
	m.notes.SetValue(notes)
	m.state = StateEditNotes
	return m.notes.Focus()
}

func (m Model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.notes.Blur()
		m.state = StateBrowse
		return m, nil
	case key.Matches(msg, m.keys.Save):
		if m.dispatch(router.SetNotes{Week: m.weekMode(), Text: m.notes.Value()}, "Notes saved") {
			m.notes.Blur()
			m.state = StateBrowse
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	bodyHeight := max(m.height-8, 5)
	left := max(m.width*3/5-4, 20)
	right := max(m.width-left-10, 20)

	m.timeline.SetSize(left, bodyHeight)
	m.taskList.SetSize(right, max(bodyHeight/2, 3))
	m.notes.SetWidth(max(m.width-6, 20))
	m.input.Width = max(m.width-len(m.input.Prompt)-6, 20)
}
