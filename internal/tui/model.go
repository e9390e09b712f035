package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/agenda/internal/router"
	"github.com/julianstephens/agenda/internal/tui/components/tasklist"
	"github.com/julianstephens/agenda/internal/tui/components/timeline"
)

type SessionState int

const (
	StateBrowse SessionState = iota
	StateEditSlot
	StateQuickAdd
	StateTaskInput
	StateMealInput
	StateEditNotes
	StateConfirmDelete
)

type Focus int

const (
	FocusTimeline Focus = iota
	FocusTasks
)

type Model struct {
	router   *router.Router
	view     router.View
	state    SessionState
	focus    Focus
	keys     KeyMap
	help     help.Model
	timeline timeline.Model
	taskList tasklist.Model
	input    textinput.Model
	notes    textarea.Model
	quitting bool
	width    int
	height   int

	// target of the input being edited
	editDay   string
	editLabel string
	moveFrom  string
	taskIndex int
	taskIsNew bool
	mealIndex int

	pendingDelete *router.DeleteSlot

	status    string
	statusErr bool
	// warning is shown until the first status message replaces it.
	warning string
}

func NewModel(r *router.Router) Model {
	input := textinput.New()
	input.CharLimit = 500

	notes := textarea.New()
	notes.ShowLineNumbers = false
	notes.Placeholder = "Notes..."

	m := Model{
		router:   r,
		state:    StateBrowse,
		focus:    FocusTimeline,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		timeline: timeline.New(0, 0),
		taskList: tasklist.New(nil, 0, 0),
		input:    input,
		notes:    notes,
	}
	m.apply(r.View())
	return m
}

// WithWarning returns m showing warning in the status line, used for
// problems found in the store at startup.
func (m Model) WithWarning(warning string) Model {
	m.warning = warning
	return m
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateBrowse:
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Deny}
	case StateEditNotes:
		return []key.Binding{m.keys.Save, m.keys.Cancel}
	default:
		return []key.Binding{m.keys.Submit, m.keys.Cancel}
	}

	keys := []key.Binding{m.keys.Tab, m.keys.Prev, m.keys.Next, m.keys.ToggleView}
	if m.focus == FocusTimeline {
		keys = append(keys, m.keys.Edit, m.keys.QuickAdd, m.keys.Star, m.keys.Done, m.keys.Delete)
	} else {
		keys = append(keys, m.taskListKeys()...)
	}
	return append(keys, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Notes, m.keys.Meals}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Prev, m.keys.Next, m.keys.Today, m.keys.ToggleView}

	var actions []key.Binding
	if m.focus == FocusTimeline {
		actions = []key.Binding{m.keys.Edit, m.keys.QuickAdd, m.keys.Move, m.keys.Star, m.keys.Done, m.keys.Delete}
	} else {
		actions = m.taskListKeys()
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) taskListKeys() []key.Binding {
	k := tasklist.DefaultKeyMap()
	return []key.Binding{k.Add, k.Edit, k.Delete}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// weekMode reports whether the current projection is the weekly rollup.
func (m Model) weekMode() bool {
	return m.view.Weekly != nil
}

// apply installs a projection returned by the router into the components.
func (m *Model) apply(v router.View) {
	m.view = v
	switch {
	case v.Weekly != nil:
		m.timeline.SetWeekly(*v.Weekly)
		m.taskList.SetTasks("Week tasks", v.Weekly.Tasks)
	case v.Daily != nil:
		m.timeline.SetDaily(*v.Daily)
		m.taskList.SetTasks("Tasks", v.Daily.Tasks)
	}
}

// dispatch sends cmd through the router and records the outcome in the
// status line. It reports whether the command was applied.
func (m *Model) dispatch(cmd router.Command, success string) bool {
	v, err := m.router.Dispatch(cmd)
	if err != nil {
		m.setError(err)
		return false
	}
	m.apply(v)
	m.setStatus(success)
	return true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
	m.warning = ""
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
	m.warning = ""
}

// selectedDay is the day a timeline action targets: the day of the selected
// row in the weekly view, otherwise the session date.
func (m Model) selectedDay() string {
	if line, ok := m.timeline.Selected(); ok && m.weekMode() {
		return line.DayKey
	}
	return ""
}
