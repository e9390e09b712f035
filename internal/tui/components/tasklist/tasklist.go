package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/agenda/internal/models"
)

type AddTaskMsg struct{}

type DeleteTaskMsg struct {
	Index int
}

type EditTaskMsg struct {
	Index int
	Value string
}

// Item is one non-placeholder entry of a task list.
type Item struct {
	Index int
	Text  string
}

func (i Item) Title() string       { return i.Text }
func (i Item) Description() string { return fmt.Sprintf("#%d", i.Index+1) }
func (i Item) FilterValue() string { return i.Text }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	title string
}

func New(tasks models.TaskList, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(toItems(tasks), delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(tasks models.TaskList) []list.Item {
	texts := tasks.Items()
	items := make([]list.Item, len(texts))
	for i, t := range texts {
		items[i] = Item{Index: i, Text: t}
	}
	return items
}

// SetTasks replaces the shown list under a title such as "Tasks" or
// "Week tasks".
func (m *Model) SetTasks(title string, tasks models.TaskList) {
	m.title = title
	m.list.SetItems(toItems(tasks))
}

func (m Model) Title() string {
	return m.title
}

// Len is the number of real tasks, excluding the trailing placeholder.
func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditTaskMsg{Index: i.Index, Value: i.Text} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{Index: i.Index} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No tasks yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
