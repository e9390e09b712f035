package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Tab        key.Binding
	Quit       key.Binding
	Up         key.Binding
	Down       key.Binding
	Prev       key.Binding
	Next       key.Binding
	Today      key.Binding
	ToggleView key.Binding
	Help       key.Binding
	Edit       key.Binding
	QuickAdd   key.Binding
	Move       key.Binding
	Star       key.Binding
	Done       key.Binding
	Delete     key.Binding
	Notes      key.Binding
	Meals      key.Binding
	Confirm    key.Binding
	Deny       key.Binding
	Cancel     key.Binding
	Submit     key.Binding
	Save       key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Quit, k.Help}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Quit, k.Help},
		{k.Up, k.Down, k.Prev, k.Next, k.Today, k.ToggleView},
		{k.Edit, k.QuickAdd, k.Move, k.Star, k.Done, k.Delete, k.Notes, k.Meals},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "day/week"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit slot"),
		),
		QuickAdd: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "quick add"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move slot"),
		),
		Star: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "important"),
		),
		Done: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "clear/delete"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notes"),
		),
		Meals: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "meals"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save notes"),
		),
	}
}
