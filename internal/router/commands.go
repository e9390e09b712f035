package router

import "time"

// Command is one user gesture, consumed synchronously by Router.Dispatch.
type Command interface {
	Name() string
}

// Slot commands address a time slot by day key and HH:MM label. An empty
// Day means the session's current date.

type EditText struct {
	Day   string
	Label string
	Text  string
}

type ToggleImportant struct {
	Day   string
	Label string
}

type ToggleCompleted struct {
	Day   string
	Label string
}

// DeleteSlot clears a slot that has text. On a slot without text it
// tombstones the slot, which requires Confirm.
type DeleteSlot struct {
	Day     string
	Label   string
	Confirm bool
}

// QuickAdd writes text at Time, defaulting to 09:00. When From names the
// label of an existing entry being edited and differs from Time, the old
// label is tombstoned.
type QuickAdd struct {
	Day  string
	Time string
	Text string
	From string
}

// Task and notes commands target the day list, or the week list of the
// day's ISO week when Week is set.

type EditTask struct {
	Day   string
	Week  bool
	Index int
	Value string
}

type CommitTask struct {
	Day   string
	Week  bool
	Index int
	Value string
}

type SetMeal struct {
	Day   string
	Label string
	Value string
}

type SetNotes struct {
	Day  string
	Week bool
	Text string
}

// Navigate moves the current date by Delta days, or Delta weeks in week view.
type Navigate struct {
	Delta int
}

type GoTo struct {
	Date time.Time
}

type ToggleViewMode struct{}

type SetSetting struct {
	Field string
	Value string
}

type ResetSettings struct{}

func (EditText) Name() string        { return "edit_text" }
func (ToggleImportant) Name() string { return "toggle_important" }
func (ToggleCompleted) Name() string { return "toggle_completed" }
func (DeleteSlot) Name() string      { return "delete_slot" }
func (QuickAdd) Name() string        { return "quick_add" }
func (EditTask) Name() string        { return "edit_task" }
func (CommitTask) Name() string      { return "commit_task" }
func (SetMeal) Name() string         { return "set_meal" }
func (SetNotes) Name() string        { return "set_notes" }
func (Navigate) Name() string        { return "navigate" }
func (GoTo) Name() string            { return "goto" }
func (ToggleViewMode) Name() string  { return "toggle_view_mode" }
func (SetSetting) Name() string      { return "set_setting" }
func (ResetSettings) Name() string   { return "reset_settings" }
