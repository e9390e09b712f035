package models

import "strings"

// TimeSlotEntry is the record stored for one time-of-day label within a day.
// The zero value is the default for a slot that has never been written.
type TimeSlotEntry struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Important bool   `json:"important"`
	Deleted   bool   `json:"deleted"` // tombstone; supersedes every other field
}

// HasText reports whether the entry carries non-blank text.
func (e TimeSlotEntry) HasText() bool {
	return strings.TrimSpace(e.Text) != ""
}

// Visible reports whether the entry has non-blank text and is not
// tombstoned.
func (e TimeSlotEntry) Visible() bool {
	return !e.Deleted && e.HasText()
}

// SlotUpdate is a partial update for a TimeSlotEntry. Nil fields are left
// untouched when the update is applied.
type SlotUpdate struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Important *bool   `json:"important,omitempty"`
	Deleted   *bool   `json:"deleted,omitempty"`
}

// Apply returns entry with the fields present in u overwritten.
func (u SlotUpdate) Apply(entry TimeSlotEntry) TimeSlotEntry {
	if u.Text != nil {
		entry.Text = *u.Text
	}
	if u.Completed != nil {
		entry.Completed = *u.Completed
	}
	if u.Important != nil {
		entry.Important = *u.Important
	}
	if u.Deleted != nil {
		entry.Deleted = *u.Deleted
	}
	return entry
}

// IsEmpty reports whether the update mentions no field.
func (u SlotUpdate) IsEmpty() bool {
	return u.Text == nil && u.Completed == nil && u.Important == nil && u.Deleted == nil
}

// Merge combines u with a later update; fields set in later win.
func (u SlotUpdate) Merge(later SlotUpdate) SlotUpdate {
	if later.Text != nil {
		u.Text = later.Text
	}
	if later.Completed != nil {
		u.Completed = later.Completed
	}
	if later.Important != nil {
		u.Important = later.Important
	}
	if later.Deleted != nil {
		u.Deleted = later.Deleted
	}
	return u
}

func SetText(text string) SlotUpdate { return SlotUpdate{Text: &text} }
func SetCompleted(v bool) SlotUpdate { return SlotUpdate{Completed: &v} }
func SetImportant(v bool) SlotUpdate { return SlotUpdate{Important: &v} }
func SetDeleted(v bool) SlotUpdate { return SlotUpdate{Deleted: &v} }

// DaySlotMap maps a time label ("09:00") to its entry for a single day.
type DaySlotMap map[string]TimeSlotEntry

// Lookup returns the entry for label, or the default entry if absent.
func (m DaySlotMap) Lookup(label string) TimeSlotEntry {
	if m == nil {
		return TimeSlotEntry{}
	}
	return m[label]
}

// HasVisibleData reports whether any slot has text and is not tombstoned.
func (m DaySlotMap) HasVisibleData() bool {
	for _, e := range m {
		if e.Visible() {
			return true
		}
	}
	return false
}
