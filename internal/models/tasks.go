package models

import "strings"

// TaskList is an ordered list of free-text items. A normalized list always
// ends with exactly one empty placeholder and has no interior blanks.
type TaskList []string

// NewTaskList returns the seed list used on first read.
func NewTaskList() TaskList {
	return TaskList{""}
}

// Normalize drops blank entries and appends the single trailing placeholder.
func (l TaskList) Normalize() TaskList {
	out := make(TaskList, 0, len(l)+1)
	for _, item := range l {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return append(out, "")
}

// Edit sets the item at index, growing the list with placeholders when index
// is past the end, and returns the normalized result. l is not modified.
func (l TaskList) Edit(index int, value string) TaskList {
	if index < 0 {
		index = 0
	}
	out := make(TaskList, len(l), max(len(l), index+1))
	copy(out, l)
	for len(out) <= index {
		out = append(out, "")
	}
	out[index] = value
	return out.Normalize()
}

// Items returns the entries without the trailing placeholder.
func (l TaskList) Items() []string {
	items := make([]string, 0, len(l))
	for _, item := range l {
		if strings.TrimSpace(item) != "" {
			items = append(items, item)
		}
	}
	return items
}

// IsNormalized reports whether l satisfies the placeholder invariant.
func (l TaskList) IsNormalized() bool {
	if len(l) == 0 || l[len(l)-1] != "" {
		return false
	}
	for _, item := range l[:len(l)-1] {
		if strings.TrimSpace(item) == "" {
			return false
		}
	}
	return true
}
