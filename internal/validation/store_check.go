package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/keys"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/storage"
)

// ConflictType represents the kind of problem found in a stored value
type ConflictType string

const (
	ConflictMalformedValue   ConflictType = "malformed_value"
	ConflictInvalidKey       ConflictType = "invalid_key"
	ConflictUnknownKey       ConflictType = "unknown_key"
	ConflictInvalidSlotLabel ConflictType = "invalid_slot_label"
	ConflictTaskPlaceholder  ConflictType = "task_placeholder"
	ConflictUnknownMeal      ConflictType = "unknown_meal"
	ConflictInvalidSetting   ConflictType = "invalid_setting"
)

// Conflict represents one problem detected in the store
type Conflict struct {
	Type        ConflictType
	Key         string
	Description string
}

// Report contains all detected conflicts
type Report struct {
	KeysScanned int
	Conflicts   []Conflict
}

// FixAction describes a repair applied by Fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Report) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Report) FormatReport() string {
	if !r.HasConflicts() {
		return fmt.Sprintf("No problems detected in %d keys.", r.KeysScanned)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Problems detected in %d keys:\n", r.KeysScanned)
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Type, c.Description)
	}
	return b.String()
}

func (r *Report) add(t ConflictType, key, format string, args ...interface{}) {
	r.Conflicts = append(r.Conflicts, Conflict{
		Type:        t,
		Key:         key,
		Description: fmt.Sprintf("%s: ", key) + fmt.Sprintf(format, args...),
	})
}

// CheckStore scans every key of p and reports values the repository cannot
// use as stored.
func CheckStore(p storage.Provider) (Report, error) {
	all, err := p.Keys("")
	if err != nil {
		return Report{}, fmt.Errorf("failed to list keys: %w", err)
	}

	report := Report{KeysScanned: len(all)}
	for _, key := range all {
		raw, ok, err := p.Get(key)
		if err != nil {
			return report, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		checkKey(&report, key, raw)
	}
	return report, nil
}

func checkKey(r *Report, key, raw string) {
	switch {
	case key == constants.SettingsKey:
		checkSettings(r, key, raw)
	case strings.HasPrefix(key, constants.DataKeyPrefix):
		if checkDaySuffix(r, key, constants.DataKeyPrefix) {
			checkSlots(r, key, raw)
		}
	case strings.HasPrefix(key, constants.WeekTasksKeyPrefix):
		if checkWeekSuffix(r, key, constants.WeekTasksKeyPrefix) {
			checkTasks(r, key, raw)
		}
	case strings.HasPrefix(key, constants.TasksKeyPrefix):
		if checkDaySuffix(r, key, constants.TasksKeyPrefix) {
			checkTasks(r, key, raw)
		}
	case strings.HasPrefix(key, constants.MealsKeyPrefix):
		if checkDaySuffix(r, key, constants.MealsKeyPrefix) {
			checkMeals(r, key, raw)
		}
	case strings.HasPrefix(key, constants.WeekNotesKeyPrefix):
		if checkWeekSuffix(r, key, constants.WeekNotesKeyPrefix) {
			checkNotes(r, key, raw)
		}
	case strings.HasPrefix(key, constants.NotesKeyPrefix):
		if checkDaySuffix(r, key, constants.NotesKeyPrefix) {
			checkNotes(r, key, raw)
		}
	default:
		r.add(ConflictUnknownKey, key, "key is outside the known namespaces")
	}
}

func checkDaySuffix(r *Report, key, prefix string) bool {
	if !keys.ValidDayKey(strings.TrimPrefix(key, prefix)) {
		r.add(ConflictInvalidKey, key, "suffix is not a YYYY-MM-DD day key")
		return false
	}
	return true
}

func checkWeekSuffix(r *Report, key, prefix string) bool {
	if !keys.ValidWeekKey(strings.TrimPrefix(key, prefix)) {
		r.add(ConflictInvalidKey, key, "suffix is not a YYYY-Www week key")
		return false
	}
	return true
}

func checkSlots(r *Report, key, raw string) {
	var slots models.DaySlotMap
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		r.add(ConflictMalformedValue, key, "%v", err)
		return
	}
	labels := make([]string, 0, len(slots))
	for label := range slots {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if !IsValidTimeLabel(label) {
			r.add(ConflictInvalidSlotLabel, key, "slot label %q is not HH:MM", label)
		}
	}
}

func checkTasks(r *Report, key, raw string) {
	var list models.TaskList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		r.add(ConflictMalformedValue, key, "%v", err)
		return
	}
	if !list.IsNormalized() {
		r.add(ConflictTaskPlaceholder, key, "list must end with exactly one empty placeholder and have no blank items")
	}
}

func checkMeals(r *Report, key, raw string) {
	var meals models.MealMap
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		r.add(ConflictMalformedValue, key, "%v", err)
		return
	}
	labels := make([]string, 0, len(meals))
	for label := range meals {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if !models.IsMealLabel(label) {
			r.add(ConflictUnknownMeal, key, "unknown meal %q", label)
		}
	}
}

func checkNotes(r *Report, key, raw string) {
	var text string
	if err := json.Unmarshal([]byte(raw), &text); err != nil {
		r.add(ConflictMalformedValue, key, "%v", err)
	}
}

func checkSettings(r *Report, key, raw string) {
	s := models.DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		r.add(ConflictMalformedValue, key, "%v", err)
		return
	}
	for _, err := range ValidateSettings(s) {
		r.add(ConflictInvalidSetting, key, "%v", err)
	}
}

// Fix repairs what can be repaired without guessing at user content:
// task lists are normalized, settings are clamped and malformed values
// are removed.
func Fix(p storage.Provider, report Report) ([]FixAction, error) {
	var actions []FixAction
	fixed := make(map[string]bool)
	for _, c := range report.Conflicts {
		if fixed[c.Key] {
			continue
		}
		var action string
		switch c.Type {
		case ConflictMalformedValue:
			if err := p.Delete(c.Key); err != nil {
				return actions, fmt.Errorf("failed to delete %s: %w", c.Key, err)
			}
			action = fmt.Sprintf("Deleted malformed value at %s", c.Key)
		case ConflictTaskPlaceholder:
			if err := rewrite(p, c.Key, func(raw string) (interface{}, error) {
				var list models.TaskList
				err := json.Unmarshal([]byte(raw), &list)
				return list.Normalize(), err
			}); err != nil {
				return actions, err
			}
			action = fmt.Sprintf("Normalized task list at %s", c.Key)
		case ConflictInvalidSetting:
			if err := rewrite(p, c.Key, func(raw string) (interface{}, error) {
				s := models.DefaultSettings()
				err := json.Unmarshal([]byte(raw), &s)
				return s.Normalize(), err
			}); err != nil {
				return actions, err
			}
			action = "Clamped settings into range"
		default:
			continue
		}
		fixed[c.Key] = true
		actions = append(actions, FixAction{Action: action, SourceConflict: c})
	}
	return actions, nil
}

func rewrite(p storage.Provider, key string, fn func(raw string) (interface{}, error)) error {
	return storage.Update(p, func(kv storage.KV) error {
		raw, ok, err := kv.Get(key)
		if err != nil || !ok {
			return err
		}
		v, err := fn(raw)
		if err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return kv.Set(key, string(data))
	})
}
