// Package repository is the only layer that reads or writes domain records.
// Slot writes are merges: fields not named by an update keep their stored value.
package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/keys"
	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/storage"
)

type Repository struct {
	store storage.Provider
	// mu serializes read-modify-write sequences inside this process. Stores
	// implementing storage.Atomic also guard against other processes.
	mu sync.Mutex
}

func New(store storage.Provider) *Repository {
	return &Repository{store: store}
}

// Store returns the underlying provider.
func (r *Repository) Store() storage.Provider {
	return r.store
}

// decode reads key from kv into v. A missing key leaves v untouched and
// reports false. A value that does not decode is returned as a
// MalformedValueError.
func decode(kv storage.KV, key string, v interface{}) (bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, &apperrors.MalformedValueError{Key: key, Err: err}
	}
	return true, nil
}

func encode(kv storage.KV, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// read is decode for the read paths, which never fail upward: any error is
// logged and the caller keeps its default value.
func (r *Repository) read(key string, v interface{}) bool {
	ok, err := decode(r.store, key, v)
	if err != nil {
		if apperrors.IsMalformed(err) {
			logger.Warn("Treating malformed stored value as absent", "key", key, "error", err)
		} else {
			logger.Warn("Storage read failed, using default", "key", key, "error", err)
		}
		return false
	}
	return ok
}

// update runs fn as one read-modify-write against the store.
func (r *Repository) update(fn func(storage.KV) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return storage.Update(r.store, fn)
}

// --- Time slots ---

// MergeSlot applies u to the entry at (dayKey, label), creating the entry with
// default values when absent. Sibling slots of the day are preserved.
func (r *Repository) MergeSlot(dayKey, label string, u models.SlotUpdate) error {
	if u.IsEmpty() {
		return nil
	}
	return r.MergeSlots(dayKey, map[string]models.SlotUpdate{label: u})
}

// MergeSlots applies several slot updates of one day in a single write.
func (r *Repository) MergeSlots(dayKey string, updates map[string]models.SlotUpdate) error {
	return r.updateSlots(dayKey, func(models.DaySlotMap) (map[string]models.SlotUpdate, error) {
		return updates, nil
	})
}

// UpdateSlot computes an update from the current entry and applies it in the
// same transaction, so the decision and the write see one state. An error
// from fn aborts without writing.
func (r *Repository) UpdateSlot(dayKey, label string, fn func(models.TimeSlotEntry) (models.SlotUpdate, error)) error {
	return r.updateSlots(dayKey, func(slots models.DaySlotMap) (map[string]models.SlotUpdate, error) {
		u, err := fn(slots.Lookup(label))
		if err != nil {
			return nil, err
		}
		return map[string]models.SlotUpdate{label: u}, nil
	})
}

func (r *Repository) updateSlots(dayKey string, fn func(models.DaySlotMap) (map[string]models.SlotUpdate, error)) error {
	key := keys.DataKey(dayKey)
	return r.update(func(kv storage.KV) error {
		slots := models.DaySlotMap{}
		if _, err := decode(kv, key, &slots); err != nil {
			if !apperrors.IsMalformed(err) {
				return err
			}
			logger.Warn("Replacing malformed day slots", "key", key, "error", err)
			slots = models.DaySlotMap{}
		}
		if slots == nil {
			slots = models.DaySlotMap{}
		}
		updates, err := fn(slots)
		if err != nil {
			return err
		}
		changed := false
		for label, u := range updates {
			if u.IsEmpty() {
				continue
			}
			slots[label] = u.Apply(slots.Lookup(label))
			changed = true
		}
		if !changed {
			return nil
		}
		return encode(kv, key, slots)
	})
}

// ReadDaySlots returns every stored slot of the day, tombstones included.
// A day that was never written yields an empty map.
func (r *Repository) ReadDaySlots(dayKey string) models.DaySlotMap {
	slots := models.DaySlotMap{}
	if !r.read(keys.DataKey(dayKey), &slots) || slots == nil {
		return models.DaySlotMap{}
	}
	return slots
}

// ReadSlot returns the entry at (dayKey, label), or the default entry.
func (r *Repository) ReadSlot(dayKey, label string) models.TimeSlotEntry {
	return r.ReadDaySlots(dayKey).Lookup(label)
}

// DayHasVisibleData reports whether the day has a slot with text that is not tombstoned.
func (r *Repository) DayHasVisibleData(dayKey string) bool {
	return r.ReadDaySlots(dayKey).HasVisibleData()
}

// --- Task lists ---

// ReadTasks returns the normalized list at listKey. An absent list reads as
// the single-placeholder seed.
func (r *Repository) ReadTasks(listKey string) models.TaskList {
	var list models.TaskList
	if !r.read(listKey, &list) {
		return models.NewTaskList()
	}
	return list.Normalize()
}

// AppendOrEditTask sets the item at index, growing the list if needed, and
// persists the normalized result.
func (r *Repository) AppendOrEditTask(listKey string, index int, value string) (models.TaskList, error) {
	var result models.TaskList
	err := r.update(func(kv storage.KV) error {
		list := r.tasksIn(kv, listKey)
		result = list.Edit(index, value)
		return encode(kv, listKey, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CommitTask is the submit path for a task input: the value is trimmed and
// a blank commit leaves the list unchanged.
func (r *Repository) CommitTask(listKey string, index int, value string) (models.TaskList, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return r.ReadTasks(listKey), nil
	}
	return r.AppendOrEditTask(listKey, index, value)
}

func (r *Repository) tasksIn(kv storage.KV, listKey string) models.TaskList {
	var list models.TaskList
	ok, err := decode(kv, listKey, &list)
	if err != nil {
		logger.Warn("Treating malformed task list as empty", "key", listKey, "error", err)
	}
	if !ok {
		return models.NewTaskList()
	}
	return list.Normalize()
}

// --- Meals ---

// ReadMeals returns the meal map of the day with every meal label present.
func (r *Repository) ReadMeals(dayKey string) models.MealMap {
	meals := models.MealMap{}
	r.read(keys.MealsKey(dayKey), &meals)
	return meals.Complete()
}

// WriteMeal sets the text of one meal. label must be a known meal label.
func (r *Repository) WriteMeal(dayKey, label, value string) error {
	if !models.IsMealLabel(label) {
		return &apperrors.ValidationError{Field: "meal", Value: label, Reason: "must be one of Breakfast, Lunch, Dinner"}
	}
	key := keys.MealsKey(dayKey)
	return r.update(func(kv storage.KV) error {
		meals := models.MealMap{}
		if _, err := decode(kv, key, &meals); err != nil {
			if !apperrors.IsMalformed(err) {
				return err
			}
			logger.Warn("Replacing malformed meals", "key", key, "error", err)
			meals = models.MealMap{}
		}
		meals = meals.Complete()
		meals[label] = value
		return encode(kv, key, meals)
	})
}

// --- Notes ---

// ReadNotes returns the notes text at noteKey, or "" when absent.
func (r *Repository) ReadNotes(noteKey string) string {
	var text string
	r.read(noteKey, &text)
	return text
}

// WriteNotes overwrites the notes text at noteKey.
func (r *Repository) WriteNotes(noteKey, value string) error {
	return r.update(func(kv storage.KV) error {
		return encode(kv, noteKey, value)
	})
}

// --- Settings ---

// LoadSettings overlays the persisted settings onto the defaults and clamps
// the result into range.
func (r *Repository) LoadSettings() models.Settings {
	s := models.DefaultSettings()
	if !r.read(constants.SettingsKey, &s) {
		s = models.DefaultSettings()
	}
	return s.Normalize()
}

// SaveSettings persists the whole settings structure after clamping it.
func (r *Repository) SaveSettings(s models.Settings) (models.Settings, error) {
	s = s.Normalize()
	err := r.update(func(kv storage.KV) error {
		return encode(kv, constants.SettingsKey, s)
	})
	if err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// ResetSettings removes the persisted settings so the next load returns defaults.
func (r *Repository) ResetSettings() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Delete(constants.SettingsKey); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}
