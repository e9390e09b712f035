package router

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/repository"
	"github.com/julianstephens/agenda/internal/storage"
)

const day = "2024-06-10"

func setupRouter(t *testing.T) (*Router, *repository.Repository) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	repo := repository.New(store)
	// Monday 2024-06-10
	return New(repo, time.Date(2024, time.June, 10, 12, 0, 0, 0, time.Local)), repo
}

func mustDispatch(t *testing.T, r *Router, cmd Command) View {
	t.Helper()
	v, err := r.Dispatch(cmd)
	if err != nil {
		t.Fatalf("Dispatch(%s) error = %v", cmd.Name(), err)
	}
	return v
}

func rowFor(v View, label string) (models.TimeSlotEntry, bool) {
	for _, row := range v.Daily.Rows {
		if row.Label == label {
			return row.Entry, true
		}
	}
	return models.TimeSlotEntry{}, false
}

func TestInitialView(t *testing.T) {
	r, _ := setupRouter(t)
	v := r.View()
	if v.Daily == nil || v.Weekly != nil {
		t.Fatalf("default view should be daily: %+v", v)
	}
	if v.Daily.DayKey != day || len(v.Daily.Rows) != 15 {
		t.Errorf("daily view = %s with %d rows", v.Daily.DayKey, len(v.Daily.Rows))
	}
}

func TestEditThenStarKeepsText(t *testing.T) {
	r, repo := setupRouter(t)
	mustDispatch(t, r, EditText{Day: day, Label: "09:00", Text: "Standup"})
	v := mustDispatch(t, r, ToggleImportant{Day: day, Label: "09:00"})

	want := models.TimeSlotEntry{Text: "Standup", Important: true}
	if got := repo.ReadDaySlots(day)["09:00"]; got != want {
		t.Errorf("stored = %+v, want %+v", got, want)
	}
	if got, _ := rowFor(v, "09:00"); got != want {
		t.Errorf("projected = %+v, want %+v", got, want)
	}
}

func TestToggles(t *testing.T) {
	r, repo := setupRouter(t)
	mustDispatch(t, r, ToggleCompleted{Label: "10:00"})
	mustDispatch(t, r, ToggleImportant{Label: "10:00"})
	mustDispatch(t, r, ToggleCompleted{Label: "10:00"})

	got := repo.ReadSlot(day, "10:00")
	if got.Completed || !got.Important {
		t.Errorf("slot = %+v", got)
	}
}

func TestTwoStageDelete(t *testing.T) {
	r, repo := setupRouter(t)
	mustDispatch(t, r, EditText{Label: "12:00", Text: "Lunch"})
	mustDispatch(t, r, ToggleImportant{Label: "12:00"})
	mustDispatch(t, r, ToggleCompleted{Label: "12:00"})

	v := mustDispatch(t, r, DeleteSlot{Label: "12:00"})
	want := models.TimeSlotEntry{Important: true}
	if got := repo.ReadSlot(day, "12:00"); got != want {
		t.Errorf("after first delete = %+v, want %+v", got, want)
	}
	if _, ok := rowFor(v, "12:00"); !ok {
		t.Error("cleared slot should still be projected")
	}

	_, err := r.Dispatch(DeleteSlot{Label: "12:00"})
	if !errors.Is(err, apperrors.ErrConfirmationRequired) {
		t.Fatalf("unconfirmed tombstone error = %v", err)
	}
	if got := repo.ReadSlot(day, "12:00"); got.Deleted {
		t.Error("unconfirmed delete tombstoned the slot")
	}

	v = mustDispatch(t, r, DeleteSlot{Label: "12:00", Confirm: true})
	if got := repo.ReadSlot(day, "12:00"); !got.Deleted || !got.Important {
		t.Errorf("after confirmed delete = %+v", got)
	}
	if _, ok := rowFor(v, "12:00"); ok {
		t.Error("tombstoned slot still in daily projection")
	}

	mustDispatch(t, r, ToggleViewMode{})
	if !r.View().Weekly.Days[0].Empty {
		t.Error("tombstoned slot still in weekly projection")
	}
}

func TestQuickAddMovesEntry(t *testing.T) {
	r, repo := setupRouter(t)
	mustDispatch(t, r, QuickAdd{Day: day, Time: "09:00", Text: "Dentist"})
	mustDispatch(t, r, QuickAdd{Day: day, Time: "14:00", Text: "Dentist (moved)", From: "09:00"})

	slots := repo.ReadDaySlots(day)
	if !slots["09:00"].Deleted {
		t.Errorf("old label = %+v, want tombstoned", slots["09:00"])
	}
	if got := slots["14:00"]; got.Text != "Dentist (moved)" || got.Deleted {
		t.Errorf("new label = %+v", got)
	}
}

func TestQuickAddRevivesTombstone(t *testing.T) {
	r, repo := setupRouter(t)
	mustDispatch(t, r, DeleteSlot{Label: "08:00", Confirm: true})
	mustDispatch(t, r, QuickAdd{Time: "08:00", Text: "Back"})

	if got := repo.ReadSlot(day, "08:00"); got.Deleted || got.Text != "Back" {
		t.Errorf("slot = %+v", got)
	}
}

func TestQuickAddDefaultsAndValidation(t *testing.T) {
	r, repo := setupRouter(t)
	mustDispatch(t, r, QuickAdd{Text: "Morning"})
	if got := repo.ReadSlot(day, constants.DefaultQuickAddTime); got.Text != "Morning" {
		t.Errorf("default time slot = %+v", got)
	}

	tests := []QuickAdd{
		{Text: "  "},
		{Time: "9am", Text: "x"},
		{Time: "25:00", Text: "x"},
		{Time: "10:00", Text: "x", From: "nine"},
		{Day: "2024-13-01", Text: "x"},
	}
	for _, cmd := range tests {
		_, err := r.Dispatch(cmd)
		if !apperrors.IsValidation(err) {
			t.Errorf("Dispatch(%+v) error = %v, want validation error", cmd, err)
		}
	}
	if n := len(repo.ReadDaySlots(day)); n != 1 {
		t.Errorf("rejected quick-adds wrote slots: %d", n)
	}
}

func TestTaskCommands(t *testing.T) {
	r, repo := setupRouter(t)
	v := mustDispatch(t, r, EditTask{Index: 0, Value: "Buy milk"})
	if !reflect.DeepEqual(v.Daily.Tasks, models.TaskList{"Buy milk", ""}) {
		t.Errorf("day tasks = %q", v.Daily.Tasks)
	}

	mustDispatch(t, r, CommitTask{Week: true, Index: 0, Value: " Plan "})
	mustDispatch(t, r, CommitTask{Week: true, Index: 1, Value: ""})
	if got := repo.ReadTasks("tasks_w_2024-W24"); !reflect.DeepEqual(got, models.TaskList{"Plan", ""}) {
		t.Errorf("week tasks = %q", got)
	}
}

func TestMealsAndNotes(t *testing.T) {
	r, _ := setupRouter(t)
	mustDispatch(t, r, SetMeal{Label: constants.MealDinner, Value: "Pasta"})
	v := mustDispatch(t, r, SetNotes{Text: "day note"})
	if v.Daily.Meals[constants.MealDinner] != "Pasta" || v.Daily.Notes != "day note" {
		t.Errorf("daily sections = %+v, %q", v.Daily.Meals, v.Daily.Notes)
	}

	if _, err := r.Dispatch(SetMeal{Label: "Snack", Value: "x"}); !apperrors.IsValidation(err) {
		t.Errorf("unknown meal error = %v", err)
	}

	mustDispatch(t, r, SetNotes{Week: true, Text: "week note"})
	v = mustDispatch(t, r, ToggleViewMode{})
	if v.Weekly == nil || v.Weekly.Notes != "week note" {
		t.Errorf("weekly view = %+v", v.Weekly)
	}
}

func TestNavigation(t *testing.T) {
	r, repo := setupRouter(t)

	v := mustDispatch(t, r, Navigate{Delta: 1})
	if v.Daily.DayKey != "2024-06-11" {
		t.Errorf("next day = %s", v.Daily.DayKey)
	}

	v = mustDispatch(t, r, ToggleViewMode{})
	if v.Weekly == nil || v.Weekly.WeekKey != "2024-W24" {
		t.Fatalf("week view = %+v", v.Weekly)
	}
	if !repo.LoadSettings().IsWeekView() {
		t.Error("view mode not persisted")
	}

	v = mustDispatch(t, r, Navigate{Delta: -1})
	if v.Weekly.WeekKey != "2024-W23" || v.Date.Format(constants.DateFormat) != "2024-06-04" {
		t.Errorf("previous week = %s (%s)", v.Weekly.WeekKey, v.Date.Format(constants.DateFormat))
	}

	v = mustDispatch(t, r, GoTo{Date: time.Date(2018, time.December, 31, 12, 0, 0, 0, time.Local)})
	if v.Weekly.WeekKey != "2019-W01" {
		t.Errorf("goto week = %s", v.Weekly.WeekKey)
	}
}

func TestSettingsCommands(t *testing.T) {
	r, repo := setupRouter(t)

	v := mustDispatch(t, r, SetSetting{Field: constants.SettingInterval, Value: "30"})
	if len(v.Daily.Rows) != 30 {
		t.Errorf("rows at 30 minute interval = %d, want 30", len(v.Daily.Rows))
	}
	if repo.LoadSettings().Interval != 30 {
		t.Error("interval not persisted")
	}

	before := r.Session().Settings
	if _, err := r.Dispatch(SetSetting{Field: constants.SettingEndHour, Value: "2"}); !apperrors.IsValidation(err) {
		t.Errorf("end before start error = %v", err)
	}
	if r.Session().Settings != before {
		t.Error("rejected setting changed the session")
	}

	v = mustDispatch(t, r, ResetSettings{})
	if v.Settings != models.DefaultSettings() {
		t.Errorf("settings after reset = %+v", v.Settings)
	}
}

// racingStore runs a competing write at the start of the next transaction,
// as if another process committed just before this one took the lock.
type racingStore struct {
	*storage.MemoryStore
	competing func(storage.KV) error
}

func (s *racingStore) Atomically(fn func(storage.KV) error) error {
	return s.MemoryStore.Atomically(func(kv storage.KV) error {
		if c := s.competing; c != nil {
			s.competing = nil
			if err := c(kv); err != nil {
				return err
			}
		}
		return fn(kv)
	})
}

func setupRacingRouter(t *testing.T) (*Router, *repository.Repository, *racingStore) {
	t.Helper()
	store := &racingStore{MemoryStore: storage.NewMemoryStore()}
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	repo := repository.New(store)
	return New(repo, time.Date(2024, time.June, 10, 12, 0, 0, 0, time.Local)), repo, store
}

func TestSlotDecisionsReadInsideTransaction(t *testing.T) {
	const key = "data_" + day

	t.Run("toggle flips the committed value", func(t *testing.T) {
		r, repo, store := setupRacingRouter(t)
		mustDispatch(t, r, EditText{Day: day, Label: "09:00", Text: "Standup"})

		store.competing = func(kv storage.KV) error {
			return kv.Set(key, `{"09:00":{"text":"Standup","important":true}}`)
		}
		mustDispatch(t, r, ToggleImportant{Day: day, Label: "09:00"})

		if repo.ReadSlot(day, "09:00").Important {
			t.Error("toggle was computed from a stale read; important should be false")
		}
	})

	t.Run("delete decides on the committed text", func(t *testing.T) {
		r, repo, store := setupRacingRouter(t)
		mustDispatch(t, r, EditText{Day: day, Label: "09:00", Text: "Standup"})

		store.competing = func(kv storage.KV) error {
			return kv.Set(key, `{"09:00":{"text":""}}`)
		}
		_, err := r.Dispatch(DeleteSlot{Day: day, Label: "09:00"})
		if !errors.Is(err, apperrors.ErrConfirmationRequired) {
			t.Fatalf("Dispatch(DeleteSlot) error = %v, want ErrConfirmationRequired", err)
		}
		if repo.ReadSlot(day, "09:00").Deleted {
			t.Error("slot tombstoned without confirmation")
		}
	})
}

func TestDeleteTreatsBlankTextAsEmpty(t *testing.T) {
	r, repo := setupRouter(t)
	mustDispatch(t, r, EditText{Day: day, Label: "09:00", Text: "   "})

	if _, err := r.Dispatch(DeleteSlot{Day: day, Label: "09:00"}); !errors.Is(err, apperrors.ErrConfirmationRequired) {
		t.Fatalf("error = %v, want ErrConfirmationRequired", err)
	}
	mustDispatch(t, r, DeleteSlot{Day: day, Label: "09:00", Confirm: true})
	if !repo.ReadSlot(day, "09:00").Deleted {
		t.Error("blank slot not tombstoned")
	}
}
