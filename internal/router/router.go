// Package router is the single write path. Each command is translated into
// repository merges, after which the current view is re-projected.
package router

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/agenda/internal/constants"
	apperrors "github.com/julianstephens/agenda/internal/errors"
	"github.com/julianstephens/agenda/internal/keys"
	"github.com/julianstephens/agenda/internal/logger"
	"github.com/julianstephens/agenda/internal/models"
	"github.com/julianstephens/agenda/internal/projector"
	"github.com/julianstephens/agenda/internal/repository"
	"github.com/julianstephens/agenda/internal/validation"
)

// Session is the explicit view state: the reference date and the settings
// loaded once at startup and persisted on every change.
type Session struct {
	Date     time.Time
	Settings models.Settings
}

// View is the projection handed to the rendering surface. Exactly one of
// Daily and Weekly is set, matching Settings.ViewMode.
type View struct {
	Session
	Daily  *projector.DailyView
	Weekly *projector.WeeklyView
}

type Router struct {
	repo    *repository.Repository
	proj    *projector.Projector
	session Session
	view    View
}

// New loads the settings and projects the initial view for date.
func New(repo *repository.Repository, date time.Time) *Router {
	r := &Router{
		repo: repo,
		proj: projector.New(repo),
		session: Session{
			Date:     date,
			Settings: repo.LoadSettings(),
		},
	}
	r.refresh()
	return r
}

// View returns the projection produced by the last dispatch.
func (r *Router) View() View {
	return r.view
}

func (r *Router) Session() Session {
	return r.session
}

// Projector exposes the projector for read-only views such as the calendar.
func (r *Router) Projector() *projector.Projector {
	return r.proj
}

func (r *Router) refresh() {
	v := View{Session: r.session}
	if r.session.Settings.IsWeekView() {
		w := r.proj.Weekly(r.session.Date)
		v.Weekly = &w
	} else {
		d := r.proj.Daily(r.session.Date, r.session.Settings)
		v.Daily = &d
	}
	r.view = v
}

// Dispatch applies cmd and returns the re-projected view. When an error is
// returned nothing has been written and the previous view is returned.
func (r *Router) Dispatch(cmd Command) (View, error) {
	id := uuid.NewString()
	logger.Debug("Dispatching command", "id", id, "command", cmd.Name())

	if err := r.apply(cmd); err != nil {
		logger.Debug("Command rejected", "id", id, "command", cmd.Name(), "error", err)
		return r.view, err
	}
	r.refresh()
	return r.view, nil
}

func (r *Router) apply(cmd Command) error {
	switch c := cmd.(type) {
	case EditText:
		return r.withSlot(c.Day, c.Label, func(day dayRef) error {
			return r.repo.MergeSlot(day.Key, c.Label, models.SetText(c.Text))
		})
	case ToggleImportant:
		return r.withSlot(c.Day, c.Label, func(day dayRef) error {
			return r.repo.UpdateSlot(day.Key, c.Label, func(cur models.TimeSlotEntry) (models.SlotUpdate, error) {
				return models.SetImportant(!cur.Important), nil
			})
		})
	case ToggleCompleted:
		return r.withSlot(c.Day, c.Label, func(day dayRef) error {
			return r.repo.UpdateSlot(day.Key, c.Label, func(cur models.TimeSlotEntry) (models.SlotUpdate, error) {
				return models.SetCompleted(!cur.Completed), nil
			})
		})
	case DeleteSlot:
		return r.withSlot(c.Day, c.Label, func(day dayRef) error {
			return r.deleteSlot(day.Key, c.Label, c.Confirm)
		})
	case QuickAdd:
		return r.withDay(c.Day, func(day dayRef) error {
			return r.quickAdd(day.Key, c)
		})
	case EditTask:
		return r.withDay(c.Day, func(day dayRef) error {
			_, err := r.repo.AppendOrEditTask(day.tasksKey(c.Week), c.Index, c.Value)
			return err
		})
	case CommitTask:
		return r.withDay(c.Day, func(day dayRef) error {
			_, err := r.repo.CommitTask(day.tasksKey(c.Week), c.Index, c.Value)
			return err
		})
	case SetMeal:
		return r.withDay(c.Day, func(day dayRef) error {
			return r.repo.WriteMeal(day.Key, c.Label, c.Value)
		})
	case SetNotes:
		return r.withDay(c.Day, func(day dayRef) error {
			return r.repo.WriteNotes(day.notesKey(c.Week), c.Text)
		})
	case Navigate:
		step := 1
		if r.session.Settings.IsWeekView() {
			step = 7
		}
		r.session.Date = keys.AddDays(r.session.Date, c.Delta*step)
		return nil
	case GoTo:
		r.session.Date = c.Date
		return nil
	case ToggleViewMode:
		s := r.session.Settings
		if s.IsWeekView() {
			s.ViewMode = constants.ViewModeDay
		} else {
			s.ViewMode = constants.ViewModeWeek
		}
		return r.saveSettings(s)
	case SetSetting:
		s, err := validation.ApplySetting(r.session.Settings, c.Field, c.Value)
		if err != nil {
			return err
		}
		return r.saveSettings(s)
	case ResetSettings:
		if err := r.repo.ResetSettings(); err != nil {
			return err
		}
		r.session.Settings = r.repo.LoadSettings()
		return nil
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}

// dayRef is a resolved command target: a day key and its ISO week key.
type dayRef struct {
	Key  string
	Week string
}

func (d dayRef) tasksKey(week bool) string {
	if week {
		return keys.WeekTasksKey(d.Week)
	}
	return keys.TasksKey(d.Key)
}

func (d dayRef) notesKey(week bool) string {
	if week {
		return keys.WeekNotesKey(d.Week)
	}
	return keys.NotesKey(d.Key)
}

// withSlot is withDay for commands that also address a slot label.
func (r *Router) withSlot(day, label string, fn func(day dayRef) error) error {
	if !validation.IsValidTimeLabel(label) {
		return &apperrors.ValidationError{Field: "label", Value: label, Reason: "must be HH:MM"}
	}
	return r.withDay(day, fn)
}

// withDay resolves an optional day key against the session date.
func (r *Router) withDay(day string, fn func(day dayRef) error) error {
	date := r.session.Date
	if day != "" {
		parsed, err := keys.ParseDayKey(day, r.session.Date.Location())
		if err != nil {
			return &apperrors.ValidationError{Field: "day", Value: day, Reason: "must be YYYY-MM-DD"}
		}
		date = parsed
	}
	return fn(dayRef{Key: keys.DayKey(date), Week: keys.WeekKey(date)})
}

func (r *Router) saveSettings(s models.Settings) error {
	saved, err := r.repo.SaveSettings(s)
	if err != nil {
		return err
	}
	r.session.Settings = saved
	return nil
}

// deleteSlot implements the two-stage delete. The first delete clears text
// and completion and keeps the slot; deleting a slot without text
// tombstones it once confirmed.
func (r *Router) deleteSlot(day, label string, confirm bool) error {
	return r.repo.UpdateSlot(day, label, func(cur models.TimeSlotEntry) (models.SlotUpdate, error) {
		if cur.HasText() {
			return models.SetText("").Merge(models.SetCompleted(false)), nil
		}
		if !confirm {
			return models.SlotUpdate{}, apperrors.ErrConfirmationRequired
		}
		return models.SetDeleted(true), nil
	})
}

func (r *Router) quickAdd(day string, c QuickAdd) error {
	if strings.TrimSpace(c.Text) == "" {
		return &apperrors.ValidationError{Field: "text", Value: c.Text, Reason: "must not be empty"}
	}
	at := c.Time
	if at == "" {
		at = constants.DefaultQuickAddTime
	}
	if !validation.IsValidTimeLabel(at) {
		return &apperrors.ValidationError{Field: "time", Value: at, Reason: "must be HH:MM"}
	}

	updates := map[string]models.SlotUpdate{
		at: models.SetText(c.Text).Merge(models.SetDeleted(false)),
	}
	if c.From != "" && !validation.IsValidTimeLabel(c.From) {
		return &apperrors.ValidationError{Field: "from", Value: c.From, Reason: "must be HH:MM"}
	}
	if c.From != "" && c.From != at {
		updates[c.From] = models.SetDeleted(true)
	}
	return r.repo.MergeSlots(day, updates)
}
