// Package projector derives what the daily timeline, the weekly rollup and
// the month calendar display from the repository's current state.
package projector

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/agenda/internal/keys"
	"github.com/julianstephens/agenda/internal/models"
)

// Reader is the read side of the repository used for projection.
type Reader interface {
	ReadDaySlots(dayKey string) models.DaySlotMap
	ReadTasks(listKey string) models.TaskList
	ReadMeals(dayKey string) models.MealMap
	ReadNotes(noteKey string) string
	DayHasVisibleData(dayKey string) bool
}

// Row is one displayed time slot.
type Row struct {
	Label string
	Entry models.TimeSlotEntry
}

type DailyView struct {
	Date   time.Time
	DayKey string
	Rows   []Row
	Tasks  models.TaskList
	Meals  models.MealMap
	Notes  string
}

// DayGroup is one day of the weekly rollup. Empty is set when the day has
// no displayable slot and the "no entries" placeholder should be shown.
type DayGroup struct {
	Date   time.Time
	DayKey string
	Rows   []Row
	Empty  bool
}

type WeeklyView struct {
	WeekKey string
	Days    [7]DayGroup
	Tasks   models.TaskList
	Notes   string
}

type DayActivity struct {
	Date    time.Time
	DayKey  string
	HasData bool
	IsToday bool
}

type MonthView struct {
	Year  int
	Month time.Month
	// Leading is the number of blank cells before the first day in a
	// Monday-first grid.
	Leading int
	Days    []DayActivity
}

type Projector struct {
	repo Reader
}

func New(repo Reader) *Projector {
	return &Projector{repo: repo}
}

// minutesFor returns the minute marks generated within each hour.
func minutesFor(interval int) []int {
	switch models.NearestInterval(interval) {
	case 15:
		return []int{0, 15, 30, 45}
	case 30:
		return []int{0, 30}
	default:
		return []int{0}
	}
}

// TimeLabels enumerates the HH:MM labels of the daily timeline, from
// StartHour to EndHour inclusive. Hour 24 only yields "24:00".
func TimeLabels(s models.Settings) []string {
	s = s.Normalize()
	mins := minutesFor(s.Interval)
	labels := make([]string, 0, (s.EndHour-s.StartHour+1)*len(mins))
	for h := s.StartHour; h <= s.EndHour; h++ {
		for _, m := range mins {
			if h == 24 && m > 0 {
				break
			}
			labels = append(labels, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return labels
}

// Daily projects the timeline of one day. Every generated label is listed
// with its entry or the default entry; tombstoned slots are skipped.
func (p *Projector) Daily(date time.Time, s models.Settings) DailyView {
	dayKey := keys.DayKey(date)
	slots := p.repo.ReadDaySlots(dayKey)

	var rows []Row
	for _, label := range TimeLabels(s) {
		entry := slots.Lookup(label)
		if entry.Deleted {
			continue
		}
		rows = append(rows, Row{Label: label, Entry: entry})
	}

	return DailyView{
		Date:   date,
		DayKey: dayKey,
		Rows:   rows,
		Tasks:  p.repo.ReadTasks(keys.TasksKey(dayKey)),
		Meals:  p.repo.ReadMeals(dayKey),
		Notes:  p.repo.ReadNotes(keys.NotesKey(dayKey)),
	}
}

// Weekly projects the seven days of the ISO week containing date. Only
// slots with text that are not tombstoned are shown, sorted by label.
func (p *Projector) Weekly(date time.Time) WeeklyView {
	weekKey := keys.WeekKey(date)
	view := WeeklyView{
		WeekKey: weekKey,
		Tasks:   p.repo.ReadTasks(keys.WeekTasksKey(weekKey)),
		Notes:   p.repo.ReadNotes(keys.WeekNotesKey(weekKey)),
	}

	for i, d := range keys.WeekDays(date) {
		dayKey := keys.DayKey(d)
		rows := visibleRows(p.repo.ReadDaySlots(dayKey))
		view.Days[i] = DayGroup{
			Date:   d,
			DayKey: dayKey,
			Rows:   rows,
			Empty:  len(rows) == 0,
		}
	}
	return view
}

func visibleRows(slots models.DaySlotMap) []Row {
	labels := make([]string, 0, len(slots))
	for label, e := range slots {
		if e.Visible() {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	rows := make([]Row, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, Row{Label: label, Entry: slots[label]})
	}
	return rows
}

// MonthActivity lists every day of the month with its activity marker.
func (p *Projector) MonthActivity(year int, month time.Month, today time.Time) MonthView {
	first := time.Date(year, month, 1, 12, 0, 0, 0, today.Location())
	todayKey := keys.DayKey(today)

	view := MonthView{
		Year:    year,
		Month:   month,
		Leading: (int(first.Weekday()) + 6) % 7,
	}
	for d := first; d.Month() == month; d = keys.AddDays(d, 1) {
		dayKey := keys.DayKey(d)
		view.Days = append(view.Days, DayActivity{
			Date:    d,
			DayKey:  dayKey,
			HasData: p.repo.DayHasVisibleData(dayKey),
			IsToday: dayKey == todayKey,
		})
	}
	return view
}
